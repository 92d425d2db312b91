package chain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownElement = errors.New("chain: unknown element type")
	ErrNoChains       = errors.New("chain: file holds no chains")
	ErrChainIndex     = errors.New("chain: index out of range")
)

// element is one entry of a chain file. JSON organism files tag the kind
// with "objectType"; YAML chain files use "type".
type element struct {
	ObjectType string   `json:"objectType" yaml:"-"`
	Type       string   `json:"-" yaml:"type"`
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	PWM        []Column `json:"pwm,omitempty" yaml:"pwm,omitempty"`
	PSSM       []Column `json:"pssm,omitempty" yaml:"pssm,omitempty"`
	Mu         *float64 `json:"mu,omitempty" yaml:"mu,omitempty"`
	Sigma      *float64 `json:"sigma,omitempty" yaml:"sigma,omitempty"`
}

type yamlChain struct {
	Name     string    `yaml:"name"`
	Elements []element `yaml:"elements"`
}

func (e element) kind() string {
	if e.ObjectType != "" {
		return strings.ToLower(e.ObjectType)
	}
	return strings.ToLower(e.Type)
}

// build turns a flat element list into a chain. Recognizers and connectors
// are collected in order of appearance.
func build(name string, elems []element) (Chain, error) {
	c := Chain{Name: name}
	for i, e := range elems {
		switch e.kind() {
		case TypePSSM:
			rname := e.Name
			if rname == "" {
				rname = fmt.Sprintf("r%d", len(c.Recognizers))
			}
			switch {
			case len(e.PSSM) > 0:
				c.Recognizers = append(c.Recognizers, Recognizer{Name: rname, PSSM: e.PSSM, PWM: e.PWM})
			case len(e.PWM) > 0:
				c.Recognizers = append(c.Recognizers, NewRecognizerFromPWM(rname, e.PWM))
			default:
				return Chain{}, errors.Wrapf(ErrEmptyPSSM, "element %d", i)
			}
		case TypeConnector:
			if e.Mu == nil || e.Sigma == nil {
				return Chain{}, errors.Errorf("chain: element %d: connector needs mu and sigma", i)
			}
			c.Connectors = append(c.Connectors, Connector{Mu: *e.Mu, Sigma: *e.Sigma})
		default:
			return Chain{}, errors.Wrapf(ErrUnknownElement, "element %d: %q", i, e.kind())
		}
	}
	if err := c.Validate(); err != nil {
		return Chain{}, err
	}
	return c, nil
}

// ReadJSON parses a list of organisms, each a list of pssm and connector
// objects.
func ReadJSON(r io.Reader) ([]Chain, error) {
	var raw [][]element
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "chain: decode json")
	}
	chains := make([]Chain, 0, len(raw))
	for i, elems := range raw {
		c, err := build(fmt.Sprintf("organism-%d", i), elems)
		if err != nil {
			return nil, errors.Wrapf(err, "organism %d", i)
		}
		chains = append(chains, c)
	}
	if len(chains) == 0 {
		return nil, ErrNoChains
	}
	return chains, nil
}

// ReadYAML parses one chain per YAML document.
func ReadYAML(r io.Reader) ([]Chain, error) {
	dec := yaml.NewDecoder(r)
	var chains []Chain
	for i := 0; ; i++ {
		var doc yamlChain
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "chain: decode yaml document %d", i)
		}
		name := doc.Name
		if name == "" {
			name = fmt.Sprintf("chain-%d", i)
		}
		c, err := build(name, doc.Elements)
		if err != nil {
			return nil, errors.Wrapf(err, "document %d", i)
		}
		chains = append(chains, c)
	}
	if len(chains) == 0 {
		return nil, ErrNoChains
	}
	return chains, nil
}

// LoadFile reads every chain in path. Files ending in .yaml or .yml are
// YAML; anything else is a JSON organism list.
func LoadFile(path string) ([]Chain, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "chain: read")
	}
	var chains []Chain
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		chains, err = ReadYAML(bytes.NewReader(b))
	default:
		chains, err = ReadJSON(bytes.NewReader(b))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return chains, nil
}

// Load reads path and returns the chain at index.
func Load(path string, index int) (Chain, error) {
	chains, err := LoadFile(path)
	if err != nil {
		return Chain{}, err
	}
	if index < 0 || index >= len(chains) {
		return Chain{}, errors.Wrapf(ErrChainIndex, "%s: index %d of %d", path, index, len(chains))
	}
	return chains[index], nil
}

func (c Chain) elements() []element {
	out := make([]element, 0, len(c.Recognizers)+len(c.Connectors))
	for i, r := range c.Recognizers {
		e := element{Name: r.Name}
		if r.PWM != nil {
			e.PWM = r.PWM
		} else {
			e.PSSM = r.PSSM
		}
		out = append(out, e)
		if i < len(c.Connectors) {
			mu, sigma := c.Connectors[i].Mu, c.Connectors[i].Sigma
			out = append(out, element{Mu: &mu, Sigma: &sigma})
		}
	}
	return out
}

// WriteJSON exports chains as a JSON organism list.
func WriteJSON(w io.Writer, chains []Chain) error {
	raw := make([][]element, len(chains))
	for i, c := range chains {
		elems := c.elements()
		for j := range elems {
			elems[j].ObjectType = TypePSSM
			if elems[j].Mu != nil {
				elems[j].ObjectType = TypeConnector
			}
		}
		raw[i] = elems
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(raw), "chain: encode json")
}

// WriteYAML exports chains as YAML documents.
func WriteYAML(w io.Writer, chains []Chain) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, c := range chains {
		elems := c.elements()
		for j := range elems {
			elems[j].Type = TypePSSM
			if elems[j].Mu != nil {
				elems[j].Type = TypeConnector
			}
		}
		if err := enc.Encode(yamlChain{Name: c.Name, Elements: elems}); err != nil {
			return errors.Wrap(err, "chain: encode yaml")
		}
	}
	return errors.Wrap(enc.Close(), "chain: encode yaml")
}
