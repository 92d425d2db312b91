// Package chain models recognizer chains ("organisms"): PSSM recognizers
// joined by Gaussian connectors, and turns them into placement problems.
package chain

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"mplace/core/placement"
)

// Element object types as they appear in chain files.
const (
	TypePSSM      = "pssm"
	TypeConnector = "connector"
)

// Column is one motif column, by base.
type Column struct {
	A float64 `json:"a" yaml:"a"`
	G float64 `json:"g" yaml:"g"`
	C float64 `json:"c" yaml:"c"`
	T float64 `json:"t" yaml:"t"`
}

// Row returns the column in placement's A, G, C, T order.
func (c Column) Row() []float64 { return []float64{c.A, c.G, c.C, c.T} }

// Recognizer is a PSSM; scores are log2-odds.
type Recognizer struct {
	Name string
	PSSM []Column
	// PWM is kept when the recognizer was read from probabilities.
	PWM []Column
}

// Width is the number of motif columns.
func (r Recognizer) Width() int { return len(r.PSSM) }

// Matrix returns the width x 4 placement matrix.
func (r Recognizer) Matrix() *mat.Dense {
	m := mat.NewDense(len(r.PSSM), placement.NumBases, nil)
	for k, col := range r.PSSM {
		m.SetRow(k, col.Row())
	}
	return m
}

// Connector is the gap length distribution between two recognizers.
type Connector struct {
	Mu    float64
	Sigma float64
}

// Chain is an ordered list of N recognizers and N-1 connectors.
type Chain struct {
	Name        string
	Recognizers []Recognizer
	Connectors  []Connector
}

var (
	ErrEmptyChain     = errors.New("chain: no recognizers")
	ErrChainStructure = errors.New("chain: recognizers and connectors must alternate")
	ErrEmptyPSSM      = errors.New("chain: recognizer has no columns")
)

// Validate checks the chain shape.
func (c Chain) Validate() error {
	if len(c.Recognizers) == 0 {
		return ErrEmptyChain
	}
	if len(c.Connectors) != len(c.Recognizers)-1 {
		return errors.Wrapf(ErrChainStructure, "%d recognizers, %d connectors", len(c.Recognizers), len(c.Connectors))
	}
	for i, r := range c.Recognizers {
		if r.Width() == 0 {
			return errors.Wrapf(ErrEmptyPSSM, "recognizer %d", i)
		}
	}
	return nil
}

// Widths returns the recognizer widths.
func (c Chain) Widths() []int {
	w := make([]int, len(c.Recognizers))
	for i, r := range c.Recognizers {
		w[i] = r.Width()
	}
	return w
}

// Params returns the connector distributions.
func (c Chain) Params() []placement.Gaussian {
	p := make([]placement.Gaussian, len(c.Connectors))
	for i, con := range c.Connectors {
		p[i] = placement.Gaussian{Mu: con.Mu, Sigma: con.Sigma}
	}
	return p
}

// ProblemOptions choose the connector variant of a problem.
type ProblemOptions struct {
	Kind placement.ConnectorKind
	// MaxGap is the precomputed table width; 0 sizes it to every feasible gap.
	MaxGap int
	// LogFactorials is shared across problems; built on demand when nil.
	LogFactorials placement.LogFactorials
}

// Problem builds the placement problem of this chain on seq.
func (c Chain) Problem(seq []byte, o ProblemOptions) (placement.Problem, error) {
	if err := c.Validate(); err != nil {
		return placement.Problem{}, err
	}
	recs := make([]placement.Recognizer, len(c.Recognizers))
	for i, r := range c.Recognizers {
		recs[i] = placement.Recognizer{Name: r.Name, Matrix: r.Matrix()}
	}
	p := placement.Problem{Sequence: seq, Recognizers: recs}

	if o.Kind != placement.Precomputed {
		p.Connectors = placement.StatisticalConnectors(c.Params())
		return p, nil
	}
	maxGap := o.MaxGap
	if maxGap <= 0 {
		maxGap = placement.NumAlignments(len(seq), c.Widths())
	}
	lf := o.LogFactorials
	if lf == nil {
		lf = placement.NewLogFactorials(len(seq))
	}
	table := placement.PrecomputeConnectorTable(c.Params(), len(seq), maxGap)
	p.Connectors = placement.PrecomputedConnectors(table, lf)
	return p, nil
}
