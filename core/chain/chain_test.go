package chain

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mplace/core/placement"
)

func TestPSSMFromPWM(t *testing.T) {
	got := PSSMFromPWM([]Column{{A: 1, G: 0, C: 0.25, T: 0.5}})
	require.Len(t, got, 1)
	assert.InDelta(t, 2.0, got[0].A, 1e-12)
	assert.InDelta(t, math.Log2(PseudoProbability/0.25), got[0].G, 1e-12)
	assert.InDelta(t, 0.0, got[0].C, 1e-12)
	assert.InDelta(t, 1.0, got[0].T, 1e-12)
}

func TestLoadFile_JSONOrganisms(t *testing.T) {
	chains, err := LoadFile(filepath.Join("testdata", "organisms.json"))
	require.NoError(t, err)
	require.Len(t, chains, 2)

	c := chains[0]
	assert.Equal(t, []int{2, 2}, c.Widths())
	require.Len(t, c.Connectors, 1)
	assert.Equal(t, Connector{Mu: 6, Sigma: 1}, c.Connectors[0])
	assert.Equal(t, "r0", c.Recognizers[0].Name)
	assert.NotNil(t, c.Recognizers[0].PWM)
	assert.InDelta(t, math.Log2(0.97/0.25), c.Recognizers[0].PSSM[0].A, 1e-12)

	assert.Equal(t, []int{1}, chains[1].Widths())
	assert.Empty(t, chains[1].Connectors)
}

func TestLoadFile_YAML(t *testing.T) {
	chains, err := LoadFile(filepath.Join("testdata", "chain.yaml"))
	require.NoError(t, err)
	require.Len(t, chains, 1)
	c := chains[0]
	assert.Equal(t, "ag-box", c.Name)
	assert.Equal(t, "a-box", c.Recognizers[0].Name)
	assert.Nil(t, c.Recognizers[0].PWM)
	assert.Equal(t, 2.0, c.Recognizers[0].PSSM[1].A)
	assert.InDelta(t, 2.0, c.Recognizers[1].PSSM[0].G, 1e-12)
	assert.Equal(t, Connector{Mu: 4, Sigma: 2}, c.Connectors[0])
}

func TestLoad_Index(t *testing.T) {
	path := filepath.Join("testdata", "organisms.json")
	c, err := Load(path, 1)
	require.NoError(t, err)
	assert.Equal(t, "organism-1", c.Name)

	_, err = Load(path, 2)
	assert.True(t, errors.Is(err, ErrChainIndex))
}

func TestReadJSON_Errors(t *testing.T) {
	cases := map[string]struct {
		in   string
		want error
	}{
		"unknown element": {`[[{"objectType":"bogus"}]]`, ErrUnknownElement},
		"empty list":      {`[]`, ErrNoChains},
		"no recognizers":  {`[[]]`, ErrEmptyChain},
		"two connectors":  {`[[{"objectType":"pssm","pssm":[{"a":1}]},{"objectType":"connector","mu":1,"sigma":1},{"objectType":"connector","mu":1,"sigma":1}]]`, ErrChainStructure},
		"empty pssm":      {`[[{"objectType":"pssm"}]]`, ErrEmptyPSSM},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tc.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}

	_, err := ReadJSON(strings.NewReader(`[[{"objectType":"connector","mu":1}]]`))
	assert.ErrorContains(t, err, "mu and sigma")
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	chains, err := LoadFile(filepath.Join("testdata", "chain.yaml"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, chains))
	assert.Contains(t, buf.String(), `"objectType": "connector"`)

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, chains[0].Recognizers, back[0].Recognizers)
	assert.Equal(t, chains[0].Connectors, back[0].Connectors)
}

func TestWriteYAML_File(t *testing.T) {
	chains, err := LoadFile(filepath.Join("testdata", "organisms.json"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yml")
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, chains))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	back, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, chains[0].Widths(), back[0].Widths())
	assert.Equal(t, chains[0].Connectors, back[0].Connectors)
}

func TestChain_Problem(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "organisms.json"), 0)
	require.NoError(t, err)
	seq := []byte("AAAAGGGGCCCCTTTT")

	stat, err := c.Problem(seq, ProblemOptions{})
	require.NoError(t, err)
	assert.Equal(t, placement.Statistical, stat.Connectors.Kind)
	m := stat.Recognizers[1].Matrix
	r, cols := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, placement.NumBases, cols)
	assert.InDelta(t, math.Log2(0.97/0.25), m.At(0, placement.BaseC), 1e-12)

	pre, err := c.Problem(seq, ProblemOptions{Kind: placement.Precomputed})
	require.NoError(t, err)

	a, err := placement.Place(stat, placement.Options{})
	require.NoError(t, err)
	b, err := placement.Place(pre, placement.Options{})
	require.NoError(t, err)
	assert.InDelta(t, a.Score, b.Score, 1e-6)
	assert.Equal(t, []int{6}, a.ConnectorLengths)
	assert.Equal(t, a.ConnectorLengths, b.ConnectorLengths)
	assert.Equal(t, 8, a.Positions[1]-a.Positions[0])
}
