package placement

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ConnectorKind selects how connector scores are obtained.
type ConnectorKind int

const (
	// Statistical scores gaps on the fly from a per-connector Gaussian.
	Statistical ConnectorKind = iota
	// Precomputed looks gap probabilities up in a table and applies the
	// null-model correction from LogFactorials.
	Precomputed
)

func (k ConnectorKind) String() string {
	switch k {
	case Statistical:
		return "statistical"
	case Precomputed:
		return "precomputed"
	default:
		return "unknown"
	}
}

// Gaussian is the positional distribution of one connector's gap length.
type Gaussian struct {
	Mu    float64
	Sigma float64
}

// ConnectorModel is the connector scoring strategy for one computation. Only
// the fields belonging to Kind are read.
type ConnectorModel struct {
	Kind ConnectorKind

	// Statistical
	Params []Gaussian

	// Precomputed: (N-1) x maxGap gap probabilities and the log2(n!) table.
	Table         *mat.Dense
	LogFactorials LogFactorials
}

// StatisticalConnectors builds a Statistical model.
func StatisticalConnectors(params []Gaussian) ConnectorModel {
	return ConnectorModel{Kind: Statistical, Params: params}
}

// PrecomputedConnectors builds a Precomputed model. table may be nil for a
// single-recognizer chain.
func PrecomputedConnectors(table *mat.Dense, lf LogFactorials) ConnectorModel {
	return ConnectorModel{Kind: Precomputed, Table: table, LogFactorials: lf}
}

// ConnectorsFromFlat picks the variant from the shape of data: exactly
// 2*(numRec-1) values are (mu, sigma) pairs, anything else must be a
// row-major (numRec-1) x maxGap table.
func ConnectorsFromFlat(data []float64, numRec, maxGap int, lf LogFactorials) (ConnectorModel, error) {
	numCon := numRec - 1
	if numCon < 0 {
		return ConnectorModel{}, ErrNoRecognizers
	}
	if len(data) == 2*numCon {
		params := make([]Gaussian, numCon)
		for c := range params {
			params[c] = Gaussian{Mu: data[2*c], Sigma: data[2*c+1]}
		}
		return StatisticalConnectors(params), nil
	}
	if maxGap <= 0 || len(data) != numCon*maxGap {
		return ConnectorModel{}, errors.Wrapf(ErrBadConnectorShape,
			"%d values for %d connectors (max gap %d)", len(data), numCon, maxGap)
	}
	table := mat.NewDense(numCon, maxGap, append([]float64(nil), data...))
	return PrecomputedConnectors(table, lf), nil
}

// NumConnectors returns how many connectors the model describes.
func (m ConnectorModel) NumConnectors() int {
	if m.Kind == Precomputed {
		if m.Table == nil {
			return 0
		}
		r, _ := m.Table.Dims()
		return r
	}
	return len(m.Params)
}

func (m ConnectorModel) validate(g Geometry) error {
	if n := m.NumConnectors(); n != g.NumRec-1 {
		return errors.Wrapf(ErrBadConnectorShape, "%d connectors for %d recognizers", n, g.NumRec)
	}
	if m.Kind != Precomputed || g.NumRec == 1 {
		return nil
	}
	if _, c := m.Table.Dims(); c < g.NumAlignments {
		return errors.Wrapf(ErrGapTableTooNarrow, "table covers %d gaps, need %d", c, g.NumAlignments)
	}
	if !m.LogFactorials.Covers(g.EffectiveLen) {
		return errors.Wrapf(ErrLogFactorialsTooShort, "need log2(n!) up to n=%d", g.EffectiveLen)
	}
	return nil
}

// ScoreFunc resolves the variant once and returns score(conn, gap), the
// log2-odds of a gap of that length under the connector model versus the
// uniform null model.
func (m ConnectorModel) ScoreFunc(g Geometry) func(conn, gap int) float64 {
	if m.Kind == Precomputed {
		return m.precomputedScore(g)
	}
	return m.statisticalScore(g)
}

func (m ConnectorModel) statisticalScore(g Geometry) func(conn, gap int) float64 {
	return func(conn, gap int) float64 {
		p := m.Params[conn]
		num := StatisticalNumerator(g.SeqLen, gap, p.Mu, p.Sigma)
		return math.Log2(num / UniformDenominator(gap, g.NumRec, g.EffectiveLen))
	}
}

func (m ConnectorModel) precomputedScore(g Geometry) func(conn, gap int) float64 {
	eff, n := g.EffectiveLen, g.NumRec
	lf := m.LogFactorials
	infeasible := math.Log2(infeasibleDenominator)
	var total float64
	if n <= eff {
		total = lf.LogBinomial(eff, n)
	}
	return func(conn, gap int) float64 {
		p := m.Table.At(conn, gap)
		if p < numeratorFloor {
			p = numeratorFloor
		}
		d := gap + 1
		logDen := infeasible
		if d >= 1 && d <= eff-n+1 {
			logDen = lf.LogBinomial(eff-d, n-1) - total
		}
		return math.Log2(p) - logDen
	}
}
