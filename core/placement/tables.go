package placement

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogFactorials is the combinatorial numerator table: entry n holds
// log2(n!). It is built once and only ever read.
type LogFactorials []float64

// NewLogFactorials tabulates log2(n!) for n in [0, maxN].
func NewLogFactorials(maxN int) LogFactorials {
	if maxN < 0 {
		maxN = 0
	}
	lf := make(LogFactorials, maxN+1)
	for n := 1; n <= maxN; n++ {
		lg, _ := math.Lgamma(float64(n) + 1)
		lf[n] = lg / math.Ln2
	}
	return lf
}

// LogBinomial returns log2 C(n, k), or -Inf when k is outside [0, n].
func (lf LogFactorials) LogBinomial(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	return lf[n] - lf[k] - lf[n-k]
}

// Covers reports whether the table reaches n.
func (lf LogFactorials) Covers(n int) bool { return n >= 0 && n < len(lf) }

// PrecomputeConnectorTable tabulates StatisticalNumerator for every connector
// and every gap in [0, maxGap). Row c belongs to connector c. It returns nil
// when there are no connectors.
func PrecomputeConnectorTable(params []Gaussian, dnaLength, maxGap int) *mat.Dense {
	if len(params) == 0 || maxGap <= 0 {
		return nil
	}
	t := mat.NewDense(len(params), maxGap, nil)
	for c, p := range params {
		row := t.RawRowView(c)
		for gap := range row {
			row[gap] = StatisticalNumerator(dnaLength, gap, p.Mu, p.Sigma)
		}
	}
	return t
}
