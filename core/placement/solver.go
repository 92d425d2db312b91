package placement

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// minParallelSpan is the smallest number of end positions worth handing to
// a separate goroutine within one DP stage.
const minParallelSpan = 256

// dpResult is the scratch state of one forward pass.
type dpResult struct {
	alignments []float64 // best cumulative score per end position, last stage
	gapChoice  []int     // (NumRec-1) x NumAlignments winning gap lengths
}

// fillTraceback runs the forward pass over stages 1..N-1. At stage i the
// score for ending at j is max over k<=j of
//
//	alignments[k] + connector(i-1, j-k) + scores(i, j)
//
// where k=0 seeds the running maximum and only a strictly greater candidate
// replaces it, so on exact ties the earliest k (largest gap) is kept.
func fillTraceback(scores *mat.Dense, g Geometry, gapScore func(conn, gap int) float64, workers int) dpResult {
	a := g.NumAlignments
	alignments := make([]float64, a)
	copy(alignments, scores.RawRowView(0))
	next := make([]float64, a)
	gapChoice := make([]int, (g.NumRec-1)*a)

	// A connector score depends only on the gap, so tabulate it per stage.
	gaps := make([]float64, a)

	for i := 1; i < g.NumRec; i++ {
		for gap := range gaps {
			gaps[gap] = gapScore(i-1, gap)
		}
		row := scores.RawRowView(i)
		choice := gapChoice[(i-1)*a : i*a]

		relax := func(lo, hi int) {
			for j := lo; j < hi; j++ {
				best := alignments[0] + gaps[j] + row[j]
				bestGap := j
				for k := 1; k <= j; k++ {
					if c := alignments[k] + gaps[j-k] + row[j]; c > best {
						best = c
						bestGap = j - k
					}
				}
				next[j] = best
				choice[j] = bestGap
			}
		}

		if workers <= 1 || a < 2*minParallelSpan {
			relax(0, a)
		} else {
			var eg errgroup.Group
			span := (a + workers - 1) / workers
			if span < minParallelSpan {
				span = minParallelSpan
			}
			for lo := 0; lo < a; lo += span {
				hi := min(lo+span, a)
				eg.Go(func() error {
					relax(lo, hi)
					return nil
				})
			}
			_ = eg.Wait()
		}
		alignments, next = next, alignments
	}
	return dpResult{alignments: alignments, gapChoice: gapChoice}
}

// maxIndex returns the first index holding the maximum value.
func maxIndex(xs []float64) int {
	best := 0
	for i := range xs {
		if xs[i] > xs[best] {
			best = i
		}
	}
	return best
}

// placeSingle handles a chain with one recognizer: there is nothing to
// connect, so the best placement is the best scoring position.
func placeSingle(scores *mat.Dense, g Geometry) Placement {
	row := scores.RawRowView(0)
	start := maxIndex(row)
	return Placement{
		Score:            row[start],
		Start:            start,
		Positions:        []int{g.Forward[0] + start},
		RecognizerScores: []float64{row[start]},
		ConnectorScores:  []float64{},
		ConnectorLengths: []int{},
	}
}
