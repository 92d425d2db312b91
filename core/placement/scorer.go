package placement

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Column order of recognizer matrices.
const (
	BaseA = iota
	BaseG
	BaseC
	BaseT
	NumBases
)

// Recognizer is a position-specific scoring matrix: one row per motif
// column, NumBases columns in A, G, C, T order.
type Recognizer struct {
	Name   string
	Matrix *mat.Dense
}

// Width is the number of motif columns.
func (r Recognizer) Width() int {
	if r.Matrix == nil {
		return 0
	}
	rows, _ := r.Matrix.Dims()
	return rows
}

func (r Recognizer) validate(i int) error {
	if r.Matrix == nil {
		return errors.Wrapf(ErrBadMatrixShape, "recognizer %d has no matrix", i)
	}
	if _, c := r.Matrix.Dims(); c != NumBases {
		return errors.Wrapf(ErrBadMatrixShape, "recognizer %d has %d base columns", i, c)
	}
	return nil
}

// baseIndex maps a nucleotide to its matrix column, or -1 for anything that
// is not A/C/G/T.
func baseIndex(b byte) int {
	switch b {
	case 'A', 'a':
		return BaseA
	case 'G', 'g':
		return BaseG
	case 'C', 'c':
		return BaseC
	case 'T', 't':
		return BaseT
	}
	return -1
}

// ScoreMatrix scores every recognizer at every feasible start. Cell (i, p)
// holds recognizer i's score when it starts at g.Forward[i]+p. Recognizers
// are scored concurrently, at most workers at a time (<=0 means unbounded).
func ScoreMatrix(seq []byte, recs []Recognizer, g Geometry, workers int) *mat.Dense {
	scores := mat.NewDense(g.NumRec, g.NumAlignments, nil)
	var eg errgroup.Group
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i := range recs {
		eg.Go(func() error {
			scoreRecognizer(scores.RawRowView(i), seq, recs[i], g.Forward[i], g.Reverse[i])
			return nil
		})
	}
	_ = eg.Wait()
	return scores
}

func scoreRecognizer(dst []float64, seq []byte, r Recognizer, fwd, rev int) {
	w := r.Width()
	for j := fwd; j < len(seq)-rev; j++ {
		score := 0.0
		for k := 0; k < w; k++ {
			if b := baseIndex(seq[j+k]); b >= 0 {
				score += r.Matrix.At(k, b)
			}
		}
		dst[j-fwd] = score
	}
}
