package placement

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// FlatInput is the buffer-oriented form of a Problem.
type FlatInput struct {
	Sequence []byte
	Widths   []int
	// RecMatrices concatenates every recognizer's width x NumBases block.
	RecMatrices []float64
	// ConData is either 2*(N-1) (mu, sigma) values or a (N-1) x MaxGap table.
	ConData []float64
	MaxGap  int
	// LogFactorials is required when ConData is a table.
	LogFactorials LogFactorials
}

// FlatOutput receives the placement in caller-owned buffers.
//
// ConLengths has N slots: slot 0 is recognizer 0's relative start and slots
// 1..N-1 are the connector gaps. ConScores has max(N-1, 1) slots; a single
// recognizer reports a connector score of 0. RecScores has N slots, plus an
// optional extra slot that receives the total score.
type FlatOutput struct {
	RecScores  []float64
	ConScores  []float64
	ConLengths []int
}

// Problem converts the flat buffers into a Problem.
func (in FlatInput) Problem() (Problem, error) {
	n := len(in.Widths)
	if n == 0 {
		return Problem{}, ErrNoRecognizers
	}
	recs := make([]Recognizer, n)
	row := 0
	for i, w := range in.Widths {
		if w <= 0 {
			return Problem{}, errors.Wrapf(ErrBadMatrixShape, "recognizer %d has width %d", i, w)
		}
		lo, hi := row*NumBases, (row+w)*NumBases
		if hi > len(in.RecMatrices) {
			return Problem{}, errors.Wrapf(ErrBadMatrixShape,
				"recognizer %d needs values [%d,%d) of %d", i, lo, hi, len(in.RecMatrices))
		}
		recs[i] = Recognizer{Matrix: mat.NewDense(w, NumBases, append([]float64(nil), in.RecMatrices[lo:hi]...))}
		row += w
	}
	if row*NumBases != len(in.RecMatrices) {
		return Problem{}, errors.Wrapf(ErrBadMatrixShape,
			"%d matrix values for %d total columns", len(in.RecMatrices), row)
	}
	con, err := ConnectorsFromFlat(in.ConData, n, in.MaxGap, in.LogFactorials)
	if err != nil {
		return Problem{}, err
	}
	return Problem{Sequence: in.Sequence, Recognizers: recs, Connectors: con}, nil
}

// Calculate places the chain described by in and writes the result into
// out. It returns the structured placement as well.
func Calculate(in FlatInput, out FlatOutput, opt Options) (Placement, error) {
	n := len(in.Widths)
	if len(out.RecScores) < n || len(out.ConLengths) < n || len(out.ConScores) < max(n-1, 1) {
		return Placement{}, errors.Wrapf(ErrBufferTooSmall, "%d recognizers", n)
	}
	p, err := in.Problem()
	if err != nil {
		return Placement{}, err
	}
	res, err := Place(p, opt)
	if err != nil {
		return Placement{}, err
	}

	copy(out.RecScores, res.RecognizerScores)
	if len(out.RecScores) > n {
		out.RecScores[n] = res.Score
	}
	out.ConLengths[0] = res.Start
	copy(out.ConLengths[1:], res.ConnectorLengths)
	if n == 1 {
		out.ConScores[0] = 0
	} else {
		copy(out.ConScores, res.ConnectorScores)
	}
	return res, nil
}
