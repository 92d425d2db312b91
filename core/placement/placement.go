// Package placement finds the best placement of an ordered chain of
// recognizers (PSSMs) joined by variable-length connectors on one DNA
// sequence.
//
// Scores are log2-odds and add up across the chain: the reported Score is
// the sum of every recognizer score and every connector score.
package placement

import "github.com/pkg/errors"

// Problem is one chain to place on one sequence.
type Problem struct {
	Sequence    []byte
	Recognizers []Recognizer
	Connectors  ConnectorModel
}

// Options tune how the work is spread; they never change the result.
type Options struct {
	Workers int // goroutines for scoring and DP stages (<=1 runs the DP serially)
}

// Placement is the optimal placement of a chain.
type Placement struct {
	Kind  ConnectorKind
	Score float64

	// Start is recognizer 0's position relative to its forward offset.
	Start int
	// Positions are absolute 0-based start indices, one per recognizer.
	Positions []int

	RecognizerScores []float64
	ConnectorScores  []float64
	ConnectorLengths []int
}

// Widths returns the recognizer widths of a problem.
func (p Problem) Widths() []int {
	w := make([]int, len(p.Recognizers))
	for i, r := range p.Recognizers {
		w[i] = r.Width()
	}
	return w
}

// Geometry validates the problem and returns its placement bounds.
func (p Problem) Geometry() (Geometry, error) {
	if len(p.Recognizers) == 0 {
		return Geometry{}, ErrNoRecognizers
	}
	for i, r := range p.Recognizers {
		if err := r.validate(i); err != nil {
			return Geometry{}, err
		}
	}
	g, err := NewGeometry(len(p.Sequence), p.Widths())
	if err != nil {
		return Geometry{}, err
	}
	if err := p.Connectors.validate(g); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// Place computes the optimal placement. All scratch tables belong to this
// call, so Place may run concurrently on independent problems.
func Place(p Problem, opt Options) (Placement, error) {
	g, err := p.Geometry()
	if err != nil {
		return Placement{}, errors.WithStack(err)
	}

	scores := ScoreMatrix(p.Sequence, p.Recognizers, g, opt.Workers)

	var out Placement
	if g.NumRec == 1 {
		out = placeSingle(scores, g)
	} else {
		gapScore := p.Connectors.ScoreFunc(g)
		dp := fillTraceback(scores, g, gapScore, opt.Workers)
		out = traceback(scores, dp, g, gapScore)
	}
	out.Kind = p.Connectors.Kind
	return out, nil
}
