package placement

import "github.com/pkg/errors"

// ForwardOffset returns the first sequence index recognizer i may start at,
// i.e. the summed widths of every recognizer placed before it.
func ForwardOffset(i int, widths []int) int {
	offset := 0
	for t := 0; t < i; t++ {
		offset += widths[t]
	}
	return offset
}

// ReverseOffset returns the summed widths of recognizer i and every recognizer
// after it, minus one. A recognizer starting at L-ReverseOffset(i)-1 leaves
// just enough room on the right for the rest of the chain.
func ReverseOffset(i int, widths []int) int {
	offset := 0
	for t := len(widths) - 1; t >= i; t-- {
		offset += widths[t]
	}
	return offset - 1
}

// NumAlignments is the number of candidate start positions shared by every
// recognizer once positions are expressed relative to ForwardOffset.
func NumAlignments(seqLen int, widths []int) int {
	return seqLen - ForwardOffset(0, widths) - ReverseOffset(0, widths)
}

// Geometry holds the per-call placement bounds.
type Geometry struct {
	SeqLen        int
	EffectiveLen  int // SeqLen minus all recognizer widths
	NumRec        int
	NumAlignments int
	Forward       []int
	Reverse       []int
}

// NewGeometry computes offsets for every recognizer. It fails when the chain
// does not fit on the sequence, so no position outside [0, seqLen) is ever
// scored.
func NewGeometry(seqLen int, widths []int) (Geometry, error) {
	if len(widths) == 0 {
		return Geometry{}, ErrNoRecognizers
	}
	total := 0
	for i, w := range widths {
		if w <= 0 {
			return Geometry{}, errors.Wrapf(ErrBadMatrixShape, "recognizer %d has width %d", i, w)
		}
		total += w
	}
	g := Geometry{
		SeqLen:        seqLen,
		EffectiveLen:  seqLen - total,
		NumRec:        len(widths),
		NumAlignments: NumAlignments(seqLen, widths),
		Forward:       make([]int, len(widths)),
		Reverse:       make([]int, len(widths)),
	}
	if g.NumAlignments <= 0 {
		return Geometry{}, errors.Wrapf(ErrSequenceTooShort, "sequence length %d, chain width %d", seqLen, total)
	}
	for i := range widths {
		g.Forward[i] = ForwardOffset(i, widths)
		g.Reverse[i] = ReverseOffset(i, widths)
	}
	return g, nil
}
