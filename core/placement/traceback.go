package placement

import "gonum.org/v1/gonum/mat"

// traceback walks the gap choices back from the best final end position.
// Each stage's gap is read at the current end position and subtracted to
// reach the previous stage's end position; what remains after the first
// connector is the start of recognizer 0. Individual scores are then
// re-derived rather than kept during the forward pass.
func traceback(scores *mat.Dense, dp dpResult, g Geometry, gapScore func(conn, gap int) float64) Placement {
	a := g.NumAlignments
	numCon := g.NumRec - 1

	index := maxIndex(dp.alignments)
	best := dp.alignments[index]

	lengths := make([]int, numCon)
	for c := numCon - 1; c >= 0; c-- {
		lengths[c] = dp.gapChoice[c*a+index]
		index -= lengths[c]
	}

	p := Placement{
		Score:            best,
		Start:            index,
		Positions:        make([]int, g.NumRec),
		RecognizerScores: make([]float64, g.NumRec),
		ConnectorScores:  make([]float64, numCon),
		ConnectorLengths: lengths,
	}
	for c, gap := range lengths {
		p.ConnectorScores[c] = gapScore(c, gap)
	}

	offset := 0
	for i := 0; i < g.NumRec; i++ {
		if i == 0 {
			offset = p.Start
		} else {
			offset += lengths[i-1]
		}
		p.RecognizerScores[i] = scores.At(i, offset)
		p.Positions[i] = g.Forward[i] + offset
	}
	return p
}
