// internal/output/rows.go
package output

import (
	"fmt"
	"strconv"
	"strings"

	"mplace/pkg/api"
)

func IntsCSV(a []int) string {
	if len(a) == 0 {
		return ""
	}
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = strconv.Itoa(v)
	}
	return strings.Join(ss, ",")
}

func FloatsCSV(a []float64) string {
	if len(a) == 0 {
		return ""
	}
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = strconv.FormatFloat(v, 'f', 4, 64)
	}
	return strings.Join(ss, ",")
}

// FormatRowTSV returns the TSVHeader columns for p (no trailing newline).
func FormatRowTSV(p api.PlacementV1) string {
	pos := make([]int, len(p.Recognizers))
	recScores := make([]float64, len(p.Recognizers))
	for i, r := range p.Recognizers {
		pos[i], recScores[i] = r.Position, r.Score
	}
	lens := make([]int, len(p.Connectors))
	conScores := make([]float64, len(p.Connectors))
	for i, c := range p.Connectors {
		lens[i], conScores[i] = c.Length, c.Score
	}
	return fmt.Sprintf("%s\t%s\t%s\t%.4f\t%d\t%d\t%s\t%s\t%s\t%s",
		p.SequenceID, p.Chain, p.Variant, p.Score,
		p.Start, p.End(),
		IntsCSV(pos), FloatsCSV(recScores),
		IntsCSV(lens), FloatsCSV(conScores),
	)
}
