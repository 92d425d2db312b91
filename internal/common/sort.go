// internal/common/sort.go
package common

import (
	"sort"

	"mplace/pkg/api"
)

// LessPlacement defines a stable order for placements (for --sort): best
// score first, then by sequence, chain and store id.
func LessPlacement(a, b api.PlacementV1) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.SequenceID != b.SequenceID {
		return a.SequenceID < b.SequenceID
	}
	if a.Chain != b.Chain {
		return a.Chain < b.Chain
	}
	return a.ID < b.ID
}

func SortPlacements(ps []api.PlacementV1) {
	sort.SliceStable(ps, func(i, j int) bool { return LessPlacement(ps[i], ps[j]) })
}
