package common

import (
	"testing"

	"mplace/pkg/api"
)

func TestSortPlacements_ScoreThenIDs(t *testing.T) {
	ps := []api.PlacementV1{
		{ID: 3, SequenceID: "b", Chain: "c", Score: 1},
		{ID: 1, SequenceID: "a", Chain: "c", Score: 5},
		{ID: 2, SequenceID: "a", Chain: "c", Score: 1},
		{ID: 4, SequenceID: "a", Chain: "b", Score: 1},
	}
	SortPlacements(ps)
	want := []int64{1, 4, 2, 3}
	for i, id := range want {
		if ps[i].ID != id {
			t.Fatalf("pos %d: want id %d, got %+v", i, id, ps)
		}
	}
}
