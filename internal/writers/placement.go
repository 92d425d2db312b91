package writers

import (
	"io"

	"mplace/internal/common"
	"mplace/pkg/api"
)

// StartPlacementWriter spins up a writer goroutine for placements. Unsorted
// JSONL streams line by line; every other format is written once the
// channel closes.
func StartPlacementWriter(out io.Writer, format string, o Options, bufSize int) (chan<- api.PlacementV1, <-chan error) {
	if format == "jsonl" && !o.Sort {
		return StartPlacementJSONLWriter(out, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.PlacementV1, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var buf []api.PlacementV1
		for p := range in {
			buf = append(buf, p)
		}
		if o.Sort {
			common.SortPlacements(buf)
		}
		errCh <- WritePlacements(format, out, buf, o)
	}()

	return in, errCh
}
