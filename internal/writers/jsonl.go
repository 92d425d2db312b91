// internal/writers/jsonl.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"mplace/pkg/api"
)

// Reuse a 64 KiB buffered writer across JSONL writers to avoid per-writer mallocs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// startJSONL spins up a JSONL encoder goroutine for values of type T.
// Broken pipes on the final flush are not reported.
func startJSONL[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		for v := range in {
			if err := encode(enc, v); err != nil {
				done <- err
				// keep draining so senders never block on a dead writer
				for range in {
				}
				return
			}
		}
		if err := bw.Flush(); err != nil && !IsBrokenPipe(err) {
			done <- err
			return
		}
		done <- nil
	}()

	return in, done
}

// StartPlacementJSONLWriter streams each placement as one JSON line (v1).
func StartPlacementJSONLWriter(out io.Writer, bufSize int) (chan<- api.PlacementV1, <-chan error) {
	return startJSONL(out, bufSize, func(enc *json.Encoder, p api.PlacementV1) error {
		return enc.Encode(p)
	})
}

func writeJSONL(w io.Writer, list []api.PlacementV1) error {
	enc := json.NewEncoder(w)
	for _, p := range list {
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	return nil
}
