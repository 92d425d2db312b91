// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"mplace/pkg/api"
)

// WriteText prints one TSV row per placement, each optionally followed by
// its pretty block.
func WriteText(w io.Writer, list []api.PlacementV1, header, pretty bool, render func(api.PlacementV1) string) error {
	in := make(chan api.PlacementV1, len(list))
	for _, p := range list {
		in <- p
	}
	close(in)
	return StreamText(w, in, header, pretty, render)
}

// StreamText is WriteText over a channel.
func StreamText(w io.Writer, in <-chan api.PlacementV1, header, pretty bool, render func(api.PlacementV1) string) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for p := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(p)); err != nil {
			return err
		}
		if pretty && render != nil {
			if _, err := io.WriteString(w, render(p)); err != nil {
				return err
			}
		}
	}
	return nil
}
