// internal/writers/registry.go
package writers

import (
	"io"
	"sort"

	"github.com/pkg/errors"

	"mplace/internal/output"
	"mplace/internal/pretty"
	"mplace/pkg/api"
)

// Options shape every placement format.
type Options struct {
	Header    bool // TSV header row (text)
	Pretty    bool // ASCII block after each row (text)
	Sort      bool // best score first
	PrettyOpt pretty.Options
}

// PlacementWriterFunc writes a complete batch in one format.
type PlacementWriterFunc func(w io.Writer, list []api.PlacementV1, o Options) error

// Writer registry (format → handler).
var PlacementWriters = map[string]PlacementWriterFunc{}

// RegisterPlacement adds or replaces a format (last wins).
func RegisterPlacement(format string, fn PlacementWriterFunc) { PlacementWriters[format] = fn }

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(PlacementWriters))
	for k := range PlacementWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// WritePlacements dispatches to the writer registered for format.
func WritePlacements(format string, w io.Writer, list []api.PlacementV1, o Options) error {
	fn, ok := PlacementWriters[format]
	if !ok {
		return errors.Errorf("unknown placement format %q (no writer registered)", format)
	}
	return fn(w, list, o)
}

func init() {
	RegisterPlacement("text", func(w io.Writer, list []api.PlacementV1, o Options) error {
		return output.WriteText(w, list, o.Header, o.Pretty, func(p api.PlacementV1) string {
			return pretty.RenderPlacementWithOptions(p, o.PrettyOpt)
		})
	})
	RegisterPlacement("json", func(w io.Writer, list []api.PlacementV1, _ Options) error {
		return output.WriteJSON(w, list)
	})
	RegisterPlacement("jsonl", func(w io.Writer, list []api.PlacementV1, _ Options) error {
		return writeJSONL(w, list)
	})
	RegisterPlacement("fasta", func(w io.Writer, list []api.PlacementV1, _ Options) error {
		return output.WriteFASTA(w, list)
	})
}
