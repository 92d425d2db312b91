package output

import (
	"fmt"
	"io"

	"mplace/pkg/api"
)

// WriteFASTA writes every matched recognizer site as a FASTA record.
func WriteFASTA(w io.Writer, list []api.PlacementV1) error {
	for _, p := range list {
		for i, r := range p.Recognizers {
			if r.Site == "" {
				continue
			}
			if _, err := fmt.Fprintf(w,
				">%s_%d %s start=%d end=%d score=%.4f sequence_id=%s\n%s\n",
				p.Chain, i+1, r.Name, r.Position, r.Position+r.Width, r.Score, p.SequenceID, r.Site,
			); err != nil {
				return err
			}
		}
	}
	return nil
}
