// internal/output/result.go
package output

import (
	"mplace/core/chain"
	"mplace/core/placement"
	"mplace/pkg/api"
)

// Result is one placement together with what it was computed from.
type Result struct {
	SourceFile string
	SequenceID string
	Sequence   []byte
	Chain      chain.Chain
	Placement  placement.Placement
}

// ToAPIPlacement converts a Result to the stable wire schema (v1).
func ToAPIPlacement(r Result) api.PlacementV1 {
	p := r.Placement
	v := api.PlacementV1{
		Chain:       r.Chain.Name,
		SequenceID:  r.SequenceID,
		SourceFile:  r.SourceFile,
		SeqLength:   len(r.Sequence),
		Variant:     p.Kind.String(),
		Score:       p.Score,
		Start:       p.Start,
		Recognizers: make([]api.RecognizerHitV1, len(p.Positions)),
		Connectors:  make([]api.ConnectorHitV1, len(p.ConnectorLengths)),
	}
	for i, pos := range p.Positions {
		rec := r.Chain.Recognizers[i]
		hit := api.RecognizerHitV1{
			Name:     rec.Name,
			Position: pos,
			Width:    rec.Width(),
			Score:    p.RecognizerScores[i],
		}
		if end := pos + rec.Width(); end <= len(r.Sequence) {
			hit.Site = string(r.Sequence[pos:end])
		}
		v.Recognizers[i] = hit
	}
	for i, l := range p.ConnectorLengths {
		c := api.ConnectorHitV1{Length: l, Score: p.ConnectorScores[i]}
		if i < len(r.Chain.Connectors) {
			c.Mu, c.Sigma = r.Chain.Connectors[i].Mu, r.Chain.Connectors[i].Sigma
		}
		v.Connectors[i] = c
	}
	return v
}
