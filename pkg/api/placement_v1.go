// pkg/api/placement_v1.go
package api

// PlacementV1 is the stable JSON/JSONL schema for one chain placement.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type PlacementV1 struct {
	ID         int64  `json:"id,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"` // RFC 3339, set by the result store
	Chain      string `json:"chain"`
	SequenceID string `json:"sequence_id"`
	SourceFile string `json:"source_file,omitempty"`
	SeqLength  int    `json:"sequence_length"`
	Variant    string `json:"variant"` // "statistical" | "precomputed"

	Score float64 `json:"score"`
	// Start is recognizer 0's offset within its feasible range.
	Start int `json:"start"`

	Recognizers []RecognizerHitV1 `json:"recognizers"`
	Connectors  []ConnectorHitV1  `json:"connectors"`
}

// RecognizerHitV1 is where one recognizer landed.
type RecognizerHitV1 struct {
	Name     string  `json:"name"`
	Position int     `json:"position"` // 0-based
	Width    int     `json:"width"`
	Score    float64 `json:"score"`
	Site     string  `json:"site,omitempty"`
}

// ConnectorHitV1 is the gap chosen between two consecutive recognizers.
type ConnectorHitV1 struct {
	Length int     `json:"length"`
	Score  float64 `json:"score"`
	Mu     float64 `json:"mu"`
	Sigma  float64 `json:"sigma"`
}

// End returns one past the last base covered by the chain.
func (p PlacementV1) End() int {
	if len(p.Recognizers) == 0 {
		return 0
	}
	last := p.Recognizers[len(p.Recognizers)-1]
	return last.Position + last.Width
}
