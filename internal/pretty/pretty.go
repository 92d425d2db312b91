package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"mplace/pkg/api"
)

// Options control the ASCII rendering.
type Options struct {
	// Widest gap or flank drawn base-for-base. Longer stretches collapse to
	// "..[n].." of this width. If <=0, use default (40).
	MaxGap int

	// Draw the recognizer names under the bars row.
	ShowLabels bool

	// Draw the stretches before the first and after the last recognizer.
	ShowFlanks bool

	// Glyphs
	ExactGlyph   string // recognizer scored above background; default "|"
	PartialGlyph string // recognizer at or below background; default "¦"
	DotGlyph     string // default "."
}

// DefaultOptions is the look used by the CLI.
var DefaultOptions = Options{
	MaxGap:       40,
	ShowLabels:   true,
	ShowFlanks:   true,
	ExactGlyph:   "|",
	PartialGlyph: "¦",
	DotGlyph:     ".",
}

const (
	linePrefix = "# "
	prefixPlus = "5'-"
	suffixPlus = "-3'"
)

func (o Options) ExactGlyphOrDefault() string {
	if o.ExactGlyph == "" {
		return DefaultOptions.ExactGlyph
	}
	return o.ExactGlyph
}

func (o Options) PartialGlyphOrDefault() string {
	if o.PartialGlyph == "" {
		return DefaultOptions.PartialGlyph
	}
	return o.PartialGlyph
}

func (o Options) dotOrDefault() string {
	if o.DotGlyph == "" {
		return DefaultOptions.DotGlyph
	}
	return o.DotGlyph
}

func (o Options) maxGapOrDefault() int {
	if o.MaxGap <= 0 {
		return DefaultOptions.MaxGap
	}
	return o.MaxGap
}

// stretch draws n unplaced bases, collapsing long runs around a length label.
func stretch(n int, opt Options) string {
	if n <= 0 {
		return ""
	}
	dot, maxGap := opt.dotOrDefault(), opt.maxGapOrDefault()
	if n <= maxGap {
		return strings.Repeat(dot, n)
	}
	label := fmt.Sprintf("[%d]", n)
	side := (maxGap - len(label)) / 2
	if side < 1 {
		side = 1
	}
	return strings.Repeat(dot, side) + label + strings.Repeat(dot, side)
}

// track accumulates parallel rows that share column positions.
type track struct {
	seq, bars, labels strings.Builder
	col               int
}

func (t *track) pad(b *strings.Builder, want int) {
	have := utf8.RuneCountInString(b.String())
	if want > have {
		b.WriteString(strings.Repeat(" ", want-have))
	}
}

func (t *track) stretch(s string) {
	t.seq.WriteString(s)
	t.col += utf8.RuneCountInString(s)
}

func (t *track) site(site, glyph, label string) {
	t.pad(&t.bars, t.col)
	t.bars.WriteString(strings.Repeat(glyph, utf8.RuneCountInString(site)))
	at := t.col
	if have := utf8.RuneCountInString(t.labels.String()); have > 0 && have >= at {
		at = have + 1
	}
	t.pad(&t.labels, at)
	t.labels.WriteString(label)
	t.seq.WriteString(site)
	t.col += utf8.RuneCountInString(site)
}

// RenderPlacementWithOptions prints the placement block: the matched sites
// joined by their gaps, bars under each site, names, and a score summary.
func RenderPlacementWithOptions(p api.PlacementV1, opt Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s on %s (%d bp, %s) score %.3f\n",
		linePrefix, p.Chain, p.SequenceID, p.SeqLength, p.Variant, p.Score)
	if len(p.Recognizers) == 0 {
		fmt.Fprintf(&b, "%s(pretty not available: no recognizers)\n#\n", linePrefix)
		return b.String()
	}

	var t track
	t.col = len(prefixPlus)
	if opt.ShowFlanks {
		t.stretch(stretch(p.Recognizers[0].Position, opt))
	}
	for i, r := range p.Recognizers {
		site := r.Site
		if site == "" {
			site = strings.Repeat("?", r.Width)
		}
		glyph := opt.PartialGlyphOrDefault()
		if r.Score > 0 {
			glyph = opt.ExactGlyphOrDefault()
		}
		t.site(site, glyph, r.Name)
		if i < len(p.Connectors) {
			t.stretch(stretch(p.Connectors[i].Length, opt))
		}
	}
	if opt.ShowFlanks && p.SeqLength > 0 {
		t.stretch(stretch(p.SeqLength-p.End(), opt))
	}

	fmt.Fprintf(&b, "%s%s%s%s\n", linePrefix, prefixPlus, t.seq.String(), suffixPlus)
	fmt.Fprintf(&b, "%s%s\n", linePrefix, t.bars.String())
	if opt.ShowLabels {
		fmt.Fprintf(&b, "%s%s\n", linePrefix, t.labels.String())
	}

	parts := make([]string, 0, len(p.Recognizers)+len(p.Connectors))
	for i, r := range p.Recognizers {
		parts = append(parts, fmt.Sprintf("%s@%d %.3f", r.Name, r.Position, r.Score))
		if i < len(p.Connectors) {
			c := p.Connectors[i]
			parts = append(parts, fmt.Sprintf("gap %d %.3f", c.Length, c.Score))
		}
	}
	fmt.Fprintf(&b, "%s%s\n", linePrefix, strings.Join(parts, " | "))

	// spacer
	b.WriteString("#\n")
	return b.String()
}

// RenderPlacement renders with DefaultOptions.
func RenderPlacement(p api.PlacementV1) string {
	return RenderPlacementWithOptions(p, DefaultOptions)
}
