package pretty

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mplace/pkg/api"
)

func writeIfMissingOrUpdate(path string, got string) (created bool, err error) {
	// Ensure the testdata directory exists before writing.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	// Allow updating goldens explicitly.
	if os.Getenv("UPDATE_GOLDEN") == "1" {
		return true, os.WriteFile(path, []byte(got), 0644)
	}
	// First-run: create golden if missing.
	if _, e := os.Stat(path); os.IsNotExist(e) {
		return true, os.WriteFile(path, []byte(got), 0644)
	}
	return false, nil
}

func mustRead(path string, t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	return string(b)
}

func twoBox() api.PlacementV1 {
	return api.PlacementV1{
		Chain: "ac", SequenceID: "s1", SeqLength: 16, Variant: "precomputed", Score: 6.5,
		Recognizers: []api.RecognizerHitV1{
			{Name: "a", Position: 0, Width: 2, Score: 2, Site: "AA"},
			{Name: "c", Position: 8, Width: 2, Score: 2, Site: "CC"},
		},
		Connectors: []api.ConnectorHitV1{{Length: 6, Score: 2.5, Mu: 6, Sigma: 1}},
	}
}

func TestRenderPlacement_TwoBoxes(t *testing.T) {
	got := RenderPlacement(twoBox())
	want := "# ac on s1 (16 bp, precomputed) score 6.500\n" +
		"# 5'-AA......CC......-3'\n" +
		"#    ||      ||\n" +
		"#    a       c\n" +
		"# a@0 2.000 | gap 6 2.500 | c@8 2.000\n" +
		"#\n"
	if got != want {
		t.Fatalf("mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRenderPlacement_LongGap_Golden(t *testing.T) {
	p := api.PlacementV1{
		Chain: "tata", SequenceID: "chr1", SeqLength: 300, Variant: "statistical", Score: -1.25,
		Recognizers: []api.RecognizerHitV1{
			{Name: "box1", Position: 120, Width: 4, Score: 3.1, Site: "TATA"},
			{Name: "x", Position: 124, Width: 3, Score: -0.5, Site: "GGC"},
			{Name: "box3", Position: 177, Width: 4, Score: 1.0},
		},
		Connectors: []api.ConnectorHitV1{
			{Length: 0, Score: -2.0},
			{Length: 50, Score: -2.85},
		},
	}
	got := RenderPlacementWithOptions(p, Options{MaxGap: 10, ShowLabels: true, ShowFlanks: true})
	path := filepath.Join("testdata", "long_gap.golden")
	if created, err := writeIfMissingOrUpdate(path, got); err != nil {
		t.Fatalf("write golden: %v", err)
	} else if created {
		t.Logf("wrote %s", path)
		return
	}
	want := mustRead(path, t)
	if got != want {
		t.Fatalf("mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestRenderPlacement_Collapse(t *testing.T) {
	p := twoBox()
	p.Connectors[0].Length = 50
	got := RenderPlacementWithOptions(p, Options{MaxGap: 10})
	if !strings.Contains(got, "AA...[50]...CC") {
		t.Fatalf("gap not collapsed:\n%s", got)
	}
	if strings.Contains(got, "# 5'-AA...[50]...CC.") {
		t.Fatalf("flanks drawn while disabled:\n%s", got)
	}
	if strings.Count(got, "\n") != 5 {
		t.Fatalf("labels row should be omitted:\n%s", got)
	}
}

func TestRenderPlacement_PartialGlyphAndMissingSite(t *testing.T) {
	p := twoBox()
	p.Recognizers[1].Score = -1
	p.Recognizers[1].Site = ""
	got := RenderPlacement(p)
	if !strings.Contains(got, "??") || !strings.Contains(got, "¦¦") {
		t.Fatalf("expected placeholder site and partial bars:\n%s", got)
	}
}

func TestRenderPlacement_Empty(t *testing.T) {
	got := RenderPlacement(api.PlacementV1{Chain: "x"})
	if !strings.Contains(got, "pretty not available") {
		t.Fatalf("unexpected: %s", got)
	}
}

func TestDefaultOptions_Stable(t *testing.T) {
	d := DefaultOptions
	if d.DotGlyph != "." || d.ExactGlyph != "|" || d.PartialGlyph != "¦" || !d.ShowLabels || !d.ShowFlanks {
		t.Fatalf("DefaultOptions visual defaults changed")
	}
}
