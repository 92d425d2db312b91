package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"mplace/core/chain"
	"mplace/core/placement"
	"mplace/pkg/api"
)

func sampleResult() Result {
	col := chain.Column{A: 1}
	return Result{
		SourceFile: "x.fa",
		SequenceID: "s1",
		Sequence:   []byte("AAAAGGGGCCCCTTTT"),
		Chain: chain.Chain{
			Name: "ac",
			Recognizers: []chain.Recognizer{
				{Name: "a", PSSM: []chain.Column{col, col}},
				{Name: "c", PSSM: []chain.Column{col, col}},
			},
			Connectors: []chain.Connector{{Mu: 6, Sigma: 1}},
		},
		Placement: placement.Placement{
			Kind:             placement.Precomputed,
			Score:            6.5,
			Start:            0,
			Positions:        []int{0, 8},
			RecognizerScores: []float64{2, 2},
			ConnectorScores:  []float64{2.5},
			ConnectorLengths: []int{6},
		},
	}
}

func TestToAPIPlacement(t *testing.T) {
	v := ToAPIPlacement(sampleResult())
	if v.Variant != "precomputed" || v.SeqLength != 16 || v.Chain != "ac" {
		t.Fatalf("bad header fields: %+v", v)
	}
	if len(v.Recognizers) != 2 || v.Recognizers[1].Site != "CC" || v.Recognizers[1].Position != 8 {
		t.Fatalf("bad recognizers: %+v", v.Recognizers)
	}
	if len(v.Connectors) != 1 || v.Connectors[0].Length != 6 || v.Connectors[0].Mu != 6 {
		t.Fatalf("bad connectors: %+v", v.Connectors)
	}
	if v.End() != 10 {
		t.Fatalf("end = %d", v.End())
	}
}

func TestWriteText_HeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	list := []api.PlacementV1{ToAPIPlacement(sampleResult())}
	if err := WriteText(&buf, list, true, false, nil); err != nil {
		t.Fatalf("text write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 || lines[0] != TSVHeader {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	want := "s1\tac\tprecomputed\t6.5000\t0\t10\t0,8\t2.0000,2.0000\t6\t2.5000"
	if lines[1] != want {
		t.Fatalf("row mismatch:\n got %q\nwant %q", lines[1], want)
	}
	if strings.Count(TSVHeader, "\t") != strings.Count(lines[1], "\t") {
		t.Fatalf("header and row column counts differ")
	}
}

func TestWriteText_Pretty(t *testing.T) {
	var buf bytes.Buffer
	list := []api.PlacementV1{ToAPIPlacement(sampleResult())}
	render := func(api.PlacementV1) string { return "# block\n" }
	if err := WriteText(&buf, list, false, true, render); err != nil {
		t.Fatalf("text write: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "# block\n") {
		t.Fatalf("pretty block missing:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteJSON(buf, []api.PlacementV1{ToAPIPlacement(sampleResult())}); err != nil {
		t.Fatalf("json write: %v", err)
	}
	var got []api.PlacementV1
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil || len(got) != 1 || got[0].Recognizers[0].Name != "a" {
		t.Fatalf("json decode failed: %v %v", err, got)
	}

	buf.Reset()
	if err := WriteJSON(buf, nil); err != nil || strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("empty list should encode as [], got %q (%v)", buf.String(), err)
	}
}

func TestWriteFASTA(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFASTA(&buf, []api.PlacementV1{ToAPIPlacement(sampleResult())}); err != nil {
		t.Fatalf("fasta write: %v", err)
	}
	want := ">ac_1 a start=0 end=2 score=2.0000 sequence_id=s1\nAA\n" +
		">ac_2 c start=8 end=10 score=2.0000 sequence_id=s1\nCC\n"
	if buf.String() != want {
		t.Fatalf("fasta mismatch:\n%s", buf.String())
	}
}
