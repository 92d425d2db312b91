package fasta

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

const plain = `>seq1 first record
ACGT
acgt
>seq2
NNnn
`

// writeGz creates a gzipped FASTA file with provided data, returns the file path.
func writeGz(t *testing.T, data string) string {
	path := filepath.Join(t.TempDir(), "test.fa.gz")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(data)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestScan_Records(t *testing.T) {
	var got []Record
	err := Scan(context.Background(), strings.NewReader(plain), func(r Record) error {
		got = append(got, r)
		return nil
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 2 || got[0].ID != "seq1" || string(got[0].Seq) != "ACGTacgt" || string(got[1].Seq) != "NNnn" {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestScan_Headerless(t *testing.T) {
	var got []Record
	_ = Scan(context.Background(), strings.NewReader("ACGT\nTT\n"), func(r Record) error {
		got = append(got, r)
		return nil
	})
	if len(got) != 1 || got[0].ID != "" || string(got[0].Seq) != "ACGTTT" {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestScan_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := 0
	err := Scan(ctx, strings.NewReader(plain), func(Record) error { n++; return nil })
	if !errors.Is(err, context.Canceled) || n != 0 {
		t.Fatalf("want canceled with no records, got err=%v n=%d", err, n)
	}
}

func TestReadRecord_Gzip(t *testing.T) {
	path := writeGz(t, plain)

	r, err := ReadRecord(context.Background(), path, "seq2")
	if err != nil || string(r.Seq) != "NNnn" {
		t.Fatalf("gzip read failed: %+v %v", r, err)
	}
	first, err := ReadRecord(context.Background(), path, "")
	if err != nil || first.ID != "seq1" {
		t.Fatalf("first record: %+v %v", first, err)
	}
	if _, err := ReadRecord(context.Background(), path, "nope"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestReadRecord_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fa")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadRecord(context.Background(), path, ""); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("want ErrNoRecords, got %v", err)
	}
	if _, err := ReadRecord(context.Background(), filepath.Join(t.TempDir(), "missing.fa"), ""); err == nil {
		t.Fatal("expected open error")
	}
}

func TestReadRecord_Stdin(t *testing.T) {
	orig := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()

	rec, err := ReadRecord(context.Background(), "-", "seq1")
	if err != nil || string(rec.Seq) != "ACGTacgt" {
		t.Fatalf("stdin read failed: %+v %v", rec, err)
	}
}
