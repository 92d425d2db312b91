// Package fasta reads FASTA records, plain or gzipped, from files or stdin.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
)

// Record is one parsed FASTA sequence.
type Record struct {
	ID  string
	Seq []byte
}

var (
	ErrNoRecords      = errors.New("fasta: no records")
	ErrRecordNotFound = errors.New("fasta: record not found")
)

const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)

// Scan parses FASTA from r and calls emit once per record. Sequence lines
// before any header form a record with an empty ID. Returning a non-nil
// error from emit stops the scan.
func Scan(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id   string
		seen bool
		seq  = make([]byte, 0, 1<<16)
	)
	flush := func() error {
		if !seen && len(seq) == 0 {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			seq = seq[:0]
			id = parseHeaderID(line[1:])
			seen = true
			continue
		}
		if line[0] == ';' {
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "fasta scan")
	}
	return flush()
}

// ReadRecord returns the record named id from path, or the first record
// when id is empty.
func ReadRecord(ctx context.Context, path, id string) (Record, error) {
	rc, err := Open(path)
	if err != nil {
		return Record{}, err
	}
	defer func() { _ = rc.Close() }()

	var (
		found Record
		ok    bool
		seen  bool
	)
	errStop := errors.New("stop")
	err = Scan(ctx, rc, func(r Record) error {
		seen = true
		if id == "" || r.ID == id {
			found, ok = r, true
			return errStop
		}
		return nil
	})
	if err != nil && err != errStop {
		return Record{}, err
	}
	switch {
	case ok:
		return found, nil
	case !seen:
		return Record{}, errors.Wrapf(ErrNoRecords, "%s", path)
	default:
		return Record{}, errors.Wrapf(ErrRecordNotFound, "%s: %q", path, id)
	}
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
