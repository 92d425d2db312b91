package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"mplace/pkg/api"
)

var (
	//go:embed sql/*
	f embed.FS
)

type SQLiteStore struct {
	path string
	now  func() time.Time

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path, now: time.Now}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("store: sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return errors.Wrapf(err, "failed to open database: %s", s.path)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return errors.Wrapf(err, "failed to open database: %s", s.path)
	}

	log.Debug("creating db schema...")
	b, err := f.ReadFile("sql/ddl.sql")
	if err != nil {
		_ = db.Close()
		return errors.Wrap(err, "failed to read the schema creation file")
	}
	if _, err := db.ExecContext(ctx, string(b)); err != nil {
		_ = db.Close()
		return errors.Wrapf(err, "failed to create database schema in: %s", s.path)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

func (s *SQLiteStore) Save(ctx context.Context, p *api.PlacementV1) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	created := timestamp(s.now)
	rec := clone(*p)
	rec.ID, rec.CreatedAt = 0, ""
	payload, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "store: encode placement")
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO placements (created_at, chain, sequence_id, variant, score, payload)
		VALUES (?, ?, ?, ?, ?, ?)
	`, created, p.Chain, p.SequenceID, p.Variant, p.Score, payload)
	if err != nil {
		return errors.Wrap(err, "store: insert placement")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "store: insert placement")
	}
	p.ID, p.CreatedAt = id, created
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (api.PlacementV1, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return api.PlacementV1{}, false, err
	}

	row := db.QueryRowContext(ctx, `SELECT id, created_at, payload FROM placements WHERE id = ?`, id)
	p, err := scanPlacement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return api.PlacementV1{}, false, nil
		}
		return api.PlacementV1{}, false, errors.Wrapf(err, "store: get placement %d", id)
	}
	return p, true, nil
}

func (s *SQLiteStore) List(ctx context.Context, f Filter) ([]api.PlacementV1, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if f.Chain != "" {
		where = append(where, "chain = ?")
		args = append(args, f.Chain)
	}
	if f.SequenceID != "" {
		where = append(where, "sequence_id = ?")
		args = append(args, f.SequenceID)
	}
	q := `SELECT id, created_at, payload FROM placements`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "store: list placements")
	}
	defer rows.Close()

	var out []api.PlacementV1
	for rows.Next() {
		p, err := scanPlacement(rows)
		if err != nil {
			return nil, errors.Wrap(err, "store: list placements")
		}
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "store: list placements")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlacement(sc scanner) (api.PlacementV1, error) {
	var (
		id      int64
		created string
		payload []byte
	)
	if err := sc.Scan(&id, &created, &payload); err != nil {
		return api.PlacementV1{}, err
	}
	var p api.PlacementV1
	if err := json.Unmarshal(payload, &p); err != nil {
		return api.PlacementV1{}, errors.Wrapf(err, "decode placement %d", id)
	}
	p.ID, p.CreatedAt = id, created
	return p, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
