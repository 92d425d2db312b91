// Package store persists placement results.
package store

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"mplace/pkg/api"
)

// Store defines persistence operations for placement results.
type Store interface {
	Init(ctx context.Context) error
	// Save assigns p.ID and p.CreatedAt and stores a copy.
	Save(ctx context.Context, p *api.PlacementV1) error
	Get(ctx context.Context, id int64) (api.PlacementV1, bool, error)
	List(ctx context.Context, f Filter) ([]api.PlacementV1, error)
}

// Filter narrows List. Empty fields match everything; Limit <= 0 is
// unlimited. Results are in insertion order.
type Filter struct {
	Chain      string
	SequenceID string
	Limit      int
}

func (f Filter) match(p api.PlacementV1) bool {
	return (f.Chain == "" || p.Chain == f.Chain) &&
		(f.SequenceID == "" || p.SequenceID == f.SequenceID)
}

var (
	ErrNotInitialized = errors.New("store: not initialized")
	ErrUnknownBackend = errors.New("store: unsupported backend")
)

// Backend names accepted by NewStore.
const (
	KindNone   = "none"
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

func timestamp(now func() time.Time) string {
	return now().UTC().Format(time.RFC3339)
}

// NewStore returns an uninitialized store of the given kind. "none" and ""
// return a nil Store.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", KindNone:
		return nil, nil
	case KindMemory:
		return NewMemoryStore(), nil
	case KindSQLite:
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
