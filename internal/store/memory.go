package store

import (
	"context"
	"sync"
	"time"

	"mplace/pkg/api"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	nextID      int64
	records     []api.PlacementV1
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.nextID = 1
	s.records = nil
	return nil
}

func (s *MemoryStore) Save(_ context.Context, p *api.PlacementV1) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	p.ID = s.nextID
	p.CreatedAt = timestamp(s.now)
	s.nextID++
	s.records = append(s.records, clone(*p))
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (api.PlacementV1, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return api.PlacementV1{}, false, ErrNotInitialized
	}
	for _, r := range s.records {
		if r.ID == id {
			return clone(r), true, nil
		}
	}
	return api.PlacementV1{}, false, nil
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]api.PlacementV1, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	var out []api.PlacementV1
	for _, r := range s.records {
		if !f.match(r) {
			continue
		}
		out = append(out, clone(r))
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func clone(p api.PlacementV1) api.PlacementV1 {
	p.Recognizers = append([]api.RecognizerHitV1(nil), p.Recognizers...)
	p.Connectors = append([]api.ConnectorHitV1(nil), p.Connectors...)
	return p
}
