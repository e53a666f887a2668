package paymentmethod

import (
	"context"
	"sort"
	"strings"
	"sync"

	dErrors "taxiassoc/pkg/errors"
)

// InMemoryStore is the map-backed store used by unit tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	methods map[int64]Method
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, methods: make(map[int64]Method)}
}

func (s *InMemoryStore) Create(_ context.Context, m *Method) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.methods {
		if strings.EqualFold(existing.Name, m.Name) {
			return dErrors.New(dErrors.CodeConflict, "duplicate payment method name")
		}
	}
	m.ID = s.nextID
	s.nextID++
	s.methods[m.ID] = *m
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Method, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.methods[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &m, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Method, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Method, 0, len(s.methods))
	for _, m := range s.methods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
