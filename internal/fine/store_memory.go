package fine

import (
	"context"
	"sort"
	"sync"

	dErrors "taxiassoc/pkg/errors"
)

// InMemoryStore is the map-backed store used by unit tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	fines  map[int64]Fine
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, fines: make(map[int64]Fine)}
}

func (s *InMemoryStore) Create(_ context.Context, f *Fine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = s.nextID
	s.nextID++
	s.fines[f.ID] = *f
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, f *Fine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fines[f.ID]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	s.fines[f.ID] = *f
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Fine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.fines[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &f, nil
}

func (s *InMemoryStore) ListByMember(_ context.Context, memberID int64) ([]Fine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(f Fine) bool { return f.MemberID == memberID }), nil
}

func (s *InMemoryStore) ListByStatus(_ context.Context, status Status) ([]Fine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(f Fine) bool { return f.Status == status }), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Fine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(Fine) bool { return true }), nil
}

func (s *InMemoryStore) SumByStatuses(_ context.Context, statuses []Status) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, f := range s.fines {
		for _, status := range statuses {
			if f.Status == status {
				total += f.Amount
				break
			}
		}
	}
	return total, nil
}

// collect assumes the caller holds at least the read lock.
func (s *InMemoryStore) collect(keep func(Fine) bool) []Fine {
	var out []Fine
	for _, f := range s.fines {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
