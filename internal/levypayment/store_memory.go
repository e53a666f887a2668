package levypayment

import (
	"context"
	"sort"
	"sync"
	"time"

	dErrors "taxiassoc/pkg/errors"
)

// InMemoryStore is the map-backed store used by unit tests and local runs.
type InMemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	payments map[int64]Payment
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, payments: make(map[int64]Payment)}
}

func (s *InMemoryStore) Create(_ context.Context, p *Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID
	s.nextID++
	s.payments[p.ID] = *p
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, p *Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[p.ID]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	s.payments[p.ID] = *p
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &p, nil
}

func (s *InMemoryStore) ListByMember(_ context.Context, memberID int64) ([]Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p Payment) bool { return p.MemberID == memberID }), nil
}

func (s *InMemoryStore) ListByStatus(_ context.Context, status Status) ([]Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p Payment) bool { return p.Status == status }), nil
}

func (s *InMemoryStore) ListByDateRange(_ context.Context, from, to time.Time) ([]Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p Payment) bool {
		return !p.WeekStartDate.Before(from) && !p.WeekStartDate.After(to)
	}), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(Payment) bool { return true }), nil
}

func (s *InMemoryStore) SumByStatus(_ context.Context, status Status) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, p := range s.payments {
		if p.Status == status {
			total += p.Amount
		}
	}
	return total, nil
}

// collect assumes the caller holds at least the read lock.
func (s *InMemoryStore) collect(keep func(Payment) bool) []Payment {
	var out []Payment
	for _, p := range s.payments {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
