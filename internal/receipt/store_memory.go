package receipt

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
	receipts map[int64]Receipt
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, receipts: make(map[int64]Receipt)}
}

func (s *InMemoryStore) Create(_ context.Context, r *Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.receipts {
		if existing.ReceiptNumber == r.ReceiptNumber {
			return dErrors.New(dErrors.CodeConflict, "duplicate receipt number")
		}
	}
	r.ID = s.nextID
	s.nextID++
	s.receipts[r.ID] = *r
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.receipts[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &r, nil
}

func (s *InMemoryStore) FindByNumber(_ context.Context, number string) (*Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.receipts {
		if r.ReceiptNumber == number {
			out := r
			return &out, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
}

func (s *InMemoryStore) ListByMember(_ context.Context, memberID int64) ([]Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(r Receipt) bool { return r.MemberID == memberID }), nil
}

func (s *InMemoryStore) ListByIssuer(_ context.Context, issuedBy string) ([]Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(r Receipt) bool { return r.IssuedBy == issuedBy }), nil
}

func (s *InMemoryStore) ListByDateRange(_ context.Context, from, to time.Time) ([]Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(r Receipt) bool {
		return !r.IssuedDate.Before(from) && !r.IssuedDate.After(to)
	}), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(Receipt) bool { return true }), nil
}

// collect assumes the caller holds at least the read lock.
func (s *InMemoryStore) collect(keep func(Receipt) bool) []Receipt {
	var out []Receipt
	for _, r := range s.receipts {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
