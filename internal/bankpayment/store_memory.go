package bankpayment

import (
	"context"
	"sort"
	"sync"

	dErrors "taxiassoc/pkg/errors"
)

// InMemoryStore is the map-backed store used by unit tests and local runs.
type InMemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	payments map[int64]BankPayment
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, payments: make(map[int64]BankPayment)}
}

func (s *InMemoryStore) Create(_ context.Context, p *BankPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.payments {
		if existing.TransactionReference == p.TransactionReference {
			return dErrors.New(dErrors.CodeConflict, "duplicate transaction reference")
		}
	}
	p.ID = s.nextID
	s.nextID++
	s.payments[p.ID] = *p
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, p *BankPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[p.ID]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	s.payments[p.ID] = *p
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*BankPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &p, nil
}

func (s *InMemoryStore) FindByReference(_ context.Context, reference string) (*BankPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.payments {
		if p.TransactionReference == reference {
			out := p
			return &out, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
}

func (s *InMemoryStore) ListByMember(_ context.Context, memberID int64) ([]BankPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p BankPayment) bool { return p.MemberID == memberID }), nil
}

func (s *InMemoryStore) ListByVerified(_ context.Context, verified bool) ([]BankPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p BankPayment) bool { return p.Verified == verified }), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]BankPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(BankPayment) bool { return true }), nil
}

// collect assumes the caller holds at least the read lock.
func (s *InMemoryStore) collect(keep func(BankPayment) bool) []BankPayment {
	var out []BankPayment
	for _, p := range s.payments {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
