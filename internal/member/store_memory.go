package member

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
	members map[int64]Member
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, members: make(map[int64]Member)}
}

func (s *InMemoryStore) Create(_ context.Context, m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.members {
		if existing.SquadNumber == m.SquadNumber {
			return dErrors.New(dErrors.CodeConflict, "duplicate squad number")
		}
	}
	m.ID = s.nextID
	s.nextID++
	s.members[m.ID] = *m
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[m.ID]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	for id, existing := range s.members {
		if id != m.ID && existing.SquadNumber == m.SquadNumber {
			return dErrors.New(dErrors.CodeConflict, "duplicate squad number")
		}
	}
	s.members[m.ID] = *m
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	delete(s.members, id)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &m, nil
}

func (s *InMemoryStore) FindBySquadNumber(_ context.Context, squadNumber string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.SquadNumber == squadNumber {
			out := m
			return &out, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
}

func (s *InMemoryStore) List(_ context.Context) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(Member) bool { return true }), nil
}

func (s *InMemoryStore) ListByBlacklisted(_ context.Context, blacklisted bool) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(m Member) bool { return m.Blacklisted == blacklisted }), nil
}

func (s *InMemoryStore) SearchByName(_ context.Context, name string) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(name)
	return s.collect(func(m Member) bool {
		return strings.Contains(strings.ToLower(m.Name), needle)
	}), nil
}

func (s *InMemoryStore) CountActive(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, m := range s.members {
		if !m.Blacklisted {
			count++
		}
	}
	return count, nil
}

// collect assumes the caller holds at least the read lock.
func (s *InMemoryStore) collect(keep func(Member) bool) []Member {
	var out []Member
	for _, m := range s.members {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
