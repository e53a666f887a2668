package notification

import (
	"context"
	"sort"
	"sync"

	dErrors "taxiassoc/pkg/errors"
)

// InMemoryStore is the map-backed store used by unit tests and local runs.
type InMemoryStore struct {
	mu            sync.RWMutex
	nextID        int64
	notifications map[int64]Notification
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, notifications: make(map[int64]Notification)}
}

func (s *InMemoryStore) Create(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.nextID
	s.nextID++
	s.notifications[n.ID] = *n
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notifications[n.ID]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	s.notifications[n.ID] = *n
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &n, nil
}

func (s *InMemoryStore) ListByMember(_ context.Context, memberID int64) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(n Notification) bool { return n.MemberID == memberID }), nil
}

func (s *InMemoryStore) ListUnreadByMember(_ context.Context, memberID int64) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(n Notification) bool { return n.MemberID == memberID && n.Status == StatusUnread }), nil
}

func (s *InMemoryStore) ListAllUnread(_ context.Context) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(n Notification) bool { return n.Status == StatusUnread }), nil
}

func (s *InMemoryStore) CountUnreadByMember(_ context.Context, memberID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, n := range s.notifications {
		if n.MemberID == memberID && n.Status == StatusUnread {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) MarkAllReadForMember(_ context.Context, memberID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for id, n := range s.notifications {
		if n.MemberID == memberID && n.Status == StatusUnread {
			n.Status = StatusRead
			s.notifications[id] = n
			count++
		}
	}
	return count, nil
}

// collect assumes the caller holds at least the read lock.
func (s *InMemoryStore) collect(keep func(Notification) bool) []Notification {
	var out []Notification
	for _, n := range s.notifications {
		if keep(n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
