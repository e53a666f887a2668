package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps entries in insertion order. Used in tests and when the
// service runs without PostgreSQL.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Entry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *InMemoryStore) ListByTable(_ context.Context, table string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, e := range s.entries {
		if e.TableName == table {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *InMemoryStore) ListByRecord(_ context.Context, table string, recordID int64) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, e := range s.entries {
		if e.TableName == table && e.RecordID == recordID {
			out = append(out, e)
		}
	}
	return out, nil
}
