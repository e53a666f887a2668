package application

import (
	"context"
	"sort"
	"sync"

	dErrors "taxiassoc/pkg/errors"
)

// InMemoryStore is the map-backed store used by unit tests and local runs.
type InMemoryStore struct {
	mu           sync.RWMutex
	nextID       int64
	nextDocID    int64
	applications map[int64]Application
	documents    []Document
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, nextDocID: 1, applications: make(map[int64]Application)}
}

func (s *InMemoryStore) Create(_ context.Context, a *Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextID
	s.nextID++
	s.applications[a.ID] = *a
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, a *Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.applications[a.ID]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	s.applications[a.ID] = *a
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.applications[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &a, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(Application) bool { return true }), nil
}

func (s *InMemoryStore) ListByStatus(_ context.Context, status Status) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(a Application) bool { return a.Status == status }), nil
}

func (s *InMemoryStore) ListPendingSecretary(_ context.Context) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(a Application) bool { return !a.SecretaryReviewed }), nil
}

func (s *InMemoryStore) ListPendingChairperson(_ context.Context) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(a Application) bool { return a.SecretaryReviewed && !a.ChairpersonReviewed }), nil
}

func (s *InMemoryStore) CountByStatus(_ context.Context, status Status) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, a := range s.applications {
		if a.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) CreateDocument(_ context.Context, d *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.nextDocID
	s.nextDocID++
	s.documents = append(s.documents, *d)
	return nil
}

func (s *InMemoryStore) ListDocuments(_ context.Context, applicationID int64) ([]Document, error) {
	return s.collectDocuments(func(d Document) bool { return d.ApplicationID == applicationID }), nil
}

func (s *InMemoryStore) ListDocumentsByType(_ context.Context, documentType string) ([]Document, error) {
	return s.collectDocuments(func(d Document) bool { return d.DocumentType == documentType }), nil
}

func (s *InMemoryStore) collectDocuments(keep func(Document) bool) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Document
	for _, d := range s.documents {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// collect assumes the caller holds at least the read lock.
func (s *InMemoryStore) collect(keep func(Application) bool) []Application {
	var out []Application
	for _, a := range s.applications {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
