package workflow

import (
	"context"
	"sync"

	dErrors "taxiassoc/pkg/errors"
)

// InMemoryStore keeps workflows in a map. The decision appliers check the
// gate under the same lock that writes, matching the conditional-update
// behavior of the SQL store.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]Workflow
	byFine map[int64]int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		nextID: 1,
		byID:   make(map[int64]Workflow),
		byFine: make(map[int64]int64),
	}
}

func (s *InMemoryStore) Create(_ context.Context, w *Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byFine[w.LevyFineID]; exists {
		return dErrors.New(dErrors.CodeConflict, "workflow already exists for fine")
	}
	w.ID = s.nextID
	s.nextID++
	s.byID[w.ID] = *w
	s.byFine[w.LevyFineID] = w.ID
	return nil
}

func (s *InMemoryStore) ApplySecretaryDecision(_ context.Context, w *Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[w.ID]
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if current.SecretaryDecision != DecisionPending || current.FinalStatus != StatusOngoing {
		return dErrors.New(dErrors.CodeInvalidState, "secretary decision is not pending")
	}
	s.byID[w.ID] = *w
	return nil
}

func (s *InMemoryStore) ApplyChairpersonDecision(_ context.Context, w *Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[w.ID]
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if current.ChairpersonDecision != DecisionPending || current.FinalStatus != StatusOngoing {
		return dErrors.New(dErrors.CodeInvalidState, "chairperson decision is not pending")
	}
	s.byID[w.ID] = *w
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.byID[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &w, nil
}

func (s *InMemoryStore) FindByFineID(_ context.Context, fineID int64) (*Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byFine[fineID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	w := s.byID[id]
	return &w, nil
}

func (s *InMemoryStore) ListByMember(_ context.Context, memberID int64) ([]Workflow, error) {
	return s.filter(func(w Workflow) bool { return w.MemberID == memberID }), nil
}

func (s *InMemoryStore) ListPendingSecretary(_ context.Context) ([]Workflow, error) {
	return s.filter(func(w Workflow) bool {
		return w.SecretaryDecision == DecisionPending && w.FinalStatus == StatusOngoing
	}), nil
}

func (s *InMemoryStore) ListPendingChairperson(_ context.Context) ([]Workflow, error) {
	return s.filter(func(w Workflow) bool {
		return w.SecretaryDecision != DecisionPending &&
			w.ChairpersonDecision == DecisionPending &&
			w.FinalStatus == StatusOngoing
	}), nil
}

func (s *InMemoryStore) ListOngoing(_ context.Context) ([]Workflow, error) {
	return s.filter(func(w Workflow) bool { return w.FinalStatus == StatusOngoing }), nil
}

func (s *InMemoryStore) filter(keep func(Workflow) bool) []Workflow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workflows := make([]Workflow, 0)
	for id := int64(1); id < s.nextID; id++ {
		if w, ok := s.byID[id]; ok && keep(w) {
			workflows = append(workflows, w)
		}
	}
	return workflows
}
