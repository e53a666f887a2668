package fleet

import (
	"context"
	"sort"
	"sync"

	dErrors "taxiassoc/pkg/errors"
)

// InMemoryTaxiStore is the map-backed taxi store used by unit tests and
// local runs.
type InMemoryTaxiStore struct {
	mu     sync.RWMutex
	nextID int64
	taxis  map[int64]Taxi
}

func NewInMemoryTaxiStore() *InMemoryTaxiStore {
	return &InMemoryTaxiStore{nextID: 1, taxis: make(map[int64]Taxi)}
}

func (s *InMemoryTaxiStore) Create(_ context.Context, t *Taxi) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.taxis {
		if existing.PlateNumber == t.PlateNumber {
			return dErrors.New(dErrors.CodeConflict, "duplicate plate number")
		}
	}
	t.ID = s.nextID
	s.nextID++
	s.taxis[t.ID] = *t
	return nil
}

func (s *InMemoryTaxiStore) Update(_ context.Context, t *Taxi) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.taxis[t.ID]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	for id, existing := range s.taxis {
		if id != t.ID && existing.PlateNumber == t.PlateNumber {
			return dErrors.New(dErrors.CodeConflict, "duplicate plate number")
		}
	}
	s.taxis[t.ID] = *t
	return nil
}

func (s *InMemoryTaxiStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.taxis[id]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	delete(s.taxis, id)
	return nil
}

func (s *InMemoryTaxiStore) FindByID(_ context.Context, id int64) (*Taxi, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.taxis[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &t, nil
}

func (s *InMemoryTaxiStore) FindByPlate(_ context.Context, plate string) (*Taxi, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.taxis {
		if t.PlateNumber == plate {
			out := t
			return &out, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
}

func (s *InMemoryTaxiStore) List(_ context.Context) ([]Taxi, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(Taxi) bool { return true }), nil
}

func (s *InMemoryTaxiStore) ListByRoute(_ context.Context, routeID int64) ([]Taxi, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t Taxi) bool { return t.RouteID == routeID }), nil
}

// collect assumes the caller holds at least the read lock.
func (s *InMemoryTaxiStore) collect(keep func(Taxi) bool) []Taxi {
	var out []Taxi
	for _, t := range s.taxis {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// InMemoryDriverStore is the map-backed driver store.
type InMemoryDriverStore struct {
	mu      sync.RWMutex
	nextID  int64
	drivers map[int64]Driver
}

func NewInMemoryDriverStore() *InMemoryDriverStore {
	return &InMemoryDriverStore{nextID: 1, drivers: make(map[int64]Driver)}
}

func (s *InMemoryDriverStore) Create(_ context.Context, d *Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.drivers {
		if existing.LicenseNumber == d.LicenseNumber {
			return dErrors.New(dErrors.CodeConflict, "duplicate license number")
		}
	}
	d.ID = s.nextID
	s.nextID++
	s.drivers[d.ID] = *d
	return nil
}

func (s *InMemoryDriverStore) Update(_ context.Context, d *Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[d.ID]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	s.drivers[d.ID] = *d
	return nil
}

func (s *InMemoryDriverStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[id]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	delete(s.drivers, id)
	return nil
}

func (s *InMemoryDriverStore) FindByID(_ context.Context, id int64) (*Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &d, nil
}

func (s *InMemoryDriverStore) List(_ context.Context) ([]Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// InMemoryRouteStore is the map-backed route store.
type InMemoryRouteStore struct {
	mu     sync.RWMutex
	nextID int64
	routes map[int64]Route
}

func NewInMemoryRouteStore() *InMemoryRouteStore {
	return &InMemoryRouteStore{nextID: 1, routes: make(map[int64]Route)}
}

func (s *InMemoryRouteStore) Create(_ context.Context, rt *Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt.ID = s.nextID
	s.nextID++
	s.routes[rt.ID] = *rt
	return nil
}

func (s *InMemoryRouteStore) Update(_ context.Context, rt *Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.routes[rt.ID]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	s.routes[rt.ID] = *rt
	return nil
}

func (s *InMemoryRouteStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.routes[id]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	delete(s.routes, id)
	return nil
}

func (s *InMemoryRouteStore) FindByID(_ context.Context, id int64) (*Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.routes[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return &rt, nil
}

func (s *InMemoryRouteStore) List(_ context.Context) ([]Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(Route) bool { return true }), nil
}

func (s *InMemoryRouteStore) ListByActive(_ context.Context, active bool) ([]Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(rt Route) bool { return rt.Active == active }), nil
}

// collect assumes the caller holds at least the read lock.
func (s *InMemoryRouteStore) collect(keep func(Route) bool) []Route {
	var out []Route
	for _, rt := range s.routes {
		if keep(rt) {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
