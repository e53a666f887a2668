package fleet

import (
	"context"
	"log/slog"
	"strings"

	"taxiassoc/internal/audit"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

// TaxiStore persists taxis. Create and Update must reject duplicate plate
// numbers with a conflict error.
type TaxiStore interface {
	Create(ctx context.Context, t *Taxi) error
	Update(ctx context.Context, t *Taxi) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Taxi, error)
	FindByPlate(ctx context.Context, plate string) (*Taxi, error)
	List(ctx context.Context) ([]Taxi, error)
	ListByRoute(ctx context.Context, routeID int64) ([]Taxi, error)
}

// DriverStore persists drivers. Create must reject duplicate license numbers
// with a conflict error.
type DriverStore interface {
	Create(ctx context.Context, d *Driver) error
	Update(ctx context.Context, d *Driver) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Driver, error)
	List(ctx context.Context) ([]Driver, error)
}

// RouteStore persists routes.
type RouteStore interface {
	Create(ctx context.Context, rt *Route) error
	Update(ctx context.Context, rt *Route) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Route, error)
	List(ctx context.Context) ([]Route, error)
	ListByActive(ctx context.Context, active bool) ([]Route, error)
}

// AuditRecorder is the slice of the audit recorder this service depends on.
type AuditRecorder interface {
	Created(ctx context.Context, rec audit.Snapshotter)
	Updated(ctx context.Context, rec audit.Snapshotter, before map[string]any)
	Deleted(ctx context.Context, rec audit.Snapshotter)
}

// Service manages the taxi, driver and route registries.
type Service struct {
	taxis    TaxiStore
	drivers  DriverStore
	routes   RouteStore
	recorder AuditRecorder
	logger   *slog.Logger
}

func NewService(taxis TaxiStore, drivers DriverStore, routes RouteStore, recorder AuditRecorder, logger *slog.Logger) *Service {
	return &Service{taxis: taxis, drivers: drivers, routes: routes, recorder: recorder, logger: logger}
}

// CreateTaxi registers a vehicle.
func (s *Service) CreateTaxi(ctx context.Context, req CreateTaxiRequest) (*Taxi, error) {
	if strings.TrimSpace(req.PlateNumber) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "plate number is required")
	}

	now := requestcontext.Now(ctx)
	t := &Taxi{
		PlateNumber: strings.TrimSpace(req.PlateNumber),
		Model:       strings.TrimSpace(req.Model),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.taxis.Create(ctx, t); err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "plate number already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create taxi")
	}

	s.logger.InfoContext(ctx, "taxi created", "taxi_id", t.ID, "plate_number", t.PlateNumber)
	s.recorder.Created(ctx, t)
	return t, nil
}

// AssignDriver puts a registered driver behind the wheel of a taxi.
func (s *Service) AssignDriver(ctx context.Context, taxiID, driverID int64) (*Taxi, error) {
	t, err := s.GetTaxi(ctx, taxiID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetDriver(ctx, driverID); err != nil {
		return nil, err
	}

	before := t.AuditSnapshot()
	t.DriverID = driverID
	t.UpdatedAt = requestcontext.Now(ctx)

	if err := s.taxis.Update(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to assign driver")
	}

	s.logger.InfoContext(ctx, "driver assigned", "taxi_id", taxiID, "driver_id", driverID)
	s.recorder.Updated(ctx, t, before)
	return t, nil
}

// AssignRoute puts a taxi on a route.
func (s *Service) AssignRoute(ctx context.Context, taxiID, routeID int64) (*Taxi, error) {
	t, err := s.GetTaxi(ctx, taxiID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetRoute(ctx, routeID); err != nil {
		return nil, err
	}

	before := t.AuditSnapshot()
	t.RouteID = routeID
	t.UpdatedAt = requestcontext.Now(ctx)

	if err := s.taxis.Update(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to assign route")
	}

	s.logger.InfoContext(ctx, "route assigned", "taxi_id", taxiID, "route_id", routeID)
	s.recorder.Updated(ctx, t, before)
	return t, nil
}

func (s *Service) DeleteTaxi(ctx context.Context, id int64) error {
	t, err := s.GetTaxi(ctx, id)
	if err != nil {
		return err
	}
	if err := s.taxis.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete taxi")
	}
	s.recorder.Deleted(ctx, t)
	return nil
}

func (s *Service) GetTaxi(ctx context.Context, id int64) (*Taxi, error) {
	t, err := s.taxis.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "taxi not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load taxi")
	}
	return t, nil
}

func (s *Service) GetTaxiByPlate(ctx context.Context, plate string) (*Taxi, error) {
	t, err := s.taxis.FindByPlate(ctx, strings.TrimSpace(plate))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "taxi not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load taxi")
	}
	return t, nil
}

func (s *Service) ListTaxis(ctx context.Context) ([]Taxi, error) {
	return s.taxis.List(ctx)
}

func (s *Service) ListTaxisByRoute(ctx context.Context, routeID int64) ([]Taxi, error) {
	return s.taxis.ListByRoute(ctx, routeID)
}

// CreateDriver registers a driver.
func (s *Service) CreateDriver(ctx context.Context, req CreateDriverRequest) (*Driver, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if strings.TrimSpace(req.LicenseNumber) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "license number is required")
	}

	now := requestcontext.Now(ctx)
	d := &Driver{
		Name:          strings.TrimSpace(req.Name),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.drivers.Create(ctx, d); err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "license number already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create driver")
	}

	s.logger.InfoContext(ctx, "driver created", "driver_id", d.ID)
	return d, nil
}

func (s *Service) DeleteDriver(ctx context.Context, id int64) error {
	if _, err := s.GetDriver(ctx, id); err != nil {
		return err
	}
	if err := s.drivers.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete driver")
	}
	return nil
}

func (s *Service) GetDriver(ctx context.Context, id int64) (*Driver, error) {
	d, err := s.drivers.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "driver not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load driver")
	}
	return d, nil
}

func (s *Service) ListDrivers(ctx context.Context) ([]Driver, error) {
	return s.drivers.List(ctx)
}

// CreateRoute registers a route, active by default.
func (s *Service) CreateRoute(ctx context.Context, req CreateRouteRequest) (*Route, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if strings.TrimSpace(req.StartPoint) == "" || strings.TrimSpace(req.EndPoint) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "start and end points are required")
	}

	now := requestcontext.Now(ctx)
	rt := &Route{
		Name:       strings.TrimSpace(req.Name),
		StartPoint: strings.TrimSpace(req.StartPoint),
		EndPoint:   strings.TrimSpace(req.EndPoint),
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.routes.Create(ctx, rt); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create route")
	}

	s.logger.InfoContext(ctx, "route created", "route_id", rt.ID, "name", rt.Name)
	return rt, nil
}

// DeactivateRoute takes a route out of service without deleting its history.
func (s *Service) DeactivateRoute(ctx context.Context, id int64) (*Route, error) {
	rt, err := s.GetRoute(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rt.Active {
		return nil, dErrors.New(dErrors.CodeInvalidState, "route is already inactive")
	}

	rt.Active = false
	rt.UpdatedAt = requestcontext.Now(ctx)
	if err := s.routes.Update(ctx, rt); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate route")
	}
	return rt, nil
}

func (s *Service) DeleteRoute(ctx context.Context, id int64) error {
	if _, err := s.GetRoute(ctx, id); err != nil {
		return err
	}
	if err := s.routes.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete route")
	}
	return nil
}

func (s *Service) GetRoute(ctx context.Context, id int64) (*Route, error) {
	rt, err := s.routes.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "route not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load route")
	}
	return rt, nil
}

func (s *Service) ListRoutes(ctx context.Context) ([]Route, error) {
	return s.routes.List(ctx)
}

func (s *Service) ListActiveRoutes(ctx context.Context) ([]Route, error) {
	return s.routes.ListByActive(ctx, true)
}
