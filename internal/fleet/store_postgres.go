package fleet

import (
	"context"
	"database/sql"
	"fmt"

	"taxiassoc/internal/platform/pgutil"
	dErrors "taxiassoc/pkg/errors"
)

// PostgresTaxiStore persists taxis in the taxi table.
type PostgresTaxiStore struct {
	db *sql.DB
}

func NewPostgresTaxiStore(db *sql.DB) *PostgresTaxiStore {
	return &PostgresTaxiStore{db: db}
}

const taxiColumns = `taxi_id, plate_number, model, driver_id, route_id, created_at, updated_at`

func (s *PostgresTaxiStore) Create(ctx context.Context, t *Taxi) error {
	query := `
		INSERT INTO taxi (plate_number, model, driver_id, route_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING taxi_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		t.PlateNumber, pgutil.NullString(t.Model),
		pgutil.NullInt64(t.DriverID), pgutil.NullInt64(t.RouteID),
		t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		if pgutil.IsUniqueViolation(err) {
			return dErrors.New(dErrors.CodeConflict, "duplicate plate number")
		}
		return fmt.Errorf("insert taxi: %w", err)
	}
	return nil
}

func (s *PostgresTaxiStore) Update(ctx context.Context, t *Taxi) error {
	query := `
		UPDATE taxi
		SET plate_number = $1, model = $2, driver_id = $3, route_id = $4, updated_at = $5
		WHERE taxi_id = $6
	`
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, query,
		t.PlateNumber, pgutil.NullString(t.Model),
		pgutil.NullInt64(t.DriverID), pgutil.NullInt64(t.RouteID),
		t.UpdatedAt, t.ID,
	)
	if err != nil {
		if pgutil.IsUniqueViolation(err) {
			return dErrors.New(dErrors.CodeConflict, "duplicate plate number")
		}
		return fmt.Errorf("update taxi: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresTaxiStore) Delete(ctx context.Context, id int64) error {
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, `DELETE FROM taxi WHERE taxi_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete taxi: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresTaxiStore) FindByID(ctx context.Context, id int64) (*Taxi, error) {
	row := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+taxiColumns+` FROM taxi WHERE taxi_id = $1`, id)
	return scanOneTaxi(row)
}

func (s *PostgresTaxiStore) FindByPlate(ctx context.Context, plate string) (*Taxi, error) {
	row := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+taxiColumns+` FROM taxi WHERE plate_number = $1`, plate)
	return scanOneTaxi(row)
}

func (s *PostgresTaxiStore) List(ctx context.Context) ([]Taxi, error) {
	return s.query(ctx, `SELECT `+taxiColumns+` FROM taxi ORDER BY taxi_id`)
}

func (s *PostgresTaxiStore) ListByRoute(ctx context.Context, routeID int64) ([]Taxi, error) {
	return s.query(ctx, `SELECT `+taxiColumns+` FROM taxi WHERE route_id = $1 ORDER BY taxi_id`, routeID)
}

func (s *PostgresTaxiStore) query(ctx context.Context, query string, args ...any) ([]Taxi, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query taxis: %w", err)
	}
	defer rows.Close()

	var taxis []Taxi
	for rows.Next() {
		t, err := scanTaxi(rows)
		if err != nil {
			return nil, fmt.Errorf("scan taxi: %w", err)
		}
		taxis = append(taxis, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate taxis: %w", err)
	}
	return taxis, nil
}

func scanOneTaxi(row *sql.Row) (*Taxi, error) {
	t, err := scanTaxi(row)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan taxi: %w", err)
	}
	return t, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaxi(row scanner) (*Taxi, error) {
	var t Taxi
	var model sql.NullString
	var driverID, routeID sql.NullInt64
	err := row.Scan(&t.ID, &t.PlateNumber, &model, &driverID, &routeID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Model = model.String
	t.DriverID = driverID.Int64
	t.RouteID = routeID.Int64
	return &t, nil
}

// PostgresDriverStore persists drivers in the driver table.
type PostgresDriverStore struct {
	db *sql.DB
}

func NewPostgresDriverStore(db *sql.DB) *PostgresDriverStore {
	return &PostgresDriverStore{db: db}
}

const driverColumns = `driver_id, name, license_number, contact_number, created_at, updated_at`

func (s *PostgresDriverStore) Create(ctx context.Context, d *Driver) error {
	query := `
		INSERT INTO driver (name, license_number, contact_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING driver_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		d.Name, d.LicenseNumber, pgutil.NullString(d.ContactNumber), d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		if pgutil.IsUniqueViolation(err) {
			return dErrors.New(dErrors.CodeConflict, "duplicate license number")
		}
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

func (s *PostgresDriverStore) Update(ctx context.Context, d *Driver) error {
	query := `
		UPDATE driver
		SET name = $1, license_number = $2, contact_number = $3, updated_at = $4
		WHERE driver_id = $5
	`
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, query,
		d.Name, d.LicenseNumber, pgutil.NullString(d.ContactNumber), d.UpdatedAt, d.ID,
	)
	if err != nil {
		if pgutil.IsUniqueViolation(err) {
			return dErrors.New(dErrors.CodeConflict, "duplicate license number")
		}
		return fmt.Errorf("update driver: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresDriverStore) Delete(ctx context.Context, id int64) error {
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, `DELETE FROM driver WHERE driver_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresDriverStore) FindByID(ctx context.Context, id int64) (*Driver, error) {
	var d Driver
	var contact sql.NullString
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+driverColumns+` FROM driver WHERE driver_id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.LicenseNumber, &contact, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan driver: %w", err)
	}
	d.ContactNumber = contact.String
	return &d, nil
}

func (s *PostgresDriverStore) List(ctx context.Context) ([]Driver, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx,
		`SELECT `+driverColumns+` FROM driver ORDER BY driver_id`)
	if err != nil {
		return nil, fmt.Errorf("query drivers: %w", err)
	}
	defer rows.Close()

	var drivers []Driver
	for rows.Next() {
		var d Driver
		var contact sql.NullString
		if err := rows.Scan(&d.ID, &d.Name, &d.LicenseNumber, &contact, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		d.ContactNumber = contact.String
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drivers: %w", err)
	}
	return drivers, nil
}

// PostgresRouteStore persists routes in the route table.
type PostgresRouteStore struct {
	db *sql.DB
}

func NewPostgresRouteStore(db *sql.DB) *PostgresRouteStore {
	return &PostgresRouteStore{db: db}
}

const routeColumns = `route_id, name, start_point, end_point, active, created_at, updated_at`

func (s *PostgresRouteStore) Create(ctx context.Context, rt *Route) error {
	query := `
		INSERT INTO route (name, start_point, end_point, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING route_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		rt.Name, rt.StartPoint, rt.EndPoint, rt.Active, rt.CreatedAt, rt.UpdatedAt,
	).Scan(&rt.ID)
	if err != nil {
		return fmt.Errorf("insert route: %w", err)
	}
	return nil
}

func (s *PostgresRouteStore) Update(ctx context.Context, rt *Route) error {
	query := `
		UPDATE route
		SET name = $1, start_point = $2, end_point = $3, active = $4, updated_at = $5
		WHERE route_id = $6
	`
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, query,
		rt.Name, rt.StartPoint, rt.EndPoint, rt.Active, rt.UpdatedAt, rt.ID,
	)
	if err != nil {
		return fmt.Errorf("update route: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresRouteStore) Delete(ctx context.Context, id int64) error {
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, `DELETE FROM route WHERE route_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresRouteStore) FindByID(ctx context.Context, id int64) (*Route, error) {
	var rt Route
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+routeColumns+` FROM route WHERE route_id = $1`, id,
	).Scan(&rt.ID, &rt.Name, &rt.StartPoint, &rt.EndPoint, &rt.Active, &rt.CreatedAt, &rt.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan route: %w", err)
	}
	return &rt, nil
}

func (s *PostgresRouteStore) List(ctx context.Context) ([]Route, error) {
	return s.query(ctx, `SELECT `+routeColumns+` FROM route ORDER BY route_id`)
}

func (s *PostgresRouteStore) ListByActive(ctx context.Context, active bool) ([]Route, error) {
	return s.query(ctx, `SELECT `+routeColumns+` FROM route WHERE active = $1 ORDER BY route_id`, active)
}

func (s *PostgresRouteStore) query(ctx context.Context, query string, args ...any) ([]Route, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var rt Route
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.StartPoint, &rt.EndPoint, &rt.Active, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		routes = append(routes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routes: %w", err)
	}
	return routes, nil
}
