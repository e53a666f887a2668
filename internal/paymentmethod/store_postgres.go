package paymentmethod

import (
	"context"
	"database/sql"
	"fmt"

	"taxiassoc/internal/platform/pgutil"
	dErrors "taxiassoc/pkg/errors"
)

// PostgresStore persists payment methods in the payment_method table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, m *Method) error {
	query := `
		INSERT INTO payment_method (name, description)
		VALUES ($1, $2)
		RETURNING payment_method_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		m.Name, pgutil.NullString(m.Description),
	).Scan(&m.ID)
	if err != nil {
		if pgutil.IsUniqueViolation(err) {
			return dErrors.New(dErrors.CodeConflict, "duplicate payment method name")
		}
		return fmt.Errorf("insert payment method: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Method, error) {
	var m Method
	var description sql.NullString
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT payment_method_id, name, description FROM payment_method WHERE payment_method_id = $1`, id,
	).Scan(&m.ID, &m.Name, &description)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan payment method: %w", err)
	}
	m.Description = description.String
	return &m, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Method, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx,
		`SELECT payment_method_id, name, description FROM payment_method ORDER BY payment_method_id`)
	if err != nil {
		return nil, fmt.Errorf("query payment methods: %w", err)
	}
	defer rows.Close()

	var methods []Method
	for rows.Next() {
		var m Method
		var description sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &description); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		m.Description = description.String
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment methods: %w", err)
	}
	return methods, nil
}
