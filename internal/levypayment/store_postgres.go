package levypayment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"taxiassoc/internal/platform/pgutil"
	dErrors "taxiassoc/pkg/errors"
)

// PostgresStore persists levy payments in the levy_payment table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const paymentColumns = `levy_payment_id, assoc_member_id, week_start_date, week_end_date, amount, status, payment_method_id, receipt_number, created_by, updated_by, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO levy_payment (assoc_member_id, week_start_date, week_end_date, amount, status, payment_method_id, receipt_number, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING levy_payment_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		p.MemberID, p.WeekStartDate, p.WeekEndDate, p.Amount, p.Status,
		pgutil.NullInt64(p.PaymentMethodID), pgutil.NullString(p.ReceiptNumber),
		p.CreatedBy, pgutil.NullString(p.UpdatedBy), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert levy payment: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, p *Payment) error {
	query := `
		UPDATE levy_payment
		SET status = $1, payment_method_id = $2, receipt_number = $3, updated_by = $4, updated_at = $5
		WHERE levy_payment_id = $6
	`
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, query,
		p.Status, pgutil.NullInt64(p.PaymentMethodID), pgutil.NullString(p.ReceiptNumber),
		pgutil.NullString(p.UpdatedBy), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update levy payment: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Payment, error) {
	row := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM levy_payment WHERE levy_payment_id = $1`, id)
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan levy payment: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) ListByMember(ctx context.Context, memberID int64) ([]Payment, error) {
	return s.query(ctx, `SELECT `+paymentColumns+` FROM levy_payment WHERE assoc_member_id = $1 ORDER BY levy_payment_id`, memberID)
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status Status) ([]Payment, error) {
	return s.query(ctx, `SELECT `+paymentColumns+` FROM levy_payment WHERE status = $1 ORDER BY levy_payment_id`, status)
}

func (s *PostgresStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]Payment, error) {
	return s.query(ctx,
		`SELECT `+paymentColumns+` FROM levy_payment WHERE week_start_date BETWEEN $1 AND $2 ORDER BY levy_payment_id`,
		from, to)
}

func (s *PostgresStore) List(ctx context.Context) ([]Payment, error) {
	return s.query(ctx, `SELECT `+paymentColumns+` FROM levy_payment ORDER BY levy_payment_id`)
}

func (s *PostgresStore) SumByStatus(ctx context.Context, status Status) (float64, error) {
	var total float64
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM levy_payment WHERE status = $1`, status,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum levy payments: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Payment, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query levy payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan levy payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate levy payments: %w", err)
	}
	return payments, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPayment(row scanner) (*Payment, error) {
	var p Payment
	var paymentMethodID sql.NullInt64
	var receiptNumber, updatedBy sql.NullString
	err := row.Scan(&p.ID, &p.MemberID, &p.WeekStartDate, &p.WeekEndDate, &p.Amount, &p.Status,
		&paymentMethodID, &receiptNumber, &p.CreatedBy, &updatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.PaymentMethodID = paymentMethodID.Int64
	p.ReceiptNumber = receiptNumber.String
	p.UpdatedBy = updatedBy.String
	return &p, nil
}
