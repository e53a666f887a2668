package fine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"taxiassoc/internal/platform/pgutil"
	dErrors "taxiassoc/pkg/errors"
)

// PostgresStore persists fines in the levy_fine table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const fineColumns = `levy_fine_id, assoc_member_id, amount, reason, status, payment_method_id, receipt_number, created_by, updated_by, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, f *Fine) error {
	query := `
		INSERT INTO levy_fine (assoc_member_id, amount, reason, status, payment_method_id, receipt_number, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING levy_fine_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		f.MemberID, f.Amount, f.Reason, f.Status,
		pgutil.NullInt64(f.PaymentMethodID), pgutil.NullString(f.ReceiptNumber),
		f.CreatedBy, pgutil.NullString(f.UpdatedBy), f.CreatedAt, f.UpdatedAt,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("insert fine: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, f *Fine) error {
	query := `
		UPDATE levy_fine
		SET status = $1, payment_method_id = $2, receipt_number = $3, updated_by = $4, updated_at = $5
		WHERE levy_fine_id = $6
	`
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, query,
		f.Status, pgutil.NullInt64(f.PaymentMethodID), pgutil.NullString(f.ReceiptNumber),
		pgutil.NullString(f.UpdatedBy), f.UpdatedAt, f.ID,
	)
	if err != nil {
		return fmt.Errorf("update fine: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Fine, error) {
	row := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+fineColumns+` FROM levy_fine WHERE levy_fine_id = $1`, id)
	f, err := scanFine(row)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan fine: %w", err)
	}
	return f, nil
}

func (s *PostgresStore) ListByMember(ctx context.Context, memberID int64) ([]Fine, error) {
	return s.query(ctx, `SELECT `+fineColumns+` FROM levy_fine WHERE assoc_member_id = $1 ORDER BY levy_fine_id`, memberID)
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status Status) ([]Fine, error) {
	return s.query(ctx, `SELECT `+fineColumns+` FROM levy_fine WHERE status = $1 ORDER BY levy_fine_id`, status)
}

func (s *PostgresStore) List(ctx context.Context) ([]Fine, error) {
	return s.query(ctx, `SELECT `+fineColumns+` FROM levy_fine ORDER BY levy_fine_id`)
}

func (s *PostgresStore) SumByStatuses(ctx context.Context, statuses []Status) (float64, error) {
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}
	var total float64
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM levy_fine WHERE status = ANY($1)`, pq.Array(names),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum fines: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Fine, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query fines: %w", err)
	}
	defer rows.Close()

	var fines []Fine
	for rows.Next() {
		f, err := scanFine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fine: %w", err)
		}
		fines = append(fines, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fines: %w", err)
	}
	return fines, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFine(row scanner) (*Fine, error) {
	var f Fine
	var paymentMethodID sql.NullInt64
	var receiptNumber, updatedBy sql.NullString
	err := row.Scan(&f.ID, &f.MemberID, &f.Amount, &f.Reason, &f.Status,
		&paymentMethodID, &receiptNumber, &f.CreatedBy, &updatedBy, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.PaymentMethodID = paymentMethodID.Int64
	f.ReceiptNumber = receiptNumber.String
	f.UpdatedBy = updatedBy.String
	return &f, nil
}
