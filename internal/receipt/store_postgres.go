package receipt

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"taxiassoc/internal/platform/pgutil"
	dErrors "taxiassoc/pkg/errors"
)

// PostgresStore persists receipts in the receipt table. The unique index on
// receipt_number guarantees a number is issued once.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const receiptColumns = `receipt_id, assoc_member_id, levy_payment_id, levy_fine_id, bank_payment_id, receipt_number, issued_by, issued_date`

func (s *PostgresStore) Create(ctx context.Context, r *Receipt) error {
	query := `
		INSERT INTO receipt (assoc_member_id, levy_payment_id, levy_fine_id, bank_payment_id, receipt_number, issued_by, issued_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING receipt_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		r.MemberID, pgutil.NullInt64(r.LevyPaymentID), pgutil.NullInt64(r.LevyFineID),
		pgutil.NullInt64(r.BankPaymentID), r.ReceiptNumber, r.IssuedBy, r.IssuedDate,
	).Scan(&r.ID)
	if err != nil {
		if pgutil.IsUniqueViolation(err) {
			return dErrors.New(dErrors.CodeConflict, "duplicate receipt number")
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Receipt, error) {
	row := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+receiptColumns+` FROM receipt WHERE receipt_id = $1`, id)
	return s.scanOne(row)
}

func (s *PostgresStore) FindByNumber(ctx context.Context, number string) (*Receipt, error) {
	row := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+receiptColumns+` FROM receipt WHERE receipt_number = $1`, number)
	return s.scanOne(row)
}

func (s *PostgresStore) ListByMember(ctx context.Context, memberID int64) ([]Receipt, error) {
	return s.query(ctx, `SELECT `+receiptColumns+` FROM receipt WHERE assoc_member_id = $1 ORDER BY receipt_id`, memberID)
}

func (s *PostgresStore) ListByIssuer(ctx context.Context, issuedBy string) ([]Receipt, error) {
	return s.query(ctx, `SELECT `+receiptColumns+` FROM receipt WHERE issued_by = $1 ORDER BY receipt_id`, issuedBy)
}

func (s *PostgresStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]Receipt, error) {
	return s.query(ctx, `SELECT `+receiptColumns+` FROM receipt WHERE issued_date BETWEEN $1 AND $2 ORDER BY receipt_id`, from, to)
}

func (s *PostgresStore) List(ctx context.Context) ([]Receipt, error) {
	return s.query(ctx, `SELECT `+receiptColumns+` FROM receipt ORDER BY receipt_id`)
}

func (s *PostgresStore) scanOne(row *sql.Row) (*Receipt, error) {
	r, err := scanReceipt(row)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan receipt: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Receipt, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}
	defer rows.Close()

	var receipts []Receipt
	for rows.Next() {
		r, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		receipts = append(receipts, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipts: %w", err)
	}
	return receipts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row scanner) (*Receipt, error) {
	var r Receipt
	var levyPaymentID, levyFineID, bankPaymentID sql.NullInt64
	err := row.Scan(&r.ID, &r.MemberID, &levyPaymentID, &levyFineID, &bankPaymentID,
		&r.ReceiptNumber, &r.IssuedBy, &r.IssuedDate)
	if err != nil {
		return nil, err
	}
	r.LevyPaymentID = levyPaymentID.Int64
	r.LevyFineID = levyFineID.Int64
	r.BankPaymentID = bankPaymentID.Int64
	return &r, nil
}
