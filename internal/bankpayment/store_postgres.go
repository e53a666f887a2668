package bankpayment

import (
	"context"
	"database/sql"
	"fmt"

	"taxiassoc/internal/platform/pgutil"
	dErrors "taxiassoc/pkg/errors"
)

// PostgresStore persists bank payments in the bank_payment table. The unique
// index on transaction_reference rejects duplicate statement captures.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const bankPaymentColumns = `bank_payment_id, assoc_member_id, levy_payment_id, levy_fine_id, bank_name, branch_code, account_number, transaction_reference, amount, payment_date, verified, verified_by, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p *BankPayment) error {
	query := `
		INSERT INTO bank_payment (assoc_member_id, levy_payment_id, levy_fine_id, bank_name, branch_code, account_number, transaction_reference, amount, payment_date, verified, verified_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING bank_payment_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		p.MemberID, pgutil.NullInt64(p.LevyPaymentID), pgutil.NullInt64(p.LevyFineID),
		p.BankName, p.BranchCode, p.AccountNumber, p.TransactionReference,
		p.Amount, p.PaymentDate, p.Verified, pgutil.NullString(p.VerifiedBy),
		p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if pgutil.IsUniqueViolation(err) {
			return dErrors.New(dErrors.CodeConflict, "duplicate transaction reference")
		}
		return fmt.Errorf("insert bank payment: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, p *BankPayment) error {
	query := `
		UPDATE bank_payment
		SET verified = $1, verified_by = $2, updated_at = $3
		WHERE bank_payment_id = $4
	`
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, query,
		p.Verified, pgutil.NullString(p.VerifiedBy), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update bank payment: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*BankPayment, error) {
	row := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+bankPaymentColumns+` FROM bank_payment WHERE bank_payment_id = $1`, id)
	return s.scanOne(row)
}

func (s *PostgresStore) FindByReference(ctx context.Context, reference string) (*BankPayment, error) {
	row := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+bankPaymentColumns+` FROM bank_payment WHERE transaction_reference = $1`, reference)
	return s.scanOne(row)
}

func (s *PostgresStore) ListByMember(ctx context.Context, memberID int64) ([]BankPayment, error) {
	return s.query(ctx, `SELECT `+bankPaymentColumns+` FROM bank_payment WHERE assoc_member_id = $1 ORDER BY bank_payment_id`, memberID)
}

func (s *PostgresStore) ListByVerified(ctx context.Context, verified bool) ([]BankPayment, error) {
	return s.query(ctx, `SELECT `+bankPaymentColumns+` FROM bank_payment WHERE verified = $1 ORDER BY bank_payment_id`, verified)
}

func (s *PostgresStore) List(ctx context.Context) ([]BankPayment, error) {
	return s.query(ctx, `SELECT `+bankPaymentColumns+` FROM bank_payment ORDER BY bank_payment_id`)
}

func (s *PostgresStore) scanOne(row *sql.Row) (*BankPayment, error) {
	p, err := scanBankPayment(row)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan bank payment: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]BankPayment, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bank payments: %w", err)
	}
	defer rows.Close()

	var payments []BankPayment
	for rows.Next() {
		p, err := scanBankPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bank payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank payments: %w", err)
	}
	return payments, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBankPayment(row scanner) (*BankPayment, error) {
	var p BankPayment
	var levyPaymentID, levyFineID sql.NullInt64
	var verifiedBy sql.NullString
	err := row.Scan(&p.ID, &p.MemberID, &levyPaymentID, &levyFineID,
		&p.BankName, &p.BranchCode, &p.AccountNumber, &p.TransactionReference,
		&p.Amount, &p.PaymentDate, &p.Verified, &verifiedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.LevyPaymentID = levyPaymentID.Int64
	p.LevyFineID = levyFineID.Int64
	p.VerifiedBy = verifiedBy.String
	return &p, nil
}
