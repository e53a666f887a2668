// Package pgutil holds the small database/sql helpers every postgres store
// repeats: ambient-transaction resolution, unique-violation detection, and
// nullable column adapters.
package pgutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	dErrors "taxiassoc/pkg/errors"
	txcontext "taxiassoc/pkg/tx"
)

// Queryer is satisfied by both *sql.DB and *sql.Tx.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// From returns the ambient transaction when one is carried in ctx, otherwise
// the store's own pool.
func From(ctx context.Context, db *sql.DB) Queryer {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return db
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

// RequireRow converts a zero-rows-affected result into a not-found error.
func RequireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return nil
}

// NullString maps "" to SQL NULL.
func NullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullInt64 maps 0 to SQL NULL, for optional foreign-key columns.
func NullInt64(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
