// Package tx carries an ambient SQL transaction through context so a
// service can commit a domain write and its audit entry together.
package tx

import (
	"context"
	"database/sql"
	"fmt"
)

type ctxKey struct{}

var txKey = ctxKey{}

// Beginner opens transactions. *sql.DB satisfies it.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Run executes fn inside a transaction and commits if fn returns nil.
// Stores that resolve their queryer through the context see the
// transaction automatically. A nil db runs fn without one, which keeps
// in-memory stores working unchanged.
func Run(ctx context.Context, db Beginner, fn func(ctx context.Context) error) error {
	if db == nil {
		return fn(ctx)
	}
	t, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer t.Rollback()

	if err := fn(WithTx(ctx, t)); err != nil {
		return err
	}
	if err := t.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
