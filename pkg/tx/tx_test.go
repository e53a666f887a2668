package tx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTxRoundTrip(t *testing.T) {
	want := &sql.Tx{}
	ctx := WithTx(context.Background(), want)

	got, ok := From(ctx)
	require.True(t, ok)
	assert.Same(t, want, got)
}

func TestWithTxNilLeavesContextUnchanged(t *testing.T) {
	ctx := WithTx(context.Background(), nil)

	_, ok := From(ctx)
	assert.False(t, ok)
}

func TestRunWithoutDBCallsThrough(t *testing.T) {
	called := false
	err := Run(context.Background(), nil, func(ctx context.Context) error {
		called = true
		_, ok := From(ctx)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRunWithoutDBPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), nil, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

type failingBeginner struct{ err error }

func (b failingBeginner) BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error) {
	return nil, b.err
}

func TestRunBeginFailureSkipsFn(t *testing.T) {
	boom := errors.New("no connection")
	called := false

	err := Run(context.Background(), failingBeginner{err: boom}, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}
