package paymentmethod

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "taxiassoc/pkg/errors"
)

func newTestService() *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(NewInMemoryStore(), logger)
}

func TestCreateMethod(t *testing.T) {
	svc := newTestService()

	m, err := svc.Create(context.Background(), CreateRequest{Name: "Cash", Description: "Paid at the office"})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, "Cash", m.Name)

	found, err := svc.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cash", found.Name)
}

func TestCreateMethodValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), CreateRequest{Description: "no name"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestCreateMethodDuplicateName(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), CreateRequest{Name: "EFT"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{Name: "eft"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestGetMissingMethod(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetByID(context.Background(), 42)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestListMethods(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), CreateRequest{Name: "Cash"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateRequest{Name: "EFT"})
	require.NoError(t, err)

	methods, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, methods, 2)
}
