package fleet

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxiassoc/internal/audit"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := audit.NewRecorder(audit.NewInMemoryStore(), logger)
	return NewService(NewInMemoryTaxiStore(), NewInMemoryDriverStore(), NewInMemoryRouteStore(), recorder, logger)
}

func testCtx() context.Context {
	ctx := requestcontext.WithPrincipal(context.Background(), "admin1")
	return requestcontext.WithTime(ctx, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
}

func TestCreateTaxi(t *testing.T) {
	svc := newTestService(t)

	taxi, err := svc.CreateTaxi(testCtx(), CreateTaxiRequest{PlateNumber: "ND 123-456", Model: "Quantum"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), taxi.ID)
	assert.Zero(t, taxi.DriverID)

	_, err = svc.CreateTaxi(testCtx(), CreateTaxiRequest{PlateNumber: "ND 123-456", Model: "Hiace"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = svc.CreateTaxi(testCtx(), CreateTaxiRequest{PlateNumber: " "})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestAssignDriver(t *testing.T) {
	svc := newTestService(t)

	taxi, err := svc.CreateTaxi(testCtx(), CreateTaxiRequest{PlateNumber: "ND 123-456", Model: "Quantum"})
	require.NoError(t, err)
	driver, err := svc.CreateDriver(testCtx(), CreateDriverRequest{Name: "Thabo", LicenseNumber: "DL-001", ContactNumber: "082"})
	require.NoError(t, err)

	updated, err := svc.AssignDriver(testCtx(), taxi.ID, driver.ID)
	require.NoError(t, err)
	assert.Equal(t, driver.ID, updated.DriverID)

	_, err = svc.AssignDriver(testCtx(), taxi.ID, 99)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = svc.AssignDriver(testCtx(), 99, driver.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestAssignRoute(t *testing.T) {
	svc := newTestService(t)

	taxi, err := svc.CreateTaxi(testCtx(), CreateTaxiRequest{PlateNumber: "ND 123-456", Model: "Quantum"})
	require.NoError(t, err)
	route, err := svc.CreateRoute(testCtx(), CreateRouteRequest{Name: "CBD-Umlazi", StartPoint: "Durban CBD", EndPoint: "Umlazi"})
	require.NoError(t, err)

	updated, err := svc.AssignRoute(testCtx(), taxi.ID, route.ID)
	require.NoError(t, err)
	assert.Equal(t, route.ID, updated.RouteID)

	onRoute, err := svc.ListTaxisByRoute(testCtx(), route.ID)
	require.NoError(t, err)
	require.Len(t, onRoute, 1)
	assert.Equal(t, taxi.ID, onRoute[0].ID)
}

func TestCreateDriverDuplicateLicense(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateDriver(testCtx(), CreateDriverRequest{Name: "Thabo", LicenseNumber: "DL-001"})
	require.NoError(t, err)

	_, err = svc.CreateDriver(testCtx(), CreateDriverRequest{Name: "Sipho", LicenseNumber: "DL-001"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestRouteLifecycle(t *testing.T) {
	svc := newTestService(t)

	route, err := svc.CreateRoute(testCtx(), CreateRouteRequest{Name: "CBD-Umlazi", StartPoint: "Durban CBD", EndPoint: "Umlazi"})
	require.NoError(t, err)
	assert.True(t, route.Active)

	deactivated, err := svc.DeactivateRoute(testCtx(), route.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	_, err = svc.DeactivateRoute(testCtx(), route.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))

	active, err := svc.ListActiveRoutes(testCtx())
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListRoutes(testCtx())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetTaxiByPlate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateTaxi(testCtx(), CreateTaxiRequest{PlateNumber: "ND 123-456", Model: "Quantum"})
	require.NoError(t, err)

	taxi, err := svc.GetTaxiByPlate(testCtx(), "ND 123-456")
	require.NoError(t, err)
	assert.Equal(t, "Quantum", taxi.Model)

	_, err = svc.GetTaxiByPlate(testCtx(), "ZZ 000-000")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestDeleteTaxi(t *testing.T) {
	svc := newTestService(t)

	taxi, err := svc.CreateTaxi(testCtx(), CreateTaxiRequest{PlateNumber: "ND 123-456", Model: "Quantum"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTaxi(testCtx(), taxi.ID))

	_, err = svc.GetTaxi(testCtx(), taxi.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
