package receipt

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxiassoc/internal/audit"
	"taxiassoc/internal/member"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

func newTestService(t *testing.T) (*Service, int64) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := audit.NewRecorder(audit.NewInMemoryStore(), logger)

	members := member.NewService(member.NewInMemoryStore(), recorder, logger)
	m, err := members.Create(testCtx(), member.CreateRequest{Name: "Sipho", ContactNumber: "082", SquadNumber: "SQ-1"})
	require.NoError(t, err)

	return NewService(NewInMemoryStore(), members, logger), m.ID
}

func testCtx() context.Context {
	ctx := requestcontext.WithPrincipal(context.Background(), "treasurer1")
	return requestcontext.WithTime(ctx, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
}

func TestGenerateReceipt(t *testing.T) {
	svc, memberID := newTestService(t)

	r, err := svc.Generate(testCtx(), GenerateRequest{MemberID: memberID, LevyPaymentID: 4, ReceiptNumber: "RCPT-0001"})
	require.NoError(t, err)
	assert.Equal(t, "treasurer1", r.IssuedBy)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), r.IssuedDate)
}

func TestGenerateReceiptDuplicateNumber(t *testing.T) {
	svc, memberID := newTestService(t)

	_, err := svc.Generate(testCtx(), GenerateRequest{MemberID: memberID, ReceiptNumber: "RCPT-0001"})
	require.NoError(t, err)

	_, err = svc.Generate(testCtx(), GenerateRequest{MemberID: memberID, ReceiptNumber: "RCPT-0001"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	assert.Equal(t, "receipt number already issued", dErrors.MessageOf(err))
}

func TestGenerateReceiptValidation(t *testing.T) {
	svc, memberID := newTestService(t)

	_, err := svc.Generate(testCtx(), GenerateRequest{MemberID: memberID, ReceiptNumber: " "})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = svc.Generate(testCtx(), GenerateRequest{MemberID: 99, ReceiptNumber: "RCPT-0001"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestReceiptLookups(t *testing.T) {
	svc, memberID := newTestService(t)

	r, err := svc.Generate(testCtx(), GenerateRequest{MemberID: memberID, ReceiptNumber: "RCPT-0001"})
	require.NoError(t, err)

	byID, err := svc.GetByID(testCtx(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "RCPT-0001", byID.ReceiptNumber)

	byNumber, err := svc.GetByNumber(testCtx(), "RCPT-0001")
	require.NoError(t, err)
	assert.Equal(t, r.ID, byNumber.ID)

	_, err = svc.GetByNumber(testCtx(), "RCPT-0999")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestReceiptListViews(t *testing.T) {
	svc, memberID := newTestService(t)

	_, err := svc.Generate(testCtx(), GenerateRequest{MemberID: memberID, ReceiptNumber: "RCPT-0001"})
	require.NoError(t, err)
	_, err = svc.Generate(testCtx(), GenerateRequest{MemberID: memberID, ReceiptNumber: "RCPT-0002"})
	require.NoError(t, err)

	byMember, err := svc.ListByMember(testCtx(), memberID)
	require.NoError(t, err)
	assert.Len(t, byMember, 2)

	byIssuer, err := svc.ListByIssuer(testCtx(), "treasurer1")
	require.NoError(t, err)
	assert.Len(t, byIssuer, 2)

	inRange, err := svc.ListByDateRange(testCtx(),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	empty, err := svc.ListByDateRange(testCtx(),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
