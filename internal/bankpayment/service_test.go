package bankpayment

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

	return NewService(NewInMemoryStore(), members, recorder, logger), m.ID
}

func testCtx() context.Context {
	ctx := requestcontext.WithPrincipal(context.Background(), "treasurer1")
	return requestcontext.WithTime(ctx, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
}

func deposit(memberID int64, reference string) RecordRequest {
	return RecordRequest{
		MemberID:             memberID,
		BankName:             "Standard Bank",
		BranchCode:           "051001",
		AccountNumber:        "123456789",
		TransactionReference: reference,
		Amount:               250,
		PaymentDate:          time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecordBankPayment(t *testing.T) {
	svc, memberID := newTestService(t)

	p, err := svc.Record(testCtx(), deposit(memberID, "TXN-001"))
	require.NoError(t, err)
	assert.False(t, p.Verified)
	assert.Equal(t, "Standard Bank", p.BankName)
}

func TestRecordBankPaymentDuplicateReference(t *testing.T) {
	svc, memberID := newTestService(t)

	_, err := svc.Record(testCtx(), deposit(memberID, "TXN-001"))
	require.NoError(t, err)

	_, err = svc.Record(testCtx(), deposit(memberID, "TXN-001"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	assert.Equal(t, "transaction reference already captured", dErrors.MessageOf(err))
}

func TestRecordBankPaymentValidation(t *testing.T) {
	svc, memberID := newTestService(t)

	req := deposit(memberID, "TXN-001")
	req.Amount = 0
	_, err := svc.Record(testCtx(), req)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	req = deposit(memberID, " ")
	_, err = svc.Record(testCtx(), req)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	req = deposit(memberID, "TXN-001")
	req.PaymentDate = time.Time{}
	_, err = svc.Record(testCtx(), req)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = svc.Record(testCtx(), deposit(99, "TXN-002"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestVerifyBankPayment(t *testing.T) {
	svc, memberID := newTestService(t)

	p, err := svc.Record(testCtx(), deposit(memberID, "TXN-001"))
	require.NoError(t, err)

	verified, err := svc.Verify(testCtx(), p.ID)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Equal(t, "treasurer1", verified.VerifiedBy)

	_, err = svc.Verify(testCtx(), p.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestBankPaymentViews(t *testing.T) {
	svc, memberID := newTestService(t)

	a, err := svc.Record(testCtx(), deposit(memberID, "TXN-001"))
	require.NoError(t, err)
	_, err = svc.Record(testCtx(), deposit(memberID, "TXN-002"))
	require.NoError(t, err)

	_, err = svc.Verify(testCtx(), a.ID)
	require.NoError(t, err)

	unverified, err := svc.ListUnverified(testCtx())
	require.NoError(t, err)
	require.Len(t, unverified, 1)
	assert.Equal(t, "TXN-002", unverified[0].TransactionReference)

	verified, err := svc.ListVerified(testCtx())
	require.NoError(t, err)
	require.Len(t, verified, 1)
	assert.Equal(t, "TXN-001", verified[0].TransactionReference)

	byRef, err := svc.GetByReference(testCtx(), "TXN-002")
	require.NoError(t, err)
	assert.Equal(t, "TXN-002", byRef.TransactionReference)

	_, err = svc.GetByReference(testCtx(), "TXN-999")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	byMember, err := svc.ListByMember(testCtx(), memberID)
	require.NoError(t, err)
	assert.Len(t, byMember, 2)
}
