package workflow_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"taxiassoc/internal/audit"
	"taxiassoc/internal/fine"
	"taxiassoc/internal/member"
	"taxiassoc/internal/workflow"
	"taxiassoc/internal/workflow/mocks"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

type fixture struct {
	service *workflow.Service
	fines   *mocks.MockFineDirectory
	members *mocks.MockMemberDirectory
	audits  *audit.InMemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fines := mocks.NewMockFineDirectory(ctrl)
	members := mocks.NewMockMemberDirectory(ctrl)
	audits := audit.NewInMemoryStore()
	recorder := audit.NewRecorder(audits, logger)

	return &fixture{
		service: workflow.NewService(workflow.NewInMemoryStore(), fines, members, recorder, logger),
		fines:   fines,
		members: members,
		audits:  audits,
	}
}

func testCtx() context.Context {
	ctx := requestcontext.WithPrincipal(context.Background(), "secretary1")
	return requestcontext.WithTime(ctx, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
}

func (f *fixture) allowLookups() {
	f.fines.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		Return(&fine.Fine{ID: 1, MemberID: 1, Amount: 500, Reason: "Overloading"}, nil).AnyTimes()
	f.members.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		Return(&member.Member{ID: 1, Name: "Sipho"}, nil).AnyTimes()
}

func (f *fixture) initiate(t *testing.T, fineID int64) *workflow.Workflow {
	t.Helper()
	w, err := f.service.Initiate(testCtx(), workflow.InitiateRequest{
		LevyFineID:    fineID,
		MemberID:      1,
		CaseStatement: "Member disputes the overloading fine",
	})
	require.NoError(t, err)
	return w
}

func TestInitiate(t *testing.T) {
	f := newFixture(t)
	f.allowLookups()

	w := f.initiate(t, 1)
	assert.Equal(t, workflow.DecisionPending, w.SecretaryDecision)
	assert.Equal(t, workflow.DecisionPending, w.ChairpersonDecision)
	assert.Equal(t, workflow.StatusOngoing, w.FinalStatus)
	assert.Equal(t, "Sipho", w.MemberName)

	entries, err := f.audits.ListRecent(testCtx(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "disciplinary_workflow", entries[0].TableName)
	assert.Equal(t, audit.ActionInsert, entries[0].Action)
}

func TestInitiateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Initiate(testCtx(), workflow.InitiateRequest{LevyFineID: 1, MemberID: 1})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestInitiateFineNotFound(t *testing.T) {
	f := newFixture(t)
	f.fines.EXPECT().GetByID(gomock.Any(), int64(99)).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "fine not found"))

	_, err := f.service.Initiate(testCtx(), workflow.InitiateRequest{
		LevyFineID: 99, MemberID: 1, CaseStatement: "case",
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestInitiateDuplicateFine(t *testing.T) {
	f := newFixture(t)
	f.allowLookups()

	f.initiate(t, 1)
	_, err := f.service.Initiate(testCtx(), workflow.InitiateRequest{
		LevyFineID: 1, MemberID: 1, CaseStatement: "second case for same fine",
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestSecretaryApproveThenChairpersonResolves(t *testing.T) {
	f := newFixture(t)
	f.allowLookups()
	w := f.initiate(t, 1)

	w, err := f.service.SecretaryDecide(testCtx(), w.ID, workflow.SecretaryDecisionRequest{
		Decision:           workflow.DecisionApproved,
		PaymentArrangement: "Pay R100 weekly",
	})
	require.NoError(t, err)
	assert.Equal(t, workflow.DecisionApproved, w.SecretaryDecision)
	assert.Equal(t, workflow.DecisionPending, w.ChairpersonDecision)
	assert.Equal(t, workflow.StatusOngoing, w.FinalStatus)
	assert.Equal(t, "Pay R100 weekly", w.PaymentArrangement)

	w, err = f.service.ChairpersonDecide(testCtx(), w.ID, workflow.ChairpersonDecisionRequest{
		Decision:           workflow.DecisionApproved,
		PaymentArrangement: "Extended to R50 weekly",
	})
	require.NoError(t, err)
	assert.Equal(t, workflow.DecisionApproved, w.ChairpersonDecision)
	assert.Equal(t, workflow.StatusResolved, w.FinalStatus)
	assert.Equal(t, "Pay R100 weekly\nChairperson: Extended to R50 weekly", w.PaymentArrangement)
	assert.False(t, w.ChairpersonOverride)
}

func TestSecretaryRejectionShortCircuits(t *testing.T) {
	f := newFixture(t)
	f.allowLookups()
	w := f.initiate(t, 1)

	w, err := f.service.SecretaryDecide(testCtx(), w.ID, workflow.SecretaryDecisionRequest{
		Decision: workflow.DecisionRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, workflow.DecisionRejected, w.SecretaryDecision)
	assert.Equal(t, workflow.DecisionNotRequired, w.ChairpersonDecision)
	assert.Equal(t, workflow.StatusResolved, w.FinalStatus)

	// the rejected workflow is terminal
	_, err = f.service.ChairpersonDecide(testCtx(), w.ID, workflow.ChairpersonDecisionRequest{
		Decision: workflow.DecisionApproved,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestSecretaryDecideTwice(t *testing.T) {
	f := newFixture(t)
	f.allowLookups()
	w := f.initiate(t, 1)

	_, err := f.service.SecretaryDecide(testCtx(), w.ID, workflow.SecretaryDecisionRequest{
		Decision: workflow.DecisionApproved,
	})
	require.NoError(t, err)

	_, err = f.service.SecretaryDecide(testCtx(), w.ID, workflow.SecretaryDecisionRequest{
		Decision: workflow.DecisionRejected,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestChairpersonBlockedWhileSecretaryPending(t *testing.T) {
	f := newFixture(t)
	f.allowLookups()
	w := f.initiate(t, 1)

	_, err := f.service.ChairpersonDecide(testCtx(), w.ID, workflow.ChairpersonDecisionRequest{
		Decision: workflow.DecisionApproved,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestChairpersonOverride(t *testing.T) {
	f := newFixture(t)
	f.allowLookups()
	w := f.initiate(t, 1)

	w, err := f.service.ChairpersonDecide(testCtx(), w.ID, workflow.ChairpersonDecisionRequest{
		Decision:           workflow.DecisionApproved,
		PaymentArrangement: "Settle by month end",
		Override:           true,
	})
	require.NoError(t, err)
	assert.True(t, w.ChairpersonOverride)
	assert.Equal(t, workflow.StatusResolved, w.FinalStatus)
	assert.Equal(t, workflow.DecisionPending, w.SecretaryDecision)
	assert.Equal(t, "Chairperson: Settle by month end", w.PaymentArrangement)
}

func TestResolvedWorkflowIsImmutable(t *testing.T) {
	f := newFixture(t)
	f.allowLookups()
	w := f.initiate(t, 1)

	_, err := f.service.ChairpersonDecide(testCtx(), w.ID, workflow.ChairpersonDecisionRequest{
		Decision: workflow.DecisionApproved, Override: true,
	})
	require.NoError(t, err)

	_, err = f.service.SecretaryDecide(testCtx(), w.ID, workflow.SecretaryDecisionRequest{
		Decision: workflow.DecisionApproved,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))

	_, err = f.service.ChairpersonDecide(testCtx(), w.ID, workflow.ChairpersonDecisionRequest{
		Decision: workflow.DecisionRejected,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestDecisionValidation(t *testing.T) {
	f := newFixture(t)
	f.allowLookups()
	w := f.initiate(t, 1)

	_, err := f.service.SecretaryDecide(testCtx(), w.ID, workflow.SecretaryDecisionRequest{
		Decision: workflow.DecisionPending,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = f.service.ChairpersonDecide(testCtx(), w.ID, workflow.ChairpersonDecisionRequest{
		Decision: "Maybe",
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestDecideMissingWorkflow(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.SecretaryDecide(testCtx(), 99, workflow.SecretaryDecisionRequest{
		Decision: workflow.DecisionApproved,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestQueues(t *testing.T) {
	f := newFixture(t)
	f.fines.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		Return(&fine.Fine{ID: 1, MemberID: 1}, nil).AnyTimes()
	f.members.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		Return(&member.Member{ID: 1, Name: "Sipho"}, nil).AnyTimes()

	first := f.initiate(t, 1)
	second := f.initiate(t, 2)
	third := f.initiate(t, 3)

	_, err := f.service.SecretaryDecide(testCtx(), second.ID, workflow.SecretaryDecisionRequest{
		Decision: workflow.DecisionApproved,
	})
	require.NoError(t, err)
	_, err = f.service.SecretaryDecide(testCtx(), third.ID, workflow.SecretaryDecisionRequest{
		Decision: workflow.DecisionRejected,
	})
	require.NoError(t, err)

	pendingSecretary, err := f.service.ListPendingSecretary(testCtx())
	require.NoError(t, err)
	require.Len(t, pendingSecretary, 1)
	assert.Equal(t, first.ID, pendingSecretary[0].ID)

	pendingChairperson, err := f.service.ListPendingChairperson(testCtx())
	require.NoError(t, err)
	require.Len(t, pendingChairperson, 1)
	assert.Equal(t, second.ID, pendingChairperson[0].ID)

	ongoing, err := f.service.ListOngoing(testCtx())
	require.NoError(t, err)
	assert.Len(t, ongoing, 2)

	byMember, err := f.service.ListByMember(testCtx(), 1)
	require.NoError(t, err)
	assert.Len(t, byMember, 3)
}

func TestGetByFineID(t *testing.T) {
	f := newFixture(t)
	f.allowLookups()
	w := f.initiate(t, 1)

	found, err := f.service.GetByFineID(testCtx(), 1)
	require.NoError(t, err)
	assert.Equal(t, w.ID, found.ID)

	_, err = f.service.GetByFineID(testCtx(), 42)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestEnrichmentSurvivesMemberLookupFailure(t *testing.T) {
	f := newFixture(t)
	f.fines.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		Return(&fine.Fine{ID: 1, MemberID: 1}, nil)
	first := f.members.EXPECT().GetByID(gomock.Any(), int64(1)).
		Return(&member.Member{ID: 1, Name: "Sipho"}, nil)
	f.members.EXPECT().GetByID(gomock.Any(), int64(1)).
		Return(nil, dErrors.New(dErrors.CodeInternal, "directory unavailable")).
		After(first).AnyTimes()

	w := f.initiate(t, 1)
	require.NotZero(t, w.ID)

	found, err := f.service.GetByID(testCtx(), w.ID)
	require.NoError(t, err)
	assert.Empty(t, found.MemberName)
}

type unavailableDB struct{ err error }

func (d unavailableDB) BeginTx(context.Context, *sql.TxOptions) (*sql.Tx, error) {
	return nil, d.err
}

func TestInitiateFailsWhenTransactionCannotStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fines := mocks.NewMockFineDirectory(ctrl)
	members := mocks.NewMockMemberDirectory(ctrl)
	fines.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(&fine.Fine{ID: 1, MemberID: 1}, nil)
	members.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(&member.Member{ID: 1, Name: "Sipho"}, nil)

	audits := audit.NewInMemoryStore()
	svc := workflow.NewService(workflow.NewInMemoryStore(), fines, members, audit.NewRecorder(audits, logger), logger,
		workflow.WithTransactions(unavailableDB{err: errors.New("pool exhausted")}))

	_, err := svc.Initiate(testCtx(), workflow.InitiateRequest{
		LevyFineID: 1, MemberID: 1, CaseStatement: "Member disputes the overloading fine",
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))

	entries, err := audits.ListRecent(testCtx(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
