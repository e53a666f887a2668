//go:build integration

package workflow

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

	"taxiassoc/internal/audit"
	"taxiassoc/internal/fine"
	"taxiassoc/internal/member"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/testutil/containers"
	"taxiassoc/pkg/tx"
)

func seedFineAndMember(t *testing.T, db *sql.DB) (fineID, memberID int64) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	err := db.QueryRowContext(ctx, `
		INSERT INTO assoc_member (name, contact_number, squad_number, joined_at, blacklisted, created_by, created_at, updated_at)
		VALUES ('Sipho', '082', 'SQ-1', $1, FALSE, 'secretary1', $1, $1)
		RETURNING assoc_member_id`, now).Scan(&memberID)
	require.NoError(t, err)

	err = db.QueryRowContext(ctx, `
		INSERT INTO levy_fine (assoc_member_id, amount, reason, status, created_by, created_at, updated_at)
		VALUES ($1, 500, 'Overloading', 'Unpaid', 'secretary1', $2, $2)
		RETURNING levy_fine_id`, memberID, now).Scan(&fineID)
	require.NoError(t, err)
	return fineID, memberID
}

func TestPostgresStoreGating(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	store := NewPostgresStore(pc.DB)
	ctx := context.Background()

	fineID, memberID := seedFineAndMember(t, pc.DB)
	now := time.Now().UTC().Truncate(time.Microsecond)

	w := &Workflow{
		LevyFineID:          fineID,
		MemberID:            memberID,
		CaseStatement:       "Member disputes the fine",
		SecretaryDecision:   DecisionPending,
		ChairpersonDecision: DecisionPending,
		FinalStatus:         StatusOngoing,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	require.NoError(t, store.Create(ctx, w))
	require.NotZero(t, w.ID)

	t.Run("unique fine index", func(t *testing.T) {
		dup := &Workflow{
			LevyFineID:          fineID,
			MemberID:            memberID,
			CaseStatement:       "second case",
			SecretaryDecision:   DecisionPending,
			ChairpersonDecision: DecisionPending,
			FinalStatus:         StatusOngoing,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		err := store.Create(ctx, dup)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("secretary gate holds on second apply", func(t *testing.T) {
		decided := *w
		decided.SecretaryDecision = DecisionApproved
		decided.UpdatedAt = now.Add(time.Minute)
		require.NoError(t, store.ApplySecretaryDecision(ctx, &decided))

		again := *w
		again.SecretaryDecision = DecisionRejected
		err := store.ApplySecretaryDecision(ctx, &again)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	t.Run("chairperson apply resolves", func(t *testing.T) {
		resolved := *w
		resolved.ChairpersonDecision = DecisionApproved
		resolved.FinalStatus = StatusResolved
		resolved.PaymentArrangement = "Chairperson: Settle by month end"
		resolved.UpdatedAt = now.Add(2 * time.Minute)
		require.NoError(t, store.ApplyChairpersonDecision(ctx, &resolved))

		found, err := store.FindByID(ctx, w.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusResolved, found.FinalStatus)
		assert.Equal(t, "Chairperson: Settle by month end", found.PaymentArrangement)
	})

	t.Run("resolved workflow rejects further decisions", func(t *testing.T) {
		late := *w
		late.ChairpersonDecision = DecisionRejected
		err := store.ApplyChairpersonDecision(ctx, &late)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	t.Run("missing workflow is not found", func(t *testing.T) {
		missing := &Workflow{ID: 9999, SecretaryDecision: DecisionApproved}
		err := store.ApplySecretaryDecision(ctx, missing)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("queues", func(t *testing.T) {
		byMember, err := store.ListByMember(ctx, memberID)
		require.NoError(t, err)
		assert.Len(t, byMember, 1)

		ongoing, err := store.ListOngoing(ctx)
		require.NoError(t, err)
		assert.Empty(t, ongoing)

		found, err := store.FindByFineID(ctx, fineID)
		require.NoError(t, err)
		assert.Equal(t, w.ID, found.ID)
	})
}

type staticFines struct{}

func (staticFines) GetByID(_ context.Context, id int64) (*fine.Fine, error) {
	return &fine.Fine{ID: id}, nil
}

type staticMembers struct{}

func (staticMembers) GetByID(_ context.Context, id int64) (*member.Member, error) {
	return &member.Member{ID: id, Name: "Sipho"}, nil
}

func auditCount(t *testing.T, db *sql.DB, recordID int64) int {
	t.Helper()
	var count int
	err := db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM audit_log WHERE table_name = 'disciplinary_workflow' AND record_id = $1`,
		recordID).Scan(&count)
	require.NoError(t, err)
	return count
}

func TestServiceCommitsDecisionWithAudit(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fineID, memberID := seedFineAndMember(t, pc.DB)
	recorder := audit.NewRecorder(audit.NewPostgresStore(pc.DB), logger)
	svc := NewService(NewPostgresStore(pc.DB), staticFines{}, staticMembers{}, recorder, logger,
		WithTransactions(pc.DB))

	w, err := svc.Initiate(ctx, InitiateRequest{
		LevyFineID: fineID, MemberID: memberID, CaseStatement: "Member disputes the fine",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, auditCount(t, pc.DB, w.ID))

	_, err = svc.SecretaryDecide(ctx, w.ID, SecretaryDecisionRequest{Decision: DecisionApproved})
	require.NoError(t, err)
	assert.Equal(t, 2, auditCount(t, pc.DB, w.ID))
}

func TestTransactionRollsBackWorkflowWrite(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	store := NewPostgresStore(pc.DB)
	ctx := context.Background()

	fineID, memberID := seedFineAndMember(t, pc.DB)
	now := time.Now().UTC()

	boom := errors.New("boom")
	err := tx.Run(ctx, pc.DB, func(ctx context.Context) error {
		w := &Workflow{
			LevyFineID:          fineID,
			MemberID:            memberID,
			CaseStatement:       "Member disputes the fine",
			SecretaryDecision:   DecisionPending,
			ChairpersonDecision: DecisionPending,
			FinalStatus:         StatusOngoing,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := store.Create(ctx, w); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = store.FindByFineID(ctx, fineID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
