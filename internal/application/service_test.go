package application

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxiassoc/internal/audit"
	"taxiassoc/internal/fleet"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

type fixture struct {
	service *Service
	routeID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := audit.NewRecorder(audit.NewInMemoryStore(), logger)

	routes := fleet.NewService(fleet.NewInMemoryTaxiStore(), fleet.NewInMemoryDriverStore(), fleet.NewInMemoryRouteStore(), recorder, logger)
	rt, err := routes.CreateRoute(testCtx(), fleet.CreateRouteRequest{Name: "CBD-Umlazi", StartPoint: "Durban CBD", EndPoint: "Umlazi"})
	require.NoError(t, err)

	return &fixture{service: NewService(NewInMemoryStore(), routes, logger), routeID: rt.ID}
}

func testCtx() context.Context {
	ctx := requestcontext.WithPrincipal(context.Background(), "secretary1")
	return requestcontext.WithTime(ctx, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
}

func (fx *fixture) submit(t *testing.T) *Application {
	t.Helper()
	a, err := fx.service.Submit(testCtx(), SubmitRequest{
		ApplicantName: "Nomsa Zulu", ContactNumber: "0831112222", RouteID: fx.routeID,
	})
	require.NoError(t, err)
	return a
}

func TestSubmitApplication(t *testing.T) {
	fx := newFixture(t)

	a := fx.submit(t)
	assert.Equal(t, StatusPending, a.Status)
	assert.False(t, a.SecretaryReviewed)
	assert.False(t, a.ChairpersonReviewed)
	assert.Equal(t, "CBD-Umlazi", a.RouteName)
}

func TestSubmitApplicationValidation(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.Submit(testCtx(), SubmitRequest{ContactNumber: "083"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = fx.service.Submit(testCtx(), SubmitRequest{ApplicantName: "Nomsa"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = fx.service.Submit(testCtx(), SubmitRequest{ApplicantName: "Nomsa", ContactNumber: "083", RouteID: 99})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestSubmitApplicationWithoutRoute(t *testing.T) {
	fx := newFixture(t)

	a, err := fx.service.Submit(testCtx(), SubmitRequest{ApplicantName: "Nomsa", ContactNumber: "083"})
	require.NoError(t, err)
	assert.Zero(t, a.RouteID)
	assert.Empty(t, a.RouteName)
}

func TestSecretaryReview(t *testing.T) {
	fx := newFixture(t)
	a := fx.submit(t)

	reviewed, err := fx.service.SecretaryReview(testCtx(), a.ID, ReviewRequest{Decision: StatusApproved, DecisionNotes: "Documents in order"})
	require.NoError(t, err)
	assert.True(t, reviewed.SecretaryReviewed)
	assert.Equal(t, StatusApproved, reviewed.Status)
	assert.Equal(t, "Documents in order", reviewed.DecisionNotes)

	_, err = fx.service.SecretaryReview(testCtx(), a.ID, ReviewRequest{Decision: StatusRejected})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestChairpersonRequiresSecretaryFirst(t *testing.T) {
	fx := newFixture(t)
	a := fx.submit(t)

	_, err := fx.service.ChairpersonReview(testCtx(), a.ID, ReviewRequest{Decision: StatusApproved})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	assert.Equal(t, "application must be reviewed by secretary first", dErrors.MessageOf(err))
}

func TestChairpersonReviewAppendsNotes(t *testing.T) {
	fx := newFixture(t)
	a := fx.submit(t)

	_, err := fx.service.SecretaryReview(testCtx(), a.ID, ReviewRequest{Decision: StatusApproved, DecisionNotes: "Documents in order"})
	require.NoError(t, err)

	final, err := fx.service.ChairpersonReview(testCtx(), a.ID, ReviewRequest{Decision: StatusApproved, DecisionNotes: "Agreed"})
	require.NoError(t, err)
	assert.True(t, final.ChairpersonReviewed)
	assert.Equal(t, "Documents in order\nChairperson: Agreed", final.DecisionNotes)

	_, err = fx.service.ChairpersonReview(testCtx(), a.ID, ReviewRequest{Decision: StatusRejected})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestChairpersonNotesWithoutSecretaryNotes(t *testing.T) {
	fx := newFixture(t)
	a := fx.submit(t)

	_, err := fx.service.SecretaryReview(testCtx(), a.ID, ReviewRequest{Decision: StatusApproved})
	require.NoError(t, err)

	final, err := fx.service.ChairpersonReview(testCtx(), a.ID, ReviewRequest{Decision: StatusRejected, DecisionNotes: "Route oversubscribed"})
	require.NoError(t, err)
	assert.Equal(t, "Chairperson: Route oversubscribed", final.DecisionNotes)
	assert.Equal(t, StatusRejected, final.Status)
}

func TestReviewDecisionValidation(t *testing.T) {
	fx := newFixture(t)
	a := fx.submit(t)

	_, err := fx.service.SecretaryReview(testCtx(), a.ID, ReviewRequest{Decision: StatusPending})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = fx.service.SecretaryReview(testCtx(), a.ID, ReviewRequest{Decision: "Maybe"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestApplicationQueues(t *testing.T) {
	fx := newFixture(t)
	a := fx.submit(t)
	b := fx.submit(t)

	_, err := fx.service.SecretaryReview(testCtx(), a.ID, ReviewRequest{Decision: StatusApproved})
	require.NoError(t, err)

	pendingSec, err := fx.service.ListPendingSecretary(testCtx())
	require.NoError(t, err)
	require.Len(t, pendingSec, 1)
	assert.Equal(t, b.ID, pendingSec[0].ID)

	pendingChair, err := fx.service.ListPendingChairperson(testCtx())
	require.NoError(t, err)
	require.Len(t, pendingChair, 1)
	assert.Equal(t, a.ID, pendingChair[0].ID)

	approved, err := fx.service.ListByStatus(testCtx(), StatusApproved)
	require.NoError(t, err)
	assert.Len(t, approved, 1)

	count, err := fx.service.CountByStatus(testCtx(), StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAttachDocument(t *testing.T) {
	fx := newFixture(t)
	a := fx.submit(t)

	d, err := fx.service.AttachDocument(testCtx(), a.ID, AttachDocumentRequest{
		DocumentType: "ID Copy", DocumentPath: "/uploads/applications/1/id-copy.pdf",
	})
	require.NoError(t, err)
	assert.NotZero(t, d.ID)
	assert.Equal(t, a.ID, d.ApplicationID)
	assert.Equal(t, "ID Copy", d.DocumentType)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), d.UploadedAt)

	documents, err := fx.service.ListDocuments(testCtx(), a.ID)
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, d.ID, documents[0].ID)
}

func TestAttachDocumentValidation(t *testing.T) {
	fx := newFixture(t)
	a := fx.submit(t)

	_, err := fx.service.AttachDocument(testCtx(), a.ID, AttachDocumentRequest{DocumentPath: "/uploads/x.pdf"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = fx.service.AttachDocument(testCtx(), a.ID, AttachDocumentRequest{DocumentType: "ID Copy"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = fx.service.AttachDocument(testCtx(), 99, AttachDocumentRequest{DocumentType: "ID Copy", DocumentPath: "/uploads/x.pdf"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestAttachDocumentAfterReview(t *testing.T) {
	fx := newFixture(t)
	a := fx.submit(t)

	_, err := fx.service.SecretaryReview(testCtx(), a.ID, ReviewRequest{Decision: StatusApproved})
	require.NoError(t, err)
	_, err = fx.service.ChairpersonReview(testCtx(), a.ID, ReviewRequest{Decision: StatusApproved})
	require.NoError(t, err)

	_, err = fx.service.AttachDocument(testCtx(), a.ID, AttachDocumentRequest{
		DocumentType: "Proof of Payment", DocumentPath: "/uploads/applications/1/pop.pdf",
	})
	require.NoError(t, err)
}

func TestListDocumentsByType(t *testing.T) {
	fx := newFixture(t)
	a := fx.submit(t)
	b := fx.submit(t)

	_, err := fx.service.AttachDocument(testCtx(), a.ID, AttachDocumentRequest{DocumentType: "ID Copy", DocumentPath: "/uploads/a/id.pdf"})
	require.NoError(t, err)
	_, err = fx.service.AttachDocument(testCtx(), a.ID, AttachDocumentRequest{DocumentType: "PDP", DocumentPath: "/uploads/a/pdp.pdf"})
	require.NoError(t, err)
	_, err = fx.service.AttachDocument(testCtx(), b.ID, AttachDocumentRequest{DocumentType: "ID Copy", DocumentPath: "/uploads/b/id.pdf"})
	require.NoError(t, err)

	idCopies, err := fx.service.ListDocumentsByType(testCtx(), "ID Copy")
	require.NoError(t, err)
	assert.Len(t, idCopies, 2)

	_, err = fx.service.ListDocumentsByType(testCtx(), "  ")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	docsA, err := fx.service.ListDocuments(testCtx(), a.ID)
	require.NoError(t, err)
	assert.Len(t, docsA, 2)

	_, err = fx.service.ListDocuments(testCtx(), 99)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestUpdateApplicationStatus(t *testing.T) {
	fx := newFixture(t)
	a := fx.submit(t)

	updated, err := fx.service.UpdateStatus(testCtx(), a.ID, UpdateStatusRequest{Status: StatusRejected})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, updated.Status)

	_, err = fx.service.UpdateStatus(testCtx(), a.ID, UpdateStatusRequest{Status: "Bogus"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
