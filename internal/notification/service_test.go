package notification

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
	ctx := requestcontext.WithPrincipal(context.Background(), "secretary1")
	return requestcontext.WithTime(ctx, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
}

func TestSendNotification(t *testing.T) {
	svc, memberID := newTestService(t)

	n, err := svc.Send(testCtx(), SendRequest{MemberID: memberID, Message: "Meeting on Friday", Type: "General"})
	require.NoError(t, err)
	assert.Equal(t, StatusUnread, n.Status)
	assert.Equal(t, "General", n.Type)
}

func TestSendNotificationValidation(t *testing.T) {
	svc, memberID := newTestService(t)

	_, err := svc.Send(testCtx(), SendRequest{MemberID: memberID, Type: "General"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = svc.Send(testCtx(), SendRequest{MemberID: memberID, Message: "x"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = svc.Send(testCtx(), SendRequest{MemberID: 99, Message: "x", Type: "General"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestPaymentReminder(t *testing.T) {
	svc, memberID := newTestService(t)

	n, err := svc.PaymentReminder(testCtx(), memberID)
	require.NoError(t, err)
	assert.Equal(t, TypePaymentReminder, n.Type)
	assert.Equal(t, "Reminder: You have outstanding levy payments. Please settle your account.", n.Message)
}

func TestFineNotice(t *testing.T) {
	svc, memberID := newTestService(t)

	require.NoError(t, svc.FineNotice(testCtx(), memberID, "Overloading"))

	unread, err := svc.ListUnreadByMember(testCtx(), memberID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, TypeFineNotice, unread[0].Type)
	assert.Equal(t, "A fine has been issued to you. Reason: Overloading", unread[0].Message)
}

func TestMarkRead(t *testing.T) {
	svc, memberID := newTestService(t)

	n, err := svc.Send(testCtx(), SendRequest{MemberID: memberID, Message: "Meeting", Type: "General"})
	require.NoError(t, err)

	read, err := svc.MarkRead(testCtx(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRead, read.Status)

	// marking an already read notification is a no-op
	again, err := svc.MarkRead(testCtx(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRead, again.Status)

	_, err = svc.MarkRead(testCtx(), 99)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestMarkAllReadForMember(t *testing.T) {
	svc, memberID := newTestService(t)

	_, err := svc.Send(testCtx(), SendRequest{MemberID: memberID, Message: "One", Type: "General"})
	require.NoError(t, err)
	_, err = svc.Send(testCtx(), SendRequest{MemberID: memberID, Message: "Two", Type: "General"})
	require.NoError(t, err)

	count, err := svc.MarkAllReadForMember(testCtx(), memberID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	unreadCount, err := svc.CountUnread(testCtx(), memberID)
	require.NoError(t, err)
	assert.Zero(t, unreadCount)
}

func TestUnreadViews(t *testing.T) {
	svc, memberID := newTestService(t)

	a, err := svc.Send(testCtx(), SendRequest{MemberID: memberID, Message: "One", Type: "General"})
	require.NoError(t, err)
	_, err = svc.Send(testCtx(), SendRequest{MemberID: memberID, Message: "Two", Type: "General"})
	require.NoError(t, err)

	_, err = svc.MarkRead(testCtx(), a.ID)
	require.NoError(t, err)

	unread, err := svc.ListUnreadByMember(testCtx(), memberID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "Two", unread[0].Message)

	allUnread, err := svc.ListAllUnread(testCtx())
	require.NoError(t, err)
	assert.Len(t, allUnread, 1)

	count, err := svc.CountUnread(testCtx(), memberID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	all, err := svc.ListByMember(testCtx(), memberID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
