//go:build integration

package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxiassoc/internal/audit"
	"taxiassoc/internal/member"
	platformredis "taxiassoc/internal/platform/redis"
	"taxiassoc/pkg/requestcontext"
	"taxiassoc/pkg/testutil/containers"
)

func TestUnreadCountCaching(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	cache := &platformredis.Client{Client: rc.Client}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := audit.NewRecorder(audit.NewInMemoryStore(), logger)
	members := member.NewService(member.NewInMemoryStore(), recorder, logger)

	ctx := requestcontext.WithPrincipal(context.Background(), "secretary1")
	m, err := members.Create(ctx, member.CreateRequest{Name: "Sipho", ContactNumber: "082", SquadNumber: "SQ-1"})
	require.NoError(t, err)

	svc := NewService(NewInMemoryStore(), members, logger, WithCache(cache))

	_, err = svc.Send(ctx, SendRequest{MemberID: m.ID, Message: "One", Type: "General"})
	require.NoError(t, err)

	// first read populates the cache from the store
	count, err := svc.CountUnread(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	cached, err := rc.Client.Get(ctx, unreadCountKey(m.ID)).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached)

	// a write drops the cached value
	_, err = svc.Send(ctx, SendRequest{MemberID: m.ID, Message: "Two", Type: "General"})
	require.NoError(t, err)
	assert.Error(t, rc.Client.Get(ctx, unreadCountKey(m.ID)).Err())

	count, err = svc.CountUnread(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// a stale cached value wins until invalidated
	require.NoError(t, rc.Client.Set(ctx, unreadCountKey(m.ID), 99, 0).Err())
	count, err = svc.CountUnread(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(99), count)

	_, err = svc.MarkAllReadForMember(ctx, m.ID)
	require.NoError(t, err)
	count, err = svc.CountUnread(ctx, m.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
