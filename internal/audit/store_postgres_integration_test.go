//go:build integration

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxiassoc/pkg/testutil/containers"
)

func TestPostgresStoreOutbox(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	store := NewPostgresStore(pc.DB)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	entries := []Entry{
		{ID: uuid.New(), TableName: "assoc_member", RecordID: 1, Action: ActionInsert, ActionBy: "secretary1", ActionAt: base, NewData: []byte(`{"name":"Sipho"}`)},
		{ID: uuid.New(), TableName: "levy_fine", RecordID: 2, Action: ActionUpdate, ActionBy: "treasurer1", ActionAt: base.Add(time.Second), OldData: []byte(`{"status":"Unpaid"}`), NewData: []byte(`{"status":"Paid"}`)},
		{ID: uuid.New(), TableName: "assoc_member", RecordID: 1, Action: ActionDelete, ActionBy: "chairperson1", ActionAt: base.Add(2 * time.Second), OldData: []byte(`{"name":"Sipho"}`)},
	}
	for _, e := range entries {
		require.NoError(t, store.Append(ctx, e))
	}

	t.Run("list recent newest first", func(t *testing.T) {
		recent, err := store.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, ActionDelete, recent[0].Action)
	})

	t.Run("list by table", func(t *testing.T) {
		members, err := store.ListByTable(ctx, "assoc_member")
		require.NoError(t, err)
		assert.Len(t, members, 2)
	})

	t.Run("list by record", func(t *testing.T) {
		history, err := store.ListByRecord(ctx, "levy_fine", 2)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.JSONEq(t, `{"status":"Paid"}`, string(history[0].NewData))
	})

	t.Run("outbox drains in order", func(t *testing.T) {
		unpublished, err := store.FetchUnpublished(ctx, 10)
		require.NoError(t, err)
		require.Len(t, unpublished, 3)
		assert.Equal(t, ActionInsert, unpublished[0].Action)

		ids := []any{unpublished[0].ID, unpublished[1].ID}
		require.NoError(t, store.MarkPublished(ctx, ids))

		remaining, err := store.FetchUnpublished(ctx, 10)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, ActionDelete, remaining[0].Action)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		dup := entries[0]
		assert.Error(t, store.Append(ctx, dup))
	})
}
