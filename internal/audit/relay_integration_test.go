//go:build integration

package audit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"taxiassoc/pkg/testutil/containers"
)

func TestRelayPublishesOutbox(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	rp := containers.NewRedpandaContainer(t)
	ctx := context.Background()

	store := NewPostgresStore(pc.DB)
	base := time.Now().UTC().Truncate(time.Microsecond)
	entries := []Entry{
		{ID: uuid.New(), TableName: "assoc_member", RecordID: 1, Action: ActionInsert, ActionBy: "secretary1", ActionAt: base, NewData: []byte(`{"name":"Sipho"}`)},
		{ID: uuid.New(), TableName: "levy_fine", RecordID: 2, Action: ActionUpdate, ActionBy: "treasurer1", ActionAt: base.Add(time.Second), OldData: []byte(`{"status":"Unpaid"}`), NewData: []byte(`{"status":"Paid"}`)},
	}
	for _, e := range entries {
		require.NoError(t, store.Append(ctx, e))
	}

	const topic = "taxiassoc.audit.test"

	producer, err := kgo.NewClient(kgo.SeedBrokers(rp.Broker))
	require.NoError(t, err)
	defer producer.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	relay := NewRelay(store, producer, topic, logger)
	require.NoError(t, relay.EnsureTopic(ctx))
	require.NoError(t, relay.drainOnce(ctx))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	received := make(map[uuid.UUID]Entry)
	deadline := time.Now().Add(30 * time.Second)
	for len(received) < len(entries) && time.Now().Before(deadline) {
		pollCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		fetches := consumer.PollFetches(pollCtx)
		cancel()
		fetches.EachRecord(func(rec *kgo.Record) {
			var e Entry
			require.NoError(t, json.Unmarshal(rec.Value, &e))
			assert.Equal(t, e.TableName, string(rec.Key))
			received[e.ID] = e
		})
	}

	require.Len(t, received, len(entries))
	got, ok := received[entries[1].ID]
	require.True(t, ok)
	assert.Equal(t, ActionUpdate, got.Action)
	assert.JSONEq(t, `{"status":"Paid"}`, string(got.NewData))

	// Drained entries are marked published; a second pass finds nothing.
	unpublished, err := store.FetchUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, unpublished)
}
