package audit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxiassoc/pkg/requestcontext"
)

type stubRecord struct {
	id     int64
	name   string
	amount float64
}

func (r stubRecord) AuditTable() string   { return "stub_records" }
func (r stubRecord) AuditRecordID() int64 { return r.id }
func (r stubRecord) AuditSnapshot() map[string]any {
	return map[string]any{
		"id":     r.id,
		"name":   r.name,
		"amount": r.amount,
	}
}

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecorderCreated(t *testing.T) {
	store := NewInMemoryStore()
	recorder := NewRecorder(store, silentLogger())

	ctx := requestcontext.WithPrincipal(context.Background(), "secretary1")
	recorder.Created(ctx, stubRecord{id: 7, name: "first", amount: 150.5})

	entries, err := store.ListByRecord(ctx, "stub_records", 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, ActionInsert, entry.Action)
	assert.Equal(t, "secretary1", entry.ActionBy)
	assert.Nil(t, entry.OldData)

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(entry.NewData, &snapshot))
	assert.Equal(t, "first", snapshot["name"])
	assert.Equal(t, 150.5, snapshot["amount"])
}

func TestRecorderUpdatedCapturesBeforeState(t *testing.T) {
	store := NewInMemoryStore()
	recorder := NewRecorder(store, silentLogger())
	ctx := context.Background()

	rec := stubRecord{id: 3, name: "before", amount: 10}
	before := rec.AuditSnapshot()
	rec.name = "after"
	recorder.Updated(ctx, rec, before)

	entries, err := store.ListByRecord(ctx, "stub_records", 3)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var oldData, newData map[string]any
	require.NoError(t, json.Unmarshal(entries[0].OldData, &oldData))
	require.NoError(t, json.Unmarshal(entries[0].NewData, &newData))
	assert.Equal(t, "before", oldData["name"])
	assert.Equal(t, "after", newData["name"])
}

func TestRecorderUpdatedWithoutBeforeState(t *testing.T) {
	store := NewInMemoryStore()
	recorder := NewRecorder(store, silentLogger())

	recorder.Updated(context.Background(), stubRecord{id: 4, name: "x"}, nil)

	entries, err := store.ListByRecord(context.Background(), "stub_records", 4)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].OldData)
	assert.NotNil(t, entries[0].NewData)
}

func TestRecorderDeleted(t *testing.T) {
	store := NewInMemoryStore()
	recorder := NewRecorder(store, silentLogger())

	recorder.Deleted(context.Background(), stubRecord{id: 9, name: "gone"})

	entries, err := store.ListByRecord(context.Background(), "stub_records", 9)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ActionDelete, entries[0].Action)
	assert.Nil(t, entries[0].NewData)
	assert.NotNil(t, entries[0].OldData)
}

func TestRecorderPrincipalFallsBackToSystem(t *testing.T) {
	store := NewInMemoryStore()
	recorder := NewRecorder(store, silentLogger())

	recorder.Created(context.Background(), stubRecord{id: 1})
	recorder.Created(requestcontext.WithPrincipal(context.Background(), "anonymous"), stubRecord{id: 2})

	entries, err := store.ListByTable(context.Background(), "stub_records")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, SystemPrincipal, entries[0].ActionBy)
	assert.Equal(t, SystemPrincipal, entries[1].ActionBy)
}

type failingStore struct {
	InMemoryStore
	failTable string
}

func (s *failingStore) Append(ctx context.Context, entry Entry) error {
	if entry.TableName == s.failTable {
		return errors.New("simulated audit store outage")
	}
	return s.InMemoryStore.Append(ctx, entry)
}

type otherRecord struct{ stubRecord }

func (r otherRecord) AuditTable() string { return "other_records" }

// A failing write on one table must neither panic nor prevent entries for
// other tables from being recorded.
func TestRecorderSuppressesStoreFailures(t *testing.T) {
	store := &failingStore{failTable: "stub_records"}
	recorder := NewRecorder(store, silentLogger())
	ctx := context.Background()

	assert.NotPanics(t, func() {
		recorder.Created(ctx, stubRecord{id: 1})
	})

	recorder.Created(ctx, otherRecord{stubRecord{id: 5, name: "survives"}})

	failed, err := store.ListByTable(ctx, "stub_records")
	require.NoError(t, err)
	assert.Empty(t, failed)

	ok, err := store.ListByTable(ctx, "other_records")
	require.NoError(t, err)
	assert.Len(t, ok, 1)
}

func TestSnapshotTimeFormatting(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "2025-03-14T09:26:53Z", Time(ts))
	assert.Nil(t, Time(time.Time{}))
}

func TestInMemoryStoreListRecentOrder(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, store.Append(ctx, Entry{TableName: "t", RecordID: i, ActionAt: time.Now()}))
	}

	entries, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(5), entries[0].RecordID)
	assert.Equal(t, int64(4), entries[1].RecordID)
}
