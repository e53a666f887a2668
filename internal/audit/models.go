// Package audit captures an append-only change history for designated
// records. Services invoke the recorder explicitly after each persistence
// write; failures here are logged and suppressed, never surfaced to the
// primary operation.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Action classifies the intercepted mutation.
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// SystemPrincipal is recorded when no authenticated caller is present.
const SystemPrincipal = "system"

// Entry is one immutable audit record. OldData is nil for inserts, NewData
// is nil for deletes.
type Entry struct {
	ID        uuid.UUID       `json:"audit_id"`
	TableName string          `json:"table_name"`
	RecordID  int64           `json:"record_id"`
	Action    Action          `json:"action_type"`
	ActionBy  string          `json:"action_by"`
	ActionAt  time.Time       `json:"action_at"`
	OldData   json.RawMessage `json:"old_data,omitempty"`
	NewData   json.RawMessage `json:"new_data,omitempty"`
}

// Snapshotter is implemented by every auditable record type. Snapshots carry
// only scalar fields (numbers, strings, booleans, RFC3339 timestamps); cross
// record references stay as plain IDs.
type Snapshotter interface {
	AuditTable() string
	AuditRecordID() int64
	AuditSnapshot() map[string]any
}

// Store persists entries. Append-only: nothing updates or deletes an entry.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
	ListByTable(ctx context.Context, table string) ([]Entry, error)
	ListByRecord(ctx context.Context, table string, recordID int64) ([]Entry, error)
}

// Time renders a timestamp for snapshots. Zero times become nil so optional
// dates serialize as JSON null.
func Time(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
