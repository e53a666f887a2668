package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"taxiassoc/internal/platform/metrics"
	"taxiassoc/pkg/requestcontext"
)

// Recorder writes one Entry per create/update/delete on an auditable record.
// Every failure is contained here: the audit trail is best effort and must
// never roll back the mutation that triggered it.
type Recorder struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Recorder)

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Recorder) { r.metrics = m }
}

func NewRecorder(store Store, logger *slog.Logger, opts ...Option) *Recorder {
	r := &Recorder{store: store, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Created records an INSERT. OldData is always nil.
func (r *Recorder) Created(ctx context.Context, rec Snapshotter) {
	r.record(ctx, rec, ActionInsert, nil, rec.AuditSnapshot())
}

// Updated records an UPDATE. Callers that loaded the row before mutating it
// pass that state as before; a nil before leaves OldData empty.
func (r *Recorder) Updated(ctx context.Context, rec Snapshotter, before map[string]any) {
	r.record(ctx, rec, ActionUpdate, before, rec.AuditSnapshot())
}

// Deleted records a DELETE. NewData is always nil.
func (r *Recorder) Deleted(ctx context.Context, rec Snapshotter) {
	r.record(ctx, rec, ActionDelete, rec.AuditSnapshot(), nil)
}

func (r *Recorder) record(ctx context.Context, rec Snapshotter, action Action, before, after map[string]any) {
	entry := Entry{
		ID:        uuid.New(),
		TableName: rec.AuditTable(),
		RecordID:  rec.AuditRecordID(),
		Action:    action,
		ActionBy:  r.principal(ctx),
		ActionAt:  requestcontext.Now(ctx),
	}

	var err error
	if entry.OldData, err = marshalSnapshot(before); err != nil {
		r.fail(ctx, entry, err)
		return
	}
	if entry.NewData, err = marshalSnapshot(after); err != nil {
		r.fail(ctx, entry, err)
		return
	}

	if err := r.store.Append(ctx, entry); err != nil {
		r.fail(ctx, entry, err)
		return
	}

	if r.metrics != nil {
		r.metrics.AuditEntries.WithLabelValues(string(action)).Inc()
	}
	r.logger.DebugContext(ctx, "audit entry recorded",
		"table", entry.TableName,
		"record_id", entry.RecordID,
		"action", entry.Action,
	)
}

func (r *Recorder) principal(ctx context.Context) string {
	if p := requestcontext.Principal(ctx); p != "" && p != "anonymous" {
		return p
	}
	return SystemPrincipal
}

func (r *Recorder) fail(ctx context.Context, entry Entry, err error) {
	if r.metrics != nil {
		r.metrics.AuditWriteFailures.Inc()
	}
	r.logger.ErrorContext(ctx, "audit write failed, continuing",
		"table", entry.TableName,
		"record_id", entry.RecordID,
		"action", entry.Action,
		"error", err,
	)
}

func marshalSnapshot(snapshot map[string]any) (json.RawMessage, error) {
	if snapshot == nil {
		return nil, nil
	}
	return json.Marshal(snapshot)
}
