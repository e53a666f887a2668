package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	txcontext "taxiassoc/pkg/tx"
)

// PostgresStore persists entries in the audit_log table. Appends join the
// ambient transaction when one is carried in context, so the audit row and
// the primary mutation commit together. The published flag doubles the table
// as an outbox for the Kafka relay.
type PostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		tracer: otel.Tracer("taxiassoc/audit"),
	}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	ctx, span := s.tracer.Start(ctx, "audit.append",
		trace.WithAttributes(
			attribute.String("audit.table", entry.TableName),
			attribute.Int64("audit.record_id", entry.RecordID),
			attribute.String("audit.action", string(entry.Action)),
		),
	)
	defer span.End()

	query := `
		INSERT INTO audit_log (audit_id, table_name, record_id, action_type, action_by, action_at, old_data, new_data, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		entry.ID,
		entry.TableName,
		entry.RecordID,
		string(entry.Action),
		entry.ActionBy,
		entry.ActionAt.UTC(),
		nullableJSON(entry.OldData),
		nullableJSON(entry.NewData),
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("duplicate audit entry %s: %w", entry.ID, err)
		}
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

const selectColumns = `audit_id, table_name, record_id, action_type, action_by, action_at, old_data, new_data`

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + selectColumns + ` FROM audit_log ORDER BY action_at DESC LIMIT $1`
	return s.query(ctx, query, limit)
}

func (s *PostgresStore) ListByTable(ctx context.Context, table string) ([]Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM audit_log WHERE table_name = $1 ORDER BY action_at ASC`
	return s.query(ctx, query, table)
}

func (s *PostgresStore) ListByRecord(ctx context.Context, table string, recordID int64) ([]Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM audit_log WHERE table_name = $1 AND record_id = $2 ORDER BY action_at ASC`
	return s.query(ctx, query, table, recordID)
}

// FetchUnpublished returns the oldest entries not yet relayed to Kafka.
func (s *PostgresStore) FetchUnpublished(ctx context.Context, batchSize int) ([]Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM audit_log WHERE published = FALSE ORDER BY action_at ASC LIMIT $1`
	return s.query(ctx, query, batchSize)
}

// MarkPublished flags relayed entries so the relay never re-sends them.
func (s *PostgresStore) MarkPublished(ctx context.Context, ids []any) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `UPDATE audit_log SET published = TRUE WHERE audit_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("mark audit entries published: %w", err)
	}
	return nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var oldData, newData sql.NullString
		if err := rows.Scan(&e.ID, &e.TableName, &e.RecordID, &e.Action, &e.ActionBy, &e.ActionAt, &oldData, &newData); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if oldData.Valid {
			e.OldData = []byte(oldData.String)
		}
		if newData.Valid {
			e.NewData = []byte(newData.String)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}

func nullableJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}
