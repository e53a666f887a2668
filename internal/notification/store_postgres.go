package notification

import (
	"context"
	"database/sql"
	"fmt"

	"taxiassoc/internal/platform/pgutil"
	dErrors "taxiassoc/pkg/errors"
)

// PostgresStore persists notifications in the notification table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const notificationColumns = `notification_id, assoc_member_id, message, status, notification_type, created_at`

func (s *PostgresStore) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notification (assoc_member_id, message, status, notification_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING notification_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		n.MemberID, n.Message, n.Status, n.Type, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, n *Notification) error {
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx,
		`UPDATE notification SET status = $1 WHERE notification_id = $2`, n.Status, n.ID)
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Notification, error) {
	var n Notification
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM notification WHERE notification_id = $1`, id,
	).Scan(&n.ID, &n.MemberID, &n.Message, &n.Status, &n.Type, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan notification: %w", err)
	}
	return &n, nil
}

func (s *PostgresStore) ListByMember(ctx context.Context, memberID int64) ([]Notification, error) {
	return s.query(ctx, `SELECT `+notificationColumns+` FROM notification WHERE assoc_member_id = $1 ORDER BY notification_id DESC`, memberID)
}

func (s *PostgresStore) ListUnreadByMember(ctx context.Context, memberID int64) ([]Notification, error) {
	return s.query(ctx, `SELECT `+notificationColumns+` FROM notification WHERE assoc_member_id = $1 AND status = 'UNREAD' ORDER BY notification_id DESC`, memberID)
}

func (s *PostgresStore) ListAllUnread(ctx context.Context) ([]Notification, error) {
	return s.query(ctx, `SELECT `+notificationColumns+` FROM notification WHERE status = 'UNREAD' ORDER BY notification_id DESC`)
}

func (s *PostgresStore) CountUnreadByMember(ctx context.Context, memberID int64) (int64, error) {
	var count int64
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notification WHERE assoc_member_id = $1 AND status = 'UNREAD'`, memberID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) MarkAllReadForMember(ctx context.Context, memberID int64) (int64, error) {
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx,
		`UPDATE notification SET status = 'READ' WHERE assoc_member_id = $1 AND status = 'UNREAD'`, memberID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Notification, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.MemberID, &n.Message, &n.Status, &n.Type, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return notifications, nil
}
