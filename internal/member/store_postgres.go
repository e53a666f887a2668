package member

import (
	"context"
	"database/sql"
	"fmt"

	"taxiassoc/internal/platform/pgutil"
	dErrors "taxiassoc/pkg/errors"
)

// PostgresStore persists members in the assoc_member table. Uniqueness of
// squad numbers is enforced by a unique index so concurrent registrations
// cannot both succeed.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) q(ctx context.Context) pgutil.Queryer {
	return pgutil.From(ctx, s.db)
}

const memberColumns = `assoc_member_id, name, contact_number, squad_number, joined_at, blacklisted, created_by, updated_by, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO assoc_member (name, contact_number, squad_number, joined_at, blacklisted, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING assoc_member_id
	`
	err := s.q(ctx).QueryRowContext(ctx, query,
		m.Name, m.ContactNumber, m.SquadNumber, m.JoinedAt, m.Blacklisted,
		m.CreatedBy, pgutil.NullString(m.UpdatedBy), m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		if pgutil.IsUniqueViolation(err) {
			return dErrors.New(dErrors.CodeConflict, "duplicate squad number")
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE assoc_member
		SET name = $1, contact_number = $2, squad_number = $3, blacklisted = $4, updated_by = $5, updated_at = $6
		WHERE assoc_member_id = $7
	`
	res, err := s.q(ctx).ExecContext(ctx, query,
		m.Name, m.ContactNumber, m.SquadNumber, m.Blacklisted,
		pgutil.NullString(m.UpdatedBy), m.UpdatedAt, m.ID,
	)
	if err != nil {
		if pgutil.IsUniqueViolation(err) {
			return dErrors.New(dErrors.CodeConflict, "duplicate squad number")
		}
		return fmt.Errorf("update member: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM assoc_member WHERE assoc_member_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Member, error) {
	row := s.q(ctx).QueryRowContext(ctx, `SELECT `+memberColumns+` FROM assoc_member WHERE assoc_member_id = $1`, id)
	return scanMember(row)
}

func (s *PostgresStore) FindBySquadNumber(ctx context.Context, squadNumber string) (*Member, error) {
	row := s.q(ctx).QueryRowContext(ctx, `SELECT `+memberColumns+` FROM assoc_member WHERE squad_number = $1`, squadNumber)
	return scanMember(row)
}

func (s *PostgresStore) List(ctx context.Context) ([]Member, error) {
	return s.query(ctx, `SELECT `+memberColumns+` FROM assoc_member ORDER BY assoc_member_id`)
}

func (s *PostgresStore) ListByBlacklisted(ctx context.Context, blacklisted bool) ([]Member, error) {
	return s.query(ctx, `SELECT `+memberColumns+` FROM assoc_member WHERE blacklisted = $1 ORDER BY assoc_member_id`, blacklisted)
}

func (s *PostgresStore) SearchByName(ctx context.Context, name string) ([]Member, error) {
	return s.query(ctx, `SELECT `+memberColumns+` FROM assoc_member WHERE name ILIKE '%' || $1 || '%' ORDER BY assoc_member_id`, name)
}

func (s *PostgresStore) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.q(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM assoc_member WHERE blacklisted = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active members: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Member, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		m, err := scanMemberRows(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

func scanMember(row *sql.Row) (*Member, error) {
	var m Member
	var updatedBy sql.NullString
	err := row.Scan(&m.ID, &m.Name, &m.ContactNumber, &m.SquadNumber, &m.JoinedAt,
		&m.Blacklisted, &m.CreatedBy, &updatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan member: %w", err)
	}
	m.UpdatedBy = updatedBy.String
	return &m, nil
}

func scanMemberRows(rows *sql.Rows) (*Member, error) {
	var m Member
	var updatedBy sql.NullString
	err := rows.Scan(&m.ID, &m.Name, &m.ContactNumber, &m.SquadNumber, &m.JoinedAt,
		&m.Blacklisted, &m.CreatedBy, &updatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan member: %w", err)
	}
	m.UpdatedBy = updatedBy.String
	return &m, nil
}
