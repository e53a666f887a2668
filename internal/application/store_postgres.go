package application

import (
	"context"
	"database/sql"
	"fmt"

	"taxiassoc/internal/platform/pgutil"
	dErrors "taxiassoc/pkg/errors"
)

// PostgresStore persists applications in the membership_application table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const applicationColumns = `application_id, applicant_name, contact_number, application_status, route_id, secretary_reviewed, chairperson_reviewed, decision_notes, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, a *Application) error {
	query := `
		INSERT INTO membership_application (applicant_name, contact_number, application_status, route_id, secretary_reviewed, chairperson_reviewed, decision_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING application_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		a.ApplicantName, a.ContactNumber, a.Status, pgutil.NullInt64(a.RouteID),
		a.SecretaryReviewed, a.ChairpersonReviewed, pgutil.NullString(a.DecisionNotes),
		a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, a *Application) error {
	query := `
		UPDATE membership_application
		SET application_status = $1, secretary_reviewed = $2, chairperson_reviewed = $3, decision_notes = $4, updated_at = $5
		WHERE application_id = $6
	`
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, query,
		a.Status, a.SecretaryReviewed, a.ChairpersonReviewed,
		pgutil.NullString(a.DecisionNotes), a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	return pgutil.RequireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Application, error) {
	row := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM membership_application WHERE application_id = $1`, id)
	a, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan application: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Application, error) {
	return s.query(ctx, `SELECT `+applicationColumns+` FROM membership_application ORDER BY application_id`)
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status Status) ([]Application, error) {
	return s.query(ctx, `SELECT `+applicationColumns+` FROM membership_application WHERE application_status = $1 ORDER BY application_id`, status)
}

func (s *PostgresStore) ListPendingSecretary(ctx context.Context) ([]Application, error) {
	return s.query(ctx, `SELECT `+applicationColumns+` FROM membership_application WHERE secretary_reviewed = FALSE ORDER BY application_id`)
}

func (s *PostgresStore) ListPendingChairperson(ctx context.Context) ([]Application, error) {
	return s.query(ctx, `SELECT `+applicationColumns+` FROM membership_application WHERE secretary_reviewed = TRUE AND chairperson_reviewed = FALSE ORDER BY application_id`)
}

func (s *PostgresStore) CountByStatus(ctx context.Context, status Status) (int64, error) {
	var count int64
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM membership_application WHERE application_status = $1`, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return count, nil
}

const documentColumns = `document_id, application_id, document_type, document_path, uploaded_at`

func (s *PostgresStore) CreateDocument(ctx context.Context, d *Document) error {
	query := `
		INSERT INTO membership_application_document (application_id, document_type, document_path, uploaded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING document_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		d.ApplicationID, d.DocumentType, d.DocumentPath, d.UploadedAt,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert application document: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListDocuments(ctx context.Context, applicationID int64) ([]Document, error) {
	return s.queryDocuments(ctx,
		`SELECT `+documentColumns+` FROM membership_application_document WHERE application_id = $1 ORDER BY document_id`, applicationID)
}

func (s *PostgresStore) ListDocumentsByType(ctx context.Context, documentType string) ([]Document, error) {
	return s.queryDocuments(ctx,
		`SELECT `+documentColumns+` FROM membership_application_document WHERE document_type = $1 ORDER BY document_id`, documentType)
}

func (s *PostgresStore) queryDocuments(ctx context.Context, query string, args ...any) ([]Document, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query application documents: %w", err)
	}
	defer rows.Close()

	var documents []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.ApplicationID, &d.DocumentType, &d.DocumentPath, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan application document: %w", err)
		}
		documents = append(documents, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate application documents: %w", err)
	}
	return documents, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		applications = append(applications, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return applications, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (*Application, error) {
	var a Application
	var routeID sql.NullInt64
	var decisionNotes sql.NullString
	err := row.Scan(&a.ID, &a.ApplicantName, &a.ContactNumber, &a.Status, &routeID,
		&a.SecretaryReviewed, &a.ChairpersonReviewed, &decisionNotes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.RouteID = routeID.Int64
	a.DecisionNotes = decisionNotes.String
	return &a, nil
}
