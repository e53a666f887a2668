package workflow

import (
	"context"
	"database/sql"
	"fmt"

	"taxiassoc/internal/platform/pgutil"
	dErrors "taxiassoc/pkg/errors"
)

// PostgresStore persists workflows in the disciplinary_workflow table.
// A unique index on levy_fine_id backs the one-workflow-per-fine rule, and
// the decision appliers run conditional UPDATEs so the Pending gate holds
// under concurrent requests.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const workflowColumns = `disciplinary_workflow_id, levy_fine_id, assoc_member_id, case_statement,
	secretary_decision, chairperson_decision, payment_arrangement, chairperson_override,
	final_status, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, w *Workflow) error {
	query := `
		INSERT INTO disciplinary_workflow (
			levy_fine_id, assoc_member_id, case_statement, secretary_decision,
			chairperson_decision, payment_arrangement, chairperson_override,
			final_status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING disciplinary_workflow_id
	`
	err := pgutil.From(ctx, s.db).QueryRowContext(ctx, query,
		w.LevyFineID, w.MemberID, w.CaseStatement, w.SecretaryDecision,
		w.ChairpersonDecision, pgutil.NullString(w.PaymentArrangement), w.ChairpersonOverride,
		w.FinalStatus, w.CreatedAt, w.UpdatedAt,
	).Scan(&w.ID)
	if pgutil.IsUniqueViolation(err) {
		return dErrors.New(dErrors.CodeConflict, "workflow already exists for fine")
	}
	if err != nil {
		return fmt.Errorf("insert workflow: %w", err)
	}
	return nil
}

func (s *PostgresStore) ApplySecretaryDecision(ctx context.Context, w *Workflow) error {
	query := `
		UPDATE disciplinary_workflow
		SET secretary_decision = $1, chairperson_decision = $2, payment_arrangement = $3,
			final_status = $4, updated_at = $5
		WHERE disciplinary_workflow_id = $6
			AND secretary_decision = 'Pending' AND final_status = 'Ongoing'
	`
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, query,
		w.SecretaryDecision, w.ChairpersonDecision, pgutil.NullString(w.PaymentArrangement),
		w.FinalStatus, w.UpdatedAt, w.ID)
	if err != nil {
		return fmt.Errorf("apply secretary decision: %w", err)
	}
	return s.requireGate(ctx, res, w.ID, "secretary decision is not pending")
}

func (s *PostgresStore) ApplyChairpersonDecision(ctx context.Context, w *Workflow) error {
	query := `
		UPDATE disciplinary_workflow
		SET chairperson_decision = $1, payment_arrangement = $2, chairperson_override = $3,
			final_status = $4, updated_at = $5
		WHERE disciplinary_workflow_id = $6
			AND chairperson_decision = 'Pending' AND final_status = 'Ongoing'
	`
	res, err := pgutil.From(ctx, s.db).ExecContext(ctx, query,
		w.ChairpersonDecision, pgutil.NullString(w.PaymentArrangement), w.ChairpersonOverride,
		w.FinalStatus, w.UpdatedAt, w.ID)
	if err != nil {
		return fmt.Errorf("apply chairperson decision: %w", err)
	}
	return s.requireGate(ctx, res, w.ID, "chairperson decision is not pending")
}

// requireGate classifies a zero-row conditional UPDATE: the row either does
// not exist or exists but failed the Pending gate.
func (s *PostgresStore) requireGate(ctx context.Context, res sql.Result, id int64, gateMessage string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return dErrors.New(dErrors.CodeInvalidState, gateMessage)
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*Workflow, error) {
	return s.queryOne(ctx, `SELECT `+workflowColumns+` FROM disciplinary_workflow WHERE disciplinary_workflow_id = $1`, id)
}

func (s *PostgresStore) FindByFineID(ctx context.Context, fineID int64) (*Workflow, error) {
	return s.queryOne(ctx, `SELECT `+workflowColumns+` FROM disciplinary_workflow WHERE levy_fine_id = $1`, fineID)
}

func (s *PostgresStore) ListByMember(ctx context.Context, memberID int64) ([]Workflow, error) {
	return s.query(ctx, `SELECT `+workflowColumns+` FROM disciplinary_workflow WHERE assoc_member_id = $1 ORDER BY disciplinary_workflow_id`, memberID)
}

func (s *PostgresStore) ListPendingSecretary(ctx context.Context) ([]Workflow, error) {
	return s.query(ctx, `SELECT `+workflowColumns+` FROM disciplinary_workflow
		WHERE secretary_decision = 'Pending' AND final_status = 'Ongoing'
		ORDER BY disciplinary_workflow_id`)
}

func (s *PostgresStore) ListPendingChairperson(ctx context.Context) ([]Workflow, error) {
	return s.query(ctx, `SELECT `+workflowColumns+` FROM disciplinary_workflow
		WHERE secretary_decision <> 'Pending' AND chairperson_decision = 'Pending' AND final_status = 'Ongoing'
		ORDER BY disciplinary_workflow_id`)
}

func (s *PostgresStore) ListOngoing(ctx context.Context) ([]Workflow, error) {
	return s.query(ctx, `SELECT `+workflowColumns+` FROM disciplinary_workflow
		WHERE final_status = 'Ongoing' ORDER BY disciplinary_workflow_id`)
}

func (s *PostgresStore) queryOne(ctx context.Context, query string, args ...any) (*Workflow, error) {
	w, err := scanWorkflow(pgutil.From(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan workflow: %w", err)
	}
	return w, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]Workflow, error) {
	rows, err := pgutil.From(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query workflows: %w", err)
	}
	defer rows.Close()

	var workflows []Workflow
	for rows.Next() {
		w, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workflow: %w", err)
		}
		workflows = append(workflows, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workflows: %w", err)
	}
	return workflows, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkflow(row scanner) (*Workflow, error) {
	var (
		w           Workflow
		arrangement sql.NullString
	)
	err := row.Scan(&w.ID, &w.LevyFineID, &w.MemberID, &w.CaseStatement,
		&w.SecretaryDecision, &w.ChairpersonDecision, &arrangement, &w.ChairpersonOverride,
		&w.FinalStatus, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	w.PaymentArrangement = arrangement.String
	return &w, nil
}
