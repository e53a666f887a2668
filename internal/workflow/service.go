package workflow

//go:generate mockgen -source=service.go -destination=mocks/service_mocks.go -package=mocks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"taxiassoc/internal/audit"
	"taxiassoc/internal/fine"
	"taxiassoc/internal/member"
	"taxiassoc/internal/platform/metrics"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
	"taxiassoc/pkg/tx"
)

// Store persists workflows. Create must reject a second workflow for the
// same fine with a conflict error. The decision appliers must enforce the
// "valid only when Pending and Ongoing" gate atomically so concurrent
// decisions cannot both succeed; a gate miss surfaces as an invalid_state
// error.
type Store interface {
	Create(ctx context.Context, w *Workflow) error
	ApplySecretaryDecision(ctx context.Context, w *Workflow) error
	ApplyChairpersonDecision(ctx context.Context, w *Workflow) error
	FindByID(ctx context.Context, id int64) (*Workflow, error)
	FindByFineID(ctx context.Context, fineID int64) (*Workflow, error)
	ListByMember(ctx context.Context, memberID int64) ([]Workflow, error)
	ListPendingSecretary(ctx context.Context) ([]Workflow, error)
	ListPendingChairperson(ctx context.Context) ([]Workflow, error)
	ListOngoing(ctx context.Context) ([]Workflow, error)
}

// FineDirectory resolves the fines cases are opened against.
type FineDirectory interface {
	GetByID(ctx context.Context, id int64) (*fine.Fine, error)
}

// MemberDirectory resolves members for existence checks and display-name
// enrichment.
type MemberDirectory interface {
	GetByID(ctx context.Context, id int64) (*member.Member, error)
}

// AuditRecorder is the slice of the audit recorder this service depends on.
type AuditRecorder interface {
	Created(ctx context.Context, rec audit.Snapshotter)
	Updated(ctx context.Context, rec audit.Snapshotter, before map[string]any)
}

// Service runs the disciplinary state machine.
type Service struct {
	store    Store
	fines    FineDirectory
	members  MemberDirectory
	recorder AuditRecorder
	logger   *slog.Logger
	metrics  *metrics.Metrics
	db       tx.Beginner
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTransactions commits each decision and its audit entry atomically.
// Without it writes run directly against the store, which is what the
// in-memory store expects.
func WithTransactions(db tx.Beginner) Option {
	return func(s *Service) { s.db = db }
}

func NewService(store Store, fines FineDirectory, members MemberDirectory, recorder AuditRecorder, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		fines:    fines,
		members:  members,
		recorder: recorder,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initiate opens a case against a fine. At most one workflow per fine: a
// second initiation fails with a conflict error regardless of interleaving.
func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (*Workflow, error) {
	if strings.TrimSpace(req.CaseStatement) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "case statement is required")
	}
	if _, err := s.fines.GetByID(ctx, req.LevyFineID); err != nil {
		return nil, err
	}
	if _, err := s.members.GetByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	w := &Workflow{
		LevyFineID:          req.LevyFineID,
		MemberID:            req.MemberID,
		CaseStatement:       strings.TrimSpace(req.CaseStatement),
		SecretaryDecision:   DecisionPending,
		ChairpersonDecision: DecisionPending,
		FinalStatus:         StatusOngoing,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	err := tx.Run(ctx, s.db, func(ctx context.Context) error {
		if err := s.store.Create(ctx, w); err != nil {
			return err
		}
		s.recorder.Created(ctx, w)
		return nil
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "a disciplinary workflow already exists for this fine")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to initiate workflow")
	}

	s.logger.InfoContext(ctx, "disciplinary workflow initiated",
		"disciplinary_workflow_id", w.ID, "levy_fine_id", w.LevyFineID, "assoc_member_id", w.MemberID)
	return s.enrich(ctx, w), nil
}

// SecretaryDecide records the secretary's verdict. Valid only while the
// secretary decision is Pending and the workflow is Ongoing. A rejection is
// final at this stage: the chairperson step is skipped and the workflow
// resolves.
func (s *Service) SecretaryDecide(ctx context.Context, id int64, req SecretaryDecisionRequest) (*Workflow, error) {
	if err := validateDecision(req.Decision); err != nil {
		return nil, err
	}

	w, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Resolved() {
		return nil, dErrors.New(dErrors.CodeInvalidState, "workflow is already resolved")
	}
	if w.SecretaryDecision != DecisionPending {
		return nil, dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("secretary decision already recorded: %s", w.SecretaryDecision))
	}

	before := w.AuditSnapshot()
	w.SecretaryDecision = req.Decision
	if arrangement := strings.TrimSpace(req.PaymentArrangement); arrangement != "" {
		w.PaymentArrangement = arrangement
	}
	if req.Decision == DecisionRejected {
		w.ChairpersonDecision = DecisionNotRequired
		w.FinalStatus = StatusResolved
	}
	w.UpdatedAt = requestcontext.Now(ctx)

	err = tx.Run(ctx, s.db, func(ctx context.Context) error {
		if err := s.store.ApplySecretaryDecision(ctx, w); err != nil {
			return err
		}
		s.recorder.Updated(ctx, w, before)
		return nil
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidState) {
			return nil, dErrors.New(dErrors.CodeInvalidState,
				"secretary decision gate lost: decision is no longer Pending")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record secretary decision")
	}

	s.logger.InfoContext(ctx, "secretary decision recorded",
		"disciplinary_workflow_id", id, "decision", req.Decision, "final_status", w.FinalStatus)
	if w.Resolved() && s.metrics != nil {
		s.metrics.WorkflowsResolved.Inc()
	}
	return s.enrich(ctx, w), nil
}

// ChairpersonDecide records the chairperson's verdict and always resolves
// the workflow. The secretary must have decided first unless the chairperson
// explicitly overrides that gate. Arrangement text is appended with
// attribution, never replaced.
func (s *Service) ChairpersonDecide(ctx context.Context, id int64, req ChairpersonDecisionRequest) (*Workflow, error) {
	if err := validateDecision(req.Decision); err != nil {
		return nil, err
	}

	w, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Resolved() {
		return nil, dErrors.New(dErrors.CodeInvalidState, "workflow is already resolved")
	}
	if w.ChairpersonDecision != DecisionPending {
		return nil, dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("chairperson decision already recorded: %s", w.ChairpersonDecision))
	}
	if w.SecretaryDecision == DecisionPending && !req.Override {
		return nil, dErrors.New(dErrors.CodeInvalidState,
			"secretary decision is still Pending; set override to bypass")
	}

	before := w.AuditSnapshot()
	w.ChairpersonDecision = req.Decision
	w.ChairpersonOverride = req.Override
	w.FinalStatus = StatusResolved
	if arrangement := strings.TrimSpace(req.PaymentArrangement); arrangement != "" {
		if w.PaymentArrangement != "" {
			w.PaymentArrangement = w.PaymentArrangement + "\nChairperson: " + arrangement
		} else {
			w.PaymentArrangement = "Chairperson: " + arrangement
		}
	}
	w.UpdatedAt = requestcontext.Now(ctx)

	err = tx.Run(ctx, s.db, func(ctx context.Context) error {
		if err := s.store.ApplyChairpersonDecision(ctx, w); err != nil {
			return err
		}
		s.recorder.Updated(ctx, w, before)
		return nil
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidState) {
			return nil, dErrors.New(dErrors.CodeInvalidState,
				"chairperson decision gate lost: decision is no longer Pending")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record chairperson decision")
	}

	s.logger.InfoContext(ctx, "chairperson decision recorded",
		"disciplinary_workflow_id", id, "decision", req.Decision, "override", req.Override)
	if s.metrics != nil {
		s.metrics.WorkflowsResolved.Inc()
	}
	return s.enrich(ctx, w), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Workflow, error) {
	w, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, w), nil
}

func (s *Service) GetByFineID(ctx context.Context, fineID int64) (*Workflow, error) {
	w, err := s.store.FindByFineID(ctx, fineID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "workflow not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load workflow")
	}
	return s.enrich(ctx, w), nil
}

func (s *Service) ListByMember(ctx context.Context, memberID int64) ([]Workflow, error) {
	workflows, err := s.store.ListByMember(ctx, memberID)
	return s.enrichAll(ctx, workflows, err)
}

func (s *Service) ListPendingSecretary(ctx context.Context) ([]Workflow, error) {
	workflows, err := s.store.ListPendingSecretary(ctx)
	return s.enrichAll(ctx, workflows, err)
}

func (s *Service) ListPendingChairperson(ctx context.Context) ([]Workflow, error) {
	workflows, err := s.store.ListPendingChairperson(ctx)
	return s.enrichAll(ctx, workflows, err)
}

func (s *Service) ListOngoing(ctx context.Context) ([]Workflow, error) {
	workflows, err := s.store.ListOngoing(ctx)
	return s.enrichAll(ctx, workflows, err)
}

func (s *Service) get(ctx context.Context, id int64) (*Workflow, error) {
	w, err := s.store.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "workflow not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load workflow")
	}
	return w, nil
}

// enrich fills in the member display name best-effort. A failed lookup
// leaves the name empty and never fails the read.
func (s *Service) enrich(ctx context.Context, w *Workflow) *Workflow {
	if m, err := s.members.GetByID(ctx, w.MemberID); err == nil {
		w.MemberName = m.Name
	}
	return w
}

func (s *Service) enrichAll(ctx context.Context, workflows []Workflow, err error) ([]Workflow, error) {
	if err != nil {
		return nil, err
	}
	for i := range workflows {
		s.enrich(ctx, &workflows[i])
	}
	return workflows, nil
}

func validateDecision(decision Decision) error {
	if decision != DecisionApproved && decision != DecisionRejected {
		return dErrors.New(dErrors.CodeBadRequest, "decision must be Approved or Rejected")
	}
	return nil
}
