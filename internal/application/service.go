package application

import (
	"context"
	"log/slog"
	"strings"

	"taxiassoc/internal/fleet"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

// Store persists membership applications.
type Store interface {
	Create(ctx context.Context, a *Application) error
	Update(ctx context.Context, a *Application) error
	FindByID(ctx context.Context, id int64) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	ListByStatus(ctx context.Context, status Status) ([]Application, error)
	ListPendingSecretary(ctx context.Context) ([]Application, error)
	ListPendingChairperson(ctx context.Context) ([]Application, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	CreateDocument(ctx context.Context, d *Document) error
	ListDocuments(ctx context.Context, applicationID int64) ([]Document, error)
	ListDocumentsByType(ctx context.Context, documentType string) ([]Document, error)
}

// RouteDirectory resolves routes applicants want to operate on.
type RouteDirectory interface {
	GetRoute(ctx context.Context, id int64) (*fleet.Route, error)
}

// Service runs the two-stage membership application review. The secretary
// reviews first; the chairperson cannot act before that, and neither stage
// can be repeated.
type Service struct {
	store  Store
	routes RouteDirectory
	logger *slog.Logger
}

func NewService(store Store, routes RouteDirectory, logger *slog.Logger) *Service {
	return &Service{store: store, routes: routes, logger: logger}
}

// Submit lodges a new application in Pending state.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Application, error) {
	if strings.TrimSpace(req.ApplicantName) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "applicant name is required")
	}
	if strings.TrimSpace(req.ContactNumber) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "contact number is required")
	}
	if req.RouteID != 0 {
		if _, err := s.routes.GetRoute(ctx, req.RouteID); err != nil {
			return nil, err
		}
	}

	now := requestcontext.Now(ctx)
	a := &Application{
		ApplicantName: strings.TrimSpace(req.ApplicantName),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		Status:        StatusPending,
		RouteID:       req.RouteID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to submit application")
	}

	s.logger.InfoContext(ctx, "membership application submitted", "application_id", a.ID, "applicant_name", a.ApplicantName)
	return s.enrich(ctx, a), nil
}

// SecretaryReview records the secretary's decision. An application can be
// secretary-reviewed once.
func (s *Service) SecretaryReview(ctx context.Context, id int64, req ReviewRequest) (*Application, error) {
	if err := validateDecision(req.Decision); err != nil {
		return nil, err
	}

	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.SecretaryReviewed {
		return nil, dErrors.New(dErrors.CodeInvalidState, "application has already been reviewed by secretary")
	}

	a.SecretaryReviewed = true
	a.Status = req.Decision
	a.DecisionNotes = strings.TrimSpace(req.DecisionNotes)
	a.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, a); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record secretary review")
	}

	s.logger.InfoContext(ctx, "secretary review recorded", "application_id", id, "decision", req.Decision)
	return s.enrich(ctx, a), nil
}

// ChairpersonReview records the chairperson's decision. The secretary must
// have reviewed first, and the chairperson can review once.
func (s *Service) ChairpersonReview(ctx context.Context, id int64, req ReviewRequest) (*Application, error) {
	if err := validateDecision(req.Decision); err != nil {
		return nil, err
	}

	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.SecretaryReviewed {
		return nil, dErrors.New(dErrors.CodeInvalidState, "application must be reviewed by secretary first")
	}
	if a.ChairpersonReviewed {
		return nil, dErrors.New(dErrors.CodeInvalidState, "application has already been reviewed by chairperson")
	}

	a.ChairpersonReviewed = true
	a.Status = req.Decision
	if notes := strings.TrimSpace(req.DecisionNotes); notes != "" {
		if a.DecisionNotes != "" {
			a.DecisionNotes = a.DecisionNotes + "\nChairperson: " + notes
		} else {
			a.DecisionNotes = "Chairperson: " + notes
		}
	}
	a.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, a); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record chairperson review")
	}

	s.logger.InfoContext(ctx, "chairperson review recorded", "application_id", id, "decision", req.Decision)
	return s.enrich(ctx, a), nil
}

// UpdateStatus moves an application to an explicit status outside the review
// flow.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) (*Application, error) {
	if !req.Status.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown application status")
	}

	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Status = req.Status
	a.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, a); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update application status")
	}
	return s.enrich(ctx, a), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Application, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, a), nil
}

func (s *Service) List(ctx context.Context) ([]Application, error) {
	apps, err := s.store.List(ctx)
	return s.enrichAll(ctx, apps, err)
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Application, error) {
	if !status.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown application status")
	}
	apps, err := s.store.ListByStatus(ctx, status)
	return s.enrichAll(ctx, apps, err)
}

func (s *Service) ListPendingSecretary(ctx context.Context) ([]Application, error) {
	apps, err := s.store.ListPendingSecretary(ctx)
	return s.enrichAll(ctx, apps, err)
}

func (s *Service) ListPendingChairperson(ctx context.Context) ([]Application, error) {
	apps, err := s.store.ListPendingChairperson(ctx)
	return s.enrichAll(ctx, apps, err)
}

func (s *Service) CountByStatus(ctx context.Context, status Status) (int64, error) {
	if !status.Valid() {
		return 0, dErrors.New(dErrors.CodeBadRequest, "unknown application status")
	}
	return s.store.CountByStatus(ctx, status)
}

// AttachDocument records a supporting document against an application.
// Resolved applications still accept documents; late paperwork is filed for
// the record.
func (s *Service) AttachDocument(ctx context.Context, applicationID int64, req AttachDocumentRequest) (*Document, error) {
	if strings.TrimSpace(req.DocumentType) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "document type is required")
	}
	if strings.TrimSpace(req.DocumentPath) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "document path is required")
	}
	if _, err := s.get(ctx, applicationID); err != nil {
		return nil, err
	}

	d := &Document{
		ApplicationID: applicationID,
		DocumentType:  strings.TrimSpace(req.DocumentType),
		DocumentPath:  strings.TrimSpace(req.DocumentPath),
		UploadedAt:    requestcontext.Now(ctx),
	}
	if err := s.store.CreateDocument(ctx, d); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to attach document")
	}

	s.logger.InfoContext(ctx, "application document attached",
		"application_id", applicationID, "document_id", d.ID, "document_type", d.DocumentType)
	return d, nil
}

func (s *Service) ListDocuments(ctx context.Context, applicationID int64) ([]Document, error) {
	if _, err := s.get(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.store.ListDocuments(ctx, applicationID)
}

func (s *Service) ListDocumentsByType(ctx context.Context, documentType string) ([]Document, error) {
	if strings.TrimSpace(documentType) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "document type is required")
	}
	return s.store.ListDocumentsByType(ctx, documentType)
}

func (s *Service) get(ctx context.Context, id int64) (*Application, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load application")
	}
	return a, nil
}

// enrich fills in the route name best-effort. A missing route never fails
// the read.
func (s *Service) enrich(ctx context.Context, a *Application) *Application {
	if a.RouteID != 0 {
		if rt, err := s.routes.GetRoute(ctx, a.RouteID); err == nil {
			a.RouteName = rt.Name
		}
	}
	return a
}

func (s *Service) enrichAll(ctx context.Context, apps []Application, err error) ([]Application, error) {
	if err != nil {
		return nil, err
	}
	for i := range apps {
		s.enrich(ctx, &apps[i])
	}
	return apps, nil
}

func validateDecision(decision Status) error {
	if decision != StatusApproved && decision != StatusRejected {
		return dErrors.New(dErrors.CodeBadRequest, "decision must be Approved or Rejected")
	}
	return nil
}
