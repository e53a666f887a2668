package fine

import (
	"context"
	"log/slog"
	"strings"

	"taxiassoc/internal/audit"
	"taxiassoc/internal/member"
	"taxiassoc/internal/paymentmethod"
	"taxiassoc/internal/platform/metrics"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

// Store persists fines.
type Store interface {
	Create(ctx context.Context, f *Fine) error
	Update(ctx context.Context, f *Fine) error
	FindByID(ctx context.Context, id int64) (*Fine, error)
	ListByMember(ctx context.Context, memberID int64) ([]Fine, error)
	ListByStatus(ctx context.Context, status Status) ([]Fine, error)
	List(ctx context.Context) ([]Fine, error)
	SumByStatuses(ctx context.Context, statuses []Status) (float64, error)
}

// MemberDirectory resolves members referenced by fines.
type MemberDirectory interface {
	GetByID(ctx context.Context, id int64) (*member.Member, error)
}

// MethodDirectory resolves payment methods used to settle fines.
type MethodDirectory interface {
	GetByID(ctx context.Context, id int64) (*paymentmethod.Method, error)
}

// Notifier delivers member notifications. Delivery failures must not fail
// the fine operation, so implementations report errors for logging only.
type Notifier interface {
	FineNotice(ctx context.Context, memberID int64, reason string) error
}

// AuditRecorder is the slice of the audit recorder this service depends on.
type AuditRecorder interface {
	Created(ctx context.Context, rec audit.Snapshotter)
	Updated(ctx context.Context, rec audit.Snapshotter, before map[string]any)
}

// Service applies fine issuing and settlement rules.
type Service struct {
	store    Store
	members  MemberDirectory
	methods  MethodDirectory
	notifier Notifier
	recorder AuditRecorder
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, members MemberDirectory, methods MethodDirectory, notifier Notifier, recorder AuditRecorder, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		members:  members,
		methods:  methods,
		notifier: notifier,
		recorder: recorder,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates an unpaid fine against a member and dispatches a fine
// notice to them.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*Fine, error) {
	if req.Amount <= 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "amount must be positive")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "reason is required")
	}
	if _, err := s.members.GetByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	f := &Fine{
		MemberID:  req.MemberID,
		Amount:    req.Amount,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    StatusUnpaid,
		CreatedBy: principal(ctx),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, f); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue fine")
	}

	s.logger.InfoContext(ctx, "fine issued", "levy_fine_id", f.ID, "assoc_member_id", f.MemberID, "amount", f.Amount)
	if s.metrics != nil {
		s.metrics.FinesIssued.Inc()
	}
	s.recorder.Created(ctx, f)

	if err := s.notifier.FineNotice(ctx, f.MemberID, f.Reason); err != nil {
		s.logger.WarnContext(ctx, "fine notice not delivered", "levy_fine_id", f.ID, "error", err)
	}
	return f, nil
}

// ProcessPayment settles a fine through a payment method and marks it Paid.
func (s *Service) ProcessPayment(ctx context.Context, id int64, req ProcessPaymentRequest) (*Fine, error) {
	f, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Status == StatusPaid {
		return nil, dErrors.New(dErrors.CodeInvalidState, "fine is already paid")
	}
	if _, err := s.methods.GetByID(ctx, req.PaymentMethodID); err != nil {
		return nil, err
	}

	before := f.AuditSnapshot()
	f.Status = StatusPaid
	f.PaymentMethodID = req.PaymentMethodID
	f.UpdatedBy = principal(ctx)
	f.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, f); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to process fine payment")
	}

	s.logger.InfoContext(ctx, "fine payment processed", "levy_fine_id", f.ID, "payment_method_id", f.PaymentMethodID)
	s.recorder.Updated(ctx, f, before)
	return f, nil
}

// UpdateStatus moves a fine to an explicit status without recording a
// payment method.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) (*Fine, error) {
	if !req.Status.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown fine status")
	}

	f, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := f.AuditSnapshot()
	f.Status = req.Status
	f.UpdatedBy = principal(ctx)
	f.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, f); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update fine status")
	}

	s.recorder.Updated(ctx, f, before)
	return f, nil
}

// AttachReceipt links an issued receipt number to a fine.
func (s *Service) AttachReceipt(ctx context.Context, id int64, receiptNumber string) (*Fine, error) {
	if strings.TrimSpace(receiptNumber) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "receipt number is required")
	}

	f, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := f.AuditSnapshot()
	f.ReceiptNumber = strings.TrimSpace(receiptNumber)
	f.UpdatedBy = principal(ctx)
	f.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, f); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to attach receipt")
	}

	s.recorder.Updated(ctx, f, before)
	return f, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Fine, error) {
	return s.get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Fine, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByMember(ctx context.Context, memberID int64) ([]Fine, error) {
	return s.store.ListByMember(ctx, memberID)
}

func (s *Service) ListUnpaid(ctx context.Context) ([]Fine, error) {
	return s.store.ListByStatus(ctx, StatusUnpaid)
}

func (s *Service) ListOwing(ctx context.Context) ([]Fine, error) {
	return s.store.ListByStatus(ctx, StatusOwing)
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Fine, error) {
	if !status.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown fine status")
	}
	return s.store.ListByStatus(ctx, status)
}

// TotalOutstanding sums fines still owed (Unpaid and Owing).
func (s *Service) TotalOutstanding(ctx context.Context) (float64, error) {
	return s.store.SumByStatuses(ctx, []Status{StatusUnpaid, StatusOwing})
}

// TotalCollected sums fines already settled.
func (s *Service) TotalCollected(ctx context.Context) (float64, error) {
	return s.store.SumByStatuses(ctx, []Status{StatusPaid})
}

func (s *Service) get(ctx context.Context, id int64) (*Fine, error) {
	f, err := s.store.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "fine not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load fine")
	}
	return f, nil
}

func principal(ctx context.Context) string {
	if p := requestcontext.Principal(ctx); p != "" {
		return p
	}
	return audit.SystemPrincipal
}
