package levypayment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"taxiassoc/internal/audit"
	"taxiassoc/internal/member"
	"taxiassoc/internal/paymentmethod"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

// Store persists levy payments.
type Store interface {
	Create(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id int64) (*Payment, error)
	ListByMember(ctx context.Context, memberID int64) ([]Payment, error)
	ListByStatus(ctx context.Context, status Status) ([]Payment, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Payment, error)
	List(ctx context.Context) ([]Payment, error)
	SumByStatus(ctx context.Context, status Status) (float64, error)
}

// MemberDirectory resolves members referenced by levy payments.
type MemberDirectory interface {
	GetByID(ctx context.Context, id int64) (*member.Member, error)
}

// MethodDirectory resolves payment methods used to settle levies.
type MethodDirectory interface {
	GetByID(ctx context.Context, id int64) (*paymentmethod.Method, error)
}

// AuditRecorder is the slice of the audit recorder this service depends on.
type AuditRecorder interface {
	Created(ctx context.Context, rec audit.Snapshotter)
	Updated(ctx context.Context, rec audit.Snapshotter, before map[string]any)
}

// Service applies levy recording and settlement rules.
type Service struct {
	store    Store
	members  MemberDirectory
	methods  MethodDirectory
	recorder AuditRecorder
	logger   *slog.Logger
}

func NewService(store Store, members MemberDirectory, methods MethodDirectory, recorder AuditRecorder, logger *slog.Logger) *Service {
	return &Service{store: store, members: members, methods: methods, recorder: recorder, logger: logger}
}

// Record creates a pending levy for one member and week.
func (s *Service) Record(ctx context.Context, req RecordRequest) (*Payment, error) {
	if req.Amount <= 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "amount must be positive")
	}
	if req.WeekStartDate.IsZero() || req.WeekEndDate.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "week start and end dates are required")
	}
	if req.WeekEndDate.Before(req.WeekStartDate) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "week end date precedes start date")
	}
	if _, err := s.members.GetByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	p := &Payment{
		MemberID:      req.MemberID,
		WeekStartDate: req.WeekStartDate,
		WeekEndDate:   req.WeekEndDate,
		Amount:        req.Amount,
		Status:        StatusPending,
		CreatedBy:     principal(ctx),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record levy payment")
	}

	s.logger.InfoContext(ctx, "levy payment recorded", "levy_payment_id", p.ID, "assoc_member_id", p.MemberID, "amount", p.Amount)
	s.recorder.Created(ctx, p)
	return p, nil
}

// Process settles a pending levy through a payment method.
func (s *Service) Process(ctx context.Context, id int64, req ProcessRequest) (*Payment, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusPaid {
		return nil, dErrors.New(dErrors.CodeInvalidState, "levy payment is already paid")
	}
	if _, err := s.methods.GetByID(ctx, req.PaymentMethodID); err != nil {
		return nil, err
	}

	before := p.AuditSnapshot()
	p.Status = StatusPaid
	p.PaymentMethodID = req.PaymentMethodID
	p.UpdatedBy = principal(ctx)
	p.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to process levy payment")
	}

	s.logger.InfoContext(ctx, "levy payment processed", "levy_payment_id", p.ID, "payment_method_id", p.PaymentMethodID)
	s.recorder.Updated(ctx, p, before)
	return p, nil
}

// AttachReceipt links an issued receipt number to a levy payment.
func (s *Service) AttachReceipt(ctx context.Context, id int64, receiptNumber string) (*Payment, error) {
	if strings.TrimSpace(receiptNumber) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "receipt number is required")
	}

	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := p.AuditSnapshot()
	p.ReceiptNumber = strings.TrimSpace(receiptNumber)
	p.UpdatedBy = principal(ctx)
	p.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to attach receipt")
	}

	s.recorder.Updated(ctx, p, before)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Payment, error) {
	return s.get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Payment, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByMember(ctx context.Context, memberID int64) ([]Payment, error) {
	return s.store.ListByMember(ctx, memberID)
}

func (s *Service) ListPending(ctx context.Context) ([]Payment, error) {
	return s.store.ListByStatus(ctx, StatusPending)
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Payment, error) {
	if !status.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown levy payment status")
	}
	return s.store.ListByStatus(ctx, status)
}

func (s *Service) ListByDateRange(ctx context.Context, from, to time.Time) ([]Payment, error) {
	if from.IsZero() || to.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "from and to dates are required")
	}
	if to.Before(from) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "to date precedes from date")
	}
	return s.store.ListByDateRange(ctx, from, to)
}

// TotalOutstanding sums levies still pending.
func (s *Service) TotalOutstanding(ctx context.Context) (float64, error) {
	return s.store.SumByStatus(ctx, StatusPending)
}

// TotalCollected sums levies already settled.
func (s *Service) TotalCollected(ctx context.Context) (float64, error) {
	return s.store.SumByStatus(ctx, StatusPaid)
}

func (s *Service) get(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "levy payment not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load levy payment")
	}
	return p, nil
}

func principal(ctx context.Context) string {
	if p := requestcontext.Principal(ctx); p != "" {
		return p
	}
	return audit.SystemPrincipal
}
