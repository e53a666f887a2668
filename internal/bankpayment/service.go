package bankpayment

import (
	"context"
	"log/slog"
	"strings"

	"taxiassoc/internal/audit"
	"taxiassoc/internal/member"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

// Store persists bank payments. Create must reject duplicate transaction
// references with a conflict error.
type Store interface {
	Create(ctx context.Context, p *BankPayment) error
	Update(ctx context.Context, p *BankPayment) error
	FindByID(ctx context.Context, id int64) (*BankPayment, error)
	FindByReference(ctx context.Context, reference string) (*BankPayment, error)
	ListByMember(ctx context.Context, memberID int64) ([]BankPayment, error)
	ListByVerified(ctx context.Context, verified bool) ([]BankPayment, error)
	List(ctx context.Context) ([]BankPayment, error)
}

// MemberDirectory resolves members referenced by bank payments.
type MemberDirectory interface {
	GetByID(ctx context.Context, id int64) (*member.Member, error)
}

// AuditRecorder is the slice of the audit recorder this service depends on.
type AuditRecorder interface {
	Created(ctx context.Context, rec audit.Snapshotter)
	Updated(ctx context.Context, rec audit.Snapshotter, before map[string]any)
}

// Service applies bank deposit capture and verification rules.
type Service struct {
	store    Store
	members  MemberDirectory
	recorder AuditRecorder
	logger   *slog.Logger
}

func NewService(store Store, members MemberDirectory, recorder AuditRecorder, logger *slog.Logger) *Service {
	return &Service{store: store, members: members, recorder: recorder, logger: logger}
}

// Record captures a bank deposit against a member.
func (s *Service) Record(ctx context.Context, req RecordRequest) (*BankPayment, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := s.members.GetByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	p := &BankPayment{
		MemberID:             req.MemberID,
		LevyPaymentID:        req.LevyPaymentID,
		LevyFineID:           req.LevyFineID,
		BankName:             strings.TrimSpace(req.BankName),
		BranchCode:           strings.TrimSpace(req.BranchCode),
		AccountNumber:        strings.TrimSpace(req.AccountNumber),
		TransactionReference: strings.TrimSpace(req.TransactionReference),
		Amount:               req.Amount,
		PaymentDate:          req.PaymentDate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "transaction reference already captured")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record bank payment")
	}

	s.logger.InfoContext(ctx, "bank payment recorded",
		"bank_payment_id", p.ID, "assoc_member_id", p.MemberID, "transaction_reference", p.TransactionReference)
	s.recorder.Created(ctx, p)
	return p, nil
}

// Verify marks a captured deposit as matched against the bank statement.
func (s *Service) Verify(ctx context.Context, id int64) (*BankPayment, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Verified {
		return nil, dErrors.New(dErrors.CodeInvalidState, "bank payment is already verified")
	}

	before := p.AuditSnapshot()
	p.Verified = true
	p.VerifiedBy = principal(ctx)
	p.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify bank payment")
	}

	s.logger.InfoContext(ctx, "bank payment verified", "bank_payment_id", p.ID, "verified_by", p.VerifiedBy)
	s.recorder.Updated(ctx, p, before)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*BankPayment, error) {
	return s.get(ctx, id)
}

func (s *Service) GetByReference(ctx context.Context, reference string) (*BankPayment, error) {
	p, err := s.store.FindByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "bank payment not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load bank payment")
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]BankPayment, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByMember(ctx context.Context, memberID int64) ([]BankPayment, error) {
	return s.store.ListByMember(ctx, memberID)
}

func (s *Service) ListUnverified(ctx context.Context) ([]BankPayment, error) {
	return s.store.ListByVerified(ctx, false)
}

func (s *Service) ListVerified(ctx context.Context) ([]BankPayment, error) {
	return s.store.ListByVerified(ctx, true)
}

func (s *Service) get(ctx context.Context, id int64) (*BankPayment, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "bank payment not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load bank payment")
	}
	return p, nil
}

func validate(req RecordRequest) error {
	if req.Amount <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "amount must be positive")
	}
	if strings.TrimSpace(req.BankName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "bank name is required")
	}
	if strings.TrimSpace(req.TransactionReference) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "transaction reference is required")
	}
	if req.PaymentDate.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "payment date is required")
	}
	return nil
}

func principal(ctx context.Context) string {
	if p := requestcontext.Principal(ctx); p != "" {
		return p
	}
	return audit.SystemPrincipal
}
