package receipt

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"taxiassoc/internal/audit"
	"taxiassoc/internal/member"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

// Store persists receipts. Create must reject duplicate receipt numbers with
// a conflict error.
type Store interface {
	Create(ctx context.Context, r *Receipt) error
	FindByID(ctx context.Context, id int64) (*Receipt, error)
	FindByNumber(ctx context.Context, number string) (*Receipt, error)
	ListByMember(ctx context.Context, memberID int64) ([]Receipt, error)
	ListByIssuer(ctx context.Context, issuedBy string) ([]Receipt, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Receipt, error)
	List(ctx context.Context) ([]Receipt, error)
}

// MemberDirectory resolves members receipts are issued to.
type MemberDirectory interface {
	GetByID(ctx context.Context, id int64) (*member.Member, error)
}

// Service issues and looks up receipts.
type Service struct {
	store   Store
	members MemberDirectory
	logger  *slog.Logger
}

func NewService(store Store, members MemberDirectory, logger *slog.Logger) *Service {
	return &Service{store: store, members: members, logger: logger}
}

// Generate issues a receipt against a member.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*Receipt, error) {
	if strings.TrimSpace(req.ReceiptNumber) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "receipt number is required")
	}
	if _, err := s.members.GetByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	r := &Receipt{
		MemberID:      req.MemberID,
		LevyPaymentID: req.LevyPaymentID,
		LevyFineID:    req.LevyFineID,
		BankPaymentID: req.BankPaymentID,
		ReceiptNumber: strings.TrimSpace(req.ReceiptNumber),
		IssuedBy:      principal(ctx),
		IssuedDate:    requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, r); err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "receipt number already issued")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate receipt")
	}

	s.logger.InfoContext(ctx, "receipt generated", "receipt_id", r.ID, "receipt_number", r.ReceiptNumber)
	return r, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Receipt, error) {
	r, err := s.store.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "receipt not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load receipt")
	}
	return r, nil
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*Receipt, error) {
	r, err := s.store.FindByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "receipt not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load receipt")
	}
	return r, nil
}

func (s *Service) List(ctx context.Context) ([]Receipt, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByMember(ctx context.Context, memberID int64) ([]Receipt, error) {
	return s.store.ListByMember(ctx, memberID)
}

func (s *Service) ListByIssuer(ctx context.Context, issuedBy string) ([]Receipt, error) {
	return s.store.ListByIssuer(ctx, issuedBy)
}

func (s *Service) ListByDateRange(ctx context.Context, from, to time.Time) ([]Receipt, error) {
	if from.IsZero() || to.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "from and to dates are required")
	}
	if to.Before(from) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "to date precedes from date")
	}
	return s.store.ListByDateRange(ctx, from, to)
}

func principal(ctx context.Context) string {
	if p := requestcontext.Principal(ctx); p != "" {
		return p
	}
	return audit.SystemPrincipal
}
