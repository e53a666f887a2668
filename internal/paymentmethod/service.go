package paymentmethod

import (
	"context"
	"log/slog"
	"strings"

	dErrors "taxiassoc/pkg/errors"
)

// Store persists payment methods.
type Store interface {
	Create(ctx context.Context, m *Method) error
	FindByID(ctx context.Context, id int64) (*Method, error)
	List(ctx context.Context) ([]Method, error)
}

// Service manages the payment method catalogue.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Method, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name is required")
	}

	m := &Method{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.store.Create(ctx, m); err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "payment method already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create payment method")
	}

	s.logger.InfoContext(ctx, "payment method created", "payment_method_id", m.ID, "name", m.Name)
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Method, error) {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "payment method not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load payment method")
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]Method, error) {
	return s.store.List(ctx)
}
