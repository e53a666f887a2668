package member

import (
	"context"
	"log/slog"
	"strings"

	"taxiassoc/internal/audit"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

// Store persists members. Create must reject duplicate squad numbers with a
// conflict error under concurrent registration.
type Store interface {
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Member, error)
	FindBySquadNumber(ctx context.Context, squadNumber string) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	ListByBlacklisted(ctx context.Context, blacklisted bool) ([]Member, error)
	SearchByName(ctx context.Context, name string) ([]Member, error)
	CountActive(ctx context.Context) (int64, error)
}

// AuditRecorder is the slice of the audit recorder services depend on.
type AuditRecorder interface {
	Created(ctx context.Context, rec audit.Snapshotter)
	Updated(ctx context.Context, rec audit.Snapshotter, before map[string]any)
	Deleted(ctx context.Context, rec audit.Snapshotter)
}

// Service applies member registry rules.
type Service struct {
	store    Store
	recorder AuditRecorder
	logger   *slog.Logger
}

func NewService(store Store, recorder AuditRecorder, logger *slog.Logger) *Service {
	return &Service{store: store, recorder: recorder, logger: logger}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Member, error) {
	if err := validate(req.Name, req.ContactNumber, req.SquadNumber); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	m := &Member{
		Name:          strings.TrimSpace(req.Name),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		SquadNumber:   strings.TrimSpace(req.SquadNumber),
		JoinedAt:      now,
		CreatedBy:     principal(ctx),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Create(ctx, m); err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "squad number already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create member")
	}

	s.logger.InfoContext(ctx, "member created", "member_id", m.ID, "squad_number", m.SquadNumber)
	s.recorder.Created(ctx, m)
	return m, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Member, error) {
	if err := validate(req.Name, req.ContactNumber, req.SquadNumber); err != nil {
		return nil, err
	}

	m, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := m.AuditSnapshot()
	m.Name = strings.TrimSpace(req.Name)
	m.ContactNumber = strings.TrimSpace(req.ContactNumber)
	m.SquadNumber = strings.TrimSpace(req.SquadNumber)
	m.UpdatedBy = principal(ctx)
	m.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, m); err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "squad number already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update member")
	}

	s.recorder.Updated(ctx, m, before)
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	m, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete member")
	}

	s.logger.InfoContext(ctx, "member deleted", "member_id", id)
	s.recorder.Deleted(ctx, m)
	return nil
}

func (s *Service) Blacklist(ctx context.Context, id int64) (*Member, error) {
	return s.setBlacklisted(ctx, id, true)
}

func (s *Service) Unblacklist(ctx context.Context, id int64) (*Member, error) {
	return s.setBlacklisted(ctx, id, false)
}

func (s *Service) setBlacklisted(ctx context.Context, id int64, blacklisted bool) (*Member, error) {
	m, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Blacklisted == blacklisted {
		if blacklisted {
			return nil, dErrors.New(dErrors.CodeInvalidState, "member is already blacklisted")
		}
		return nil, dErrors.New(dErrors.CodeInvalidState, "member is not blacklisted")
	}

	before := m.AuditSnapshot()
	m.Blacklisted = blacklisted
	m.UpdatedBy = principal(ctx)
	m.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, m); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update member")
	}

	s.logger.InfoContext(ctx, "member blacklist updated", "member_id", id, "blacklisted", blacklisted)
	s.recorder.Updated(ctx, m, before)
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Member, error) {
	return s.get(ctx, id)
}

func (s *Service) GetBySquadNumber(ctx context.Context, squadNumber string) (*Member, error) {
	m, err := s.store.FindBySquadNumber(ctx, squadNumber)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "member not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member")
	}
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]Member, error) {
	return s.store.List(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]Member, error) {
	return s.store.ListByBlacklisted(ctx, false)
}

func (s *Service) ListBlacklisted(ctx context.Context) ([]Member, error) {
	return s.store.ListByBlacklisted(ctx, true)
}

func (s *Service) Search(ctx context.Context, name string) ([]Member, error) {
	return s.store.SearchByName(ctx, name)
}

func (s *Service) CountActive(ctx context.Context) (int64, error) {
	return s.store.CountActive(ctx)
}

func (s *Service) get(ctx context.Context, id int64) (*Member, error) {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "member not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member")
	}
	return m, nil
}

func validate(name, contact, squad string) error {
	if strings.TrimSpace(name) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if strings.TrimSpace(contact) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "contact number is required")
	}
	if strings.TrimSpace(squad) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "squad number is required")
	}
	return nil
}

func principal(ctx context.Context) string {
	if p := requestcontext.Principal(ctx); p != "" {
		return p
	}
	return audit.SystemPrincipal
}
