package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taxiassoc/internal/member"
	"taxiassoc/internal/platform/metrics"
	platformredis "taxiassoc/internal/platform/redis"
	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/requestcontext"
)

// Store persists notifications.
type Store interface {
	Create(ctx context.Context, n *Notification) error
	Update(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id int64) (*Notification, error)
	ListByMember(ctx context.Context, memberID int64) ([]Notification, error)
	ListUnreadByMember(ctx context.Context, memberID int64) ([]Notification, error)
	ListAllUnread(ctx context.Context) ([]Notification, error)
	CountUnreadByMember(ctx context.Context, memberID int64) (int64, error)
	MarkAllReadForMember(ctx context.Context, memberID int64) (int64, error)
}

// MemberDirectory resolves members notifications are addressed to.
type MemberDirectory interface {
	GetByID(ctx context.Context, id int64) (*member.Member, error)
}

const unreadCountTTL = 5 * time.Minute

// Service dispatches notifications. Unread counts are cached in redis
// best-effort; the store stays the source of truth and the cache is dropped
// on every write.
type Service struct {
	store   Store
	members MemberDirectory
	cache   *platformredis.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithCache(cache *platformredis.Client) Option {
	return func(s *Service) { s.cache = cache }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, members MemberDirectory, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, members: members, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send dispatches a notification to a member.
func (s *Service) Send(ctx context.Context, req SendRequest) (*Notification, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "message is required")
	}
	if strings.TrimSpace(req.Type) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "notification type is required")
	}
	if _, err := s.members.GetByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	n := &Notification{
		MemberID:  req.MemberID,
		Message:   req.Message,
		Status:    StatusUnread,
		Type:      strings.TrimSpace(req.Type),
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to send notification")
	}

	s.logger.InfoContext(ctx, "notification sent", "notification_id", n.ID, "assoc_member_id", n.MemberID, "notification_type", n.Type)
	if s.metrics != nil {
		s.metrics.NotificationsSent.Inc()
	}
	s.invalidateUnreadCount(ctx, n.MemberID)
	return n, nil
}

// PaymentReminder sends the canned levy arrears notice.
func (s *Service) PaymentReminder(ctx context.Context, memberID int64) (*Notification, error) {
	return s.Send(ctx, SendRequest{
		MemberID: memberID,
		Message:  paymentReminderMessage,
		Type:     TypePaymentReminder,
	})
}

// FineNotice sends the canned fine notice naming the reason.
func (s *Service) FineNotice(ctx context.Context, memberID int64, reason string) error {
	_, err := s.Send(ctx, SendRequest{
		MemberID: memberID,
		Message:  fineNoticePrefix + reason,
		Type:     TypeFineNotice,
	})
	return err
}

// MarkRead flags one notification as read.
func (s *Service) MarkRead(ctx context.Context, id int64) (*Notification, error) {
	n, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Status == StatusRead {
		return n, nil
	}

	n.Status = StatusRead
	if err := s.store.Update(ctx, n); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark notification read")
	}

	s.invalidateUnreadCount(ctx, n.MemberID)
	return n, nil
}

// MarkAllReadForMember flags every unread notification for a member as read
// and reports how many changed.
func (s *Service) MarkAllReadForMember(ctx context.Context, memberID int64) (int64, error) {
	count, err := s.store.MarkAllReadForMember(ctx, memberID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark notifications read")
	}

	s.logger.InfoContext(ctx, "notifications marked read", "assoc_member_id", memberID, "count", count)
	s.invalidateUnreadCount(ctx, memberID)
	return count, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Notification, error) {
	return s.get(ctx, id)
}

func (s *Service) ListByMember(ctx context.Context, memberID int64) ([]Notification, error) {
	return s.store.ListByMember(ctx, memberID)
}

func (s *Service) ListUnreadByMember(ctx context.Context, memberID int64) ([]Notification, error) {
	return s.store.ListUnreadByMember(ctx, memberID)
}

func (s *Service) ListAllUnread(ctx context.Context) ([]Notification, error) {
	return s.store.ListAllUnread(ctx)
}

// CountUnread serves the unread badge. The cached value is used when
// present; cache misses and errors fall through to the store.
func (s *Service) CountUnread(ctx context.Context, memberID int64) (int64, error) {
	if s.cache != nil {
		if count, err := s.cache.Get(ctx, unreadCountKey(memberID)).Int64(); err == nil {
			return count, nil
		}
	}

	count, err := s.store.CountUnreadByMember(ctx, memberID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count notifications")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, unreadCountKey(memberID), count, unreadCountTTL).Err(); err != nil {
			s.logger.WarnContext(ctx, "unread count cache write failed", "assoc_member_id", memberID, "error", err)
		}
	}
	return count, nil
}

func (s *Service) get(ctx context.Context, id int64) (*Notification, error) {
	n, err := s.store.FindByID(ctx, id)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "notification not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load notification")
	}
	return n, nil
}

func (s *Service) invalidateUnreadCount(ctx context.Context, memberID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, unreadCountKey(memberID)).Err(); err != nil {
		s.logger.WarnContext(ctx, "unread count cache invalidation failed", "assoc_member_id", memberID, "error", err)
	}
}

func unreadCountKey(memberID int64) string {
	return fmt.Sprintf("notification:unread:%d", memberID)
}
