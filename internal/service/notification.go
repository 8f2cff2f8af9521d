package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jobdeck/jobdeck-api/internal/core"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

const defaultUnreadCountTTL = 30 * time.Second

// NotificationServiceOptions groups dependencies for NotificationService.
type NotificationServiceOptions struct {
	Repo     core.NotificationRepository // Required: notification repository
	Cache    core.CacheRepository        // Optional: unread counter cache
	CacheTTL time.Duration               // Optional: unread counter TTL (defaults to 30s)
	Logger   *slog.Logger                // Optional: structured logger
}

// NotificationService serves a recipient's notification feed. Creation
// happens inside the workflow transactions; this service only reads and
// flips read flags.
type NotificationService struct {
	repo   core.NotificationRepository
	cache  core.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

// NewNotificationService constructs a new NotificationService.
func NewNotificationService(opts NotificationServiceOptions) (*NotificationService, error) {
	if opts.Repo == nil {
		return nil, errors.New("NotificationRepository is required")
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultUnreadCountTTL
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "notification_service")
	}
	return &NotificationService{repo: opts.Repo, cache: opts.Cache, ttl: ttl, logger: logger}, nil
}

// MustNewNotificationService constructs a new NotificationService and panics on error.
func MustNewNotificationService(opts NotificationServiceOptions) *NotificationService {
	svc, err := NewNotificationService(opts)
	if err != nil {
		panic(fmt.Sprintf("failed to create NotificationService: %v", err))
	}
	return svc
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, recipientID string, limit, offset int) ([]*model.Notification, error) {
	if recipientID == "" {
		return nil, apperrors.Validation("recipient id is required")
	}
	return s.repo.ListByRecipient(ctx, recipientID, limit, offset)
}

// MarkRead flips one notification's read flag for its recipient.
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID string) error {
	ok, err := s.repo.MarkRead(ctx, id, recipientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFoundf("unread notification %s not found for recipient", id)
	}
	s.invalidateUnreadCount(ctx, recipientID)
	return nil
}

// UnreadCount returns the recipient's unread notification count, served from
// a short-lived cache when available.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	if recipientID == "" {
		return 0, apperrors.Validation("recipient id is required")
	}

	key := unreadCountCacheKey(recipientID)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != nil {
			if count, convErr := strconv.Atoi(string(raw)); convErr == nil {
				return count, nil
			}
		}
	}

	count, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, []byte(strconv.Itoa(count)), s.ttl); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "unread count cache write failed", "recipient_id", recipientID, "error", err)
		}
	}
	return count, nil
}

func unreadCountCacheKey(recipientID string) string { return "notif_unread:" + recipientID }

func (s *NotificationService) invalidateUnreadCount(ctx context.Context, recipientID string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, unreadCountCacheKey(recipientID)); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "unread count cache invalidation failed", "recipient_id", recipientID, "error", err)
	}
}
