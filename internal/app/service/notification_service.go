package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"snapurl_admin/internal/domain/model"
	"snapurl_admin/internal/domain/repository"
	"snapurl_admin/internal/platform/logger"

	"github.com/google/uuid"
)

// NotificationService is the per-user, best-effort alert list. It is not
// consulted by the gate or the session manager.
type NotificationService struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

// Add creates a notification for the session's user. It is a no-op returning
// nil when the session is not authenticated: notifications cannot be created
// for anonymous sessions.
func (s *NotificationService) Add(ctx context.Context, sess model.Session, title, message string) *model.Notification {
	if !sess.IsAuthenticated || sess.User == nil {
		return nil
	}

	now := s.now()
	n := &model.Notification{
		ID:        fmt.Sprintf("%d_%s", now.UnixMilli(), strings.Split(uuid.NewString(), "-")[0]),
		UserID:    sess.User.ID,
		Title:     title,
		Message:   message,
		CreatedAt: now,
	}
	if err := s.repo.Add(ctx, n); err != nil {
		// Best-effort: a lost notification is not an operation failure.
		logger.Log.Warnw("notification persist failed", "user", n.UserID, "err", err)
		return nil
	}
	return n
}

// List returns the user's notifications, newest first, with the derived
// relative-time string filled in.
func (s *NotificationService) List(ctx context.Context, sess model.Session) ([]model.Notification, error) {
	if !sess.IsAuthenticated || sess.User == nil {
		return nil, nil
	}
	list, err := s.repo.ListByUser(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range list {
		list[i].TimeAgo = list[i].RelativeTime(now)
	}
	return list, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, sess model.Session, id string) error {
	if !sess.IsAuthenticated || sess.User == nil {
		return nil
	}
	return s.repo.MarkRead(ctx, sess.User.ID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, sess model.Session) error {
	if !sess.IsAuthenticated || sess.User == nil {
		return nil
	}
	return s.repo.MarkAllRead(ctx, sess.User.ID)
}

func (s *NotificationService) Clear(ctx context.Context, sess model.Session) error {
	if !sess.IsAuthenticated || sess.User == nil {
		return nil
	}
	return s.repo.DeleteByUser(ctx, sess.User.ID)
}
