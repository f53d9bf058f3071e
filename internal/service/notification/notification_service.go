package notification

import (
	"context"

	"relove/internal/model"
	"relove/internal/repository"
	"relove/pkg/log"
	"relove/pkg/utils"
)

// NotificationService per-user feed service interface
type NotificationService interface {
	// List a user's feed, newest first
	List(ctx context.Context, userID string, page, pageSize int) ([]*model.Notification, int64, error)

	// Count unread entries
	CountUnread(ctx context.Context, userID string) (int64, error)

	// Mark one entry read
	MarkRead(ctx context.Context, userID, id string) error

	// Mark the whole feed read
	MarkAllRead(ctx context.Context, userID string) error
}

// notificationService notification service implementation
type notificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a notification service
func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

// List lists the feed
func (s *notificationService) List(ctx context.Context, userID string, page, pageSize int) ([]*model.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.notificationRepo.ListByUser(ctx, userID, page, pageSize)
}

// CountUnread counts unread entries
func (s *notificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one entry read
func (s *notificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.notificationRepo.MarkRead(ctx, userID, id); err != nil {
		log.WithError(err).Error("mark notification read failed")
		return utils.ErrDatabaseError
	}
	return nil
}

// MarkAllRead marks the whole feed read
func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		log.WithError(err).Error("mark all notifications read failed")
		return utils.ErrDatabaseError
	}
	return nil
}
