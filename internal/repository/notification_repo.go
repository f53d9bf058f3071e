package repository

import (
	"context"

	"gorm.io/gorm"

	"relove/internal/model"
)

// NotificationRepository notification repository interface
type NotificationRepository interface {
	// Create notification
	Create(ctx context.Context, notification *model.Notification) error

	// List notifications of a user, newest first
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*model.Notification, int64, error)

	// Count unread notifications of a user
	CountUnread(ctx context.Context, userID string) (int64, error)

	// Mark one notification read
	MarkRead(ctx context.Context, userID, id string) error

	// Mark every notification of a user read
	MarkAllRead(ctx context.Context, userID string) error
}

// notificationRepository notification repository implementation
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create creates a notification
func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByUser lists notifications newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*model.Notification, int64, error) {
	var notifications []*model.Notification
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ?", userID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset((page - 1) * pageSize).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&notifications).Error

	return notifications, total, err
}

// CountUnread counts unread notifications
func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one notification read, scoped to the owner
func (r *notificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

// MarkAllRead marks every unread notification of a user read
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
