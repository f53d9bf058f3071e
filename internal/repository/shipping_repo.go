package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"relove/internal/model"
	"relove/pkg/utils"
)

// ShippingRepository shipping repository interface
type ShippingRepository interface {
	// Get shipping row of a transaction
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Shipping, error)

	// Update shipping status, stamping shipped/delivered times
	UpdateStatus(ctx context.Context, transactionID string, status model.ShippingStatus, trackingNumber string) error
}

// shippingRepository shipping repository implementation
type shippingRepository struct {
	db *gorm.DB
}

// NewShippingRepository creates a shipping repository
func NewShippingRepository(db *gorm.DB) ShippingRepository {
	return &shippingRepository{db: db}
}

// GetByTransactionID gets the shipping row of a transaction
func (r *shippingRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Shipping, error) {
	var shipping model.Shipping
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&shipping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewError(utils.CodeNotFound, "shipping not found")
		}
		return nil, err
	}
	return &shipping, nil
}

// UpdateStatus updates the shipping status. The shipped and delivered
// timestamps are stamped once when the status first reaches them.
func (r *shippingRepository) UpdateStatus(ctx context.Context, transactionID string, status model.ShippingStatus, trackingNumber string) error {
	now := time.Now().UnixMilli()

	updates := map[string]interface{}{
		"status": status,
	}
	if trackingNumber != "" {
		updates["tracking_number"] = trackingNumber
	}
	switch status {
	case model.ShippingStatusShipped:
		updates["shipped_at"] = now
	case model.ShippingStatusDelivered:
		updates["delivered_at"] = now
	}

	return r.db.WithContext(ctx).
		Model(&model.Shipping{}).
		Where("transaction_id = ?", transactionID).
		Updates(updates).Error
}
