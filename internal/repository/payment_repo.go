package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"relove/internal/model"
	"relove/pkg/utils"
)

// PaymentRepository payment repository interface
type PaymentRepository interface {
	// Get payment by gateway order id
	GetByMidtransOrderID(ctx context.Context, orderID string) (*model.Payment, error)

	// Update payment after a gateway notification
	Update(ctx context.Context, payment *model.Payment) error

	// List every gateway order id on record
	ListOrderIDs(ctx context.Context) ([]string, error)
}

// paymentRepository payment repository implementation
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// GetByMidtransOrderID looks up the payment row of a checkout batch.
// An unknown order id means the notification does not belong to us.
func (r *paymentRepository) GetByMidtransOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("midtrans_order_id = ?", orderID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrUnknownOrder
		}
		return nil, err
	}
	return &payment, nil
}

// Update saves the payment row
func (r *paymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// ListOrderIDs lists every gateway order id, used to warm the
// webhook fast-reject filter on startup
func (r *paymentRepository) ListOrderIDs(ctx context.Context) ([]string, error) {
	var orderIDs []string
	err := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Pluck("midtrans_order_id", &orderIDs).Error
	return orderIDs, err
}
