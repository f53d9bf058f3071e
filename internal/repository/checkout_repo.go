package repository

import (
	"context"

	"gorm.io/gorm"

	"relove/internal/model"
	"relove/pkg/utils"
)

// StockDecrement one inventory deduction of a checkout batch
type StockDecrement struct {
	ProductID string
	Quantity  int
}

// CheckoutBatch the full set of ledger rows produced by one checkout.
// The payment session is already created at the gateway by the time this
// batch is written, so a failed write never strands a charged buyer.
type CheckoutBatch struct {
	Transactions  []*model.Transaction
	Decrements    []StockDecrement
	Shippings     []*model.Shipping
	Notifications []*model.Notification
	Payment       *model.Payment
	CartItemIDs   []string
}

// CheckoutRepository atomic ledger writer for checkout
type CheckoutRepository interface {
	// Write the whole batch in one database transaction
	CreateBatch(ctx context.Context, batch *CheckoutBatch) error
}

// checkoutRepository checkout repository implementation
type checkoutRepository struct {
	db *gorm.DB
}

// NewCheckoutRepository creates a checkout repository
func NewCheckoutRepository(db *gorm.DB) CheckoutRepository {
	return &checkoutRepository{db: db}
}

// CreateBatch writes transactions, stock deductions, shippings,
// notifications, the payment row and the cart cleanup atomically.
// Any insufficient stock rolls the whole batch back.
func (r *checkoutRepository) CreateBatch(ctx context.Context, batch *CheckoutBatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, trx := range batch.Transactions {
			if err := tx.Create(trx).Error; err != nil {
				return err
			}
		}

		for _, dec := range batch.Decrements {
			result := tx.Model(&model.Product{}).
				Where("id = ? AND quantity >= ?", dec.ProductID, dec.Quantity).
				Updates(map[string]interface{}{
					"quantity": gorm.Expr("quantity - ?", dec.Quantity),
					"status":   gorm.Expr("CASE WHEN quantity - ? <= 0 THEN 'sold' ELSE 'available' END", dec.Quantity),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return utils.ErrInsufficientStock
			}
		}

		for _, shipping := range batch.Shippings {
			if err := tx.Create(shipping).Error; err != nil {
				return err
			}
		}

		for _, notification := range batch.Notifications {
			if err := tx.Create(notification).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(batch.Payment).Error; err != nil {
			return err
		}

		if len(batch.CartItemIDs) > 0 {
			if err := tx.Where("id IN ?", batch.CartItemIDs).Delete(&model.CartItem{}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
