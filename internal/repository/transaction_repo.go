package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"relove/internal/model"
	"relove/pkg/utils"
)

// TransactionRepository transaction repository interface
type TransactionRepository interface {
	// Get transaction by ID with related rows
	GetByID(ctx context.Context, id string) (*model.Transaction, error)

	// List transactions of a checkout batch by gateway order id
	ListByMidtransOrderID(ctx context.Context, orderID string) ([]*model.Transaction, error)

	// List purchases of a buyer, optionally filtered by order status
	ListByBuyer(ctx context.Context, buyerID string, status model.OrderStatus) ([]*model.Transaction, error)

	// List sales of a seller, optionally filtered by order status
	ListBySeller(ctx context.Context, sellerID string, status model.OrderStatus) ([]*model.Transaction, error)

	// Update payment and order status of one transaction
	UpdateStatus(ctx context.Context, id string, paymentStatus model.PaymentStatus, orderStatus model.OrderStatus) error

	// Update order status only (seller fulfilment updates)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
}

// transactionRepository transaction repository implementation
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// GetByID gets a transaction by ID
func (r *transactionRepository) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	var trx model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Payment").
		Preload("Shipping").
		Where("id = ?", id).
		First(&trx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewError(utils.CodeNotFound, "transaction not found")
		}
		return nil, err
	}
	return &trx, nil
}

// ListByMidtransOrderID lists every transaction created for one gateway session
func (r *transactionRepository) ListByMidtransOrderID(ctx context.Context, orderID string) ([]*model.Transaction, error) {
	var trxs []*model.Transaction
	err := r.db.WithContext(ctx).
		Where("midtrans_order_id = ?", orderID).
		Find(&trxs).Error
	return trxs, err
}

// ListByBuyer lists purchases of a buyer
func (r *transactionRepository) ListByBuyer(ctx context.Context, buyerID string, status model.OrderStatus) ([]*model.Transaction, error) {
	db := r.db.WithContext(ctx).Where("buyer_id = ?", buyerID)
	if status != "" {
		db = db.Where("order_status = ?", status)
	}

	var trxs []*model.Transaction
	err := db.Order("created_at DESC").
		Preload("Product").
		Preload("Payment").
		Preload("Shipping").
		Find(&trxs).Error
	return trxs, err
}

// ListBySeller lists sales of a seller
func (r *transactionRepository) ListBySeller(ctx context.Context, sellerID string, status model.OrderStatus) ([]*model.Transaction, error) {
	db := r.db.WithContext(ctx).Where("seller_id = ?", sellerID)
	if status != "" {
		db = db.Where("order_status = ?", status)
	}

	var trxs []*model.Transaction
	err := db.Order("created_at DESC").
		Preload("Product").
		Preload("Payment").
		Preload("Shipping").
		Find(&trxs).Error
	return trxs, err
}

// UpdateStatus updates payment and order status of a transaction
func (r *transactionRepository) UpdateStatus(ctx context.Context, id string, paymentStatus model.PaymentStatus, orderStatus model.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": paymentStatus,
			"order_status":   orderStatus,
		}).Error
}

// UpdateOrderStatus updates the fulfilment status only
func (r *transactionRepository) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Update("order_status", status).Error
}
