package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"relove/internal/model"
	"relove/pkg/utils"
)

// CartRepository cart repository interface
type CartRepository interface {
	// Create cart item
	Create(ctx context.Context, item *model.CartItem) error

	// Get cart item by ID
	GetByID(ctx context.Context, id string) (*model.CartItem, error)

	// Get cart item for a (user, product) pair
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*model.CartItem, error)

	// List cart items for a user with product snapshots
	ListByUser(ctx context.Context, userID string) ([]*model.CartItem, error)

	// Update quantity of a cart item
	UpdateQuantity(ctx context.Context, id string, quantity int) error

	// Delete cart item
	Delete(ctx context.Context, id string) error
}

// cartRepository cart repository implementation
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Create creates a cart item
func (r *cartRepository) Create(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID gets a cart item by ID
func (r *cartRepository) GetByID(ctx context.Context, id string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewError(utils.CodeNotFound, "cart item not found")
		}
		return nil, err
	}
	return &item, nil
}

// GetByUserAndProduct gets the cart row for a (user, product) pair.
// Returns nil without error when the pair is not in the cart yet.
func (r *cartRepository) GetByUserAndProduct(ctx context.Context, userID, productID string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByUser lists cart items with their product snapshots
func (r *cartRepository) ListByUser(ctx context.Context, userID string) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Preload("Product").
		Find(&items).Error
	return items, err
}

// UpdateQuantity updates the quantity of a cart item
func (r *cartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

// Delete deletes a cart item
func (r *cartRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CartItem{}).Error
}
