package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"relove/internal/model"
	"relove/pkg/utils"
)

// ProductListFilter optional filters for listing products
type ProductListFilter struct {
	Status    model.ProductStatus
	Type      model.ProductType
	Condition model.ProductCondition
	Category  string
	SellerID  string
}

// ProductRepository product repository interface
type ProductRepository interface {
	// Create product with its images
	Create(ctx context.Context, product *model.Product) error

	// Get product by ID
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Update product
	Update(ctx context.Context, product *model.Product) error

	// Delete product and its images
	Delete(ctx context.Context, id string) error

	// List products
	List(ctx context.Context, filter ProductListFilter, page, pageSize int) ([]*model.Product, int64, error)

	// Decrement stock (conditional, fails on insufficient quantity)
	DecrStock(ctx context.Context, id string, quantity int) error

	// Restore stock after a canceled payment
	RestoreStock(ctx context.Context, id string, quantity int) error
}

// productRepository product repository implementation
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a product together with its image rows
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		images := product.Images
		product.Images = nil

		if err := tx.Create(product).Error; err != nil {
			return err
		}

		if len(images) > 0 {
			for i := range images {
				images[i].ProductID = product.ID
			}
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
			product.Images = images
		}

		return nil
	})
}

// GetByID gets a product by ID
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Update updates a product
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Omit("Images", "Seller").Save(product).Error
}

// Delete deletes a product and its images
func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Product{}).Error
	})
}

// List lists products with filters and pagination
func (r *productRepository) List(ctx context.Context, filter ProductListFilter, page, pageSize int) ([]*model.Product, int64, error) {
	var products []*model.Product
	var total int64

	offset := (page - 1) * pageSize

	db := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.Condition != "" {
		db = db.Where("`condition` = ?", filter.Condition)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.SellerID != "" {
		db = db.Where("seller_id = ?", filter.SellerID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Preload("Images").
		Find(&products).Error

	return products, total, err
}

// DecrStock decrements stock with a conditional update so two buyers cannot
// both take the last unit. Status flips to sold when the row hits zero.
func (r *productRepository) DecrStock(ctx context.Context, id string, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", quantity),
			"status":   gorm.Expr("CASE WHEN quantity - ? <= 0 THEN 'sold' ELSE 'available' END", quantity),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrInsufficientStock
	}
	return nil
}

// RestoreStock returns units to inventory and reopens the listing
func (r *productRepository) RestoreStock(ctx context.Context, id string, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
			"status":   model.ProductStatusAvailable,
		}).Error
}
