package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"relove/internal/model"
	"relove/internal/repository"
	"relove/pkg/log"
	"relove/pkg/utils"
)

// CreateProductRequest create product request
type CreateProductRequest struct {
	Name                 string   `json:"name" binding:"required,min=2,max=200"`
	Description          string   `json:"description" binding:"required"`
	Category             string   `json:"category" binding:"required"`
	Price                int64    `json:"price" binding:"required,gt=0"`
	Discount             int      `json:"discount" binding:"gte=0,lte=100"`
	Quantity             int      `json:"quantity" binding:"required,gt=0"`
	Type                 string   `json:"type" binding:"required"`
	Condition            string   `json:"condition" binding:"required"`
	SustainabilityRating int      `json:"sustainability_rating" binding:"gte=0,lte=5"`
	ImageURLs            []string `json:"image_urls"`
}

// UpdateProductRequest update product request, all fields optional
type UpdateProductRequest struct {
	Name                 *string `json:"name"`
	Description          *string `json:"description"`
	Category             *string `json:"category"`
	Price                *int64  `json:"price"`
	Discount             *int    `json:"discount"`
	Quantity             *int    `json:"quantity"`
	Status               *string `json:"status"`
	Condition            *string `json:"condition"`
	SustainabilityRating *int    `json:"sustainability_rating"`
}

// ListProductsRequest list filters
type ListProductsRequest struct {
	Status    string `form:"status"`
	Type      string `form:"type"`
	Condition string `form:"condition"`
	Category  string `form:"category"`
	SellerID  string `form:"seller_id"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}

// CatalogService product catalog service interface
type CatalogService interface {
	// Create a listing owned by the seller
	CreateProduct(ctx context.Context, sellerID string, req *CreateProductRequest) (*model.Product, error)

	// Get one product
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	// Update a listing, owner only
	UpdateProduct(ctx context.Context, userID, id string, req *UpdateProductRequest) (*model.Product, error)

	// Delete a listing, owner only
	DeleteProduct(ctx context.Context, userID, id string) error

	// List products
	ListProducts(ctx context.Context, req *ListProductsRequest) ([]*model.Product, int64, error)
}

// catalogService catalog service implementation
type catalogService struct {
	productRepo repository.ProductRepository
	redis       *redis.Client
	cacheTTL    time.Duration
}

// NewCatalogService creates a catalog service
func NewCatalogService(
	productRepo repository.ProductRepository,
	redis *redis.Client,
	cacheTTL time.Duration,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		redis:       redis,
		cacheTTL:    cacheTTL,
	}
}

func productCacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

// CreateProduct creates a listing
func (s *catalogService) CreateProduct(ctx context.Context, sellerID string, req *CreateProductRequest) (*model.Product, error) {
	productType := model.ProductType(req.Type)
	if !productType.IsValid() {
		return nil, utils.NewError(utils.CodeInvalidParam, "invalid product type")
	}
	condition := model.ProductCondition(req.Condition)
	if !condition.IsValid() {
		return nil, utils.NewError(utils.CodeInvalidParam, "invalid product condition")
	}

	product := &model.Product{
		ID:                   uuid.NewString(),
		SellerID:             sellerID,
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		Price:                req.Price,
		Discount:             req.Discount,
		Quantity:             req.Quantity,
		Status:               model.ProductStatusAvailable,
		Type:                 productType,
		Condition:            condition,
		SustainabilityRating: req.SustainabilityRating,
	}

	for i, url := range req.ImageURLs {
		image := model.ProductImage{
			ID:            uuid.NewString(),
			CloudinaryURL: url,
			IsPrimary:     i == 0,
		}
		product.Images = append(product.Images, image)
		if i == 0 {
			product.PrimaryImageURL = url
		}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		log.WithError(err).Error("create product failed")
		return nil, utils.ErrDatabaseError
	}

	log.WithField("product_id", product.ID).Info("product created")
	return product, nil
}

// GetProduct gets one product, cache-aside over Redis
func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	key := productCacheKey(id)

	if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
		var product model.Product
		if err := json.Unmarshal([]byte(cached), &product); err == nil {
			return &product, nil
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		s.redis.Set(ctx, key, data, s.cacheTTL)
	}

	return product, nil
}

// UpdateProduct updates a listing after checking ownership
func (s *catalogService) UpdateProduct(ctx context.Context, userID, id string, req *UpdateProductRequest) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != userID {
		return nil, utils.ErrNotOwner
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, utils.NewError(utils.CodeInvalidParam, "price must be positive")
		}
		product.Price = *req.Price
	}
	if req.Discount != nil {
		if *req.Discount < 0 || *req.Discount > 100 {
			return nil, utils.NewError(utils.CodeInvalidParam, "discount must be 0-100")
		}
		product.Discount = *req.Discount
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, utils.NewError(utils.CodeInvalidParam, "quantity must not be negative")
		}
		product.Quantity = *req.Quantity
	}
	if req.Status != nil {
		status := model.ProductStatus(*req.Status)
		if !status.IsValid() {
			return nil, utils.NewError(utils.CodeInvalidParam, "invalid product status")
		}
		product.Status = status
	}
	if req.Condition != nil {
		condition := model.ProductCondition(*req.Condition)
		if !condition.IsValid() {
			return nil, utils.NewError(utils.CodeInvalidParam, "invalid product condition")
		}
		product.Condition = condition
	}
	if req.SustainabilityRating != nil {
		product.SustainabilityRating = *req.SustainabilityRating
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		log.WithError(err).Error("update product failed")
		return nil, utils.ErrDatabaseError
	}

	s.redis.Del(ctx, productCacheKey(id))
	return product, nil
}

// DeleteProduct deletes a listing after checking ownership
func (s *catalogService) DeleteProduct(ctx context.Context, userID, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product.SellerID != userID {
		return utils.ErrNotOwner
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("delete product failed")
		return utils.ErrDatabaseError
	}

	s.redis.Del(ctx, productCacheKey(id))
	log.WithField("product_id", id).Info("product deleted")
	return nil
}

// ListProducts lists products with filters
func (s *catalogService) ListProducts(ctx context.Context, req *ListProductsRequest) ([]*model.Product, int64, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filter := repository.ProductListFilter{
		Status:    model.ProductStatus(req.Status),
		Type:      model.ProductType(req.Type),
		Condition: model.ProductCondition(req.Condition),
		Category:  req.Category,
		SellerID:  req.SellerID,
	}

	return s.productRepo.List(ctx, filter, page, pageSize)
}
