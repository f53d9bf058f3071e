package cart

import (
	"context"

	"github.com/google/uuid"

	"relove/internal/model"
	"relove/internal/repository"
	"relove/pkg/log"
	"relove/pkg/utils"
)

// AddItemRequest add to cart request
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// UpdateItemRequest change quantity request
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// CartLine one cart row with its priced product snapshot
type CartLine struct {
	*model.CartItem
	UnitPrice int64 `json:"unit_price"`
	Subtotal  int64 `json:"subtotal"`
}

// CartSummary the full cart with its running total
type CartSummary struct {
	Items []*CartLine `json:"items"`
	Total int64       `json:"total"`
}

// CartService shopping cart service interface
type CartService interface {
	// Add a product, merging quantity into an existing row
	AddItem(ctx context.Context, userID string, req *AddItemRequest) (*model.CartItem, error)

	// Change quantity of a cart row, owner only
	UpdateItem(ctx context.Context, userID, itemID string, req *UpdateItemRequest) error

	// Remove a cart row, owner only
	RemoveItem(ctx context.Context, userID, itemID string) error

	// List the cart with discounted totals
	GetCart(ctx context.Context, userID string) (*CartSummary, error)
}

// cartService cart service implementation
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a cart service
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem adds a product to the cart. Adding a product already in the
// cart merges into the existing row instead of creating a second one.
func (s *cartService) AddItem(ctx context.Context, userID string, req *AddItemRequest) (*model.CartItem, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable() {
		return nil, utils.NewError(utils.CodeInvalidParam, "product is not available")
	}
	if product.SellerID == userID {
		return nil, utils.NewError(utils.CodeInvalidParam, "cannot buy your own listing")
	}

	existing, err := s.cartRepo.GetByUserAndProduct(ctx, userID, req.ProductID)
	if err != nil {
		log.WithError(err).Error("load cart row failed")
		return nil, utils.ErrDatabaseError
	}

	if existing != nil {
		existing.Quantity += req.Quantity
		if err := s.cartRepo.UpdateQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			log.WithError(err).Error("merge cart row failed")
			return nil, utils.ErrDatabaseError
		}
		return existing, nil
	}

	item := &model.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		log.WithError(err).Error("create cart row failed")
		return nil, utils.ErrDatabaseError
	}
	return item, nil
}

// UpdateItem changes the quantity of a cart row
func (s *cartService) UpdateItem(ctx context.Context, userID, itemID string, req *UpdateItemRequest) error {
	item, err := s.cartRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return utils.ErrNotOwner
	}

	return s.cartRepo.UpdateQuantity(ctx, itemID, req.Quantity)
}

// RemoveItem removes a cart row
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	item, err := s.cartRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return utils.ErrNotOwner
	}

	return s.cartRepo.Delete(ctx, itemID)
}

// GetCart lists the cart with per-line discounted prices
func (s *cartService) GetCart(ctx context.Context, userID string) (*CartSummary, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Error("list cart failed")
		return nil, utils.ErrDatabaseError
	}

	summary := &CartSummary{Items: make([]*CartLine, 0, len(items))}
	for _, item := range items {
		line := &CartLine{CartItem: item}
		if item.Product != nil {
			line.UnitPrice = item.Product.DiscountedPrice()
			line.Subtotal = line.UnitPrice * int64(item.Quantity)
		}
		summary.Items = append(summary.Items, line)
		summary.Total += line.Subtotal
	}
	return summary, nil
}
