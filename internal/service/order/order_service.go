package order

import (
	"context"

	"github.com/google/uuid"

	"relove/internal/model"
	"relove/internal/repository"
	"relove/pkg/log"
	"relove/pkg/utils"
)

// UpdateOrderStatusRequest seller fulfilment update
type UpdateOrderStatusRequest struct {
	OrderStatus    string `json:"order_status" binding:"required,oneof=shipped delivered"`
	TrackingNumber string `json:"tracking_number"`
}

// OrderService buyer purchase and seller sale views
type OrderService interface {
	// Get one transaction, visible to its buyer or seller only
	GetOrder(ctx context.Context, userID, id string) (*model.Transaction, error)

	// List the buyer's purchases
	ListPurchases(ctx context.Context, buyerID, status string) ([]*model.Transaction, error)

	// List the seller's sales
	ListSales(ctx context.Context, sellerID, status string) ([]*model.Transaction, error)

	// Advance fulfilment of a sale, seller only
	UpdateOrderStatus(ctx context.Context, sellerID, id string, req *UpdateOrderStatusRequest) error
}

// orderService order service implementation
type orderService struct {
	transactionRepo  repository.TransactionRepository
	shippingRepo     repository.ShippingRepository
	notificationRepo repository.NotificationRepository
}

// NewOrderService creates an order service
func NewOrderService(
	transactionRepo repository.TransactionRepository,
	shippingRepo repository.ShippingRepository,
	notificationRepo repository.NotificationRepository,
) OrderService {
	return &orderService{
		transactionRepo:  transactionRepo,
		shippingRepo:     shippingRepo,
		notificationRepo: notificationRepo,
	}
}

// GetOrder gets one transaction for its buyer or seller
func (s *orderService) GetOrder(ctx context.Context, userID, id string) (*model.Transaction, error) {
	trx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trx.BuyerID != userID && trx.SellerID != userID {
		return nil, utils.ErrNotOwner
	}
	return trx, nil
}

// ListPurchases lists the buyer's purchases
func (s *orderService) ListPurchases(ctx context.Context, buyerID, status string) ([]*model.Transaction, error) {
	orderStatus := model.OrderStatus(status)
	if status != "" && !orderStatus.IsValid() {
		return nil, utils.NewError(utils.CodeInvalidParam, "invalid order status")
	}
	return s.transactionRepo.ListByBuyer(ctx, buyerID, orderStatus)
}

// ListSales lists the seller's sales
func (s *orderService) ListSales(ctx context.Context, sellerID, status string) ([]*model.Transaction, error) {
	orderStatus := model.OrderStatus(status)
	if status != "" && !orderStatus.IsValid() {
		return nil, utils.NewError(utils.CodeInvalidParam, "invalid order status")
	}
	return s.transactionRepo.ListBySeller(ctx, sellerID, orderStatus)
}

// UpdateOrderStatus advances fulfilment of a sale. Shipping moves in
// step with the order, and the buyer gets a feed entry.
func (s *orderService) UpdateOrderStatus(ctx context.Context, sellerID, id string, req *UpdateOrderStatusRequest) error {
	trx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if trx.SellerID != sellerID {
		return utils.ErrNotOwner
	}
	if trx.IsCanceled() {
		return utils.NewError(utils.CodeInvalidParam, "order is canceled")
	}
	if trx.PaymentStatus != model.PaymentStatusSettlement {
		return utils.NewError(utils.CodeInvalidParam, "order is not paid yet")
	}

	orderStatus := model.OrderStatus(req.OrderStatus)

	if err := s.transactionRepo.UpdateOrderStatus(ctx, id, orderStatus); err != nil {
		log.WithError(err).Error("update order status failed")
		return utils.ErrDatabaseError
	}

	var shippingStatus model.ShippingStatus
	var title, message string
	switch orderStatus {
	case model.OrderStatusShipped:
		shippingStatus = model.ShippingStatusShipped
		title = "Order Shipped"
		message = "Your order is on its way."
	case model.OrderStatusDelivered:
		shippingStatus = model.ShippingStatusDelivered
		title = "Order Delivered"
		message = "Your order has been delivered."
	}

	if err := s.shippingRepo.UpdateStatus(ctx, id, shippingStatus, req.TrackingNumber); err != nil {
		log.WithError(err).Error("update shipping status failed")
		return utils.ErrDatabaseError
	}

	err = s.notificationRepo.Create(ctx, &model.Notification{
		ID:      uuid.NewString(),
		UserID:  trx.BuyerID,
		Title:   title,
		Message: message,
		Type:    model.NotificationTypeTransaction,
		LinkTo:  "/orders/" + id,
	})
	if err != nil {
		log.WithError(err).Warn("write notification failed")
	}

	return nil
}
