package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"relove/internal/gateway/midtrans"
	"relove/internal/model"
	"relove/internal/repository"
	"relove/pkg/bloom"
	"relove/pkg/log"
	"relove/pkg/utils"
)

// CheckoutRequest checkout request. Method and bank narrow the payment
// instruments offered on the hosted page; both are optional.
type CheckoutRequest struct {
	PaymentMethod  string `json:"payment_method" binding:"omitempty,oneof=bank_transfer e_wallet cod"`
	Bank           string `json:"bank" binding:"omitempty,oneof=bca bni bri permata mandiri"`
	ShippingMethod string `json:"shipping_method"`
}

// CheckoutResponse hosted checkout session plus the created ledger rows
type CheckoutResponse struct {
	OrderID      string               `json:"order_id"`
	Token        string               `json:"token"`
	RedirectURL  string               `json:"redirect_url"`
	GrossAmount  int64                `json:"gross_amount"`
	Transactions []*model.Transaction `json:"transactions"`
}

// SellerGroup cart lines of one seller, in first-seen order
type SellerGroup struct {
	SellerID string
	Items    []*model.CartItem
	Total    int64
}

// CheckoutService checkout orchestration interface
type CheckoutService interface {
	// Turn the buyer's cart into a payment session and its ledger rows
	Checkout(ctx context.Context, userID string, req *CheckoutRequest) (*CheckoutResponse, error)
}

// checkoutService checkout service implementation
type checkoutService struct {
	userRepo     repository.UserRepository
	cartRepo     repository.CartRepository
	checkoutRepo repository.CheckoutRepository
	gateway      midtrans.Gateway
	orderFilter  *bloom.OrderFilter
}

// NewCheckoutService creates a checkout service
func NewCheckoutService(
	userRepo repository.UserRepository,
	cartRepo repository.CartRepository,
	checkoutRepo repository.CheckoutRepository,
	gateway midtrans.Gateway,
	orderFilter *bloom.OrderFilter,
) CheckoutService {
	return &checkoutService{
		userRepo:     userRepo,
		cartRepo:     cartRepo,
		checkoutRepo: checkoutRepo,
		gateway:      gateway,
		orderFilter:  orderFilter,
	}
}

// GroupBySeller splits cart lines into per-seller groups, preserving
// the order sellers first appear in the cart. Each group's total uses
// the discounted unit price.
func GroupBySeller(items []*model.CartItem) []*SellerGroup {
	var groups []*SellerGroup
	index := make(map[string]*SellerGroup)

	for _, item := range items {
		if item.Product == nil {
			continue
		}
		sellerID := item.Product.SellerID
		group, ok := index[sellerID]
		if !ok {
			group = &SellerGroup{SellerID: sellerID}
			index[sellerID] = group
			groups = append(groups, group)
		}
		group.Items = append(group.Items, item)
		group.Total += item.Product.DiscountedPrice() * int64(item.Quantity)
	}

	return groups
}

// Checkout creates the gateway session first, then writes the whole
// order ledger in one database transaction. A ledger failure leaves the
// unreferenced session to expire on its own at the gateway.
func (s *checkoutService) Checkout(ctx context.Context, userID string, req *CheckoutRequest) (*CheckoutResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrUnauthenticated
	}

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Error("load cart failed")
		return nil, utils.ErrDatabaseError
	}
	if len(items) == 0 {
		return nil, utils.ErrEmptyCart
	}

	for _, item := range items {
		if item.Product == nil {
			return nil, utils.ErrProductNotFound
		}
		if !item.Product.IsAvailable() {
			return nil, utils.ErrInsufficientStock
		}
		if item.Product.Quantity < item.Quantity {
			return nil, utils.ErrInsufficientStock
		}
	}

	groups := GroupBySeller(items)

	orderID := "ORDER-" + uuid.NewString()

	var gross int64
	itemDetails := make([]midtrans.ItemDetail, 0, len(items))
	for _, item := range items {
		unitPrice := item.Product.DiscountedPrice()
		gross += unitPrice * int64(item.Quantity)
		itemDetails = append(itemDetails, midtrans.ItemDetail{
			ID:       item.ProductID,
			Price:    unitPrice,
			Quantity: item.Quantity,
			Name:     midtrans.TruncateItemName(item.Product.Name),
		})
	}

	snapReq := &midtrans.SnapRequest{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:     orderID,
			GrossAmount: gross,
		},
		CustomerDetails: buildCustomerDetails(user),
		ItemDetails:     itemDetails,
		EnabledPayments: midtrans.EnabledPayments(req.PaymentMethod, req.Bank),
	}

	// The session is created before any ledger row so a write failure
	// never strands a payable session in our books.
	snap, err := s.gateway.CreateTransaction(ctx, snapReq)
	if err != nil {
		return nil, err
	}

	batch := s.buildBatch(user, orderID, groups, items, req)

	if err := s.checkoutRepo.CreateBatch(ctx, batch); err != nil {
		log.WithError(err).WithField("order_id", orderID).Error("write checkout ledger failed")
		return nil, err
	}

	s.orderFilter.Add(orderID)

	log.WithField("order_id", orderID).
		WithField("transactions", len(batch.Transactions)).
		Info("checkout created")

	return &CheckoutResponse{
		OrderID:      orderID,
		Token:        snap.Token,
		RedirectURL:  snap.RedirectURL,
		GrossAmount:  gross,
		Transactions: batch.Transactions,
	}, nil
}

func buildCustomerDetails(user *model.User) midtrans.CustomerDetails {
	details := midtrans.CustomerDetails{
		FirstName: user.Name,
		Email:     user.Email,
	}
	if user.Phone != nil {
		details.Phone = *user.Phone
	}
	if user.Address != nil || user.City != nil || user.PostalCode != nil {
		address := &midtrans.ShippingAddress{}
		if user.Address != nil {
			address.Address = *user.Address
		}
		if user.City != nil {
			address.City = *user.City
		}
		if user.PostalCode != nil {
			address.PostalCode = *user.PostalCode
		}
		details.ShippingAddress = address
	}
	return details
}

// buildBatch assembles every ledger row of the checkout: one pending
// transaction per seller group, one stock deduction per cart line, one
// shipping row per transaction, a notification per seller plus one for
// the buyer, and a single payment row linked to the first transaction.
func (s *checkoutService) buildBatch(
	user *model.User,
	orderID string,
	groups []*SellerGroup,
	items []*model.CartItem,
	req *CheckoutRequest,
) *repository.CheckoutBatch {
	shippingMethod := req.ShippingMethod
	if shippingMethod == "" {
		shippingMethod = "standard"
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "any"
	}

	batch := &repository.CheckoutBatch{}

	for _, group := range groups {
		trx := &model.Transaction{
			ID:              uuid.NewString(),
			BuyerID:         user.ID,
			SellerID:        group.SellerID,
			ProductID:       group.Items[0].ProductID,
			MidtransOrderID: orderID,
			TotalPrice:      group.Total,
			PaymentStatus:   model.PaymentStatusPending,
			OrderStatus:     model.OrderStatusProcessing,
		}
		batch.Transactions = append(batch.Transactions, trx)

		batch.Shippings = append(batch.Shippings, &model.Shipping{
			ID:            uuid.NewString(),
			TransactionID: trx.ID,
			Method:        shippingMethod,
			Status:        model.ShippingStatusPreparing,
		})

		batch.Notifications = append(batch.Notifications, &model.Notification{
			ID:      uuid.NewString(),
			UserID:  group.SellerID,
			Title:   "New Order Received",
			Message: fmt.Sprintf("%s placed an order totalling %d.", user.Name, group.Total),
			Type:    model.NotificationTypeTransaction,
			LinkTo:  "/dashboard/orders/" + trx.ID,
		})
	}

	batch.Notifications = append(batch.Notifications, &model.Notification{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		Title:   "Order Created",
		Message: "Your order is waiting for payment.",
		Type:    model.NotificationTypeTransaction,
		LinkTo:  "/orders",
	})

	for _, item := range items {
		batch.Decrements = append(batch.Decrements, repository.StockDecrement{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
		batch.CartItemIDs = append(batch.CartItemIDs, item.ID)
	}

	batch.Payment = &model.Payment{
		ID:              uuid.NewString(),
		TransactionID:   batch.Transactions[0].ID,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		MidtransOrderID: orderID,
	}

	return batch
}
