package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"relove/internal/gateway/midtrans"
	"relove/internal/model"
	"relove/internal/monitor"
	"relove/internal/repository"
	"relove/pkg/bloom"
	"relove/pkg/log"
	"relove/pkg/utils"
)

// ReconcileService applies gateway payment notifications to the ledger
type ReconcileService interface {
	// Handle one webhook notification
	HandleNotification(ctx context.Context, notification *midtrans.Notification) error

	// Warm the order filter from payments already on record
	WarmOrderFilter(ctx context.Context) error
}

// reconcileService reconcile service implementation
type reconcileService struct {
	paymentRepo      repository.PaymentRepository
	transactionRepo  repository.TransactionRepository
	productRepo      repository.ProductRepository
	notificationRepo repository.NotificationRepository
	orderFilter      *bloom.OrderFilter
}

// NewReconcileService creates a reconcile service
func NewReconcileService(
	paymentRepo repository.PaymentRepository,
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	notificationRepo repository.NotificationRepository,
	orderFilter *bloom.OrderFilter,
) ReconcileService {
	return &reconcileService{
		paymentRepo:      paymentRepo,
		transactionRepo:  transactionRepo,
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		orderFilter:      orderFilter,
	}
}

// WarmOrderFilter seeds the order filter with every order id on record
// so fast rejection stays sound across restarts.
func (s *reconcileService) WarmOrderFilter(ctx context.Context) error {
	orderIDs, err := s.paymentRepo.ListOrderIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range orderIDs {
		s.orderFilter.Add(id)
	}
	log.WithField("orders", len(orderIDs)).Info("order filter warmed")
	return nil
}

// HandleNotification runs the payment state machine for one callback.
// The filter check rejects callbacks for ids we never issued without a
// database roundtrip; a filter hit still verifies against the database.
func (s *reconcileService) HandleNotification(ctx context.Context, notification *midtrans.Notification) error {
	orderID := notification.OrderID

	if !s.orderFilter.MightContain(orderID) {
		log.WithField("order_id", orderID).Warn("callback for unissued order id")
		return utils.ErrUnknownOrder
	}

	payment, err := s.paymentRepo.GetByMidtransOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	status := model.PaymentStatus(notification.TransactionStatus)

	switch {
	case (status == model.PaymentStatusCapture || status == model.PaymentStatusSettlement) &&
		notification.FraudStatus == "accept":
		return s.settle(ctx, payment, notification)

	case status == model.PaymentStatusCancel ||
		status == model.PaymentStatusDeny ||
		status == model.PaymentStatusExpire:
		return s.cancel(ctx, payment, notification, status)

	default:
		// capture pending fraud review, pending, and anything unknown
		// leave the ledger untouched.
		log.WithField("order_id", orderID).
			WithField("transaction_status", notification.TransactionStatus).
			Info("notification left payment unchanged")
		return nil
	}
}

// settle marks the batch paid. Fulfilment status and inventory are not
// touched; the stock was already deducted at checkout.
func (s *reconcileService) settle(ctx context.Context, payment *model.Payment, notification *midtrans.Notification) error {
	if payment.PaymentStatus.IsTerminal() {
		log.WithField("order_id", payment.MidtransOrderID).Info("duplicate settlement callback ignored")
		return nil
	}

	payment.PaymentStatus = model.PaymentStatusSettlement
	now := time.Now().UnixMilli()
	payment.PaymentDate = &now
	mergeInstrumentFields(payment, notification)

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		log.WithError(err).Error("update payment failed")
		return utils.ErrDatabaseError
	}

	transactions, err := s.transactionRepo.ListByMidtransOrderID(ctx, payment.MidtransOrderID)
	if err != nil {
		log.WithError(err).Error("list batch transactions failed")
		return utils.ErrDatabaseError
	}

	for _, trx := range transactions {
		if err := s.transactionRepo.UpdateStatus(ctx, trx.ID, model.PaymentStatusSettlement, trx.OrderStatus); err != nil {
			log.WithError(err).WithField("transaction_id", trx.ID).Error("settle transaction failed")
			return utils.ErrDatabaseError
		}

		s.notify(ctx, trx.SellerID, "Payment Received",
			"Payment confirmed. Please prepare the shipment.", "/dashboard/orders/"+trx.ID)
	}

	if len(transactions) > 0 {
		s.notify(ctx, transactions[0].BuyerID, "Payment Successful",
			"Your payment was confirmed. The sellers are preparing your items.", "/orders")
	}

	log.WithField("order_id", payment.MidtransOrderID).Info("payment settled")
	return nil
}

// cancel mirrors the gateway status, cancels the batch and returns one
// unit of each affected product to inventory.
func (s *reconcileService) cancel(ctx context.Context, payment *model.Payment, notification *midtrans.Notification, status model.PaymentStatus) error {
	if payment.PaymentStatus.IsTerminal() {
		log.WithField("order_id", payment.MidtransOrderID).Info("duplicate cancellation callback ignored")
		return nil
	}

	payment.PaymentStatus = status
	mergeInstrumentFields(payment, notification)

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		log.WithError(err).Error("update payment failed")
		return utils.ErrDatabaseError
	}

	transactions, err := s.transactionRepo.ListByMidtransOrderID(ctx, payment.MidtransOrderID)
	if err != nil {
		log.WithError(err).Error("list batch transactions failed")
		return utils.ErrDatabaseError
	}

	for _, trx := range transactions {
		if err := s.transactionRepo.UpdateStatus(ctx, trx.ID, status, model.OrderStatusCanceled); err != nil {
			log.WithError(err).WithField("transaction_id", trx.ID).Error("cancel transaction failed")
			return utils.ErrDatabaseError
		}

		if err := s.productRepo.RestoreStock(ctx, trx.ProductID, 1); err != nil {
			log.WithError(err).WithField("product_id", trx.ProductID).Error("restore stock failed")
			return utils.ErrDatabaseError
		}
		monitor.StockRestoreTotal.Inc()

		s.notify(ctx, trx.SellerID, "Payment Failed",
			"The buyer's payment was not completed. The item has been returned to your listing.", "/dashboard/orders/"+trx.ID)
	}

	if len(transactions) > 0 {
		s.notify(ctx, transactions[0].BuyerID, "Order Canceled",
			"Your payment was not completed and the order has been canceled.", "/orders")
	}

	log.WithField("order_id", payment.MidtransOrderID).
		WithField("status", string(status)).
		Info("payment canceled")
	return nil
}

// mergeInstrumentFields copies the instrument details the gateway sent
// over the payment row, leaving absent fields alone.
func mergeInstrumentFields(payment *model.Payment, notification *midtrans.Notification) {
	if notification.TransactionID != "" {
		payment.MidtransTransactionID = strPtr(notification.TransactionID)
	}
	if notification.PaymentType != "" {
		payment.PaymentType = strPtr(notification.PaymentType)
	}
	if len(notification.VANumbers) > 0 {
		payment.Bank = strPtr(notification.VANumbers[0].Bank)
		payment.VANumber = strPtr(notification.VANumbers[0].VANumber)
	}
	if notification.PermataVANumber != "" {
		payment.Bank = strPtr("permata")
		payment.VANumber = strPtr(notification.PermataVANumber)
	}
	if notification.BillKey != "" {
		payment.BillKey = strPtr(notification.BillKey)
	}
	if notification.BillerCode != "" {
		payment.BillerCode = strPtr(notification.BillerCode)
	}
	if notification.PaymentCode != "" {
		payment.PaymentCode = strPtr(notification.PaymentCode)
	}
	if notification.ExpiryTime != "" {
		payment.ExpiryTime = strPtr(notification.ExpiryTime)
	}
}

// notify writes a feed entry, logging but not failing the reconcile
// when the write breaks.
func (s *reconcileService) notify(ctx context.Context, userID, title, message, linkTo string) {
	err := s.notificationRepo.Create(ctx, &model.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    model.NotificationTypeTransaction,
		LinkTo:  linkTo,
	})
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("write notification failed")
	}
}

func strPtr(s string) *string {
	return &s
}
