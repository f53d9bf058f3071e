package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"relove/internal/gateway/midtrans"
	"relove/internal/model"
	"relove/internal/repository"
	"relove/pkg/bloom"
	"relove/pkg/utils"
)

// MockPaymentRepository is a mock implementation of repository.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) GetByMidtransOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListOrderIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByMidtransOrderID(ctx context.Context, orderID string) ([]*model.Transaction, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByBuyer(ctx context.Context, buyerID string, status model.OrderStatus) ([]*model.Transaction, error) {
	args := m.Called(ctx, buyerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListBySeller(ctx context.Context, sellerID string, status model.OrderStatus) ([]*model.Transaction, error) {
	args := m.Called(ctx, sellerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, id string, paymentStatus model.PaymentStatus, orderStatus model.OrderStatus) error {
	args := m.Called(ctx, id, paymentStatus, orderStatus)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repository.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, filter repository.ProductListFilter, page, pageSize int) ([]*model.Product, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) DecrStock(ctx context.Context, id string, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) RestoreStock(ctx context.Context, id string, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of repository.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*model.Notification, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type reconcileMocks struct {
	paymentRepo      *MockPaymentRepository
	transactionRepo  *MockTransactionRepository
	productRepo      *MockProductRepository
	notificationRepo *MockNotificationRepository
	filter           *bloom.OrderFilter
}

func newReconcileService(t *testing.T) (ReconcileService, *reconcileMocks) {
	t.Helper()
	mocks := &reconcileMocks{
		paymentRepo:      new(MockPaymentRepository),
		transactionRepo:  new(MockTransactionRepository),
		productRepo:      new(MockProductRepository),
		notificationRepo: new(MockNotificationRepository),
		filter:           bloom.NewOrderFilter(1000, 0.01),
	}
	svc := NewReconcileService(
		mocks.paymentRepo,
		mocks.transactionRepo,
		mocks.productRepo,
		mocks.notificationRepo,
		mocks.filter,
	)
	return svc, mocks
}

func pendingPayment(orderID string) *model.Payment {
	return &model.Payment{
		ID:              "pay-1",
		TransactionID:   "trx-1",
		MidtransOrderID: orderID,
		PaymentStatus:   model.PaymentStatusPending,
	}
}

func batchTransactions(orderID string) []*model.Transaction {
	return []*model.Transaction{
		{
			ID: "trx-1", BuyerID: "buyer-1", SellerID: "seller-1", ProductID: "prod-a",
			MidtransOrderID: orderID, PaymentStatus: model.PaymentStatusPending,
			OrderStatus: model.OrderStatusProcessing,
		},
		{
			ID: "trx-2", BuyerID: "buyer-1", SellerID: "seller-2", ProductID: "prod-b",
			MidtransOrderID: orderID, PaymentStatus: model.PaymentStatusPending,
			OrderStatus: model.OrderStatusProcessing,
		},
	}
}

func TestHandleNotification_Settlement(t *testing.T) {
	svc, mocks := newReconcileService(t)
	orderID := "ORDER-abc"
	mocks.filter.Add(orderID)

	payment := pendingPayment(orderID)
	mocks.paymentRepo.On("GetByMidtransOrderID", mock.Anything, orderID).Return(payment, nil)
	mocks.paymentRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mocks.transactionRepo.On("ListByMidtransOrderID", mock.Anything, orderID).Return(batchTransactions(orderID), nil)
	mocks.transactionRepo.On("UpdateStatus", mock.Anything, "trx-1", model.PaymentStatusSettlement, model.OrderStatusProcessing).Return(nil)
	mocks.transactionRepo.On("UpdateStatus", mock.Anything, "trx-2", model.PaymentStatusSettlement, model.OrderStatusProcessing).Return(nil)
	mocks.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := svc.HandleNotification(context.Background(), &midtrans.Notification{
		OrderID:           orderID,
		TransactionStatus: "settlement",
		FraudStatus:       "accept",
		PaymentType:       "gopay",
		TransactionID:     "mt-123",
	})

	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusSettlement, payment.PaymentStatus)
	assert.NotNil(t, payment.PaymentDate)
	require.NotNil(t, payment.PaymentType)
	assert.Equal(t, "gopay", *payment.PaymentType)

	// settlement never touches inventory
	mocks.productRepo.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything)
	mocks.paymentRepo.AssertExpectations(t)
	mocks.transactionRepo.AssertExpectations(t)
}

func TestHandleNotification_Expire(t *testing.T) {
	svc, mocks := newReconcileService(t)
	orderID := "ORDER-def"
	mocks.filter.Add(orderID)

	payment := pendingPayment(orderID)
	mocks.paymentRepo.On("GetByMidtransOrderID", mock.Anything, orderID).Return(payment, nil)
	mocks.paymentRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mocks.transactionRepo.On("ListByMidtransOrderID", mock.Anything, orderID).Return(batchTransactions(orderID), nil)
	mocks.transactionRepo.On("UpdateStatus", mock.Anything, "trx-1", model.PaymentStatusExpire, model.OrderStatusCanceled).Return(nil)
	mocks.transactionRepo.On("UpdateStatus", mock.Anything, "trx-2", model.PaymentStatusExpire, model.OrderStatusCanceled).Return(nil)
	mocks.productRepo.On("RestoreStock", mock.Anything, "prod-a", 1).Return(nil)
	mocks.productRepo.On("RestoreStock", mock.Anything, "prod-b", 1).Return(nil)

	var recipients []string
	mocks.notificationRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		recipients = append(recipients, args.Get(1).(*model.Notification).UserID)
	}).Return(nil)

	err := svc.HandleNotification(context.Background(), &midtrans.Notification{
		OrderID:           orderID,
		TransactionStatus: "expire",
	})

	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusExpire, payment.PaymentStatus)

	// every seller hears about the failed payment, the buyer once
	assert.Contains(t, recipients, "seller-1")
	assert.Contains(t, recipients, "seller-2")
	assert.Contains(t, recipients, "buyer-1")
	assert.Len(t, recipients, 3)

	mocks.paymentRepo.AssertExpectations(t)
	mocks.transactionRepo.AssertExpectations(t)
	mocks.productRepo.AssertExpectations(t)
}

func TestHandleNotification_DuplicateTerminalIgnored(t *testing.T) {
	svc, mocks := newReconcileService(t)
	orderID := "ORDER-ghi"
	mocks.filter.Add(orderID)

	payment := pendingPayment(orderID)
	payment.PaymentStatus = model.PaymentStatusSettlement
	mocks.paymentRepo.On("GetByMidtransOrderID", mock.Anything, orderID).Return(payment, nil)

	err := svc.HandleNotification(context.Background(), &midtrans.Notification{
		OrderID:           orderID,
		TransactionStatus: "expire",
	})

	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusSettlement, payment.PaymentStatus)
	mocks.paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mocks.productRepo.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleNotification_CapturePendingReview(t *testing.T) {
	svc, mocks := newReconcileService(t)
	orderID := "ORDER-jkl"
	mocks.filter.Add(orderID)

	payment := pendingPayment(orderID)
	mocks.paymentRepo.On("GetByMidtransOrderID", mock.Anything, orderID).Return(payment, nil)

	err := svc.HandleNotification(context.Background(), &midtrans.Notification{
		OrderID:           orderID,
		TransactionStatus: "capture",
		FraudStatus:       "challenge",
	})

	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, payment.PaymentStatus)
	mocks.paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHandleNotification_UnissuedOrderRejectedWithoutLookup(t *testing.T) {
	svc, mocks := newReconcileService(t)

	err := svc.HandleNotification(context.Background(), &midtrans.Notification{
		OrderID:           "ORDER-never-issued",
		TransactionStatus: "settlement",
		FraudStatus:       "accept",
	})

	assert.True(t, errors.Is(err, utils.ErrUnknownOrder))
	mocks.paymentRepo.AssertNotCalled(t, "GetByMidtransOrderID", mock.Anything, mock.Anything)
}

func TestHandleNotification_UnknownOrder(t *testing.T) {
	svc, mocks := newReconcileService(t)
	orderID := "ORDER-mno"
	mocks.filter.Add(orderID)

	mocks.paymentRepo.On("GetByMidtransOrderID", mock.Anything, orderID).Return(nil, utils.ErrUnknownOrder)

	err := svc.HandleNotification(context.Background(), &midtrans.Notification{
		OrderID:           orderID,
		TransactionStatus: "settlement",
		FraudStatus:       "accept",
	})

	assert.True(t, errors.Is(err, utils.ErrUnknownOrder))
}

func TestHandleNotification_MergesInstrumentFields(t *testing.T) {
	svc, mocks := newReconcileService(t)
	orderID := "ORDER-pqr"
	mocks.filter.Add(orderID)

	payment := pendingPayment(orderID)
	mocks.paymentRepo.On("GetByMidtransOrderID", mock.Anything, orderID).Return(payment, nil)
	mocks.paymentRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mocks.transactionRepo.On("ListByMidtransOrderID", mock.Anything, orderID).Return(batchTransactions(orderID)[:1], nil)
	mocks.transactionRepo.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mocks.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := svc.HandleNotification(context.Background(), &midtrans.Notification{
		OrderID:           orderID,
		TransactionStatus: "settlement",
		FraudStatus:       "accept",
		PaymentType:       "bank_transfer",
		VANumbers: []midtrans.VANumber{
			{Bank: "bca", VANumber: "1234567890"},
		},
		ExpiryTime: "2026-08-30 12:00:00",
	})

	require.NoError(t, err)
	require.NotNil(t, payment.Bank)
	assert.Equal(t, "bca", *payment.Bank)
	require.NotNil(t, payment.VANumber)
	assert.Equal(t, "1234567890", *payment.VANumber)
	require.NotNil(t, payment.ExpiryTime)
}

func TestWarmOrderFilter(t *testing.T) {
	svc, mocks := newReconcileService(t)

	mocks.paymentRepo.On("ListOrderIDs", mock.Anything).Return([]string{"ORDER-a", "ORDER-b"}, nil)

	err := svc.WarmOrderFilter(context.Background())
	require.NoError(t, err)
	assert.True(t, mocks.filter.MightContain("ORDER-a"))
	assert.True(t, mocks.filter.MightContain("ORDER-b"))
}
