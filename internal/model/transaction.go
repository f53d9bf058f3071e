package model

// PaymentStatus mirrors the gateway's transaction status enum
type PaymentStatus string

// OrderStatus fulfilment status of a seller-group transaction
type OrderStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusSettlement    PaymentStatus = "settlement"
	PaymentStatusCapture       PaymentStatus = "capture"
	PaymentStatusDeny          PaymentStatus = "deny"
	PaymentStatusCancel        PaymentStatus = "cancel"
	PaymentStatusExpire        PaymentStatus = "expire"
	PaymentStatusRefund        PaymentStatus = "refund"
	PaymentStatusPartialRefund PaymentStatus = "partial_refund"
	PaymentStatusAuthorize     PaymentStatus = "authorize"

	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// IsTerminal reports whether the payment reached a final state.
// Duplicate webhook deliveries must not transition a terminal payment again.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusSettlement, PaymentStatusDeny, PaymentStatusCancel,
		PaymentStatusExpire, PaymentStatusRefund, PaymentStatusPartialRefund:
		return true
	}
	return false
}

// IsValid check order status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// Transaction one seller-group of a checkout. ProductID references the first
// item of the group, matching the one-product-per-transaction storefront flow.
// MidtransOrderID ties every transaction of a batch to the gateway session so
// webhooks can reconcile the whole batch.
type Transaction struct {
	ID              string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	BuyerID         string        `gorm:"type:varchar(36);not null;index" json:"buyer_id"`
	SellerID        string        `gorm:"type:varchar(36);not null;index" json:"seller_id"`
	ProductID       string        `gorm:"type:varchar(36);not null" json:"product_id"`
	MidtransOrderID string        `gorm:"type:varchar(64);not null;index" json:"midtrans_order_id"`
	TotalPrice      int64         `gorm:"type:bigint;not null" json:"total_price"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	OrderStatus     OrderStatus   `gorm:"type:varchar(20);not null;default:'processing';index" json:"order_status"`
	CreatedAt       int64         `gorm:"autoCreateTime:milli;index" json:"created_at"`
	UpdatedAt       int64         `gorm:"autoUpdateTime:milli" json:"updated_at"`

	Buyer    *User     `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Product  *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Payment  *Payment  `gorm:"foreignKey:TransactionID" json:"payment,omitempty"`
	Shipping *Shipping `gorm:"foreignKey:TransactionID" json:"shipping,omitempty"`
}

// TableName set name
func (Transaction) TableName() string {
	return "transactions"
}

// IsCanceled check if the order was canceled
func (t *Transaction) IsCanceled() bool {
	return t.OrderStatus == OrderStatusCanceled
}
