package model

// Payment one payment record per checkout batch, linked to the batch's first
// transaction. MidtransOrderID is the handle webhooks reconcile against.
type Payment struct {
	ID                    string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	TransactionID         string        `gorm:"type:varchar(36);not null;index" json:"transaction_id"`
	PaymentMethod         string        `gorm:"type:varchar(30);not null" json:"payment_method"`
	PaymentStatus         PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	MidtransOrderID       string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"midtrans_order_id"`
	MidtransTransactionID *string       `gorm:"type:varchar(64)" json:"midtrans_transaction_id,omitempty"`
	PaymentType           *string       `gorm:"type:varchar(30)" json:"payment_type,omitempty"`
	Bank                  *string       `gorm:"type:varchar(20)" json:"bank,omitempty"`
	VANumber              *string       `gorm:"type:varchar(40)" json:"va_number,omitempty"`
	BillKey               *string       `gorm:"type:varchar(40)" json:"bill_key,omitempty"`
	BillerCode            *string       `gorm:"type:varchar(40)" json:"biller_code,omitempty"`
	PaymentCode           *string       `gorm:"type:varchar(40)" json:"payment_code,omitempty"`
	ExpiryTime            *string       `gorm:"type:varchar(40)" json:"expiry_time,omitempty"`
	PaymentDate           *int64        `gorm:"type:bigint" json:"payment_date,omitempty"`
	CreatedAt             int64         `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt             int64         `gorm:"autoUpdateTime:milli" json:"updated_at"`
}

// TableName set name
func (Payment) TableName() string {
	return "payments"
}
