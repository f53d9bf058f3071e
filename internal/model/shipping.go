package model

// ShippingStatus fulfilment state of one shipment
type ShippingStatus string

const (
	ShippingStatusPreparing ShippingStatus = "preparing"
	ShippingStatusShipped   ShippingStatus = "shipped"
	ShippingStatusDelivered ShippingStatus = "delivered"
)

// IsValid check shipping status is a known value
func (s ShippingStatus) IsValid() bool {
	switch s {
	case ShippingStatusPreparing, ShippingStatusShipped, ShippingStatusDelivered:
		return true
	}
	return false
}

// Shipping one shipment per transaction
type Shipping struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	TransactionID  string         `gorm:"type:varchar(36);not null;index" json:"transaction_id"`
	Method         string         `gorm:"type:varchar(30);not null" json:"method"`
	Status         ShippingStatus `gorm:"type:varchar(20);not null;default:'preparing'" json:"status"`
	TrackingNumber *string        `gorm:"type:varchar(64)" json:"tracking_number,omitempty"`
	ShippedAt      *int64         `gorm:"type:bigint" json:"shipped_at,omitempty"`
	DeliveredAt    *int64         `gorm:"type:bigint" json:"delivered_at,omitempty"`
	CreatedAt      int64          `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt      int64          `gorm:"autoUpdateTime:milli" json:"updated_at"`
}

// TableName set name
func (Shipping) TableName() string {
	return "shippings"
}
