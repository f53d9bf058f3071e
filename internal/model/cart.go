package model

// CartItem cart item model, one row per (user, product) pair
type CartItem struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int    `gorm:"type:int;not null;default:1" json:"quantity"`
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName set name
func (CartItem) TableName() string {
	return "cart_items"
}
