package model

// ProductStatus listing status
type ProductStatus string

// ProductType listing transaction mode
type ProductType string

// ProductCondition physical condition
type ProductCondition string

const (
	ProductStatusAvailable ProductStatus = "available"
	ProductStatusSold      ProductStatus = "sold"
	ProductStatusBarter    ProductStatus = "barter"

	ProductTypeSale   ProductType = "jual"
	ProductTypeBarter ProductType = "barter"

	ConditionNew    ProductCondition = "new"
	ConditionUsed   ProductCondition = "used"
	ConditionRework ProductCondition = "rework"
)

// IsValid check status is a known value
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusAvailable, ProductStatusSold, ProductStatusBarter:
		return true
	}
	return false
}

// IsValid check type is a known value
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeSale, ProductTypeBarter:
		return true
	}
	return false
}

// IsValid check condition is a known value
func (c ProductCondition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionRework:
		return true
	}
	return false
}

// Product product model
type Product struct {
	ID                   string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	SellerID             string           `gorm:"type:varchar(36);not null;index" json:"seller_id"`
	Name                 string           `gorm:"type:varchar(200);not null" json:"name"`
	Description          string           `gorm:"type:text" json:"description"`
	Category             string           `gorm:"type:varchar(50);index" json:"category"`
	Price                int64            `gorm:"type:bigint;not null" json:"price"`
	Discount             int              `gorm:"type:int;not null;default:0" json:"discount"` // percent 0-100
	Quantity             int              `gorm:"type:int;not null;default:1" json:"quantity"`
	Status               ProductStatus    `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	Type                 ProductType      `gorm:"type:varchar(20);not null;default:'jual';index" json:"type"`
	Condition            ProductCondition `gorm:"type:varchar(20);not null;default:'used'" json:"condition"`
	SustainabilityRating int              `gorm:"type:int;not null;default:1" json:"sustainability_rating"`
	PrimaryImageURL      string           `gorm:"type:varchar(255)" json:"primary_image_url"`
	CreatedAt            int64            `gorm:"autoCreateTime:milli;index" json:"created_at"`
	UpdatedAt            int64            `gorm:"autoUpdateTime:milli" json:"updated_at"`

	Seller *User          `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Images []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

// TableName set name
func (Product) TableName() string {
	return "products"
}

// IsAvailable check if the product can be purchased
func (p *Product) IsAvailable() bool {
	return p.Status == ProductStatusAvailable && p.Quantity > 0
}

// DiscountedPrice unit price after percentage discount
func (p *Product) DiscountedPrice() int64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return p.Price - p.Price*int64(p.Discount)/100
}

// ProductImage product image model
type ProductImage struct {
	ID            string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProductID     string `gorm:"type:varchar(36);not null;index" json:"product_id"`
	CloudinaryID  string `gorm:"type:varchar(255)" json:"cloudinary_id"`
	CloudinaryURL string `gorm:"type:varchar(255);not null" json:"cloudinary_url"`
	IsPrimary     bool   `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt     int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}

// TableName set name
func (ProductImage) TableName() string {
	return "product_images"
}
