package model

// User model
type User struct {
	ID            string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name          string  `gorm:"type:varchar(100);not null" json:"name"`
	Email         string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	EmailVerified bool    `gorm:"not null;default:false" json:"email_verified"`
	PasswordHash  string  `gorm:"type:varchar(255);not null" json:"-"`
	Phone         *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address       *string `gorm:"type:varchar(255)" json:"address,omitempty"`
	City          *string `gorm:"type:varchar(100)" json:"city,omitempty"`
	PostalCode    *string `gorm:"type:varchar(10)" json:"postal_code,omitempty"`
	Role          string  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt     int64   `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt     int64   `gorm:"autoUpdateTime:milli" json:"updated_at"`
}

// TableName set name
func (User) TableName() string {
	return "users"
}

// UserRole user role const
const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)
