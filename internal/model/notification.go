package model

// NotificationType category of a feed entry
type NotificationType string

const (
	NotificationTypeTransaction NotificationType = "transaction"
	NotificationTypeBarter      NotificationType = "barter"
	NotificationTypeRework      NotificationType = "rework"
	NotificationTypeSystem      NotificationType = "system"
)

// IsValid check notification type is a known value
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeTransaction, NotificationTypeBarter, NotificationTypeRework, NotificationTypeSystem:
		return true
	}
	return false
}

// Notification append-only per-user feed entry, mutated only by marking read
type Notification struct {
	ID        string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string           `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title     string           `gorm:"type:varchar(200);not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"type:varchar(20);not null;default:'system'" json:"type"`
	IsRead    bool             `gorm:"not null;default:false;index" json:"is_read"`
	LinkTo    string           `gorm:"type:varchar(255)" json:"link_to"`
	CreatedAt int64            `gorm:"autoCreateTime:milli;index" json:"created_at"`
}

// TableName set name
func (Notification) TableName() string {
	return "notifications"
}
