package models

// NotificationType classifies user-visible marketplace events.
type NotificationType string

const (
	NotificationSecurityPurchased NotificationType = "security_purchased"
	NotificationPaymentReceived   NotificationType = "payment_received"
	NotificationSecurityListed    NotificationType = "security_listed"
	NotificationPaymentDue        NotificationType = "payment_due"
)

// Notification is an append-only, per-user event record. Content is
// immutable after creation; only the read flag changes.
type Notification struct {
	Base
	UserID  string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Type    NotificationType `gorm:"not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `json:"message"`
	Data    string           `json:"data,omitempty"`
	Read    bool             `gorm:"default:false" json:"read"`
}
