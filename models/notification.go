package models

import "time"

const (
	NotifApplicationCreated       = "APPLICATION_CREATED"
	NotifApplicationStatusChanged = "APPLICATION_STATUS_CHANGED"
	NotifFeedbackLeft             = "FEEDBACK_LEFT"
)

// Notification rows are written only as side effects of ledger events and
// inside the same transaction as the event itself.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
