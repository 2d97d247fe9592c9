package notification

import "time"

// InAppNotification is a per-user bell notification created from
// activity messages (RSVPs, cancellations, event deletions).
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Category  string    `gorm:"size:30;not null" json:"category"` // event, rsvp, system
	EventID   *uint     `gorm:"index" json:"eventId,omitempty"`
	IsRead    bool      `gorm:"default:false" json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (InAppNotification) TableName() string {
	return "in_app_notifications"
}
