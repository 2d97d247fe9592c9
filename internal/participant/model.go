package participant

import (
	"time"
)

// ============================
// 🔷 GORM Participant Model
//
// One row per (event, user). The composite unique index is the store-level
// backstop for the duplicate-RSVP invariant; the row lock taken during
// creation is what makes the capacity check safe.
type Participant struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	EventID uint `gorm:"not null;uniqueIndex:idx_event_user" json:"eventId"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_event_user" json:"userId"`

	// Snapshots taken at RSVP time
	UserName   string    `gorm:"type:varchar(255)" json:"userName"`
	UserEmail  string    `gorm:"type:varchar(255)" json:"userEmail"`
	EventTitle string    `gorm:"type:varchar(255)" json:"eventTitle"`
	EventDate  time.Time `json:"eventDate"`

	ConfirmationCode string    `gorm:"type:varchar(36)" json:"confirmationCode"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"rsvpDate"`
}

func (Participant) TableName() string {
	return "participants"
}

// ============================
// 🟡 Create RSVP Request
type CreateRSVPRequest struct {
	EventID uint `json:"eventId" binding:"required"`
}
