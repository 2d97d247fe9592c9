package event

import (
	"time"
)

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"type:varchar(255);not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Date            time.Time `gorm:"not null;index" json:"date"`
	Location        string    `gorm:"type:varchar(255);not null" json:"location"`
	MaxParticipants *int      `json:"maxParticipants,omitempty"` // nil = unlimited
	CreatedBy       uint      `gorm:"not null;index" json:"createdBy"`
	CreatorName     string    `gorm:"type:varchar(255)" json:"creatorName"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	ParticipantCount int `gorm:"-" json:"participantCount"`
}

func (Event) TableName() string {
	return "events"
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description" binding:"required"`
	Date            string `json:"date" binding:"required"` // RFC 3339, e.g. "2025-01-01T09:00:00Z"
	Location        string `json:"location" binding:"required"`
	MaxParticipants *int   `json:"maxParticipants,omitempty"`
}

// ============================
// 🟠 Update Event Request, only supplied fields are overwritten
type UpdateEventRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	Date            *string `json:"date,omitempty"`
	Location        *string `json:"location,omitempty"`
	MaxParticipants *int    `json:"maxParticipants,omitempty"`
}
