package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint          `gorm:"index" json:"userId"` // nullable (e.g. failed login)
	EventID   *uint          `gorm:"index" json:"eventId,omitempty"`
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress string         `gorm:"size:45" json:"ipAddress"`
	Status    string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogResponse represents the audit log response for API
type AuditLogResponse struct {
	ID        uint           `json:"id"`
	UserID    *uint          `json:"userId"`
	EventID   *uint          `json:"eventId,omitempty"`
	Action    string         `json:"action"`
	Details   datatypes.JSON `json:"details"`
	IPAddress string         `json:"ipAddress"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UserName  *string        `json:"userName,omitempty"`
}

// AuditLogFilter represents filters for querying audit logs
type AuditLogFilter struct {
	UserID   *uint      `json:"userId"`
	EventID  *uint      `json:"eventId"`
	Action   string     `json:"action"`
	Status   string     `json:"status"`
	FromDate *time.Time `json:"fromDate"`
	ToDate   *time.Time `json:"toDate"`
	Page     int        `json:"page"`
	Limit    int        `json:"limit"`
}

// PaginatedAuditLogs wraps a page of audit logs
type PaginatedAuditLogs struct {
	Data       []AuditLogResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}
