package reports

import "time"

// Report types
const (
	ReportTypeAttendance = "attendance"
	ReportTypeEvents     = "events"
	ReportTypeInventory  = "inventory"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// AttendanceReportRow is one participant line of a per-event attendance report.
type AttendanceReportRow struct {
	ParticipantID    uint      `json:"participantId"`
	UserName         string    `json:"userName"`
	UserEmail        string    `json:"userEmail"`
	ConfirmationCode string    `json:"confirmationCode"`
	RSVPDate         time.Time `json:"rsvpDate"`
}

// EventSummaryReportRow is one event line of the events summary report.
type EventSummaryReportRow struct {
	EventID          uint      `json:"eventId"`
	Title            string    `json:"title"`
	Date             time.Time `json:"date"`
	Location         string    `json:"location"`
	CreatorName      string    `json:"creatorName"`
	MaxParticipants  *int      `json:"maxParticipants"`
	ParticipantCount int       `json:"participantCount"`
}

// InventoryReportRow is one item line of the inventory report.
type InventoryReportRow struct {
	ItemID       uint    `json:"itemId"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	ReorderLevel int     `json:"reorderLevel"`
	UnitPrice    float64 `json:"unitPrice"`
	StockValue   float64 `json:"stockValue"`
	LowStock     bool    `json:"lowStock"`
}

// AttendanceReport bundles the event header with its participant rows.
type AttendanceReport struct {
	EventID    uint
	EventTitle string
	EventDate  time.Time
	Location   string
	Rows       []AttendanceReportRow
}
