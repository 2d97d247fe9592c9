package reports

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	GetAttendanceReport(ctx context.Context, eventID uint) (*AttendanceReport, error)
	GetEventSummaries(ctx context.Context) ([]EventSummaryReportRow, error)
	GetInventoryRows(ctx context.Context, lowStockOnly bool) ([]InventoryReportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAttendanceReport(ctx context.Context, eventID uint) (*AttendanceReport, error) {
	var report AttendanceReport
	err := r.db.WithContext(ctx).
		Table("events").
		Select("id AS event_id, title AS event_title, date AS event_date, location").
		Where("id = ?", eventID).
		Take(&report).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Table("participants").
		Select("id AS participant_id, user_name, user_email, confirmation_code, created_at AS rsvp_date").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Scan(&report.Rows).Error
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *repository) GetEventSummaries(ctx context.Context) ([]EventSummaryReportRow, error) {
	var rows []EventSummaryReportRow
	err := r.db.WithContext(ctx).
		Table("events e").
		Select(`e.id AS event_id, e.title, e.date, e.location, e.creator_name,
			e.max_participants,
			COUNT(p.id) AS participant_count`).
		Joins("LEFT JOIN participants p ON p.event_id = e.id").
		Group("e.id").
		Order("e.date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) GetInventoryRows(ctx context.Context, lowStockOnly bool) ([]InventoryReportRow, error) {
	q := r.db.WithContext(ctx).
		Table("inventory_items").
		Select(`id AS item_id, sku, name, category, quantity, reorder_level, unit_price,
			quantity * unit_price AS stock_value,
			quantity <= reorder_level AS low_stock`).
		Order("name ASC")
	if lowStockOnly {
		q = q.Where("quantity <= reorder_level")
	}

	var rows []InventoryReportRow
	err := q.Scan(&rows).Error
	return rows, err
}
