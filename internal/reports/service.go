package reports

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Karthik0956A/event-rsvp-backend/internal/auditlog"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ExportResult carries the rendered file plus download metadata.
type ExportResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

type Service struct {
	repo     Repository
	exporter Exporter
	auditSvc auditlog.Service
}

func NewService(repo Repository, exporter Exporter, auditSvc auditlog.Service) *Service {
	return &Service{repo: repo, exporter: exporter, auditSvc: auditSvc}
}

func validFormat(format string) bool {
	switch format {
	case FormatCSV, FormatExcel, FormatPDF:
		return true
	}
	return false
}

func (s *Service) ExportAttendance(ctx context.Context, eventID uint, format string, userID uint, ip string) (*ExportResult, error) {
	if !validFormat(format) {
		return nil, ErrUnsupportedFormat
	}

	report, err := s.repo.GetAttendanceReport(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	data, filename, contentType, err := s.exporter.ExportAttendance(format, report)
	s.audit(ctx, userID, &eventID, "REPORT_EXPORTED", map[string]interface{}{
		"reportType": ReportTypeAttendance,
		"format":     format,
		"rows":       len(report.Rows),
	}, ip, err)
	if err != nil {
		return nil, err
	}

	return &ExportResult{Data: data, Filename: filename, ContentType: contentType}, nil
}

func (s *Service) ExportEventSummaries(ctx context.Context, format string, userID uint, ip string) (*ExportResult, error) {
	if !validFormat(format) {
		return nil, ErrUnsupportedFormat
	}

	rows, err := s.repo.GetEventSummaries(ctx)
	if err != nil {
		return nil, err
	}

	data, filename, contentType, err := s.exporter.ExportEventSummaries(format, rows)
	s.audit(ctx, userID, nil, "REPORT_EXPORTED", map[string]interface{}{
		"reportType": ReportTypeEvents,
		"format":     format,
		"rows":       len(rows),
	}, ip, err)
	if err != nil {
		return nil, err
	}

	return &ExportResult{Data: data, Filename: filename, ContentType: contentType}, nil
}

func (s *Service) ExportInventory(ctx context.Context, format string, lowStockOnly bool, userID uint, ip string) (*ExportResult, error) {
	if !validFormat(format) {
		return nil, ErrUnsupportedFormat
	}

	rows, err := s.repo.GetInventoryRows(ctx, lowStockOnly)
	if err != nil {
		return nil, err
	}

	data, filename, contentType, err := s.exporter.ExportInventory(format, rows)
	s.audit(ctx, userID, nil, "REPORT_EXPORTED", map[string]interface{}{
		"reportType":   ReportTypeInventory,
		"format":       format,
		"rows":         len(rows),
		"lowStockOnly": lowStockOnly,
	}, ip, err)
	if err != nil {
		return nil, err
	}

	return &ExportResult{Data: data, Filename: filename, ContentType: contentType}, nil
}

func (s *Service) audit(ctx context.Context, userID uint, eventID *uint, action string, details map[string]interface{}, ip string, opErr error) {
	status := "success"
	if opErr != nil {
		status = "failure"
	}
	if err := s.auditSvc.LogAction(ctx, &userID, eventID, action, details, ip, status); err != nil {
		fmt.Printf("❌ Audit log error: %v\n", err)
	}
}
