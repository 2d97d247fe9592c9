package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter renders report rows into downloadable files.
type Exporter interface {
	ExportAttendance(format string, report *AttendanceReport) ([]byte, string, string, error)
	ExportEventSummaries(format string, rows []EventSummaryReportRow) ([]byte, string, string, error)
	ExportInventory(format string, rows []InventoryReportRow) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func timestamp() string {
	return time.Now().Format("20060102_150405")
}

func capacityLabel(max *int) string {
	if max == nil {
		return "unlimited"
	}
	return strconv.Itoa(*max)
}

//// ============================
/// ATTENDANCE EXPORTS
//// ============================

func (e *exporter) ExportAttendance(format string, report *AttendanceReport) ([]byte, string, string, error) {
	base := fmt.Sprintf("attendance_event_%d_%s", report.EventID, timestamp())

	switch format {
	case FormatCSV:
		data, err := e.attendanceCSV(report)
		if err != nil {
			return nil, "", "", err
		}
		return data, base + ".csv", "text/csv", nil

	case FormatExcel:
		data, err := e.attendanceExcel(report)
		if err != nil {
			return nil, "", "", err
		}
		return data, base + ".xlsx", excelContentType, nil

	case FormatPDF:
		data, err := e.attendancePDF(report)
		if err != nil {
			return nil, "", "", err
		}
		return data, base + ".pdf", "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for attendance report: %s", format)
	}
}

func (e *exporter) attendanceCSV(report *AttendanceReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Email", "Confirmation Code", "RSVP Date"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range report.Rows {
		record := []string{
			strconv.FormatUint(uint64(r.ParticipantID), 10),
			r.UserName,
			r.UserEmail,
			r.ConfirmationCode,
			r.RSVPDate.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) attendanceExcel(report *AttendanceReport) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s - %s", report.EventTitle, report.EventDate.Format("2006-01-02 15:04")))

	headers := []string{"ID", "Name", "Email", "Confirmation Code", "RSVP Date"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range report.Rows {
		row := rIdx + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ParticipantID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.UserName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.UserEmail)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.ConfirmationCode)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.RSVPDate.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) attendancePDF(report *AttendanceReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Attendance: %s (%s)", report.EventTitle, report.EventDate.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Name", "Email", "Confirmation Code", "RSVP Date"}
	widths := []float64{15, 60, 80, 70, 40}

	// Print headers
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	// Print data rows
	pdf.SetFont("Arial", "", 9)
	for _, r := range report.Rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.ParticipantID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.UserName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.UserEmail, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.ConfirmationCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.RSVPDate.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// EVENT SUMMARY EXPORTS
//// ============================

func (e *exporter) ExportEventSummaries(format string, rows []EventSummaryReportRow) ([]byte, string, string, error) {
	base := "events_report_" + timestamp()

	switch format {
	case FormatCSV:
		data, err := e.eventSummariesCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, base + ".csv", "text/csv", nil

	case FormatExcel:
		data, err := e.eventSummariesExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, base + ".xlsx", excelContentType, nil

	case FormatPDF:
		data, err := e.eventSummariesPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, base + ".pdf", "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for events report: %s", format)
	}
}

func (e *exporter) eventSummariesCSV(rows []EventSummaryReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Date", "Location", "Creator", "Capacity", "Participants"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.EventID), 10),
			r.Title,
			r.Date.Format("2006-01-02 15:04:05"),
			r.Location,
			r.CreatorName,
			capacityLabel(r.MaxParticipants),
			strconv.Itoa(r.ParticipantCount),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) eventSummariesExcel(rows []EventSummaryReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Events"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Title", "Date", "Location", "Creator", "Capacity", "Participants"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.EventID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Date.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Location)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.CreatorName)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), capacityLabel(r.MaxParticipants))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.ParticipantCount)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) eventSummariesPDF(rows []EventSummaryReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Events Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Title", "Date", "Location", "Creator", "Capacity", "Participants"}
	widths := []float64{15, 70, 35, 55, 45, 25, 28}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.EventID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Date.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.CreatorName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 6, capacityLabel(r.MaxParticipants), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, strconv.Itoa(r.ParticipantCount), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//// ============================
/// INVENTORY EXPORTS
//// ============================

func (e *exporter) ExportInventory(format string, rows []InventoryReportRow) ([]byte, string, string, error) {
	base := "inventory_report_" + timestamp()

	switch format {
	case FormatCSV:
		data, err := e.inventoryCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, base + ".csv", "text/csv", nil

	case FormatExcel:
		data, err := e.inventoryExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, base + ".xlsx", excelContentType, nil

	case FormatPDF:
		data, err := e.inventoryPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, base + ".pdf", "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for inventory report: %s", format)
	}
}

func (e *exporter) inventoryCSV(rows []InventoryReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"ID", "SKU", "Name", "Category", "Quantity", "Reorder Level", "Unit Price", "Stock Value", "Low Stock"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ItemID), 10),
			r.SKU,
			r.Name,
			r.Category,
			strconv.Itoa(r.Quantity),
			strconv.Itoa(r.ReorderLevel),
			strconv.FormatFloat(r.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(r.StockValue, 'f', 2, 64),
			strconv.FormatBool(r.LowStock),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) inventoryExcel(rows []InventoryReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Inventory"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "SKU", "Name", "Category", "Quantity", "Reorder Level", "Unit Price", "Stock Value", "Low Stock"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ItemID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.SKU)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Name)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Category)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.ReorderLevel)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.UnitPrice)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.StockValue)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.LowStock)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) inventoryPDF(rows []InventoryReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Inventory Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "SKU", "Name", "Category", "Qty", "Reorder", "Unit Price", "Stock Value", "Low"}
	widths := []float64{15, 35, 65, 40, 18, 22, 28, 30, 15}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.ItemID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.SKU, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, strconv.Itoa(r.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, strconv.Itoa(r.ReorderLevel), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, strconv.FormatFloat(r.UnitPrice, 'f', 2, 64), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[7], 6, strconv.FormatFloat(r.StockValue, 'f', 2, 64), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[8], 6, strconv.FormatBool(r.LowStock), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
