package reports

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Karthik0956A/event-rsvp-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📄 Attendance export - GET /reports/attendance/:eventId?format=csv|excel|pdf
func (h *Handler) ExportAttendance(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("eventId"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	result, err := h.Service.ExportAttendance(c.Request.Context(), uint(eventID), format, user.ID, middleware.GetIPFromContext(c))
	if err != nil {
		writeExportError(c, err)
		return
	}

	writeDownload(c, result)
}

// ===========================
// 📄 Events export - GET /reports/events?format=csv|excel|pdf
func (h *Handler) ExportEventSummaries(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	result, err := h.Service.ExportEventSummaries(c.Request.Context(), format, user.ID, middleware.GetIPFromContext(c))
	if err != nil {
		writeExportError(c, err)
		return
	}

	writeDownload(c, result)
}

// ===========================
// 📄 Inventory export - GET /reports/inventory?format=csv|excel|pdf&lowStock=true
func (h *Handler) ExportInventory(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", FormatCSV)
	lowStockOnly := c.Query("lowStock") == "true"

	result, err := h.Service.ExportInventory(c.Request.Context(), format, lowStockOnly, user.ID, middleware.GetIPFromContext(c))
	if err != nil {
		writeExportError(c, err)
		return
	}

	writeDownload(c, result)
}

func writeExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv, excel or pdf"})
	case errors.Is(err, ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
	}
}

func writeDownload(c *gin.Context, result *ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
