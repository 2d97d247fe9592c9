package inventory

import (
	"errors"
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
// 🎯 Create Item - POST /inventory
func (h *Handler) CreateItem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sku and name are required"})
		return
	}

	item, err := h.Service.CreateItem(c.Request.Context(), req, user.ID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrSKUTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create item"})
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ===========================
// 📄 List Items - GET /inventory
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.Service.ListItems(c.Request.Context(), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch items"})
		return
	}

	if items == nil {
		items = []Item{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ===========================
// 🔍 Get Item - GET /inventory/:id
func (h *Handler) GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	item, err := h.Service.GetItem(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// ===========================
// 🛠 Update Item - PUT /inventory/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.Service.UpdateItem(c.Request.Context(), uint(id), req, user.ID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		case errors.Is(err, ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// ===========================
// ❌ Delete Item - DELETE /inventory/:id
func (h *Handler) DeleteItem(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	if err := h.Service.DeleteItem(c.Request.Context(), uint(id), user.ID, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

// ===========================
// 🛠 Adjust Stock - POST /inventory/:id/adjust
func (h *Handler) AdjustStock(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delta is required and must be non-zero"})
		return
	}

	item, err := h.Service.AdjustStock(c.Request.Context(), uint(id), req, user.ID, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		case errors.Is(err, ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to adjust stock"})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// ===========================
// 🔍 Low Stock - GET /inventory/low-stock
func (h *Handler) GetLowStockItems(c *gin.Context) {
	items, err := h.Service.GetLowStockItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch low stock items"})
		return
	}

	if items == nil {
		items = []Item{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}
