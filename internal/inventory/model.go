package inventory

import "time"

type Item struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SKU          string    `gorm:"size:64;not null;uniqueIndex" json:"sku"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	Category     string    `gorm:"size:80;index" json:"category"`
	Quantity     int       `gorm:"not null;default:0" json:"quantity"`
	ReorderLevel int       `gorm:"not null;default:0" json:"reorderLevel"`
	UnitPrice    float64   `gorm:"not null;default:0" json:"unitPrice"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Item) TableName() string {
	return "inventory_items"
}

// StockAlert records when a low-stock email was last sent for an item,
// so restarts do not reset the alert throttle.
type StockAlert struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ItemID     uint      `gorm:"not null;uniqueIndex" json:"itemId"`
	LastSentAt time.Time `gorm:"not null" json:"lastSentAt"`
}

func (StockAlert) TableName() string {
	return "stock_alerts"
}

type CreateItemRequest struct {
	SKU          string  `json:"sku" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	ReorderLevel int     `json:"reorderLevel"`
	UnitPrice    float64 `json:"unitPrice"`
}

type UpdateItemRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	ReorderLevel *int     `json:"reorderLevel"`
	UnitPrice    *float64 `json:"unitPrice"`
}

// AdjustStockRequest carries a signed delta; negative values consume stock.
type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}
