package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Karthik0956A/event-rsvp-backend/config"
	"github.com/Karthik0956A/event-rsvp-backend/internal/auditlog"
	"github.com/Karthik0956A/event-rsvp-backend/utils"
)

var (
	ErrNotFound          = errors.New("item not found")
	ErrSKUTaken          = errors.New("an item with this SKU already exists")
	ErrInsufficientStock = errors.New("insufficient stock for adjustment")
	ErrInvalidQuantity   = errors.New("quantity and reorder level must not be negative")
)

type Service struct {
	repo     Repository
	auditSvc auditlog.Service
	cfg      *config.Config
	now      func() time.Time
}

func NewService(repo Repository, auditSvc auditlog.Service, cfg *config.Config) *Service {
	return &Service{repo: repo, auditSvc: auditSvc, cfg: cfg, now: time.Now}
}

func (s *Service) CreateItem(ctx context.Context, req CreateItemRequest, userID uint, ip string) (*Item, error) {
	if req.Quantity < 0 || req.ReorderLevel < 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.repo.GetBySKU(ctx, req.SKU); err == nil {
		return nil, ErrSKUTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &Item{
		SKU:          req.SKU,
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		UnitPrice:    req.UnitPrice,
	}

	err := s.repo.Create(ctx, item)
	s.audit(ctx, userID, "ITEM_CREATED", map[string]interface{}{
		"sku":  req.SKU,
		"name": req.Name,
	}, ip, err)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSKUTaken
		}
		return nil, err
	}

	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id uint) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *Service) ListItems(ctx context.Context, category string) ([]Item, error) {
	return s.repo.List(ctx, category)
}

func (s *Service) UpdateItem(ctx context.Context, id uint, req UpdateItemRequest, userID uint, ip string) (*Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		item.Name = *req.Name
		changes["name"] = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
		changes["category"] = *req.Category
	}
	if req.ReorderLevel != nil {
		if *req.ReorderLevel < 0 {
			return nil, ErrInvalidQuantity
		}
		item.ReorderLevel = *req.ReorderLevel
		changes["reorderLevel"] = *req.ReorderLevel
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
		changes["unitPrice"] = *req.UnitPrice
	}

	err = s.repo.Save(ctx, item)
	changes["sku"] = item.SKU
	s.audit(ctx, userID, "ITEM_UPDATED", changes, ip, err)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id uint, userID uint, ip string) error {
	err := s.repo.Delete(ctx, id)
	s.audit(ctx, userID, "ITEM_DELETED", map[string]interface{}{"itemId": id}, ip, err)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// AdjustStock applies a signed delta and fires a throttled low-stock
// alert when the new quantity is at or below the reorder level.
func (s *Service) AdjustStock(ctx context.Context, id uint, req AdjustStockRequest, userID uint, ip string) (*Item, error) {
	item, err := s.repo.AdjustQuantity(ctx, id, req.Delta)
	s.audit(ctx, userID, "STOCK_ADJUSTED", map[string]interface{}{
		"itemId": id,
		"delta":  req.Delta,
		"reason": req.Reason,
	}, ip, err)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case errors.Is(err, ErrInsufficientStock):
			return nil, ErrInsufficientStock
		}
		return nil, err
	}

	if item.Quantity <= item.ReorderLevel {
		s.maybeSendLowStockAlert(ctx, item)
	}

	return item, nil
}

func (s *Service) GetLowStockItems(ctx context.Context) ([]Item, error) {
	return s.repo.ListLowStock(ctx)
}

// maybeSendLowStockAlert sends at most one alert per item per cooldown
// window. The last-sent timestamp lives in the store, so restarts do
// not cause duplicate alert storms.
func (s *Service) maybeSendLowStockAlert(ctx context.Context, item *Item) {
	if s.cfg.StockAlertRecipient == "" {
		return
	}

	cooldown := time.Duration(s.cfg.StockAlertCooldownHours) * time.Hour
	alert, err := s.repo.GetAlert(ctx, item.ID)
	if err == nil && s.now().Sub(alert.LastSentAt) < cooldown {
		return
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		fmt.Printf("❌ Failed to read stock alert state: %v\n", err)
		return
	}

	if err := utils.SendLowStockAlert(s.cfg.StockAlertRecipient, item.Name, item.SKU, item.Quantity, item.ReorderLevel); err != nil {
		fmt.Printf("❌ Failed to send low-stock alert for %s: %v\n", item.SKU, err)
		return
	}

	if err := s.repo.UpsertAlert(ctx, item.ID, s.now()); err != nil {
		fmt.Printf("❌ Failed to record stock alert time: %v\n", err)
	}
}

func (s *Service) audit(ctx context.Context, userID uint, action string, details map[string]interface{}, ip string, opErr error) {
	status := "success"
	if opErr != nil {
		status = "failure"
	}
	if err := s.auditSvc.LogAction(ctx, &userID, nil, action, details, ip, status); err != nil {
		fmt.Printf("❌ Audit log error: %v\n", err)
	}
}
