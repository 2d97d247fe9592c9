package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Karthik0956A/event-rsvp-backend/config"
	"github.com/Karthik0956A/event-rsvp-backend/internal/auditlog"
)

// --- mocks ---

type mockAuditSvc struct{}

func (m *mockAuditSvc) LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip string, status string) error {
	return nil
}
func (m *mockAuditSvc) GetAuditLogs(ctx context.Context, filter auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}
func (m *mockAuditSvc) GetAuditLogByID(ctx context.Context, id uint) (*auditlog.AuditLogResponse, error) {
	return nil, nil
}

type mockRepo struct {
	createFn         func(ctx context.Context, item *Item) error
	getByIDFn        func(ctx context.Context, id uint) (*Item, error)
	getBySKUFn       func(ctx context.Context, sku string) (*Item, error)
	listFn           func(ctx context.Context, category string) ([]Item, error)
	saveFn           func(ctx context.Context, item *Item) error
	deleteFn         func(ctx context.Context, id uint) error
	adjustQuantityFn func(ctx context.Context, id uint, delta int) (*Item, error)
	listLowStockFn   func(ctx context.Context) ([]Item, error)
	getAlertFn       func(ctx context.Context, itemID uint) (*StockAlert, error)
	upsertAlertFn    func(ctx context.Context, itemID uint, sentAt time.Time) error
}

func (m *mockRepo) Create(ctx context.Context, item *Item) error { return m.createFn(ctx, item) }
func (m *mockRepo) GetByID(ctx context.Context, id uint) (*Item, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) GetBySKU(ctx context.Context, sku string) (*Item, error) {
	return m.getBySKUFn(ctx, sku)
}
func (m *mockRepo) List(ctx context.Context, category string) ([]Item, error) {
	return m.listFn(ctx, category)
}
func (m *mockRepo) Save(ctx context.Context, item *Item) error { return m.saveFn(ctx, item) }
func (m *mockRepo) Delete(ctx context.Context, id uint) error  { return m.deleteFn(ctx, id) }
func (m *mockRepo) AdjustQuantity(ctx context.Context, id uint, delta int) (*Item, error) {
	return m.adjustQuantityFn(ctx, id, delta)
}
func (m *mockRepo) ListLowStock(ctx context.Context) ([]Item, error) {
	return m.listLowStockFn(ctx)
}
func (m *mockRepo) GetAlert(ctx context.Context, itemID uint) (*StockAlert, error) {
	return m.getAlertFn(ctx, itemID)
}
func (m *mockRepo) UpsertAlert(ctx context.Context, itemID uint, sentAt time.Time) error {
	return m.upsertAlertFn(ctx, itemID, sentAt)
}

func alertConfig() *config.Config {
	return &config.Config{
		StockAlertCooldownHours: 24,
		StockAlertRecipient:     "ops@example.com",
	}
}

// --- tests ---

func TestCreateItem_DuplicateSKURejected(t *testing.T) {
	repo := &mockRepo{
		getBySKUFn: func(ctx context.Context, sku string) (*Item, error) {
			return &Item{ID: 1, SKU: sku}, nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{}, alertConfig())

	_, err := svc.CreateItem(context.Background(), CreateItemRequest{SKU: "SKU-1", Name: "Bolts"}, 1, "")
	if !errors.Is(err, ErrSKUTaken) {
		t.Fatalf("err = %v, want ErrSKUTaken", err)
	}
}

func TestCreateItem_NegativeQuantityRejected(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockAuditSvc{}, alertConfig())

	_, err := svc.CreateItem(context.Background(), CreateItemRequest{SKU: "SKU-1", Name: "Bolts", Quantity: -1}, 1, "")
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}
}

func TestAdjustStock_InsufficientStock(t *testing.T) {
	repo := &mockRepo{
		adjustQuantityFn: func(ctx context.Context, id uint, delta int) (*Item, error) {
			return nil, ErrInsufficientStock
		},
	}
	svc := NewService(repo, &mockAuditSvc{}, alertConfig())

	_, err := svc.AdjustStock(context.Background(), 1, AdjustStockRequest{Delta: -100}, 1, "")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
}

func TestAdjustStock_MissingItem(t *testing.T) {
	repo := &mockRepo{
		adjustQuantityFn: func(ctx context.Context, id uint, delta int) (*Item, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &mockAuditSvc{}, alertConfig())

	_, err := svc.AdjustStock(context.Background(), 99, AdjustStockRequest{Delta: 1}, 1, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAdjustStock_FirstLowStockRecordsAlert(t *testing.T) {
	alertRecorded := false
	repo := &mockRepo{
		adjustQuantityFn: func(ctx context.Context, id uint, delta int) (*Item, error) {
			return &Item{ID: id, SKU: "SKU-1", Name: "Bolts", Quantity: 2, ReorderLevel: 5}, nil
		},
		getAlertFn: func(ctx context.Context, itemID uint) (*StockAlert, error) {
			return nil, gorm.ErrRecordNotFound
		},
		upsertAlertFn: func(ctx context.Context, itemID uint, sentAt time.Time) error {
			alertRecorded = true
			return nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{}, alertConfig())

	if _, err := svc.AdjustStock(context.Background(), 1, AdjustStockRequest{Delta: -3}, 1, ""); err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}
	if !alertRecorded {
		t.Fatal("expected a low-stock alert to be recorded")
	}
}

func TestAdjustStock_AlertThrottledWithinCooldown(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	alertRecorded := false
	repo := &mockRepo{
		adjustQuantityFn: func(ctx context.Context, id uint, delta int) (*Item, error) {
			return &Item{ID: id, SKU: "SKU-1", Name: "Bolts", Quantity: 2, ReorderLevel: 5}, nil
		},
		getAlertFn: func(ctx context.Context, itemID uint) (*StockAlert, error) {
			// Last alert went out two hours ago, inside the 24h cooldown.
			return &StockAlert{ItemID: itemID, LastSentAt: now.Add(-2 * time.Hour)}, nil
		},
		upsertAlertFn: func(ctx context.Context, itemID uint, sentAt time.Time) error {
			alertRecorded = true
			return nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{}, alertConfig())
	svc.now = func() time.Time { return now }

	if _, err := svc.AdjustStock(context.Background(), 1, AdjustStockRequest{Delta: -1}, 1, ""); err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}
	if alertRecorded {
		t.Fatal("alert sent again inside the cooldown window")
	}
}

func TestAdjustStock_AlertResentAfterCooldown(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	alertRecorded := false
	repo := &mockRepo{
		adjustQuantityFn: func(ctx context.Context, id uint, delta int) (*Item, error) {
			return &Item{ID: id, SKU: "SKU-1", Name: "Bolts", Quantity: 2, ReorderLevel: 5}, nil
		},
		getAlertFn: func(ctx context.Context, itemID uint) (*StockAlert, error) {
			return &StockAlert{ItemID: itemID, LastSentAt: now.Add(-25 * time.Hour)}, nil
		},
		upsertAlertFn: func(ctx context.Context, itemID uint, sentAt time.Time) error {
			alertRecorded = true
			return nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{}, alertConfig())
	svc.now = func() time.Time { return now }

	if _, err := svc.AdjustStock(context.Background(), 1, AdjustStockRequest{Delta: -1}, 1, ""); err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}
	if !alertRecorded {
		t.Fatal("expected the alert to be resent after the cooldown")
	}
}

func TestAdjustStock_NoAlertAboveReorderLevel(t *testing.T) {
	alertChecked := false
	repo := &mockRepo{
		adjustQuantityFn: func(ctx context.Context, id uint, delta int) (*Item, error) {
			return &Item{ID: id, SKU: "SKU-1", Name: "Bolts", Quantity: 50, ReorderLevel: 5}, nil
		},
		getAlertFn: func(ctx context.Context, itemID uint) (*StockAlert, error) {
			alertChecked = true
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &mockAuditSvc{}, alertConfig())

	if _, err := svc.AdjustStock(context.Background(), 1, AdjustStockRequest{Delta: 10}, 1, ""); err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}
	if alertChecked {
		t.Fatal("alert state consulted although the item is not low on stock")
	}
}
