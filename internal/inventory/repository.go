package inventory

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id uint) (*Item, error)
	GetBySKU(ctx context.Context, sku string) (*Item, error)
	List(ctx context.Context, category string) ([]Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uint) error
	AdjustQuantity(ctx context.Context, id uint, delta int) (*Item, error)
	ListLowStock(ctx context.Context) ([]Item, error)
	GetAlert(ctx context.Context, itemID uint) (*StockAlert, error)
	UpsertAlert(ctx context.Context, itemID uint, sentAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Item, error) {
	var item Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetBySKU(ctx context.Context, sku string) (*Item, error) {
	var item Item
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context, category string) ([]Item, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var items []Item
	err := q.Find(&items).Error
	return items, err
}

func (r *repository) Save(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustQuantity applies a signed delta under a row lock so concurrent
// adjustments cannot drive the quantity negative.
func (r *repository) AdjustQuantity(ctx context.Context, id uint, delta int) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error; err != nil {
			return err
		}
		if item.Quantity+delta < 0 {
			return ErrInsufficientStock
		}
		item.Quantity += delta
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListLowStock(ctx context.Context) ([]Item, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Where("quantity <= reorder_level").
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) GetAlert(ctx context.Context, itemID uint) (*StockAlert, error) {
	var alert StockAlert
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&alert).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *repository) UpsertAlert(ctx context.Context, itemID uint, sentAt time.Time) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"last_sent_at": sentAt}),
		}).
		Create(&StockAlert{ItemID: itemID, LastSentAt: sentAt}).Error
}
