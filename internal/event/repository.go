package event

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id uint) (*Event, error)
	List(ctx context.Context, limit, offset int, search string) ([]Event, error)
	SaveWithCapacityGuard(ctx context.Context, e *Event) error
	DeleteCascade(ctx context.Context, id uint) error
	CountParticipants(ctx context.Context, eventID uint) (int, error)
	ParticipantUserIDs(ctx context.Context, eventID uint) ([]uint, error)
	GetStats(ctx context.Context) (*EventStatsResponse, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ===========================
// 🎯 Create Event
func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ===========================
// 🔍 Get Event By ID with participant count
func (r *repository) GetByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}

	count, err := r.CountParticipants(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.ParticipantCount = count

	return &e, nil
}

// ===========================
// 📄 List Events with pagination & search
func (r *repository) List(ctx context.Context, limit, offset int, search string) ([]Event, error) {
	var events []Event

	query := r.db.WithContext(ctx).Model(&Event{})
	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", ilike, ilike)
	}

	err := query.
		Order("date ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for i := range events {
		count, err := r.CountParticipants(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		events[i].ParticipantCount = count
	}

	return events, nil
}

// ===========================
// 🛠 Save Event under capacity guard
//
// The event row is locked for the duration of the check-then-save so that a
// capacity shrink cannot race against concurrent RSVP inserts, which lock the
// same row.
func (r *repository) SaveWithCapacityGuard(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, e.ID).Error; err != nil {
			return err
		}

		if e.MaxParticipants != nil {
			var count int64
			if err := tx.Table("participants").
				Where("event_id = ?", e.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if int64(*e.MaxParticipants) < count {
				return ErrCapacityBelowCount
			}
		}

		return tx.Save(e).Error
	})
}

// ===========================
// ❌ Delete Event with cascading participant removal
//
// Participants and the event go in one transaction: either everything is
// removed or nothing is, so no dangling RSVPs survive a partial failure.
// The event row is locked before the participant sweep so deletion queues
// behind in-flight RSVP inserts, which hold the same lock. Without it an
// RSVP committing between the sweep and the event delete would leave an
// orphaned participant row.
func (r *repository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&Event{}, id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM participants WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, id).Error
	})
}

// ===========================
// 🔢 Count Participants for an Event
func (r *repository) CountParticipants(ctx context.Context, eventID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("participants").
		Where("event_id = ?", eventID).
		Count(&count).Error
	return int(count), err
}

// ===========================
// 👥 Participant user IDs (notification fan-out)
func (r *repository) ParticipantUserIDs(ctx context.Context, eventID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("participants").
		Where("event_id = ?", eventID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// ===========================
// 📊 Event Dashboard Stats
type EventStatsResponse struct {
	TotalEvents       int `json:"totalEvents"`
	UpcomingEvents    int `json:"upcomingEvents"`
	TotalParticipants int `json:"totalParticipants"`
}

func (r *repository) GetStats(ctx context.Context) (*EventStatsResponse, error) {
	var stats EventStatsResponse
	var total, upcoming, participants int64

	db := r.db.WithContext(ctx)

	if err := db.Model(&Event{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&Event{}).
		Where("date >= ?", time.Now().UTC()).
		Count(&upcoming).Error; err != nil {
		return nil, err
	}
	if err := db.Table("participants").Count(&participants).Error; err != nil {
		return nil, err
	}

	stats.TotalEvents = int(total)
	stats.UpcomingEvents = int(upcoming)
	stats.TotalParticipants = int(participants)

	return &stats, nil
}
