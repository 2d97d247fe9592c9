package participant

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Karthik0956A/event-rsvp-backend/internal/event"
)

type Repository interface {
	CreateWithCapacityCheck(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id uint) (*Participant, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (*Participant, error)
	ListByEvent(ctx context.Context, eventID uint) ([]Participant, error)
	ListByUser(ctx context.Context, userID uint) ([]Participant, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ===========================
// 🎯 Create RSVP under the capacity invariant
//
// The whole check-then-insert runs in one transaction holding a row lock
// (SELECT ... FOR UPDATE) on the event. Concurrent RSVPs for the same event
// queue on that lock, so the participant count observed here cannot be
// invalidated before the insert commits. Event title/date snapshots are
// filled from the locked row.
func (r *repository) CreateWithCapacityCheck(ctx context.Context, p *Participant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev event.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ev, p.EventID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		var existing Participant
		err = tx.Where("event_id = ? AND user_id = ?", p.EventID, p.UserID).First(&existing).Error
		if err == nil {
			return ErrAlreadyRSVPd
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if ev.MaxParticipants != nil {
			var count int64
			if err := tx.Model(&Participant{}).
				Where("event_id = ?", p.EventID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*ev.MaxParticipants) {
				return ErrEventFull
			}
		}

		p.EventTitle = ev.Title
		p.EventDate = ev.Date

		if err := tx.Create(p).Error; err != nil {
			// Unique index backstop, in case the store ever bypasses the lock
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRSVPd
			}
			return err
		}
		return nil
	})
}

// ===========================
// 🔍 Get Participant by ID
func (r *repository) GetByID(ctx context.Context, id uint) (*Participant, error) {
	var p Participant
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ===========================
// 🔍 Find by (event, user), unique by index so First is exact
func (r *repository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*Participant, error) {
	var p Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ===========================
// 📄 List Participants for an Event
func (r *repository) ListByEvent(ctx context.Context, eventID uint) ([]Participant, error) {
	var participants []Participant
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&participants).Error
	return participants, err
}

// ===========================
// 📄 List a User's RSVPs
func (r *repository) ListByUser(ctx context.Context, userID uint) ([]Participant, error) {
	var participants []Participant
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&participants).Error
	return participants, err
}

// ===========================
// ❌ Delete Participant
func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Participant{}, id).Error
}
