package event

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Karthik0956A/event-rsvp-backend/internal/auditlog"
	"github.com/Karthik0956A/event-rsvp-backend/utils"
)

var (
	ErrNotFound           = errors.New("event not found")
	ErrForbidden          = errors.New("only the event creator may do this")
	ErrInvalidDate        = errors.New("invalid date format, use RFC 3339 (e.g. 2025-01-01T09:00:00Z)")
	ErrInvalidCapacity    = errors.New("maxParticipants must be a positive integer")
	ErrCapacityBelowCount = errors.New("maxParticipants cannot be lower than the current participant count")
)

// Service wraps business logic for events
type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service
}

func NewService(r Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
	}
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(ctx context.Context, req *CreateEventRequest, userID uint, userName string, ip string) (*Event, error) {
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &userID, nil, "EVENT_CREATED",
			map[string]interface{}{"title": req.Title, "error": "invalid date format", "date": req.Date},
			ip, "failure")
		return nil, ErrInvalidDate
	}

	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		return nil, ErrInvalidCapacity
	}

	event := &Event{
		Title:           req.Title,
		Description:     req.Description,
		Date:            date.UTC(),
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       userID,
		CreatorName:     userName,
	}

	if err := s.Repo.Create(ctx, event); err != nil {
		s.AuditSvc.LogAction(ctx, &userID, nil, "EVENT_CREATED",
			map[string]interface{}{"title": req.Title, "error": err.Error()},
			ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, &event.ID, "EVENT_CREATED",
		map[string]interface{}{
			"title":    event.Title,
			"date":     event.Date.Format(time.RFC3339),
			"location": event.Location,
		},
		ip, "success")

	return event, nil
}

// ===========================
// 🔍 Get Event by ID
func (s *Service) GetEventByID(ctx context.Context, id uint) (*Event, error) {
	event, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// ===========================
// 📄 List Events
func (s *Service) ListEvents(ctx context.Context, limit, offset int, search string) ([]Event, error) {
	return s.Repo.List(ctx, limit, offset, search)
}

// ===========================
// 📊 Dashboard Stats
func (s *Service) GetEventStats(ctx context.Context) (*EventStatsResponse, error) {
	return s.Repo.GetStats(ctx)
}

// ===========================
// 🛠 Update Event (creator only, partial update)
func (s *Service) UpdateEvent(ctx context.Context, id uint, req *UpdateEventRequest, userID uint, ip string) (*Event, error) {
	event, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if event.CreatedBy != userID {
		s.AuditSvc.LogAction(ctx, &userID, &id, "EVENT_UPDATED",
			map[string]interface{}{"error": "not the creator"},
			ip, "failure")
		return nil, ErrForbidden
	}

	changes := make(map[string]interface{})

	if req.Title != nil {
		changes["title"] = map[string]string{"from": event.Title, "to": *req.Title}
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
		changes["description"] = "updated"
	}
	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		changes["date"] = map[string]string{
			"from": event.Date.Format(time.RFC3339),
			"to":   date.UTC().Format(time.RFC3339),
		}
		event.Date = date.UTC()
	}
	if req.Location != nil {
		changes["location"] = map[string]string{"from": event.Location, "to": *req.Location}
		event.Location = *req.Location
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < 1 {
			return nil, ErrInvalidCapacity
		}
		changes["maxParticipants"] = *req.MaxParticipants
		event.MaxParticipants = req.MaxParticipants
	}

	if err := s.Repo.SaveWithCapacityGuard(ctx, event); err != nil {
		s.AuditSvc.LogAction(ctx, &userID, &id, "EVENT_UPDATED",
			map[string]interface{}{"error": err.Error()},
			ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, &id, "EVENT_UPDATED",
		map[string]interface{}{"changes": changes},
		ip, "success")

	s.notifyParticipants(ctx, event, "event_updated",
		fmt.Sprintf("%s was updated for %s", event.Title, event.Date.Format("2006-01-02")), userID)

	return event, nil
}

// ===========================
// ❌ Delete Event (creator only, cascades to participants)
func (s *Service) DeleteEvent(ctx context.Context, id uint, userID uint, ip string) error {
	event, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if event.CreatedBy != userID {
		s.AuditSvc.LogAction(ctx, &userID, &id, "EVENT_DELETED",
			map[string]interface{}{"error": "not the creator"},
			ip, "failure")
		return ErrForbidden
	}

	// Collect affected users before the rows disappear
	targetIDs, err := s.Repo.ParticipantUserIDs(ctx, id)
	if err != nil {
		log.Printf("⚠️ Event %d: participant lookup before delete failed: %v", id, err)
	}

	if err := s.Repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		s.AuditSvc.LogAction(ctx, &userID, &id, "EVENT_DELETED",
			map[string]interface{}{"title": event.Title, "error": err.Error()},
			ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(ctx, &userID, &id, "EVENT_DELETED",
		map[string]interface{}{
			"title":         event.Title,
			"cascadedRsvps": len(targetIDs),
			"date":          event.Date.Format(time.RFC3339),
		},
		ip, "success")

	utils.PublishActivity(utils.ActivityMessage{
		Action:     "event_deleted",
		EventID:    id,
		EventTitle: event.Title,
		ActorID:    userID,
		TargetIDs:  targetIDs,
		Message:    event.Title + " has been cancelled",
	})

	return nil
}

func (s *Service) notifyParticipants(ctx context.Context, event *Event, action, message string, actorID uint) {
	targetIDs, err := s.Repo.ParticipantUserIDs(ctx, event.ID)
	if err != nil || len(targetIDs) == 0 {
		return
	}
	utils.PublishActivity(utils.ActivityMessage{
		Action:     action,
		EventID:    event.ID,
		EventTitle: event.Title,
		ActorID:    actorID,
		TargetIDs:  targetIDs,
		Message:    message,
	})
}
