package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/Karthik0956A/event-rsvp-backend/utils"
)

var ErrNotFound = errors.New("notification not found")

type Service interface {
	Notify(ctx context.Context, userID uint, title, message, category string, eventID *uint) error
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]InAppNotification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkAsRead(ctx context.Context, id uint, userID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Notify(ctx context.Context, userID uint, title, message, category string, eventID *uint) error {
	return s.repo.Create(ctx, &InAppNotification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Category: category,
		EventID:  eventID,
	})
}

func (s *service) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]InAppNotification, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *service) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, id uint, userID uint) error {
	if err := s.repo.MarkAsRead(ctx, id, userID); err != nil {
		return ErrNotFound
	}
	return nil
}

// ===========================
// 🛠 Kafka activity consumer
// ===========================

// StartKafkaConsumer reads activity messages and fans them out as
// in-app notifications to each target user. Runs until ctx is done.
func StartKafkaConsumer(ctx context.Context, svc Service, groupID string) {
	reader := utils.NewActivityReader(groupID)
	if reader == nil {
		log.Println("⚠️ Kafka not configured, in-app notifications disabled")
		return
	}

	go func() {
		defer reader.Close()
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("❌ Kafka read error: %v", err)
				continue
			}

			var act utils.ActivityMessage
			if err := json.Unmarshal(m.Value, &act); err != nil {
				log.Printf("❌ Invalid activity message: %v", err)
				continue
			}

			title, category := describeActivity(act.Action)
			for _, userID := range act.TargetIDs {
				var eventID *uint
				if act.EventID != 0 {
					id := act.EventID
					eventID = &id
				}
				if err := svc.Notify(ctx, userID, title, act.Message, category, eventID); err != nil {
					log.Printf("❌ Failed to store notification for user %d: %v", userID, err)
				}
			}
		}
	}()
}

func describeActivity(action string) (title, category string) {
	switch action {
	case "rsvp_created":
		return "New RSVP", "rsvp"
	case "rsvp_cancelled":
		return "RSVP cancelled", "rsvp"
	case "event_deleted":
		return "Event cancelled", "event"
	case "event_updated":
		return "Event updated", "event"
	default:
		return "Activity", "system"
	}
}
