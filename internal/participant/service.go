package participant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Karthik0956A/event-rsvp-backend/internal/auditlog"
	"github.com/Karthik0956A/event-rsvp-backend/utils"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotFound      = errors.New("RSVP not found")
	ErrAlreadyRSVPd  = errors.New("already RSVP'd to this event")
	ErrEventFull     = errors.New("event is full")
	ErrForbidden     = errors.New("you can only cancel your own RSVP")
)

// Service owns every mutation of the event and participant relationship
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
// 🎯 Create RSVP
//
// The repository serializes the capacity and duplicate checks against the
// event row; this layer supplies the user snapshot and the audit trail.
func (s *Service) CreateRSVP(ctx context.Context, eventID, userID uint, userName, userEmail, ip string) (*Participant, error) {
	p := &Participant{
		EventID:          eventID,
		UserID:           userID,
		UserName:         userName,
		UserEmail:        userEmail,
		ConfirmationCode: uuid.NewString(),
	}

	if err := s.Repo.CreateWithCapacityCheck(ctx, p); err != nil {
		s.AuditSvc.LogAction(ctx, &userID, &eventID, "RSVP_CREATED",
			map[string]interface{}{"error": err.Error()},
			ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, &eventID, "RSVP_CREATED",
		map[string]interface{}{
			"participantId":    p.ID,
			"eventTitle":       p.EventTitle,
			"confirmationCode": p.ConfirmationCode,
		},
		ip, "success")

	utils.PublishActivity(utils.ActivityMessage{
		Action:     "rsvp_created",
		EventID:    eventID,
		EventTitle: p.EventTitle,
		ActorID:    userID,
		Message:    fmt.Sprintf("%s RSVP'd to %s", userName, p.EventTitle),
	})

	return p, nil
}

// ===========================
// 📄 List Participants for an Event
func (s *Service) GetParticipantsByEvent(ctx context.Context, eventID uint) ([]Participant, error) {
	return s.Repo.ListByEvent(ctx, eventID)
}

// ===========================
// 📄 My RSVPs
func (s *Service) GetMyRSVPs(ctx context.Context, userID uint) ([]Participant, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// ===========================
// ❌ Cancel RSVP by Participant ID (owner only)
func (s *Service) CancelRSVP(ctx context.Context, id, callerID uint, ip string) error {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if p.UserID != callerID {
		s.AuditSvc.LogAction(ctx, &callerID, &p.EventID, "RSVP_CANCELLED",
			map[string]interface{}{"participantId": id, "error": "not the owner"},
			ip, "failure")
		return ErrForbidden
	}

	return s.deleteParticipant(ctx, p, callerID, ip)
}

// ===========================
// ❌ Cancel RSVP by (event, user) pair
//
// Only self-cancellation is allowed on this route. The composite unique
// index guarantees at most one matching row, so the zero/multiple-match
// ambiguity of a secondary-key lookup cannot arise: zero maps to NotFound.
func (s *Service) CancelRSVPByEventAndUser(ctx context.Context, eventID, userID, callerID uint, ip string) error {
	if userID != callerID {
		return ErrForbidden
	}

	p, err := s.Repo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.deleteParticipant(ctx, p, callerID, ip)
}

func (s *Service) deleteParticipant(ctx context.Context, p *Participant, callerID uint, ip string) error {
	if err := s.Repo.Delete(ctx, p.ID); err != nil {
		s.AuditSvc.LogAction(ctx, &callerID, &p.EventID, "RSVP_CANCELLED",
			map[string]interface{}{"participantId": p.ID, "error": err.Error()},
			ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(ctx, &callerID, &p.EventID, "RSVP_CANCELLED",
		map[string]interface{}{"participantId": p.ID, "eventTitle": p.EventTitle},
		ip, "success")

	utils.PublishActivity(utils.ActivityMessage{
		Action:     "rsvp_cancelled",
		EventID:    p.EventID,
		EventTitle: p.EventTitle,
		ActorID:    callerID,
		Message:    fmt.Sprintf("%s cancelled their RSVP for %s", p.UserName, p.EventTitle),
	})

	return nil
}
