package participant

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
// 🎯 Create RSVP - POST /participants
// @Summary RSVP to an event
// @Tags participants
// @Accept json
// @Produce json
// @Param request body CreateRSVPRequest true "event to RSVP to"
// @Success 201 {object} Participant
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /participants [post]
func (h *Handler) CreateRSVP(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	var req CreateRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventId is required"})
		return
	}

	ip := middleware.GetIPFromContext(c)

	p, err := h.Service.CreateRSVP(c.Request.Context(), req.EventID, user.ID, user.FullName, user.Email, ip)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, ErrAlreadyRSVPd), errors.Is(err, ErrEventFull):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create RSVP"})
		}
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ===========================
// 📄 List Participants - GET /participants/event/:eventId
func (h *Handler) GetParticipantsByEvent(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("eventId"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	participants, err := h.Service.GetParticipantsByEvent(c.Request.Context(), uint(eventID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch participants"})
		return
	}

	if participants == nil {
		participants = []Participant{}
	}
	c.JSON(http.StatusOK, gin.H{
		"participants": participants,
		"count":        len(participants),
	})
}

// ===========================
// 📄 My RSVPs - GET /participants/my-rsvps
func (h *Handler) GetMyRSVPs(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	rsvps, err := h.Service.GetMyRSVPs(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch RSVPs"})
		return
	}

	if rsvps == nil {
		rsvps = []Participant{}
	}
	c.JSON(http.StatusOK, gin.H{"rsvps": rsvps})
}

// ===========================
// ❌ Cancel RSVP - DELETE /participants/:id
func (h *Handler) CancelRSVP(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.CancelRSVP(c.Request.Context(), uint(id), user.ID, ip); err != nil {
		writeCancelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "RSVP cancelled"})
}

// ===========================
// ❌ Cancel RSVP by pair - DELETE /participants/event/:eventId/user/:userId
func (h *Handler) CancelRSVPByEventAndUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return
	}

	eventID, err := strconv.Atoi(c.Param("eventId"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil || userID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.CancelRSVPByEventAndUser(c.Request.Context(), uint(eventID), uint(userID), user.ID, ip); err != nil {
		writeCancelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "RSVP cancelled"})
}

func writeCancelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "RSVP not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel RSVP"})
	}
}
