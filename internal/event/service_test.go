package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

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
	createFn             func(ctx context.Context, e *Event) error
	getByIDFn            func(ctx context.Context, id uint) (*Event, error)
	listFn               func(ctx context.Context, limit, offset int, search string) ([]Event, error)
	saveFn               func(ctx context.Context, e *Event) error
	deleteCascadeFn      func(ctx context.Context, id uint) error
	countParticipantsFn  func(ctx context.Context, eventID uint) (int, error)
	participantUserIDsFn func(ctx context.Context, eventID uint) ([]uint, error)
	getStatsFn           func(ctx context.Context) (*EventStatsResponse, error)
}

func (m *mockRepo) Create(ctx context.Context, e *Event) error { return m.createFn(ctx, e) }
func (m *mockRepo) GetByID(ctx context.Context, id uint) (*Event, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) List(ctx context.Context, limit, offset int, search string) ([]Event, error) {
	return m.listFn(ctx, limit, offset, search)
}
func (m *mockRepo) SaveWithCapacityGuard(ctx context.Context, e *Event) error {
	return m.saveFn(ctx, e)
}
func (m *mockRepo) DeleteCascade(ctx context.Context, id uint) error {
	return m.deleteCascadeFn(ctx, id)
}
func (m *mockRepo) CountParticipants(ctx context.Context, eventID uint) (int, error) {
	if m.countParticipantsFn != nil {
		return m.countParticipantsFn(ctx, eventID)
	}
	return 0, nil
}
func (m *mockRepo) ParticipantUserIDs(ctx context.Context, eventID uint) ([]uint, error) {
	if m.participantUserIDsFn != nil {
		return m.participantUserIDsFn(ctx, eventID)
	}
	return nil, nil
}
func (m *mockRepo) GetStats(ctx context.Context) (*EventStatsResponse, error) {
	return m.getStatsFn(ctx)
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

// lockedEventStore mimics the row-lock serialization the real repository
// performs: RSVP inserts and the cascade delete contend on the same per-event
// lock, and the cascade holds it across the participant sweep and the event
// delete. RSVPs queued behind a finished delete see the event gone.
type lockedEventStore struct {
	mu           sync.Mutex
	eventExists  bool
	participants map[uint]struct{}
}

func newLockedEventStore() *lockedEventStore {
	return &lockedEventStore{eventExists: true, participants: map[uint]struct{}{}}
}

func (s *lockedEventStore) rsvp(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.eventExists {
		return gorm.ErrRecordNotFound
	}
	s.participants[userID] = struct{}{}
	return nil
}

func (s *lockedEventStore) deleteCascade() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.eventExists {
		return gorm.ErrRecordNotFound
	}
	s.participants = map[uint]struct{}{}
	s.eventExists = false
	return nil
}

// --- tests ---

func TestCreateEvent_InvalidDateRejected(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockAuditSvc{})

	req := &CreateEventRequest{
		Title:    "Go Meetup",
		Date:     "2025/01/01 09:00",
		Location: "Berlin",
	}
	_, err := svc.CreateEvent(context.Background(), req, 1, "alice", "")
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

func TestCreateEvent_NonPositiveCapacityRejected(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockAuditSvc{})

	req := &CreateEventRequest{
		Title:           "Go Meetup",
		Date:            "2025-01-01T09:00:00Z",
		Location:        "Berlin",
		MaxParticipants: intPtr(0),
	}
	_, err := svc.CreateEvent(context.Background(), req, 1, "alice", "")
	if !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("err = %v, want ErrInvalidCapacity", err)
	}
}

func TestCreateEvent_StoresCreatorSnapshot(t *testing.T) {
	var stored *Event
	repo := &mockRepo{
		createFn: func(ctx context.Context, e *Event) error {
			stored = e
			return nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	req := &CreateEventRequest{
		Title:    "Go Meetup",
		Date:     "2025-01-01T09:00:00Z",
		Location: "Berlin",
	}
	ev, err := svc.CreateEvent(context.Background(), req, 7, "alice", "")
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if stored.CreatedBy != 7 || stored.CreatorName != "alice" {
		t.Fatalf("creator snapshot = (%d, %q), want (7, alice)", stored.CreatedBy, stored.CreatorName)
	}
	if ev.MaxParticipants != nil {
		t.Fatal("capacity should stay nil (unlimited) when omitted")
	}
}

func TestUpdateEvent_NonCreatorForbidden(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{ID: id, CreatedBy: 1}, nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	_, err := svc.UpdateEvent(context.Background(), 3, &UpdateEventRequest{Title: strPtr("new")}, 2, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestUpdateEvent_TitleOnlyPreservesCapacity(t *testing.T) {
	var saved *Event
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{
				ID:              id,
				Title:           "old",
				CreatedBy:       1,
				MaxParticipants: intPtr(25),
				Date:            time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
			}, nil
		},
		saveFn: func(ctx context.Context, e *Event) error {
			saved = e
			return nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	ev, err := svc.UpdateEvent(context.Background(), 3, &UpdateEventRequest{Title: strPtr("new")}, 1, "")
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if ev.Title != "new" {
		t.Fatalf("title = %q, want %q", ev.Title, "new")
	}
	if saved.MaxParticipants == nil || *saved.MaxParticipants != 25 {
		t.Fatal("capacity changed on a title-only update")
	}
}

func TestUpdateEvent_CapacityShrinkBelowCountRejected(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{ID: id, CreatedBy: 1, MaxParticipants: intPtr(10)}, nil
		},
		saveFn: func(ctx context.Context, e *Event) error {
			return ErrCapacityBelowCount
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	_, err := svc.UpdateEvent(context.Background(), 3, &UpdateEventRequest{MaxParticipants: intPtr(2)}, 1, "")
	if !errors.Is(err, ErrCapacityBelowCount) {
		t.Fatalf("err = %v, want ErrCapacityBelowCount", err)
	}
}

func TestDeleteEvent_NonCreatorForbidden(t *testing.T) {
	cascaded := false
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{ID: id, CreatedBy: 1}, nil
		},
		deleteCascadeFn: func(ctx context.Context, id uint) error {
			cascaded = true
			return nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	err := svc.DeleteEvent(context.Background(), 3, 2, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if cascaded {
		t.Fatal("cascade ran despite ownership failure")
	}
}

func TestDeleteEvent_CascadesParticipants(t *testing.T) {
	cascadedID := uint(0)
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{ID: id, Title: "Go Meetup", CreatedBy: 1}, nil
		},
		participantUserIDsFn: func(ctx context.Context, eventID uint) ([]uint, error) {
			return []uint{4, 5, 6}, nil
		},
		deleteCascadeFn: func(ctx context.Context, id uint) error {
			cascadedID = id
			return nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	if err := svc.DeleteEvent(context.Background(), 3, 1, ""); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if cascadedID != 3 {
		t.Fatalf("cascaded event id = %d, want 3", cascadedID)
	}
}

func TestDeleteEvent_NoOrphanedRSVPsUnderConcurrency(t *testing.T) {
	const attempts = 50

	store := newLockedEventStore()
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{ID: id, Title: "Go Meetup", CreatedBy: 1}, nil
		},
		deleteCascadeFn: func(ctx context.Context, id uint) error {
			return store.deleteCascade()
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			err := store.rsvp(userID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				t.Errorf("rsvp: unexpected error: %v", err)
			}
		}(uint(i + 1))
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := svc.DeleteEvent(context.Background(), 3, 1, ""); err != nil {
			t.Errorf("DeleteEvent failed: %v", err)
		}
	}()
	wg.Wait()

	if store.eventExists {
		t.Fatal("event still exists after delete")
	}
	if n := len(store.participants); n != 0 {
		t.Fatalf("%d participant rows survived the cascade", n)
	}
}

func TestDeleteEvent_AlreadyGoneMapsToNotFound(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{ID: id, CreatedBy: 1}, nil
		},
		deleteCascadeFn: func(ctx context.Context, id uint) error {
			// Another request deleted the event between the ownership
			// check and the cascade taking the row lock.
			return gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	err := svc.DeleteEvent(context.Background(), 3, 1, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteEvent_FanOutLookupFailureStillDeletes(t *testing.T) {
	cascaded := false
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return &Event{ID: id, Title: "Go Meetup", CreatedBy: 1}, nil
		},
		participantUserIDsFn: func(ctx context.Context, eventID uint) ([]uint, error) {
			return nil, errors.New("connection reset")
		},
		deleteCascadeFn: func(ctx context.Context, id uint) error {
			cascaded = true
			return nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	if err := svc.DeleteEvent(context.Background(), 3, 1, ""); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if !cascaded {
		t.Fatal("cascade did not run")
	}
}

func TestGetEventByID_Missing(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Event, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	_, err := svc.GetEventByID(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
