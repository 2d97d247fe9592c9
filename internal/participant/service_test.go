package participant

import (
	"context"
	"errors"
	"sync"
	"testing"

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
	createFn             func(ctx context.Context, p *Participant) error
	getByIDFn            func(ctx context.Context, id uint) (*Participant, error)
	findByEventAndUserFn func(ctx context.Context, eventID, userID uint) (*Participant, error)
	listByEventFn        func(ctx context.Context, eventID uint) ([]Participant, error)
	listByUserFn         func(ctx context.Context, userID uint) ([]Participant, error)
	deleteFn             func(ctx context.Context, id uint) error
}

func (m *mockRepo) CreateWithCapacityCheck(ctx context.Context, p *Participant) error {
	return m.createFn(ctx, p)
}
func (m *mockRepo) GetByID(ctx context.Context, id uint) (*Participant, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*Participant, error) {
	return m.findByEventAndUserFn(ctx, eventID, userID)
}
func (m *mockRepo) ListByEvent(ctx context.Context, eventID uint) ([]Participant, error) {
	if m.listByEventFn != nil {
		return m.listByEventFn(ctx, eventID)
	}
	return nil, nil
}
func (m *mockRepo) ListByUser(ctx context.Context, userID uint) ([]Participant, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}
func (m *mockRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// capacityRepo mimics the serialized check-then-insert the real repository
// performs under the event row lock: all checks and the insert happen under
// one mutex, so it preserves the same invariants.
type capacityRepo struct {
	mu       sync.Mutex
	capacity int
	nextID   uint
	byUser   map[uint]*Participant
}

func newCapacityRepo(capacity int) *capacityRepo {
	return &capacityRepo{capacity: capacity, byUser: map[uint]*Participant{}}
}

func (r *capacityRepo) CreateWithCapacityCheck(ctx context.Context, p *Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[p.UserID]; ok {
		return ErrAlreadyRSVPd
	}
	if len(r.byUser) >= r.capacity {
		return ErrEventFull
	}

	r.nextID++
	p.ID = r.nextID
	p.EventTitle = "Go Meetup"
	r.byUser[p.UserID] = p
	return nil
}

func (r *capacityRepo) GetByID(ctx context.Context, id uint) (*Participant, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *capacityRepo) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*Participant, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *capacityRepo) ListByEvent(ctx context.Context, eventID uint) ([]Participant, error) {
	return nil, nil
}
func (r *capacityRepo) ListByUser(ctx context.Context, userID uint) ([]Participant, error) {
	return nil, nil
}
func (r *capacityRepo) Delete(ctx context.Context, id uint) error { return nil }

// --- tests ---

func TestCreateRSVP_CapacityNeverExceededUnderConcurrency(t *testing.T) {
	const capacity = 2
	const attempts = 50

	repo := newCapacityRepo(capacity)
	svc := NewService(repo, &mockAuditSvc{})

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	full := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := svc.CreateRSVP(context.Background(), 1, userID, "user", "user@example.com", "127.0.0.1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrEventFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(uint(i + 1))
	}
	wg.Wait()

	if created != capacity {
		t.Fatalf("created = %d, want %d", created, capacity)
	}
	if full != attempts-capacity {
		t.Fatalf("full rejections = %d, want %d", full, attempts-capacity)
	}
	if len(repo.byUser) != capacity {
		t.Fatalf("stored participants = %d, want %d", len(repo.byUser), capacity)
	}
}

func TestCreateRSVP_DuplicateRejected(t *testing.T) {
	repo := newCapacityRepo(10)
	svc := NewService(repo, &mockAuditSvc{})

	if _, err := svc.CreateRSVP(context.Background(), 1, 7, "alice", "alice@example.com", ""); err != nil {
		t.Fatalf("first RSVP failed: %v", err)
	}
	_, err := svc.CreateRSVP(context.Background(), 1, 7, "alice", "alice@example.com", "")
	if !errors.Is(err, ErrAlreadyRSVPd) {
		t.Fatalf("err = %v, want ErrAlreadyRSVPd", err)
	}
	if len(repo.byUser) != 1 {
		t.Fatalf("stored participants = %d, want 1", len(repo.byUser))
	}
}

func TestCreateRSVP_TwoSeatsThenFull(t *testing.T) {
	repo := newCapacityRepo(2)
	svc := NewService(repo, &mockAuditSvc{})

	for userID := uint(1); userID <= 2; userID++ {
		if _, err := svc.CreateRSVP(context.Background(), 1, userID, "u", "u@example.com", ""); err != nil {
			t.Fatalf("RSVP %d failed: %v", userID, err)
		}
	}

	_, err := svc.CreateRSVP(context.Background(), 1, 3, "late", "late@example.com", "")
	if !errors.Is(err, ErrEventFull) {
		t.Fatalf("err = %v, want ErrEventFull", err)
	}
}

func TestCreateRSVP_EventMissing(t *testing.T) {
	repo := &mockRepo{
		createFn: func(ctx context.Context, p *Participant) error {
			return ErrEventNotFound
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	_, err := svc.CreateRSVP(context.Background(), 99, 1, "u", "u@example.com", "")
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
}

func TestCreateRSVP_AssignsConfirmationCode(t *testing.T) {
	var stored *Participant
	repo := &mockRepo{
		createFn: func(ctx context.Context, p *Participant) error {
			stored = p
			return nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	p, err := svc.CreateRSVP(context.Background(), 1, 1, "u", "u@example.com", "")
	if err != nil {
		t.Fatalf("CreateRSVP failed: %v", err)
	}
	if p.ConfirmationCode == "" {
		t.Fatal("confirmation code not assigned")
	}
	if stored.ConfirmationCode != p.ConfirmationCode {
		t.Fatal("stored participant has a different confirmation code")
	}
}

func TestCancelRSVP_MissingReturnsNotFound(t *testing.T) {
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Participant, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	err := svc.CancelRSVP(context.Background(), 42, 1, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCancelRSVP_OtherUsersRSVPForbidden(t *testing.T) {
	deleted := false
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Participant, error) {
			return &Participant{ID: id, EventID: 1, UserID: 5}, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	err := svc.CancelRSVP(context.Background(), 42, 9, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if deleted {
		t.Fatal("RSVP was deleted despite ownership failure")
	}
}

func TestCancelRSVP_OwnerSucceeds(t *testing.T) {
	deleted := uint(0)
	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uint) (*Participant, error) {
			return &Participant{ID: id, EventID: 1, UserID: 9, EventTitle: "Go Meetup"}, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	if err := svc.CancelRSVP(context.Background(), 42, 9, ""); err != nil {
		t.Fatalf("CancelRSVP failed: %v", err)
	}
	if deleted != 42 {
		t.Fatalf("deleted id = %d, want 42", deleted)
	}
}

func TestCancelRSVPByEventAndUser_SelfOnly(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, &mockAuditSvc{})

	err := svc.CancelRSVPByEventAndUser(context.Background(), 1, 5, 9, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestCancelRSVPByEventAndUser_MissingPair(t *testing.T) {
	repo := &mockRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*Participant, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &mockAuditSvc{})

	err := svc.CancelRSVPByEventAndUser(context.Background(), 1, 5, 5, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
