package notification

import (
	"context"
	"errors"
	"testing"
)

type mockRepo struct {
	createFn     func(ctx context.Context, n *InAppNotification) error
	listByUserFn func(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]InAppNotification, error)
	countFn      func(ctx context.Context, userID uint) (int64, error)
	markFn       func(ctx context.Context, id uint, userID uint) error
}

func (m *mockRepo) Create(ctx context.Context, n *InAppNotification) error {
	return m.createFn(ctx, n)
}
func (m *mockRepo) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]InAppNotification, error) {
	return m.listByUserFn(ctx, userID, unreadOnly, limit)
}
func (m *mockRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return m.countFn(ctx, userID)
}
func (m *mockRepo) MarkAsRead(ctx context.Context, id uint, userID uint) error {
	return m.markFn(ctx, id, userID)
}

func TestNotify_StoresNotification(t *testing.T) {
	var stored *InAppNotification
	repo := &mockRepo{
		createFn: func(ctx context.Context, n *InAppNotification) error {
			stored = n
			return nil
		},
	}
	svc := NewService(repo)

	eventID := uint(3)
	if err := svc.Notify(context.Background(), 7, "New RSVP", "Alice RSVP'd to Go Meetup", "rsvp", &eventID); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if stored.UserID != 7 || stored.Category != "rsvp" {
		t.Fatalf("stored = %+v", stored)
	}
	if stored.EventID == nil || *stored.EventID != 3 {
		t.Fatal("event reference not stored")
	}
	if stored.IsRead {
		t.Fatal("new notification must start unread")
	}
}

func TestMarkAsRead_MissingMapsToNotFound(t *testing.T) {
	repo := &mockRepo{
		markFn: func(ctx context.Context, id uint, userID uint) error {
			return errors.New("notification not found")
		},
	}
	svc := NewService(repo)

	err := svc.MarkAsRead(context.Background(), 42, 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDescribeActivity(t *testing.T) {
	cases := []struct {
		action   string
		title    string
		category string
	}{
		{"rsvp_created", "New RSVP", "rsvp"},
		{"rsvp_cancelled", "RSVP cancelled", "rsvp"},
		{"event_deleted", "Event cancelled", "event"},
		{"event_updated", "Event updated", "event"},
		{"something_else", "Activity", "system"},
	}

	for _, tc := range cases {
		title, category := describeActivity(tc.action)
		if title != tc.title || category != tc.category {
			t.Errorf("describeActivity(%q) = (%q, %q), want (%q, %q)", tc.action, title, category, tc.title, tc.category)
		}
	}
}
