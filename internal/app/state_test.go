package app

import (
	"testing"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/db"
	"github.com/a-mhatre/studylog-tui/internal/models"
	"github.com/a-mhatre/studylog-tui/internal/services/compute"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.Bundle() != nil {
		t.Error("Bundle should be nil before the first pass")
	}
	if !s.IsInitialLoading() {
		t.Error("Initial loading should be true")
	}
	if s.Interval() != models.IntervalDaily {
		t.Errorf("Interval = %v, want daily", s.Interval())
	}
}

func TestState_SetLoading(t *testing.T) {
	s := NewState()

	s.SetLoading("fetch", true)
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true")
	}

	s.SetLoading("fetch", false)
	// Initial is still set
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true (initial is set)")
	}

	s.SetLoading("initial", false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}
}

func TestState_SetComputeResult(t *testing.T) {
	s := NewState()

	result := compute.Result{
		Token:    1,
		Interval: models.IntervalWeekly,
		Bundle: &models.ComputedBundle{
			Version:   "v1",
			Interval:  models.IntervalWeekly,
			ChartData: []*models.BucketAggregate{models.NewBucketAggregate(models.BucketKey{Year: 2025, Month: 1, Day: 6})},
		},
		Rollups: []models.BookRollup{{BookID: "b1"}},
		Totals:  models.Totals{TotalBooks: 1},
	}

	s.SetComputeResult(result)

	if s.IsInitialLoading() {
		t.Error("initial loading should clear once a pass lands")
	}
	if s.Interval() != models.IntervalWeekly {
		t.Errorf("Interval = %v, want weekly", s.Interval())
	}
	if s.Bundle().Version != "v1" {
		t.Errorf("Bundle version = %q", s.Bundle().Version)
	}
	if len(s.Rollups()) != 1 || s.Totals().TotalBooks != 1 {
		t.Errorf("Rollups = %+v, Totals = %+v", s.Rollups(), s.Totals())
	}
	if s.TimeSinceUpdate() < 0 {
		t.Error("TimeSinceUpdate should be non-negative")
	}
}

func TestState_StudyData(t *testing.T) {
	s := NewState()

	tests := []models.TestPoint{{Mean: 85, Count: 2}}
	syllabus := []models.SyllabusCoverage{{Subject: "Algebra", Completed: 2, Total: 3, Percent: 67}}
	s.SetStudyData(tests, syllabus)

	if len(s.Tests()) != 1 || s.Tests()[0].Mean != 85 {
		t.Errorf("Tests() = %+v", s.Tests())
	}
	if len(s.Syllabus()) != 1 || s.Syllabus()[0].Subject != "Algebra" {
		t.Errorf("Syllabus() = %+v", s.Syllabus())
	}
}

func TestState_FetchedAt(t *testing.T) {
	s := NewState()

	if !s.FetchedAt(db.SourceSessions).IsZero() {
		t.Error("unseen source should have a zero fetch time")
	}

	at := time.Date(2025, 1, 2, 12, 0, 0, 0, time.Local)
	s.SetFetchedAt(db.SourceSessions, at)
	if !s.FetchedAt(db.SourceSessions).Equal(at) {
		t.Errorf("FetchedAt = %v, want %v", s.FetchedAt(db.SourceSessions), at)
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "test", time.Minute)
	if id == "" {
		t.Error("AddNotification returned empty ID")
	}

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("GetNotifications len = %d, want 1", len(notifs))
	}
	if notifs[0].Message != "test" {
		t.Errorf("Notification message = %s, want test", notifs[0].Message)
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("Notification should be removed")
	}
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	s := NewState()

	// Expired
	s.notifications = append(s.notifications, Notification{
		ID:        "expired",
		CreatedAt: time.Now().Add(-2 * time.Minute),
		Duration:  time.Minute,
	})

	// Active
	s.notifications = append(s.notifications, Notification{
		ID:        "active",
		CreatedAt: time.Now(),
		Duration:  time.Minute,
	})

	s.ClearExpiredNotifications()

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != "active" {
		t.Errorf("Expected active notification, got %s", notifs[0].ID)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("loading...")
	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].ID != LoadingNotificationID {
		t.Errorf("Expected ID %s, got %s", LoadingNotificationID, notifs[0].ID)
	}
	if notifs[0].Message != "loading..." {
		t.Errorf("Expected message loading..., got %s", notifs[0].Message)
	}

	// Update message
	s.SetLoadingNotification("still loading...")
	notifs = s.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification after update")
	}
	if notifs[0].Message != "still loading..." {
		t.Errorf("Expected message still loading..., got %s", notifs[0].Message)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("Loading notification should be cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		t    NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationType(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
