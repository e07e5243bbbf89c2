package app

import (
	"sync"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
	"github.com/a-mhatre/studylog-tui/internal/services/compute"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// State is the shared application state: the latest computed bundle and its
// companions, plus transient UI concerns. All access is mutex-guarded because
// service goroutines and the update loop both touch it.
type State struct {
	mu sync.RWMutex

	interval models.Interval
	bundle   *models.ComputedBundle
	rollups  []models.BookRollup
	totals   models.Totals
	tests    []models.TestPoint
	syllabus []models.SyllabusCoverage

	fetchedAt   map[string]time.Time
	lastUpdated time.Time

	loading map[string]bool

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		interval:      models.IntervalDaily,
		fetchedAt:     make(map[string]time.Time),
		loading:       map[string]bool{"initial": true},
		notifications: make([]Notification, 0),
	}
}

// SetLoading sets the loading state for a resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loading {
		s.loading[resource] = true
	} else {
		delete(s.loading, resource)
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.loading) > 0
}

// IsInitialLoading returns true if the first dataset has not arrived yet.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading["initial"]
}

// SetComputeResult stores a finished aggregation pass.
func (s *State) SetComputeResult(result compute.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.interval = result.Interval
	s.bundle = result.Bundle
	s.rollups = result.Rollups
	s.totals = result.Totals
	s.lastUpdated = time.Now()
	delete(s.loading, "initial")
	delete(s.loading, "compute")
}

// Bundle returns the latest computed bundle, nil before the first pass.
func (s *State) Bundle() *models.ComputedBundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle
}

// Rollups returns the latest book rollups.
func (s *State) Rollups() []models.BookRollup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rollups
}

// Totals returns the latest rollup totals.
func (s *State) Totals() models.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totals
}

// Interval returns the interval of the latest bundle.
func (s *State) Interval() models.Interval {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interval
}

// SetStudyData stores the tests series and syllabus coverage.
func (s *State) SetStudyData(tests []models.TestPoint, syllabus []models.SyllabusCoverage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tests = tests
	s.syllabus = syllabus
}

// Tests returns the latest test score series.
func (s *State) Tests() []models.TestPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tests
}

// Syllabus returns the latest syllabus coverage.
func (s *State) Syllabus() []models.SyllabusCoverage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.syllabus
}

// SetFetchedAt records when a sheet source was last loaded.
func (s *State) SetFetchedAt(source string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchedAt[source] = at
}

// FetchedAt returns when a sheet source was last loaded.
func (s *State) FetchedAt(source string) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt[source]
}

// GetLastUpdated returns the last time the computed state changed.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.lastUpdated)
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}
