package app

import (
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
	"github.com/a-mhatre/studylog-tui/internal/services"
	"github.com/a-mhatre/studylog-tui/internal/services/compute"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// DataComputedMsg carries a finished aggregation pass to the tabs.
type DataComputedMsg struct {
	Result compute.Result
}

// SheetUpdatedMsg signals that a sheet source was restored or refreshed.
type SheetUpdatedMsg struct {
	Source    string
	FetchedAt time.Time
	Restored  bool
}

// StudyDataLoadedMsg carries the tests series and syllabus coverage.
type StudyDataLoadedMsg struct {
	Tests    []models.TestPoint
	Syllabus []models.SyllabusCoverage
}

// IntervalChangedMsg signals that the aggregation interval changed.
type IntervalChangedMsg struct {
	Interval models.Interval
}

// RefreshMsg requests a refresh of the sheet data.
type RefreshMsg struct{}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
