package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/a-mhatre/studylog-tui/internal/models"
	"github.com/a-mhatre/studylog-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// recomputeCmd schedules an aggregation pass over the current data.
func recomputeCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Recompute()
		return StartLoadingMsg{Resource: "compute"}
	}
}

// cycleIntervalCmd advances the aggregation interval and recomputes.
func cycleIntervalCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		next := mgr.CycleInterval()
		return IntervalChangedMsg{Interval: next}
	}
}

// refreshCmd forces a fetch of every configured sheet tab.
func refreshCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Refresh()
		return StartLoadingMsg{Resource: "fetch"}
	}
}

// tabSwitchCmd returns a command that activates the given tab.
func tabSwitchCmd(tab TabID) tea.Cmd {
	return func() tea.Msg {
		return TabSwitchMsg{Tab: tab}
	}
}

// toggleHelpCmd returns a command that toggles the help overlay.
func toggleHelpCmd() tea.Cmd {
	return func() tea.Msg {
		return ToggleHelpMsg{}
	}
}

// requestRefreshCmd returns a command that asks for a sheet refresh.
func requestRefreshCmd() tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{}
	}
}

// loadStudyDataCmd derives the tests series and syllabus coverage.
func loadStudyDataCmd(mgr *services.Manager, interval models.Interval) tea.Cmd {
	return func() tea.Msg {
		return StudyDataLoadedMsg{
			Tests:    mgr.TestSeries(interval),
			Syllabus: mgr.Syllabus(),
		}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// Recompute returns a command that schedules an aggregation pass.
func (c *Commands) Recompute() tea.Cmd {
	return recomputeCmd(c.manager)
}

// CycleInterval returns a command that advances the aggregation interval.
func (c *Commands) CycleInterval() tea.Cmd {
	return cycleIntervalCmd(c.manager)
}

// Refresh returns a command that refetches every configured tab.
func (c *Commands) Refresh() tea.Cmd {
	return refreshCmd(c.manager)
}

// LoadStudyData returns a command that derives tests and syllabus data.
func (c *Commands) LoadStudyData(interval models.Interval) tea.Cmd {
	return loadStudyDataCmd(c.manager, interval)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}
