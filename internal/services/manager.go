// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/a-mhatre/studylog-tui/internal/aggregate"
	"github.com/a-mhatre/studylog-tui/internal/config"
	"github.com/a-mhatre/studylog-tui/internal/db"
	"github.com/a-mhatre/studylog-tui/internal/models"
	"github.com/a-mhatre/studylog-tui/internal/services/compute"
	"github.com/a-mhatre/studylog-tui/internal/services/source"
	"github.com/a-mhatre/studylog-tui/internal/sheet"
)

// Column names of the tests and syllabus tabs.
const (
	scoreColumn   = "Score"
	subjectColumn = "Subject"
	statusColumn  = "Status"
)

type (
	// SheetUpdatedEvent is emitted when a sheet is restored or refreshed.
	SheetUpdatedEvent struct {
		Source    string
		FetchedAt time.Time
		Restored  bool
	}

	// ComputeDoneEvent is emitted when an aggregation pass finishes.
	ComputeDoneEvent struct {
		Result compute.Result
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SheetUpdatedEvent) isServiceEvent() {}
func (ComputeDoneEvent) isServiceEvent()  {}
func (ErrorEvent) isServiceEvent()        {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	database    *db.DB
	source      *source.Service
	compute     *compute.Service
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	interval    models.Interval
	lastGoalDay models.BucketKey
	goalHit     bool
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
		interval:  cfg.DefaultInterval,
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.compute = compute.New()

	m.source, err = source.New(sheet.NewClient(), m.database, source.Config{
		LogSheetID:      cfg.LogSheetID,
		TestsSheetID:    cfg.TestsSheetID,
		BooksGID:        cfg.BooksGID,
		SyllabusGID:     cfg.SyllabusGID,
		LocalDataPath:   cfg.LocalDataPath,
		RefreshInterval: cfg.RefreshInterval,
	})
	if err != nil {
		_ = m.database.Close()
		return nil, err
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.source.Events():
			m.handleSourceEvent(event)

		case result := <-m.compute.Results():
			m.handleComputeResult(result)

		case <-m.stopChan:
			return
		}
	}
}

// handleSourceEvent converts and broadcasts data source events, kicking off a
// recompute whenever the aggregation inputs changed.
func (m *Manager) handleSourceEvent(event source.Event) {
	switch event.Type {
	case source.EventSheetRestored, source.EventSheetUpdated:
		m.broadcast(SheetUpdatedEvent{
			Source:    event.Source,
			FetchedAt: event.FetchedAt,
			Restored:  event.Type == source.EventSheetRestored,
		})

		if event.Source == db.SourceSessions || event.Source == db.SourceBooks {
			m.Recompute()
		}

	case source.EventError:
		m.broadcast(ErrorEvent{
			Service: "source",
			Error:   event.Error,
		})
	}
}

func (m *Manager) handleComputeResult(result compute.Result) {
	// A result can be superseded while queued; only the latest pass is
	// allowed to reach subscribers.
	if !m.compute.Latest(result.Token) {
		return
	}
	m.broadcast(ComputeDoneEvent{Result: result})
	m.checkGoalNotification(result)
}

// checkGoalNotification fires a desktop notification the first time the
// daily pages goal is reached on a given day.
func (m *Manager) checkGoalNotification(result compute.Result) {
	goal := m.cfg.DailyPagesGoal
	if goal <= 0 || result.Interval != models.IntervalDaily || result.Bundle == nil {
		return
	}

	today := aggregate.KeyFor(time.Now(), models.IntervalDaily)
	var pages int
	for _, bucket := range result.Bundle.ChartData {
		if bucket.Key == today {
			pages = bucket.TotalPages
			break
		}
	}

	m.mu.Lock()
	if m.lastGoalDay != today {
		m.lastGoalDay = today
		m.goalHit = false
	}
	alreadyHit := m.goalHit
	if float64(pages) >= goal {
		m.goalHit = true
	}
	hitNow := m.goalHit
	m.mu.Unlock()

	if hitNow && !alreadyHit {
		title := "Daily reading goal reached"
		body := fmt.Sprintf("%d pages today, goal was %.0f.", pages, goal)
		_ = beeep.Notify(title, body, "")
	}
}

// Recompute schedules an aggregation pass over the current sessions sheet and
// book master for the active interval.
func (m *Manager) Recompute() uint64 {
	sessions := m.source.Sheet(db.SourceSessions)
	master := sheet.BookMasterFromSheet(m.source.Sheet(db.SourceBooks))
	return m.compute.Request(sessions, master, m.Interval(), time.Now())
}

// Interval returns the active aggregation interval.
func (m *Manager) Interval() models.Interval {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.interval
}

// SetInterval switches the aggregation interval and schedules a recompute.
func (m *Manager) SetInterval(interval models.Interval) {
	m.mu.Lock()
	m.interval = interval
	m.mu.Unlock()
	m.Recompute()
}

// CycleInterval advances daily, weekly, monthly, yearly and wraps around.
func (m *Manager) CycleInterval() models.Interval {
	next := m.Interval().Next()
	m.SetInterval(next)
	return next
}

// Refresh forces a fetch of every configured tab.
func (m *Manager) Refresh() {
	go m.source.RefreshAll(context.Background())
}

// Sheet returns the latest sheet for a snapshot source.
func (m *Manager) Sheet(src string) *models.Sheet {
	return m.source.Sheet(src)
}

// FetchedAt returns when a snapshot source was last loaded.
func (m *Manager) FetchedAt(src string) time.Time {
	return m.source.FetchedAt(src)
}

// TestSeries returns mean test scores per period from the tests sheet.
func (m *Manager) TestSeries(interval models.Interval) []models.TestPoint {
	return aggregate.TestSeries(m.source.Sheet(db.SourceTests), scoreColumn, interval)
}

// Syllabus returns per-subject completion from the syllabus sheet.
func (m *Manager) Syllabus() []models.SyllabusCoverage {
	return aggregate.SyllabusProgress(m.source.Sheet(db.SourceSyllabus), subjectColumn, statusColumn)
}

// Target converts the daily pages goal into the given interval. Zero when no
// goal is configured.
func (m *Manager) Target(interval models.Interval) float64 {
	return aggregate.TargetFor(m.cfg.DailyPagesGoal, interval, time.Now())
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.source.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
