// Package source keeps the raw sheet data current, from the network, from a
// watched local export, and from the snapshot cache on startup.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/a-mhatre/studylog-tui/internal/db"
	"github.com/a-mhatre/studylog-tui/internal/logger"
	"github.com/a-mhatre/studylog-tui/internal/models"
	"github.com/a-mhatre/studylog-tui/internal/sheet"
)

// Event represents a data source event.
type Event struct {
	Error     error
	Sheet     *models.Sheet
	Source    string
	FetchedAt time.Time
	Type      EventType
}

// EventType defines the type of source event.
type EventType int

const (
	// EventSheetRestored indicates a sheet was restored from the snapshot
	// cache during startup.
	EventSheetRestored EventType = iota
	// EventSheetUpdated indicates a sheet was freshly fetched or reloaded
	// from the local export.
	EventSheetUpdated
	// EventError indicates a fetch or reload failed.
	EventError
)

// Config holds configuration for the source service.
type Config struct {
	LogSheetID      string
	TestsSheetID    string
	BooksGID        string
	SyllabusGID     string
	LocalDataPath   string
	RefreshInterval time.Duration
}

// Service fetches spreadsheet tabs on an interval, watches the optional local
// export, and persists every result to the snapshot cache so the next start
// renders before the first fetch completes.
type Service struct {
	mu            sync.RWMutex
	client        *sheet.Client
	database      *db.DB
	cfg           Config
	sheets        map[string]*models.Sheet
	fetchedAt     map[string]time.Time
	eventChan     chan Event
	stopChan      chan struct{}
	watcher       *fsnotify.Watcher
	debounceTimer *time.Timer
}

// New creates the source service, restores snapshots, and starts the refresh
// loop and the local file watcher.
func New(client *sheet.Client, database *db.DB, cfg Config) (*Service, error) {
	s := &Service{
		client:    client,
		database:  database,
		cfg:       cfg,
		sheets:    make(map[string]*models.Sheet),
		fetchedAt: make(map[string]time.Time),
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	s.restoreSnapshots()

	if cfg.LocalDataPath != "" {
		if err := s.startWatcher(); err != nil {
			return nil, fmt.Errorf("failed to start file watcher: %w", err)
		}
		s.reloadLocalFile()
	}

	go s.poll()

	return s, nil
}

// Events returns the event channel.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Sheet returns the latest sheet for a source, or nil before the first load.
func (s *Service) Sheet(source string) *models.Sheet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sheets[source]
}

// FetchedAt returns when a source was last loaded.
func (s *Service) FetchedAt(source string) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt[source]
}

// restoreSnapshots loads cached sheets from the database so the UI has data
// before the first network round trip.
func (s *Service) restoreSnapshots() {
	if s.database == nil {
		return
	}
	for _, source := range []string{db.SourceSessions, db.SourceBooks, db.SourceTests, db.SourceSyllabus} {
		cached, fetchedAt, err := s.database.LoadSnapshot(source)
		if err != nil {
			logger.Warn("failed to restore snapshot", "source", source, "error", err)
			continue
		}
		if cached == nil {
			continue
		}
		s.store(source, cached, fetchedAt)
		s.sendEvent(Event{Type: EventSheetRestored, Source: source, Sheet: cached, FetchedAt: fetchedAt})
	}
}

// RefreshAll fetches every configured tab. Errors on one tab do not stop the
// others.
func (s *Service) RefreshAll(ctx context.Context) {
	if s.cfg.LogSheetID != "" {
		// The local export supplies sessions when configured.
		if s.cfg.LocalDataPath == "" {
			s.fetchTab(ctx, db.SourceSessions, s.cfg.LogSheetID, "")
		}
		s.fetchTab(ctx, db.SourceBooks, s.cfg.LogSheetID, s.cfg.BooksGID)
		if s.cfg.SyllabusGID != "" {
			s.fetchTab(ctx, db.SourceSyllabus, s.cfg.LogSheetID, s.cfg.SyllabusGID)
		}
	}
	if s.cfg.TestsSheetID != "" {
		s.fetchTab(ctx, db.SourceTests, s.cfg.TestsSheetID, "")
	}
}

func (s *Service) fetchTab(ctx context.Context, source, sheetID, gid string) {
	fetched, err := s.client.FetchTab(ctx, sheetID, gid)
	if err != nil {
		s.sendEvent(Event{Type: EventError, Source: source, Error: err})
		return
	}

	now := time.Now()
	s.store(source, fetched, now)
	s.saveSnapshot(source, fetched, now)
	s.sendEvent(Event{Type: EventSheetUpdated, Source: source, Sheet: fetched, FetchedAt: now})
}

func (s *Service) store(source string, sh *models.Sheet, fetchedAt time.Time) {
	s.mu.Lock()
	s.sheets[source] = sh
	s.fetchedAt[source] = fetchedAt
	s.mu.Unlock()
}

func (s *Service) saveSnapshot(source string, sh *models.Sheet, fetchedAt time.Time) {
	if s.database == nil {
		return
	}
	if err := s.database.SaveSnapshot(source, sh, fetchedAt); err != nil {
		logger.Error("failed to save snapshot", "source", source, "error", err)
	}
}

// poll runs the background refresh loop.
func (s *Service) poll() {
	if s.cfg.LogSheetID == "" && s.cfg.TestsSheetID == "" {
		return
	}

	s.RefreshAll(context.Background())

	interval := s.cfg.RefreshInterval
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RefreshAll(context.Background())
		case <-s.stopChan:
			return
		}
	}
}

// startWatcher watches the local export's directory so edits and atomic
// replaces are both observed.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	dir := filepath.Dir(s.cfg.LocalDataPath)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(s.cfg.LocalDataPath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, func() {
					s.reloadLocalFile()
				})
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Source: db.SourceSessions, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// reloadLocalFile parses the local export and publishes it as the sessions
// sheet. A missing file is not an error; the export may not exist yet.
func (s *Service) reloadLocalFile() {
	data, err := os.ReadFile(s.cfg.LocalDataPath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.sendEvent(Event{Type: EventError, Source: db.SourceSessions, Error: err})
		}
		return
	}

	parsed, err := sheet.ParseGviz(data)
	if err != nil {
		s.sendEvent(Event{
			Type:   EventError,
			Source: db.SourceSessions,
			Error:  fmt.Errorf("failed to parse local export: %w", err),
		})
		return
	}

	now := time.Now()
	s.store(db.SourceSessions, parsed, now)
	s.saveSnapshot(db.SourceSessions, parsed, now)
	s.sendEvent(Event{Type: EventSheetUpdated, Source: db.SourceSessions, Sheet: parsed, FetchedAt: now})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the refresh loop and the file watcher.
func (s *Service) Close() error {
	close(s.stopChan)

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}

	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
