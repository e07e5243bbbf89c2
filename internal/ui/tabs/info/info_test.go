package info

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/a-mhatre/studylog-tui/internal/app"
	"github.com/a-mhatre/studylog-tui/internal/config"
	"github.com/a-mhatre/studylog-tui/internal/db"
)

func testConfig() *config.Config {
	return &config.Config{
		LogSheetID:      "sheet-123",
		DatabasePath:    "/tmp/studylog.db",
		RefreshInterval: 15 * time.Minute,
		DailyPagesGoal:  10,
	}
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), testConfig())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestView(t *testing.T) {
	state := app.NewState()
	state.SetFetchedAt(db.SourceSessions, time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))

	m := New(state, testConfig())
	m.SetSize(100, 40)

	view := m.View()
	for _, want := range []string{"Info", "Configuration", "sheet-123", "10 pages", "Data Sources", "never", "About Study Log TUI"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_NoConfig(t *testing.T) {
	m := New(app.NewState(), nil)
	m.SetSize(100, 40)

	view := m.View()
	if !strings.Contains(view, "Configuration not loaded") {
		t.Error("nil config should show the not-loaded hint")
	}
}

func TestUpdate(t *testing.T) {
	m := New(app.NewState(), testConfig())
	m.SetSize(100, 40)

	tab, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if tab == nil {
		t.Fatal("Update returned nil tab")
	}
}

func TestHelpBindings(t *testing.T) {
	m := New(app.NewState(), testConfig())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
