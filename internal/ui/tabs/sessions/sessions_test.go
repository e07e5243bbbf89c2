package sessions

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/a-mhatre/studylog-tui/internal/app"
	"github.com/a-mhatre/studylog-tui/internal/db"
	"github.com/a-mhatre/studylog-tui/internal/models"
)

type stubSource struct {
	sheet *models.Sheet
}

func (s *stubSource) Sheet(string) *models.Sheet {
	return s.sheet
}

func sessionSheet(title string) *models.Sheet {
	return &models.Sheet{
		Header: make([]string, 11),
		Rows: [][]models.Cell{{
			models.DateCell(time.Date(2025, 3, 10, 20, 0, 0, 0, time.Local)),
			models.TextCell(title),
			models.EmptyCell(),
			models.EmptyCell(),
			models.EmptyCell(),
			models.EmptyCell(),
			models.TextCell("3"),
			models.TextCell("completed"),
			models.NumericCell(20),
			models.NumericCell(45),
			models.TextCell("b1"),
		}},
	}
}

func sampleRecords() []models.SessionRecord {
	return []models.SessionRecord{
		{
			Timestamp: time.Date(2025, 3, 10, 20, 0, 0, 0, time.Local),
			BookID:    "b1",
			BookTitle: "Operating Systems",
			Chapter:   "3",
			PagesRead: 20,
			Minutes:   45,
			Speed:     0.44,
			Status:    "completed",
			Completed: true,
		},
		{
			Timestamp: time.Date(2025, 3, 9, 9, 30, 0, 0, time.Local),
			BookID:    "b2",
			BookTitle: "Linear Algebra",
			Chapter:   "7",
			PagesRead: 12,
			Minutes:   30,
			Speed:     0.4,
			Status:    "in progress",
		},
	}
}

func testModel() *Model {
	state := app.NewState()
	state.SetLoading("initial", false)

	m := New(state, nil)
	m.SetSize(120, 40)
	m.records = sampleRecords()
	m.updateTableData()
	return m
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
	m.Init()
}

func TestView_WithRecords(t *testing.T) {
	m := testModel()

	view := m.View()
	for _, want := range []string{"Sessions", "Operating Systems", "Linear Algebra"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_Empty(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)

	m := New(state, nil)
	m.SetSize(100, 30)

	view := m.View()
	if !strings.Contains(view, "No Sessions Recorded") {
		t.Error("empty state should show the no-sessions card")
	}
}

func TestFilter(t *testing.T) {
	m := testModel()

	// Enter filter mode
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.filtering {
		t.Fatal("'/' should enter filter mode")
	}

	// Type a query
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	if len(m.table.Rows()) != 1 {
		t.Fatalf("filter 'lin' should match 1 row, got %d", len(m.table.Rows()))
	}

	// Apply with enter, filter stays active
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filtering {
		t.Error("enter should leave filter mode")
	}
	if len(m.table.Rows()) != 1 {
		t.Error("filter should remain applied after enter")
	}

	// Escape clears the filter
	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if len(m.table.Rows()) != 2 {
		t.Errorf("escape should clear filter, got %d rows", len(m.table.Rows()))
	}
}

func TestView_ReloadsOnNewSnapshot(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)

	src := &stubSource{sheet: sessionSheet("Operating Systems")}
	m := New(state, src)
	m.SetSize(120, 40)

	state.SetFetchedAt(db.SourceSessions, time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local))
	if view := m.View(); !strings.Contains(view, "Operating Systems") {
		t.Fatal("first snapshot should render")
	}

	// A new snapshot alone changes nothing until a fetch is recorded.
	src.sheet = sessionSheet("Linear Algebra")
	if view := m.View(); strings.Contains(view, "Linear Algebra") {
		t.Fatal("rows should track the recorded fetch time, not the raw source")
	}

	// Recording the fetch makes the next render pick up the rows, even
	// though no data message ever reached this tab.
	state.SetFetchedAt(db.SourceSessions, time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))
	if view := m.View(); !strings.Contains(view, "Linear Algebra") {
		t.Error("render should reload once the fetch time advances")
	}
}

func TestMatchesFilter(t *testing.T) {
	rec := sampleRecords()[0]

	tests := []struct {
		filter string
		want   bool
	}{
		{"operating", true},
		{"b1", true},
		{"completed", true},
		{"algebra", false},
	}
	for _, tt := range tests {
		if got := matchesFilter(rec, tt.filter); got != tt.want {
			t.Errorf("matchesFilter(%q) = %v, want %v", tt.filter, got, tt.want)
		}
	}
}

func TestHelpBindings(t *testing.T) {
	m := New(app.NewState(), nil)
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}

	m.filtering = true
	if len(m.ShortHelp()) == 0 {
		t.Error("filtering ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
