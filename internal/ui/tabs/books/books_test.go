package books

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/a-mhatre/studylog-tui/internal/app"
	"github.com/a-mhatre/studylog-tui/internal/models"
	"github.com/a-mhatre/studylog-tui/internal/services/compute"
	"github.com/a-mhatre/studylog-tui/internal/ui/components"
)

func stateWithRollups() *app.State {
	state := app.NewState()
	state.SetComputeResult(compute.Result{
		Interval: models.IntervalDaily,
		Bundle: &models.ComputedBundle{
			Version:  "v1",
			Interval: models.IntervalDaily,
			ChartData: []*models.BucketAggregate{
				{
					Key:          models.BucketKey{Year: 2025, Month: 3, Day: 9},
					TotalPages:   12,
					PerBookPages: map[string]int{"b2": 12},
				},
				{
					Key:          models.BucketKey{Year: 2025, Month: 3, Day: 10},
					TotalPages:   20,
					PerBookPages: map[string]int{"b1": 20},
				},
			},
		},
		Rollups: []models.BookRollup{
			{
				BookID:           "b1",
				BookTitle:        "Operating Systems",
				TotalPagesRead:   120,
				TotalTimeMinutes: 300,
				LastRead:         time.Date(2025, 3, 10, 20, 0, 0, 0, time.Local),
				Chapters:         []string{"1", "2", "3"},
				TotalPages:       400,
				TotalChapters:    12,
				PercentCompleted: 30,
			},
			{
				BookID:         "b2",
				BookTitle:      "Linear Algebra",
				TotalPagesRead: 45,
				Chapters:       []string{"7"},
			},
		},
		Totals: models.Totals{TotalPages: 165, TotalBooks: 2, TotalTime: 300},
	})
	return state
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	m.Init()
}

func TestView_WithRollups(t *testing.T) {
	m := New(stateWithRollups())
	m.SetSize(120, 40)
	m.Init()

	view := m.View()
	for _, want := range []string{"Books", "Operating Systems", "2 books", "165 pages", "120/400", "30%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_Empty(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)

	m := New(state)
	m.SetSize(100, 30)

	view := m.View()
	if !strings.Contains(view, "No Books Yet") {
		t.Error("empty state should show the no-books card")
	}
}

func TestSelectedBook(t *testing.T) {
	m := New(stateWithRollups())
	m.SetSize(120, 40)
	m.Init()

	if got := m.selectedChapters(); got != "1, 2, 3" {
		t.Errorf("selectedChapters = %q", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.selectedChapters(); got != "7" {
		t.Errorf("selectedChapters after down = %q", got)
	}
}

func TestUpdate_Recompute(t *testing.T) {
	state := stateWithRollups()
	m := New(state)
	m.Init()

	if len(m.table.Rows()) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.table.Rows()))
	}

	m.Update(app.DataComputedMsg{})
	if len(m.table.Rows()) != 2 {
		t.Error("rows should survive a recompute message")
	}
}

func TestBarTracksSelection(t *testing.T) {
	m := New(stateWithRollups())
	m.SetSize(120, 40)
	m.Init()

	if m.barPercent != 30 {
		t.Fatalf("barPercent = %v, want 30 for the first book", m.barPercent)
	}

	// Let the animation settle, then the card shows the final percentage.
	for i := 0; i < 60; i++ {
		m.Update(components.AnimationTickMsg(time.Now()))
	}
	view := m.View()
	if !strings.Contains(view, "Completion") {
		t.Error("selected-book card should carry the completion bar")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.barPercent != 0 {
		t.Errorf("barPercent = %v, want 0 after selecting an unsized book", m.barPercent)
	}
}

func TestActivitySpark(t *testing.T) {
	m := New(stateWithRollups())
	m.SetSize(120, 40)
	m.Init()

	if spark := m.activitySpark("b1"); spark == "" {
		t.Error("book with recorded pages should get a sparkline")
	}
	if spark := m.activitySpark("missing"); spark != "" {
		t.Errorf("book without pages should get none, got %q", spark)
	}

	view := m.View()
	if !strings.Contains(view, "Activity:") {
		t.Error("selected-book card should carry the activity row")
	}
}

func TestHelpBindings(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
