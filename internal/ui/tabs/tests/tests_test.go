package tests

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/a-mhatre/studylog-tui/internal/app"
	"github.com/a-mhatre/studylog-tui/internal/models"
)

func stateWithStudyData() *app.State {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetStudyData(
		[]models.TestPoint{
			{Key: models.BucketKey{Year: 2025, Month: 3, Day: 3}, Mean: 72.5, Count: 2},
			{Key: models.BucketKey{Year: 2025, Month: 3, Day: 10}, Mean: 85, Count: 1},
		},
		[]models.SyllabusCoverage{
			{Subject: "Algebra", Completed: 3, Total: 4, Percent: 75},
			{Subject: "Mechanics", Completed: 1, Total: 5, Percent: 20},
		},
	)
	return state
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestView_WithData(t *testing.T) {
	m := New(stateWithStudyData())
	m.SetSize(110, 50)

	view := m.View()
	for _, want := range []string{"Tests", "Score Trend", "85.0", "Syllabus Coverage", "Algebra", "75%", "3 of 4 topics"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// The latest-score line carries a one-cell-per-period sparkline; the
	// 85-mean period sits at the series maximum.
	if !strings.Contains(view, "█") {
		t.Error("view missing the score sparkline")
	}
}

func TestView_Empty(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)

	m := New(state)
	m.SetSize(100, 30)

	view := m.View()
	if !strings.Contains(view, "No test scores recorded") {
		t.Error("empty state should show the no-scores hint")
	}
	if !strings.Contains(view, "No syllabus configured") {
		t.Error("empty state should show the no-syllabus hint")
	}
}

func TestUpdate(t *testing.T) {
	m := New(stateWithStudyData())
	m.SetSize(100, 30)

	tab, _ := m.Update(app.StudyDataLoadedMsg{})
	if tab == nil {
		t.Fatal("Update returned nil tab")
	}

	tab, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if tab == nil {
		t.Fatal("Update returned nil tab for key")
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
