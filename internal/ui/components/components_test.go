package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.label != "Loading" {
		t.Error("Spinner label mismatch")
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Loading")

	if s.Label() != "Loading" {
		t.Errorf("Label = %s, want Loading", s.Label())
	}

	if !strings.Contains(s.View(), "Loading") {
		t.Error("View should include the label")
	}

	if s.Init() == nil {
		t.Error("Init should return command")
	}

	_, cmd := s.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Update should return command for tick")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	view := RenderSpinnerCentered(s, 20, 5)
	if view == "" {
		t.Error("RenderSpinnerCentered returned empty")
	}
}

func TestRenderLineChart(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	s := RenderLineChart(data, 20, 5, "Test")
	if s == "" {
		t.Error("RenderLineChart returned empty")
	}
}

func TestRenderDualLineChart(t *testing.T) {
	data1 := []float64{1, 2, 3}
	data2 := []float64{3, 2, 1}
	s := RenderDualLineChart(data1, data2, 20, 5, "Title")
	if s == "" {
		t.Error("RenderDualLineChart returned empty")
	}
}

func TestRenderTargetChart(t *testing.T) {
	data := []float64{5, 12, 8, 20}

	s := RenderTargetChart(data, 10, 20, 5, "Pages")
	if s == "" {
		t.Error("RenderTargetChart returned empty")
	}

	// Without a goal it degrades to a single series
	s = RenderTargetChart(data, 0, 20, 5, "Pages")
	if s == "" {
		t.Error("RenderTargetChart without target returned empty")
	}

	s = RenderTargetChart(nil, 10, 20, 5, "Pages")
	if !strings.Contains(s, "No data") {
		t.Error("empty series should render the no-data hint")
	}
}

func TestRenderBarChart(t *testing.T) {
	values := []float64{10, 20}
	labels := []string{"A", "B"}
	s := RenderBarChart(values, labels, 20)
	if s == "" {
		t.Error("RenderBarChart returned empty")
	}
}

func TestRenderWeekdayPattern(t *testing.T) {
	data := make([]float64, 7)
	names := []string{"M", "T", "W", "T", "F", "S", "S"}
	s := RenderWeekdayPattern(data, names)
	if s == "" {
		t.Error("RenderWeekdayPattern returned empty")
	}
}

func TestRenderSparkline(t *testing.T) {
	data := []float64{1, 2, 3}
	s := RenderSparkline(data, 10)
	if s == "" {
		t.Error("RenderSparkline returned empty")
	}
}

func TestRenderColoredSparkline(t *testing.T) {
	data := []float64{1, 2, 3}
	s := RenderColoredSparkline(data, 10)
	if s == "" {
		t.Error("RenderColoredSparkline returned empty")
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "A", Color: lipgloss.Color("#ffffff")},
	}
	s := RenderLegend(items)
	if s == "" {
		t.Error("RenderLegend returned empty")
	}
}

func TestSimpleProgressBar(t *testing.T) {
	s := SimpleProgressBar(45, "Algebra", 60)
	if !strings.Contains(s, "45%") {
		t.Errorf("SimpleProgressBar missing percent: %q", s)
	}
	if !strings.Contains(s, "Algebra") {
		t.Errorf("SimpleProgressBar missing label: %q", s)
	}
}

func TestRenderGradientBar(t *testing.T) {
	if RenderGradientBar(50, 0) != "" {
		t.Error("zero width should render empty")
	}
	if RenderGradientBar(50, 20) == "" {
		t.Error("RenderGradientBar returned empty")
	}
}

func TestProgressBar_View(t *testing.T) {
	bar := NewProgressBar()
	view := bar.View(75, "Physics", 60)
	if !strings.Contains(view, "75%") {
		t.Errorf("View missing percent: %q", view)
	}

	compact := bar.ViewCompact(30, 40)
	if compact == "" {
		t.Error("ViewCompact returned empty")
	}
}

func TestProgressBar_ViewAnimated(t *testing.T) {
	bar := NewProgressBar()

	// Settled bar renders the set percentage.
	if view := bar.ViewAnimated("Physics", 60); !strings.Contains(view, "0%") {
		t.Errorf("initial view = %q, want 0%%", view)
	}

	if cmd := bar.SetPercent(80); cmd == nil {
		t.Error("SetPercent should start the animation")
	}

	// Animation starts from the old position, not the target.
	if view := bar.ViewAnimated("Physics", 60); strings.Contains(view, "80%") {
		t.Errorf("animating view = %q, should not jump to the target", view)
	}

	for i := 0; i < 60; i++ {
		bar, _ = bar.Update(AnimationTickMsg{})
	}
	if view := bar.ViewAnimated("Physics", 60); !strings.Contains(view, "80%") {
		t.Errorf("settled view = %q, want 80%%", view)
	}
}

func TestSimpleBarLoading(t *testing.T) {
	s := SimpleBarLoading("pages", 60, 7)
	if s == "" {
		t.Error("SimpleBarLoading returned empty")
	}
}
