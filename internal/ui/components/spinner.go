package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/a-mhatre/studylog-tui/internal/ui/styles"
)

var spinnerLabelStyle = lipgloss.NewStyle().Foreground(styles.TextSecondary)

// LoadingSpinner is a labeled activity indicator shown while a fetch or
// aggregation pass is in flight.
type LoadingSpinner struct {
	model spinner.Model
	label string
}

// NewSpinner creates a loading spinner with the given label.
func NewSpinner(label string) LoadingSpinner {
	s := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return LoadingSpinner{model: s, label: label}
}

// Init starts the spinner tick loop.
func (l LoadingSpinner) Init() tea.Cmd {
	return l.model.Tick
}

// Update handles spinner tick messages.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.model, cmd = l.model.Update(msg)
	return l, cmd
}

// View renders the spinner followed by its label, if any.
func (l LoadingSpinner) View() string {
	if l.label == "" {
		return l.model.View()
	}
	return l.model.View() + " " + spinnerLabelStyle.Render(l.label)
}

// Label returns the spinner's label.
func (l LoadingSpinner) Label() string {
	return l.label
}

// RenderSpinnerCentered places the spinner in the middle of the tab area.
func RenderSpinnerCentered(s LoadingSpinner, width, height int) string {
	return styles.CenterBoth(s.View(), width, height)
}
