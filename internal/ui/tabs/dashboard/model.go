// Package dashboard provides the main dashboard tab for the study log TUI.
package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/a-mhatre/studylog-tui/internal/app"
	"github.com/a-mhatre/studylog-tui/internal/services"
	"github.com/a-mhatre/studylog-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the dashboard tab.
type keyMap struct {
	Interval key.Binding
	Refresh  key.Binding
	Up       key.Binding
	Down     key.Binding
}

// defaultKeyMap returns the default key bindings for the dashboard tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Interval: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "cycle interval"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the dashboard tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	frame    int
	width    int
	height   int
}

// New creates a new dashboard model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		spinner:  components.NewSpinner("Crunching sessions..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.DataComputedMsg:
		// View reads everything from shared state; nothing to cache here.

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		m.frame++
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// SetSize sets the available size for the dashboard.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Interval,
		m.keys.Refresh,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Interval, m.keys.Refresh},
		{m.keys.Up, m.keys.Down},
	}
}
