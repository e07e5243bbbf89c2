// Package books provides the per-book rollup tab for the study log TUI.
package books

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/a-mhatre/studylog-tui/internal/aggregate"
	"github.com/a-mhatre/studylog-tui/internal/app"
	"github.com/a-mhatre/studylog-tui/internal/ui/components"
	"github.com/a-mhatre/studylog-tui/internal/ui/styles"
)

// keyMap defines the key bindings specific to the books tab.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
}

// defaultKeyMap returns the default key bindings for the books tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev book"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next book"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// Model represents the books tab state.
type Model struct {
	state      *app.State
	table      table.Model
	spinner    components.LoadingSpinner
	bar        components.ProgressBar
	barPercent float64
	keys       keyMap
	width      int
	height     int
}

// New creates a new books model.
func New(state *app.State) *Model {
	columns := []table.Column{
		{Title: "Title", Width: 28},
		{Title: "Pages", Width: 12},
		{Title: "Time", Width: 9},
		{Title: "Chapters", Width: 9},
		{Title: "Last Read", Width: 12},
		{Title: "Done", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	return &Model{
		state:   state,
		table:   t,
		spinner: components.NewSpinner("Loading books..."),
		bar:     components.NewProgressBar(),
		keys:    defaultKeyMap(),
	}
}

// Init initializes the books tab.
func (m *Model) Init() tea.Cmd {
	m.updateTableData()
	return m.syncBar()
}

// Update handles messages for the books tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.DataComputedMsg:
		m.updateTableData()
		cmds = append(cmds, m.syncBar())

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd, m.syncBar())

	default:
		var cmd tea.Cmd
		m.bar, cmd = m.bar.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// syncBar starts animating the completion bar toward the selected book's
// percentage whenever the selection or its rollup changed.
func (m *Model) syncBar() tea.Cmd {
	rollups := m.state.Rollups()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(rollups) {
		return nil
	}

	percent := float64(rollups[idx].PercentCompleted)
	if percent == m.barPercent {
		return nil
	}
	m.barPercent = percent
	return m.bar.SetPercent(percent)
}

// activitySpark renders the selected book's pages per period as a sparkline.
func (m *Model) activitySpark(bookID string) string {
	bundle := m.state.Bundle()
	if bundle.Empty() {
		return ""
	}

	values := make([]float64, len(bundle.ChartData))
	seen := false
	for i, agg := range bundle.ChartData {
		pages := agg.PerBookPages[bookID]
		if pages > 0 {
			seen = true
		}
		values[i] = float64(pages)
	}
	if !seen {
		return ""
	}

	return components.RenderColoredSparkline(values, len(values))
}

// updateTableData updates the table with the current rollups.
func (m *Model) updateTableData() {
	rollups := m.state.Rollups()
	rows := make([]table.Row, 0, len(rollups))

	for _, r := range rollups {
		pages := fmt.Sprintf("%d", r.TotalPagesRead)
		if r.TotalPages > 0 {
			pages = fmt.Sprintf("%d/%d", r.TotalPagesRead, r.TotalPages)
		}

		chapters := fmt.Sprintf("%d", len(r.Chapters))
		if r.TotalChapters > 0 {
			chapters = fmt.Sprintf("%d/%d", len(r.Chapters), r.TotalChapters)
		}

		lastRead := "-"
		if !r.LastRead.IsZero() {
			lastRead = r.LastRead.Format("Jan 2, 2006")
		}

		rows = append(rows, table.Row{
			r.BookTitle,
			pages,
			aggregate.FormatMinutes(r.TotalTimeMinutes),
			chapters,
			lastRead,
			fmt.Sprintf("%d%%", r.PercentCompleted),
		})
	}

	m.table.SetRows(rows)
}

// selectedChapters returns the chapter list of the selected book.
func (m *Model) selectedChapters() string {
	rollups := m.state.Rollups()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(rollups) {
		return ""
	}
	return strings.Join(rollups[idx].Chapters, ", ")
}

// SetSize sets the available size for the books tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-14, 4))

	titleWidth := width - 62
	if titleWidth < 20 {
		titleWidth = 20
	}
	if titleWidth > 44 {
		titleWidth = 44
	}

	columns := []table.Column{
		{Title: "Title", Width: titleWidth},
		{Title: "Pages", Width: 12},
		{Title: "Time", Width: 9},
		{Title: "Chapters", Width: 9},
		{Title: "Last Read", Width: 12},
		{Title: "Done", Width: 6},
	}
	m.table.SetColumns(columns)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Up,
		m.keys.Down,
		m.keys.Refresh,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Refresh},
	}
}
