// Package sessions provides the session history tab for the study log TUI.
package sessions

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/a-mhatre/studylog-tui/internal/aggregate"
	"github.com/a-mhatre/studylog-tui/internal/app"
	"github.com/a-mhatre/studylog-tui/internal/db"
	"github.com/a-mhatre/studylog-tui/internal/models"
	"github.com/a-mhatre/studylog-tui/internal/ui/components"
	"github.com/a-mhatre/studylog-tui/internal/ui/styles"
)

// SheetSource provides the latest snapshot of a sheet tab.
type SheetSource interface {
	Sheet(src string) *models.Sheet
}

// keyMap defines the key bindings specific to the sessions tab.
type keyMap struct {
	Filter  key.Binding
	Refresh key.Binding
	Escape  key.Binding
}

// defaultKeyMap returns the default key bindings for the sessions tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
	}
}

// Model represents the sessions tab state.
type Model struct {
	state       *app.State
	source      SheetSource
	table       table.Model
	filterInput textinput.Model
	filtering   bool
	records     []models.SessionRecord
	loadedAt    time.Time
	spinner     components.LoadingSpinner
	keys        keyMap
	width       int
	height      int
}

// New creates a new sessions model.
func New(state *app.State, src SheetSource) *Model {
	filterInput := textinput.New()
	filterInput.Placeholder = "book, chapter, or status..."
	filterInput.CharLimit = 60
	filterInput.Width = 30

	columns := []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Book", Width: 28},
		{Title: "Chapter", Width: 12},
		{Title: "Pages", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Speed", Width: 8},
		{Title: "Status", Width: 12},
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
		state:       state,
		source:      src,
		table:       t,
		filterInput: filterInput,
		spinner:     components.NewSpinner("Loading sessions..."),
		keys:        defaultKeyMap(),
	}
}

// Init initializes the sessions tab.
func (m *Model) Init() tea.Cmd {
	m.reload()
	return nil
}

// Update handles messages for the sessions tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	if m.filtering {
		return m.updateFilter(msg)
	}

	switch msg := msg.(type) {
	case app.DataComputedMsg, app.SheetUpdatedMsg:
		m.reload()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			m.filterInput.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Escape):
			m.filterInput.SetValue("")
			m.updateTableData()

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// updateFilter handles key input while the filter field is focused.
func (m *Model) updateFilter(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.filtering = false
			m.filterInput.Blur()
			m.filterInput.SetValue("")
			m.updateTableData()
			return m, nil

		case "enter":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.updateTableData()
	return m, cmd
}

// reload rebuilds the record list from the current sessions snapshot.
func (m *Model) reload() {
	if m.source == nil {
		return
	}

	records := aggregate.NormalizeRows(m.source.Sheet(db.SourceSessions))
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	m.records = records
	m.loadedAt = m.state.FetchedAt(db.SourceSessions)
	m.updateTableData()
}

// syncRecords reloads when a fetch landed since the last rebuild. Data
// messages reach only the focused tab, so View re-checks the fetch time to
// pick up refreshes that happened while another tab was active.
func (m *Model) syncRecords() {
	if m.source == nil {
		return
	}
	if at := m.state.FetchedAt(db.SourceSessions); !at.Equal(m.loadedAt) {
		m.reload()
	}
}

// updateTableData refreshes the table rows, applying the active filter.
func (m *Model) updateTableData() {
	filter := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))

	rows := make([]table.Row, 0, len(m.records))
	for _, rec := range m.records {
		if filter != "" && !matchesFilter(rec, filter) {
			continue
		}

		speed := "-"
		if rec.Speed > 0 {
			speed = fmt.Sprintf("%.2f", rec.Speed)
		}

		rows = append(rows, table.Row{
			rec.Timestamp.Format("Jan 2 15:04"),
			rec.BookTitle,
			rec.Chapter,
			fmt.Sprintf("%d", rec.PagesRead),
			aggregate.FormatMinutes(rec.Minutes),
			speed,
			rec.Status,
		})
	}

	m.table.SetRows(rows)
}

func matchesFilter(rec models.SessionRecord, filter string) bool {
	for _, field := range []string{rec.BookTitle, rec.BookID, rec.Chapter, rec.Status} {
		if strings.Contains(strings.ToLower(field), filter) {
			return true
		}
	}
	return false
}

// SetSize sets the available size for the sessions tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-12, 4))

	bookWidth := width - 78
	if bookWidth < 20 {
		bookWidth = 20
	}
	if bookWidth > 40 {
		bookWidth = 40
	}

	columns := []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Book", Width: bookWidth},
		{Title: "Chapter", Width: 12},
		{Title: "Pages", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Speed", Width: 8},
		{Title: "Status", Width: 12},
	}
	m.table.SetColumns(columns)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.filtering {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			m.keys.Escape,
		}
	}
	return []key.Binding{
		m.keys.Filter,
		m.keys.Refresh,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Filter, m.keys.Escape},
		{m.keys.Refresh},
	}
}
