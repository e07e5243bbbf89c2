package sessions

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/a-mhatre/studylog-tui/internal/ui/components"
	"github.com/a-mhatre/studylog-tui/internal/ui/styles"
)

// View renders the sessions tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	m.syncRecords()

	var sections []string

	sections = append(sections, m.renderTitle())

	if m.filtering || m.filterInput.Value() != "" {
		sections = append(sections, m.renderFilter())
	}

	if len(m.records) == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		sections = append(sections, m.renderTable())
	}

	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

// renderTitle renders the sessions tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Sessions")

	shown := len(m.table.Rows())
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%d of %d sessions", shown, len(m.records)))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderFilter renders the filter input line.
func (m *Model) renderFilter() string {
	label := styles.BlurredStyle.Render("  Filter:")
	if m.filtering {
		label = styles.FocusedStyle.Render("> Filter:")
	}
	return label + " " + m.filterInput.View()
}

// renderTable renders the sessions table.
func (m *Model) renderTable() string {
	cardWidth := m.width - 6
	if cardWidth < 60 {
		cardWidth = 60
	}

	return styles.CardStyle.Width(cardWidth).Render(m.table.View())
}

// renderEmptyState renders the empty state when no sessions exist.
func (m *Model) renderEmptyState() string {
	cardWidth := m.width - 6
	if cardWidth < 40 {
		cardWidth = 40
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.SubTitleStyle.Render("No Sessions Recorded"),
		"",
		styles.HelpStyle.Render("Sessions appear here once the log sheet has rows."),
		"",
	)

	return styles.CardStyle.Width(cardWidth).Render(content)
}

// renderFooter renders the footer with keyboard shortcuts.
func (m *Model) renderFooter() string {
	var shortcuts []string

	if m.filtering {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Enter") + " apply",
			styles.HelpKeyStyle.Render("Esc") + " cancel",
		}
	} else {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("/") + " filter",
			styles.HelpKeyStyle.Render("r") + " refresh",
			styles.HelpKeyStyle.Render("↑/↓") + " scroll",
		}
	}

	footer := ""
	for i, s := range shortcuts {
		if i > 0 {
			footer += styles.HelpStyle.Render(" | ")
		}
		footer += s
	}

	return lipgloss.NewStyle().
		MarginTop(1).
		Foreground(styles.TextMuted).
		Render(footer)
}
