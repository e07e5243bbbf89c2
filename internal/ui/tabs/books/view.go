package books

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/a-mhatre/studylog-tui/internal/aggregate"
	"github.com/a-mhatre/studylog-tui/internal/ui/components"
	"github.com/a-mhatre/studylog-tui/internal/ui/styles"
)

// View renders the books tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	var sections []string

	sections = append(sections, m.renderTitle())

	if len(m.state.Rollups()) == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		sections = append(sections, m.renderTable())
		sections = append(sections, m.renderSelectedBook())
	}

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

// renderTitle renders the books tab title with the totals line.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Books")

	totals := m.state.Totals()
	subtitle := styles.HelpStyle.Render(fmt.Sprintf(
		"%d books · %d pages · %s total",
		totals.TotalBooks,
		totals.TotalPages,
		aggregate.FormatMinutes(totals.TotalTime),
	))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderTable renders the rollups table.
func (m *Model) renderTable() string {
	m.updateTableData()

	cardWidth := m.width - 6
	if cardWidth < 60 {
		cardWidth = 60
	}

	return styles.CardStyle.Width(cardWidth).Render(m.table.View())
}

// renderSelectedBook renders the completion detail for the highlighted book.
func (m *Model) renderSelectedBook() string {
	rollups := m.state.Rollups()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(rollups) {
		return ""
	}
	book := rollups[idx]

	cardWidth := m.width - 6
	if cardWidth < 50 {
		cardWidth = 50
	}

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render(book.BookTitle))

	rows = append(rows, m.bar.ViewAnimated("Completion", cardWidth-10))

	if spark := m.activitySpark(book.BookID); spark != "" {
		rows = append(rows, "")
		rows = append(rows, styles.HelpStyle.Render("Activity: ")+spark)
	}

	if chapters := m.selectedChapters(); chapters != "" {
		rows = append(rows, "")
		rows = append(rows, styles.HelpStyle.Render("Chapters: "+chapters))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderEmptyState renders the empty state when no books exist.
func (m *Model) renderEmptyState() string {
	cardWidth := m.width - 6
	if cardWidth < 40 {
		cardWidth = 40
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.SubTitleStyle.Render("No Books Yet"),
		"",
		styles.HelpStyle.Render("Books appear once sessions reference them."),
		"",
	)

	return styles.CardStyle.Width(cardWidth).Render(content)
}
