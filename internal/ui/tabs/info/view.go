package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/a-mhatre/studylog-tui/internal/db"
	"github.com/a-mhatre/studylog-tui/internal/ui/styles"
	"github.com/a-mhatre/studylog-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderDataCard())
	sections = append(sections, m.renderAboutCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderConfigCard renders the configuration card.
func (m *Model) renderConfigCard() string {
	cardWidth := m.cardWidth()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		rows = append(rows, m.renderConfigRow("Log Sheet", orUnset(m.config.LogSheetID)))
		rows = append(rows, m.renderConfigRow("Tests Sheet", orUnset(m.config.TestsSheetID)))
		rows = append(rows, m.renderConfigRow("Local Export", orUnset(m.config.LocalDataPath)))
		rows = append(rows, m.renderConfigRow("Database", m.config.DatabasePath))
		rows = append(rows, m.renderConfigRow("Refresh", m.config.RefreshInterval.String()))
		if m.config.DailyPagesGoal > 0 {
			rows = append(rows, m.renderConfigRow("Daily Goal", fmt.Sprintf("%.0f pages", m.config.DailyPagesGoal)))
		}
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderDataCard renders the per-source fetch times.
func (m *Model) renderDataCard() string {
	cardWidth := m.cardWidth()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Data Sources"))
	rows = append(rows, "")

	sources := []struct{ name, src string }{
		{"Sessions", db.SourceSessions},
		{"Books", db.SourceBooks},
		{"Tests", db.SourceTests},
		{"Syllabus", db.SourceSyllabus},
	}

	for _, s := range sources {
		at := m.state.FetchedAt(s.src)
		value := styles.HelpStyle.Render("never")
		if !at.IsZero() {
			value = at.Format("Jan 2 15:04:05")
		}
		rows = append(rows, m.renderConfigRow(s.name, value))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	cardWidth := m.cardWidth()

	ver, commit, date := version.Fields()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About Study Log TUI"))
	rows = append(rows, "")

	rows = append(rows, m.renderConfigRow("Version", ver))
	rows = append(rows, m.renderConfigRow("Build Date", date))
	rows = append(rows, m.renderConfigRow("Git Commit", commit))
	rows = append(rows, m.renderConfigRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) cardWidth() int {
	cardWidth := m.width - 6
	if cardWidth < 50 {
		cardWidth = 50
	}
	if cardWidth > 80 {
		cardWidth = 80
	}
	return cardWidth
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
