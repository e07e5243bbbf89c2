package tests

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/a-mhatre/studylog-tui/internal/models"
	"github.com/a-mhatre/studylog-tui/internal/ui/components"
	"github.com/a-mhatre/studylog-tui/internal/ui/styles"
)

// View renders the tests tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderScoreChart())
	sections = append(sections, m.renderSyllabus())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

// renderTitle renders the tests tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Tests")

	points := m.state.Tests()
	subtitle := styles.HelpStyle.Render(fmt.Sprintf(
		"%d scored periods · %s view", len(points), m.state.Interval().String()))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderScoreChart renders the mean score trend.
func (m *Model) renderScoreChart() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Score Trend")), "")

	points := m.state.Tests()
	if len(points) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No test scores recorded"))
	} else {
		series := make([]float64, len(points))
		for i, p := range points {
			series[i] = p.Mean
		}

		chartWidth := max(cardWidth-12, 30)
		chartHeight := 8

		chart := components.RenderLineChart(series, chartWidth, chartHeight, "Mean score per period")
		for _, line := range strings.Split(chart, "\n") {
			rows = append(rows, "  "+line)
		}

		rows = append(rows, "")
		rows = append(rows, "  "+m.renderLatestScore(points)+
			"  "+components.RenderSparkline(series, len(series)))
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderLatestScore(points []models.TestPoint) string {
	latest := points[len(points)-1]
	label := latest.Key.Label(m.state.Interval())

	return fmt.Sprintf("Latest: %s (%s, %d tests)",
		lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).
			Render(fmt.Sprintf("%.1f", latest.Mean)),
		label,
		latest.Count,
	)
}

// renderSyllabus renders the per-subject coverage bars.
func (m *Model) renderSyllabus() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Syllabus Coverage")), "")

	coverage := m.state.Syllabus()
	if len(coverage) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No syllabus configured"))
	} else {
		barWidth := max(cardWidth-10, 30)
		for _, subject := range coverage {
			bar := components.SimpleProgressBar(float64(subject.Percent), subject.Subject, barWidth)
			rows = append(rows, "  "+bar)
			rows = append(rows, "  "+styles.HelpStyle.Render(
				fmt.Sprintf("  %d of %d topics completed", subject.Completed, subject.Total)))
			rows = append(rows, "")
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
