package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/a-mhatre/studylog-tui/internal/models"
	"github.com/a-mhatre/studylog-tui/internal/ui/components"
	"github.com/a-mhatre/studylog-tui/internal/ui/styles"
)

// View renders the dashboard component.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	var sections []string

	sections = append(sections, m.renderTitle())

	bundle := m.state.Bundle()
	if bundle.Empty() {
		sections = append(sections, m.renderEmpty())
	} else {
		sections = append(sections,
			m.renderStatCards(bundle),
			m.renderTrendChart(bundle),
		)
		if weekday := m.renderWeekdayCard(bundle); weekday != "" {
			sections = append(sections, weekday)
		}
		sections = append(sections,
			m.renderBookBreakdown(bundle),
			m.renderRecentSessions(bundle),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the spinner with skeleton bars for the two series
// the dashboard is about to draw.
func (m *Model) renderLoading() string {
	barWidth := min(max(m.width-8, 20), 60)

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.spinner.View(),
		"",
		components.SimpleBarLoading("Pages", barWidth, m.frame),
		components.SimpleBarLoading("Time", barWidth, m.frame),
	)

	return styles.CenterBoth(content, m.width, m.height)
}

// renderTitle renders the dashboard title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Study Log")

	interval := m.state.Interval()
	subtitle := fmt.Sprintf("%s view", interval.String())
	if updated := m.state.GetLastUpdated(); !updated.IsZero() {
		subtitle += " · updated " + updated.Format("15:04:05")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) renderEmpty() string {
	cardWidth := max(m.width-6, 40)

	content := lipgloss.JoinVertical(lipgloss.Left,
		"",
		styles.SubTitleStyle.Render("No sessions yet"),
		"",
		styles.HelpStyle.Render("Log a reading session in the sheet and it will show up here."),
		"",
	)

	return styles.CardStyle.Width(cardWidth).Render(content)
}

// renderStatCards renders the summary cards for the most recent period.
func (m *Model) renderStatCards(bundle *models.ComputedBundle) string {
	stats := bundle.StatsData
	if len(stats) == 0 {
		return ""
	}

	cardWidth := max((m.width-6)/len(stats)-2, 16)

	var cards []string
	for _, stat := range stats {
		var lines []string
		lines = append(lines, styles.HelpStyle.Render(stat.Label))
		lines = append(lines, styles.StatValueStyle.Render(stat.Value))

		if stat.Change != "" {
			lines = append(lines, styles.GetChangeStyle(stat.Change).Render(stat.Change))
		} else {
			lines = append(lines, "")
		}
		if stat.Avg != "" {
			lines = append(lines, styles.HelpStyle.Render("avg "+stat.Avg))
		}

		cards = append(cards, styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, lines...),
		))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// renderTrendChart renders the pages-per-period chart against the goal line.
func (m *Model) renderTrendChart(bundle *models.ComputedBundle) string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Pages Read")), "")

	series := bundle.ChartData
	pages := make([]float64, len(series))
	minutes := make([]float64, len(series))
	for i, agg := range series {
		pages[i] = float64(agg.TotalPages)
		minutes[i] = agg.TotalMinutes
	}

	chartWidth := max(cardWidth-12, 30)
	chartHeight := 8

	target := 0.0
	if m.services != nil {
		target = m.services.Target(bundle.Interval)
	}

	caption := fmt.Sprintf("Last %d %s periods", len(series), strings.ToLower(bundle.Interval.String()))

	// With a goal the chart plots pages against the goal line; without one
	// the second series slot carries study time instead.
	var chart string
	var legendItems []components.LegendItem
	if target > 0 {
		chart = components.RenderTargetChart(pages, target, chartWidth, chartHeight, caption)
		legendItems = []components.LegendItem{
			{Label: "Pages", Color: components.ChartTimeColor},
			{Label: fmt.Sprintf("Goal (%.0f)", target), Color: styles.Subtle},
		}
	} else {
		chart = components.RenderDualLineChart(pages, minutes, chartWidth, chartHeight, caption)
		legendItems = []components.LegendItem{
			{Label: "Pages", Color: components.ChartPagesColor},
			{Label: "Minutes", Color: components.ChartTimeColor},
		}
	}

	for _, line := range strings.Split(chart, "\n") {
		rows = append(rows, "  "+line)
	}

	rows = append(rows, "")
	rows = append(rows, "  "+components.RenderLegend(legendItems))

	rows = append(rows, "")
	rows = append(rows, "  "+styles.HelpStyle.Render(
		fmt.Sprintf("Time: %s over the window", formatWindowMinutes(minutes))))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderWeekdayCard renders pages by day of week. Only the daily interval
// has one bucket per day, so other intervals render nothing.
func (m *Model) renderWeekdayCard(bundle *models.ComputedBundle) string {
	if bundle.Interval != models.IntervalDaily || len(bundle.ChartData) == 0 {
		return ""
	}

	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Weekday Pattern")), "")

	rows = append(rows, "  "+components.RenderWeekdayPattern(weekdayPages(bundle.ChartData), nil))
	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// weekdayPages folds daily buckets into Monday-first weekday totals.
func weekdayPages(series []*models.BucketAggregate) []float64 {
	totals := make([]float64, 7)
	for _, agg := range series {
		day := (int(agg.Key.Time().Weekday()) + 6) % 7
		totals[day] += float64(agg.TotalPages)
	}
	return totals
}

func formatWindowMinutes(minutes []float64) string {
	total := 0.0
	for _, v := range minutes {
		total += v
	}
	if total >= 60 {
		return fmt.Sprintf("%.1fh", total/60)
	}
	return fmt.Sprintf("%.0fm", total)
}

// renderBookBreakdown renders per-book page shares for the window.
func (m *Model) renderBookBreakdown(bundle *models.ComputedBundle) string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("By Book")), "")

	if len(bundle.PieData) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No pages recorded in this window"))
	} else {
		values := make([]float64, len(bundle.PieData))
		labels := make([]string, len(bundle.PieData))
		for i, slice := range bundle.PieData {
			values[i] = float64(slice.Value)
			labels[i] = truncateLabel(slice.Label, 24)
		}

		chartWidth := max(cardWidth-12, 30)
		barChart := components.RenderBarChart(values, labels, chartWidth)
		for _, line := range strings.Split(barChart, "\n") {
			rows = append(rows, "  "+line)
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderRecentSessions renders the recent-sessions list.
func (m *Model) renderRecentSessions(bundle *models.ComputedBundle) string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Recent Sessions")), "")

	if len(bundle.RecentData) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No sessions recorded yet"))
	}

	for _, item := range bundle.RecentData {
		marker := styles.StatusInProgressStyle.Render("○")
		if strings.EqualFold(item.Status, "completed") {
			marker = styles.StatusCompletedStyle.Render("●")
		}

		label := lipgloss.NewStyle().Bold(true).Render(truncateLabel(item.Label, 35))
		value := styles.InfoTextStyle.Render(item.Value)
		rows = append(rows, fmt.Sprintf("  %s %s  %s", marker, label, value))
		if item.Subtitle != "" {
			rows = append(rows, "      "+styles.HelpStyle.Render(item.Subtitle))
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func truncateLabel(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 3 {
		return s[:limit]
	}
	return s[:limit-3] + "..."
}
