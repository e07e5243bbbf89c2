package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/a-mhatre/studylog-tui/internal/logger"
	"github.com/a-mhatre/studylog-tui/internal/ui/styles"
)

type AnimationTickMsg time.Time

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*50, func(t time.Time) tea.Msg {
		return AnimationTickMsg(t)
	})
}

// ProgressBar renders a completion bar with label and percentage.
type ProgressBar struct {
	progress       progress.Model
	label          string
	percent        float64
	animationFrame int
	isAnimating    bool
	targetPercent  float64
	currentPercent float64
}

// NewProgressBar creates a new progress bar with gradient colors.
func NewProgressBar() ProgressBar {
	p := progress.New(
		progress.WithScaledGradient("#ff6b6b", "#51cf66"),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return ProgressBar{
		progress:       p,
		label:          "",
		percent:        0,
		animationFrame: 0,
		isAnimating:    false,
		targetPercent:  0,
		currentPercent: 0,
	}
}

// NewProgressBarWithWidth creates a progress bar with a specific width.
func NewProgressBarWithWidth(width int) ProgressBar {
	p := progress.New(
		progress.WithScaledGradient("#ff6b6b", "#51cf66"),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)

	return ProgressBar{
		progress:       p,
		label:          "",
		percent:        0,
		animationFrame: 0,
		isAnimating:    false,
		targetPercent:  0,
		currentPercent: 0,
	}
}

// Init initializes the progress bar model.
func (p ProgressBar) Init() tea.Cmd {
	return nil
}

// Update handles progress bar animation messages.
func (p ProgressBar) Update(msg tea.Msg) (ProgressBar, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case AnimationTickMsg:
		if p.isAnimating {
			p.animationFrame++

			if p.currentPercent < p.targetPercent {
				step := (p.targetPercent - p.currentPercent) / 10
				if step < 0.5 {
					step = 0.5
				}
				p.currentPercent += step
				if p.currentPercent > p.targetPercent {
					p.currentPercent = p.targetPercent
				}
				cmds = append(cmds, animationTick())
			} else if p.currentPercent > p.targetPercent {
				step := (p.currentPercent - p.targetPercent) / 10
				if step < 0.5 {
					step = 0.5
				}
				p.currentPercent -= step
				if p.currentPercent < p.targetPercent {
					p.currentPercent = p.targetPercent
				}
				cmds = append(cmds, animationTick())
			} else {
				p.isAnimating = false
			}
		}
	}

	var cmd tea.Cmd
	model, cmd := p.progress.Update(msg)
	p.progress = model.(progress.Model)
	cmds = append(cmds, cmd)

	return p, tea.Batch(cmds...)
}

// SetPercent sets the current percentage.
func (p *ProgressBar) SetPercent(percent float64) tea.Cmd {
	p.percent = percent
	p.targetPercent = percent

	if !p.isAnimating {
		p.isAnimating = true
		p.animationFrame = 0
		return tea.Batch(
			p.progress.SetPercent(percent/100),
			animationTick(),
		)
	}

	return p.progress.SetPercent(percent / 100)
}

// SetLabel sets the bar label.
func (p *ProgressBar) SetLabel(label string) {
	p.label = label
}

// SetWidth sets the progress bar width.
func (p *ProgressBar) SetWidth(width int) {
	p.progress.Width = width
}

// View renders the bar with percentage and label.
func (p ProgressBar) View(percent float64, label string, width int) string {
	// Update the progress bar width
	barWidth := width - 30 // Reserve space for label and percentage
	if barWidth < 10 {
		barWidth = 10
	}
	p.progress.Width = barWidth

	// Render the progress bar
	bar := p.progress.ViewAs(percent / 100)

	// Format percentage with color
	percentStyle := styles.GetCompletionStyle(int(percent))
	percentStr := percentStyle.Width(6).Align(lipgloss.Right).Render(fmt.Sprintf("%.0f%%", percent))

	// Render label
	labelStyle := styles.ProgressLabelStyle
	labelStr := labelStyle.Width(15).Render(label)

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		labelStr,
		bar,
		" ",
		percentStr,
	)
}

// ViewAnimated renders the bar at its animated position while a transition
// is in flight, and at the set percentage once it settles.
func (p ProgressBar) ViewAnimated(label string, width int) string {
	if p.isAnimating {
		return p.View(p.currentPercent, label, width)
	}
	return p.View(p.percent, label, width)
}

// ViewCompact renders a compact version without label.
func (p ProgressBar) ViewCompact(percent float64, width int) string {
	barWidth := width - 8
	if barWidth < 5 {
		barWidth = 5
	}
	p.progress.Width = barWidth

	bar := p.progress.ViewAs(percent / 100)
	percentStyle := styles.GetCompletionStyle(int(percent))
	percentStr := percentStyle.Render(fmt.Sprintf("%.0f%%", percent))

	return lipgloss.JoinHorizontal(lipgloss.Center, bar, " ", percentStr)
}

// RenderGradientBar renders just the bar part with gradient colors.
func RenderGradientBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := int(float64(width) * percent / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	var barChars []string
	for i := 0; i < width; i++ {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor("#ff6b6b", "#51cf66", t)
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			barChars = append(barChars, style.Render("█"))
		} else {
			style := lipgloss.NewStyle().Foreground(styles.Subtle)
			barChars = append(barChars, style.Render("░"))
		}
	}

	return strings.Join(barChars, "")
}

// SimpleProgressBar renders a simple ASCII progress bar with gradient colors.
func SimpleProgressBar(percent float64, label string, width int) string {
	labelWidth := len(label) + 1
	percentWidth := 6
	barWidth := width - labelWidth - percentWidth - 4

	if barWidth < 5 {
		barWidth = 5
	}

	bar := RenderGradientBar(percent, barWidth)

	labelStr := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(label)

	percentStr := styles.GetCompletionStyle(int(percent)).
		Width(percentWidth).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.0f%%", percent))

	return fmt.Sprintf("%s [%s] %s", labelStr, bar, percentStr)
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}

// SimpleBarLoading renders a shimmering placeholder bar while data loads.
func SimpleBarLoading(label string, width int, frame int) string {
	const (
		indentWidth  = 4
		percentWidth = 6
	)

	barWidth := width - indentWidth - percentWidth - 4
	if barWidth < 10 {
		barWidth = 10
	}

	accentColor := styles.Primary
	if strings.Contains(strings.ToLower(label), "pages") {
		accentColor = styles.Pages
	} else if strings.Contains(strings.ToLower(label), "time") {
		accentColor = styles.Time
	}

	cycle := 120

	t := float64(frame%cycle) / float64(cycle)
	var p float64
	if t < 0.5 {
		p = t * 2
	} else {
		p = (1 - t) * 2
	}
	eased := p * p * (3 - 2*p)
	shimmerPos := int(eased * float64(barWidth))
	var barChars []string

	for i := 0; i < barWidth; i++ {
		dist := shimmerPos - i
		if dist < 0 {
			dist = -dist
		}

		var char string
		var style lipgloss.Style

		if dist < 3 {
			char = "▓"
			style = lipgloss.NewStyle().Foreground(accentColor)
		} else if dist < 5 {
			char = "▒"
			style = lipgloss.NewStyle().Foreground(styles.TextSecondary)
		} else {
			char = "░"
			style = lipgloss.NewStyle().Foreground(styles.BgLight)
		}

		barChars = append(barChars, style.Render(char))
	}

	bar := strings.Join(barChars, "")

	indent := "    "

	dots := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	dot := dots[(frame/2)%len(dots)]

	loadingStr := lipgloss.NewStyle().
		Width(percentWidth).
		Align(lipgloss.Right).
		Foreground(accentColor).
		Render(dot)

	return lipgloss.JoinHorizontal(lipgloss.Left,
		indent,
		bar,
		" ",
		loadingStr,
	)
}
