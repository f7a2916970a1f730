package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/dsaintel/dsaiq/internal/ui/theme"
)

// BarChart renders a horizontal bar per point on a 0-100 scale.
type BarChart struct {
	Title    string
	Subtitle string
	Points   []analytics.Point
	Color    color.Color
	Width    int
}

// NewBarChart creates a chart with the default bar color.
func NewBarChart(title, subtitle string, points []analytics.Point, width int) BarChart {
	return BarChart{
		Title:    title,
		Subtitle: subtitle,
		Points:   points,
		Color:    theme.Secondary,
		Width:    width,
	}
}

// View renders the chart, one line per point, followed by the subtitle.
func (c BarChart) View() string {
	var b strings.Builder
	if c.Title != "" {
		b.WriteString(theme.Section.Render(c.Title))
		b.WriteString("\n")
	}

	labelWidth := 0
	for _, p := range c.Points {
		labelWidth = max(labelWidth, lipgloss.Width(p.Name))
	}

	for _, p := range c.Points {
		b.WriteString(Bar{
			Label:      p.Name,
			LabelWidth: labelWidth,
			Value:      p.Value,
			Color:      c.Color,
			Width:      c.Width,
		}.View())
		b.WriteString("\n")
	}

	if c.Subtitle != "" {
		b.WriteString(theme.Hint.Render(c.Subtitle))
		b.WriteString("\n")
	}
	return b.String()
}

// Bar is a single labelled bar. Value is a percentage and is clamped to 0-100
// for drawing only; the printed label shows the raw value.
type Bar struct {
	Label      string
	LabelWidth int
	Value      float64
	Color      color.Color
	Width      int
}

// View renders the bar.
func (b Bar) View() string {
	label := b.Label
	if pad := b.LabelWidth - lipgloss.Width(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	result := lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "

	value := analytics.FormatPercent(b.Value, 1)
	valueWidth := len(value) + 2

	barWidth := b.Width - lipgloss.Width(result) - valueWidth
	if barWidth < 4 {
		barWidth = 4
	}

	frac := b.Value / 100
	frac = min(max(frac, 0), 1)
	filled := int(float64(barWidth) * frac)
	empty := barWidth - filled

	fill := b.Color
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + value)
	return result
}
