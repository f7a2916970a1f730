package components

import (
	"charm.land/lipgloss/v2"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/dsaintel/dsaiq/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 96 {
		w = 96
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CardInner is the usable text width inside a Card of width cw.
func CardInner(cw int) int {
	return max(cw-4, 1)
}

// Card wraps content in a rounded-border card. cw includes the border and
// padding.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(content)
}

// Badge renders a severity label in its color.
func Badge(s analytics.Severity, label string) string {
	return theme.SeverityStyle(s).Bold(true).Render("[" + label + "]")
}
