package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dsaintel/dsaiq/internal/ui/theme"
)

// OptionList renders the answer options of a question. Selected is -1 when
// nothing is chosen yet.
type OptionList struct {
	Options  []string
	Selected int
}

// NewOptionList creates a list with no selection.
func NewOptionList(options []string) OptionList {
	return OptionList{Options: options, Selected: -1}
}

// Move returns the index reached by stepping delta from Selected, wrapping at
// both ends. From no selection a step down lands on the first option and a
// step up on the last.
func (o OptionList) Move(delta int) int {
	n := len(o.Options)
	if n == 0 {
		return -1
	}
	if o.Selected < 0 {
		if delta < 0 {
			return n - 1
		}
		return 0
	}
	return ((o.Selected+delta)%n + n) % n
}

// IndexOf returns the position of option, or -1.
func (o OptionList) IndexOf(option string) int {
	for i, opt := range o.Options {
		if opt == option {
			return i
		}
	}
	return -1
}

// View renders one numbered line per option.
func (o OptionList) View(width int) string {
	var b strings.Builder
	for i, opt := range o.Options {
		marker := "( )"
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == o.Selected {
			marker = "(•)"
			style = theme.Selected
		}
		line := fmt.Sprintf("  %s %d. %s", marker, i+1, opt)
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
