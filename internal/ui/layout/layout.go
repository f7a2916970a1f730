package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dsaintel/dsaiq/internal/ui/theme"
)

// AppName is shown at the left of the header bar.
const AppName = "DSA Intelligence"

// Smallest terminal the frame draws in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// Terminals narrower or shorter than these get the compact screen layouts.
const (
	CompactWidth  = 100
	CompactHeight = 30
)

// chromeHeight is the rows taken by the bordered header and footer.
const chromeHeight = 6

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Notice is a one-line status shown above the footer, such as a submission
// acknowledgement or a failed identity save.
type Notice struct {
	Text  string
	Error bool
}

// Frame is the chrome drawn around the active screen: the header with the
// screen title and current learner, an optional notice and the key hints.
type Frame struct {
	Title  string
	UserID string
	Notice Notice
	Hints  []KeyHint
}

// IsCompact reports whether a screen handed a width x contentHeight area
// should use its compact layout. contentHeight excludes the frame chrome.
func IsCompact(width, contentHeight int) bool {
	return width < CompactWidth || contentHeight+chromeHeight < CompactHeight
}

// Render draws the frame at width x height and fills the remaining rows with
// content(width, rows). Terminals below MinWidth x MinHeight get a resize
// message and content is not called.
func (f Frame) Render(width, height int, content func(width, height int) string) string {
	if width < MinWidth || height < MinHeight {
		return renderTooSmall(width, height)
	}

	header := f.header(width)
	footer := f.footer(width)
	if f.Notice.Text != "" {
		footer = f.notice(width) + "\n" + footer
	}

	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(rows).
		Render(content(width, rows))

	return header + "\n" + body + "\n" + footer
}

func (f Frame) header(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + AppName)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)

	user, userColor := f.UserID, theme.Secondary
	if user == "" {
		user, userColor = "no user", theme.TextDim
	}
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render("user ") +
		lipgloss.NewStyle().Foreground(userColor).Render(user)

	// Center the title in the bar, keeping at least one space on each side.
	inner := max(width-4, 0)
	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	return bar(width).Render(left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

func (f Frame) footer(width int) string {
	parts := make([]string, 0, len(f.Hints))
	for _, h := range f.Hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar(width).Render("  " + strings.Join(parts, "   "))
}

func (f Frame) notice(width int) string {
	fg := theme.Success
	if f.Notice.Error {
		fg = theme.Error
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Foreground(fg).
		Render(f.Notice.Text)
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

func renderTooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}
