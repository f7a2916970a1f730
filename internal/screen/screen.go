package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/dsaintel/dsaiq/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// IdentityMsg reports the current learner identity to the app shell.
type IdentityMsg struct {
	UserID string
}

// NoticeMsg carries a one-line status shown above the footer until the next
// key press.
type NoticeMsg struct {
	Text  string
	Error bool
}
