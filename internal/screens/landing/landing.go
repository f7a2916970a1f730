package landing

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/dsaintel/dsaiq/internal/identity"
	"github.com/dsaintel/dsaiq/internal/router"
	"github.com/dsaintel/dsaiq/internal/screen"
	"github.com/dsaintel/dsaiq/internal/store"
	"github.com/dsaintel/dsaiq/internal/ui/components"
	"github.com/dsaintel/dsaiq/internal/ui/layout"
)

// currentUserMsg carries the stored identity for prefilling the form.
type currentUserMsg struct {
	UserID string
}

// userSavedMsg is sent when the change-user form has been persisted.
type userSavedMsg struct {
	UserID string
	Err    error
}

// Screen is the start page: product overview, preview charts and the main
// menu.
type Screen struct {
	ident    identity.Provider
	settings store.SettingsRepo

	menu    components.Menu
	userID  string
	editing bool
	input   components.TextInput
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the landing screen. Without a settings repo the user cannot be
// changed from here.
func New(ident identity.Provider, settings store.SettingsRepo) *Screen {
	s := &Screen{
		ident:    ident,
		settings: settings,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start Assessment", Hint: "timed multiple-choice quiz", Action: func() tea.Cmd {
			return router.Navigate(router.RouteQuiz, router.ModePush)
		}},
		{Label: "View Dashboard", Hint: "mastery analytics", Action: func() tea.Cmd {
			return router.Navigate(router.RouteDashboard, router.ModePush)
		}},
		{Label: "Change User", Hint: "set the learner id", Disabled: settings == nil, Action: s.openForm},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *Screen) Init() tea.Cmd {
	ident := s.ident
	if ident == nil {
		return nil
	}
	return func() tea.Msg {
		id, _ := ident.UserID(context.Background())
		return currentUserMsg{UserID: id}
	}
}

func (s *Screen) Title() string {
	return "Home"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Editing reports whether the change-user form is open.
func (s *Screen) Editing() bool {
	return s.editing
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case currentUserMsg:
		s.userID = msg.UserID
		return s, nil

	case userSavedMsg:
		if msg.Err != nil {
			return s, notice("Could not save user: "+msg.Err.Error(), true)
		}
		s.userID = msg.UserID
		s.editing = false
		return s, tea.Batch(
			func() tea.Msg { return screen.IdentityMsg{UserID: msg.UserID} },
			notice("User set to "+msg.UserID+".", false),
		)

	case tea.KeyMsg:
		if s.editing {
			return s.updateForm(msg)
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) openForm() tea.Cmd {
	s.editing = true
	s.input = components.NewTextInput("your user id", 64)
	s.input.Validate = func(v string) error {
		if v == "" {
			return identity.ErrEmpty
		}
		return nil
	}
	s.input.SetValue(s.userID)
	return s.input.Init()
}

func (s *Screen) updateForm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editing = false
		return s, nil
	case "enter":
		if !s.input.Submit() {
			return s, nil
		}
		return s, s.save(s.input.Value())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) save(id string) tea.Cmd {
	repo := s.settings
	return func() tea.Msg {
		if repo == nil {
			return userSavedMsg{Err: errors.New("no settings store")}
		}
		if err := identity.Save(context.Background(), repo, id); err != nil {
			return userSavedMsg{Err: err}
		}
		return userSavedMsg{UserID: id}
	}
}

func notice(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return screen.NoticeMsg{Text: text, Error: isErr}
	}
}
