package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/dsaintel/dsaiq/internal/api"
	"github.com/dsaintel/dsaiq/internal/identity"
	"github.com/dsaintel/dsaiq/internal/quiz"
	"github.com/dsaintel/dsaiq/internal/router"
	"github.com/dsaintel/dsaiq/internal/screen"
	"github.com/dsaintel/dsaiq/internal/screens/assessment"
	"github.com/dsaintel/dsaiq/internal/screens/dashboard"
	"github.com/dsaintel/dsaiq/internal/screens/landing"
	"github.com/dsaintel/dsaiq/internal/store"
	"github.com/dsaintel/dsaiq/internal/ui/layout"
)

// Options wires the shell to its collaborators.
type Options struct {
	Client   api.Client
	Identity identity.Provider
	Settings store.SettingsRepo
	Attempts store.AttemptRepo

	// Route is the first screen shown; unknown names open the landing page.
	Route string

	// Clock drives quiz timers. Nil uses time.Now.
	Clock quiz.Clock
}

// Resolve is the route table.
func (o Options) Resolve(route string) screen.Screen {
	switch route {
	case router.RouteQuiz:
		return assessment.New(o.Client, o.Identity, o.Attempts, o.Clock)
	case router.RouteDashboard:
		return dashboard.New(o.Client, o.Identity)
	default:
		return landing.New(o.Identity, o.Settings)
	}
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int

	userID string
	notice screen.NoticeMsg
}

// NewAppModel creates the root model positioned at opts.Route.
func NewAppModel(opts Options) AppModel {
	return AppModel{
		opts:   opts,
		router: router.New(opts.Resolve(opts.Route)).WithResolver(opts.Resolve),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadIdentity())
}

func (m AppModel) loadIdentity() tea.Cmd {
	ident := m.opts.Identity
	if ident == nil {
		return nil
	}
	return func() tea.Msg {
		id, err := ident.UserID(context.Background())
		if err != nil {
			return screen.NoticeMsg{Text: "Could not read user id: " + err.Error(), Error: true}
		}
		return screen.IdentityMsg{UserID: id}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.IdentityMsg:
		m.userID = msg.UserID
		return m, nil

	case screen.NoticeMsg:
		m.notice = msg
		return m, nil

	case tea.KeyMsg:
		m.notice = screen.NoticeMsg{}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes the frame for the current size.
func (m AppModel) render() string {
	f := layout.Frame{
		UserID: m.userID,
		Notice: layout.Notice{Text: m.notice.Text, Error: m.notice.Error},
		Hints:  m.footerHints(),
	}
	if active := m.router.Active(); active != nil {
		f.Title = active.Title()
	}
	return f.Render(m.width, m.height, m.router.View)
}

// footerHints prefers the active screen's hints over the defaults.
func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
