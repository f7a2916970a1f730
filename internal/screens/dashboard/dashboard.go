package dashboard

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/dsaintel/dsaiq/internal/api"
	"github.com/dsaintel/dsaiq/internal/identity"
	"github.com/dsaintel/dsaiq/internal/router"
	"github.com/dsaintel/dsaiq/internal/screen"
	"github.com/dsaintel/dsaiq/internal/ui/layout"
)

// identityMsg is sent once the learner identity has been resolved.
type identityMsg struct {
	VisitID string
	UserID  string
	Err     error
}

// analyticsMsg is sent when the analytics fetch completes.
type analyticsMsg struct {
	VisitID string
	Result  analytics.Result
	Err     error
}

// Screen shows the learner's mastery analytics. Analytics are fetched once
// per visit.
type Screen struct {
	client api.Client
	ident  identity.Provider

	visitID  string
	resolved bool
	userID   string
	loading  bool
	result   analytics.Result
	err      error

	// offset is the first visible line; lines and height are from the last
	// render and bound it.
	offset int
	lines  int
	height int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a dashboard screen.
func New(client api.Client, ident identity.Provider) *Screen {
	return &Screen{
		client:  client,
		ident:   ident,
		visitID: uuid.NewString(),
	}
}

func (s *Screen) Init() tea.Cmd {
	id := s.visitID
	ident := s.ident
	return func() tea.Msg {
		if ident == nil {
			return identityMsg{VisitID: id}
		}
		userID, err := ident.UserID(context.Background())
		return identityMsg{VisitID: id, UserID: userID, Err: err}
	}
}

func (s *Screen) Title() string {
	return "Dashboard"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "s", Description: "Start assessment"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// DashboardView returns the render model for the current state. A failed
// identity read counts as present so the failure is shown.
func (s *Screen) DashboardView() analytics.DashboardView {
	if !s.resolved {
		return analytics.DashboardView{State: analytics.ViewLoading, Message: analytics.LoadingText}
	}
	return analytics.Classify(s.userID != "" || s.err != nil, s.loading, s.result, s.err)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case identityMsg:
		if msg.VisitID != s.visitID {
			return s, nil
		}
		s.resolved = true
		if msg.Err != nil {
			s.err = msg.Err
			return s, nil
		}
		s.userID = strings.TrimSpace(msg.UserID)
		if s.userID == "" {
			return s, nil
		}
		s.loading = true
		return s, s.fetch(s.userID)

	case analyticsMsg:
		if msg.VisitID != s.visitID {
			return s, nil
		}
		s.loading = false
		s.result = msg.Result
		s.err = msg.Err
		s.offset = 0
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.scroll(-1)
		case "down", "j":
			s.scroll(1)
		case "pgup":
			s.scroll(-max(s.height-1, 1))
		case "pgdown", " ":
			s.scroll(max(s.height-1, 1))
		case "home", "g":
			s.offset = 0
		case "s":
			return s, router.Navigate(router.RouteQuiz, router.ModePush)
		}
	}
	return s, nil
}

func (s *Screen) scroll(delta int) {
	s.offset += delta
	s.clampOffset()
}

func (s *Screen) clampOffset() {
	limit := s.lines - s.height
	if s.offset > limit {
		s.offset = limit
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s *Screen) fetch(userID string) tea.Cmd {
	id := s.visitID
	client := s.client
	return func() tea.Msg {
		res, err := client.FetchAnalytics(context.Background(), userID)
		return analyticsMsg{VisitID: id, Result: res, Err: err}
	}
}
