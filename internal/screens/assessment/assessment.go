package assessment

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/dsaintel/dsaiq/internal/api"
	"github.com/dsaintel/dsaiq/internal/identity"
	"github.com/dsaintel/dsaiq/internal/quiz"
	"github.com/dsaintel/dsaiq/internal/router"
	"github.com/dsaintel/dsaiq/internal/screen"
	"github.com/dsaintel/dsaiq/internal/store"
	"github.com/dsaintel/dsaiq/internal/ui/components"
	"github.com/dsaintel/dsaiq/internal/ui/layout"
)

const tickInterval = time.Second

// Screen runs one quiz visit: resolve identity, fetch questions, collect
// answers, submit, then hand over to the dashboard.
type Screen struct {
	client   api.Client
	ident    identity.Provider
	attempts store.AttemptRepo
	clock    quiz.Clock

	sessionID string
	session   *quiz.Session
	options   components.OptionList
	button    *components.StepButton

	// err is set when identity could not be read and no session exists.
	err error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a quiz screen. attempts may be nil, in which case submitted
// quizzes are not recorded locally. A nil clock uses time.Now.
func New(client api.Client, ident identity.Provider, attempts store.AttemptRepo, clock quiz.Clock) *Screen {
	if clock == nil {
		clock = time.Now
	}
	s := &Screen{
		client:    client,
		ident:     ident,
		attempts:  attempts,
		clock:     clock,
		sessionID: uuid.NewString(),
	}
	s.button = components.NewStepButton(s.advance)
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.resolveIdentity()
}

func (s *Screen) Title() string {
	return "Assessment"
}

// SessionID identifies this visit.
func (s *Screen) SessionID() string {
	return s.sessionID
}

// Session exposes the underlying state machine; nil until identity resolves.
func (s *Screen) Session() *quiz.Session {
	return s.session
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.err != nil {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.session == nil {
		return nil
	}
	switch s.session.Phase() {
	case quiz.PhaseActive:
		action := "Next"
		if s.session.IsLast() {
			action = "Submit"
		}
		return []layout.KeyHint{
			{Key: "1-9", Description: "Select"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: action},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case quiz.PhaseFailed:
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case identityMsg:
		if msg.SessionID != s.sessionID {
			return s, nil
		}
		return s.handleIdentity(msg)

	case questionsMsg:
		if msg.SessionID != s.sessionID {
			return s, nil
		}
		return s.handleQuestions(msg)

	case timerTickMsg:
		if msg.SessionID != s.sessionID || s.session == nil {
			return s, nil
		}
		if s.session.Phase() != quiz.PhaseActive || msg.Epoch != s.session.TimerEpoch() {
			return s, nil
		}
		return s, s.tick()

	case submittedMsg:
		if msg.SessionID != s.sessionID {
			return s, nil
		}
		return s.handleSubmitted(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *Screen) handleIdentity(msg identityMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.err = msg.Err
		return s, nil
	}

	s.session = quiz.NewSession(msg.UserID, s.clock)
	if s.session.Start() == quiz.PhaseBlocked {
		return s, tea.Batch(
			router.Navigate(router.RouteLanding, router.ModeReset),
			notice("Set a user id before starting an assessment.", true),
		)
	}
	return s, s.fetchQuestions(msg.UserID)
}

func (s *Screen) handleQuestions(msg questionsMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || s.session.Phase() != quiz.PhaseLoading {
		return s, nil
	}
	if msg.Err != nil {
		s.session.Fail(msg.Err)
		return s, nil
	}
	if err := s.session.Load(msg.Questions); err != nil {
		return s, nil
	}
	s.syncQuestion()
	return s, s.tick()
}

func (s *Screen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || s.session.Phase() != quiz.PhaseSubmitting {
		return s, nil
	}
	if msg.Err != nil {
		s.session.Fail(msg.Err)
		return s, nil
	}
	if err := s.session.Acknowledge(); err != nil {
		return s, nil
	}

	return s, tea.Batch(
		s.recordAttempt(msg.Ack),
		router.Navigate(router.RouteDashboard, router.ModeReplace),
		notice(ackNotice(msg.Ack), false),
	)
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.err != nil {
		return s, router.Navigate(router.RouteLanding, router.ModeReset)
	}
	if s.session == nil {
		return s, nil
	}

	switch s.session.Phase() {
	case quiz.PhaseFailed:
		return s, router.Navigate(router.RouteLanding, router.ModeReset)
	case quiz.PhaseActive:
	default:
		return s, nil
	}

	key := msg.String()
	switch key {
	case "up", "k":
		s.selectIndex(s.options.Move(-1))
		return s, nil
	case "down", "j":
		s.selectIndex(s.options.Move(1))
		return s, nil
	case "enter":
		return s, s.button.Press(msg)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		s.selectIndex(int(key[0] - '1'))
	}
	return s, nil
}

// selectIndex selects the option at i. Out-of-range indexes are ignored.
func (s *Screen) selectIndex(i int) {
	if i < 0 || i >= len(s.options.Options) {
		return
	}
	if err := s.session.Select(s.options.Options[i]); err != nil {
		return
	}
	s.options.Selected = i
	s.button.Enable()
}

// advance is the button action: record the answer and move on or submit.
func (s *Screen) advance() tea.Cmd {
	step, err := s.session.Next()
	if err != nil {
		return nil
	}
	switch step {
	case quiz.StepAdvanced:
		s.syncQuestion()
		return s.tick()
	case quiz.StepSubmit:
		s.button.Disable()
		return s.submit()
	}
	return nil
}

// syncQuestion rebuilds the widgets for the active question.
func (s *Screen) syncQuestion() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	s.options = components.NewOptionList(q.Options)
	s.button.ResetFor(s.session.IsLast())
}

func (s *Screen) resolveIdentity() tea.Cmd {
	id := s.sessionID
	ident := s.ident
	return func() tea.Msg {
		if ident == nil {
			return identityMsg{SessionID: id}
		}
		userID, err := ident.UserID(context.Background())
		return identityMsg{SessionID: id, UserID: userID, Err: err}
	}
}

func (s *Screen) fetchQuestions(userID string) tea.Cmd {
	id := s.sessionID
	client := s.client
	return func() tea.Msg {
		qs, err := client.FetchQuiz(context.Background(), userID)
		return questionsMsg{SessionID: id, Questions: qs, Err: err}
	}
}

func (s *Screen) submit() tea.Cmd {
	sub, err := s.session.Submission()
	if err != nil {
		s.session.Fail(err)
		return nil
	}
	id := s.sessionID
	client := s.client
	return func() tea.Msg {
		ack, err := client.SubmitQuiz(context.Background(), sub)
		return submittedMsg{SessionID: id, Ack: ack, Err: err}
	}
}

// tick schedules the next timer update for the current epoch.
func (s *Screen) tick() tea.Cmd {
	id := s.sessionID
	epoch := s.session.TimerEpoch()
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return timerTickMsg{SessionID: id, Epoch: epoch}
	})
}

// recordAttempt stores the submitted answers locally. A failure is reported
// as a notice; the submission itself already succeeded.
func (s *Screen) recordAttempt(ack *api.Ack) tea.Cmd {
	if s.attempts == nil {
		return nil
	}
	sub, err := s.session.Submission()
	if err != nil {
		return nil
	}
	data := store.AttemptData{
		SessionID: s.sessionID,
		UserID:    sub.UserID,
		Responses: sub.Responses,
	}
	if ack != nil {
		data.TotalQuestions = ack.TotalQuestions
		data.Accuracy = ack.Accuracy
	}
	repo := s.attempts
	return func() tea.Msg {
		if err := repo.AppendAttempt(context.Background(), data); err != nil {
			return screen.NoticeMsg{Text: "Could not save attempt history: " + err.Error(), Error: true}
		}
		return nil
	}
}

func notice(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return screen.NoticeMsg{Text: text, Error: isErr}
	}
}

// ackNotice summarizes the submission acknowledgement.
func ackNotice(ack *api.Ack) string {
	if ack == nil || ack.TotalQuestions == nil {
		return "Quiz submitted."
	}
	if ack.Accuracy == nil {
		return fmt.Sprintf("Quiz submitted: %d questions scored.", *ack.TotalQuestions)
	}
	return fmt.Sprintf("Quiz submitted: %d questions scored, %.1f%% correct.",
		*ack.TotalQuestions, *ack.Accuracy*100)
}
