package quiz

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNotActive     = errors.New("session is not active")
	ErrUnknownOption = errors.New("option is not one of the question's choices")
	ErrNoQuestions   = errors.New("no questions available")
	ErrWrongPhase    = errors.New("operation not allowed in the current phase")
)

// Phase is the session's position in its lifecycle.
type Phase int

const (
	PhaseUninitialized Phase = iota // Constructed, Start not yet called
	PhaseLoading                    // Waiting for the question set
	PhaseActive                     // Serving questions
	PhaseSubmitting                 // All answers recorded, waiting for the ack
	PhaseComplete                   // Submission acknowledged (terminal)
	PhaseBlocked                    // No identity available (terminal)
	PhaseFailed                     // Empty question set or transport failure (terminal)
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseSubmitting:
		return "submitting"
	case PhaseComplete:
		return "complete"
	case PhaseBlocked:
		return "blocked"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Step reports what a call to Next did.
type Step int

const (
	StepNone     Step = iota // No selection, nothing changed
	StepAdvanced             // Moved to the next question
	StepSubmit               // Last question answered, submission is ready
)

// Clock returns the current time.
type Clock func() time.Time

// Session is the quiz state machine. It is not safe for concurrent use; the
// UI loop is its only caller.
type Session struct {
	userID    string
	clock     Clock
	phase     Phase
	questions []Question
	index     int
	selected  string
	startedAt time.Time
	epoch     int
	answers   []AnswerRecord
	err       error
}

// NewSession creates a session for userID. A nil clock uses time.Now.
func NewSession(userID string, clock Clock) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		userID: userID,
		clock:  clock,
		phase:  PhaseUninitialized,
	}
}

// Start leaves the uninitialized phase. An empty identity blocks the session
// permanently; otherwise the session waits for its question set.
func (s *Session) Start() Phase {
	if s.phase != PhaseUninitialized {
		return s.phase
	}
	if s.userID == "" {
		s.phase = PhaseBlocked
		return s.phase
	}
	s.phase = PhaseLoading
	return s.phase
}

// Load installs the fetched question set and activates the first question.
func (s *Session) Load(questions []Question) error {
	if s.phase != PhaseLoading {
		return fmt.Errorf("load questions in %s: %w", s.phase, ErrWrongPhase)
	}
	if len(questions) == 0 {
		s.phase = PhaseFailed
		s.err = ErrNoQuestions
		return ErrNoQuestions
	}

	s.questions = make([]Question, len(questions))
	copy(s.questions, questions)
	s.index = 0
	s.answers = make([]AnswerRecord, 0, len(questions))
	s.phase = PhaseActive
	s.resetQuestion()
	return nil
}

// Fail moves a loading or submitting session into the failed phase.
func (s *Session) Fail(err error) {
	if s.phase != PhaseLoading && s.phase != PhaseSubmitting {
		return
	}
	s.phase = PhaseFailed
	s.err = err
}

// Select records option as the current choice, replacing any earlier one.
func (s *Session) Select(option string) error {
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	if !s.questions[s.index].HasOption(option) {
		return fmt.Errorf("select %q: %w", option, ErrUnknownOption)
	}
	s.selected = option
	return nil
}

// Next records the current answer and moves on. Without a selection it does
// nothing. On the last question it enters PhaseSubmitting and returns StepSubmit.
func (s *Session) Next() (Step, error) {
	if s.phase != PhaseActive {
		return StepNone, ErrNotActive
	}
	if s.selected == "" {
		return StepNone, nil
	}

	s.answers = append(s.answers, AnswerRecord{
		QuestionID:     s.questions[s.index].ID,
		SelectedOption: s.selected,
		TimeTaken:      recordedSeconds(s.clock().Sub(s.startedAt)),
	})
	s.index++

	if s.index == len(s.questions) {
		s.selected = ""
		s.phase = PhaseSubmitting
		return StepSubmit, nil
	}

	s.resetQuestion()
	return StepAdvanced, nil
}

// Acknowledge completes a submitting session.
func (s *Session) Acknowledge() error {
	if s.phase != PhaseSubmitting {
		return fmt.Errorf("acknowledge in %s: %w", s.phase, ErrWrongPhase)
	}
	s.phase = PhaseComplete
	return nil
}

// Submission returns the payload for the scoring service. It is only
// available once every question has been answered.
func (s *Session) Submission() (Submission, error) {
	if s.phase != PhaseSubmitting && s.phase != PhaseComplete {
		return Submission{}, fmt.Errorf("build submission in %s: %w", s.phase, ErrWrongPhase)
	}
	return Submission{UserID: s.userID, Responses: s.Answers()}, nil
}

// Elapsed is the live per-question counter in whole seconds. It may read 0.
func (s *Session) Elapsed() int {
	if s.phase != PhaseActive {
		return 0
	}
	secs := int(s.clock().Sub(s.startedAt) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Err returns the failure cause for PhaseFailed.
func (s *Session) Err() error { return s.err }

// UserID returns the identity the session was built with.
func (s *Session) UserID() string { return s.userID }

// Position is the index of the active question; it equals Total once all
// questions are answered.
func (s *Session) Position() int { return s.index }

// Total is the number of questions in the session.
func (s *Session) Total() int { return len(s.questions) }

// Selected returns the current choice, or "" when none.
func (s *Session) Selected() string { return s.selected }

// TimerEpoch changes every time the per-question timer is reset. Timer ticks
// scheduled under an older epoch are stale.
func (s *Session) TimerEpoch() int { return s.epoch }

// IsLast reports whether the active question is the final one.
func (s *Session) IsLast() bool {
	return s.phase == PhaseActive && s.index == len(s.questions)-1
}

// Current returns the active question.
func (s *Session) Current() (Question, bool) {
	if s.phase != PhaseActive {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Answers returns a copy of the recorded answers in presentation order.
func (s *Session) Answers() []AnswerRecord {
	out := make([]AnswerRecord, len(s.answers))
	copy(out, s.answers)
	return out
}

func (s *Session) resetQuestion() {
	s.selected = ""
	s.startedAt = s.clock()
	s.epoch++
}

// recordedSeconds rounds d to whole seconds with a floor of 1.
func recordedSeconds(d time.Duration) int {
	secs := int(math.Round(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
