package assessment

import (
	"github.com/dsaintel/dsaiq/internal/api"
	"github.com/dsaintel/dsaiq/internal/quiz"
)

// Every message carries the id of the screen instance that issued it.
// Messages from an earlier visit are dropped.

// identityMsg is sent once the learner identity has been resolved.
type identityMsg struct {
	SessionID string
	UserID    string
	Err       error
}

// questionsMsg is sent when the question fetch completes.
type questionsMsg struct {
	SessionID string
	Questions []quiz.Question
	Err       error
}

// timerTickMsg is sent every second while a question is active. Ticks from an
// older timer epoch are ignored and not rescheduled.
type timerTickMsg struct {
	SessionID string
	Epoch     int
}

// submittedMsg is sent when the submission round-trip completes.
type submittedMsg struct {
	SessionID string
	Ack       *api.Ack
	Err       error
}
