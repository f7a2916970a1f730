package store

import (
	"context"
	"time"

	"github.com/dsaintel/dsaiq/internal/quiz"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int    // max results (0 = unlimited)
	After  int64  // id > After
	Before int64  // id < Before
	UserID string // exact match when non-empty
}

// SettingsRepo is a small key-value table for client settings such as the
// stored user identity.
type SettingsRepo interface {
	// Get returns the value for key and whether it was set.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// RequestEventData captures a single call to the scoring service.
type RequestEventData struct {
	Endpoint     string
	Method       string
	UserID       string
	StatusCode   int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestEventRecord is a stored request event.
type RequestEventRecord struct {
	ID        int64
	Timestamp time.Time
	RequestEventData
}

// EventRepo provides append and query access to request events.
type EventRepo interface {
	// AppendRequest records a scoring service call.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// QueryRequests returns request events, newest first.
	QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEventRecord, error)

	// PruneRequests deletes all but the keep most recent request events.
	PruneRequests(ctx context.Context, keep int) (int, error)
}

// AttemptData captures one submitted quiz. TotalQuestions and Accuracy come
// from the submission acknowledgement and are nil when it did not carry them.
type AttemptData struct {
	SessionID      string
	UserID         string
	Responses      []quiz.AnswerRecord
	TotalQuestions *int
	Accuracy       *float64
}

// AttemptRecord is a stored attempt.
type AttemptRecord struct {
	ID        int64
	Timestamp time.Time
	AttemptData
}

// AttemptRepo provides append and query access to submitted attempts.
type AttemptRepo interface {
	// AppendAttempt records a submitted quiz. A session id is stored at most once.
	AppendAttempt(ctx context.Context, data AttemptData) error

	// QueryAttempts returns attempts, newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)
}
