package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/dsaintel/dsaiq/internal/quiz"
	"github.com/dsaintel/dsaiq/internal/store"
)

// LoggingClient is a decorator that records every call as a request event.
type LoggingClient struct {
	inner     Client
	eventRepo store.EventRepo
}

// WithLogging wraps a Client with event logging.
func WithLogging(c Client, repo store.EventRepo) Client {
	return &LoggingClient{inner: c, eventRepo: repo}
}

func (l *LoggingClient) FetchQuiz(ctx context.Context, userID string) ([]quiz.Question, error) {
	start := time.Now()
	questions, err := l.inner.FetchQuiz(ctx, userID)
	l.record(ctx, http.MethodGet, PathQuiz, userID, start, err)
	return questions, err
}

func (l *LoggingClient) FetchAnalytics(ctx context.Context, userID string) (analytics.Result, error) {
	start := time.Now()
	res, err := l.inner.FetchAnalytics(ctx, userID)
	l.record(ctx, http.MethodGet, PathAnalytics, userID, start, err)
	return res, err
}

func (l *LoggingClient) SubmitQuiz(ctx context.Context, sub quiz.Submission) (*Ack, error) {
	start := time.Now()
	ack, err := l.inner.SubmitQuiz(ctx, sub)
	l.record(ctx, http.MethodPost, PathSubmit, sub.UserID, start, err)
	return ack, err
}

func (l *LoggingClient) record(ctx context.Context, method, endpoint, userID string, start time.Time, err error) {
	data := store.RequestEventData{
		Endpoint:   endpoint,
		Method:     method,
		UserID:     userID,
		StatusCode: http.StatusOK,
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
	}
	if err != nil {
		data.StatusCode = StatusCode(err)
		data.ErrorMessage = err.Error()
	}

	// The request context may already be done; logging must still happen.
	ctx = context.WithoutCancel(ctx)

	// Log the event but don't fail the request if logging fails.
	if logErr := l.eventRepo.AppendRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log API request event: %v\n", logErr)
	}
}
