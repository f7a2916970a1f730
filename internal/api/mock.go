package api

import (
	"context"
	"sync"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/dsaintel/dsaiq/internal/quiz"
)

// MockQuiz is a canned FetchQuiz answer.
type MockQuiz struct {
	Questions []quiz.Question
	Err       error
}

// MockAnalytics is a canned FetchAnalytics answer.
type MockAnalytics struct {
	Result analytics.Result
	Err    error
}

// MockSubmit is a canned SubmitQuiz answer.
type MockSubmit struct {
	Ack *Ack
	Err error
}

// MockClient is a deterministic Client for testing.
// Each operation returns its canned answers in FIFO order and records calls.
type MockClient struct {
	mu        sync.Mutex
	quizzes   []MockQuiz
	analytics []MockAnalytics
	submits   []MockSubmit

	QuizCalls      []string
	AnalyticsCalls []string
	Submissions    []quiz.Submission
}

// NewMockClient creates an empty MockClient. Queue answers with the Add methods.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) AddQuiz(r MockQuiz) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes = append(m.quizzes, r)
	return m
}

func (m *MockClient) AddAnalytics(r MockAnalytics) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analytics = append(m.analytics, r)
	return m
}

func (m *MockClient) AddSubmit(r MockSubmit) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submits = append(m.submits, r)
	return m
}

// FetchQuiz returns the next canned quiz or ErrNoMockResponse.
func (m *MockClient) FetchQuiz(_ context.Context, userID string) ([]quiz.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QuizCalls = append(m.QuizCalls, userID)
	if len(m.quizzes) == 0 {
		return nil, &ErrTransport{Endpoint: "GET " + PathQuiz, Err: ErrNoMockResponse}
	}
	r := m.quizzes[0]
	m.quizzes = m.quizzes[1:]
	return r.Questions, r.Err
}

// FetchAnalytics returns the next canned analytics reply or ErrNoMockResponse.
func (m *MockClient) FetchAnalytics(_ context.Context, userID string) (analytics.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AnalyticsCalls = append(m.AnalyticsCalls, userID)
	if len(m.analytics) == 0 {
		return nil, &ErrTransport{Endpoint: "GET " + PathAnalytics, Err: ErrNoMockResponse}
	}
	r := m.analytics[0]
	m.analytics = m.analytics[1:]
	return r.Result, r.Err
}

// SubmitQuiz records the submission and returns the next canned ack. With no
// ack queued it succeeds with an empty Ack.
func (m *MockClient) SubmitQuiz(_ context.Context, sub quiz.Submission) (*Ack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Submissions = append(m.Submissions, sub)
	if len(m.submits) == 0 {
		return &Ack{}, nil
	}
	r := m.submits[0]
	m.submits = m.submits[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Ack == nil {
		return &Ack{}, nil
	}
	return r.Ack, nil
}

// SubmitCount returns the number of SubmitQuiz calls made.
func (m *MockClient) SubmitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Submissions)
}
