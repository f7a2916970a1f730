package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/dsaintel/dsaiq/internal/quiz"
	"github.com/dsaintel/dsaiq/internal/store"
)

// recordingEventRepo implements store.EventRepo in memory.
type recordingEventRepo struct {
	events []store.RequestEventData
	err    error
}

func (r *recordingEventRepo) AppendRequest(_ context.Context, data store.RequestEventData) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, data)
	return nil
}

func (r *recordingEventRepo) QueryRequests(_ context.Context, _ store.QueryOpts) ([]store.RequestEventRecord, error) {
	return nil, nil
}

func (r *recordingEventRepo) PruneRequests(_ context.Context, _ int) (int, error) {
	return 0, nil
}

func TestWithLogging_RecordsEachCall(t *testing.T) {
	mock := NewMockClient().
		AddQuiz(MockQuiz{Questions: []quiz.Question{{ID: "Q1", Options: []string{"A", "B"}}}}).
		AddAnalytics(MockAnalytics{Err: &ErrStatus{Endpoint: "GET /analytics", StatusCode: 503}}).
		AddSubmit(MockSubmit{})
	repo := &recordingEventRepo{}
	c := WithLogging(mock, repo)
	ctx := context.Background()

	_, err := c.FetchQuiz(ctx, "u1")
	require.NoError(t, err)
	_, err = c.FetchAnalytics(ctx, "u1")
	require.Error(t, err)
	_, err = c.SubmitQuiz(ctx, quiz.Submission{UserID: "u1"})
	require.NoError(t, err)

	require.Len(t, repo.events, 3)

	assert.Equal(t, PathQuiz, repo.events[0].Endpoint)
	assert.Equal(t, http.MethodGet, repo.events[0].Method)
	assert.True(t, repo.events[0].Success)
	assert.Equal(t, http.StatusOK, repo.events[0].StatusCode)

	assert.Equal(t, PathAnalytics, repo.events[1].Endpoint)
	assert.False(t, repo.events[1].Success)
	assert.Equal(t, 503, repo.events[1].StatusCode)
	assert.Contains(t, repo.events[1].ErrorMessage, "503")

	assert.Equal(t, PathSubmit, repo.events[2].Endpoint)
	assert.Equal(t, http.MethodPost, repo.events[2].Method)
	assert.Equal(t, "u1", repo.events[2].UserID)
}

func TestWithLogging_LogFailureDoesNotFailCall(t *testing.T) {
	snap := &analytics.Snapshot{HasOverall: true, OverallMastery: analytics.Num(10), HasWeakAreas: true}
	mock := NewMockClient().AddAnalytics(MockAnalytics{Result: snap})
	repo := &recordingEventRepo{err: errors.New("database is locked")}

	res, err := WithLogging(mock, repo).FetchAnalytics(context.Background(), "u1")
	require.NoError(t, err)
	assert.Same(t, snap, res)
}

func TestMockClient_FIFOAndEmptyQueue(t *testing.T) {
	m := NewMockClient().
		AddQuiz(MockQuiz{Questions: []quiz.Question{{ID: "first"}}}).
		AddQuiz(MockQuiz{Err: errors.New("second fails")})
	ctx := context.Background()

	qs, err := m.FetchQuiz(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "first", qs[0].ID)

	_, err = m.FetchQuiz(ctx, "b")
	assert.EqualError(t, err, "second fails")

	_, err = m.FetchQuiz(ctx, "c")
	assert.ErrorIs(t, err, ErrNoMockResponse)
	assert.True(t, IsTransportFailure(err))

	assert.Equal(t, []string{"a", "b", "c"}, m.QuizCalls)
}

func TestMockClient_SubmitRecords(t *testing.T) {
	total := 3
	m := NewMockClient().AddSubmit(MockSubmit{Ack: &Ack{TotalQuestions: &total}})

	ack, err := m.SubmitQuiz(context.Background(), quiz.Submission{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 3, *ack.TotalQuestions)
	assert.Equal(t, 1, m.SubmitCount())
	assert.Equal(t, "u1", m.Submissions[0].UserID)
}
