package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/dsaintel/dsaiq/internal/api"
	"github.com/dsaintel/dsaiq/internal/config"
	"github.com/dsaintel/dsaiq/internal/identity"
	"github.com/dsaintel/dsaiq/internal/quiz"
	"github.com/dsaintel/dsaiq/internal/release"
	"github.com/dsaintel/dsaiq/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func readySnapshot() *analytics.Snapshot {
	return &analytics.Snapshot{
		HasOverall:     true,
		OverallMastery: analytics.Num(61.237),
		Concepts: []analytics.ConceptEntry{
			{Name: "Graphs", Mastery: analytics.ConceptEvaluated{Score: analytics.Num(64)}},
			{Name: "Arrays", Mastery: analytics.ConceptNotAttempted{}},
		},
		HasWeakAreas: true,
		WeakAreas: []analytics.WeakArea{
			{SubConcept: "Recursion", Score: analytics.Num(38.44), Severity: analytics.SeverityCritical, Label: "Critical"},
		},
		Recommendations: []analytics.Recommendation{{
			SubConcept:     "Recursion",
			Classification: "Critical",
			ResourceLink:   "https://example.com/recursion",
			TopLevel: analytics.Levels{
				Easy: analytics.QuestionList{Present: true, Items: []analytics.PracticeQuestion{{}, {}}},
			},
		}},
	}
}

func TestWriteReport_Ready(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "u1", analytics.Classify(true, false, readySnapshot(), nil)))

	out := buf.String()
	assert.Contains(t, out, "DSA Intelligence report for u1")
	assert.Contains(t, out, "Overall mastery: 61.24%")
	assert.Contains(t, out, "Graphs")
	assert.Contains(t, out, "64.0%")
	assert.Contains(t, out, "Arrays")
	assert.Contains(t, out, "0.0%")
	assert.Contains(t, out, "38.4%")
	assert.Contains(t, out, "[Critical]")
	assert.Contains(t, out, "Easy: 2 | Medium: 0 | Hard: 0")
	assert.Contains(t, out, "https://example.com/recursion")
	assert.Less(t, strings.Index(out, "Graphs"), strings.Index(out, "Arrays"))
}

func TestWriteReport_EmptySections(t *testing.T) {
	snap := &analytics.Snapshot{HasOverall: true, OverallMastery: analytics.Num(90), HasWeakAreas: true}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "u1", analytics.Classify(true, false, snap, nil)))

	out := buf.String()
	assert.Contains(t, out, analytics.NoWeakAreasText)
	assert.Contains(t, out, analytics.NoRecommendationsText)
	assert.Contains(t, out, "(none)")
}

func TestWriteReport_NonReadyStates(t *testing.T) {
	tests := []struct {
		name string
		view analytics.DashboardView
		want string
	}{
		{"missing identity", analytics.Classify(false, false, nil, nil), analytics.MissingIdentityText},
		{"message", analytics.Classify(true, false, analytics.Message{Text: "No data available"}, nil), "No data available"},
		{"incomplete", analytics.Classify(true, false, &analytics.Snapshot{HasOverall: true}, nil), incompleteReportText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeReport(&buf, "u1", tt.view))
			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestUserSetAndShow(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.SettingsRepo()

	var buf bytes.Buffer
	require.NoError(t, showUser(ctx, &buf, identity.StoreProvider{Repo: repo}))
	assert.Equal(t, "(not set)\n", buf.String())

	buf.Reset()
	require.NoError(t, setUser(ctx, &buf, repo, "  alice  "))
	assert.Equal(t, "User set to alice.\n", buf.String())

	buf.Reset()
	require.NoError(t, showUser(ctx, &buf, identity.StoreProvider{Repo: repo}))
	assert.Equal(t, "alice\n", buf.String())

	buf.Reset()
	require.NoError(t, showUser(ctx, &buf, identity.Override{ID: "bob", Inner: identity.StoreProvider{Repo: repo}}))
	assert.Equal(t, "bob\n", buf.String())
}

func TestUserSet_Blank(t *testing.T) {
	st := openTestStore(t)
	var buf bytes.Buffer
	err := setUser(context.Background(), &buf, st.SettingsRepo(), "   ")
	assert.ErrorIs(t, err, identity.ErrEmpty)
	assert.Empty(t, buf.String())
}

func TestListRequests(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.EventRepo()

	var buf bytes.Buffer
	require.NoError(t, listRequests(ctx, &buf, repo, 10))
	assert.Equal(t, "No requests recorded.\n", buf.String())

	require.NoError(t, repo.AppendRequest(ctx, store.RequestEventData{
		Endpoint: api.PathQuiz, Method: "GET", UserID: "u1", StatusCode: 200, LatencyMs: 12, Success: true,
	}))
	require.NoError(t, repo.AppendRequest(ctx, store.RequestEventData{
		Endpoint: api.PathAnalytics, Method: "GET", Success: false, ErrorMessage: "connection refused",
	}))

	buf.Reset()
	require.NoError(t, listRequests(ctx, &buf, repo, 10))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "REQUEST")
	// Newest first.
	assert.Contains(t, lines[1], "connection refused")
	assert.Contains(t, lines[2], "12ms")
	assert.Contains(t, lines[2], "200")

	buf.Reset()
	require.NoError(t, listRequests(ctx, &buf, repo, 1))
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 2)
}

func TestListAttempts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.AttemptRepo()

	total, acc := 2, 0.5
	require.NoError(t, repo.AppendAttempt(ctx, store.AttemptData{
		SessionID: "s1",
		UserID:    "u1",
		Responses: []quiz.AnswerRecord{
			{QuestionID: "Q1", SelectedOption: "A", TimeTaken: 3},
			{QuestionID: "Q2", SelectedOption: "B", TimeTaken: 4},
		},
		TotalQuestions: &total,
		Accuracy:       &acc,
	}))
	require.NoError(t, repo.AppendAttempt(ctx, store.AttemptData{
		SessionID: "s2",
		UserID:    "u2",
		Responses: []quiz.AnswerRecord{{QuestionID: "Q1", SelectedOption: "C", TimeTaken: 1}},
	}))

	var buf bytes.Buffer
	require.NoError(t, listAttempts(ctx, &buf, repo, store.QueryOpts{UserID: "u1"}))
	out := buf.String()
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "7s")
	assert.Contains(t, out, "s1")
	assert.NotContains(t, out, "s2")

	buf.Reset()
	require.NoError(t, listAttempts(ctx, &buf, repo, store.QueryOpts{}))
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 3)

	buf.Reset()
	require.NoError(t, listAttempts(ctx, &buf, repo, store.QueryOpts{UserID: "nobody"}))
	assert.Equal(t, "No quizzes submitted yet.\n", buf.String())
}

type fakeChecker struct {
	res *release.CheckResult
	err error
}

func (f fakeChecker) Check(context.Context, *release.CheckInput) (*release.CheckResult, error) {
	return f.res, f.err
}

func TestReportRelease(t *testing.T) {
	tests := []struct {
		name    string
		checker fakeChecker
		want    string
		wantErr bool
	}{
		{
			name:    "dev build",
			checker: fakeChecker{err: release.ErrDevBuild},
			want:    "Development build, skipping update check.\n",
		},
		{
			name:    "up to date",
			checker: fakeChecker{res: &release.CheckResult{CurrentVersion: "v1.0.0", LatestVersion: "v1.0.0"}},
			want:    "Up to date (latest is v1.0.0).\n",
		},
		{
			name: "update available",
			checker: fakeChecker{res: &release.CheckResult{
				CurrentVersion: "v1.0.0", LatestVersion: "v1.1.0", ReleaseURL: "https://example.com/r", UpdateAvailable: true,
			}},
			want: "A new version is available: v1.0.0 -> v1.1.0\nhttps://example.com/r\n",
		},
		{
			name:    "check fails",
			checker: fakeChecker{err: errors.New("rate limited")},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := reportRelease(context.Background(), &buf, tt.checker, "v1.0.0")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNewDeps_IdentityAndLogging(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, identity.Save(ctx, st.SettingsRepo(), "stored"))

	cfg := config.DefaultConfig()
	d := newDeps(cfg, st)
	id, err := d.identity.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "stored", id)
	_, logged := d.client.(*api.LoggingClient)
	assert.True(t, logged)

	cfg.UserID = "flag-user"
	cfg.LogRequests = false
	cfg.RequestTimeout = time.Second
	d = newDeps(cfg, st)
	id, err = d.identity.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "flag-user", id)
	_, logged = d.client.(*api.LoggingClient)
	assert.False(t, logged)
}
