package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dsaintel/dsaiq/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"settings", "request_events", "attempts"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSettings_SetGetDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.SettingsRepo()
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "dsa_user_id"); err != nil || ok {
		t.Fatalf("Get on empty = ok %v, err %v; want false, nil", ok, err)
	}

	if err := repo.Set(ctx, "dsa_user_id", "alice"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, "dsa_user_id", "bob"); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}

	got, ok, err := repo.Get(ctx, "dsa_user_id")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v", ok, err)
	}
	if got != "bob" {
		t.Errorf("value = %q, want %q", got, "bob")
	}

	if err := repo.Delete(ctx, "dsa_user_id"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "dsa_user_id"); ok {
		t.Error("key still present after Delete")
	}
	if err := repo.Delete(ctx, "dsa_user_id"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestRequestEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []RequestEventData{
		{Endpoint: "/quiz", Method: "GET", UserID: "u1", StatusCode: 200, LatencyMs: 12, Success: true},
		{Endpoint: "/quiz/submit", Method: "POST", UserID: "u1", StatusCode: 500, LatencyMs: 30, ErrorMessage: "status 500"},
		{Endpoint: "/analytics/u2", Method: "GET", UserID: "u2", StatusCode: 200, LatencyMs: 8, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendRequest(ctx, e); err != nil {
			t.Fatalf("AppendRequest: %v", err)
		}
	}

	all, err := repo.QueryRequests(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QueryRequests: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Endpoint != "/analytics/u2" {
		t.Errorf("newest endpoint = %q, want /analytics/u2", all[0].Endpoint)
	}
	if all[1].Success || all[1].ErrorMessage != "status 500" || all[1].StatusCode != 500 {
		t.Errorf("failed event = %+v", all[1])
	}
	if all[0].ID <= all[1].ID {
		t.Errorf("ids not descending: %d, %d", all[0].ID, all[1].ID)
	}

	limited, err := repo.QueryRequests(ctx, QueryOpts{Limit: 1, UserID: "u1"})
	if err != nil {
		t.Fatalf("QueryRequests (filtered): %v", err)
	}
	if len(limited) != 1 || limited[0].Endpoint != "/quiz/submit" {
		t.Errorf("filtered = %+v, want the u1 submit", limited)
	}
}

func TestRequestEvents_Prune(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := repo.AppendRequest(ctx, RequestEventData{Endpoint: fmt.Sprintf("/e%d", i), Method: "GET", Success: true}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	n, err := repo.PruneRequests(ctx, 5)
	if err != nil {
		t.Fatalf("PruneRequests: %v", err)
	}
	if n != 2 {
		t.Errorf("pruned = %d, want 2", n)
	}

	left, _ := repo.QueryRequests(ctx, QueryOpts{})
	if len(left) != 5 {
		t.Fatalf("remaining = %d, want 5", len(left))
	}
	if left[0].Endpoint != "/e6" {
		t.Errorf("newest = %q, want /e6", left[0].Endpoint)
	}

	// Fewer than keep is a no-op.
	n, err = repo.PruneRequests(ctx, 10)
	if err != nil || n != 0 {
		t.Errorf("PruneRequests(10) = %d, %v; want 0, nil", n, err)
	}
}

func TestAttempts_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	total := 2
	accuracy := 0.5
	data := AttemptData{
		SessionID: "s-1",
		UserID:    "u1",
		Responses: []quiz.AnswerRecord{
			{QuestionID: "Q1", SelectedOption: "A", TimeTaken: 3},
			{QuestionID: "Q2", SelectedOption: "D", TimeTaken: 2},
		},
		TotalQuestions: &total,
		Accuracy:       &accuracy,
	}
	if err := repo.AppendAttempt(ctx, data); err != nil {
		t.Fatalf("AppendAttempt: %v", err)
	}
	// Same session id again is ignored.
	if err := repo.AppendAttempt(ctx, data); err != nil {
		t.Fatalf("AppendAttempt (duplicate): %v", err)
	}
	if err := repo.AppendAttempt(ctx, AttemptData{SessionID: "s-2", UserID: "u1", Responses: data.Responses[:1]}); err != nil {
		t.Fatalf("AppendAttempt (no ack): %v", err)
	}

	got, err := repo.QueryAttempts(ctx, QueryOpts{UserID: "u1"})
	if err != nil {
		t.Fatalf("QueryAttempts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	latest := got[0]
	if latest.SessionID != "s-2" || latest.TotalQuestions != nil || latest.Accuracy != nil {
		t.Errorf("latest = %+v, want s-2 without ack fields", latest)
	}

	first := got[1]
	if first.TotalQuestions == nil || *first.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %v, want 2", first.TotalQuestions)
	}
	if first.Accuracy == nil || *first.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", first.Accuracy)
	}
	if len(first.Responses) != 2 || first.Responses[1].SelectedOption != "D" || first.Responses[0].TimeTaken != 3 {
		t.Errorf("Responses = %+v", first.Responses)
	}
}

func TestRequestEvents_IDsSurvivePruneAndPage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendN := func(from, to int) {
		for i := from; i < to; i++ {
			if err := repo.AppendRequest(ctx, RequestEventData{Endpoint: fmt.Sprintf("/e%d", i), Method: "GET", Success: true}); err != nil {
				t.Fatalf("append %d: %v", i, err)
			}
		}
	}

	appendN(0, 3)
	if _, err := repo.PruneRequests(ctx, 0); err != nil {
		t.Fatalf("PruneRequests: %v", err)
	}
	appendN(3, 6)

	all, err := repo.QueryRequests(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QueryRequests: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// Ids keep growing after a prune; none is reused.
	if all[2].ID <= 3 {
		t.Errorf("oldest id after prune = %d, want > 3", all[2].ID)
	}

	page, err := repo.QueryRequests(ctx, QueryOpts{After: all[2].ID, Before: all[0].ID})
	if err != nil {
		t.Fatalf("QueryRequests (page): %v", err)
	}
	if len(page) != 1 || page[0].Endpoint != "/e4" {
		t.Errorf("page = %+v, want only /e4", page)
	}
}
