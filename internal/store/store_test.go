package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", filepath.Base(t.Name()))
	s, err := Open(dsn)
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
		// so journal_mode is only checked with file-based DBs.
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

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sqlquest.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlquest.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.KVRepo().Set(ctx, "progress", []byte(`{"currentLesson":2}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "explain"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	// A second Open migrates an existing schema without touching rows.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.KVRepo().Get(ctx, "progress")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"currentLesson":2}` {
		t.Errorf("value = %q", got)
	}
	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Success {
		t.Errorf("events = %+v, want one failed request", events)
	}
}

func TestTablesHaveExpectedColumns(t *testing.T) {
	db := openTestStore(t).DB()
	for _, tbl := range tables {
		rows, err := db.Query("SELECT name FROM pragma_table_info(?)", tbl.Name)
		if err != nil {
			t.Fatalf("table_info %s: %v", tbl.Name, err)
		}
		var got []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				t.Fatal(err)
			}
			got = append(got, name)
		}
		rows.Close()
		if len(got) != len(tbl.Columns) {
			t.Errorf("%s has columns %v, want %d", tbl.Name, got, len(tbl.Columns))
		}
	}
}

func TestKVRoundTrip(t *testing.T) {
	s := openTestStore(t)
	kv := s.KVRepo()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: err = %v, want ErrNotFound", err)
	}

	if err := kv.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"a":2}` {
		t.Errorf("value = %s", got)
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete twice: %v", err)
	}
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: err = %v", err)
	}
}

func TestSequenceIsSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendAttempt(ctx, AttemptEventData{LessonID: 1, Kind: AttemptKindExercise, Outcome: "correct"}); err != nil {
		t.Fatalf("append attempt: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "explain", Success: true}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	if err := repo.AppendAttempt(ctx, AttemptEventData{LessonID: 1, Kind: AttemptKindTest, Outcome: "incorrect"}); err != nil {
		t.Fatalf("append attempt: %v", err)
	}

	attempts, err := repo.QueryAttempts(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query attempts: %v", err)
	}
	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query llm: %v", err)
	}
	if len(attempts) != 2 || len(llmEvents) != 1 {
		t.Fatalf("got %d attempts and %d llm events", len(attempts), len(llmEvents))
	}

	// Newest first, with the LLM call in between.
	if attempts[0].Sequence != 3 || llmEvents[0].Sequence != 2 || attempts[1].Sequence != 1 {
		t.Errorf("sequences = %d, %d, %d", attempts[1].Sequence, llmEvents[0].Sequence, attempts[0].Sequence)
	}
}

func TestQueryAttemptsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		lesson := 1 + i%2
		err := repo.AppendAttempt(ctx, AttemptEventData{
			LessonID: lesson,
			Kind:     AttemptKindExercise,
			Index:    i,
			Query:    fmt.Sprintf("SELECT %d", i),
			Outcome:  "correct",
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryAttempts(ctx, QueryOpts{LessonID: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("lesson 2 attempts = %d, want 2", len(got))
	}
	for _, a := range got {
		if a.LessonID != 2 {
			t.Errorf("unexpected lesson %d", a.LessonID)
		}
		if a.EventID == "" {
			t.Error("event id not set")
		}
	}

	limited, err := repo.QueryAttempts(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(limited) != 2 || limited[0].Query != "SELECT 4" {
		t.Errorf("limited = %+v", limited)
	}

	after, err := repo.QueryAttempts(ctx, QueryOpts{After: 3})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(after) != 2 {
		t.Errorf("after 3 = %d events, want 2", len(after))
	}
}

func TestAttemptStatsByLesson(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []AttemptEventData{
		{LessonID: 3, Kind: AttemptKindExercise, Outcome: "correct"},
		{LessonID: 3, Kind: AttemptKindExercise, Outcome: "incorrect"},
		{LessonID: 3, Kind: AttemptKindTest, Outcome: "correct"},
		{LessonID: 1, Kind: AttemptKindTest, Outcome: "error"},
	}
	for _, e := range events {
		if err := repo.AppendAttempt(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := repo.AttemptStatsByLesson(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := []LessonAttemptStats{
		{LessonID: 1, Attempts: 1, Correct: 0, Exercises: 0, Tests: 1},
		{LessonID: 3, Attempts: 3, Correct: 2, Exercises: 2, Tests: 1},
	}
	if len(stats) != len(want) {
		t.Fatalf("stats = %+v", stats)
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("stats[%d] = %+v, want %+v", i, stats[i], want[i])
		}
	}
}

func TestLLMEventsAndUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "explain", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: false, ErrorMessage: "boom"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "explain", InputTokens: 10, OutputTokens: 2, LatencyMs: 100, Success: true},
	}
	for _, d := range data {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	e, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.RequestBody != "req" || !e.Success || e.Timestamp.IsZero() {
		t.Errorf("event = %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 99)
	if err != nil || missing != nil {
		t.Errorf("missing event = %+v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "explain" || byPurpose[0].Calls != 2 || byPurpose[0].InputTokens != 110 {
		t.Errorf("by purpose = %+v", byPurpose)
	}
	if byPurpose[0].AvgLatencyMs != 200 {
		t.Errorf("avg latency = %d, want 200", byPurpose[0].AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Model != "gpt-4o-mini" || byModel[0].OutputTokens != 32 {
		t.Errorf("by model = %+v", byModel)
	}
}
