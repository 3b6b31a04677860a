package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/router"
	"github.com/abhisek/sqlquest/internal/session"
)

func testSummary(score int) session.Summary {
	return session.Summary{
		LessonID: 4,
		Title:    "Sorting",
		Score:    score,
		Total:    5,
		Passed:   score >= 3,
		Required: 3,
		Duration: 2*time.Minute + 5*time.Second,
		Review: []session.ReviewItem{
			{Prompt: "Sort books by year.", Type: lessons.Write, Answer: "SELECT title\nFROM books ORDER BY year", Correct: true},
			{Prompt: "Which keyword sorts?", Type: lessons.MultipleChoice, Answer: "GROUP BY", Correct: false, Expected: "ORDER BY"},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(4))
	if s.Title() != "Test Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Test Results")
	}
}

func TestSummaryScreen_Passed(t *testing.T) {
	view := New(testSummary(4)).View(100, 40)
	for _, want := range []string{"Passed", "4/5", "now marked complete", "2:05", "SELECT title FROM books ORDER BY year", "GROUP BY"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_NotPassed(t *testing.T) {
	view := New(testSummary(2)).View(100, 40)
	if !strings.Contains(view, "Not passed") {
		t.Error("expected a not-passed message")
	}
	if !strings.Contains(view, "Score 3/5 or higher") {
		t.Error("expected the passing score note")
	}
}

func TestSummaryScreen_ReviewShowsTypeAndExpected(t *testing.T) {
	view := New(testSummary(4)).View(100, 40)
	for _, want := range []string{"1. WRITE: Sort books by year.", "2. MCQ: Which keyword sorts?", "Expected: ORDER BY"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Count(view, "Expected:") != 1 {
		t.Errorf("expected only the wrong answer to show an expected value")
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		s := New(testSummary(4))
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("expected a pop command for %q", key.String())
		}
		if msg, ok := cmd().(router.NavMsg); !ok || msg.Op != router.OpBack {
			t.Errorf("expected a back NavMsg for %q", key.String())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary(4))
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
