package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/sqlquest/internal/lessons"
)

// PromptPreviewLen is the longest prompt shown in a review line.
const PromptPreviewLen = 120

// ReviewItem is one line of the post-test review.
type ReviewItem struct {
	Prompt  string
	Type    lessons.QuestionType
	Answer  string
	Correct bool

	// Expected is the reference query, or the right option for a
	// multiple-choice question. Empty when the answer was correct.
	Expected string
}

// Kind is the question type as shown on a review line: MCQ, WRITE or FIX.
func (r ReviewItem) Kind() string {
	return strings.ToUpper(string(r.Type))
}

// Summary holds the data displayed on the summary screen.
type Summary struct {
	LessonID int
	Title    string
	Score    int
	Total    int
	Passed   bool
	// Required is the lowest passing score.
	Required int
	Review   []ReviewItem
	Duration time.Duration
}

// PassNote tells the learner what score completes the lesson, or that
// this attempt completed it.
func (s Summary) PassNote() string {
	if s.Passed {
		return "This lesson is now marked complete."
	}
	return fmt.Sprintf("Score %d/%d or higher to complete this lesson.", s.Required, s.Total)
}

// Summary builds the review of the answers given so far.
func (s *TestSession) Summary() Summary {
	total := len(s.questions)
	pct := s.passPercent()

	review := make([]ReviewItem, len(s.answers))
	for i, a := range s.answers {
		q := a.Question
		answer, expected := a.Answer.Text, q.Solution
		if q.Type == lessons.MultipleChoice {
			answer, expected = q.Options[a.Answer.Choice], q.Options[q.Answer]
		}
		if a.Correct {
			expected = ""
		}
		review[i] = ReviewItem{
			Prompt:   Truncate(q.Prompt, PromptPreviewLen),
			Type:     q.Type,
			Answer:   answer,
			Correct:  a.Correct,
			Expected: expected,
		}
	}

	var dur time.Duration
	switch {
	case !s.finished.IsZero():
		dur = s.finished.Sub(s.started)
	case !s.started.IsZero():
		dur = s.now().Sub(s.started)
	}

	return Summary{
		LessonID: s.lesson.ID,
		Title:    s.lesson.Title,
		Score:    s.score,
		Total:    total,
		Passed:   s.state == Completed && s.score*100 >= total*pct,
		Required: (total*pct + 99) / 100,
		Review:   review,
		Duration: dur,
	}
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
