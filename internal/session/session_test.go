package session

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/progress"
	"github.com/abhisek/sqlquest/internal/sqlengine"
	"github.com/abhisek/sqlquest/internal/store"
)

const planetSchema = `CREATE TABLE planets (name TEXT, diameter_km INT, moons INT);
INSERT INTO planets VALUES ('Mercury',4879,0),('Venus',12104,0),('Earth',12756,1),('Mars',6792,2);`

func testLesson() lessons.Lesson {
	return lessons.Lesson{ID: 3, Title: "Planets", Schema: planetSchema}
}

func testQuestions() []lessons.Question {
	return []lessons.Question{
		{Type: lessons.Write, Prompt: "Names of all planets.", Solution: "SELECT name FROM planets"},
		{Type: lessons.MultipleChoice, Prompt: "Which keyword filters rows?", Options: []string{"WHERE", "ORDER BY", "LIMIT"}, Answer: 0},
		{Type: lessons.Fix, Prompt: "Fix this query:", Broken: "SELEC name FROM planets", Solution: "SELECT name FROM planets"},
		{Type: lessons.Write, Prompt: "Planets with moons.", Solution: "SELECT name FROM planets WHERE moons > 0"},
		{Type: lessons.MultipleChoice, Prompt: "What does LIMIT do?", Options: []string{"Caps rows", "Sorts"}, Answer: 0},
	}
}

type fixture struct {
	engine *sqlengine.Session
	store  *store.Store
	ledger *progress.Ledger
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	engine, err := sqlengine.Open(ctx, sqlengine.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })

	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", filepath.Base(t.Name())))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ledger, err := progress.Load(ctx, st.KVRepo(), lessons.ExerciseCounts())
	require.NoError(t, err)

	return fixture{engine: engine, store: st, ledger: ledger}
}

func (f fixture) session(opts ...Option) *TestSession {
	opts = append([]Option{WithRecorder(f.store.EventRepo())}, opts...)
	return New(testLesson(), testQuestions(), f.engine, f.ledger, opts...)
}

func TestThreeOfFivePassesAndCompletesLesson(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.session()

	require.NoError(t, s.Start(ctx))
	assert.Equal(t, InProgress, s.State())

	answers := []struct {
		answer  Answer
		correct bool
	}{
		{TextAnswer("SELECT name FROM planets"), true},
		{ChoiceAnswer(0), true},
		{TextAnswer("SELECT name FROM planets ORDER BY name"), true},
		{TextAnswer("SELECT name FROM planets WHERE moons > 1"), false},
		{ChoiceAnswer(1), false},
	}

	var res AnswerResult
	for i, a := range answers {
		q, ok := s.Current()
		require.True(t, ok)
		assert.Equal(t, testQuestions()[i].Prompt, q.Prompt)

		var err error
		res, err = s.Submit(ctx, a.answer)
		require.NoError(t, err)
		assert.Equal(t, a.correct, res.Correct, "question %d", i+1)
		assert.Equal(t, i == len(answers)-1, res.Completed)
	}

	assert.True(t, res.Passed)
	assert.Equal(t, Completed, s.State())
	assert.Equal(t, 3, s.Score())
	assert.Equal(t, 5, s.Total())

	assert.True(t, f.ledger.IsCompleted(3))
	assert.GreaterOrEqual(t, f.ledger.BestScore(3), 3)

	sum := s.Summary()
	assert.True(t, sum.Passed)
	assert.Equal(t, 3, sum.Required)
	assert.Equal(t, "This lesson is now marked complete.", sum.PassNote())
	require.Len(t, sum.Review, 5)
	assert.Equal(t, "WHERE", sum.Review[1].Answer)
	assert.False(t, sum.Review[4].Correct)

	attempts, err := f.store.EventRepo().QueryAttempts(ctx, store.QueryOpts{LessonID: 3})
	require.NoError(t, err)
	require.Len(t, attempts, 5)
	for _, a := range attempts {
		assert.Equal(t, s.ID(), a.SessionID)
		assert.Equal(t, store.AttemptKindTest, a.Kind)
	}
}

func TestReviewShowsExpectedForWrongAnswers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.session()
	require.NoError(t, s.Start(ctx))

	for _, a := range []Answer{
		TextAnswer("SELECT name FROM planets"),
		ChoiceAnswer(2),
		TextAnswer("SELECT diameter_km FROM planets"),
		TextAnswer("SELECT name FROM planets WHERE moons > 0"),
		ChoiceAnswer(1),
	} {
		_, err := s.Submit(ctx, a)
		require.NoError(t, err)
	}

	sum := s.Summary()
	require.Len(t, sum.Review, 5)

	wantExpected := []string{"", "WHERE", "SELECT name FROM planets", "", "Caps rows"}
	for i, item := range sum.Review {
		assert.Equal(t, wantExpected[i], item.Expected, "question %d", i+1)
		assert.Equal(t, item.Expected == "", item.Correct, "question %d", i+1)
	}
	assert.Equal(t, "LIMIT", sum.Review[1].Answer)
	assert.Equal(t, []string{"WRITE", "MCQ", "FIX", "WRITE", "MCQ"},
		[]string{sum.Review[0].Kind(), sum.Review[1].Kind(), sum.Review[2].Kind(), sum.Review[3].Kind(), sum.Review[4].Kind()})

	assert.False(t, sum.Passed)
	assert.Equal(t, "Score 3/5 or higher to complete this lesson.", sum.PassNote())
}

func TestFailingScoreKeepsLessonOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.session()
	require.NoError(t, s.Start(ctx))

	for range s.Total() {
		q, _ := s.Current()
		a := TextAnswer("SELECT 1")
		if q.Type == lessons.MultipleChoice {
			a = ChoiceAnswer(1)
		}
		_, err := s.Submit(ctx, a)
		require.NoError(t, err)
	}

	assert.Equal(t, 0, s.Score())
	assert.False(t, f.ledger.IsCompleted(3))
	assert.False(t, s.Summary().Passed)
}

func TestBestScoreNeverDecreases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.RecordTestScore(ctx, 3, 4, 5)
	require.NoError(t, err)

	s := f.session()
	require.NoError(t, s.Start(ctx))
	for range s.Total() {
		q, _ := s.Current()
		a := TextAnswer("SELECT 1")
		if q.Type == lessons.MultipleChoice {
			a = ChoiceAnswer(1)
		}
		_, err := s.Submit(ctx, a)
		require.NoError(t, err)
	}
	assert.Equal(t, 4, f.ledger.BestScore(3))
}

func TestEngineErrorCountsAsIncorrect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.session()
	require.NoError(t, s.Start(ctx))

	res, err := s.Submit(ctx, TextAnswer("SELECT nope FROM planets"))
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, grader.UserError, res.Outcome)
	require.NotNil(t, res.Verdict)
	assert.Error(t, res.Verdict.User.Err)
	assert.Equal(t, 1, s.Index())
}

func TestEmptyAnswerChangesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.session()
	require.NoError(t, s.Start(ctx))

	_, err := s.Submit(ctx, TextAnswer("   \n"))
	assert.ErrorIs(t, err, grader.ErrEmptySubmission)
	assert.Equal(t, 0, s.Index())
	assert.Empty(t, s.Answers())

	_, err = s.Submit(ctx, TextAnswer("SELECT name FROM planets"))
	require.NoError(t, err)

	_, err = s.Submit(ctx, Answer{Choice: NoChoice})
	assert.ErrorIs(t, err, grader.ErrEmptySubmission)

	_, err = s.Submit(ctx, ChoiceAnswer(7))
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Equal(t, 1, s.Index())
}

func TestSubmitResetsSandboxChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.session()
	require.NoError(t, s.Start(ctx))

	res := f.engine.Exec(ctx, "DELETE FROM planets")
	require.False(t, res.Failed())

	got, err := s.Submit(ctx, TextAnswer("SELECT name FROM planets"))
	require.NoError(t, err)
	assert.True(t, got.Correct)
}

func TestStateErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s := f.session()
	_, err := s.Submit(ctx, TextAnswer("SELECT 1"))
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, s.Start(ctx))
	assert.ErrorIs(t, s.Start(ctx), ErrInvalidState)

	require.NoError(t, s.Abandon())
	assert.Equal(t, Abandoned, s.State())
	assert.ErrorIs(t, s.Abandon(), ErrInvalidState)
	_, err = s.Submit(ctx, TextAnswer("SELECT 1"))
	assert.ErrorIs(t, err, ErrInvalidState)
	_, ok := s.Current()
	assert.False(t, ok)

	empty := New(testLesson(), nil, f.engine, f.ledger)
	assert.ErrorIs(t, empty.Start(ctx), ErrNoQuestions)
}

func TestAbandonLeavesLedgerUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := f.session()
	require.NoError(t, s.Start(ctx))

	for range s.Total() - 1 {
		q, _ := s.Current()
		a := TextAnswer(q.Solution)
		if q.Type == lessons.MultipleChoice {
			a = ChoiceAnswer(q.Answer)
		}
		_, err := s.Submit(ctx, a)
		require.NoError(t, err)
	}
	require.NoError(t, s.Abandon())

	assert.Equal(t, 4, s.Score())
	assert.False(t, f.ledger.IsCompleted(3))
	assert.Equal(t, 0, f.ledger.BestScore(3))
}

func TestSummaryDuration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := New(testLesson(), testQuestions()[:1], f.engine, nil, WithClock(clock))

	require.NoError(t, s.Start(ctx))
	now = now.Add(90 * time.Second)
	res, err := s.Submit(ctx, TextAnswer("SELECT name FROM planets"))
	require.NoError(t, err)
	assert.True(t, res.Passed)

	now = now.Add(time.Hour)
	assert.Equal(t, 90*time.Second, s.Summary().Duration)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 120))
	long := strings.Repeat("a", 130)
	got := Truncate(long, PromptPreviewLen)
	assert.Len(t, []rune(got), PromptPreviewLen)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "héllo", Truncate("héllo", 5))
}

func TestRequiredScaleWithTotal(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		total, required int
	}{
		{5, 3}, {4, 3}, {3, 2}, {2, 2}, {1, 1},
	}
	for _, tt := range tests {
		s := New(testLesson(), testQuestions()[:tt.total], f.engine, f.ledger)
		sum := s.Summary()
		assert.Equal(t, tt.required, sum.Required, "total %d", tt.total)
		assert.False(t, sum.Passed)
	}
}
