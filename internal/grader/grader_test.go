package grader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sqlquest/internal/compare"
	"github.com/abhisek/sqlquest/internal/sqlengine"
	"github.com/abhisek/sqlquest/internal/store"
)

const planetsSchema = `
CREATE TABLE planets (name TEXT, diameter INTEGER);
INSERT INTO planets VALUES ('Mercury', 4879);
INSERT INTO planets VALUES ('Venus', 12104);
`

const itemsSchema = `
CREATE TABLE t (id INTEGER PRIMARY KEY, x INTEGER, label TEXT);
INSERT INTO t VALUES (1, 10, 'A');
INSERT INTO t VALUES (2, 20, 'B');
INSERT INTO t VALUES (3, 30, 'C');
`

func newTestGrader(t *testing.T, opts ...Option) (*Grader, *sqlengine.Session) {
	t.Helper()
	sess, err := sqlengine.Open(context.Background(), sqlengine.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })
	return New(sess, opts...), sess
}

func TestScenarioSameQuery(t *testing.T) {
	g, _ := newTestGrader(t)

	v, err := g.Grade(context.Background(), Submission{
		Schema:   planetsSchema,
		Query:    "SELECT name FROM planets",
		Solution: "SELECT name FROM planets",
	})
	require.NoError(t, err)
	assert.Equal(t, Correct, v.Outcome)
}

func TestScenarioOrderedReference(t *testing.T) {
	g, _ := newTestGrader(t)

	v, err := g.Grade(context.Background(), Submission{
		Schema:   itemsSchema,
		Query:    "SELECT * FROM t ORDER BY x DESC",
		Solution: "SELECT * FROM t ORDER BY x",
	})
	require.NoError(t, err)
	assert.Equal(t, Incorrect, v.Outcome)
	assert.Equal(t, compare.RowOrder, v.Mismatch.Kind)
}

func TestScenarioUnorderedReference(t *testing.T) {
	g, _ := newTestGrader(t)

	v, err := g.Grade(context.Background(), Submission{
		Schema:   itemsSchema,
		Query:    "SELECT * FROM t ORDER BY x DESC",
		Solution: "SELECT * FROM t",
	})
	require.NoError(t, err)
	assert.Equal(t, Correct, v.Outcome)
}

func TestScenarioMutatingWrongValue(t *testing.T) {
	g, _ := newTestGrader(t)

	sub := Submission{
		Schema:   itemsSchema,
		Query:    "INSERT INTO t VALUES (9, 90, 'Y')",
		Solution: "INSERT INTO t VALUES (9, 90, 'X')",
		Verify:   "SELECT * FROM t WHERE id = 9",
	}
	v, err := g.Grade(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, Incorrect, v.Outcome)
	assert.Equal(t, compare.RowValues, v.Mismatch.Kind)

	sub.Query = "insert into t (id, x, label) values (9, 90, 'X')"
	v, err = g.Grade(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, Correct, v.Outcome)
	assert.False(t, v.User.Tabular(), "an INSERT has no result table")
	assert.True(t, v.Observed.Tabular())
}

func TestMutatingDroppedTableIsIncorrect(t *testing.T) {
	g, _ := newTestGrader(t)

	v, err := g.Grade(context.Background(), Submission{
		Schema:   itemsSchema,
		Query:    "DROP TABLE t",
		Solution: "DELETE FROM t WHERE id = 1",
		Verify:   "SELECT COUNT(*) FROM t",
	})
	require.NoError(t, err)
	assert.Equal(t, Incorrect, v.Outcome)
}

func TestUserError(t *testing.T) {
	g, _ := newTestGrader(t)

	v, err := g.Grade(context.Background(), Submission{
		Schema:   planetsSchema,
		Query:    "SELEC name FROM planets",
		Solution: "SELECT name FROM planets",
	})
	require.NoError(t, err)
	assert.Equal(t, UserError, v.Outcome)
	assert.True(t, sqlengine.IsEngineError(v.User.Err))
}

func TestEmptySubmission(t *testing.T) {
	g, _ := newTestGrader(t)

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := g.Grade(context.Background(), Submission{Schema: planetsSchema, Query: q, Solution: "SELECT 1"})
		assert.ErrorIs(t, err, ErrEmptySubmission)
	}
}

func TestBrokenReference(t *testing.T) {
	g, _ := newTestGrader(t)

	_, err := g.Grade(context.Background(), Submission{
		Schema:   planetsSchema,
		Query:    "SELECT name FROM planets",
		Solution: "SELECT missing FROM planets",
	})
	assert.ErrorIs(t, err, ErrReferenceFailed)
}

func TestGradeIsIdempotentAndLeavesCleanDatabase(t *testing.T) {
	g, sess := newTestGrader(t)
	ctx := context.Background()

	sub := Submission{
		Schema:   itemsSchema,
		Query:    "DELETE FROM t WHERE x > 15",
		Solution: "DELETE FROM t WHERE x >= 20",
		Verify:   "SELECT id FROM t",
	}
	for i := 0; i < 2; i++ {
		v, err := g.Grade(ctx, sub)
		require.NoError(t, err)
		assert.Equal(t, Correct, v.Outcome, "attempt %d", i+1)
	}

	res := sess.Exec(ctx, "SELECT COUNT(*) FROM t")
	require.NoError(t, res.Err)
	assert.Equal(t, "3", res.Cell(0, 0), "grading must not leave mutations behind")
}

type fakeLedger struct {
	calls [][3]int
	err   error
}

func (f *fakeLedger) MarkExerciseDone(_ context.Context, lessonID, index, total int) error {
	f.calls = append(f.calls, [3]int{lessonID, index, total})
	return f.err
}

type fakeRecorder struct {
	events []store.AttemptEventData
}

func (f *fakeRecorder) AppendAttempt(_ context.Context, data store.AttemptEventData) error {
	f.events = append(f.events, data)
	return errors.New("disk full")
}

func TestCheckExercise(t *testing.T) {
	ledger := &fakeLedger{}
	rec := &fakeRecorder{}
	g, _ := newTestGrader(t, WithLedger(ledger), WithRecorder(rec))
	ctx := context.Background()

	ex := Exercise{
		LessonID: 1,
		Index:    2,
		Total:    3,
		Schema:   planetsSchema,
		Solution: "SELECT name FROM planets WHERE diameter > 5000",
	}

	v, err := g.CheckExercise(ctx, ex, "SELECT name FROM planets")
	require.NoError(t, err)
	assert.Equal(t, Incorrect, v.Outcome)
	assert.Empty(t, ledger.calls, "a wrong answer must not touch the ledger")

	v, err = g.CheckExercise(ctx, ex, "SELECT name FROM planets WHERE name = 'Venus'")
	require.NoError(t, err)
	assert.Equal(t, Correct, v.Outcome)
	assert.Equal(t, [][3]int{{1, 2, 3}}, ledger.calls)

	// Recorder failures are logged, not returned.
	require.Len(t, rec.events, 2)
	assert.Equal(t, "incorrect", rec.events[0].Outcome)
	assert.Equal(t, "correct", rec.events[1].Outcome)
	assert.Equal(t, store.AttemptKindExercise, rec.events[1].Kind)
}

func TestCheckExerciseLedgerError(t *testing.T) {
	ledger := &fakeLedger{err: errors.New("locked")}
	g, _ := newTestGrader(t, WithLedger(ledger))

	ex := Exercise{LessonID: 1, Total: 1, Schema: planetsSchema, Solution: "SELECT name FROM planets"}
	v, err := g.CheckExercise(context.Background(), ex, "SELECT name FROM planets")
	assert.Error(t, err)
	assert.Equal(t, Correct, v.Outcome)
}
