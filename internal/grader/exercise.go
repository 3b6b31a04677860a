package grader

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/store"
)

// Exercise identifies one lesson exercise and carries what it is graded against.
type Exercise struct {
	LessonID int
	Index    int
	// Total is the number of exercises in the owning lesson.
	Total int

	Schema         string
	Solution       string
	Verify         string
	OrderSensitive *bool
}

// Submission builds the grading input for query.
func (e Exercise) Submission(query string) Submission {
	return Submission{
		Schema:         e.Schema,
		Query:          query,
		Solution:       e.Solution,
		Verify:         e.Verify,
		OrderSensitive: e.OrderSensitive,
	}
}

// Ledger receives solved exercises.
type Ledger interface {
	MarkExerciseDone(ctx context.Context, lessonID, index, total int) error
}

// Recorder appends attempts to the history log.
type Recorder interface {
	AppendAttempt(ctx context.Context, data store.AttemptEventData) error
}

// CheckExercise grades query for ex. A correct answer marks the exercise
// done in the ledger, which completes the lesson once every exercise is done.
func (g *Grader) CheckExercise(ctx context.Context, ex Exercise, query string) (Verdict, error) {
	v, err := g.Grade(ctx, ex.Submission(query))
	if err != nil {
		return v, err
	}

	g.record(ctx, store.AttemptEventData{
		LessonID: ex.LessonID,
		Kind:     store.AttemptKindExercise,
		Index:    ex.Index,
		Query:    query,
		Outcome:  v.Outcome.String(),
		Mismatch: string(v.Mismatch.Kind),
	})

	if v.Outcome == Correct && g.ledger != nil {
		if err := g.ledger.MarkExerciseDone(ctx, ex.LessonID, ex.Index, ex.Total); err != nil {
			return v, fmt.Errorf("record progress: %w", err)
		}
	}
	return v, nil
}

func (g *Grader) record(ctx context.Context, data store.AttemptEventData) {
	if g.recorder == nil {
		return
	}
	// History is best effort; a failed write never changes the verdict.
	if err := g.recorder.AppendAttempt(ctx, data); err != nil {
		g.log.Warn("failed to record attempt", zap.Error(err))
	}
}
