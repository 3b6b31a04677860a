package assessment

import (
	"context"
	"fmt"

	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/sqlengine"
)

// ExecutionValidator runs a question's solution against the lesson
// database and requires it to grade correct against itself. A wrong answer
// key is worse than no question at all.
//
// With a nil Engine every call opens a private in-memory session, so it
// never disturbs a session the UI is using.
type ExecutionValidator struct {
	Engine grader.Engine
}

func (v *ExecutionValidator) Name() string { return "execution" }

func (v *ExecutionValidator) Validate(ctx context.Context, q *lessons.Question, lesson lessons.Lesson) *ValidationError {
	if !q.Graded() {
		return nil
	}

	engine := v.Engine
	if engine == nil {
		s, err := sqlengine.Open(ctx, sqlengine.Options{})
		if err != nil {
			return v.fail(fmt.Sprintf("open database: %v", err), false)
		}
		defer s.Close()
		engine = s
	}

	if err := engine.Reinit(ctx, lesson.Schema); err != nil {
		return v.fail(fmt.Sprintf("build lesson database: %v", err), false)
	}
	res := engine.Exec(ctx, q.Solution)
	if res.Failed() {
		return v.fail(fmt.Sprintf("solution fails: %v", res.Err), true)
	}
	if !res.Tabular() && q.Verify == "" {
		return v.fail("solution returns no rows and has no verification query", true)
	}

	verdict, err := grader.New(engine).Grade(ctx, q.Submission(lesson.Schema, q.Solution))
	if err != nil {
		return v.fail(err.Error(), true)
	}
	if verdict.Outcome != grader.Correct {
		return v.fail("solution does not grade correct against itself: "+verdict.Mismatch.Describe(), true)
	}

	if q.Type == lessons.Fix {
		broken, err := grader.New(engine).Grade(ctx, q.Submission(lesson.Schema, q.Broken))
		if err == nil && broken.Outcome == grader.Correct {
			return v.fail("broken query already grades correct", true)
		}
	}
	return nil
}

func (v *ExecutionValidator) fail(msg string, retryable bool) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: retryable}
}
