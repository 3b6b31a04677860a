package assessment

import (
	"context"
	"fmt"

	"github.com/abhisek/sqlquest/internal/lessons"
)

// Validator checks a question before it is shown to the learner.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages and logs,
	// e.g. "structural" or "execution".
	Name() string

	// Validate returns nil when q is fit for lesson.
	Validate(ctx context.Context, q *lessons.Question, lesson lessons.Lesson) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Length limits for generated text.
const (
	maxPromptLen   = 500
	maxSolutionLen = 1000
)

// StructuralValidator checks that required fields are present, within
// length limits, and consistent with the question type.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(_ context.Context, q *lessons.Question, _ lessons.Lesson) *ValidationError {
	if err := q.Check(); err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   err.Error(),
			Retryable: true,
		}
	}
	if len(q.Prompt) > maxPromptLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("prompt exceeds %d characters", maxPromptLen),
			Retryable: true,
		}
	}
	if len(q.Solution) > maxSolutionLen || len(q.Broken) > maxSolutionLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("query exceeds %d characters", maxSolutionLen),
			Retryable: true,
		}
	}
	return nil
}
