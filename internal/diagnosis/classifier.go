package diagnosis

import (
	"strings"

	"github.com/abhisek/sqlquest/internal/compare"
	"github.com/abhisek/sqlquest/internal/grader"
)

// Classifier is a rule-based error classifier.
// Returns a category and confidence (0.0–1.0), or ("", 0) if the rule doesn't apply.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) (ErrorCategory, float64)
}

// DefaultClassifiers returns classifiers in priority order. Engine errors
// come first since a query that did not run has no result to inspect.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&EngineErrorClassifier{},
		&ResultShapeClassifier{},
	}
}

// RunClassifiers executes rule-based classifiers in order.
// Returns the first match, or ("", 0, "") if no rules apply.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) (ErrorCategory, float64, string) {
	for _, c := range classifiers {
		cat, conf := c.Classify(input)
		if cat != "" {
			return cat, conf, c.Name()
		}
	}
	return "", 0, ""
}

// EngineErrorClassifier reads SQLite's message for a query that failed.
type EngineErrorClassifier struct{}

func (c *EngineErrorClassifier) Name() string { return "engine-error" }

func (c *EngineErrorClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	v := input.Verdict
	if v.Outcome != grader.UserError || v.User.Err == nil {
		return "", 0
	}
	msg := strings.ToLower(v.User.Err.Error())
	switch {
	case strings.Contains(msg, "no such table"):
		return CategoryUnknownTable, 0.95
	case strings.Contains(msg, "no such column"), strings.Contains(msg, "has no column named"):
		return CategoryUnknownColumn, 0.95
	case strings.Contains(msg, "syntax error"), strings.Contains(msg, "incomplete input"), strings.Contains(msg, "unrecognized token"):
		return CategorySyntax, 0.9
	}
	return "", 0
}

// ResultShapeClassifier maps the first difference between the learner's
// result and the expected one to a category.
type ResultShapeClassifier struct{}

func (c *ResultShapeClassifier) Name() string { return "result-shape" }

func (c *ResultShapeClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	v := input.Verdict
	if v.Outcome != grader.Incorrect {
		return "", 0
	}
	switch v.Mismatch.Kind {
	case compare.ColumnCount, compare.ColumnName:
		return CategoryColumnMismatch, 0.9
	case compare.RowCount:
		return CategoryRowCount, 0.85
	case compare.RowOrder:
		return CategoryOrderOnly, 0.95
	case compare.RowValues, compare.ErrorResult:
		// ErrorResult here means the verification query could not read
		// what the learner's statement left behind.
		return CategoryWrongValues, 0.7
	}
	return "", 0
}
