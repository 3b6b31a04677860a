// Package diagnosis explains wrong answers: rule-based classifiers name the
// kind of mistake, and an optional LLM writes a short explanation.
package diagnosis

import "github.com/abhisek/sqlquest/internal/grader"

// ErrorCategory classifies a wrong answer.
type ErrorCategory string

const (
	CategorySyntax         ErrorCategory = "syntax-error"
	CategoryUnknownTable   ErrorCategory = "unknown-table"
	CategoryUnknownColumn  ErrorCategory = "unknown-column"
	CategoryColumnMismatch ErrorCategory = "column-mismatch"
	CategoryRowCount       ErrorCategory = "row-count"
	CategoryOrderOnly      ErrorCategory = "order-only"
	CategoryWrongValues    ErrorCategory = "wrong-values"
	CategoryUnclassified   ErrorCategory = "unclassified"
)

// ClassifyInput holds the context for classification.
type ClassifyInput struct {
	Verdict grader.Verdict

	// Query is the learner's SQL and Solution the reference.
	Query    string
	Solution string

	// Lesson context for the explainer.
	LessonTitle string
	Schema      string
	Prompt      string
}

// DiagnosisResult is the output of classifying a wrong answer.
type DiagnosisResult struct {
	Category       ErrorCategory
	Tip            string  // Short learner-facing advice for Category
	Confidence     float64 // 0.0–1.0
	ClassifierName string  // Which classifier/LLM produced this result
	Explanation    string  // LLM explanation (empty for rule-based)
}
