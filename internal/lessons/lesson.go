// Package lessons holds the SQL lesson catalogue: each lesson's practice
// database, its guided exercises and the template bank its tests draw from.
package lessons

import (
	"math/rand/v2"

	"github.com/abhisek/sqlquest/internal/grader"
)

// QuestionType is how a test question is answered.
type QuestionType string

const (
	MultipleChoice QuestionType = "mcq"
	Write          QuestionType = "write"
	Fix            QuestionType = "fix"
)

// Lesson is one topic with its practice database.
type Lesson struct {
	ID    int
	Title string
	Theme string

	// Schema is the SQL script that builds the lesson database.
	Schema string

	// SchemaDisplay is a short summary of the tables, one per line.
	SchemaDisplay string

	// DefaultQuery prefills the sandbox editor.
	DefaultQuery string

	Exercises []Exercise
	Templates []Template
}

// Exercise is a guided task. Its position in the lesson is its index.
type Exercise struct {
	Instruction string
	Hint        string
	Solution    string

	// Verify observes the effect of a data-changing solution.
	Verify string

	// OrderSensitive overrides the ORDER BY heuristic when set.
	OrderSensitive *bool
}

// Template produces one test question. The only randomness a template may
// use is r.
type Template func(r *rand.Rand) Question

// Question is one test item.
type Question struct {
	Type   QuestionType
	Prompt string

	// Write and Fix questions.
	Solution       string
	Verify         string
	OrderSensitive *bool

	// Fix questions: the query the learner must repair.
	Broken string

	// MultipleChoice questions.
	Options []string
	Answer  int
}

// Graded reports whether the question is graded by running SQL.
func (q Question) Graded() bool {
	return q.Type == Write || q.Type == Fix
}

// Submission builds the grading input for a query answering q.
func (q Question) Submission(schema, query string) grader.Submission {
	return grader.Submission{
		Schema:         schema,
		Query:          query,
		Solution:       q.Solution,
		Verify:         q.Verify,
		OrderSensitive: q.OrderSensitive,
	}
}

// ExerciseRef returns the grading target of exercise i.
func (l Lesson) ExerciseRef(i int) grader.Exercise {
	ex := l.Exercises[i]
	return grader.Exercise{
		LessonID:       l.ID,
		Index:          i,
		Total:          len(l.Exercises),
		Schema:         l.Schema,
		Solution:       ex.Solution,
		Verify:         ex.Verify,
		OrderSensitive: ex.OrderSensitive,
	}
}

func unordered() *bool {
	b := false
	return &b
}
