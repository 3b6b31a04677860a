package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/lessons"
)

// ErrInvalidState is returned when an operation does not apply to the
// session's current state.
var ErrInvalidState = errors.New("invalid session state")

// ErrNoQuestions is returned by Start for a session without questions.
var ErrNoQuestions = errors.New("session has no questions")

// ErrInvalidChoice is returned for a multiple-choice answer outside the options.
var ErrInvalidChoice = errors.New("choice out of range")

// State is the lifecycle position of a TestSession.
type State int

const (
	NotStarted State = iota
	InProgress
	Completed
	Abandoned
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	case Abandoned:
		return "abandoned"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// NoChoice marks an Answer without a multiple-choice selection.
const NoChoice = -1

// Answer is the learner's response to one question. Text answers write and
// fix questions; Choice answers multiple-choice ones.
type Answer struct {
	Text   string
	Choice int
}

// TextAnswer returns an Answer carrying query text.
func TextAnswer(text string) Answer {
	return Answer{Text: text, Choice: NoChoice}
}

// ChoiceAnswer returns an Answer selecting option i.
func ChoiceAnswer(i int) Answer {
	return Answer{Choice: i}
}

// AnswerRecord is one answered question.
type AnswerRecord struct {
	Question lessons.Question
	Answer   Answer
	Correct  bool
	// Outcome is Correct or Incorrect for multiple choice, and the grader's
	// outcome otherwise.
	Outcome grader.Outcome
}

// AnswerResult is returned by Submit.
type AnswerResult struct {
	Correct bool
	Outcome grader.Outcome

	// Verdict is set for graded query answers.
	Verdict *grader.Verdict

	// Completed is set on the last answer, along with Passed.
	Completed bool
	Passed    bool
}
