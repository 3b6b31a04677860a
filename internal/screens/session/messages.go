package session

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlquest/internal/diagnosis"
	"github.com/abhisek/sqlquest/internal/lessons"
	sess "github.com/abhisek/sqlquest/internal/session"
)

// sessionStartedMsg is sent once the test database is built.
type sessionStartedMsg struct {
	Err error
}

// answerResultMsg carries a graded answer.
type answerResultMsg struct {
	Token     int
	Question  lessons.Question
	Result    sess.AnswerResult
	Diagnosis *diagnosis.DiagnosisResult
	Err       error

	// Explain waits for the LLM explanation, if one was requested.
	Explain tea.Cmd
}
