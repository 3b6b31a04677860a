package lesson

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlquest/internal/diagnosis"
	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/sqlengine"
)

// dbReadyMsg is sent when the lesson database has been (re)built.
type dbReadyMsg struct {
	Err error
}

// queryResultMsg carries a sandbox run.
type queryResultMsg struct {
	Result sqlengine.Result
}

// checkResultMsg carries a graded exercise attempt.
type checkResultMsg struct {
	Index     int
	Token     int
	Verdict   grader.Verdict
	Diagnosis *diagnosis.DiagnosisResult
	Err       error

	// Explain waits for the LLM explanation, if one was requested.
	Explain tea.Cmd
}

// testReadyMsg is sent when test questions have been drawn.
type testReadyMsg struct {
	Questions []lessons.Question
	Err       error
}
