// Package session is the screen for an end-of-lesson test.
package session

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/diagnosis"
	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/router"
	"github.com/abhisek/sqlquest/internal/screen"
	sess "github.com/abhisek/sqlquest/internal/session"
	"github.com/abhisek/sqlquest/internal/ui/components"
	"github.com/abhisek/sqlquest/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
)

const editorLines = 5

// SessionScreen implements screen.Screen for a running test.
type SessionScreen struct {
	deps   screen.Deps
	lesson lessons.Lesson
	ts     *sess.TestSession
	log    *zap.Logger

	phase    phase
	question lessons.Question
	index    int
	score    int

	editor  components.QueryEditor
	choice  components.MultiChoice
	spinner spinner.Model

	feedback *answerResultMsg
	token    int
	busy     bool

	confirmQuit bool
	quitFocus   int

	status string
	errMsg string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BackHandler = (*SessionScreen)(nil)

// New creates a test screen over questions drawn for l.
func New(deps screen.Deps, l lessons.Lesson, questions []lessons.Question) *SessionScreen {
	log := deps.Log("test")
	opts := []sess.Option{sess.WithLogger(log)}
	if deps.Events != nil {
		opts = append(opts, sess.WithRecorder(deps.Events))
	}
	var ledger sess.Ledger
	if deps.Ledger != nil {
		ledger = deps.Ledger
	}
	return &SessionScreen{
		deps:    deps,
		lesson:  l,
		ts:      sess.New(l, questions, deps.Engine, ledger, opts...),
		log:     log,
		editor:  components.NewQueryEditor("Write your answer...", 60, editorLines),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	ts := s.ts
	s.busy = true
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		return sessionStartedMsg{Err: ts.Start(context.Background())}
	})
}

func (s *SessionScreen) Title() string {
	return "Test: " + s.lesson.Title
}

// HandlesBack reports that Esc opens the quit confirmation instead of
// leaving the screen.
func (s *SessionScreen) HandlesBack() bool {
	return s.errMsg == ""
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit test"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.phase == phaseQuestion && s.question.Type == lessons.MultipleChoice:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Select"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "Ctrl+R", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		s.busy = false
		if msg.Err != nil {
			s.log.Error("failed to start test", zap.Error(msg.Err))
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.showQuestion()

	case answerResultMsg:
		return s.handleAnswer(msg)

	case screen.ExplanationMsg:
		if s.feedback != nil && s.feedback.Token == msg.Token {
			s.feedback.Diagnosis = msg.Result
		}
		return s, nil

	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseQuestion && s.question.Type != lessons.MultipleChoice {
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, router.Back()
	}
	if s.confirmQuit {
		return s.handleQuitKey(msg)
	}
	if s.busy {
		return s, nil
	}

	if msg.String() == "esc" {
		s.confirmQuit = true
		s.quitFocus = 0
		return s, nil
	}

	switch s.phase {
	case phaseFeedback:
		return s.advance()
	case phaseQuestion:
		if s.question.Type == lessons.MultipleChoice {
			var cmd tea.Cmd
			s.choice, cmd = s.choice.Update(msg)
			if s.choice.Submitted {
				return s, tea.Batch(cmd, s.submit(sess.ChoiceAnswer(s.choice.ChosenIndex)))
			}
			return s, cmd
		}
		if msg.String() == "ctrl+r" {
			return s, s.submit(sess.TextAnswer(s.editor.Value()))
		}
		s.status = ""
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleQuitKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "tab", "h", "l":
		s.quitFocus = 1 - s.quitFocus
		return s, nil
	case "y":
		return s, s.quit()
	case "n", "esc":
		s.confirmQuit = false
		return s, nil
	case "enter":
		if s.quitFocus == 1 {
			return s, s.quit()
		}
		s.confirmQuit = false
		return s, nil
	}
	return s, nil
}

// quit abandons the test and leaves the screen.
func (s *SessionScreen) quit() tea.Cmd {
	if err := s.ts.Abandon(); err != nil {
		s.log.Debug("abandon", zap.Error(err))
	}
	return router.Back()
}

func (s *SessionScreen) showQuestion() tea.Cmd {
	q, ok := s.ts.Current()
	if !ok {
		return nil
	}
	s.phase = phaseQuestion
	s.question = q
	s.index = s.ts.Index()
	s.feedback = nil
	s.status = ""

	switch q.Type {
	case lessons.MultipleChoice:
		s.choice = components.NewMultiChoice(q.Options)
		return nil
	case lessons.Fix:
		s.editor.SetValue(q.Broken)
	default:
		s.editor.SetValue("")
	}
	return s.editor.Init()
}

func (s *SessionScreen) submit(a sess.Answer) tea.Cmd {
	s.busy = true
	s.token++
	return tea.Batch(s.spinner.Tick, s.gradeCmd(a, s.token))
}

// gradeCmd submits a to the test and diagnoses a wrong query.
func (s *SessionScreen) gradeCmd(a sess.Answer, token int) tea.Cmd {
	q := s.question
	ts, deps, l := s.ts, s.deps, s.lesson

	return func() tea.Msg {
		res, err := ts.Submit(context.Background(), a)
		msg := answerResultMsg{Token: token, Question: q, Result: res, Err: err}
		if err != nil || res.Verdict == nil {
			return msg
		}
		msg.Diagnosis, msg.Explain = deps.Diagnose(&diagnosis.ClassifyInput{
			Verdict:     *res.Verdict,
			Query:       a.Text,
			Solution:    q.Solution,
			LessonTitle: l.Title,
			Schema:      l.SchemaDisplay,
			Prompt:      q.Prompt,
		}, token)
		return msg
	}
}

func (s *SessionScreen) handleAnswer(msg answerResultMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, grader.ErrEmptySubmission):
			s.status = "Type a query first."
			return s, nil
		case msg.Result.Completed:
			// The score could not be saved, but the test is over.
			s.log.Error("failed to record test score", zap.Error(msg.Err))
			s.status = "Your score could not be saved."
		default:
			s.log.Error("failed to grade answer", zap.Error(msg.Err))
			s.errMsg = msg.Err.Error()
			return s, nil
		}
	}

	s.phase = phaseFeedback
	s.feedback = &msg
	s.score = s.ts.Score()
	if msg.Question.Type == lessons.MultipleChoice {
		s.choice.Reveal(msg.Question.Answer)
	}
	return s, msg.Explain
}

// advance moves from feedback to the next question, or to the summary
// once the last answer is in.
func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	if s.feedback != nil && s.feedback.Result.Completed {
		return s, router.Replace(newSummaryScreenAdapter(s.ts))
	}
	return s, s.showQuestion()
}
