// Package lesson is the workspace for one lesson: a free-form sandbox over
// the lesson database, the guided exercises and the entry to the test.
package lesson

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/diagnosis"
	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/router"
	"github.com/abhisek/sqlquest/internal/screen"
	sessionscreen "github.com/abhisek/sqlquest/internal/screens/session"
	"github.com/abhisek/sqlquest/internal/ui/components"
	"github.com/abhisek/sqlquest/internal/ui/layout"
)

type tab int

const (
	tabSandbox tab = iota
	tabExercises
)

const editorLines = 6

// LessonScreen implements screen.Screen for an open lesson.
type LessonScreen struct {
	deps   screen.Deps
	lesson lessons.Lesson
	grader *grader.Grader
	log    *zap.Logger

	tab      tab
	editor   components.QueryEditor
	sandbox  string   // sandbox draft while the exercises tab is open
	drafts   []string // per-exercise drafts
	exercise int

	output  viewport.Model
	spinner spinner.Model

	result       *components.ResultTable
	check        *checkResultMsg
	showHint     bool
	showSolution bool

	busy    bool
	ready   bool
	token   int
	wasDone bool
	status  string
	errMsg  string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.Resumer = (*LessonScreen)(nil)
var _ screen.BackHandler = (*LessonScreen)(nil)

// New creates a LessonScreen positioned on the first unsolved exercise.
func New(deps screen.Deps, l lessons.Lesson) *LessonScreen {
	log := deps.Log("lesson").With(zap.Int("lesson", l.ID))
	s := &LessonScreen{
		deps:   deps,
		lesson: l,
		log:    log,
		grader: grader.New(deps.Engine,
			grader.WithLedger(deps.Ledger),
			grader.WithRecorder(deps.Events),
			grader.WithLogger(log),
		),
		editor:  components.NewQueryEditor("Write SQL here...", 60, editorLines),
		sandbox: l.DefaultQuery,
		drafts:  make([]string, len(l.Exercises)),
		output:  viewport.New(viewport.WithWidth(60), viewport.WithHeight(8)),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.editor.SetValue(l.DefaultQuery)
	for i := range l.Exercises {
		if !deps.Ledger.ExerciseDone(l.ID, i) {
			s.exercise = i
			break
		}
	}
	return s
}

func (s *LessonScreen) Init() tea.Cmd {
	return tea.Batch(s.reinit(), s.editor.Init())
}

// Resume rebuilds the database after a test, which leaves it in its own state.
func (s *LessonScreen) Resume() tea.Cmd {
	return s.reinit()
}

// HandlesBack keeps the screen open while an engine command is running.
func (s *LessonScreen) HandlesBack() bool {
	return s.busy && s.errMsg == ""
}

func (s *LessonScreen) Title() string {
	return s.lesson.Title
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.tab == tabExercises {
		return []layout.KeyHint{
			{Key: "Ctrl+R", Description: "Check"},
			{Key: "Ctrl+N/P", Description: "Next/Prev"},
			{Key: "Ctrl+G", Description: "Hint"},
			{Key: "Ctrl+O", Description: "Solution"},
			{Key: "Ctrl+T", Description: "Test"},
			{Key: "Tab", Description: "Sandbox"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+R", Description: "Run"},
		{Key: "Ctrl+E", Description: "Reset DB"},
		{Key: "Ctrl+T", Description: "Test"},
		{Key: "Tab", Description: "Exercises"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dbReadyMsg:
		s.busy = false
		s.ready = msg.Err == nil
		if msg.Err != nil {
			s.log.Error("failed to build lesson database", zap.Error(msg.Err))
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case queryResultMsg:
		s.busy = false
		rt := components.NewResultTable(msg.Result, s.deps.MaxRows)
		s.result = &rt
		s.output.GotoTop()
		return s, nil

	case checkResultMsg:
		return s.handleCheck(msg)

	case screen.ExplanationMsg:
		if s.check != nil && s.check.Token == msg.Token {
			s.check.Diagnosis = msg.Result
		}
		return s, nil

	case testReadyMsg:
		s.busy = false
		if msg.Err != nil {
			s.log.Error("failed to draw test", zap.Error(msg.Err))
			s.status = "Could not start the test: " + msg.Err.Error()
			return s, nil
		}
		s.status = ""
		return s, router.Push(sessionscreen.New(s.deps, s.lesson, msg.Questions))

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

	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

func (s *LessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, router.Back()
	}
	// One engine command at a time.
	if s.busy {
		return s, nil
	}

	switch msg.String() {
	case "tab":
		s.switchTab()
		return s, nil
	case "ctrl+r":
		if s.tab == tabExercises {
			return s, s.checkExercise()
		}
		return s, s.runQuery()
	case "ctrl+e":
		s.status = "Database reset."
		s.result = nil
		return s, s.reinit()
	case "ctrl+t":
		return s, s.startTest()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		s.output, cmd = s.output.Update(msg)
		return s, cmd
	}

	if s.tab == tabExercises {
		switch msg.String() {
		case "ctrl+n":
			s.selectExercise(s.exercise + 1)
			return s, nil
		case "ctrl+p":
			s.selectExercise(s.exercise - 1)
			return s, nil
		case "ctrl+g":
			s.showHint = !s.showHint
			return s, nil
		case "ctrl+o":
			// Revealing does not count as solving.
			s.showSolution = !s.showSolution
			return s, nil
		}
	}

	s.status = ""
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

func (s *LessonScreen) switchTab() {
	if s.tab == tabSandbox {
		if len(s.lesson.Exercises) == 0 {
			return
		}
		s.sandbox = s.editor.Value()
		s.tab = tabExercises
		s.editor.SetValue(s.drafts[s.exercise])
	} else {
		s.drafts[s.exercise] = s.editor.Value()
		s.tab = tabSandbox
		s.editor.SetValue(s.sandbox)
	}
	s.status = ""
	s.output.GotoTop()
}

func (s *LessonScreen) selectExercise(i int) {
	if i < 0 || i >= len(s.lesson.Exercises) || i == s.exercise {
		return
	}
	s.drafts[s.exercise] = s.editor.Value()
	s.exercise = i
	s.editor.SetValue(s.drafts[i])
	s.check = nil
	s.showHint = false
	s.showSolution = false
	s.status = ""
}

func (s *LessonScreen) startBusy() tea.Cmd {
	s.busy = true
	return s.spinner.Tick
}

func (s *LessonScreen) reinit() tea.Cmd {
	engine := s.deps.Engine
	schema := s.lesson.Schema
	return tea.Batch(s.startBusy(), func() tea.Msg {
		return dbReadyMsg{Err: engine.Reinit(context.Background(), schema)}
	})
}

// runQuery executes the editor text in the sandbox. The database is not
// rebuilt first, so changes persist until the next reset.
func (s *LessonScreen) runQuery() tea.Cmd {
	query := s.editor.Query()
	if query == "" {
		s.status = "Type a query first."
		return nil
	}
	if !s.ready {
		return nil
	}
	s.status = ""
	engine := s.deps.Engine
	log := s.log
	return tea.Batch(s.startBusy(), func() tea.Msg {
		res := engine.Exec(context.Background(), query)
		log.Debug("sandbox run", zap.Bool("failed", res.Failed()), zap.Int("rows", len(res.Rows)))
		return queryResultMsg{Result: res}
	})
}

func (s *LessonScreen) checkExercise() tea.Cmd {
	query := s.editor.Query()
	if query == "" {
		s.status = "Type a query first."
		return nil
	}
	s.status = ""
	s.token++
	s.wasDone = s.deps.Ledger.IsCompleted(s.lesson.ID)

	idx, token := s.exercise, s.token
	ex := s.lesson.ExerciseRef(idx)
	input := &diagnosis.ClassifyInput{
		Query:       query,
		Solution:    ex.Solution,
		LessonTitle: s.lesson.Title,
		Schema:      s.lesson.SchemaDisplay,
		Prompt:      s.lesson.Exercises[idx].Instruction,
	}
	g, deps := s.grader, s.deps
	return tea.Batch(s.startBusy(), func() tea.Msg {
		v, err := g.CheckExercise(context.Background(), ex, query)
		if err != nil {
			return checkResultMsg{Index: idx, Token: token, Err: err}
		}
		input.Verdict = v
		diag, wait := deps.Diagnose(input, token)
		return checkResultMsg{Index: idx, Token: token, Verdict: v, Diagnosis: diag, Explain: wait}
	})
}

func (s *LessonScreen) handleCheck(msg checkResultMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, grader.ErrEmptySubmission):
			s.status = "Type a query first."
		case errors.Is(msg.Err, grader.ErrReferenceFailed):
			s.log.Error("exercise reference failed", zap.Int("exercise", msg.Index), zap.Error(msg.Err))
			s.status = "This exercise could not be graded."
		default:
			s.log.Error("check failed", zap.Error(msg.Err))
			s.status = "Check failed: " + msg.Err.Error()
		}
		return s, nil
	}
	if msg.Index != s.exercise {
		return s, nil
	}

	s.check = &msg
	s.output.GotoTop()
	if msg.Verdict.Outcome == grader.Correct && !s.wasDone && s.deps.Ledger.IsCompleted(s.lesson.ID) {
		s.status = "Lesson complete! Every exercise is solved."
	}
	return s, msg.Explain
}

func (s *LessonScreen) startTest() tea.Cmd {
	if s.deps.Generator == nil {
		s.status = "Tests are not available."
		return nil
	}
	s.status = "Preparing test..."
	gen := s.deps.Generator
	l := s.lesson
	return tea.Batch(s.startBusy(), func() tea.Msg {
		qs, err := gen.Start(context.Background(), l)
		return testReadyMsg{Questions: qs, Err: err}
	})
}
