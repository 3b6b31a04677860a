package lesson

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/progress"
	"github.com/abhisek/sqlquest/internal/screen"
	"github.com/abhisek/sqlquest/internal/sqlengine"
	"github.com/abhisek/sqlquest/internal/store"
)

func newDeps(t *testing.T) screen.Deps {
	t.Helper()
	ctx := context.Background()

	engine, err := sqlengine.Open(ctx, sqlengine.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })

	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", filepath.Base(t.Name())))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ledger, err := progress.Load(ctx, st.KVRepo(), lessons.ExerciseCounts())
	require.NoError(t, err)

	return screen.Deps{Engine: engine, Ledger: ledger, Events: st.EventRepo()}
}

func lessonOne(t *testing.T) lessons.Lesson {
	t.Helper()
	l, err := lessons.Get(1)
	require.NoError(t, err)
	return l
}

// ready returns a screen whose lesson database is built.
func ready(t *testing.T, deps screen.Deps) *LessonScreen {
	t.Helper()
	l := lessonOne(t)
	s := New(deps, l)
	_, _ = s.Update(dbReadyMsg{Err: deps.Engine.Reinit(context.Background(), l.Schema)})
	require.True(t, s.ready)
	return s
}

// run executes cmd and feeds its messages back to s. Spinner ticks are
// dropped so the loop ends.
func run(s *LessonScreen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			run(s, c)
		}
	default:
		_, _ = s.Update(msg)
	}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func TestOpensOnFirstUnsolvedExercise(t *testing.T) {
	deps := newDeps(t)
	require.NoError(t, deps.Ledger.MarkExerciseDone(context.Background(), 1, 0, 3))

	s := New(deps, lessonOne(t))
	assert.Equal(t, 1, s.exercise)
	assert.Equal(t, tabSandbox, s.tab)
	assert.Equal(t, "SELECT * FROM planets;", s.editor.Value())
}

func TestSandboxRunShowsResult(t *testing.T) {
	s := ready(t, newDeps(t))
	s.editor.SetValue("SELECT name FROM planets WHERE moons > 20")

	_, cmd := s.Update(ctrl('r'))
	assert.True(t, s.busy)
	run(s, cmd)

	assert.False(t, s.busy)
	require.NotNil(t, s.result)
	view := s.View(100, 40)
	assert.Contains(t, view, "Jupiter")
	assert.Contains(t, view, "Saturn")
}

func TestSandboxRejectsEmptyQuery(t *testing.T) {
	s := ready(t, newDeps(t))
	s.editor.SetValue("   ")

	_, cmd := s.Update(ctrl('r'))
	assert.Nil(t, cmd)
	assert.Equal(t, "Type a query first.", s.status)
}

func TestCheckCorrectExerciseMarksLedger(t *testing.T) {
	deps := newDeps(t)
	s := ready(t, deps)

	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	require.Equal(t, tabExercises, s.tab)
	s.editor.SetValue("SELECT * FROM planets")

	_, cmd := s.Update(ctrl('r'))
	run(s, cmd)

	require.NotNil(t, s.check)
	assert.Equal(t, grader.Correct, s.check.Verdict.Outcome)
	assert.True(t, deps.Ledger.ExerciseDone(1, 0))
	assert.Contains(t, s.View(100, 50), "Correct")

	attempts, err := deps.Events.QueryAttempts(context.Background(), store.QueryOpts{LessonID: 1})
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}

func TestCheckWrongExerciseExplainsMismatch(t *testing.T) {
	deps := newDeps(t)
	s := ready(t, deps)

	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.editor.SetValue("SELECT name FROM planets")
	_, cmd := s.Update(ctrl('r'))
	run(s, cmd)

	require.NotNil(t, s.check)
	assert.Equal(t, grader.Incorrect, s.check.Verdict.Outcome)
	assert.False(t, deps.Ledger.ExerciseDone(1, 0))
	assert.Contains(t, s.View(100, 50), "Not quite")
}

func TestTabsKeepSeparateDrafts(t *testing.T) {
	s := ready(t, newDeps(t))
	s.editor.SetValue("SELECT 1")

	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Empty(t, s.editor.Value())
	s.editor.SetValue("SELECT name FROM planets")

	_, _ = s.Update(ctrl('n'))
	assert.Equal(t, 1, s.exercise)
	assert.Empty(t, s.editor.Value())
	_, _ = s.Update(ctrl('p'))
	assert.Equal(t, "SELECT name FROM planets", s.editor.Value())

	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, "SELECT 1", s.editor.Value())
}

func TestHintAndSolutionToggles(t *testing.T) {
	s := ready(t, newDeps(t))
	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyTab})

	_, _ = s.Update(ctrl('g'))
	assert.Contains(t, s.View(100, 50), "Hint: Use SELECT * FROM table_name")
	_, _ = s.Update(ctrl('o'))
	assert.Contains(t, s.View(100, 50), "Solution:")
	_, _ = s.Update(ctrl('o'))
	assert.NotContains(t, s.View(100, 50), "Solution:")
}

func TestTestUnavailableWithoutGenerator(t *testing.T) {
	s := ready(t, newDeps(t))
	_, cmd := s.Update(ctrl('t'))
	assert.Nil(t, cmd)
	assert.Equal(t, "Tests are not available.", s.status)
}

func TestBusyScreenHandlesBack(t *testing.T) {
	s := ready(t, newDeps(t))
	assert.False(t, s.HandlesBack())

	s.editor.SetValue("SELECT 1")
	_, _ = s.Update(ctrl('r'))
	assert.True(t, s.HandlesBack())
}
