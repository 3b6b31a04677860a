package home

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/progress"
	"github.com/abhisek/sqlquest/internal/router"
	"github.com/abhisek/sqlquest/internal/screen"
	"github.com/abhisek/sqlquest/internal/screens/history"
	lessonscreen "github.com/abhisek/sqlquest/internal/screens/lesson"
	"github.com/abhisek/sqlquest/internal/store"
)

func newDeps(t *testing.T) screen.Deps {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", filepath.Base(t.Name())))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ledger, err := progress.Load(context.Background(), st.KVRepo(), lessons.ExerciseCounts())
	require.NoError(t, err)
	return screen.Deps{Ledger: ledger, Events: st.EventRepo()}
}

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestCursorStartsOnCurrentLesson(t *testing.T) {
	deps := newDeps(t)
	require.NoError(t, deps.Ledger.SetCurrentLesson(context.Background(), 3))

	h := New(deps)
	assert.Equal(t, 2, h.list.Cursor)
	assert.Len(t, h.list.Rows, lessons.Count())
}

func TestLabelShowsProgress(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	_, err := deps.Ledger.RecordTestScore(ctx, 1, 4, 5)
	require.NoError(t, err)

	h := New(deps)
	l, err := lessons.Get(1)
	require.NoError(t, err)
	label := h.lessonLabel(l)
	assert.Contains(t, label, "✓")
	assert.Contains(t, label, "best 4")

	l2, err := lessons.Get(2)
	require.NoError(t, err)
	assert.Contains(t, h.lessonLabel(l2), "best -")
}

func TestEnterOpensLesson(t *testing.T) {
	deps := newDeps(t)
	h := New(deps)

	_, _ = h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	push, ok := cmd().(router.NavMsg)
	require.True(t, ok)
	assert.IsType(t, &lessonscreen.LessonScreen{}, push.Screen)
	assert.Equal(t, 2, deps.Ledger.CurrentLesson())
}

func TestHistoryKey(t *testing.T) {
	h := New(newDeps(t))
	_, cmd := h.Update(key("h"))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.NavMsg)
	require.True(t, ok)
	assert.IsType(t, &history.HistoryScreen{}, push.Screen)
}

func TestResetConfirm(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	_, err := deps.Ledger.RecordTestScore(ctx, 1, 5, 5)
	require.NoError(t, err)

	h := New(deps)
	_, _ = h.Update(key("r"))
	require.True(t, h.confirmReset)
	assert.Contains(t, h.View(100, 40), "Reset all progress?")

	// Enter on the default Cancel button leaves progress alone.
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, h.confirmReset)
	assert.True(t, deps.Ledger.IsCompleted(1))

	_, _ = h.Update(key("r"))
	_, cmd = h.Update(key("y"))
	require.NotNil(t, cmd)
	_, _ = h.Update(cmd())
	assert.False(t, deps.Ledger.IsCompleted(1))
	assert.Contains(t, h.View(100, 40), "Progress reset.")
}

func TestResumeRefreshesMarks(t *testing.T) {
	deps := newDeps(t)
	h := New(deps)
	l, err := lessons.Get(1)
	require.NoError(t, err)
	assert.NotContains(t, h.list.Rows[0], "✓")

	_, err = deps.Ledger.RecordTestScore(context.Background(), 1, 3, 5)
	require.NoError(t, err)
	assert.Nil(t, h.Resume())
	assert.Equal(t, h.lessonLabel(l), h.list.Rows[0])
	assert.Contains(t, h.list.Rows[0], "✓")
}
