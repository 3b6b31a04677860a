package welcome

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sqlquest/internal/router"
	"github.com/abhisek/sqlquest/internal/screen"
)

type homeStub struct{}

func (h *homeStub) Init() tea.Cmd                          { return nil }
func (h *homeStub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return h, nil }
func (h *homeStub) View(int, int) string                   { return "home" }
func (h *homeStub) Title() string                          { return "Lessons" }

func newWelcome() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return &homeStub{}
	}), &built
}

func frames(w *WelcomeScreen, n int) {
	for range n {
		w.Update(frameMsg{})
	}
}

func TestQueryTypesOut(t *testing.T) {
	w, _ := newWelcome()
	assert.NotContains(t, w.View(100, 30), "SELECT")

	frames(w, 6)
	view := w.View(100, 30)
	assert.Contains(t, view, "SELECT")
	assert.NotContains(t, view, "quest;")
	assert.NotContains(t, view, "one query at a time")

	frames(w, len(query))
	assert.Contains(t, w.View(100, 30), "one query at a time")
	assert.Equal(t, len(query), w.typed)
}

func TestNarrowTerminalUsesPlainBanner(t *testing.T) {
	w, _ := newWelcome()
	frames(w, len(query))
	assert.Contains(t, w.View(60, 24), "S Q L Q U E S T")
	assert.NotContains(t, w.View(60, 24), "███")
}

func TestKeyHandsOverOnce(t *testing.T) {
	w, built := newWelcome()
	frames(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd)
	nav, ok := cmd().(router.NavMsg)
	require.True(t, ok)
	assert.Equal(t, router.OpReplace, nav.Op)
	assert.IsType(t, &homeStub{}, nav.Screen)

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *built)
}

func TestNoAutoAdvance(t *testing.T) {
	w, built := newWelcome()
	frames(w, 200)
	assert.Zero(t, *built)
	assert.Empty(t, w.Title())
}
