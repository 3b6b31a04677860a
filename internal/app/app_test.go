package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlquest/internal/router"
	"github.com/abhisek/sqlquest/internal/screen"
	"github.com/abhisek/sqlquest/internal/ui/layout"
)

type stubScreen struct {
	title    string
	back     bool
	gotEsc   bool
	keyHints []layout.KeyHint
}

func (s *stubScreen) Init() tea.Cmd                  { return nil }
func (s *stubScreen) View(width, height int) string { return "stub:" + s.title }
func (s *stubScreen) Title() string                 { return s.title }
func (s *stubScreen) HandlesBack() bool             { return s.back }
func (s *stubScreen) KeyHints() []layout.KeyHint    { return s.keyHints }

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		s.gotEsc = true
	}
	return s, nil
}

func push(t *testing.T, m AppModel, s screen.Screen) AppModel {
	t.Helper()
	updated, _ := m.Update(router.NavMsg{Op: router.OpPush, Screen: s})
	return updated.(AppModel)
}

func TestEscPopsNestedScreen(t *testing.T) {
	m := push(t, newModel(&stubScreen{title: "home"}, nil), &stubScreen{title: "lesson"})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if msg, ok := cmd().(router.NavMsg); !ok || msg.Op != router.OpBack {
		t.Errorf("expected a back NavMsg, got %#v", msg)
	}
}

func TestEscGoesToBackHandler(t *testing.T) {
	top := &stubScreen{title: "test", back: true}
	m := push(t, newModel(&stubScreen{title: "home"}, nil), top)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no pop command")
	}
	if !top.gotEsc {
		t.Error("expected the screen to receive Esc")
	}
}

func TestEscReachesRootScreen(t *testing.T) {
	root := &stubScreen{title: "home"}
	m := newModel(root, nil)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !root.gotEsc {
		t.Error("expected the root screen to receive Esc")
	}
}

func TestViewRendersFrame(t *testing.T) {
	root := &stubScreen{title: "Lessons", keyHints: []layout.KeyHint{{Key: "H", Description: "History"}}}
	updated, _ := newModel(root, nil).Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m := updated.(AppModel)

	content := m.render()
	for _, want := range []string{"SQLQuest", "stub:Lessons", "History", "Quit"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newModel(&stubScreen{}, nil)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestTinyTerminalShowsNotice(t *testing.T) {
	updated, _ := newModel(&stubScreen{title: "home"}, nil).Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	content := updated.(AppModel).render()
	if !strings.Contains(content, "needs at least") {
		t.Errorf("expected size notice, got %q", content)
	}
	if strings.Contains(content, "stub:home") {
		t.Error("screen should not render in a tiny terminal")
	}
}
