// Package app hosts the root Bubble Tea model: the screen stack with the
// shared header and footer.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/progress"
	"github.com/abhisek/sqlquest/internal/router"
	"github.com/abhisek/sqlquest/internal/screen"
	"github.com/abhisek/sqlquest/internal/screens/home"
	"github.com/abhisek/sqlquest/internal/screens/welcome"
	"github.com/abhisek/sqlquest/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ledger *progress.Ledger
	width  int
	height int
}

// newAppModel creates an AppModel that opens on the welcome screen.
func newAppModel(deps screen.Deps) AppModel {
	w := welcome.New(func() screen.Screen { return home.New(deps) })
	return newModel(w, deps.Ledger)
}

func newModel(initial screen.Screen, ledger *progress.Ledger) AppModel {
	return AppModel{
		router: router.New(initial),
		ledger: ledger,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if b, ok := m.router.Active().(screen.BackHandler); ok && b.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the active screen inside the frame.
func (m AppModel) render() string {
	active := m.router.Active()
	f := layout.Frame{
		Total: lessons.Count(),
		Hints: m.footerHints(active),
	}
	if active != nil {
		f.Title = active.Title()
	}
	if m.ledger != nil {
		f.Completed = m.ledger.CompletedCount()
	}
	return f.Render(m.width, m.height, m.router.View)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(deps screen.Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
