// Package welcome is the splash screen: a query types itself out, then
// the banner appears as its "result".
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlquest/internal/router"
	"github.com/abhisek/sqlquest/internal/screen"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

const (
	typeInterval = 60 * time.Millisecond
	prompt       = "sqlite> "
	query        = "SELECT * FROM quest;"
)

const banner = `
 ███████╗ ██████╗ ██╗      ██████╗ ██╗   ██╗███████╗███████╗████████╗
 ██╔════╝██╔═══██╗██║     ██╔═══██╗██║   ██║██╔════╝██╔════╝╚══██╔══╝
 ███████╗██║   ██║██║     ██║   ██║██║   ██║█████╗  ███████╗   ██║
 ╚════██║██║▄▄ ██║██║     ██║▄▄ ██║██║   ██║██╔══╝  ╚════██║   ██║
 ███████║╚██████╔╝███████╗╚██████╔╝╚██████╔╝███████╗███████║   ██║
 ╚══════╝ ╚══▀▀═╝ ╚══════╝ ╚══▀▀═╝  ╚═════╝ ╚══════╝╚══════╝   ╚═╝`

// Below this width the block banner wraps, so the plain one is used.
const bannerWidth = 72

type frameMsg struct{}

// WelcomeScreen plays the splash and hands over to the screen next
// returns on the first key press. It never advances by itself.
type WelcomeScreen struct {
	next   func() screen.Screen
	typed  int // runes of query shown
	frames int
	done   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return frame() }

func frame() tea.Cmd {
	return tea.Tick(typeInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// finished reports whether the query is fully typed.
func (w *WelcomeScreen) finished() bool {
	return w.typed >= len([]rune(query))
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		w.frames++
		if !w.finished() {
			w.typed++
		}
		// Keeps ticking for the cursor blink.
		return w, frame()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		return w, router.Replace(w.next())
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	line := theme.Hint.Render(prompt) + theme.Code.Render(string([]rune(query)[:w.typed]))
	if !w.finished() || (w.frames/8)%2 == 0 {
		line += lipgloss.NewStyle().Foreground(theme.Primary).Render("▌")
	}

	parts := []string{line}
	if w.finished() {
		art := banner
		if width < bannerWidth {
			art = "S Q L Q U E S T"
		}
		parts = append(parts,
			"",
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art),
			"",
			theme.Body.Bold(true).Render("Learn SQL one query at a time."),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}
