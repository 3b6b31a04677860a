package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/router"
	"github.com/abhisek/sqlquest/internal/screen"
	"github.com/abhisek/sqlquest/internal/screens/history"
	lessonscreen "github.com/abhisek/sqlquest/internal/screens/lesson"
	"github.com/abhisek/sqlquest/internal/ui/components"
	"github.com/abhisek/sqlquest/internal/ui/layout"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

// resetDoneMsg is sent after the ledger has been cleared.
type resetDoneMsg struct {
	Err error
}

// HomeScreen lists the lessons with their progress.
type HomeScreen struct {
	deps    screen.Deps
	lessons []lessons.Lesson
	list    components.List
	log     *zap.Logger

	confirmReset bool
	resetFocus   int // 0 = cancel, 1 = reset
	notice       string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen with the cursor on the learner's current lesson.
func New(deps screen.Deps) *HomeScreen {
	h := &HomeScreen{
		deps:    deps,
		lessons: lessons.All(),
		log:     deps.Log("home"),
	}
	h.refreshRows()
	if cur := deps.Ledger.CurrentLesson(); cur >= 1 && cur <= len(h.lessons) {
		h.list.Cursor = cur - 1
	}
	return h
}

func (h *HomeScreen) refreshRows() {
	h.list.Rows = h.list.Rows[:0]
	for _, l := range h.lessons {
		h.list.Rows = append(h.list.Rows, h.lessonLabel(l))
	}
	h.list.Move(0)
}

// lessonLabel renders one lesson row: completion mark, title, best test
// score and solved exercises.
func (h *HomeScreen) lessonLabel(l lessons.Lesson) string {
	ledger := h.deps.Ledger
	mark := "  "
	if ledger.IsCompleted(l.ID) {
		mark = "✓ "
	}
	done := ledger.ExercisesDoneCount(l.ID, len(l.Exercises))
	best := "-"
	if b := ledger.BestScore(l.ID); b > 0 {
		best = fmt.Sprint(b)
	}
	return fmt.Sprintf("%s%2d. %-24s  ex %d/%d  best %s", mark, l.ID, l.Title, done, len(l.Exercises), best)
}

func (h *HomeScreen) openLesson(l lessons.Lesson) tea.Cmd {
	if err := h.deps.Ledger.SetCurrentLesson(context.Background(), l.ID); err != nil {
		h.log.Warn("failed to save current lesson", zap.Error(err))
	}
	return router.Push(lessonscreen.New(h.deps, l))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes completion marks after a lesson screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refreshRows()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Lessons"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirmReset {
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "H", Description: "History"},
		{Key: "R", Description: "Reset progress"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resetDoneMsg:
		if msg.Err != nil {
			h.notice = "Reset failed: " + msg.Err.Error()
		} else {
			h.notice = "Progress reset."
			h.list.Cursor = 0
		}
		h.refreshRows()
		return h, nil

	case tea.KeyMsg:
		if h.confirmReset {
			return h.handleConfirmKey(msg)
		}
		h.notice = ""
		switch msg.String() {
		case "h", "H":
			if h.deps.Events == nil {
				return h, nil
			}
			return h, router.Push(history.New(h.deps.Events))
		case "r", "R":
			h.confirmReset = true
			h.resetFocus = 0
			return h, nil
		case "q", "Q":
			return h, tea.Quit
		case "enter":
			if len(h.lessons) == 0 {
				return h, nil
			}
			return h, h.openLesson(h.lessons[h.list.Cursor])
		}
		h.list.HandleKey(msg, 5)
	}
	return h, nil
}

func (h *HomeScreen) handleConfirmKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "tab":
		h.resetFocus = 1 - h.resetFocus
	case "y", "Y":
		h.confirmReset = false
		return h, h.resetProgress()
	case "n", "N", "esc":
		h.confirmReset = false
	case "enter":
		h.confirmReset = false
		if h.resetFocus == 1 {
			return h, h.resetProgress()
		}
	}
	return h, nil
}

func (h *HomeScreen) resetProgress() tea.Cmd {
	ledger := h.deps.Ledger
	log := h.log
	return func() tea.Msg {
		err := ledger.Reset(context.Background())
		if err != nil {
			log.Error("failed to reset progress", zap.Error(err))
		} else {
			log.Info("progress reset")
		}
		return resetDoneMsg{Err: err}
	}
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if h.confirmReset {
		return components.Centered(h.renderConfirm(cw), width, height)
	}

	completed := h.deps.Ledger.CompletedCount()
	var b strings.Builder
	b.WriteString(components.Meter("Completed", completed, len(h.lessons), cw-4))
	b.WriteString("\n\n")

	// Leave room for the meter, the notice and the panel border.
	b.WriteString(h.list.View(max(height-8, 3)))

	if h.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(h.notice))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(b.String(), cw+2))
}

func (h *HomeScreen) renderConfirm(cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Reset all progress?")
	sub := theme.Hint.Render("Completed lessons, best scores and solved exercises will be erased.")
	buttons := components.Choices(h.resetFocus, "Cancel", "Reset")
	body := lipgloss.JoinVertical(lipgloss.Center, title, "", sub, "", buttons)
	return components.Panel(lipgloss.PlaceHorizontal(cw-4, lipgloss.Center, body), cw)
}
