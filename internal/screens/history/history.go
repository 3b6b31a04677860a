// Package history lists recent graded attempts.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/router"
	"github.com/abhisek/sqlquest/internal/screen"
	"github.com/abhisek/sqlquest/internal/session"
	"github.com/abhisek/sqlquest/internal/store"
	"github.com/abhisek/sqlquest/internal/ui/layout"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

// historyLimit is the number of attempts loaded.
const historyLimit = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptEventRecord
	Stats    []store.LessonAttemptStats
	Err      error
}

// HistoryScreen displays recent attempts, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	attempts  []store.AttemptEventRecord
	stats     []store.LessonAttemptStats
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		ctx := context.Background()

		attempts, err := repo.QueryAttempts(ctx, store.QueryOpts{Limit: historyLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Stats are a nicety; the list still shows without them.
		stats, err := repo.AttemptStatsByLesson(ctx)
		if err != nil {
			return historyLoadedMsg{Attempts: attempts}
		}
		return historyLoadedMsg{Attempts: attempts, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Full query"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Open a lesson and run some queries!")
	}

	inner := max(width-4, 20)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.statsLine()))
	b.WriteString("\n\n")

	lines := make([]string, 0, len(s.attempts))
	selectedLine := 0
	for i, a := range s.attempts {
		if i == s.selected {
			selectedLine = len(lines)
		}
		lines = append(lines, s.renderAttempt(i, a, inner))
		if s.expanded[i] {
			lines = append(lines, lipgloss.NewStyle().
				Width(inner-4).MarginLeft(4).Inherit(theme.Code).
				Render(a.Query))
		}
	}

	avail := max(height-3, 3)
	b.WriteString(strings.Join(window(lines, selectedLine, avail), "\n"))
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (s *HistoryScreen) statsLine() string {
	var attempts, correct int
	for _, st := range s.stats {
		attempts += st.Attempts
		correct += st.Correct
	}
	if attempts == 0 {
		return fmt.Sprintf("Showing the last %d attempts", len(s.attempts))
	}
	return fmt.Sprintf("%d attempts across %d lessons · %.0f%% correct · showing the last %d",
		attempts, len(s.stats), float64(correct)/float64(attempts)*100, len(s.attempts))
}

func (s *HistoryScreen) renderAttempt(i int, a store.AttemptEventRecord, width int) string {
	prefix := "  "
	if i == s.selected {
		prefix = "> "
	}

	where := fmt.Sprintf("L%-2d ex %d", a.LessonID, a.Index+1)
	if a.Kind == store.AttemptKindTest {
		where = fmt.Sprintf("L%-2d test %d", a.LessonID, a.Index+1)
	}
	head := fmt.Sprintf("%s%s  %-12s %s ", prefix, a.Timestamp.Local().Format("Jan 02 15:04"), where, outcomeMark(a.Outcome))
	query := session.Truncate(strings.Join(strings.Fields(a.Query), " "), max(width-lipgloss.Width(head), 10))

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(head + query)
}

func outcomeMark(outcome string) string {
	switch outcome {
	case grader.Correct.String():
		return "✓"
	case grader.UserError.String():
		return "!"
	default:
		return "✗"
	}
}

// window returns at most n lines around index sel.
func window(lines []string, sel, n int) []string {
	if len(lines) <= n {
		return lines
	}
	start := max(sel-n/2, 0)
	if start+n > len(lines) {
		start = len(lines) - n
	}
	return lines[start : start+n]
}
