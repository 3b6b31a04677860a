// Package summary shows the result of a finished lesson test.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlquest/internal/router"
	"github.com/abhisek/sqlquest/internal/screen"
	"github.com/abhisek/sqlquest/internal/session"
	"github.com/abhisek/sqlquest/internal/ui/components"
	"github.com/abhisek/sqlquest/internal/ui/layout"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

// answerPreviewLen is the longest answer shown on a review line.
const answerPreviewLen = 60

// SummaryScreen displays the test summary.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Test Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to lesson"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Back()
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.Heading(fmt.Sprintf("Lesson %d · %s", sum.LessonID, sum.Title)))
	b.WriteString("\n\n")

	score := fmt.Sprintf("Score: %d/%d", sum.Score, sum.Total)
	if sum.Passed {
		b.WriteString(theme.Correct.Render("✓ Passed!  " + score))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ Not passed.  " + score))
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(sum.PassNote()))
	b.WriteString("\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	if len(sum.Review) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw-4)))
		b.WriteString("\n")
		for i, item := range sum.Review {
			b.WriteString(renderItem(i, item, cw-4))
			b.WriteString("\n")
		}
	}

	return components.Centered(components.Panel(strings.TrimRight(b.String(), "\n"), cw), width, height)
}

func renderItem(i int, item session.ReviewItem, width int) string {
	prompt := lipgloss.NewStyle().Width(width - 4).Foreground(theme.Text).
		Render(fmt.Sprintf("%d. %s: %s", i+1, item.Kind(), item.Prompt))
	answer := lipgloss.NewStyle().Width(width - 4).Inherit(theme.Code).
		Render(session.Truncate(oneLine(item.Answer), answerPreviewLen))
	lines := []string{prompt, "  " + answer}
	if item.Expected != "" {
		lines = append(lines, "  "+theme.Hint.Width(width-6).
			Render("Expected: "+session.Truncate(oneLine(item.Expected), answerPreviewLen)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		components.Mark(item.Correct)+" ",
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
