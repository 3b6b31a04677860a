package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/ui/components"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.confirmQuit {
		return s.renderQuitConfirm(width, height)
	}
	if s.phase == phaseLoading {
		return components.Centered(s.spinner.View()+" "+theme.Hint.Render("Preparing your test..."), width, height)
	}

	inner := max(width-4, 20)
	body := lipgloss.JoinVertical(lipgloss.Left,
		s.renderProgress(inner),
		"",
		s.renderQuestion(inner),
	)
	return lipgloss.NewStyle().Padding(0, 2).Render(body)
}

func (s *SessionScreen) renderProgress(width int) string {
	total := s.ts.Total()
	left := components.Heading(fmt.Sprintf("Question %d of %d", s.index+1, total))
	right := theme.Hint.Render(fmt.Sprintf("Score %d", s.score))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s *SessionScreen) renderQuestion(width int) string {
	q := s.question
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(theme.Hint.Render(typeLabel(q.Type)))
	b.WriteString("\n")
	b.WriteString(wrap.Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")

	if q.Type == lessons.MultipleChoice {
		b.WriteString(s.choice.View())
	} else {
		b.WriteString(theme.Hint.Render(s.lesson.SchemaDisplay))
		b.WriteString("\n")
		s.editor.SetSize(width, editorLines)
		b.WriteString(s.editor.View())
		b.WriteString("\n")
	}

	switch {
	case s.busy:
		b.WriteString(s.spinner.View() + " " + theme.Hint.Render("checking..."))
	case s.phase == phaseFeedback:
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	case s.status != "":
		b.WriteString(theme.Warning.Render(s.status))
	}
	return b.String()
}

func (s *SessionScreen) renderFeedback(width int) string {
	fb := s.feedback
	if fb == nil {
		return ""
	}

	var b strings.Builder
	if fb.Result.Verdict != nil {
		b.WriteString(components.VerdictView(*fb.Result.Verdict, fb.Diagnosis, width))
		if v := fb.Result.Verdict; v.Outcome == grader.Incorrect {
			b.WriteString("\n\n")
			b.WriteString(theme.Hint.Render("Expected:"))
			b.WriteString("\n")
			b.WriteString(components.NewResultTable(v.Expected, s.deps.MaxRows).View(width))
		}
	} else {
		b.WriteString(components.Mark(fb.Result.Correct))
		if fb.Result.Correct {
			b.WriteString(theme.Correct.Render(" Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render(" Not quite."))
			if a := fb.Question.Answer; a >= 0 && a < len(fb.Question.Options) {
				b.WriteString(theme.Body.Render(" The answer is " + fb.Question.Options[a] + "."))
			}
		}
	}

	b.WriteString("\n\n")
	if s.status != "" {
		b.WriteString(theme.Warning.Render(s.status))
		b.WriteString("\n")
	}
	next := "Press any key for the next question..."
	if fb.Result.Completed {
		next = "Press any key to see your results..."
	}
	b.WriteString(theme.Hint.Render(next))
	return b.String()
}

func typeLabel(t lessons.QuestionType) string {
	switch t {
	case lessons.MultipleChoice:
		return "Multiple choice"
	case lessons.Fix:
		return "Fix the query"
	default:
		return "Write a query"
	}
}

func (s *SessionScreen) renderQuitConfirm(width, height int) string {
	cw := components.ContentWidth(width)
	answered := len(s.ts.Answers())

	var b strings.Builder
	b.WriteString(components.Heading("Quit the test?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw - 4).Foreground(theme.TextDim).Render(
		fmt.Sprintf("You have answered %d of %d questions. Quitting discards this attempt.", answered, s.ts.Total())))
	b.WriteString("\n\n")
	b.WriteString(components.Choices(s.quitFocus, "Keep going", "Quit"))

	return components.Centered(components.Panel(b.String(), cw), width, height)
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
