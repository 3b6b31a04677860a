package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/ui/components"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", s.errMsg))
	}

	inner := max(width-4, 20)

	var top strings.Builder
	top.WriteString(s.renderTabs(inner))
	top.WriteString("\n")
	top.WriteString(theme.Hint.Render(s.lesson.SchemaDisplay))
	top.WriteString("\n")
	if s.tab == tabExercises {
		top.WriteString(s.renderExercise(inner))
	}
	header := top.String()

	s.editor.SetSize(inner, editorLines)
	editor := s.editor.View()
	status := s.renderStatus()

	used := lipgloss.Height(header) + lipgloss.Height(editor) + lipgloss.Height(status) + 1
	s.output.SetWidth(inner)
	s.output.SetHeight(max(height-used, 3))
	s.output.SetContent(s.renderOutput(inner))

	return lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, editor, status, s.output.View()),
	)
}

func (s *LessonScreen) renderTabs(width int) string {
	exLabel := fmt.Sprintf("Exercises %d/%d",
		s.deps.Ledger.ExercisesDoneCount(s.lesson.ID, len(s.lesson.Exercises)), len(s.lesson.Exercises))
	sandbox, exercises := theme.TabActive.Render("Sandbox"), theme.TabInactive.Render(exLabel)
	if s.tab == tabExercises {
		sandbox, exercises = theme.TabInactive.Render("Sandbox"), theme.TabActive.Render(exLabel)
	}
	left := sandbox + " " + exercises

	right := theme.Hint.Render(fmt.Sprintf("Lesson %d · %s", s.lesson.ID, s.lesson.Theme))
	if s.deps.Ledger.IsCompleted(s.lesson.ID) {
		right = theme.Correct.Render("✓ completed") + "  " + right
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s *LessonScreen) renderExercise(width int) string {
	ex := s.lesson.Exercises[s.exercise]
	wrap := lipgloss.NewStyle().Width(width)

	title := fmt.Sprintf("Exercise %d of %d", s.exercise+1, len(s.lesson.Exercises))
	if s.deps.Ledger.ExerciseDone(s.lesson.ID, s.exercise) {
		title += " " + components.Mark(true)
	}

	var b strings.Builder
	b.WriteString(components.Heading(title))
	b.WriteString("\n")
	b.WriteString(wrap.Foreground(theme.Text).Render(ex.Instruction))
	if s.showHint && ex.Hint != "" {
		b.WriteString("\n")
		b.WriteString(wrap.Inherit(theme.Hint).Render("Hint: " + ex.Hint))
	}
	if s.showSolution {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render("Solution: "))
		b.WriteString(theme.Code.Render(ex.Solution))
	}
	b.WriteString("\n")
	return b.String()
}

func (s *LessonScreen) renderStatus() string {
	if s.busy {
		return s.spinner.View() + " " + theme.Hint.Render("working...")
	}
	if s.status != "" {
		return theme.Warning.Render(s.status)
	}
	return ""
}

func (s *LessonScreen) renderOutput(width int) string {
	if s.tab == tabSandbox {
		if s.result == nil {
			return theme.Hint.Render("Run a query with Ctrl+R to see its result here.")
		}
		return s.result.View(width)
	}

	if s.check == nil {
		return theme.Hint.Render("Write a query for the exercise and check it with Ctrl+R.")
	}

	v := s.check.Verdict
	out := components.VerdictView(v, s.check.Diagnosis, width)
	if v.Outcome != grader.UserError {
		out += "\n\n" + theme.Hint.Render("Your result:") + "\n" +
			components.NewResultTable(v.User, s.deps.MaxRows).View(width)
	}
	return out
}
