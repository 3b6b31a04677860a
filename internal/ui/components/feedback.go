package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlquest/internal/diagnosis"
	"github.com/abhisek/sqlquest/internal/grader"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

// VerdictView renders a grading verdict with its diagnosis, if any, wrapped
// to width.
func VerdictView(v grader.Verdict, diag *diagnosis.DiagnosisResult, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 20))

	var b strings.Builder
	switch v.Outcome {
	case grader.Correct:
		b.WriteString(theme.Correct.Render("✓ Correct!"))
	case grader.UserError:
		b.WriteString(theme.Incorrect.Render("✗ The query did not run"))
		if v.User.Err != nil {
			b.WriteString("\n")
			b.WriteString(wrap.Foreground(theme.Error).Render(v.User.Err.Error()))
		}
	default:
		b.WriteString(theme.Incorrect.Render("✗ Not quite"))
		b.WriteString("\n")
		b.WriteString(wrap.Foreground(theme.Text).Render(v.Mismatch.Describe()))
	}

	if diag != nil {
		if tip := diagnosis.GetTip(diag.Category); tip != nil && diag.Tip != "" {
			b.WriteString("\n\n")
			b.WriteString(theme.Warning.Bold(true).Render(tip.Label))
			b.WriteString("\n")
			b.WriteString(wrap.Foreground(theme.Text).Render(diag.Tip))
		}
		if diag.Explanation != "" {
			b.WriteString("\n\n")
			b.WriteString(wrap.Inherit(theme.Hint).Render(diag.Explanation))
		}
	}
	return b.String()
}
