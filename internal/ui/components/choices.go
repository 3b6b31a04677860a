package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlquest/internal/ui/theme"
)

// Choices renders labels as a row of buttons with focus highlighted.
func Choices(focus int, labels ...string) string {
	parts := make([]string, 0, 2*len(labels))
	for i, label := range labels {
		if i > 0 {
			parts = append(parts, "   ")
		}
		if i == focus {
			parts = append(parts, theme.ButtonActive.Render("› "+label))
		} else {
			parts = append(parts, theme.ButtonInactive.Render("  "+label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
