package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlquest/internal/ui/theme"
)

// Meter renders "label ████░░░░ done/total" in width cells.
func Meter(label string, done, total, width int) string {
	count := fmt.Sprintf(" %d/%d", done, total)
	if label != "" {
		label += " "
	}
	cells := max(width-lipgloss.Width(label)-len(count), 4)

	filled := 0
	if total > 0 {
		filled = min(cells*max(done, 0)/total, cells)
	}

	return lipgloss.NewStyle().Foreground(theme.Text).Render(label) +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled)) +
		theme.Hint.Render(count)
}
