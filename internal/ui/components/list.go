package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlquest/internal/ui/theme"
)

// List is a vertical cursor over preformatted rows. It only moves the
// cursor; the owning screen decides what Enter does.
type List struct {
	Rows   []string
	Cursor int
}

// Move shifts the cursor by delta, clamped to the rows.
func (l *List) Move(delta int) {
	if len(l.Rows) == 0 {
		l.Cursor = 0
		return
	}
	l.Cursor = max(0, min(l.Cursor+delta, len(l.Rows)-1))
}

// HandleKey moves the cursor for navigation keys and reports whether the
// key was one of them. page is the jump for pgup/pgdown.
func (l *List) HandleKey(msg tea.KeyMsg, page int) bool {
	switch msg.String() {
	case "up", "k":
		l.Move(-1)
	case "down", "j":
		l.Move(1)
	case "pgup":
		l.Move(-max(page, 1))
	case "pgdown":
		l.Move(max(page, 1))
	case "home", "g":
		l.Cursor = 0
	case "end", "G":
		l.Move(len(l.Rows))
	default:
		return false
	}
	return true
}

// View renders at most height rows, scrolled so the cursor stays near the
// middle.
func (l List) View(height int) string {
	start, end := 0, len(l.Rows)
	if height > 0 && len(l.Rows) > height {
		start = max(0, min(l.Cursor-height/2, len(l.Rows)-height))
		end = start + height
	}

	cur := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	rest := lipgloss.NewStyle().Foreground(theme.Text)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == l.Cursor {
			lines = append(lines, cur.Render("› "+l.Rows[i]))
		} else {
			lines = append(lines, rest.Render("  "+l.Rows[i]))
		}
	}
	return strings.Join(lines, "\n")
}
