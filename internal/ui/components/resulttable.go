package components

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/sqlquest/internal/sqlengine"
	"github.com/abhisek/sqlquest/internal/ui/theme"
)

// DefaultMaxRows is the row cap when none is configured.
const DefaultMaxRows = 100

// ResultTable renders an engine result: a table for row sets, the message
// for other statements, and the engine error for failures.
type ResultTable struct {
	Result  sqlengine.Result
	MaxRows int
}

// NewResultTable wraps res for display with at most maxRows rows.
func NewResultTable(res sqlengine.Result, maxRows int) ResultTable {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return ResultTable{Result: res, MaxRows: maxRows}
}

// Truncated reports whether rows were cut.
func (r ResultTable) Truncated() bool {
	return len(r.Result.Rows) > r.MaxRows
}

// Note returns the "showing N of M" line, or "" when nothing was cut.
func (r ResultTable) Note() string {
	if !r.Truncated() {
		return ""
	}
	return fmt.Sprintf("showing %d of %d rows", r.MaxRows, len(r.Result.Rows))
}

// View renders the result at most width columns wide.
func (r ResultTable) View(width int) string {
	res := r.Result
	switch {
	case res.Failed():
		return theme.Incorrect.Render("Error: ") +
			lipgloss.NewStyle().Foreground(theme.Error).Render(res.Err.Error())
	case !res.Tabular():
		msg := res.Message
		if msg == "" {
			msg = "OK"
		}
		return lipgloss.NewStyle().Foreground(theme.Success).Render(msg)
	}

	rows := res.StringRows()
	if r.Truncated() {
		rows = rows[:r.MaxRows]
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(res.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			if row >= 0 && row < len(rows) && col < len(res.Rows[row]) && res.Rows[row][col] == nil {
				return theme.TableNull
			}
			return theme.TableCell
		})
	out := t.String()
	if width > 0 && lipgloss.Width(out) > width {
		out = t.Width(width).String()
	}
	if len(rows) == 0 {
		out += "\n" + theme.Hint.Render("(no rows)")
	}
	if note := r.Note(); note != "" {
		out += "\n" + theme.Warning.Render(note)
	}
	return out
}
