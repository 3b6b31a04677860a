package components

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/sqlquest/internal/sqlengine"
)

func manyRows(n int) sqlengine.Result {
	res := sqlengine.Result{Columns: []string{"n"}}
	for i := 0; i < n; i++ {
		res.Rows = append(res.Rows, []any{int64(i)})
	}
	return res
}

func TestResultTableCapsRows(t *testing.T) {
	rt := NewResultTable(manyRows(150), 0)
	assert.Equal(t, DefaultMaxRows, rt.MaxRows)
	assert.True(t, rt.Truncated())
	assert.Equal(t, "showing 100 of 150 rows", rt.Note())

	view := rt.View(80)
	assert.Contains(t, view, "showing 100 of 150 rows")
	assert.Contains(t, view, "99")
	assert.NotContains(t, view, "149")
}

func TestResultTableSmallResult(t *testing.T) {
	rt := NewResultTable(manyRows(3), 100)
	assert.False(t, rt.Truncated())
	assert.Empty(t, rt.Note())
}

func TestResultTableNonTabular(t *testing.T) {
	view := NewResultTable(sqlengine.Result{Message: "2 rows affected"}, 0).View(80)
	assert.Contains(t, view, "2 rows affected")

	view = NewResultTable(sqlengine.Result{Err: errors.New("no such table: x")}, 0).View(80)
	assert.Contains(t, view, "no such table: x")
}

func TestResultTableShowsNull(t *testing.T) {
	res := sqlengine.Result{Columns: []string{"a"}, Rows: [][]any{{nil}}}
	assert.Contains(t, NewResultTable(res, 0).View(80), "NULL")
}

func TestResultTableEmpty(t *testing.T) {
	res := sqlengine.Result{Columns: []string{"a"}}
	assert.Contains(t, NewResultTable(res, 0).View(80), "(no rows)")
}

func TestMultiChoiceNumberKeySubmits(t *testing.T) {
	m := NewMultiChoice([]string{"one", "two", "three"})
	m, _ = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	assert.True(t, m.Submitted)
	assert.Equal(t, 1, m.ChosenIndex)

	// Further keys are ignored once submitted.
	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	assert.Equal(t, 1, m.ChosenIndex)
}

func TestMultiChoiceOutOfRangeKeyIgnored(t *testing.T) {
	m := NewMultiChoice([]string{"one", "two"})
	m, _ = m.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	assert.False(t, m.Submitted)
}

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"one", "two"})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 1, m.ChosenIndex)

	m.Reveal(0)
	view := m.View()
	assert.True(t, strings.Contains(view, "A)") && strings.Contains(view, "B)"))
}

func TestMarkAndPanel(t *testing.T) {
	assert.Contains(t, Mark(true), "✓")
	assert.Contains(t, Mark(false), "✗")
	assert.Contains(t, Panel("hello", 30), "hello")
	assert.Equal(t, 72, ContentWidth(200))
	assert.Equal(t, 20, ContentWidth(10))
}

func TestListScrollsWithCursor(t *testing.T) {
	l := List{Rows: []string{"a", "b", "c", "d", "e", "f"}}
	assert.Contains(t, l.View(3), "› a")
	assert.NotContains(t, l.View(3), "d")

	l.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnd}, 3)
	assert.Equal(t, 5, l.Cursor)
	view := l.View(3)
	assert.Contains(t, view, "f")
	assert.NotContains(t, view, "c")

	l.HandleKey(tea.KeyPressMsg{Code: tea.KeyPgUp}, 3)
	assert.Equal(t, 2, l.Cursor)
	l.Move(-10)
	assert.Equal(t, 0, l.Cursor)

	assert.False(t, l.HandleKey(tea.KeyPressMsg{Code: 'x', Text: "x"}, 3))
}

func TestMeter(t *testing.T) {
	// 21 cells less "Done " and " 1/4" leaves 12 for the bar.
	m := Meter("Done", 1, 4, 21)
	assert.Contains(t, m, "1/4")
	assert.Equal(t, 3, strings.Count(m, "█"))

	assert.NotContains(t, Meter("", 0, 0, 12), "█")
}

func TestChoicesMarksFocus(t *testing.T) {
	row := Choices(1, "Cancel", "Reset")
	assert.Contains(t, row, "› Reset")
	assert.NotContains(t, row, "› Cancel")
}
