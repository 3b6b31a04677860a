package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlquest/internal/ui/theme"
)

// QueryEditor wraps bubbles/textarea with SQLQuest styling.
type QueryEditor struct {
	Model textarea.Model
}

// NewQueryEditor creates a focused multi-line SQL editor.
func NewQueryEditor(placeholder string, width, height int) QueryEditor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Focus()
	return QueryEditor{Model: ta}
}

// Init returns the initial command.
func (e QueryEditor) Init() tea.Cmd {
	return e.Model.Focus()
}

// Update handles messages.
func (e QueryEditor) Update(msg tea.Msg) (QueryEditor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the editor inside a card.
func (e QueryEditor) View() string {
	style := theme.Card
	if e.Model.Focused() {
		style = theme.ActiveCard
	}
	return style.Render(e.Model.View())
}

// Value returns the editor text.
func (e QueryEditor) Value() string {
	return e.Model.Value()
}

// Query returns the editor text with surrounding blank space removed.
func (e QueryEditor) Query() string {
	return strings.TrimSpace(e.Model.Value())
}

// SetValue replaces the editor text.
func (e *QueryEditor) SetValue(s string) {
	e.Model.SetValue(s)
}

// SetSize resizes the editor, leaving room for the card border.
func (e *QueryEditor) SetSize(width, height int) {
	e.Model.SetWidth(max(width-4, 10))
	e.Model.SetHeight(max(height, 3))
}

// Height returns the rendered height including the border.
func (e QueryEditor) Height() int {
	return lipgloss.Height(e.View())
}
