// Package layout draws the chrome around every screen: a title bar on
// top and key hints at the bottom.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlquest/internal/ui/theme"
)

// Smallest terminal the editor and result table fit in.
const (
	MinWidth  = 72
	MinHeight = 20
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Frame is the chrome for one render.
type Frame struct {
	Title string

	// Completed and Total feed the lesson counter; Total 0 hides it.
	Completed int
	Total     int

	Hints []KeyHint
}

// Render draws the frame at width x height and fills the middle with
// body, which is given the space left between the bars.
func (f Frame) Render(width, height int, body func(w, h int) string) string {
	if width < MinWidth || height < MinHeight {
		return tooSmall(width, height)
	}

	top := f.titleBar(width)
	bottom := f.hintBar(width)
	h := max(height-lipgloss.Height(top)-lipgloss.Height(bottom), 0)

	middle := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(body(width, h))
	return lipgloss.JoinVertical(lipgloss.Left, top, middle, bottom)
}

func (f Frame) titleBar(width int) string {
	bar := lipgloss.NewStyle().Background(theme.BgCard).Padding(0, 1)
	inner := width - 2

	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("SQLQuest")
	counter := ""
	if f.Total > 0 {
		counter = lipgloss.NewStyle().Foreground(theme.Success).
			Render(fmt.Sprintf("✓ %d/%d", f.Completed, f.Total))
	}
	title := lipgloss.PlaceHorizontal(
		max(inner-lipgloss.Width(name)-lipgloss.Width(counter), 0),
		lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title),
	)

	line := bar.Width(width).Render(name + title + counter)
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))
	return line + "\n" + rule
}

func (f Frame) hintBar(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))
	return rule + "\n" + lipgloss.NewStyle().Padding(0, 1).Width(width).MaxHeight(1).
		Render(strings.Join(parts, desc.Render("  ·  ")))
}

func tooSmall(width, height int) string {
	msg := fmt.Sprintf("Terminal is %d×%d.\nSQLQuest needs at least %d×%d.", width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Warning.Align(lipgloss.Center).Render(msg))
}
