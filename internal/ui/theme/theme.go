// Package theme holds the palette and shared styles. Everything is drawn
// for a dark terminal background.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette.
var (
	Primary   = lipgloss.Color("#38BDF8")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Text styles.
var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)

	// Code is SQL shown inline: prompts, expected queries, keywords.
	Code = fg(Secondary)
)

// Verdicts on an answer or a run.
var (
	Correct   = fg(Success).Bold(true)
	Incorrect = fg(Error).Bold(true)
	Warning   = fg(Accent)
)

// Boxes. ActiveCard marks the pane that has focus.
var (
	Card       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1)
	ActiveCard = Card.BorderForeground(Primary)
)

// Tabs and buttons share the inverted look when focused.
var (
	TabActive   = lipgloss.NewStyle().Foreground(BgDark).Background(Primary).Bold(true).Padding(0, 2)
	TabInactive = fg(TextDim).Padding(0, 2)

	ButtonActive   = TabActive
	ButtonInactive = fg(Text).Background(BgCard).Padding(0, 2)
)

// Result table cells. NULL is styled apart from the string "NULL".
var (
	TableHeader = fg(Primary).Bold(true).Padding(0, 1)
	TableCell   = fg(Text).Padding(0, 1)
	TableNull   = fg(TextDim).Italic(true).Padding(0, 1)
)
