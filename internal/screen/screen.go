package screen

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/assessment"
	"github.com/abhisek/sqlquest/internal/diagnosis"
	"github.com/abhisek/sqlquest/internal/progress"
	"github.com/abhisek/sqlquest/internal/sqlengine"
	"github.com/abhisek/sqlquest/internal/store"
	"github.com/abhisek/sqlquest/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is an optional interface for screens that handle Esc
// themselves instead of letting the app pop them.
type BackHandler interface {
	HandlesBack() bool
}

// Resumer is an optional interface for screens that refresh when the
// screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// Deps holds the services screens share. Engine is the single lesson
// database; only one command may use it at a time.
type Deps struct {
	Engine    *sqlengine.Session
	Ledger    *progress.Ledger
	Events    store.EventRepo
	Generator *assessment.Generator
	Diagnosis *diagnosis.Service
	Logger    *zap.Logger

	// MaxRows caps the rows shown in a result table.
	MaxRows int
}

// Log returns the named logger, or a no-op one.
func (d Deps) Log(name string) *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger.Named(name)
}
