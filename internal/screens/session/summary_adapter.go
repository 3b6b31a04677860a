package session

import (
	"github.com/abhisek/sqlquest/internal/screen"
	"github.com/abhisek/sqlquest/internal/screens/summary"
	sess "github.com/abhisek/sqlquest/internal/session"
)

// newSummaryScreenAdapter creates a summary screen from a finished test.
func newSummaryScreenAdapter(ts *sess.TestSession) screen.Screen {
	return summary.New(ts.Summary())
}
