package screen

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlquest/internal/diagnosis"
	"github.com/abhisek/sqlquest/internal/grader"
)

// explanationWait bounds how long a screen listens for an LLM explanation.
const explanationWait = 60 * time.Second

// ExplanationMsg delivers an LLM explanation for the attempt Token.
type ExplanationMsg struct {
	Token  int
	Result *diagnosis.DiagnosisResult
}

// Diagnose classifies a wrong verdict. It returns nil for correct answers
// or when no diagnosis service is configured. The command, when non-nil,
// waits for the background explanation and delivers it as an
// ExplanationMsg tagged with token.
func (d Deps) Diagnose(input *diagnosis.ClassifyInput, token int) (*diagnosis.DiagnosisResult, tea.Cmd) {
	if d.Diagnosis == nil || input.Verdict.Outcome == grader.Correct {
		return nil, nil
	}

	ch := make(chan *diagnosis.DiagnosisResult, 1)
	res := d.Diagnosis.Diagnose(context.Background(), input, func(r *diagnosis.DiagnosisResult) {
		select {
		case ch <- r:
		default:
		}
	})
	if !d.Diagnosis.HasExplainer() {
		return res, nil
	}

	return res, func() tea.Msg {
		select {
		case r := <-ch:
			return ExplanationMsg{Token: token, Result: r}
		case <-time.After(explanationWait):
			return nil
		}
	}
}
