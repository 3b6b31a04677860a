package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/sqlquest/internal/llm"
)

// ExplainerConfig holds configuration for the LLM explainer.
type ExplainerConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultExplainerConfig returns sensible defaults.
func DefaultExplainerConfig() ExplainerConfig {
	return ExplainerConfig{
		MaxTokens:   300,
		Temperature: 0.3,
	}
}

// Explainer asks an LLM why a query produced the wrong result.
type Explainer struct {
	provider llm.Provider
	cfg      ExplainerConfig
}

// NewExplainer creates an LLM-based explainer.
func NewExplainer(provider llm.Provider, cfg ExplainerConfig) *Explainer {
	return &Explainer{provider: provider, cfg: cfg}
}

// explainOutput is the raw LLM response.
type explainOutput struct {
	Explanation string `json:"explanation"`
}

// Explain returns a one-paragraph explanation of the mistake in input,
// given the category the rules already found.
func (e *Explainer) Explain(ctx context.Context, input *ClassifyInput, cat ErrorCategory) (string, error) {
	userMsg, err := buildExplainMessage(input, cat)
	if err != nil {
		return "", fmt.Errorf("build explain prompt: %w", err)
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		Purpose:     llm.PurposeExplain,
		System:      explainSystemPrompt,
		Prompt:      userMsg,
		Schema:      ExplanationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM explanation failed: %w", err)
	}

	var raw explainOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return "", fmt.Errorf("failed to parse explanation response: %w", err)
	}
	text := strings.TrimSpace(raw.Explanation)
	if text == "" {
		return "", fmt.Errorf("empty explanation")
	}
	return text, nil
}

const explainSystemPrompt = `You are a patient SQL tutor. A beginner's query did not produce the expected result in SQLite.

Instructions:
- Explain in one short paragraph (at most 4 sentences) what the query does differently from what the question asks.
- Point at the specific clause or value that is wrong.
- Do not give the full corrected query. A nudge toward the fix is fine.
- Use plain text. No markdown, no code fences.`

var explainUserTemplate = template.Must(template.New("explain").Parse(`Lesson: {{.Input.LessonTitle}}
Schema: {{.Input.Schema}}
Question: {{.Input.Prompt}}

Learner's query:
{{.Input.Query}}

Reference query:
{{.Input.Solution}}

What went wrong: {{.Problem}}
Mistake category: {{.Category}}`))

func buildExplainMessage(input *ClassifyInput, cat ErrorCategory) (string, error) {
	problem := input.Verdict.Mismatch.Describe()
	if err := input.Verdict.User.Err; err != nil {
		problem = "SQLite error: " + err.Error()
	}

	var buf bytes.Buffer
	err := explainUserTemplate.Execute(&buf, struct {
		Input    *ClassifyInput
		Problem  string
		Category ErrorCategory
	}{input, problem, cat})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
