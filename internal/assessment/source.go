package assessment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/llm"
)

// Source produces extra test questions beyond a lesson's templates.
type Source interface {
	// Generate produces a single question for the given input. The
	// generator validates it before use.
	Generate(ctx context.Context, input GenerateInput) (*lessons.Question, error)
}

// GenerateInput holds the context needed to generate a question.
type GenerateInput struct {
	Lesson lessons.Lesson

	// PriorQuestions contains the prompts already in this test. Used for
	// deduplication in the prompt.
	PriorQuestions []string
}

// SourceConfig controls the LLM question source.
type SourceConfig struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorQuestions is the maximum number of prior questions
	// to include in the prompt for deduplication.
	MaxPriorQuestions int
}

// DefaultSourceConfig returns the recommended defaults.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		MaxTokens:         512,
		Temperature:       0.7,
		MaxPriorQuestions: 8,
	}
}

// LLMSource implements Source using an LLM provider.
type LLMSource struct {
	provider llm.Provider
	config   SourceConfig
}

// NewLLMSource creates an LLMSource with the given provider and config.
func NewLLMSource(provider llm.Provider, cfg SourceConfig) *LLMSource {
	return &LLMSource{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Type    string   `json:"type"`
	Prompt  string   `json:"prompt"`
	Query   string   `json:"solution_query"`
	Broken  string   `json:"broken_query"`
	Verify  string   `json:"verify_query"`
	Options []string `json:"options"`
	Answer  int      `json:"answer_index"`
}

// Generate asks the provider for one question about input.Lesson.
func (s *LLMSource) Generate(ctx context.Context, input GenerateInput) (*lessons.Question, error) {
	req := llm.Request{
		Purpose:     llm.PurposeQuestionGen,
		System:      systemPrompt,
		Prompt:      buildUserMessage(input, s.config),
		Schema:      QuestionSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	q := &lessons.Question{
		Type:   lessons.QuestionType(raw.Type),
		Prompt: raw.Prompt,
	}
	switch q.Type {
	case lessons.MultipleChoice:
		q.Options = raw.Options
		q.Answer = raw.Answer
	case lessons.Fix:
		q.Broken = raw.Broken
		fallthrough
	default:
		q.Solution = raw.Query
		q.Verify = raw.Verify
	}
	return q, nil
}
