// Package llm talks to hosted language models. sqlquest uses them for two
// optional features: explaining a wrong answer and drafting extra test
// questions. Every call is single-turn and, when a Schema is given, must
// come back as JSON matching it.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion per call.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Model is the model ID requests are sent to.
	Model() string
}

// Purpose labels a request in the request log.
type Purpose string

const (
	PurposeExplain     Purpose = "explain"
	PurposeQuestionGen Purpose = "question-gen"
)

// Request is a single-turn prompt.
type Request struct {
	Purpose Purpose
	System  string
	Prompt  string

	// Schema, when set, asks the backend for structured output and
	// the reply is validated against it before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Response is a completed generation. Content is the JSON object when the
// request carried a Schema, otherwise the raw model text.
type Response struct {
	Content      json.RawMessage
	Model        string
	InputTokens  int
	OutputTokens int
}

// Text returns Content as a plain string.
func (r *Response) Text() string {
	return string(r.Content)
}
