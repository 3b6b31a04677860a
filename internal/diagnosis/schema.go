package diagnosis

import "github.com/abhisek/sqlquest/internal/llm"

// ExplanationSchema defines the JSON schema for LLM explanation responses.
var ExplanationSchema = &llm.Schema{
	Name:        "query-explanation",
	Description: "A short explanation of why a learner's SQL query gave the wrong result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "One paragraph, at most four sentences, plain text",
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	},
}
