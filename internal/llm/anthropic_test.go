package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var answerSchema = &Schema{
	Name: "answer",
	Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"answer": map[string]any{"type": "string"}},
		"required":   []any{"answer"},
	},
}

func anthropicServer(t *testing.T, status int, body map[string]any) (*anthropicBackend, *map[string]any) {
	t.Helper()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return newAnthropic(Config{Provider: Anthropic, APIKey: "test", Model: "haiku", BaseURL: srv.URL}), &got
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 12},
	}
}

func TestAnthropicGenerate(t *testing.T) {
	b, sent := anthropicServer(t, http.StatusOK, anthropicMessage(`{"answer":"GROUP BY"}`, "end_turn"))
	assert.Equal(t, "claude-haiku-4-5", b.Model())

	resp, err := b.Generate(context.Background(), Request{
		System:    "You are a SQL tutor.",
		Prompt:    "Which clause groups rows?",
		Schema:    answerSchema,
		MaxTokens: 64,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":"GROUP BY"}`, resp.Text())
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)
	assert.Equal(t, 50, resp.InputTokens)
	assert.Equal(t, 12, resp.OutputTokens)

	assert.Equal(t, "claude-haiku-4-5", (*sent)["model"])
	msgs, ok := (*sent)["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 1)
}

func TestAnthropicErrors(t *testing.T) {
	apiError := func(kind string) map[string]any {
		return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": "nope"}}
	}
	tests := []struct {
		name   string
		status int
		body   map[string]any
		want   error
	}{
		{"rate limit", http.StatusTooManyRequests, apiError("rate_limit_error"), ErrRateLimited},
		{"server", http.StatusInternalServerError, apiError("api_error"), ErrUnavailable},
		{"bad key", http.StatusUnauthorized, apiError("authentication_error"), ErrRejected},
		{"truncated", http.StatusOK, anthropicMessage(`{"answer":"GRO`, "max_tokens"), ErrTruncated},
		{"off schema", http.StatusOK, anthropicMessage(`{"reply":"x"}`, "end_turn"), ErrBadOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := anthropicServer(t, tt.status, tt.body)
			_, err := b.Generate(context.Background(), Request{Prompt: "q", Schema: answerSchema, MaxTokens: 16})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
