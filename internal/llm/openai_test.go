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

func openaiServer(t *testing.T, provider string, status int, body any) (*openaiBackend, *map[string]any) {
	t.Helper()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return newOpenAI(Config{Provider: provider, APIKey: "test", BaseURL: srv.URL + "/v1"}), &got
}

func completion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 9, "total_tokens": 49},
	}
}

func TestOpenAIGenerate(t *testing.T) {
	b, sent := openaiServer(t, OpenAI, http.StatusOK, completion(`{"answer":"HAVING"}`, "stop"))
	assert.Equal(t, "gpt-4o-mini", b.Model())

	resp, err := b.Generate(context.Background(), Request{
		System: "You are a SQL tutor.",
		Prompt: "Which clause filters groups?",
		Schema: answerSchema,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":"HAVING"}`, resp.Text())
	assert.Equal(t, 40, resp.InputTokens)
	assert.Equal(t, 9, resp.OutputTokens)

	msgs, ok := (*sent)["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])

	format, ok := (*sent)["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenRouterUsesOwnDefaults(t *testing.T) {
	b := newOpenAI(Config{Provider: OpenRouter, APIKey: "k"})
	assert.Equal(t, OpenRouter, b.name)
	assert.Equal(t, "google/gemini-2.0-flash-001", b.Model())
}

func TestOpenAIErrors(t *testing.T) {
	apiError := map[string]any{"error": map[string]any{"message": "nope", "type": "x"}}
	tests := []struct {
		name   string
		status int
		body   any
		want   error
	}{
		{"rate limit", http.StatusTooManyRequests, apiError, ErrRateLimited},
		{"server", http.StatusBadGateway, apiError, ErrUnavailable},
		{"bad request", http.StatusBadRequest, apiError, ErrRejected},
		{"truncated", http.StatusOK, completion(`{"answ`, "length"), ErrTruncated},
		{"not json", http.StatusOK, completion(`HAVING`, "stop"), ErrBadOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := openaiServer(t, OpenRouter, tt.status, tt.body)
			_, err := b.Generate(context.Background(), Request{Prompt: "q", Schema: answerSchema})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, OpenRouter, apiErr.Provider)
		})
	}
}
