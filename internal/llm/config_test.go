package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelID(t *testing.T) {
	tests := []struct {
		provider, model, want string
	}{
		{Anthropic, "", "claude-haiku-4-5"},
		{Anthropic, "sonnet", "claude-sonnet-4-5"},
		{OpenAI, "4o", "gpt-4o"},
		{Gemini, "pro", "gemini-2.5-pro"},
		{OpenRouter, "", "google/gemini-2.0-flash-001"},
		{OpenRouter, "haiku", "haiku"},
		{OpenAI, "gpt-5-mini", "gpt-5-mini"},
	}
	for _, tt := range tests {
		got := Config{Provider: tt.provider, Model: tt.model}.ModelID()
		assert.Equal(t, tt.want, got, "%s/%s", tt.provider, tt.model)
	}
}

func TestValidate(t *testing.T) {
	withKey := DefaultConfig()
	withKey.Provider = Gemini
	withKey.APIKey = "k"
	assert.NoError(t, withKey.Validate())

	assert.NoError(t, Config{Provider: Mock}.Validate())
	assert.ErrorContains(t, Config{Provider: OpenAI}.Validate(), "API key")
	assert.ErrorContains(t, Config{}.Validate(), "no LLM provider")
	assert.ErrorContains(t, Config{Provider: "cohere", APIKey: "k"}.Validate(), "unknown")

	badRetry := withKey
	badRetry.Retry.Factor = 0.5
	assert.Error(t, badRetry.Validate())
}

func TestDiscover(t *testing.T) {
	env := map[string]string{
		"ANTHROPIC_API_KEY":  "a",
		"OPENROUTER_API_KEY": "r",
	}
	cfg, ok := Discover(func(k string) string { return env[k] })
	require.True(t, ok)
	assert.Equal(t, Anthropic, cfg.Provider)
	assert.Equal(t, "a", cfg.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.Attempts)

	env["GEMINI_API_KEY"] = "g"
	cfg, _ = Discover(func(k string) string { return env[k] })
	assert.Equal(t, Gemini, cfg.Provider)

	_, ok = Discover(func(string) string { return "" })
	assert.False(t, ok)
}

func TestKeyVariable(t *testing.T) {
	assert.Equal(t, "OPENROUTER_API_KEY", KeyVariable(OpenRouter))
	assert.Empty(t, KeyVariable(Mock))
}
