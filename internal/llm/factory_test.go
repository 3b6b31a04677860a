package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct{ provider, model string }{
		{Anthropic, "claude-haiku-4-5"},
		{OpenAI, "gpt-4o-mini"},
		{OpenRouter, "google/gemini-2.0-flash-001"},
		{Gemini, "gemini-2.0-flash"},
	} {
		t.Run(tc.provider, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Provider = tc.provider
			cfg.APIKey = "k"
			p, err := New(ctx, cfg, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.model, p.Model())
		})
	}

	p, err := New(ctx, Config{Provider: Mock}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &MockProvider{}, p)

	_, err = New(ctx, Config{Provider: Anthropic}, nil, nil)
	assert.Error(t, err)
	_, err = New(ctx, Config{Provider: "llama"}, nil, nil)
	assert.Error(t, err)
}
