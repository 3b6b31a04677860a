package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// New builds the backend named in cfg and wraps it as
// timeout → retry → record → backend. A nil events skips the request log.
func New(ctx context.Context, cfg Config, events RequestLog, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		backend Provider
		err     error
	)
	switch cfg.Provider {
	case Anthropic:
		backend = newAnthropic(cfg)
	case OpenAI, OpenRouter:
		backend = newOpenAI(cfg)
	case Gemini:
		backend, err = newGemini(ctx, cfg)
	case Mock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("start %s client: %w", cfg.Provider, err)
	}

	return Chain(backend,
		Timeout(cfg.Timeout),
		Retry(cfg.Retry),
		Record(cfg.Provider, events, log),
	), nil
}
