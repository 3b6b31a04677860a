package llm

import (
	"fmt"
	"time"
)

// Backend names accepted in Config.Provider.
const (
	Anthropic  = "anthropic"
	OpenAI     = "openai"
	Gemini     = "gemini"
	OpenRouter = "openrouter"
	Mock       = "mock"
)

// Config selects one backend.
type Config struct {
	Provider string

	// Model is a model ID or one of the short aliases below. Empty uses
	// the backend's default.
	Model   string
	APIKey  string
	BaseURL string

	// Timeout bounds a whole Generate call, retries included.
	Timeout time.Duration
	Retry   RetryPolicy
}

// DefaultConfig returns the timeout and retry defaults with no backend.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
		Retry: RetryPolicy{
			Attempts: 3,
			Initial:  time.Second,
			Max:      10 * time.Second,
			Factor:   2,
		},
	}
}

var defaultModels = map[string]string{
	Anthropic:  "claude-haiku-4-5",
	OpenAI:     "gpt-4o-mini",
	Gemini:     "gemini-2.0-flash",
	OpenRouter: "google/gemini-2.0-flash-001",
	Mock:       "mock",
}

// Short names accepted for Model.
var modelAliases = map[string]map[string]string{
	Anthropic: {
		"haiku":  "claude-haiku-4-5",
		"sonnet": "claude-sonnet-4-5",
	},
	OpenAI: {
		"mini": "gpt-4o-mini",
		"4o":   "gpt-4o",
	},
	Gemini: {
		"flash": "gemini-2.0-flash",
		"pro":   "gemini-2.5-pro",
	},
}

// ModelID resolves Model to the ID sent to the backend.
func (c Config) ModelID() string {
	if c.Model == "" {
		return defaultModels[c.Provider]
	}
	if id, ok := modelAliases[c.Provider][c.Model]; ok {
		return id
	}
	return c.Model
}

// Validate checks that the backend is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case Anthropic, OpenAI, Gemini, OpenRouter:
		if c.APIKey == "" {
			return fmt.Errorf("%s: API key is required", c.Provider)
		}
	case Mock:
	case "":
		return fmt.Errorf("no LLM provider selected")
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if c.Retry.Attempts > 1 && (c.Retry.Factor < 1 || c.Retry.Initial <= 0) {
		return fmt.Errorf("retry backoff needs a positive initial wait and a factor of at least 1")
	}
	return nil
}

// wellKnownKeys are the vendor API key variables, in lookup order.
var wellKnownKeys = []struct{ env, provider string }{
	{"GEMINI_API_KEY", Gemini},
	{"OPENAI_API_KEY", OpenAI},
	{"ANTHROPIC_API_KEY", Anthropic},
	{"OPENROUTER_API_KEY", OpenRouter},
}

// Discover picks a backend from the first vendor API key variable found.
// It reports false when none is set.
func Discover(getenv func(string) string) (Config, bool) {
	for _, k := range wellKnownKeys {
		if v := getenv(k.env); v != "" {
			cfg := DefaultConfig()
			cfg.Provider = k.provider
			cfg.APIKey = v
			return cfg, true
		}
	}
	return Config{}, false
}

// KeyVariable names the vendor key variable for provider, for messages.
func KeyVariable(provider string) string {
	for _, k := range wellKnownKeys {
		if k.provider == provider {
			return k.env
		}
	}
	return ""
}
