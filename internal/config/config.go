// Package config loads sqlquest settings from an optional YAML file,
// SQLQUEST_ environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/sqlquest/internal/llm"
)

// EnvPrefix is prepended to every environment variable, with dots in key
// names replaced by underscores: SQLQUEST_ASSESSMENT_QUESTION_COUNT.
const EnvPrefix = "SQLQUEST"

// Config is the full application configuration.
type Config struct {
	// DB is the progress database path. Empty means the default location.
	DB         string           `mapstructure:"db"`
	Log        LogConfig        `mapstructure:"log"`
	Assessment AssessmentConfig `mapstructure:"assessment"`
	Engine     EngineConfig     `mapstructure:"engine"`
	LLM        LLMConfig        `mapstructure:"llm"`
}

type LogConfig struct {
	File    string `mapstructure:"file"`
	Level   string `mapstructure:"level"`
	Verbose bool   `mapstructure:"verbose"`
}

type AssessmentConfig struct {
	QuestionCount  int     `mapstructure:"question_count"`
	PassRatio      float64 `mapstructure:"pass_ratio"`
	ShuffleOptions bool    `mapstructure:"shuffle_options"`
	LLMQuestions   int     `mapstructure:"llm_questions"`
}

// PassPercent returns PassRatio as a whole percentage.
func (a AssessmentConfig) PassPercent() int {
	return int(math.Round(a.PassRatio * 100))
}

type EngineConfig struct {
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
	// MaxRows caps the rows shown for a sandbox query.
	MaxRows int `mapstructure:"max_rows"`
}

type LLMConfig struct {
	// Provider selects the LLM provider. Empty falls back to the
	// provider environment variables and then to key discovery.
	Provider         string        `mapstructure:"provider"`
	Model            string        `mapstructure:"model"`
	AnthropicAPIKey  string        `mapstructure:"anthropic_api_key"`
	OpenAIAPIKey     string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL    string        `mapstructure:"openai_base_url"`
	GeminiAPIKey     string        `mapstructure:"gemini_api_key"`
	OpenRouterAPIKey string        `mapstructure:"openrouter_api_key"`
	Timeout          time.Duration `mapstructure:"timeout"`
	RetryAttempts    int           `mapstructure:"retry_attempts"`
	// Explain enables LLM explanations of wrong answers.
	Explain bool `mapstructure:"explain"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Assessment: AssessmentConfig{
			QuestionCount:  5,
			PassRatio:      0.6,
			ShuffleOptions: true,
		},
		Engine: EngineConfig{
			StatementTimeout: 0,
			MaxRows:          100,
		},
		LLM: LLMConfig{
			Timeout:       30 * time.Second,
			RetryAttempts: 3,
			Explain:       true,
		},
	}
}

// Load reads configuration. An explicit path must exist; otherwise
// sqlquest.yaml is looked up in $XDG_CONFIG_HOME/sqlquest and the current
// directory, and its absence is not an error. Flags in fs named "db",
// "verbose" and "log-level" override file and environment values when set.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sqlquest")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, flag := range map[string]string{"db": "db", "log.verbose": "verbose", "log.level": "log-level"} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("db", d.DB)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.verbose", d.Log.Verbose)
	v.SetDefault("assessment.question_count", d.Assessment.QuestionCount)
	v.SetDefault("assessment.pass_ratio", d.Assessment.PassRatio)
	v.SetDefault("assessment.shuffle_options", d.Assessment.ShuffleOptions)
	v.SetDefault("assessment.llm_questions", d.Assessment.LLMQuestions)
	v.SetDefault("engine.statement_timeout", d.Engine.StatementTimeout)
	v.SetDefault("engine.max_rows", d.Engine.MaxRows)
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.anthropic_api_key", d.LLM.AnthropicAPIKey)
	v.SetDefault("llm.openai_api_key", d.LLM.OpenAIAPIKey)
	v.SetDefault("llm.openai_base_url", d.LLM.OpenAIBaseURL)
	v.SetDefault("llm.gemini_api_key", d.LLM.GeminiAPIKey)
	v.SetDefault("llm.openrouter_api_key", d.LLM.OpenRouterAPIKey)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.retry_attempts", d.LLM.RetryAttempts)
	v.SetDefault("llm.explain", d.LLM.Explain)
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "sqlquest"), nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Assessment.QuestionCount < 1 || c.Assessment.QuestionCount > 20 {
		errs = append(errs, fmt.Errorf("assessment.question_count must be between 1 and 20, got %d", c.Assessment.QuestionCount))
	}
	if c.Assessment.PassRatio <= 0 || c.Assessment.PassRatio > 1 {
		errs = append(errs, fmt.Errorf("assessment.pass_ratio must be in (0, 1], got %g", c.Assessment.PassRatio))
	}
	if c.Assessment.LLMQuestions < 0 {
		errs = append(errs, fmt.Errorf("assessment.llm_questions must not be negative"))
	}
	if c.Engine.StatementTimeout < 0 {
		errs = append(errs, fmt.Errorf("engine.statement_timeout must not be negative"))
	}
	if c.Engine.MaxRows < 1 {
		errs = append(errs, fmt.Errorf("engine.max_rows must be positive, got %d", c.Engine.MaxRows))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	if c.LLM.Timeout < 0 || c.LLM.RetryAttempts < 0 {
		errs = append(errs, fmt.Errorf("llm.timeout and llm.retry_attempts must not be negative"))
	}
	return errors.Join(errs...)
}

// LLMProviderConfig resolves the provider settings. A provider named in
// the config (or SQLQUEST_LLM_PROVIDER) wins; otherwise the first vendor
// API key variable found picks one. The second result is false when no
// provider is configured anywhere.
func (c Config) LLMProviderConfig() (llm.Config, bool) {
	out := llm.DefaultConfig()
	if c.LLM.Provider != "" {
		out.Provider = c.LLM.Provider
	} else {
		found, ok := llm.Discover(os.Getenv)
		if !ok {
			return llm.Config{}, false
		}
		out = found
	}

	keys := map[string]string{
		llm.Anthropic:  c.LLM.AnthropicAPIKey,
		llm.OpenAI:     c.LLM.OpenAIAPIKey,
		llm.Gemini:     c.LLM.GeminiAPIKey,
		llm.OpenRouter: c.LLM.OpenRouterAPIKey,
	}
	if k := keys[out.Provider]; k != "" {
		out.APIKey = k
	} else if out.APIKey == "" {
		out.APIKey = os.Getenv(llm.KeyVariable(out.Provider))
	}
	if out.Provider == llm.OpenAI {
		out.BaseURL = c.LLM.OpenAIBaseURL
	}
	out.Model = c.LLM.Model
	if c.LLM.Timeout > 0 {
		out.Timeout = c.LLM.Timeout
	}
	if c.LLM.RetryAttempts > 0 {
		out.Retry.Attempts = c.LLM.RetryAttempts
	}
	return out, true
}
