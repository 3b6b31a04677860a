package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at an empty directory and clears the
// environment variables the tests depend on.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)
	for _, k := range []string{
		"SQLQUEST_DB", "SQLQUEST_LLM_PROVIDER", "SQLQUEST_ASSESSMENT_QUESTION_COUNT",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, 60, cfg.Assessment.PassPercent())
	assert.Zero(t, cfg.Engine.StatementTimeout, "statements run unbounded unless configured")
}

func TestLoadFileFromConfigHome(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "sqlquest", "sqlquest.yaml"), `
db: /tmp/progress.db
assessment:
  question_count: 7
  shuffle_options: false
engine:
  statement_timeout: 2s
`)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/progress.db", cfg.DB)
	assert.Equal(t, 7, cfg.Assessment.QuestionCount)
	assert.False(t, cfg.Assessment.ShuffleOptions)
	assert.Equal(t, 2*time.Second, cfg.Engine.StatementTimeout)
	assert.Equal(t, 100, cfg.Engine.MaxRows)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "assessment:\n  question_count: 7\n")
	t.Setenv("SQLQUEST_ASSESSMENT_QUESTION_COUNT", "4")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Assessment.QuestionCount)
}

func TestFlagsOverrideEverything(t *testing.T) {
	isolate(t)
	t.Setenv("SQLQUEST_DB", "/from/env.db")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.Bool("verbose", false, "")
	require.NoError(t, fs.Parse([]string{"--db", "/from/flag.db", "--verbose"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.db", cfg.DB)
	assert.True(t, cfg.Log.Verbose)
}

func TestUnsetFlagDoesNotMaskEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SQLQUEST_DB", "/from/env.db")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DB)
}

func TestExplicitMissingFileFails(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero questions", func(c *Config) { c.Assessment.QuestionCount = 0 }, false},
		{"ratio above one", func(c *Config) { c.Assessment.PassRatio = 1.5 }, false},
		{"negative llm questions", func(c *Config) { c.Assessment.LLMQuestions = -1 }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"upper level", func(c *Config) { c.Log.Level = "DEBUG" }, true},
		{"no rows", func(c *Config) { c.Engine.MaxRows = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLLMProviderConfig(t *testing.T) {
	isolate(t)

	_, ok := Default().LLMProviderConfig()
	assert.False(t, ok)

	c := Default()
	c.LLM.Provider = "openai"
	c.LLM.OpenAIAPIKey = "sk-test"
	c.LLM.Model = "gpt-test"
	c.LLM.RetryAttempts = 5
	got, ok := c.LLMProviderConfig()
	require.True(t, ok)
	assert.Equal(t, "openai", got.Provider)
	assert.Equal(t, "sk-test", got.APIKey)
	assert.Equal(t, "gpt-test", got.ModelID())
	assert.Equal(t, 5, got.Retry.Attempts)
	assert.Equal(t, 30*time.Second, got.Timeout)
	assert.NoError(t, got.Validate())

	t.Setenv("GEMINI_API_KEY", "g-key")
	got, ok = Default().LLMProviderConfig()
	require.True(t, ok)
	assert.Equal(t, "gemini", got.Provider)
	assert.Equal(t, "g-key", got.APIKey)
	assert.Equal(t, "gemini-2.0-flash", got.ModelID())

	// A named provider without a configured key falls back to the vendor variable.
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	c = Default()
	c.LLM.Provider = "anthropic"
	got, ok = c.LLMProviderConfig()
	require.True(t, ok)
	assert.Equal(t, "a-key", got.APIKey)
}
