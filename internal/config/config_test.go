package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/goalagent"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{"GROQ_API_KEY": "gsk"}))
	require.NoError(t, err)

	assert.Equal(t, ai.ProviderGroq, cfg.Provider)
	assert.Equal(t, "gsk", cfg.APIKey())
	assert.Equal(t, 10, cfg.MaxRounds)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, 3, cfg.RetryAttempts)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"GOALAGENT_PROVIDER":       "Anthropic",
		"ANTHROPIC_API_KEY":        "sk-ant",
		"GOALAGENT_MODEL":          "claude-haiku-4-5",
		"GOALAGENT_MAX_ROUNDS":     "0",
		"GOALAGENT_TIMEOUT":        "30s",
		"GOALAGENT_RETRY_ATTEMPTS": "5",
		"GOALAGENT_LOG_LEVEL":      "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, ai.ProviderAnthropic, cfg.Provider)
	assert.Equal(t, 0, cfg.MaxRounds)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	cc := cfg.ClientConfig(slog.Default())
	assert.Equal(t, ai.ProviderAnthropic, cc.Provider)
	assert.Equal(t, "sk-ant", cc.APIKey)
	assert.Equal(t, "claude-haiku-4-5", cc.Model)
	require.NotNil(t, cc.Retry)
	assert.Equal(t, 5, cc.Retry.MaxAttempts)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		field string
	}{
		{"missing groq key", map[string]string{}, "GROQ_API_KEY"},
		{"missing openai key", map[string]string{"GOALAGENT_PROVIDER": "openai", "GROQ_API_KEY": "gsk"}, "OPENAI_API_KEY"},
		{"vertex without location", map[string]string{"GOALAGENT_PROVIDER": "vertex", "VERTEX_PROJECT": "p"}, "VERTEX_PROJECT"},
		{"unknown provider", map[string]string{"GOALAGENT_PROVIDER": "acme"}, "GOALAGENT_PROVIDER"},
		{"bad max rounds", map[string]string{"GROQ_API_KEY": "k", "GOALAGENT_MAX_ROUNDS": "ten"}, "GOALAGENT_MAX_ROUNDS"},
		{"negative max rounds", map[string]string{"GROQ_API_KEY": "k", "GOALAGENT_MAX_ROUNDS": "-1"}, "GOALAGENT_MAX_ROUNDS"},
		{"bad timeout", map[string]string{"GROQ_API_KEY": "k", "GOALAGENT_TIMEOUT": "soon"}, "GOALAGENT_TIMEOUT"},
		{"zero retry attempts", map[string]string{"GROQ_API_KEY": "k", "GOALAGENT_RETRY_ATTEMPTS": "0"}, "GOALAGENT_RETRY_ATTEMPTS"},
		{"bad log level", map[string]string{"GROQ_API_KEY": "k", "GOALAGENT_LOG_LEVEL": "loud"}, "GOALAGENT_LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(envMap(tt.env))
			assert.Nil(t, cfg)

			var cfgErr *ai.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestVertexNeedsNoKey(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"GOALAGENT_PROVIDER": "vertex",
		"VERTEX_PROJECT":     "proj",
		"VERTEX_LOCATION":    "us-central1",
	}))
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey())
	assert.Equal(t, "proj", cfg.ClientConfig(nil).Project)
}

func TestOverlay(t *testing.T) {
	base := envMap(map[string]string{"GROQ_API_KEY": "from-env", "GOALAGENT_MODEL": "env-model"})
	cfg, err := FromEnv(Overlay(map[string]string{"GOALAGENT_MODEL": "flag-model", "GOALAGENT_MAX_ROUNDS": ""}, base))
	require.NoError(t, err)

	assert.Equal(t, "flag-model", cfg.Model)
	assert.Equal(t, "from-env", cfg.GroqKey)
	assert.Equal(t, 10, cfg.MaxRounds)
}
