// Package config loads goalagent settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	ai "github.com/spetersoncode/goalagent"
	"github.com/spetersoncode/goalagent/client"
)

// Config holds the settings loaded from environment variables.
type Config struct {
	LogLevel string // debug, info, warn, error

	// Provider selection
	Provider ai.Provider
	Model    string
	BaseURL  string

	// API Keys
	GroqKey      string
	OpenAIKey    string
	AnthropicKey string
	GoogleKey    string

	// Vertex AI (uses ADC for auth)
	VertexProject  string
	VertexLocation string

	// Agent and client
	MaxRounds     int
	Timeout       time.Duration
	RetryAttempts int
}

// Load reads a .env file if present (silently skipped when missing), then
// the process environment, and validates the result. Non-empty entries of
// overrides, keyed by variable name, take precedence over both.
func Load(overrides map[string]string) (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(Overlay(overrides, os.LookupEnv))
}

// Overlay returns a lookup that consults overrides before lookup.
func Overlay(overrides map[string]string, lookup func(string) (string, bool)) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v := overrides[key]; v != "" {
			return v, true
		}
		return lookup(key)
	}
}

// FromEnv builds and validates a Config from lookup.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	env := envReader{lookup: lookup}
	cfg := &Config{
		LogLevel:       env.str("GOALAGENT_LOG_LEVEL", "info"),
		Provider:       ai.Provider(strings.ToLower(env.str("GOALAGENT_PROVIDER", string(ai.ProviderGroq)))),
		Model:          env.str("GOALAGENT_MODEL", ""),
		BaseURL:        env.str("GOALAGENT_BASE_URL", ""),
		GroqKey:        env.str("GROQ_API_KEY", ""),
		OpenAIKey:      env.str("OPENAI_API_KEY", ""),
		AnthropicKey:   env.str("ANTHROPIC_API_KEY", ""),
		GoogleKey:      env.str("GOOGLE_API_KEY", ""),
		VertexProject:  env.str("VERTEX_PROJECT", ""),
		VertexLocation: env.str("VERTEX_LOCATION", ""),
		MaxRounds:      env.integer("GOALAGENT_MAX_ROUNDS", 10),
		Timeout:        env.duration("GOALAGENT_TIMEOUT", 2*time.Minute),
		RetryAttempts:  env.integer("GOALAGENT_RETRY_ATTEMPTS", 3),
	}
	if env.err != nil {
		return nil, env.err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected provider has its credentials and that
// numeric settings are in range.
func (c *Config) Validate() error {
	switch c.Provider {
	case ai.ProviderGroq, ai.ProviderOpenAI, ai.ProviderAnthropic, ai.ProviderGoogle:
		if c.APIKey() == "" {
			return &ai.ConfigError{Field: keyVar[c.Provider], Reason: fmt.Sprintf("required for %s provider", c.Provider)}
		}
	case ai.ProviderVertex:
		if c.VertexProject == "" || c.VertexLocation == "" {
			return &ai.ConfigError{Field: "VERTEX_PROJECT", Reason: "VERTEX_PROJECT and VERTEX_LOCATION are required for vertex provider"}
		}
	default:
		return &ai.ConfigError{Field: "GOALAGENT_PROVIDER", Reason: fmt.Sprintf("unknown provider %q (must be groq, openai, anthropic, google, or vertex)", c.Provider)}
	}

	if c.MaxRounds < 0 {
		return &ai.ConfigError{Field: "GOALAGENT_MAX_ROUNDS", Reason: "must not be negative"}
	}
	if c.RetryAttempts < 1 {
		return &ai.ConfigError{Field: "GOALAGENT_RETRY_ATTEMPTS", Reason: "must be at least 1"}
	}
	if c.Timeout < 0 {
		return &ai.ConfigError{Field: "GOALAGENT_TIMEOUT", Reason: "must not be negative"}
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

var keyVar = map[ai.Provider]string{
	ai.ProviderGroq:      "GROQ_API_KEY",
	ai.ProviderOpenAI:    "OPENAI_API_KEY",
	ai.ProviderAnthropic: "ANTHROPIC_API_KEY",
	ai.ProviderGoogle:    "GOOGLE_API_KEY",
}

// APIKey returns the credential for the selected provider.
func (c *Config) APIKey() string {
	switch c.Provider {
	case ai.ProviderGroq:
		return c.GroqKey
	case ai.ProviderOpenAI:
		return c.OpenAIKey
	case ai.ProviderAnthropic:
		return c.AnthropicKey
	case ai.ProviderGoogle:
		return c.GoogleKey
	}
	return ""
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, &ai.ConfigError{Field: "GOALAGENT_LOG_LEVEL", Reason: fmt.Sprintf("invalid level %q", c.LogLevel)}
	}
	return level, nil
}

// ClientConfig returns the completion client settings.
func (c *Config) ClientConfig(logger *slog.Logger) client.Config {
	retry := client.DefaultRetryConfig().WithAttempts(c.RetryAttempts)
	return client.Config{
		Provider: c.Provider,
		APIKey:   c.APIKey(),
		Model:    c.Model,
		BaseURL:  c.BaseURL,
		Project:  c.VertexProject,
		Location: c.VertexLocation,
		Retry:    &retry,
		Logger:   logger,
	}
}

// envReader records the first malformed value it sees.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *envReader) str(key, defaultValue string) string {
	if value, ok := e.lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func (e *envReader) integer(key string, defaultValue int) int {
	value := e.str(key, "")
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		e.fail(key, fmt.Sprintf("invalid integer %q", value))
		return defaultValue
	}
	return i
}

func (e *envReader) duration(key string, defaultValue time.Duration) time.Duration {
	value := e.str(key, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		e.fail(key, fmt.Sprintf("invalid duration %q", value))
		return defaultValue
	}
	return d
}

func (e *envReader) fail(key, reason string) {
	if e.err == nil {
		e.err = &ai.ConfigError{Field: key, Reason: reason}
	}
}
