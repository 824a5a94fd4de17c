package client

import (
	"context"
	"log/slog"
	"time"

	ai "github.com/spetersoncode/goalagent"
	"github.com/spetersoncode/goalagent/internal/provider/anthropic"
	"github.com/spetersoncode/goalagent/internal/provider/google"
	"github.com/spetersoncode/goalagent/internal/provider/openai"
	"github.com/spetersoncode/goalagent/internal/retry"
)

// Config holds configuration for creating a client.
type Config struct {
	// Provider selects the backend. Defaults to groq.
	Provider ai.Provider

	// APIKey authenticates against the backend. Required for every
	// provider except vertex, which uses Application Default Credentials.
	APIKey string

	// Model is the default model. Empty selects the backend's default.
	Model string

	// BaseURL overrides the endpoint for the openai, groq and anthropic backends.
	BaseURL string

	// Project and Location select the Vertex AI project and region.
	Project  string
	Location string

	// Retry configures retry behavior for transient errors.
	// If nil, DefaultRetryConfig is used.
	Retry *RetryConfig

	// Logger receives attempt and failure logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Events is an optional channel for receiving client operation events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithMaxTokens(n))
	}
}

// WithDefaultChatOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultChatOptions(opts ...ai.Option) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, opts...)
	}
}

// Client is a ChatProvider over one configured backend that retries
// transient failures.
type Client struct {
	backend         ai.ChatProvider
	provider        ai.Provider
	retryConfig     retry.Config
	logger          *slog.Logger
	events          chan<- Event
	defaultChatOpts []ai.Option
}

// New validates cfg and creates a client for the selected backend.
// Configuration problems are reported as *ai.ConfigError.
func New(ctx context.Context, cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.Provider == "" {
		cfg.Provider = ai.ProviderGroq
	}

	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithBackend(cfg.Provider, backend, cfg, opts...), nil
}

// NewWithBackend wraps an existing ChatProvider with the client's retry,
// logging and events. Backend selection fields of cfg are ignored.
func NewWithBackend(name ai.Provider, backend ai.ChatProvider, cfg Config, opts ...ClientOption) *Client {
	retryConfig := retry.DefaultConfig()
	if cfg.Retry != nil {
		retryConfig = *cfg.Retry
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		backend:     backend,
		provider:    name,
		retryConfig: retryConfig,
		logger:      logger.With("provider", string(name)),
		events:      cfg.Events,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newBackend(ctx context.Context, cfg Config) (ai.ChatProvider, error) {
	if cfg.Provider != ai.ProviderVertex && cfg.APIKey == "" {
		return nil, &ai.ConfigError{Field: "api_key", Reason: "no API key configured for " + string(cfg.Provider)}
	}

	switch cfg.Provider {
	case ai.ProviderOpenAI:
		return openai.New(cfg.APIKey, openai.WithBaseURL(cfg.BaseURL), openai.WithModel(cfg.Model)), nil
	case ai.ProviderGroq:
		return openai.NewGroq(cfg.APIKey, openai.WithBaseURL(cfg.BaseURL), openai.WithModel(cfg.Model)), nil
	case ai.ProviderAnthropic:
		return anthropic.New(cfg.APIKey, anthropic.WithBaseURL(cfg.BaseURL), anthropic.WithModel(cfg.Model)), nil
	case ai.ProviderGoogle:
		return google.New(ctx, cfg.APIKey, google.WithModel(cfg.Model))
	case ai.ProviderVertex:
		if cfg.Project == "" || cfg.Location == "" {
			return nil, &ai.ConfigError{Field: "project", Reason: "vertex requires a project and location"}
		}
		return google.NewVertex(ctx, cfg.Project, cfg.Location, google.WithModel(cfg.Model))
	default:
		return nil, &ai.ConfigError{Field: "provider", Reason: "unsupported provider " + string(cfg.Provider)}
	}
}

// Provider returns the backend this client talks to.
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// Chat sends a conversation and returns a complete response.
// Transient errors are retried according to the client's retry configuration.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	// Defaults first so per-request options override them.
	opts = append(append([]ai.Option{}, c.defaultChatOpts...), opts...)
	model := ai.ApplyOptions(opts...).Model

	start := time.Now()
	c.emit(Event{Type: EventRequestStart, Model: model})

	resp, err := retry.DoWithObserver(ctx, c.retryConfig, c.observeRetry(model), func() (*ai.Response, error) {
		return c.backend.Chat(ctx, messages, opts...)
	})
	if err != nil {
		c.logger.Warn("chat request failed", "model", model, "duration", time.Since(start), "error", err)
		c.emit(Event{Type: EventRequestError, Model: model, Duration: time.Since(start), Error: err})
		return nil, err
	}

	c.logger.Debug("chat request complete",
		"model", model,
		"duration", time.Since(start),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)
	c.emit(Event{Type: EventRequestComplete, Model: model, Duration: time.Since(start), Usage: &resp.Usage})
	return resp, nil
}

func (c *Client) observeRetry(model string) retry.Observer {
	return func(e retry.Event) {
		switch e.Type {
		case retry.EventRetrying:
			c.logger.Info("retrying chat request",
				"attempt", e.Attempt,
				"max_attempts", e.MaxAttempts,
				"delay", e.Delay,
				"error", e.Error,
			)
		case retry.EventExhausted:
			c.logger.Warn("chat retries exhausted", "attempts", e.Attempt, "error", e.Error)
		}
		c.emit(Event{Type: EventRetry, Model: model, RetryEvent: &e})
	}
}

func (c *Client) emit(event Event) {
	event.Provider = c.provider
	emit(c.events, event)
}

var _ ai.ChatProvider = (*Client)(nil)
