package agent

import (
	"log/slog"
	"time"

	ai "github.com/spetersoncode/goalagent"
)

// DefaultSystemPrompt opens every run unless replaced with WithSystemPrompt.
const DefaultSystemPrompt = "You are an agent that accomplishes the user's goal by calling the provided tools. " +
	"Call tools whenever they help make progress. When no further tool calls are needed, reply without calling any tool."

// Options contains configuration for agent execution.
type Options struct {
	// MaxRounds limits the number of rounds. Starting round MaxRounds+1
	// fails the run with ErrTooManyRounds. Set to 0 for unlimited. Default is 10.
	MaxRounds int

	// CompletionTimeout bounds each completion call. 0 means no per-call
	// timeout; the run's context still applies.
	CompletionTimeout time.Duration

	// ToolTemperature is the sampling temperature for tool selection. Default is 0.
	ToolTemperature float64

	// TopP is the nucleus sampling mass for tool selection. Default is 1.
	TopP float64

	// GoalCheckTemperature is the sampling temperature for the goal check.
	// Default is 0.7.
	GoalCheckTemperature float64

	// SystemPrompt is the first message of every transcript. Empty omits it.
	SystemPrompt string

	// StatelessRounds makes every tool-offering request carry only the
	// system and goal messages instead of the accumulated transcript, and
	// sends the goal check on its own.
	StatelessRounds bool

	// Logger receives run diagnostics. Default is slog.Default().
	Logger *slog.Logger

	// ChatOptions are passed through to every completion call. Options the
	// loop sets itself (tools, tool choice, sampling, response format) take
	// precedence.
	ChatOptions []ai.Option
}

// Option is a functional option for configuring agent execution.
type Option func(*Options)

// WithMaxRounds sets the maximum number of rounds.
// Default is 10. Set to 0 for unlimited.
func WithMaxRounds(n int) Option {
	return func(o *Options) {
		o.MaxRounds = n
	}
}

// WithCompletionTimeout bounds each individual completion call.
func WithCompletionTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.CompletionTimeout = d
	}
}

// WithToolTemperature sets the sampling temperature used when tools are offered.
func WithToolTemperature(t float64) Option {
	return func(o *Options) {
		o.ToolTemperature = t
	}
}

// WithTopP sets the nucleus sampling mass used when tools are offered.
func WithTopP(p float64) Option {
	return func(o *Options) {
		o.TopP = p
	}
}

// WithGoalCheckTemperature sets the sampling temperature of the goal check.
func WithGoalCheckTemperature(t float64) Option {
	return func(o *Options) {
		o.GoalCheckTemperature = t
	}
}

// WithSystemPrompt replaces the default system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(o *Options) {
		o.SystemPrompt = prompt
	}
}

// WithStatelessRounds resends only the system and goal messages on every
// round instead of the accumulated transcript.
func WithStatelessRounds() Option {
	return func(o *Options) {
		o.StatelessRounds = true
	}
}

// WithLogger sets the logger for run diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithChatOptions passes options through to the ChatProvider.
func WithChatOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// WithModel is a convenience option to set the model for completion calls.
func WithModel(model string) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithModel(model))
	}
}

// WithMaxTokens is a convenience option to set max tokens for completion calls.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithMaxTokens(n))
	}
}

// ApplyOptions applies functional options to an Options struct with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxRounds:            10,
		ToolTemperature:      0,
		TopP:                 1,
		GoalCheckTemperature: 0.7,
		SystemPrompt:         DefaultSystemPrompt,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
