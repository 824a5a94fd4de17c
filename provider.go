package goalagent

import "context"

// Provider identifies a completion backend.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderGroq      Provider = "groq"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
	ProviderVertex    Provider = "vertex"
)

// ChatProvider is the completion service capability consumed by the agent.
type ChatProvider interface {
	// Chat sends a conversation and returns the assistant's reply, which may
	// carry plain content, tool call requests, or both.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}
