// Package client selects a completion backend by provider name and wraps
// it with bounded retry.
//
// Supported providers are openai, groq (OpenAI-compatible endpoint),
// anthropic, google (Gemini API) and vertex (Gemini on Vertex AI).
//
// # Basic Usage
//
//	c, err := client.New(ctx, client.Config{
//	    Provider: goalagent.ProviderGroq,
//	    APIKey:   os.Getenv("GROQ_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := c.Chat(ctx, []goalagent.Message{goalagent.NewUserMessage("Hello!")})
//
// A missing key or unknown provider fails in New with *goalagent.ConfigError.
//
// # Retry Configuration
//
// Transient errors (rate limits, 5xx responses, network timeouts) are
// retried with exponential backoff. A Retry-After hint from the backend
// takes precedence over the computed delay.
//
//	cfg := client.DefaultRetryConfig()
//	cfg.MaxAttempts = 5
//	c, err := client.New(ctx, client.Config{
//	    Provider: goalagent.ProviderOpenAI,
//	    APIKey:   os.Getenv("OPENAI_API_KEY"),
//	    Retry:    &cfg,
//	})
//
// # Events
//
// Observe requests and retries via an event channel. Sends never block;
// events are dropped when the channel is full.
//
//	events := make(chan client.Event, 100)
//	c, err := client.New(ctx, client.Config{APIKey: key, Events: events})
package client
