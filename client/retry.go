package client

import "github.com/spetersoncode/goalagent/internal/retry"

// RetryConfig holds retry configuration parameters.
type RetryConfig = retry.Config

// Retry event type constants.
const (
	RetryEventAttemptFailed = retry.EventAttemptFailed
	RetryEventRetrying      = retry.EventRetrying
	RetryEventExhausted     = retry.EventExhausted
)

// DefaultRetryConfig returns the default retry configuration:
// 3 attempts, 500ms initial delay, 30s max delay, 2x backoff, 10% jitter.
func DefaultRetryConfig() RetryConfig {
	return retry.DefaultConfig()
}

// DisabledRetryConfig returns a configuration that disables retries (single attempt).
func DisabledRetryConfig() RetryConfig {
	return retry.Disabled()
}

// IsTransientError reports whether err is worth retrying: rate limits,
// server errors, network timeouts and connection failures.
func IsTransientError(err error) bool {
	return retry.IsTransient(err)
}
