package retry

import (
	"context"
	"time"

	ai "github.com/spetersoncode/goalagent"
)

// effectiveDelay returns the configured delay, or the server's Retry-After
// when that is longer.
func effectiveDelay(configured time.Duration, err error) time.Duration {
	if server := ai.RetryAfterOf(err); server > configured {
		return server
	}
	return configured
}

// Do executes fn, retrying transient failures. Context cancellation
// interrupts the wait between attempts. It returns the first success or the
// last error.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	return DoWithObserver(ctx, cfg, nil, fn)
}

// DoWithObserver is like Do but reports failed attempts, waits and
// exhaustion to observe. A nil observer is allowed.
func DoWithObserver[T any](ctx context.Context, cfg Config, observe Observer, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	attempts := cfg.attempts()

	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		retryable := IsTransient(err)
		observe.notify(Event{
			Type:        EventAttemptFailed,
			Attempt:     attempt + 1,
			MaxAttempts: attempts,
			Error:       err,
			Retryable:   retryable,
		})
		if !retryable {
			return zero, err
		}

		if attempt < attempts-1 {
			delay := effectiveDelay(cfg.Delay(attempt), err)
			observe.notify(Event{
				Type:        EventRetrying,
				Attempt:     attempt + 1,
				MaxAttempts: attempts,
				Error:       err,
				Delay:       delay,
				Retryable:   true,
			})

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}
	}

	observe.notify(Event{
		Type:        EventExhausted,
		Attempt:     attempts,
		MaxAttempts: attempts,
		Error:       lastErr,
		Retryable:   true,
	})
	return zero, lastErr
}
