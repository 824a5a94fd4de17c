package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	ai "github.com/spetersoncode/goalagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDo(t *testing.T) {
	t.Run("success on first attempt", func(t *testing.T) {
		calls := 0
		result, err := Do(context.Background(), fastConfig(3), func() (string, error) {
			calls++
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient errors", func(t *testing.T) {
		calls := 0
		result, err := Do(context.Background(), fastConfig(3), func() (string, error) {
			calls++
			if calls < 3 {
				return "", ai.NewTransientError("rate limited", 429, nil)
			}
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		permanent := ai.NewPermanentError("unauthorized", 401, nil)
		_, err := Do(context.Background(), fastConfig(3), func() (string, error) {
			calls++
			return "", permanent
		})

		assert.Equal(t, permanent, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), fastConfig(3), func() (int, error) {
			calls++
			return 0, ai.NewTransientError("unavailable", 503, nil)
		})

		require.Error(t, err)
		assert.True(t, ai.IsTransient(err))
		assert.Equal(t, 3, calls)
	})

	t.Run("disabled makes one attempt", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), Disabled(), func() (int, error) {
			calls++
			return 0, ai.NewTransientError("unavailable", 503, nil)
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("context cancellation stops waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cfg := Config{MaxAttempts: 5, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 1}
		calls := 0

		_, err := Do(ctx, cfg, func() (int, error) {
			calls++
			cancel()
			return 0, ai.NewTransientError("unavailable", 503, nil)
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestDoWithObserver(t *testing.T) {
	var events []Event
	observe := func(e Event) { events = append(events, e) }

	_, err := DoWithObserver(context.Background(), fastConfig(2), observe, func() (int, error) {
		return 0, ai.NewTransientError("unavailable", 503, nil)
	})
	require.Error(t, err)

	var types []EventType
	for _, e := range events {
		types = append(types, e.Type)
		assert.False(t, e.Timestamp.IsZero())
	}
	assert.Equal(t, []EventType{EventAttemptFailed, EventRetrying, EventAttemptFailed, EventExhausted}, types)
	assert.Equal(t, 2, events[2].Attempt)
	assert.True(t, events[0].Retryable)

	t.Run("permanent failure is reported once", func(t *testing.T) {
		events = nil
		_, err := DoWithObserver(context.Background(), fastConfig(3), observe, func() (int, error) {
			return 0, errors.New("bad request")
		})

		require.Error(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, EventAttemptFailed, events[0].Type)
		assert.False(t, events[0].Retryable)
	})
}

func TestEffectiveDelay(t *testing.T) {
	withRetryAfter := ai.NewTransientErrorWithRetry("rate limited", 429, 2*time.Second, nil)

	assert.Equal(t, 2*time.Second, effectiveDelay(time.Second, withRetryAfter))
	assert.Equal(t, 3*time.Second, effectiveDelay(3*time.Second, withRetryAfter))
	assert.Equal(t, time.Second, effectiveDelay(time.Second, errors.New("plain")))
}

func TestDoHonorsRetryAfter(t *testing.T) {
	calls := 0
	start := time.Now()

	_, err := Do(context.Background(), fastConfig(2), func() (int, error) {
		calls++
		if calls == 1 {
			return 0, ai.NewTransientErrorWithRetry("rate limited", 429, 30*time.Millisecond, nil)
		}
		return 1, nil
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
