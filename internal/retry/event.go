package retry

import "time"

// EventType identifies the kind of event occurring during retry execution.
type EventType string

const (
	// EventAttemptFailed fires after a failed attempt.
	EventAttemptFailed EventType = "attempt_failed"

	// EventRetrying fires before sleeping between attempts.
	EventRetrying EventType = "retrying"

	// EventExhausted fires when all attempts failed with transient errors.
	EventExhausted EventType = "exhausted"
)

// Event represents an observable occurrence during retry execution.
type Event struct {
	Type EventType

	// Attempt is the attempt number (1-indexed).
	Attempt int

	MaxAttempts int

	// Error is the error of the failed attempt.
	Error error

	// Delay is the wait before the next attempt (EventRetrying only).
	Delay time.Duration

	// Retryable reports whether the error was classified as transient.
	Retryable bool

	Timestamp time.Time
}

// Observer receives retry events. It is called synchronously.
type Observer func(Event)

func (o Observer) notify(e Event) {
	if o == nil {
		return
	}
	e.Timestamp = time.Now()
	o(e)
}
