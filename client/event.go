package client

import (
	"time"

	ai "github.com/spetersoncode/goalagent"
	"github.com/spetersoncode/goalagent/internal/retry"
)

// EventType identifies the kind of event occurring during client operations.
type EventType string

const (
	// EventRequestStart fires before a chat request begins.
	EventRequestStart EventType = "request_start"

	// EventRequestComplete fires after a chat request completes successfully.
	EventRequestComplete EventType = "request_complete"

	// EventRequestError fires when a chat request fails after all retries.
	EventRequestError EventType = "request_error"

	// EventRetry fires for each retry event.
	EventRetry EventType = "retry"
)

// Event represents an observable occurrence during client operations.
type Event struct {
	Type EventType

	Provider ai.Provider

	// Model is the per-request model override, empty for the backend default.
	Model string

	// Duration is the elapsed time for finished requests.
	Duration time.Duration

	Usage *ai.Usage

	// Error contains the error for EventRequestError.
	Error error

	// RetryEvent contains the underlying retry event for EventRetry.
	RetryEvent *RetryEvent

	Timestamp time.Time
}

// RetryEvent is an attempt-level event from the retry loop.
type RetryEvent = retry.Event

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
	}
}
