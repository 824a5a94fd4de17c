package agent

import (
	"time"

	ai "github.com/spetersoncode/goalagent"
)

// EventType identifies the kind of event occurring during a run.
type EventType string

const (
	// EventRunStart fires once before the first round.
	EventRunStart EventType = "run_start"

	// EventRoundStart fires when a round begins, before the tools are offered.
	EventRoundStart EventType = "round_start"

	// EventToolCallStart fires before a requested tool call is dispatched.
	EventToolCallStart EventType = "tool_call_start"

	// EventToolCallResult fires after a tool call was dispatched successfully.
	EventToolCallResult EventType = "tool_call_result"

	// EventGoalCheck fires with the parsed goal-check answer.
	EventGoalCheck EventType = "goal_check"

	// EventRunEnd fires when the run finishes with status DONE.
	EventRunEnd EventType = "run_end"

	// EventRunError fires when the run finishes with status FAILED.
	EventRunError EventType = "run_error"
)

// Event represents an observable occurrence during a run.
type Event struct {
	// Type identifies the kind of event.
	Type EventType

	// Round is the current round number (1-indexed).
	Round int

	// ToolCall is set for tool call events.
	ToolCall *ai.ToolCall

	// ToolResult is set for EventToolCallResult.
	ToolResult *ai.ToolResult

	// Action is the recorded action for EventToolCallResult.
	Action *Action

	// Answer is "yes" or "no" for EventGoalCheck.
	Answer string

	// Response is the model reply that produced the event, when there is one.
	Response *ai.Response

	// Result is set on the final EventRunEnd or EventRunError.
	Result *Result

	// Error contains the diagnostic for EventRunError.
	Error error

	// Timestamp is when the event occurred.
	Timestamp time.Time
}
