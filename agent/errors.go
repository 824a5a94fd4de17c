package agent

import (
	"errors"
	"fmt"
)

// ErrTooManyRounds indicates the agent reached its round limit before the
// goal check answered "yes".
var ErrTooManyRounds = errors.New("agent: maximum rounds reached")

// ErrCompletion wraps a completion service failure.
type ErrCompletion struct {
	Phase Phase
	Round int
	Err   error
}

func (e *ErrCompletion) Error() string {
	return fmt.Sprintf("agent: round %d: completion failed during %s: %v", e.Round, e.Phase, e.Err)
}

func (e *ErrCompletion) Unwrap() error {
	return e.Err
}

// ErrDispatch wraps a tool registry failure for one requested tool call.
// The underlying error is one of the tool package's error types.
type ErrDispatch struct {
	Round  int
	CallID string
	Tool   string
	Err    error
}

func (e *ErrDispatch) Error() string {
	return fmt.Sprintf("agent: round %d: dispatch of %s (call %s) failed: %v", e.Round, e.Tool, e.CallID, e.Err)
}

func (e *ErrDispatch) Unwrap() error {
	return e.Err
}

// ErrProtocolViolation is returned when the goal-check reply is not exactly
// one JSON object of the form {"answer": "yes"} or {"answer": "no"}.
type ErrProtocolViolation struct {
	Round   int
	Content string
	Reason  string
}

func (e *ErrProtocolViolation) Error() string {
	return fmt.Sprintf("agent: round %d: goal check protocol violation: %s", e.Round, e.Reason)
}
