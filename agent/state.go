package agent

import (
	ai "github.com/spetersoncode/goalagent"
	"github.com/spetersoncode/goalagent/internal/store"
)

// Phase is the position of a run within its current round.
type Phase string

const (
	// PhaseAwaitingModel offers the tools and waits for the model's reply.
	PhaseAwaitingModel Phase = "AWAITING_MODEL"

	// PhaseDispatching executes the requested tool calls in order.
	PhaseDispatching Phase = "DISPATCHING"

	// PhaseCheckingGoal asks the model whether the goal is satisfied.
	PhaseCheckingGoal Phase = "CHECKING_GOAL"
)

// Status is the lifecycle status of a run.
type Status string

const (
	StatusRunning Status = "RUNNING"
	StatusDone    Status = "DONE"
	StatusFailed  Status = "FAILED"
)

// Terminal reports whether the status ends a run.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// Action records one executed tool call. Args holds the decoded arguments
// as the model supplied them, before defaults were applied.
type Action struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// State is the per-run state of the agent loop. It is created by Run,
// mutated only by the loop, and handed back inside the Result.
type State struct {
	// Goal is the natural-language goal of the run.
	Goal string

	// Round is the number of rounds started so far (1-indexed).
	Round int

	// Phase is the phase the run was in when it stopped.
	Phase Phase

	// Status is RUNNING until the run terminates.
	Status Status

	// Actions are the executed tool calls, in execution order.
	Actions []Action

	transcript *store.Transcript
}

func newState(goal, systemPrompt string) State {
	var head []ai.Message
	if systemPrompt != "" {
		head = append(head, ai.NewSystemMessage(systemPrompt))
	}
	head = append(head, ai.NewUserMessage(goal))

	return State{
		Goal:       goal,
		Phase:      PhaseAwaitingModel,
		Status:     StatusRunning,
		Actions:    []Action{},
		transcript: store.NewTranscript(head...),
	}
}

// Messages returns the conversation transcript.
func (s *State) Messages() []ai.Message {
	if s.transcript == nil {
		return nil
	}
	return s.transcript.Messages()
}

// MessageCount returns the number of messages in the transcript.
func (s *State) MessageCount() int {
	if s.transcript == nil {
		return 0
	}
	return s.transcript.Len()
}

// ToolResults returns the results of every executed tool call, in order.
func (s *State) ToolResults() []ai.ToolResult {
	if s.transcript == nil {
		return nil
	}
	return s.transcript.ToolResults()
}

// Result is the outcome of a run. Run always returns one, including when
// the run failed, so callers can decide whether the partial action
// sequence is acceptable.
type Result struct {
	State

	// Err is the diagnostic for a FAILED run; nil when DONE.
	Err error

	// TotalUsage aggregates token usage across every completion call.
	TotalUsage ai.Usage
}

// Done reports whether the run finished with status DONE.
func (r *Result) Done() bool {
	return r != nil && r.Status == StatusDone
}
