package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	ai "github.com/spetersoncode/goalagent"
	"github.com/spetersoncode/goalagent/tool"
)

// Snapshotter exposes the state the tools act on. The snapshot is only
// embedded in the goal-check prompt and must be JSON serializable.
type Snapshotter interface {
	Snapshot(ctx context.Context) (any, error)
}

// SnapshotFunc adapts a function to the Snapshotter interface.
type SnapshotFunc func(ctx context.Context) (any, error)

// Snapshot calls f.
func (f SnapshotFunc) Snapshot(ctx context.Context) (any, error) {
	return f(ctx)
}

// Agent drives goal-directed tool-calling conversations.
type Agent struct {
	provider    ai.ChatProvider
	registry    *tool.Registry
	snapshotter Snapshotter
}

// New creates an Agent. A nil registry offers no tools and a nil
// snapshotter reports a null state to the goal check.
func New(provider ai.ChatProvider, registry *tool.Registry, snapshotter Snapshotter) *Agent {
	if registry == nil {
		registry = tool.NewRegistry()
	}
	return &Agent{
		provider:    provider,
		registry:    registry,
		snapshotter: snapshotter,
	}
}

// Run executes the round loop until the goal check answers "yes", the
// model stops requesting tools, or the run fails. The Result is never nil;
// for a FAILED run the returned error equals Result.Err.
func (a *Agent) Run(ctx context.Context, goal string, opts ...Option) (*Result, error) {
	result := a.run(ctx, goal, ApplyOptions(opts...), nil)
	return result, result.Err
}

// RunStream executes the round loop in a goroutine and returns a channel of
// events. The last event is EventRunEnd or EventRunError and carries the
// Result. Callers must drain the channel; it is closed after the last event.
func (a *Agent) RunStream(ctx context.Context, goal string, opts ...Option) <-chan Event {
	ch := make(chan Event, 100)
	options := ApplyOptions(opts...)

	go func() {
		defer close(ch)
		a.run(ctx, goal, options, func(e Event) {
			e.Timestamp = time.Now()
			ch <- e
		})
	}()

	return ch
}

// runner holds what one run needs besides its State.
type runner struct {
	*Agent
	opts   *Options
	log    *slog.Logger
	emit   func(Event)
	result *Result
}

func (a *Agent) run(ctx context.Context, goal string, options *Options, emit func(Event)) *Result {
	if emit == nil {
		emit = func(Event) {}
	}
	r := &runner{
		Agent:  a,
		opts:   options,
		log:    options.Logger.With("component", "agent"),
		emit:   emit,
		result: &Result{State: newState(goal, options.SystemPrompt)},
	}

	r.emit(Event{Type: EventRunStart})

	if goal == "" {
		return r.fail(fmt.Errorf("agent: goal: %w", ai.ErrEmptyInput))
	}
	if a.provider == nil {
		return r.fail(errors.New("agent: no chat provider"))
	}

	for {
		if err := ctx.Err(); err != nil {
			return r.fail(err)
		}

		round := r.result.Round + 1
		if r.opts.MaxRounds > 0 && round > r.opts.MaxRounds {
			return r.fail(ErrTooManyRounds)
		}
		r.result.Round = round
		r.result.Phase = PhaseAwaitingModel
		r.log.Info("round started", "round", round)
		r.emit(Event{Type: EventRoundStart, Round: round})

		resp, err := r.offerTools(ctx)
		if err != nil {
			return r.fail(err)
		}

		if !resp.HasToolCalls() {
			r.result.transcript.Append(ai.NewAssistantMessage(resp))
			return r.finish(resp)
		}

		r.result.Phase = PhaseDispatching
		if err := r.dispatch(ctx, resp); err != nil {
			return r.fail(err)
		}

		r.result.Phase = PhaseCheckingGoal
		achieved, gcResp, err := r.checkGoal(ctx)
		if err != nil {
			return r.fail(err)
		}
		if achieved {
			return r.finish(gcResp)
		}
	}
}

// offerTools sends the transcript with the registered tools.
func (r *runner) offerTools(ctx context.Context) (*ai.Response, error) {
	messages := r.result.transcript.Messages()
	if r.opts.StatelessRounds {
		messages = r.result.transcript.Head()
	}

	return r.complete(ctx, messages,
		ai.WithTools(r.registry.Tools()),
		ai.WithToolChoice(ai.ToolChoiceAuto),
		ai.WithTemperature(r.opts.ToolTemperature),
		ai.WithTopP(r.opts.TopP),
	)
}

// dispatch executes the requested tool calls sequentially in model order.
// The first failure aborts the round.
func (r *runner) dispatch(ctx context.Context, resp *ai.Response) error {
	round := r.result.Round
	r.result.transcript.Append(ai.NewAssistantMessage(resp))

	for _, call := range resp.ToolCalls {
		r.emit(Event{Type: EventToolCallStart, Round: round, ToolCall: &call})
		r.log.Debug("dispatching tool call", "round", round, "tool", call.Name, "call_id", call.ID)

		raw, err := tool.DecodeCall(call)
		if err != nil {
			return &ErrDispatch{Round: round, CallID: call.ID, Tool: call.Name, Err: err}
		}

		value, err := r.registry.Dispatch(ctx, call.Name, raw)
		if err != nil {
			return &ErrDispatch{Round: round, CallID: call.ID, Tool: call.Name, Err: err}
		}

		toolResult := ai.ToolResult{
			ToolCallID: call.ID,
			Name:       call.Name,
			Value:      value,
			Content:    tool.Render(value),
		}
		action := Action{Name: call.Name, Args: raw}

		r.result.transcript.Append(ai.NewToolResultMessage(toolResult))
		r.result.Actions = append(r.result.Actions, action)
		r.emit(Event{Type: EventToolCallResult, Round: round, ToolCall: &call, ToolResult: &toolResult, Action: &action})
	}
	return nil
}

// checkGoal runs the goal-check query and reports whether the model
// considers the goal achieved.
func (r *runner) checkGoal(ctx context.Context) (bool, *ai.Response, error) {
	round := r.result.Round

	var snapshot any
	if r.snapshotter != nil {
		var err error
		snapshot, err = r.snapshotter.Snapshot(ctx)
		if err != nil {
			return false, nil, fmt.Errorf("agent: round %d: snapshot: %w", round, err)
		}
	}

	prompt, err := goalCheckPrompt(r.result.Goal, snapshot)
	if err != nil {
		return false, nil, err
	}
	question := ai.NewUserMessage(prompt)

	messages := []ai.Message{question}
	if !r.opts.StatelessRounds {
		messages = append(r.result.transcript.Messages(), question)
	}

	resp, err := r.complete(ctx, messages,
		ai.WithTools(nil),
		ai.WithToolChoice(""),
		ai.WithTemperature(r.opts.GoalCheckTemperature),
		ai.WithResponseFormat(ai.ResponseFormatJSON),
	)
	if err != nil {
		return false, nil, err
	}
	r.result.transcript.Append(question, ai.NewAssistantMessage(resp))

	answer, err := parseAnswer(resp.Content)
	if err != nil {
		return false, resp, &ErrProtocolViolation{Round: round, Content: resp.Content, Reason: err.Error()}
	}

	r.log.Info("goal checked", "round", round, "answer", answer)
	r.emit(Event{Type: EventGoalCheck, Round: round, Answer: answer, Response: resp})

	if answer == answerNo && !r.opts.StatelessRounds {
		r.result.transcript.Append(ai.NewUserMessage(continuePrompt))
	}
	return answer == answerYes, resp, nil
}

// complete performs one completion call bounded by CompletionTimeout.
func (r *runner) complete(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	if r.opts.CompletionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.CompletionTimeout)
		defer cancel()
	}

	chatOpts := make([]ai.Option, 0, len(r.opts.ChatOptions)+len(opts))
	chatOpts = append(chatOpts, r.opts.ChatOptions...)
	chatOpts = append(chatOpts, opts...)

	resp, err := r.provider.Chat(ctx, messages, chatOpts...)
	if err == nil && resp == nil {
		err = errors.New("empty response")
	}
	if err != nil {
		return nil, &ErrCompletion{Phase: r.result.Phase, Round: r.result.Round, Err: err}
	}

	r.result.TotalUsage = r.result.TotalUsage.Add(resp.Usage)
	return resp, nil
}

func (r *runner) finish(resp *ai.Response) *Result {
	r.result.Status = StatusDone
	r.log.Info("run finished", "rounds", r.result.Round, "actions", len(r.result.Actions))
	r.emit(Event{Type: EventRunEnd, Round: r.result.Round, Response: resp, Result: r.result})
	return r.result
}

func (r *runner) fail(err error) *Result {
	r.result.Status = StatusFailed
	r.result.Err = err
	r.log.Warn("run failed", "round", r.result.Round, "phase", r.result.Phase, "error", err)
	r.emit(Event{Type: EventRunError, Round: r.result.Round, Error: err, Result: r.result})
	return r.result
}
