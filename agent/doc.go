// Package agent runs goal-directed, tool-calling conversations.
//
// A run starts from a natural-language goal. Each round offers the
// registered tools to the model, executes the requested tool calls in order
// through a [tool.Registry], and then asks the model in a separate goal-check
// query whether the goal is satisfied given a snapshot of the tools' state.
// The run ends when the goal check answers "yes" or when the model requests
// no tools.
//
// # Basic Usage
//
//	registry := tool.NewRegistry()
//	users := userstore.NewMemoryStore()
//	userstore.Register(registry, users)
//
//	a := agent.New(chatClient, registry, users)
//	result, err := a.Run(ctx, "Add a user named Alice, aged 30", agent.WithMaxRounds(5))
//	if err != nil {
//	    // result.Status is FAILED; result.Actions holds the calls made so far
//	}
//	for _, action := range result.Actions {
//	    fmt.Println(action.Name, action.Args)
//	}
//
// # Goal Check
//
// The goal-check reply must be exactly one JSON object of the form
// {"answer": "yes"} or {"answer": "no"}. Any other reply fails the run with
// [ErrProtocolViolation].
//
// # Streaming Events
//
// Use RunStream to observe a run as it happens:
//
//	for e := range a.RunStream(ctx, goal) {
//	    switch e.Type {
//	    case agent.EventToolCallStart:
//	        fmt.Printf("[Tool: %s]\n", e.ToolCall.Name)
//	    case agent.EventGoalCheck:
//	        fmt.Println("goal achieved:", e.Answer)
//	    case agent.EventRunEnd, agent.EventRunError:
//	        fmt.Println(e.Result.Status)
//	    }
//	}
package agent
