// Package goalagent drives goal-directed tool-calling conversations with a
// hosted language model.
//
// Given a natural-language goal, an agent offers the model a set of tools,
// executes the tool calls the model requests, and after every round asks the
// model, in a separate goal-check query, whether the goal has been met. The
// run ends when the model answers "yes" or stops requesting tools.
//
// This package holds the types shared by every layer: [Message], [Tool],
// [ToolCall], [ToolResult], [Response], request [Options] and the
// [ChatProvider] capability implemented by completion backends.
//
// The main entry points live in sub-packages:
//
//   - [github.com/spetersoncode/goalagent/tool]: declarative tool
//     definitions, schema rendering and validated dispatch
//   - [github.com/spetersoncode/goalagent/agent]: the round loop and
//     goal-check protocol
//   - [github.com/spetersoncode/goalagent/client]: completion backends
//     (OpenAI, Groq, Anthropic, Google, Vertex AI) with retry
//   - [github.com/spetersoncode/goalagent/userstore]: an in-memory user
//     record store exposed as tools
//
// # Basic Usage
//
//	registry := tool.NewRegistry()
//	store := userstore.NewMemoryStore()
//	if err := userstore.Register(registry, store); err != nil {
//	    log.Fatal(err)
//	}
//
//	c, err := client.New(ctx, client.Config{Provider: goalagent.ProviderGroq, APIKey: key})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	a := agent.New(c, registry, store)
//	result, err := a.Run(ctx, "Create a user named Alice aged 25")
//	fmt.Println(result.Status, len(result.Actions))
package goalagent
