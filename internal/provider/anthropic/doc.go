// Package anthropic implements goalagent.ChatProvider on the Anthropic
// Messages API.
//
// System messages are lifted into the request's system prompt and tool
// results are sent as user messages carrying tool_result blocks. JSON mode
// is emulated with a forced synthetic tool whose input becomes the response
// content.
//
//	client := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"), anthropic.WithModel("claude-haiku-4-5"))
//	resp, err := client.Chat(ctx, messages, goalagent.WithResponseFormat(goalagent.ResponseFormatJSON))
package anthropic
