package openai

import (
	"github.com/openai/openai-go"

	ai "github.com/spetersoncode/goalagent"
)

// convertMessages maps the transcript onto chat completion messages. Empty
// text messages are dropped; each tool result becomes its own tool message.
func convertMessages(messages []ai.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch {
		case msg.Role == ai.RoleTool:
			for _, tr := range msg.ToolResults {
				out = append(out, openai.ToolMessage(tr.Content, tr.ToolCallID))
			}
		case msg.Role == ai.RoleAssistant && len(msg.ToolCalls) > 0:
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: assistantWithCalls(msg)})
		case msg.Content == "":
		case msg.Role == ai.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		case msg.Role == ai.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

func assistantWithCalls(msg ai.Message) *openai.ChatCompletionAssistantMessageParam {
	param := &openai.ChatCompletionAssistantMessageParam{
		ToolCalls: make([]openai.ChatCompletionMessageToolCallParam, 0, len(msg.ToolCalls)),
	}
	for _, call := range msg.ToolCalls {
		param.ToolCalls = append(param.ToolCalls, openai.ChatCompletionMessageToolCallParam{
			ID:       call.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{Name: call.Name, Arguments: call.Arguments},
		})
	}
	if msg.Content != "" {
		param.Content.OfString = openai.String(msg.Content)
	}
	return param
}
