package anthropic

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"

	ai "github.com/spetersoncode/goalagent"
)

// convertMessages splits system messages out of the transcript. The API
// rejects empty text blocks, so empty messages are skipped.
func convertMessages(messages []ai.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var (
		turns  []anthropic.MessageParam
		system []anthropic.TextBlockParam
	)
	for _, msg := range messages {
		if msg.Role == ai.RoleSystem {
			if msg.Content != "" {
				system = append(system, anthropic.TextBlockParam{Text: msg.Content})
			}
			continue
		}
		if blocks := contentBlocks(msg); len(blocks) > 0 {
			turns = append(turns, anthropic.MessageParam{Role: turnRole(msg.Role), Content: blocks})
		}
	}
	return turns, system
}

// turnRole maps a role onto the two turn roles. Tool results travel in
// user turns.
func turnRole(role ai.Role) anthropic.MessageParamRole {
	if role == ai.RoleAssistant {
		return anthropic.MessageParamRoleAssistant
	}
	return anthropic.MessageParamRoleUser
}

func contentBlocks(msg ai.Message) []anthropic.ContentBlockParamUnion {
	var blocks []anthropic.ContentBlockParamUnion
	if msg.Content != "" && msg.Role != ai.RoleTool {
		blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
	}
	for _, call := range msg.ToolCalls {
		blocks = append(blocks, anthropic.NewToolUseBlock(call.ID, toolInput(call.Arguments), call.Name))
	}
	for _, tr := range msg.ToolResults {
		blocks = append(blocks, anthropic.NewToolResultBlock(tr.ToolCallID, tr.Content, tr.IsError))
	}
	return blocks
}

// toolInput decodes the recorded arguments. The payload was already
// validated when the call was dispatched; anything else is sent as {}.
func toolInput(arguments string) any {
	input := map[string]any{}
	if arguments != "" {
		_ = json.Unmarshal([]byte(arguments), &input)
	}
	return input
}
