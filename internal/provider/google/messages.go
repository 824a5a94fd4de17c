package google

import (
	"encoding/json"

	"google.golang.org/genai"

	ai "github.com/spetersoncode/goalagent"
)

// convertMessages maps the transcript onto Gemini contents. System messages
// are joined into the system instruction; tool results are user turns with
// FunctionResponse parts, one content per run of tool messages.
func convertMessages(messages []ai.Message) ([]*genai.Content, *genai.Content) {
	var (
		contents []*genai.Content
		system   *genai.Content
		prevTool bool
	)

	for _, msg := range messages {
		if msg.Role == ai.RoleSystem {
			if msg.Content == "" {
				continue
			}
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, &genai.Part{Text: msg.Content})
			continue
		}

		role := genai.RoleUser
		if msg.Role == ai.RoleAssistant {
			role = genai.RoleModel
		}

		var parts []*genai.Part
		if msg.Content != "" {
			parts = append(parts, &genai.Part{Text: msg.Content})
		}

		for _, tc := range msg.ToolCalls {
			var args map[string]any
			_ = json.Unmarshal([]byte(tc.Arguments), &args)
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{ID: tc.ID, Name: tc.Name, Args: args},
			})
		}

		for _, tr := range msg.ToolResults {
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       tr.ToolCallID,
					Name:     tr.Name,
					Response: functionResponse(tr),
				},
			})
		}

		if len(parts) == 0 {
			continue
		}
		// Responses to one model turn must arrive in a single content, so
		// consecutive tool messages are merged.
		if msg.Role == ai.RoleTool && prevTool {
			last := contents[len(contents)-1]
			last.Parts = append(last.Parts, parts...)
			continue
		}
		contents = append(contents, &genai.Content{Role: string(role), Parts: parts})
		prevTool = msg.Role == ai.RoleTool
	}

	return contents, system
}

// functionResponse uses the "output" and "error" keys Gemini expects.
func functionResponse(tr ai.ToolResult) map[string]any {
	key := "output"
	if tr.IsError {
		key = "error"
	}
	var value any
	if err := json.Unmarshal([]byte(tr.Content), &value); err != nil {
		value = tr.Content
	}
	return map[string]any{key: value}
}
