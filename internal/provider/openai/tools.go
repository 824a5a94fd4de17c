package openai

import (
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	ai "github.com/spetersoncode/goalagent"
)

// convertTools renders tool definitions as function tools. A tool whose
// parameter schema is not a JSON object is a caller error.
func convertTools(tools []ai.Tool) ([]openai.ChatCompletionToolParam, error) {
	out := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, t := range tools {
		fn := shared.FunctionDefinitionParam{Name: t.Name}
		if t.Description != "" {
			fn.Description = openai.String(t.Description)
		}
		if len(t.Parameters) > 0 {
			if err := json.Unmarshal(t.Parameters, &fn.Parameters); err != nil {
				return nil, fmt.Errorf("openai: tool %q parameters: %w", t.Name, err)
			}
		}
		out = append(out, openai.ChatCompletionToolParam{Function: fn})
	}
	return out, nil
}

var toolChoices = map[ai.ToolChoice]string{
	ai.ToolChoiceNone:     "none",
	ai.ToolChoiceRequired: "required",
}

func convertToolChoice(choice ai.ToolChoice) openai.ChatCompletionToolChoiceOptionUnionParam {
	mode, ok := toolChoices[choice]
	if !ok {
		mode = "auto"
	}
	return openai.ChatCompletionToolChoiceOptionUnionParam{OfAuto: openai.String(mode)}
}

func extractToolCalls(msg openai.ChatCompletionMessage) []ai.ToolCall {
	var calls []ai.ToolCall
	for _, tc := range msg.ToolCalls {
		calls = append(calls, ai.ToolCall{ID: tc.ID, Name: tc.Function.Name, Arguments: tc.Function.Arguments})
	}
	return calls
}
