package goalagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolChoiceConstants(t *testing.T) {
	assert.Equal(t, ToolChoice("auto"), ToolChoiceAuto)
	assert.Equal(t, ToolChoice("none"), ToolChoiceNone)
	assert.Equal(t, ToolChoice("required"), ToolChoiceRequired)
}

func TestNewToolResultMessage(t *testing.T) {
	t.Run("creates message with single result", func(t *testing.T) {
		result := ToolResult{
			ToolCallID: "c1",
			Name:       "add",
			Value:      int64(3),
			Content:    "3",
		}

		msg := NewToolResultMessage(result)

		assert.Equal(t, RoleTool, msg.Role)
		assert.Len(t, msg.ToolResults, 1)
		assert.Equal(t, "c1", msg.ToolResults[0].ToolCallID)
		assert.Equal(t, "add", msg.ToolResults[0].Name)
		assert.Equal(t, "3", msg.ToolResults[0].Content)
		assert.False(t, msg.ToolResults[0].IsError)
	})

	t.Run("preserves result order", func(t *testing.T) {
		msg := NewToolResultMessage(
			ToolResult{ToolCallID: "call_1", Content: "Result 1"},
			ToolResult{ToolCallID: "call_2", Content: "Result 2"},
			ToolResult{ToolCallID: "call_3", Content: "Error occurred", IsError: true},
		)

		assert.Len(t, msg.ToolResults, 3)
		assert.Equal(t, "call_1", msg.ToolResults[0].ToolCallID)
		assert.Equal(t, "call_3", msg.ToolResults[2].ToolCallID)
		assert.True(t, msg.ToolResults[2].IsError)
	})
}
