package goalagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, Message{Role: RoleSystem, Content: "sys"}, NewSystemMessage("sys"))
	assert.Equal(t, Message{Role: RoleUser, Content: "hi"}, NewUserMessage("hi"))
}

func TestNewAssistantMessage(t *testing.T) {
	t.Run("copies content and tool calls", func(t *testing.T) {
		resp := &Response{
			Content:   "calling add",
			ToolCalls: []ToolCall{{ID: "c1", Name: "add", Arguments: `{"a":1}`}},
		}

		msg := NewAssistantMessage(resp)

		assert.Equal(t, RoleAssistant, msg.Role)
		assert.Equal(t, "calling add", msg.Content)
		assert.Equal(t, resp.ToolCalls, msg.ToolCalls)
	})

	t.Run("handles nil response", func(t *testing.T) {
		msg := NewAssistantMessage(nil)
		assert.Equal(t, RoleAssistant, msg.Role)
		assert.Empty(t, msg.ToolCalls)
	})
}

func TestResponseHasToolCalls(t *testing.T) {
	var nilResp *Response
	assert.False(t, nilResp.HasToolCalls())
	assert.False(t, (&Response{Content: "done"}).HasToolCalls())
	assert.True(t, (&Response{ToolCalls: []ToolCall{{ID: "x"}}}).HasToolCalls())
}

func TestUsageAdd(t *testing.T) {
	total := Usage{InputTokens: 10, OutputTokens: 5}.Add(Usage{InputTokens: 3, OutputTokens: 2})
	assert.Equal(t, Usage{InputTokens: 13, OutputTokens: 7}, total)
}
