package anthropic

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/goalagent"
)

var addTool = ai.Tool{
	Name:        "add",
	Description: "Add two integers.",
	Parameters:  json.RawMessage(`{"type":"object","properties":{"a":{"type":"integer"},"b":{"type":"integer"}},"required":["a","b"]}`),
}

func TestConvertMessages(t *testing.T) {
	messages := []ai.Message{
		ai.NewSystemMessage("be brief"),
		ai.NewSystemMessage(""),
		ai.NewUserMessage("add 2 and 3"),
		{
			Role:      ai.RoleAssistant,
			ToolCalls: []ai.ToolCall{{ID: "c1", Name: "add", Arguments: `{"a":2,"b":3}`}},
		},
		ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "c1", Name: "add", Content: "5"}),
		{Role: ai.RoleAssistant},
	}

	msgs, system := convertMessages(messages)
	require.Len(t, system, 1)
	assert.Equal(t, "be brief", system[0].Text)
	require.Len(t, msgs, 3)

	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, msgs[1].Role)
	use := msgs[1].Content[0].OfToolUse
	require.NotNil(t, use)
	assert.Equal(t, "c1", use.ID)
	assert.Equal(t, map[string]any{"a": float64(2), "b": float64(3)}, use.Input)

	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[2].Role)
	result := msgs[2].Content[0].OfToolResult
	require.NotNil(t, result)
	assert.Equal(t, "c1", result.ToolUseID)
}

func TestBuildParamsToolOffer(t *testing.T) {
	c := New("key", WithModel("claude-haiku-4-5"))
	options := ai.ApplyOptions(
		ai.WithTools([]ai.Tool{addTool}),
		ai.WithToolChoice(ai.ToolChoiceAuto),
		ai.WithTemperature(0),
		ai.WithTopP(1),
	)

	params, jsonMode, err := c.buildParams([]ai.Message{ai.NewUserMessage("hi")}, options)
	require.NoError(t, err)
	assert.False(t, jsonMode)
	assert.Equal(t, anthropic.Model("claude-haiku-4-5"), params.Model)
	assert.Equal(t, int64(defaultMaxTokens), params.MaxTokens)
	assert.True(t, params.Temperature.Valid())
	assert.False(t, params.TopP.Valid())

	require.Len(t, params.Tools, 1)
	assert.Equal(t, "add", params.Tools[0].OfTool.Name)
	assert.Equal(t, []string{"a", "b"}, params.Tools[0].OfTool.InputSchema.Required)
	assert.NotNil(t, params.ToolChoice.OfAuto)
}

func TestBuildParamsJSONMode(t *testing.T) {
	c := New("key")
	options := ai.ApplyOptions(
		ai.WithResponseFormat(ai.ResponseFormatJSON),
		ai.WithTopP(0.9),
		ai.WithModel("claude-opus-4-1"),
		ai.WithMaxTokens(64),
	)

	params, jsonMode, err := c.buildParams([]ai.Message{ai.NewUserMessage("done?")}, options)
	require.NoError(t, err)
	assert.True(t, jsonMode)
	assert.Equal(t, anthropic.Model("claude-opus-4-1"), params.Model)
	assert.Equal(t, int64(64), params.MaxTokens)
	assert.True(t, params.TopP.Valid())
	require.Len(t, params.Tools, 1)
	assert.Equal(t, jsonResponseToolName, params.Tools[0].OfTool.Name)
	require.NotNil(t, params.ToolChoice.OfTool)
	assert.Equal(t, jsonResponseToolName, params.ToolChoice.OfTool.Name)
}

func TestConvertTools(t *testing.T) {
	t.Run("keeps property order", func(t *testing.T) {
		tool := ai.Tool{
			Name:       "add_user",
			Parameters: json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"},"age":{"type":"integer"},"email":{"type":"string"}},"required":["name","age"]}`),
		}

		tools, err := convertTools([]ai.Tool{tool})
		require.NoError(t, err)
		require.Len(t, tools, 1)

		schema := tools[0].OfTool.InputSchema
		assert.Equal(t, []string{"name", "age"}, schema.Required)
		data, err := json.Marshal(schema)
		require.NoError(t, err)
		s := string(data)
		name, age, email := strings.Index(s, `"name"`), strings.Index(s, `"age"`), strings.Index(s, `"email"`)
		assert.True(t, name < age && age < email, s)
	})

	t.Run("malformed parameters are an error", func(t *testing.T) {
		_, err := convertTools([]ai.Tool{{Name: "broken", Parameters: json.RawMessage(`[1,2]`)}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")

		c := New("key")
		_, _, err = c.buildParams(nil, ai.ApplyOptions(ai.WithTools([]ai.Tool{{Name: "broken", Parameters: json.RawMessage(`"x"`)}})))
		assert.Error(t, err)
	})
}

func TestConvertToolChoice(t *testing.T) {
	assert.NotNil(t, convertToolChoice(ai.ToolChoiceNone).OfNone)
	assert.NotNil(t, convertToolChoice(ai.ToolChoiceRequired).OfAny)
	assert.NotNil(t, convertToolChoice(ai.ToolChoiceAuto).OfAuto)
}
