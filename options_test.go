package goalagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	t.Run("defaults are zero values", func(t *testing.T) {
		o := ApplyOptions()

		assert.Empty(t, o.Model)
		assert.Nil(t, o.Temperature)
		assert.Nil(t, o.TopP)
		assert.Empty(t, o.Tools)
		assert.Empty(t, o.ToolChoice)
	})

	t.Run("applies every option", func(t *testing.T) {
		tools := []Tool{{Name: "add"}}
		o := ApplyOptions(
			WithModel("llama3-70b-8192"),
			WithMaxTokens(256),
			WithTemperature(0.2),
			WithTopP(0.9),
			WithTools(tools),
			WithToolChoice(ToolChoiceAuto),
			WithResponseFormat(ResponseFormatJSON),
		)

		assert.Equal(t, "llama3-70b-8192", o.Model)
		assert.Equal(t, 256, o.MaxTokens)
		require.NotNil(t, o.Temperature)
		assert.InDelta(t, 0.2, *o.Temperature, 1e-9)
		require.NotNil(t, o.TopP)
		assert.InDelta(t, 0.9, *o.TopP, 1e-9)
		assert.Equal(t, tools, o.Tools)
		assert.Equal(t, ToolChoiceAuto, o.ToolChoice)
		assert.Equal(t, ResponseFormatJSON, o.ResponseFormat)
	})

	t.Run("zero temperature is distinguishable from unset", func(t *testing.T) {
		o := ApplyOptions(WithTemperature(0))
		require.NotNil(t, o.Temperature)
		assert.Equal(t, 0.0, *o.Temperature)
	})
}
