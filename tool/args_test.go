package tool

import (
	"testing"

	ai "github.com/spetersoncode/goalagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArguments(t *testing.T) {
	t.Run("decodes integers as int64 and other numbers as float64", func(t *testing.T) {
		raw, err := DecodeArguments(`{"a": 1, "b": 2.5, "nested": {"n": 7}, "list": [1, 2]}`)

		require.NoError(t, err)
		assert.Equal(t, int64(1), raw["a"])
		assert.Equal(t, 2.5, raw["b"])
		assert.Equal(t, map[string]any{"n": int64(7)}, raw["nested"])
		assert.Equal(t, []any{int64(1), int64(2)}, raw["list"])
	})

	t.Run("empty payload is an empty object", func(t *testing.T) {
		raw, err := DecodeArguments("  ")
		require.NoError(t, err)
		assert.Empty(t, raw)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		tests := []struct {
			name string
			raw  string
		}{
			{"not json", `a=1`},
			{"array", `[1,2]`},
			{"string", `"hello"`},
			{"trailing data", `{"a":1} {"b":2}`},
			{"truncated", `{"a":`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := DecodeArguments(tt.raw)
				var invalid *ErrArgumentValidation
				assert.ErrorAs(t, err, &invalid)
			})
		}
	})
}

func TestDecodeCall(t *testing.T) {
	_, err := DecodeCall(ai.ToolCall{ID: "c1", Name: "add", Arguments: `nope`})

	var invalid *ErrArgumentValidation
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "add", invalid.Tool)
	assert.Contains(t, err.Error(), "tool: add: invalid arguments")
}

func TestArgsAccessors(t *testing.T) {
	args := NewArgs(map[string]any{
		"s": "text",
		"i": int64(4),
		"b": true,
		"o": map[string]any{"k": "v"},
		"a": []any{"x"},
	})

	assert.Equal(t, "text", args.String("s"))
	assert.Equal(t, int64(4), args.Int("i"))
	assert.True(t, args.Bool("b"))
	assert.Equal(t, map[string]any{"k": "v"}, args.Object("o"))
	assert.Equal(t, []any{"x"}, args.Array("a"))
	assert.Equal(t, "", args.String("missing"))
	assert.Equal(t, int64(0), args.Int("s"))

	m := args.Map()
	m["s"] = "changed"
	assert.Equal(t, "text", args.String("s"))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string passes through", "user_1234", "user_1234"},
		{"integer", int64(3), "3"},
		{"boolean", true, "true"},
		{"nil", nil, "null"},
		{"object", map[string]any{"id": "u<1>"}, `{"id":"u<1>"}`},
		{"list", []string{"a", "b"}, `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.in))
		})
	}
}

func TestErrArgumentValidation_Error(t *testing.T) {
	assert.Equal(t, `tool: add: invalid argument "b": missing required parameter`,
		(&ErrArgumentValidation{Tool: "add", Param: "b", Reason: "missing required parameter"}).Error())
	assert.Equal(t, "tool: invalid arguments: bad",
		(&ErrArgumentValidation{Reason: "bad"}).Error())
}
