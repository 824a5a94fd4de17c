package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/goalagent"
	"github.com/spetersoncode/goalagent/tool"
)

func testRegistry() *tool.Registry {
	return tool.NewRegistry().Add(
		tool.New(tool.Definition{
			Name: "add",
			Doc:  "Add two integers.",
			Params: []tool.Param{
				tool.Integer("a", "First addend"),
				tool.Integer("b", "Second addend").WithDefault(int64(0)),
			},
		}, func(ctx context.Context, args tool.Args) (any, error) {
			return args.Int("a") + args.Int("b"), nil
		}),
		tool.New(tool.Definition{
			Name:   "greet",
			Doc:    "Greet someone.",
			Params: []tool.Param{tool.String("name", "Who to greet")},
		}, func(ctx context.Context, args tool.Args) (any, error) {
			return "Hello, " + args.String("name") + "!", nil
		}),
		tool.New(tool.Definition{Name: "fail", Doc: "Always fails."},
			func(ctx context.Context, args tool.Args) (any, error) {
				return nil, errors.New("boom")
			}),
	)
}

func startClient(t *testing.T, s *server.MCPServer) *client.Client {
	t.Helper()
	c, err := client.NewInProcessClient(s)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))
	t.Cleanup(func() { c.Close() })

	_, err = c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      mcp.Implementation{Name: "test-client", Version: "1.0.0"},
		},
	})
	require.NoError(t, err)
	return c
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestToMCPTool(t *testing.T) {
	schema := json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"}}}`)
	mcpTool := ToMCPTool(ai.Tool{Name: "greet", Description: "Greet someone", Parameters: schema})

	assert.Equal(t, "greet", mcpTool.Name)
	assert.Equal(t, "Greet someone", mcpTool.Description)
	assert.Equal(t, schema, mcpTool.RawInputSchema)

	back := FromMCPTool(mcpTool)
	assert.Equal(t, schema, back.Parameters)
}

func TestDefinitionFromTool(t *testing.T) {
	r := testRegistry()
	add, _ := r.Get("add")

	def, err := DefinitionFromTool(add.Tool())
	require.NoError(t, err)
	assert.Equal(t, "add", def.Name)
	assert.Equal(t, "Add two integers.", def.Description)
	require.Len(t, def.Params, 2)
	assert.Equal(t, "a", def.Params[0].Name)
	assert.Equal(t, tool.TypeInteger, def.Params[0].Type)
	assert.Equal(t, []string{"a"}, def.Required())
	dflt, ok := def.Params[1].Default()
	assert.True(t, ok)
	assert.Equal(t, int64(0), dflt)

	t.Run("unsupported type", func(t *testing.T) {
		_, err := DefinitionFromTool(ai.Tool{
			Name:       "ratio",
			Parameters: json.RawMessage(`{"type":"object","properties":{"x":{"type":"number"}}}`),
		})
		assert.ErrorContains(t, err, "unsupported type")
	})

	t.Run("no schema", func(t *testing.T) {
		def, err := DefinitionFromTool(ai.Tool{Name: "ping"})
		require.NoError(t, err)
		assert.Empty(t, def.Params)
	})
}

func TestFromMCPCallToolResult(t *testing.T) {
	call := ai.ToolCall{ID: "c1", Name: "greet"}

	ok := FromMCPCallToolResult(call, mcp.NewToolResultText("hi"))
	assert.Equal(t, ai.ToolResult{ToolCallID: "c1", Name: "greet", Value: "hi", Content: "hi"}, ok)

	failed := FromMCPCallToolResult(call, mcp.NewToolResultError("bad"))
	assert.True(t, failed.IsError)
	assert.Equal(t, "bad", failed.Content)

	assert.True(t, FromMCPCallToolResult(call, nil).IsError)
}

func TestServer(t *testing.T) {
	c := startClient(t, NewServer(testRegistry(), WithName("test-server"), WithVersion("1.0.0")))
	ctx := context.Background()

	t.Run("lists tools in registration order", func(t *testing.T) {
		result, err := c.ListTools(ctx, mcp.ListToolsRequest{})
		require.NoError(t, err)

		names := make([]string, len(result.Tools))
		for i, tl := range result.Tools {
			names[i] = tl.Name
		}
		assert.ElementsMatch(t, []string{"add", "greet", "fail"}, names)
	})

	t.Run("calls tools", func(t *testing.T) {
		result, err := c.CallTool(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "add", Arguments: map[string]any{"a": 2, "b": 3}},
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "5", textOf(t, result))
	})

	t.Run("validation failures are error results", func(t *testing.T) {
		result, err := c.CallTool(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "add", Arguments: map[string]any{"b": 3}},
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, textOf(t, result), "missing required parameter")
	})

	t.Run("tool errors are error results", func(t *testing.T) {
		result, err := c.CallTool(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "fail", Arguments: map[string]any{}},
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, textOf(t, result), "boom")
	})
}

func TestRemoteRegistry(t *testing.T) {
	ctx := context.Background()
	c, err := client.NewInProcessClient(NewServer(testRegistry()))
	require.NoError(t, err)

	remote, err := NewRemoteRegistryFromClient(ctx, c)
	require.NoError(t, err)
	defer remote.Close()

	assert.Equal(t, 3, remote.Len())
	greet, ok := remote.GetTool("greet")
	require.True(t, ok)
	assert.Equal(t, "Greet someone.", greet.Description)

	result, err := remote.Execute(ctx, ai.ToolCall{ID: "call_1", Name: "add", Arguments: `{"a": 10, "b": 5}`})
	require.NoError(t, err)
	assert.Equal(t, "call_1", result.ToolCallID)
	assert.Equal(t, "15", result.Content)
	assert.False(t, result.IsError)

	require.NoError(t, remote.Refresh(ctx))
	assert.Equal(t, 3, remote.Len())

	t.Run("register into local registry", func(t *testing.T) {
		local := tool.NewRegistry()
		require.NoError(t, remote.RegisterInto(local))
		assert.Equal(t, []string{"add", "fail", "greet"}, local.Names())

		v, err := local.Dispatch(ctx, "add", map[string]any{"a": int64(4)})
		require.NoError(t, err)
		assert.Equal(t, "4", v)

		_, err = local.Dispatch(ctx, "greet", map[string]any{})
		var argErr *tool.ErrArgumentValidation
		assert.ErrorAs(t, err, &argErr)

		_, err = local.Dispatch(ctx, "fail", map[string]any{})
		var execErr *tool.ErrToolExecution
		assert.ErrorAs(t, err, &execErr)
	})
}
