// Package mcp connects tool registries to the Model Context Protocol.
//
// The integration runs both ways:
//
//   - Server: expose a [tool.Registry] as an MCP server so MCP clients can
//     discover and call its tools ([NewServer], [ServeStdio]).
//   - Client: connect to an MCP server and register its tools into a local
//     registry with [RemoteRegistry.RegisterInto], so an agent can call them
//     like any other tool.
//
// # Exposing Tools
//
//	registry := tool.NewRegistry()
//	if err := userstore.Register(registry, userstore.NewMemoryStore()); err != nil {
//	    log.Fatal(err)
//	}
//	if err := mcp.ServeStdio(registry); err != nil {
//	    log.Fatal(err)
//	}
//
// # Consuming MCP Servers
//
//	remote, err := mcp.NewRemoteRegistry(ctx, "./my-mcp-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
//
//	if err := remote.RegisterInto(registry); err != nil {
//	    log.Fatal(err)
//	}
package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	ai "github.com/spetersoncode/goalagent"
	"github.com/spetersoncode/goalagent/tool"
)

// ToMCPTool converts a Tool to an MCP Tool, using its JSON schema as the
// raw input schema.
func ToMCPTool(t ai.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters)
}

// FromMCPTool converts an MCP Tool to a Tool.
// It extracts the JSON schema from either RawInputSchema or InputSchema.
func FromMCPTool(t mcp.Tool) ai.Tool {
	var schema json.RawMessage
	if len(t.RawInputSchema) > 0 {
		schema = t.RawInputSchema
	} else if data, err := json.Marshal(t.InputSchema); err == nil {
		schema = data
	}

	return ai.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}

// DefinitionFromTool rebuilds a tool.Definition from a JSON schema so a
// remote tool can be validated locally before it is forwarded. Properties
// keep their schema order. Properties listed as required have no default;
// others default to their schema default or to nil.
func DefinitionFromTool(t ai.Tool) (tool.Definition, error) {
	def := tool.Definition{Name: t.Name, Description: t.Description}
	if len(t.Parameters) == 0 {
		return def, nil
	}

	var schema struct {
		Properties *orderedmap.OrderedMap[string, json.RawMessage] `json:"properties"`
		Required   []string                                        `json:"required"`
	}
	if err := json.Unmarshal(t.Parameters, &schema); err != nil {
		return tool.Definition{}, fmt.Errorf("mcp: tool %s: invalid input schema: %w", t.Name, err)
	}
	if schema.Properties == nil {
		return def, nil
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		// DecodeArguments yields int64 integers, which integer defaults need.
		prop, err := tool.DecodeArguments(string(pair.Value))
		if err != nil {
			return tool.Definition{}, fmt.Errorf("mcp: tool %s: property %s: %w", t.Name, pair.Key, err)
		}

		typ, _ := prop["type"].(string)
		desc, _ := prop["description"].(string)
		p := tool.Param{Name: pair.Key, Type: tool.ParamType(typ), Description: desc}
		if !p.Type.Valid() {
			return tool.Definition{}, fmt.Errorf("mcp: tool %s: property %s: unsupported type %q", t.Name, pair.Key, typ)
		}
		if !required[pair.Key] {
			p = p.WithDefault(prop["default"])
		}
		def.Params = append(def.Params, p)
	}
	return def, nil
}

// ToMCPCallToolRequest converts a ToolCall to an MCP CallToolRequest.
func ToMCPCallToolRequest(call ai.ToolCall) mcp.CallToolRequest {
	var args any
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			args = call.Arguments
		}
	}

	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      call.Name,
			Arguments: args,
		},
	}
}

// FromMCPCallToolResult converts an MCP CallToolResult to a ToolResult.
// Text content is concatenated; other content is JSON encoded.
func FromMCPCallToolResult(call ai.ToolCall, result *mcp.CallToolResult) ai.ToolResult {
	if result == nil {
		return ai.ToolResult{ToolCallID: call.ID, Name: call.Name, IsError: true}
	}

	var textParts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			textParts = append(textParts, content.Text)
		case *mcp.TextContent:
			textParts = append(textParts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				textParts = append(textParts, string(data))
			}
		}
	}
	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			textParts = append(textParts, string(data))
		}
	}

	text := strings.Join(textParts, "\n")
	return ai.ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Value:      text,
		Content:    text,
		IsError:    result.IsError,
	}
}

// ToMCPCallToolResult converts a ToolResult to an MCP CallToolResult.
func ToMCPCallToolResult(result ai.ToolResult) *mcp.CallToolResult {
	if result.IsError {
		return mcp.NewToolResultError(result.Content)
	}
	return mcp.NewToolResultText(result.Content)
}
