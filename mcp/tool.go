// Package mcp connects Model Context Protocol servers to the tool registry.
// A RemoteRegistry proxies tool calls to an MCP server over stdio or SSE and
// can attach its tools to a local registry so the agent dispatches them like
// any other tool.
package mcp

import (
	"encoding/json"
	"strings"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToMCPTool converts a tool definition to its MCP form, carrying the
// parameter schema through unchanged.
func ToMCPTool(t ai.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters)
}

// FromMCPTool converts an MCP tool definition, preferring the raw schema
// when the server provides one.
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

// FromMCPTools converts a slice of MCP tool definitions.
func FromMCPTools(tools []mcp.Tool) []ai.Tool {
	result := make([]ai.Tool, len(tools))
	for i, t := range tools {
		result[i] = FromMCPTool(t)
	}
	return result
}

// ToMCPCallToolRequest converts an assembled tool call to an MCP request.
// Arguments that are not valid JSON pass through as a raw string.
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

// FromMCPCallToolResult flattens an MCP result into a tool result,
// concatenating text content and marshaling anything else as JSON.
func FromMCPCallToolResult(call ai.ToolCall, result *mcp.CallToolResult) ai.ToolResult {
	if result == nil {
		return ai.ToolResult{
			ToolCallID: call.ID,
			Name:       call.Name,
			IsError:    true,
		}
	}

	var parts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			parts = append(parts, content.Text)
		case *mcp.TextContent:
			parts = append(parts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				parts = append(parts, string(data))
			}
		}
	}
	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			parts = append(parts, string(data))
		}
	}

	return ai.ToolResult{
		ToolCallID: call.ID,
		Name:       call.Name,
		Content:    strings.Join(parts, "\n"),
		IsError:    result.IsError,
	}
}

// ToMCPCallToolResult converts a tool result to its MCP form.
func ToMCPCallToolResult(result ai.ToolResult) *mcp.CallToolResult {
	if result.IsError {
		return mcp.NewToolResultError(result.Content)
	}
	return mcp.NewToolResultText(result.Content)
}
