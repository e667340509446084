package mcp

import (
	"context"
	"fmt"
	"sync"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
	"github.com/Mostlime12195/Libre-Assistant-sub000/tool"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// RemoteRegistry exposes the tools of one MCP server. The tool list is
// cached locally; Refresh re-fetches it. Safe for concurrent use.
type RemoteRegistry struct {
	client *client.Client
	mu     sync.RWMutex
	tools  map[string]ai.Tool
}

// NewRemoteRegistry connects to an MCP server over stdio. The command is
// the server executable path.
func NewRemoteRegistry(ctx context.Context, command string, env []string, args ...string) (*RemoteRegistry, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("create MCP client: %w", err)
	}
	return newRemoteRegistry(ctx, c)
}

// NewRemoteRegistrySSE connects to an MCP server over SSE.
func NewRemoteRegistrySSE(ctx context.Context, baseURL string) (*RemoteRegistry, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("create SSE MCP client: %w", err)
	}
	return newRemoteRegistry(ctx, c)
}

func newRemoteRegistry(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "libre-assistant",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("initialize MCP session: %w", err)
	}

	r := &RemoteRegistry{
		client: c,
		tools:  make(map[string]ai.Tool),
	}
	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return r, nil
}

// Close closes the server connection.
func (r *RemoteRegistry) Close() error {
	return r.client.Close()
}

// Refresh re-fetches the server's tool list.
func (r *RemoteRegistry) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = make(map[string]ai.Tool, len(result.Tools))
	for _, t := range result.Tools {
		r.tools[t.Name] = FromMCPTool(t)
	}
	return nil
}

// Tools returns the cached tool definitions.
func (r *RemoteRegistry) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	return tools
}

// GetTool retrieves a tool definition by name.
func (r *RemoteRegistry) GetTool(name string) (ai.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Has reports whether the server offers the named tool.
func (r *RemoteRegistry) Has(name string) bool {
	_, ok := r.GetTool(name)
	return ok
}

// Len returns the number of cached tools.
func (r *RemoteRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute proxies a call to the server. Transport failures fold into an
// error result so the agent loop keeps going.
func (r *RemoteRegistry) Execute(ctx context.Context, call ai.ToolCall) (string, error) {
	result, err := r.client.CallTool(ctx, ToMCPCallToolRequest(call))
	if err != nil {
		return "", err
	}
	tr := FromMCPCallToolResult(call, result)
	if tr.IsError {
		return "", fmt.Errorf("%s", tr.Content)
	}
	return tr.Content, nil
}

// Attach registers every remote tool into a local registry, dispatching
// through this connection. Name collisions surface as registration errors.
func (r *RemoteRegistry) Attach(registry *tool.Registry) error {
	for _, t := range r.Tools() {
		if err := registry.Register(t, r.Execute); err != nil {
			return err
		}
	}
	return nil
}
