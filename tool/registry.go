// Package tool manages tool definitions and their handlers. The registry
// never lets a handler failure escape as an error: every outcome becomes a
// ToolResult so the conversation can continue with the model seeing what
// went wrong.
package tool

import (
	"context"
	"encoding/json"
	"sync"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
)

type registeredTool struct {
	tool    ai.Tool
	handler Handler
}

// Registry maps tool names to definitions and handlers. Safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registeredTool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]registeredTool)}
}

// Register adds a tool with its handler. Registering a duplicate name
// returns ErrToolAlreadyRegistered.
func (r *Registry) Register(tool ai.Tool, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return &ErrToolAlreadyRegistered{Name: tool.Name}
	}
	r.tools[tool.Name] = registeredTool{tool: tool, handler: handler}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(tool ai.Tool, handler Handler) {
	if err := r.Register(tool, handler); err != nil {
		panic(err)
	}
}

// Unregister removes a tool. No-op when absent.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// Get retrieves a handler by tool name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return rt.handler, true
}

// GetTool retrieves a tool definition by name.
func (r *Registry) GetTool(name string) (ai.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return ai.Tool{}, false
	}
	return rt.tool, true
}

// Tools returns all registered tool definitions, for the request envelope.
func (r *Registry) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(r.tools))
	for _, rt := range r.tools {
		tools = append(tools, rt.tool)
	}
	return tools
}

// Names returns the names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute runs the handler for a call and always produces a ToolResult.
// Unknown tools, malformed argument JSON and handler failures all fold
// into an error result rather than aborting the caller.
func (r *Registry) Execute(ctx context.Context, call ai.ToolCall) ai.ToolResult {
	r.mu.RLock()
	rt, ok := r.tools[call.Name]
	r.mu.RUnlock()

	result := ai.ToolResult{ToolCallID: call.ID, Name: call.Name}

	if !ok {
		result.IsError = true
		result.Content = (&ErrToolNotFound{Name: call.Name}).Error()
		return result
	}
	if call.Arguments != "" && !json.Valid([]byte(call.Arguments)) {
		result.IsError = true
		result.Content = ai.NewToolArgumentError(call.Name, nil).Error()
		return result
	}

	content, err := rt.handler(ctx, call)
	if err != nil {
		result.IsError = true
		result.Content = err.Error()
		return result
	}
	result.Content = content
	return result
}

// Registration pairs a tool definition with its handler for fluent setup.
type Registration struct {
	Tool    ai.Tool
	Handler Handler
}

// Func creates a Registration with the parameter schema generated from T.
// Panics if schema generation fails.
//
// Example:
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("weather", "Look up current weather",
//	        func(ctx context.Context, args WeatherArgs) (string, error) {
//	            return lookupWeather(args.City)
//	        }),
//	)
func Func[T any](name, description string, fn TypedHandler[T]) Registration {
	schema := ai.MustSchemaFor[T]()
	handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args T
		raw := call.Arguments
		if raw == "" {
			raw = "{}"
		}
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return "", ai.NewToolArgumentError(name, err)
		}
		return fn(ctx, args)
	}
	return Registration{
		Tool: ai.Tool{
			Name:        name,
			Description: description,
			Parameters:  schema,
		},
		Handler: handler,
	}
}

// WithHandler creates a Registration from an explicit schema and handler.
func WithHandler(name, description string, schema json.RawMessage, h Handler) Registration {
	return Registration{
		Tool: ai.Tool{
			Name:        name,
			Description: description,
			Parameters:  schema,
		},
		Handler: h,
	}
}

// WithTool creates a Registration from a pre-built tool definition.
func WithTool(t ai.Tool, h Handler) Registration {
	return Registration{Tool: t, Handler: h}
}

// Add registers one or more tools, panicking on duplicates. Returns the
// registry for chaining.
func (r *Registry) Add(regs ...Registration) *Registry {
	for _, reg := range regs {
		r.MustRegister(reg.Tool, reg.Handler)
	}
	return r
}

// RegisterFunc registers a typed handler with a schema generated from T.
func RegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) error {
	schema, err := ai.SchemaFor[T]()
	if err != nil {
		return err
	}
	reg := Func(name, description, fn)
	reg.Tool.Parameters = schema
	return r.Register(reg.Tool, reg.Handler)
}

// MustRegisterFunc is like RegisterFunc but panics on error.
func MustRegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) {
	if err := RegisterFunc(r, name, description, fn); err != nil {
		panic(err)
	}
}
