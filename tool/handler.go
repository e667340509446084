package tool

import (
	"context"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
)

// Handler executes a tool call and returns the result content. The call
// carries the tool name, ID and arguments as a JSON string.
type Handler func(ctx context.Context, call ai.ToolCall) (string, error)

// TypedHandler executes a tool call with arguments already unmarshaled
// into T.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)
