// Package chat defines the client interface shared by the agent and tool
// packages. Keeping it separate avoids import cycles between the concrete
// client and its consumers.
//
// The [github.com/Mostlime12195/Libre-Assistant-sub000/client.Client] type
// implements this interface.
package chat

import (
	"context"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
	"github.com/Mostlime12195/Libre-Assistant-sub000/event"
)

// Client is the high-level chat surface.
type Client interface {
	// Chat sends a conversation and returns the complete response.
	Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)

	// ChatStream sends a conversation and returns a channel of lifecycle
	// events. The channel closes when the stream ends.
	ChatStream(ctx context.Context, messages []ai.Message, opts ...ai.Option) (<-chan event.Event, error)
}
