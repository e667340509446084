// Package client is the high-level chat surface over the proxy transport.
// It aggregates streams into complete responses, translates raw stream
// events into lifecycle events and applies the retry policy when one is
// configured. Streams are never replayed after the first frame arrives.
package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
	"github.com/Mostlime12195/Libre-Assistant-sub000/event"
	"github.com/Mostlime12195/Libre-Assistant-sub000/internal/provider/proxy"
	"github.com/Mostlime12195/Libre-Assistant-sub000/internal/retry"
	"github.com/Mostlime12195/Libre-Assistant-sub000/model"
)

// Config holds client configuration.
type Config struct {
	// BaseURL is the root of the OpenAI-compatible endpoint, without the
	// /chat/completions suffix.
	BaseURL string

	// APIKey is sent as a bearer token when non-empty.
	APIKey string

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client

	// Models resolves capabilities. Nil uses the built-in registry.
	Models *model.Registry

	// RetryConfig governs connection establishment. Nil disables retries;
	// a stream that dies mid-flight is never replayed regardless.
	RetryConfig *retry.Config

	// Events is an optional telemetry channel. Delivery never blocks.
	Events chan<- Event

	// IdleTimeout bounds the gap between stream frames. Zero uses the
	// transport default.
	IdleTimeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultChatOptions sets options applied to every request.
// Per-request options override them.
func WithDefaultChatOptions(opts ...ai.Option) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, opts...)
	}
}

// Client talks to one proxy endpoint. It implements the chat.Client
// interface consumed by the agent.
type Client struct {
	provider        *proxy.Client
	retryConfig     retry.Config
	events          chan<- Event
	defaultChatOpts []ai.Option
}

// New creates a client for the configured endpoint.
func New(cfg Config, opts ...ClientOption) *Client {
	retryConfig := retry.Disabled()
	if cfg.RetryConfig != nil {
		retryConfig = *cfg.RetryConfig
	}

	var providerOpts []proxy.ClientOption
	if cfg.HTTPClient != nil {
		providerOpts = append(providerOpts, proxy.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.IdleTimeout > 0 {
		providerOpts = append(providerOpts, proxy.WithIdleTimeout(cfg.IdleTimeout))
	}

	c := &Client{
		provider:    proxy.New(cfg.BaseURL, cfg.APIKey, cfg.Models, providerOpts...),
		retryConfig: retryConfig,
		events:      cfg.Events,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chat sends a conversation and blocks until the stream completes,
// returning the aggregated response.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	opts = append(c.defaultChatOpts, opts...)
	options := ai.ApplyOptions(opts...)

	start := time.Now()
	emit(c.events, Event{Type: EventRequestStart, Operation: "chat", Model: options.Model})

	src, err := retry.DoStream(ctx, c.retryConfig, func() (<-chan ai.StreamEvent, error) {
		return c.provider.ChatStream(ctx, messages, opts...)
	})
	if err != nil {
		emit(c.events, Event{Type: EventRequestError, Operation: "chat", Model: options.Model, Duration: time.Since(start), Error: err})
		return nil, err
	}

	resp, err := aggregate(ctx, src)
	if err != nil {
		emit(c.events, Event{Type: EventRequestError, Operation: "chat", Model: options.Model, Duration: time.Since(start), Error: err})
		return nil, err
	}

	emit(c.events, Event{Type: EventRequestComplete, Operation: "chat", Model: options.Model, Duration: time.Since(start), Usage: &resp.Usage})
	return resp, nil
}

// ChatStream sends a conversation and returns lifecycle events. The
// channel closes when the response completes or fails; a failure arrives
// as a RunError event, cancellation as RunCancelled.
func (c *Client) ChatStream(ctx context.Context, messages []ai.Message, opts ...ai.Option) (<-chan event.Event, error) {
	opts = append(c.defaultChatOpts, opts...)
	options := ai.ApplyOptions(opts...)

	start := time.Now()
	emit(c.events, Event{Type: EventRequestStart, Operation: "chat_stream", Model: options.Model})

	src, err := retry.DoStream(ctx, c.retryConfig, func() (<-chan ai.StreamEvent, error) {
		return c.provider.ChatStream(ctx, messages, opts...)
	})
	if err != nil {
		emit(c.events, Event{Type: EventRequestError, Operation: "chat_stream", Model: options.Model, Duration: time.Since(start), Error: err})
		return nil, err
	}

	out := event.NewChannel()
	go c.translate(ctx, src, out, options.Model, start)
	return out, nil
}

// translate maps raw stream events onto lifecycle events and closes out
// when the stream ends. Every cancellation exit emits a terminal
// RunCancelled; the channel buffer keeps a slot free for it even when the
// consumer is between receives.
func (c *Client) translate(ctx context.Context, src <-chan ai.StreamEvent, out chan<- event.Event, modelID string, start time.Time) {
	defer close(out)

	messageID := ai.GenerateMessageID()
	started := false
	agg := newAggregator()

	ensureStart := func() bool {
		if started {
			return true
		}
		started = true
		return event.Send(ctx, out, event.Event{Type: event.MessageStart, MessageID: messageID})
	}

	cancelled := func() {
		event.Emit(out, event.Event{Type: event.RunCancelled, MessageID: messageID})
	}

	for ev := range src {
		switch ev.Type {
		case ai.StreamContentDelta:
			agg.content.WriteString(ev.Content)
			if !ensureStart() || !event.Send(ctx, out, event.Event{Type: event.MessageDelta, MessageID: messageID, Delta: ev.Content}) {
				cancelled()
				return
			}
		case ai.StreamReasoningDelta:
			agg.reasoning.WriteString(ev.Reasoning)
			if !ensureStart() || !event.Send(ctx, out, event.Event{Type: event.ReasoningDelta, MessageID: messageID, Reasoning: ev.Reasoning}) {
				cancelled()
				return
			}
		case ai.StreamToolCallDelta:
			agg.calls.Apply(*ev.ToolCall)
			if !ensureStart() || !event.Send(ctx, out, event.Event{Type: event.ToolCallDelta, MessageID: messageID, ToolCallDelta: ev.ToolCall}) {
				cancelled()
				return
			}
		case ai.StreamAnnotations:
			agg.annotations = ev.Annotations
			if !ensureStart() || !event.Send(ctx, out, event.Event{Type: event.Annotations, MessageID: messageID, Annotations: ev.Annotations}) {
				cancelled()
				return
			}
		case ai.StreamUsage:
			agg.usage.Add(*ev.Usage)
			if !ensureStart() || !event.Send(ctx, out, event.Event{Type: event.Usage, MessageID: messageID, Usage: ev.Usage}) {
				cancelled()
				return
			}
		case ai.StreamFinish:
			agg.finishReason = ev.FinishReason
		case ai.StreamError:
			emit(c.events, Event{Type: EventRequestError, Operation: "chat_stream", Model: modelID, Duration: time.Since(start), Error: ev.Err})
			event.Send(ctx, out, event.Event{Type: event.RunError, MessageID: messageID, Error: ev.Err})
			return
		}
	}

	if ctx.Err() != nil {
		cancelled()
		return
	}

	resp := agg.response()
	emit(c.events, Event{Type: EventRequestComplete, Operation: "chat_stream", Model: modelID, Duration: time.Since(start), Usage: &resp.Usage})
	if !event.Send(ctx, out, event.Event{Type: event.MessageEnd, MessageID: messageID, Response: resp}) {
		cancelled()
		return
	}
	if !event.Send(ctx, out, event.Event{Type: event.RunEnd, MessageID: messageID, Response: resp}) {
		cancelled()
	}
}

// aggregator folds stream events into a complete response.
type aggregator struct {
	content      strings.Builder
	reasoning    strings.Builder
	calls        *ai.ToolCallAccumulator
	usage        ai.Usage
	annotations  []byte
	finishReason string
}

func newAggregator() *aggregator {
	return &aggregator{calls: ai.NewToolCallAccumulator()}
}

func (a *aggregator) response() *ai.Response {
	return &ai.Response{
		Content:      a.content.String(),
		Reasoning:    a.reasoning.String(),
		FinishReason: a.finishReason,
		Usage:        a.usage,
		Annotations:  a.annotations,
		ToolCalls:    a.calls.Snapshot(),
	}
}

// aggregate drains a raw stream into a response, surfacing stream errors.
func aggregate(ctx context.Context, src <-chan ai.StreamEvent) (*ai.Response, error) {
	agg := newAggregator()
	for ev := range src {
		switch ev.Type {
		case ai.StreamContentDelta:
			agg.content.WriteString(ev.Content)
		case ai.StreamReasoningDelta:
			agg.reasoning.WriteString(ev.Reasoning)
		case ai.StreamToolCallDelta:
			agg.calls.Apply(*ev.ToolCall)
		case ai.StreamAnnotations:
			agg.annotations = ev.Annotations
		case ai.StreamUsage:
			agg.usage.Add(*ev.Usage)
		case ai.StreamFinish:
			agg.finishReason = ev.FinishReason
		case ai.StreamError:
			return nil, ev.Err
		}
	}
	if ctx.Err() != nil {
		return nil, ai.NewCanceledError(ctx.Err())
	}
	return agg.response(), nil
}
