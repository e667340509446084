// Package proxy speaks the OpenAI-compatible chat-completions dialect over
// server-sent events. It owns the request envelope, the stream pump and the
// mapping from wire frames to stream events.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
	"github.com/Mostlime12195/Libre-Assistant-sub000/internal/sse"
	"github.com/Mostlime12195/Libre-Assistant-sub000/model"
	"github.com/Mostlime12195/Libre-Assistant-sub000/reasoning"
)

// DefaultIdleTimeout is the longest gap allowed between stream frames
// before the connection is declared dead.
const DefaultIdleTimeout = 90 * time.Second

// Client streams chat completions from an OpenAI-compatible endpoint.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	models      *model.Registry
	idleTimeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithIdleTimeout sets the per-frame inactivity limit. Zero or negative
// disables the liveness guard.
func WithIdleTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.idleTimeout = d
	}
}

// New creates a proxy client. The registry resolves model capabilities;
// unknown models pass through with tools and reasoning omitted.
func New(baseURL, apiKey string, registry *model.Registry, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		httpClient:  &http.Client{},
		models:      registry,
		idleTimeout: DefaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.models == nil {
		c.models = model.DefaultRegistry()
	}
	return c
}

// ChatStream opens a streaming completion and returns a channel of stream
// events. The channel closes when the stream ends for any reason; fatal
// conditions surface as a StreamError event first. Cancelling ctx ends the
// stream without an error event.
func (c *Client) ChatStream(ctx context.Context, messages []ai.Message, opts ...ai.Option) (<-chan ai.StreamEvent, error) {
	options := ai.ApplyOptions(opts...)

	modelID := options.Model
	if modelID == "" {
		modelID = model.DefaultModel.ID
	}
	cap, known := c.models.Lookup(modelID)

	res := reasoning.Resolve(cap, model.Effort(options.Effort))
	if res.AlternateModel != "" {
		modelID = res.AlternateModel
		if alt, ok := c.models.Lookup(modelID); ok {
			cap = alt
		}
	}

	req := chatRequest{
		Model:       modelID,
		Messages:    convertMessages(messages),
		Stream:      true,
		Temperature: options.Temperature,
		TopP:        options.TopP,
		Seed:        options.Seed,
		Reasoning:   res.Params,
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = &options.MaxTokens
	}
	if len(options.Tools) > 0 && known && cap.SupportsTools {
		req.Tools = convertTools(options.Tools)
		if options.ToolChoice != "" {
			req.ToolChoice = string(options.ToolChoice)
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	// The derived context lets the liveness guard tear down a stalled
	// connection without touching the caller's context.
	streamCtx, cancel := context.WithCancel(ctx)

	httpReq, err := http.NewRequestWithContext(streamCtx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		cancel()
		if ctx.Err() != nil {
			return nil, ai.NewCanceledError(ctx.Err())
		}
		return nil, ai.NewTransportError("request failed: "+err.Error(), 0, err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		cancel()
		return nil, ai.NewTransportError(
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			resp.StatusCode, nil)
	}

	ch := make(chan ai.StreamEvent)
	go c.pump(ctx, cancel, resp.Body, ch)
	return ch, nil
}

// pump reads frames until the stream terminates and forwards decoded events.
// It owns the response body and the event channel.
func (c *Client) pump(ctx context.Context, cancel context.CancelFunc, body io.ReadCloser, ch chan<- ai.StreamEvent) {
	defer close(ch)
	defer cancel()
	defer body.Close()

	var idleFired atomic.Bool
	var watchdog *time.Timer
	if c.idleTimeout > 0 {
		watchdog = time.AfterFunc(c.idleTimeout, func() {
			idleFired.Store(true)
			cancel()
		})
		defer watchdog.Stop()
	}

	reader := sse.NewReader(body)
	for {
		payload, err := reader.Next()
		if err != nil {
			switch {
			case err == io.EOF:
				// Terminator frame or clean close.
			case idleFired.Load():
				c.emit(ctx, ch, ai.StreamEvent{
					Type: ai.StreamError,
					Err: ai.NewTransportError(
						fmt.Sprintf("no data received for %s", c.idleTimeout), 0, err),
				})
			case ctx.Err() != nil:
				// Caller cancellation ends the stream without an event.
			default:
				c.emit(ctx, ch, ai.StreamEvent{
					Type: ai.StreamError,
					Err:  ai.NewTransportError("stream read failed: "+err.Error(), 0, err),
				})
			}
			return
		}
		if watchdog != nil {
			watchdog.Reset(c.idleTimeout)
		}

		events, fatal := decodeFrame(payload)
		for _, ev := range events {
			if !c.emit(ctx, ch, ev) {
				return
			}
		}
		if fatal {
			return
		}
	}
}

func (c *Client) emit(ctx context.Context, ch chan<- ai.StreamEvent, ev ai.StreamEvent) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// decodeFrame maps one wire frame to zero or more stream events. Frames
// that fail to decode are dropped; an upstream error payload is fatal and
// yields a single error event.
func decodeFrame(payload []byte) (events []ai.StreamEvent, fatal bool) {
	var chunk chatChunk
	if err := json.Unmarshal(payload, &chunk); err != nil {
		return nil, false
	}

	if chunk.Error != nil {
		return []ai.StreamEvent{{
			Type: ai.StreamError,
			Err:  ai.NewProtocolError(chunk.Error.kind(), chunk.Error.Message),
		}}, true
	}

	var finish string
	if len(chunk.Choices) > 0 {
		choice := chunk.Choices[0]
		finish = choice.FinishReason

		if choice.Delta.Content != "" {
			events = append(events, ai.StreamEvent{
				Type:    ai.StreamContentDelta,
				Content: choice.Delta.Content,
			})
		}
		if r := choice.Delta.reasoningText(); r != "" {
			events = append(events, ai.StreamEvent{
				Type:      ai.StreamReasoningDelta,
				Reasoning: r,
			})
		}
		for _, tc := range choice.Delta.ToolCalls {
			delta := ai.ToolCallDelta{
				Index:     tc.Index,
				ID:        tc.ID,
				Type:      tc.Type,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			}
			events = append(events, ai.StreamEvent{
				Type:     ai.StreamToolCallDelta,
				ToolCall: &delta,
			})
		}
		if len(choice.Delta.Annotations) > 0 && string(choice.Delta.Annotations) != "null" {
			events = append(events, ai.StreamEvent{
				Type:        ai.StreamAnnotations,
				Annotations: choice.Delta.Annotations,
			})
		}
	}

	if chunk.Usage != nil {
		events = append(events, ai.StreamEvent{
			Type: ai.StreamUsage,
			Usage: &ai.Usage{
				PromptTokens:     chunk.Usage.PromptTokens,
				CompletionTokens: chunk.Usage.CompletionTokens,
				TotalTokens:      chunk.Usage.TotalTokens,
			},
		})
	}
	if finish != "" {
		events = append(events, ai.StreamEvent{
			Type:         ai.StreamFinish,
			FinishReason: finish,
		})
	}
	return events, false
}
