// Package event defines the unified event stream emitted by client and
// agent runs. Events carry answer text, reasoning text, tool-call progress
// and lifecycle transitions on a single channel.
package event

import (
	"context"
	"encoding/json"
	"time"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
)

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires when execution begins.
	RunStart Type = "run_start"

	// RunEnd fires when execution completes successfully.
	RunEnd Type = "run_end"

	// RunError fires when an unrecoverable error ends the run.
	RunError Type = "run_error"

	// RunCancelled fires when the caller's context ends the run. It is
	// distinct from RunError so observers can tell an abort from a failure.
	RunCancelled Type = "run_cancelled"
)

// Step lifecycle events (agent only)
const (
	// StepStart fires at the beginning of each agent iteration.
	StepStart Type = "step_start"

	// StepEnd fires when an agent iteration completes.
	StepEnd Type = "step_end"
)

// Message lifecycle events
const (
	// MessageStart fires when an assistant message begins.
	MessageStart Type = "message_start"

	// MessageDelta fires for each streamed answer fragment.
	MessageDelta Type = "message_delta"

	// ReasoningDelta fires for each streamed deliberation fragment.
	ReasoningDelta Type = "reasoning_delta"

	// MessageEnd fires when an assistant message completes.
	MessageEnd Type = "message_end"
)

// Tool call lifecycle events
const (
	// ToolCallDelta fires for each raw tool-call fragment as it streams.
	ToolCallDelta Type = "tool_call_delta"

	// ToolCallStart fires before a tool handler executes, with the fully
	// assembled call.
	ToolCallStart Type = "tool_call_start"

	// ToolCallResult fires after a tool handler completes.
	ToolCallResult Type = "tool_call_result"
)

// Telemetry events
const (
	// Usage fires when the stream reports token counts.
	Usage Type = "usage"

	// Annotations fires when the stream reports annotation data.
	Annotations Type = "annotations"
)

// Event is one observable occurrence during a run.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// Step is the 1-indexed agent iteration, zero for non-agent events.
	Step int

	// MessageID correlates MessageStart, deltas and MessageEnd.
	MessageID string

	// Delta holds answer text for MessageDelta.
	Delta string

	// Reasoning holds deliberation text for ReasoningDelta.
	Reasoning string

	// ToolCallDelta holds the raw fragment for ToolCallDelta events.
	ToolCallDelta *ai.ToolCallDelta

	// ToolCall holds the assembled call for ToolCallStart.
	ToolCall *ai.ToolCall

	// ToolResult holds the outcome for ToolCallResult.
	ToolResult *ai.ToolResult

	// Response holds the completed response for MessageEnd, StepEnd and RunEnd.
	Response *ai.Response

	// Usage holds token counts for Usage events.
	Usage *ai.Usage

	// Annotations holds raw annotation JSON for Annotations events.
	Annotations json.RawMessage

	// Error holds the failure for RunError.
	Error error

	// Message carries additional context such as a termination reason.
	Message string

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Send delivers an event, blocking until the consumer accepts it or ctx
// ends. It returns false when the context ended first. Runs use Send so no
// event is ever dropped while the consumer keeps reading.
func Send(ctx context.Context, ch chan<- Event, e Event) bool {
	e.Timestamp = time.Now()
	select {
	case ch <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

// Emit delivers an event without blocking, dropping it if the channel is
// full. Used for advisory telemetry where loss is acceptable.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}
