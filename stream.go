package assistant

import "encoding/json"

// StreamEventType identifies the kind of streaming event.
type StreamEventType string

const (
	// StreamContentDelta carries incremental answer text.
	StreamContentDelta StreamEventType = "content_delta"
	// StreamReasoningDelta carries incremental reasoning text.
	StreamReasoningDelta StreamEventType = "reasoning_delta"
	// StreamToolCallDelta carries one tool-call fragment.
	StreamToolCallDelta StreamEventType = "tool_call_delta"
	// StreamAnnotations carries provider annotation data (e.g., citations).
	StreamAnnotations StreamEventType = "annotations"
	// StreamUsage carries token usage, typically near the end of the stream.
	StreamUsage StreamEventType = "usage"
	// StreamFinish carries the finish reason for a choice.
	StreamFinish StreamEventType = "finish"
	// StreamError is terminal: the stream failed and no further events follow.
	StreamError StreamEventType = "error"
)

// StreamEvent is a single discrete event decoded from the response stream.
// Exactly one payload field is populated, matching Type. Events preserve
// arrival order; a frame carrying several populated fields yields several
// events in a fixed order (content, reasoning, tool calls, annotations,
// usage, finish).
type StreamEvent struct {
	Type StreamEventType

	// Content holds incremental answer text for StreamContentDelta.
	Content string
	// Reasoning holds incremental deliberation text for StreamReasoningDelta.
	Reasoning string
	// ToolCall holds the fragment for StreamToolCallDelta.
	ToolCall *ToolCallDelta
	// Annotations holds raw annotation JSON for StreamAnnotations.
	Annotations json.RawMessage
	// Usage holds token counts for StreamUsage.
	Usage *Usage
	// FinishReason holds the provider finish reason for StreamFinish
	// (e.g., "stop", "tool_calls", "length").
	FinishReason string
	// Err holds the terminal error for StreamError. It is an *Error with
	// kind ErrorTransport or ErrorProtocol.
	Err error
}

// Usage contains token usage information for a request.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Add accumulates usage from another report.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// FinishReasonToolCalls is the provider finish reason indicating the model
// stopped to invoke tools.
const FinishReasonToolCalls = "tool_calls"

// Response represents a fully aggregated response from one model call.
type Response struct {
	Content      string          `json:"content,omitempty"`
	Reasoning    string          `json:"reasoning,omitempty"`
	FinishReason string          `json:"finishReason,omitempty"`
	Usage        Usage           `json:"usage"`
	Annotations  json.RawMessage `json:"annotations,omitempty"`
	// ToolCalls contains completed tool invocation requests from the model.
	// Check len(ToolCalls) > 0 to determine if tools should be executed.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
}
