package assistant

import "encoding/json"

// Tool defines a function that can be called by the model.
type Tool struct {
	// Name is the unique identifier for the tool.
	Name string
	// Description explains what the tool does (helps the model decide when to use it).
	Description string
	// Parameters is a JSON Schema object defining the function parameters.
	Parameters json.RawMessage
}

// ToolCall represents a complete request from the model to invoke a tool.
type ToolCall struct {
	// ID is a unique identifier for this tool call (used to match results).
	ID string `json:"id"`
	// Name is the name of the tool to invoke.
	Name string `json:"name"`
	// Arguments is a JSON string containing the arguments to pass.
	Arguments string `json:"arguments"`
}

// ToolCallDelta is one incremental fragment of a tool call within a
// streaming response. The provider assigns each call a positional index
// for the duration of one response; fragments for the same index must be
// merged in arrival order to reconstitute the call.
type ToolCallDelta struct {
	// Index is the position of the tool call within the response.
	Index int `json:"index"`
	// ID is set on the first fragment of a call and empty afterwards.
	ID string `json:"id,omitempty"`
	// Type is the call type, "function" when present.
	Type string `json:"type,omitempty"`
	// Name is the tool name, usually only set on the first fragment.
	Name string `json:"name,omitempty"`
	// Arguments is a fragment of the JSON argument text.
	Arguments string `json:"arguments,omitempty"`
}

// ToolResult represents the result of executing a tool call.
type ToolResult struct {
	// ToolCallID matches the ID from the corresponding ToolCall.
	ToolCallID string `json:"toolCallId"`
	// Name is the name of the tool that produced the result.
	Name string `json:"name,omitempty"`
	// Content is the result content to return to the model.
	Content string `json:"content"`
	// IsError indicates if the result represents an error.
	IsError bool `json:"isError,omitempty"`
}

// ToolChoice controls how the model uses tools.
type ToolChoice string

const (
	// ToolChoiceAuto lets the model decide when to use tools (default).
	ToolChoiceAuto ToolChoice = "auto"
	// ToolChoiceNone disables tool use for the request.
	ToolChoiceNone ToolChoice = "none"
	// ToolChoiceRequired forces the model to use a tool.
	ToolChoiceRequired ToolChoice = "required"
)
