package assistant

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies errors by how the turn should handle them.
type ErrorKind string

const (
	// ErrorTransport indicates the request failed or the stream aborted:
	// network error, non-2xx response, or an idle-timeout expiry. Fatal to
	// the turn; surfaced once, never retried automatically.
	ErrorTransport ErrorKind = "transport"

	// ErrorProtocol indicates a stream frame explicitly reported an upstream
	// error. Fatal to the turn, surfaced with the upstream kind and message.
	ErrorProtocol ErrorKind = "protocol"

	// ErrorToolArgument indicates accumulated tool arguments were not valid
	// JSON when execution was attempted. Recovered locally: the tool is not
	// executed and a structured error result is fed back to the model.
	ErrorToolArgument ErrorKind = "tool_argument"

	// ErrorToolExecution indicates the tool dispatcher failed. Recovered
	// locally like ErrorToolArgument.
	ErrorToolExecution ErrorKind = "tool_execution"

	// ErrorCanceled indicates the caller canceled the turn. An orderly
	// termination, distinct from failure.
	ErrorCanceled ErrorKind = "canceled"
)

// Error is a categorized error carrying enough metadata for the agent loop
// to decide whether the turn survives it.
type Error struct {
	Kind ErrorKind
	Msg  string
	// Status is the HTTP status code for transport errors, 0 otherwise.
	Status int
	// Upstream is the provider-reported error type or code for protocol
	// errors (e.g., "rate_limit_exceeded"), empty otherwise.
	Upstream string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the error message.
func (e *Error) Error() string {
	switch {
	case e.Upstream != "" && e.Cause != nil:
		return fmt.Sprintf("%s (%s): %v", e.Msg, e.Upstream, e.Cause)
	case e.Upstream != "":
		return fmt.Sprintf("%s (%s)", e.Msg, e.Upstream)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	default:
		return e.Msg
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a turn-fatal transport error.
func NewTransportError(msg string, status int, cause error) *Error {
	return &Error{Kind: ErrorTransport, Msg: msg, Status: status, Cause: cause}
}

// NewProtocolError creates a turn-fatal protocol error from an upstream
// error payload.
func NewProtocolError(upstreamKind, msg string) *Error {
	return &Error{Kind: ErrorProtocol, Msg: msg, Upstream: upstreamKind}
}

// NewToolArgumentError creates a locally recovered tool-argument error.
func NewToolArgumentError(toolName string, cause error) *Error {
	return &Error{
		Kind:  ErrorToolArgument,
		Msg:   fmt.Sprintf("tool %q received malformed arguments", toolName),
		Cause: cause,
	}
}

// NewCanceledError wraps a context error as an orderly cancellation.
func NewCanceledError(cause error) *Error {
	return &Error{Kind: ErrorCanceled, Msg: "turn canceled", Cause: cause}
}

// KindOf returns the error kind, or "" when err carries no classification.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsTransport returns true if the error is a turn-fatal transport error.
func IsTransport(err error) bool {
	return KindOf(err) == ErrorTransport
}

// IsProtocol returns true if the error is a turn-fatal upstream protocol error.
func IsProtocol(err error) bool {
	return KindOf(err) == ErrorProtocol
}

// IsCanceled returns true if the error represents caller cancellation.
func IsCanceled(err error) bool {
	if KindOf(err) == ErrorCanceled {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// StatusCodeOf returns the HTTP status code from a transport error, or 0.
func StatusCodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
