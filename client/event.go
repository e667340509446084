package client

import (
	"time"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
)

// EventType identifies the kind of telemetry event.
type EventType string

const (
	// EventRequestStart fires before a request begins.
	EventRequestStart EventType = "request_start"

	// EventRequestComplete fires after a request completes successfully.
	EventRequestComplete EventType = "request_complete"

	// EventRequestError fires when a request fails.
	EventRequestError EventType = "request_error"
)

// Event is an observable client operation. Telemetry is advisory and
// delivered without blocking.
type Event struct {
	// Type identifies the kind of event.
	Type EventType

	// Operation identifies the call ("chat", "chat_stream").
	Operation string

	// Model is the requested model ID.
	Model string

	// Duration is the elapsed time for completed or failed requests.
	Duration time.Duration

	// Usage contains token counts when the stream reported them.
	Usage *ai.Usage

	// Error contains the failure for EventRequestError.
	Error error

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// emit sends a telemetry event without blocking; full channels drop it.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
	}
}
