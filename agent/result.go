package agent

import (
	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
	"github.com/Mostlime12195/Libre-Assistant-sub000/internal/store"
)

// TerminationReason indicates why a run stopped.
type TerminationReason string

const (
	// TerminationComplete indicates the model answered without tool calls.
	TerminationComplete TerminationReason = "complete"

	// TerminationMaxIterations indicates the request budget ran out.
	TerminationMaxIterations TerminationReason = "max_iterations"

	// TerminationCustom indicates the stop predicate fired.
	TerminationCustom TerminationReason = "custom"

	// TerminationCancelled indicates the caller's context ended the run.
	TerminationCancelled TerminationReason = "cancelled"

	// TerminationError indicates an unrecoverable failure.
	TerminationError TerminationReason = "error"
)

// Result is the final outcome of a run.
type Result struct {
	// Response is the last complete model response.
	Response *ai.Response

	// Steps is the number of iterations completed.
	Steps int

	// Termination indicates why the run stopped.
	Termination TerminationReason

	// TotalUsage aggregates token counts across all iterations.
	TotalUsage ai.Usage

	// Error holds the failure when Termination is TerminationError.
	Error error

	history *store.History
}

// Messages returns the full conversation including tool exchanges.
func (r *Result) Messages() []ai.Message {
	if r.history == nil {
		return nil
	}
	return r.history.Messages()
}

// MessageCount returns the number of messages in the conversation.
func (r *Result) MessageCount() int {
	if r.history == nil {
		return 0
	}
	return r.history.Len()
}
