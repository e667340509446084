package assistant

import "sort"

// pendingToolCall is one in-flight tool call being reassembled from
// streamed fragments.
type pendingToolCall struct {
	index     int
	id        string
	typ       string
	name      string
	arguments string
}

// ToolCallAccumulator merges tool-call delta fragments, keyed by the
// positional index the provider assigns within one response, into complete
// tool invocations.
//
// Accumulation is single-threaded per stream; an accumulator must not be
// shared across streams or turns. Argument buffers are plain text while the
// stream is live and are only expected to parse as JSON once the stream has
// ended.
type ToolCallAccumulator struct {
	entries map[int]*pendingToolCall
}

// NewToolCallAccumulator creates an empty accumulator for one stream.
func NewToolCallAccumulator() *ToolCallAccumulator {
	return &ToolCallAccumulator{
		entries: make(map[int]*pendingToolCall),
	}
}

// Apply merges one fragment. The first fragment for an index seeds the
// entry; id, type and name are overwritten only by non-empty values, and
// argument text is always appended, never replaced.
func (a *ToolCallAccumulator) Apply(delta ToolCallDelta) {
	entry, ok := a.entries[delta.Index]
	if !ok {
		entry = &pendingToolCall{index: delta.Index}
		a.entries[delta.Index] = entry
	}
	if delta.ID != "" {
		entry.id = delta.ID
	}
	if delta.Type != "" {
		entry.typ = delta.Type
	}
	if delta.Name != "" {
		entry.name = delta.Name
	}
	entry.arguments += delta.Arguments
}

// Len returns the number of distinct tool calls observed so far.
func (a *ToolCallAccumulator) Len() int {
	return len(a.entries)
}

// Snapshot returns the accumulated tool calls in ascending index order.
// Call it once the stream has ended; argument buffers are returned as-is
// and may still be invalid JSON if the stream was cut short.
func (a *ToolCallAccumulator) Snapshot() []ToolCall {
	if len(a.entries) == 0 {
		return nil
	}
	indices := make([]int, 0, len(a.entries))
	for i := range a.entries {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	calls := make([]ToolCall, 0, len(indices))
	for _, i := range indices {
		e := a.entries[i]
		calls = append(calls, ToolCall{
			ID:        e.id,
			Name:      e.name,
			Arguments: e.arguments,
		})
	}
	return calls
}
