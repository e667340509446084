package assistant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulatorMergesFragmentsInArrivalOrder(t *testing.T) {
	acc := NewToolCallAccumulator()

	// Providers split the argument JSON at arbitrary byte boundaries.
	full := `{"location":"Berlin","unit":"celsius"}`
	acc.Apply(ToolCallDelta{Index: 0, ID: "call_1", Type: "function", Name: "get_weather"})
	for i := 0; i < len(full); i += 7 {
		end := i + 7
		if end > len(full) {
			end = len(full)
		}
		acc.Apply(ToolCallDelta{Index: 0, Arguments: full[i:end]})
	}

	calls := acc.Snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "call_1", calls[0].ID)
	assert.Equal(t, "get_weather", calls[0].Name)
	assert.Equal(t, full, calls[0].Arguments)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(calls[0].Arguments), &parsed))
	assert.Equal(t, "Berlin", parsed["location"])
}

func TestAccumulatorNeverClearsIDOrName(t *testing.T) {
	acc := NewToolCallAccumulator()

	acc.Apply(ToolCallDelta{Index: 0, ID: "call_1", Name: "search"})
	// Later fragments carry empty id/name; they must not clear the entry.
	acc.Apply(ToolCallDelta{Index: 0, Arguments: `{"q":`})
	acc.Apply(ToolCallDelta{Index: 0, Arguments: `"go"}`})

	calls := acc.Snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "call_1", calls[0].ID)
	assert.Equal(t, "search", calls[0].Name)
	assert.Equal(t, `{"q":"go"}`, calls[0].Arguments)
}

func TestAccumulatorSnapshotAscendingIndex(t *testing.T) {
	acc := NewToolCallAccumulator()

	// Indices interleave; entries are independent.
	acc.Apply(ToolCallDelta{Index: 1, ID: "call_b", Name: "second", Arguments: `{"b"`})
	acc.Apply(ToolCallDelta{Index: 0, ID: "call_a", Name: "first", Arguments: `{"a"`})
	acc.Apply(ToolCallDelta{Index: 1, Arguments: `:2}`})
	acc.Apply(ToolCallDelta{Index: 0, Arguments: `:1}`})

	calls := acc.Snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, "call_a", calls[0].ID)
	assert.Equal(t, `{"a":1}`, calls[0].Arguments)
	assert.Equal(t, "call_b", calls[1].ID)
	assert.Equal(t, `{"b":2}`, calls[1].Arguments)
}

func TestAccumulatorEmptySnapshot(t *testing.T) {
	acc := NewToolCallAccumulator()
	assert.Nil(t, acc.Snapshot())
	assert.Equal(t, 0, acc.Len())
}
