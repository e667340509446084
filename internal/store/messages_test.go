package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
)

func TestHistoryAppendOrder(t *testing.T) {
	h := NewHistory()
	h.Append(ai.Message{Role: ai.RoleUser, Content: "q"})
	h.Append(
		ai.Message{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{{ID: "call_1", Name: "f"}}},
		ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "call_1", Name: "f", Content: "r"}),
	)
	h.Append(ai.Message{Role: ai.RoleAssistant, Content: "done"})

	msgs := h.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, ai.RoleUser, msgs[0].Role)
	assert.Equal(t, ai.RoleAssistant, msgs[1].Role)
	assert.Equal(t, ai.RoleTool, msgs[2].Role)
	assert.Equal(t, "done", msgs[3].Content)
}

func TestHistoryMessagesIsACopy(t *testing.T) {
	h := NewHistoryFrom([]ai.Message{{Role: ai.RoleUser, Content: "a"}})
	msgs := h.Messages()
	msgs[0].Content = "mutated"
	assert.Equal(t, "a", h.Messages()[0].Content)
}

func TestHistoryLastAndClear(t *testing.T) {
	h := NewHistory()
	_, ok := h.Last()
	assert.False(t, ok)

	h.Append(ai.Message{Role: ai.RoleUser, Content: "x"}, ai.Message{Role: ai.RoleAssistant, Content: "y"})
	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, "y", last.Content)

	h.Clear()
	assert.Equal(t, 0, h.Len())
}

func TestHistoryCloneIsIndependent(t *testing.T) {
	h := NewHistoryFrom([]ai.Message{{Role: ai.RoleUser, Content: "a"}})
	clone := h.Clone()
	clone.Append(ai.Message{Role: ai.RoleAssistant, Content: "b"})
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 2, clone.Len())
}
