// Package store keeps conversation history for the agent loop. History is
// append-only during a run; tool results interleave with assistant turns in
// arrival order.
package store

import (
	"sync"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
)

// History is a thread-safe ordered message log.
type History struct {
	mu       sync.RWMutex
	messages []ai.Message
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{messages: make([]ai.Message, 0)}
}

// NewHistoryFrom creates a history seeded with existing messages.
func NewHistoryFrom(messages []ai.Message) *History {
	h := NewHistory()
	if len(messages) > 0 {
		h.messages = make([]ai.Message, len(messages))
		copy(h.messages, messages)
	}
	return h
}

// Messages returns a copy of the log.
func (h *History) Messages() []ai.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result := make([]ai.Message, len(h.messages))
	copy(result, h.messages)
	return result
}

// Append adds messages to the end of the log.
func (h *History) Append(msgs ...ai.Message) {
	if len(msgs) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msgs...)
}

// Len returns the number of messages.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

// Last returns the most recent message and true, or false when empty.
func (h *History) Last() (ai.Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return ai.Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// Clear removes all messages.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = make([]ai.Message, 0)
}

// Clone returns an independent copy of the history.
func (h *History) Clone() *History {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return NewHistoryFrom(h.messages)
}
