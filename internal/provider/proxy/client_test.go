package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
	"github.com/Mostlime12195/Libre-Assistant-sub000/model"
)

// sseServer replays canned frames and captures the decoded request envelope.
func sseServer(t *testing.T, frames []string, captured *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, frame := range frames {
			_, _ = w.Write([]byte(frame + "\n\n"))
			flusher.Flush()
		}
	}))
}

func collect(t *testing.T, ch <-chan ai.StreamEvent) []ai.StreamEvent {
	t.Helper()
	var events []ai.StreamEvent
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

func TestChatStreamDeltas(t *testing.T) {
	var req chatRequest
	srv := sseServer(t, []string{
		`data: {"choices":[{"delta":{"content":"Hel"}}]}`,
		`data: {"choices":[{"delta":{"content":"lo","reasoning":"thinking"}}]}`,
		`data: {"choices":[{"delta":{},"finish_reason":"stop"}],"usage":{"prompt_tokens":5,"completion_tokens":2,"total_tokens":7}}`,
		`data: [DONE]`,
	}, &req)
	defer srv.Close()

	c := New(srv.URL, "test-key", model.DefaultRegistry())
	ch, err := c.ChatStream(context.Background(), []ai.Message{
		{Role: ai.RoleUser, Content: "hi"},
	}, ai.WithModel("gpt-4o-mini"))
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 5)
	assert.Equal(t, ai.StreamContentDelta, events[0].Type)
	assert.Equal(t, "Hel", events[0].Content)
	assert.Equal(t, "lo", events[1].Content)
	assert.Equal(t, ai.StreamReasoningDelta, events[2].Type)
	assert.Equal(t, "thinking", events[2].Reasoning)
	assert.Equal(t, ai.StreamUsage, events[3].Type)
	assert.Equal(t, 7, events[3].Usage.TotalTokens)
	assert.Equal(t, ai.StreamFinish, events[4].Type)
	assert.Equal(t, "stop", events[4].FinishReason)

	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.True(t, req.Stream)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
}

func TestChatStreamToolCallFragments(t *testing.T) {
	srv := sseServer(t, []string{
		`data: {"choices":[{"delta":{"tool_calls":[{"index":0,"id":"call_1","type":"function","function":{"name":"get_weather","arguments":""}}]}}]}`,
		`data: {"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"arguments":"{\"city\":"}}]}}]}`,
		`data: {"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"arguments":"\"Oslo\"}"}}]}}]}`,
		`data: {"choices":[{"delta":{},"finish_reason":"tool_calls"}]}`,
		`data: [DONE]`,
	}, nil)
	defer srv.Close()

	c := New(srv.URL, "", model.DefaultRegistry())
	ch, err := c.ChatStream(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "weather"}})
	require.NoError(t, err)

	acc := ai.NewToolCallAccumulator()
	var finish string
	for ev := range ch {
		switch ev.Type {
		case ai.StreamToolCallDelta:
			acc.Apply(*ev.ToolCall)
		case ai.StreamFinish:
			finish = ev.FinishReason
		}
	}
	assert.Equal(t, ai.FinishReasonToolCalls, finish)

	calls := acc.Snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "call_1", calls[0].ID)
	assert.Equal(t, "get_weather", calls[0].Name)
	assert.JSONEq(t, `{"city":"Oslo"}`, calls[0].Arguments)
}

func TestChatStreamSkipsMalformedFrames(t *testing.T) {
	srv := sseServer(t, []string{
		`data: {"choices":[{"delta":{"content":"a"}}]}`,
		`data: {not json`,
		`data: {"choices":[{"delta":{"content":"b"}}]}`,
		`data: [DONE]`,
	}, nil)
	defer srv.Close()

	c := New(srv.URL, "", model.DefaultRegistry())
	ch, err := c.ChatStream(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "x"}})
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].Content)
	assert.Equal(t, "b", events[1].Content)
}

func TestChatStreamErrorFrameIsFatal(t *testing.T) {
	srv := sseServer(t, []string{
		`data: {"choices":[{"delta":{"content":"partial"}}]}`,
		`data: {"error":{"message":"model overloaded","type":"server_error"}}`,
		`data: {"choices":[{"delta":{"content":"never seen"}}]}`,
		`data: [DONE]`,
	}, nil)
	defer srv.Close()

	c := New(srv.URL, "", model.DefaultRegistry())
	ch, err := c.ChatStream(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "x"}})
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 2)
	assert.Equal(t, "partial", events[0].Content)
	require.Equal(t, ai.StreamError, events[1].Type)
	assert.True(t, ai.IsProtocol(events[1].Err))
	assert.Contains(t, events[1].Err.Error(), "model overloaded")
}

func TestChatStreamNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"no key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "", model.DefaultRegistry())
	_, err := c.ChatStream(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "x"}})
	require.Error(t, err)
	assert.True(t, ai.IsTransport(err))
	assert.Equal(t, http.StatusUnauthorized, ai.StatusCodeOf(err))
}

func TestChatStreamIdleTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n\n"))
		flusher.Flush()
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, "", model.DefaultRegistry(), WithIdleTimeout(50*time.Millisecond))
	ch, err := c.ChatStream(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "x"}})
	require.NoError(t, err)

	events := collect(t, ch)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].Content)
	require.Equal(t, ai.StreamError, events[1].Type)
	assert.True(t, ai.IsTransport(events[1].Err))
	assert.Contains(t, events[1].Err.Error(), "no data received")
}

func TestChatStreamCallerCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n\n"))
		flusher.Flush()
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	c := New(srv.URL, "", model.DefaultRegistry())
	ch, err := c.ChatStream(ctx, []ai.Message{{Role: ai.RoleUser, Content: "x"}})
	require.NoError(t, err)

	first := <-ch
	assert.Equal(t, "a", first.Content)
	cancel()

	// The channel must close without an error event.
	for ev := range ch {
		assert.NotEqual(t, ai.StreamError, ev.Type)
	}
}

func TestChatStreamOmitsToolsForIncapableModel(t *testing.T) {
	var req chatRequest
	srv := sseServer(t, []string{`data: [DONE]`}, &req)
	defer srv.Close()

	tools := []ai.Tool{{Name: "lookup", Parameters: json.RawMessage(`{"type":"object"}`)}}

	c := New(srv.URL, "", model.DefaultRegistry())
	ch, err := c.ChatStream(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "x"}},
		ai.WithModel(model.DeepSeekReasoner.ID), ai.WithTools(tools))
	require.NoError(t, err)
	collect(t, ch)

	assert.Empty(t, req.Tools)
}

func TestChatStreamRoutesToAlternateModel(t *testing.T) {
	var req chatRequest
	srv := sseServer(t, []string{`data: [DONE]`}, &req)
	defer srv.Close()

	c := New(srv.URL, "", model.DefaultRegistry())
	ch, err := c.ChatStream(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "x"}},
		ai.WithModel(model.DeepSeekChat.ID), ai.WithEffort("high"))
	require.NoError(t, err)
	collect(t, ch)

	assert.Equal(t, model.DeepSeekReasoner.ID, req.Model)
}

func TestChatStreamEffortSelectableParams(t *testing.T) {
	var req chatRequest
	srv := sseServer(t, []string{`data: [DONE]`}, &req)
	defer srv.Close()

	c := New(srv.URL, "", model.DefaultRegistry())
	ch, err := c.ChatStream(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "x"}},
		ai.WithModel(model.O4Mini.ID), ai.WithEffort("bogus"))
	require.NoError(t, err)
	collect(t, ch)

	// Invalid levels clamp to the model default.
	require.NotNil(t, req.Reasoning)
	assert.Equal(t, "medium", req.Reasoning.Effort)
}

func TestConvertMessagesToolResults(t *testing.T) {
	msgs := convertMessages([]ai.Message{
		ai.NewToolResultMessage(
			ai.ToolResult{ToolCallID: "call_1", Name: "a", Content: "ok"},
			ai.ToolResult{ToolCallID: "call_2", Name: "b", Content: "fail", IsError: true},
		),
	})
	require.Len(t, msgs, 2)
	assert.Equal(t, "tool", msgs[0].Role)
	assert.Equal(t, "call_1", msgs[0].ToolCallID)
	assert.Equal(t, "ok", msgs[0].Content)
	assert.Equal(t, "call_2", msgs[1].ToolCallID)
}
