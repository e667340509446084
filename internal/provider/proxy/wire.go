package proxy

import (
	"encoding/json"
	"fmt"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
	"github.com/Mostlime12195/Libre-Assistant-sub000/reasoning"
)

// chatRequest is the outgoing request envelope. Built fresh per call and
// never reused across loop iterations.
type chatRequest struct {
	Model       string            `json:"model"`
	Messages    []wireMessage     `json:"messages"`
	Stream      bool              `json:"stream"`
	Tools       []wireTool        `json:"tools,omitempty"`
	ToolChoice  string            `json:"tool_choice,omitempty"`
	Temperature *float64          `json:"temperature,omitempty"`
	TopP        *float64          `json:"top_p,omitempty"`
	Seed        *int64            `json:"seed,omitempty"`
	MaxTokens   *int              `json:"max_tokens,omitempty"`
	Reasoning   *reasoning.Params `json:"reasoning,omitempty"`
}

type wireMessage struct {
	Role       string         `json:"role"`
	Content    any            `json:"content,omitempty"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	Name       string         `json:"name,omitempty"`
}

type wireTool struct {
	Type     string           `json:"type"`
	Function wireToolFunction `json:"function"`
}

type wireToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

type wireToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function wireCallFunction `json:"function"`
}

type wireCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type wirePart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *wireImageURL `json:"image_url,omitempty"`
	File     *wireFile     `json:"file,omitempty"`
}

type wireImageURL struct {
	URL string `json:"url"`
}

type wireFile struct {
	Filename string `json:"filename,omitempty"`
	FileData string `json:"file_data,omitempty"`
}

// chatChunk is one decoded stream frame. A frame may carry content,
// reasoning, tool-call fragments, usage and annotations independently and
// in any combination.
type chatChunk struct {
	ID      string        `json:"id"`
	Choices []chunkChoice `json:"choices"`
	Usage   *wireUsage    `json:"usage"`
	Error   *wireError    `json:"error"`
}

type chunkChoice struct {
	Index        int        `json:"index"`
	Delta        chunkDelta `json:"delta"`
	FinishReason string     `json:"finish_reason"`
}

type chunkDelta struct {
	Content string `json:"content"`
	// Reasoning text arrives under either key depending on the upstream.
	Reasoning        string              `json:"reasoning"`
	ReasoningContent string              `json:"reasoning_content"`
	ToolCalls        []wireToolCallDelta `json:"tool_calls"`
	Annotations      json.RawMessage     `json:"annotations"`
}

func (d chunkDelta) reasoningText() string {
	if d.Reasoning != "" {
		return d.Reasoning
	}
	return d.ReasoningContent
}

type wireToolCallDelta struct {
	Index    int               `json:"index"`
	ID       string            `json:"id"`
	Type     string            `json:"type"`
	Function wireDeltaFunction `json:"function"`
}

type wireDeltaFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type wireUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type wireError struct {
	Message string          `json:"message"`
	Type    string          `json:"type"`
	Code    json.RawMessage `json:"code"`
}

// kind returns the upstream error classification, preferring the type field.
func (e *wireError) kind() string {
	if e.Type != "" {
		return e.Type
	}
	if len(e.Code) > 0 {
		var s string
		if err := json.Unmarshal(e.Code, &s); err == nil {
			return s
		}
		return string(e.Code)
	}
	return ""
}

// convertMessages maps conversation messages onto the wire format. Tool
// result groups expand to one tool-role message per result.
func convertMessages(messages []ai.Message) []wireMessage {
	var result []wireMessage
	for _, msg := range messages {
		switch msg.Role {
		case ai.RoleTool:
			for _, tr := range msg.ToolResults {
				result = append(result, wireMessage{
					Role:       "tool",
					Content:    tr.Content,
					ToolCallID: tr.ToolCallID,
					Name:       tr.Name,
				})
			}

		case ai.RoleAssistant:
			wm := wireMessage{Role: "assistant"}
			if msg.Content != "" {
				wm.Content = msg.Content
			}
			for _, tc := range msg.ToolCalls {
				wm.ToolCalls = append(wm.ToolCalls, wireToolCall{
					ID:   tc.ID,
					Type: "function",
					Function: wireCallFunction{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			if wm.Content != nil || len(wm.ToolCalls) > 0 {
				result = append(result, wm)
			}

		default:
			wm := wireMessage{Role: string(msg.Role)}
			if msg.HasParts() {
				wm.Content = convertParts(msg.Parts)
			} else if msg.Content != "" {
				wm.Content = msg.Content
			}
			if wm.Content != nil {
				result = append(result, wm)
			}
		}
	}
	return result
}

func convertParts(parts []ai.ContentPart) []wirePart {
	var result []wirePart
	for _, part := range parts {
		switch part.Type {
		case ai.ContentPartTypeText:
			if part.Text != "" {
				result = append(result, wirePart{Type: "text", Text: part.Text})
			}

		case ai.ContentPartTypeImage:
			url := part.ImageURL
			if part.Base64 != "" {
				mime := part.MimeType
				if mime == "" {
					mime = "image/jpeg"
				}
				url = fmt.Sprintf("data:%s;base64,%s", mime, part.Base64)
			}
			if url != "" {
				result = append(result, wirePart{Type: "image_url", ImageURL: &wireImageURL{URL: url}})
			}

		case ai.ContentPartTypeFile:
			if part.FileData != "" {
				mime := part.MimeType
				if mime == "" {
					mime = "application/octet-stream"
				}
				result = append(result, wirePart{Type: "file", File: &wireFile{
					Filename: part.FileName,
					FileData: fmt.Sprintf("data:%s;base64,%s", mime, part.FileData),
				}})
			}
		}
	}
	return result
}

func convertTools(tools []ai.Tool) []wireTool {
	result := make([]wireTool, len(tools))
	for i, t := range tools {
		result[i] = wireTool{
			Type: "function",
			Function: wireToolFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		}
	}
	return result
}
