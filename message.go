package assistant

import "github.com/google/uuid"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ContentPartType represents the type of content in a multimodal message part.
type ContentPartType string

const (
	ContentPartTypeText  ContentPartType = "text"
	ContentPartTypeImage ContentPartType = "image"
	ContentPartTypeFile  ContentPartType = "file"
)

// ContentPart represents a single part of multimodal content.
// Use Text for text parts, ImageURL/Base64 for image parts, and
// FileName/FileData for file attachments.
type ContentPart struct {
	// Type indicates the content type: "text", "image", or "file".
	Type ContentPartType `json:"type"`
	// Text contains the text content. Only used when Type is "text".
	Text string `json:"text,omitempty"`
	// ImageURL contains a URL (or data URI) of an image.
	// Mutually exclusive with Base64.
	ImageURL string `json:"imageUrl,omitempty"`
	// Base64 contains base64-encoded image data.
	// Mutually exclusive with ImageURL.
	Base64 string `json:"base64,omitempty"`
	// MimeType specifies the media format (e.g., "image/png").
	// Required when using Base64 or FileData.
	MimeType string `json:"mimeType,omitempty"`
	// FileName is the display name of an attached file.
	FileName string `json:"fileName,omitempty"`
	// FileData contains base64-encoded file content.
	FileData string `json:"fileData,omitempty"`
}

// NewTextPart creates a text content part.
func NewTextPart(text string) ContentPart {
	return ContentPart{
		Type: ContentPartTypeText,
		Text: text,
	}
}

// NewImageURLPart creates an image content part from a URL or data URI.
func NewImageURLPart(url string) ContentPart {
	return ContentPart{
		Type:     ContentPartTypeImage,
		ImageURL: url,
	}
}

// NewImageBase64Part creates an image content part from base64 data.
func NewImageBase64Part(base64Data, mimeType string) ContentPart {
	return ContentPart{
		Type:     ContentPartTypeImage,
		Base64:   base64Data,
		MimeType: mimeType,
	}
}

// NewFilePart creates a file attachment part from base64 data.
func NewFilePart(name, base64Data, mimeType string) ContentPart {
	return ContentPart{
		Type:     ContentPartTypeFile,
		FileName: name,
		FileData: base64Data,
		MimeType: mimeType,
	}
}

// Message represents a single message in a conversation.
//
// The core treats caller-supplied messages as read-only input; the only
// messages it synthesizes are the assistant and tool messages produced
// during an agent turn.
type Message struct {
	// ID is an optional unique identifier for the message.
	ID      string `json:"id,omitempty"`
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`
	// Reasoning holds model deliberation text surfaced separately from
	// Content. Only populated on assistant messages from reasoning models.
	Reasoning string `json:"reasoning,omitempty"`
	// Parts contains multimodal content parts (text, images, files).
	// If populated, Content is ignored when building the request.
	Parts []ContentPart `json:"parts,omitempty"`
	// ToolCalls contains tool invocation requests from an assistant message.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
	// ToolResults contains results from tool executions.
	// Only populated when Role is RoleTool.
	ToolResults []ToolResult `json:"toolResults,omitempty"`
}

// GenerateMessageID creates a unique message identifier.
func GenerateMessageID() string {
	return "msg-" + uuid.New().String()
}

// HasParts returns true if the message has multimodal content parts.
func (m Message) HasParts() bool {
	return len(m.Parts) > 0
}

// NewToolResultMessage creates a message containing tool results.
// On the wire each result becomes one tool-role message keyed by its
// tool call ID.
func NewToolResultMessage(results ...ToolResult) Message {
	return Message{
		Role:        RoleTool,
		ToolResults: results,
	}
}
