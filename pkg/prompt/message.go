package prompt

import (
	"encoding/json"
	"fmt"

	mcperrors "github.com/ajitpratap0/mcp-core-go/pkg/errors"
	"github.com/ajitpratap0/mcp-core-go/pkg/resource"
)

// Role is the sender of a prompt message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// UnmarshalJSON rejects unknown roles
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !Role(s).Valid() {
		return mcperrors.InvalidParametersf("unknown role %q", s)
	}
	*r = Role(s)
	return nil
}

// Message is one message of a prompt
type Message struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// NewTextMessage creates a text message
func NewTextMessage(role Role, text string) Message {
	return Message{Role: role, Content: TextContent{Text: text}}
}

// NewImageMessage creates an image message, validating the data and MIME type
func NewImageMessage(role Role, data, mimeType string) (Message, error) {
	img, err := NewImageContent(data, mimeType)
	if err != nil {
		return Message{}, err
	}
	return Message{Role: role, Content: img}, nil
}

// NewResourceMessage creates a message embedding a text resource.
// Only the structure is checked; the text is accepted verbatim.
func NewResourceMessage(role Role, uri, mimeType, text string) Message {
	return Message{
		Role: role,
		Content: NewResourceContent(resource.TextContents{
			URI:      uri,
			MimeType: mimeType,
			Text:     text,
		}),
	}
}

// MarshalJSON encodes the message, using DefaultContent when none is set
func (m Message) MarshalJSON() ([]byte, error) {
	type wire Message
	w := wire(m)
	if w.Content == nil {
		w.Content = DefaultContent()
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the message, validating role and content
func (m *Message) UnmarshalJSON(data []byte) error {
	var w struct {
		Role    *Role           `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Role == nil {
		return mcperrors.InvalidParameters("prompt message role is required")
	}
	if len(w.Content) == 0 || string(w.Content) == "null" {
		return mcperrors.InvalidParameters("prompt message content is required")
	}

	content, err := UnmarshalContent(w.Content)
	if err != nil {
		return err
	}
	*m = Message{Role: *w.Role, Content: content}
	return nil
}

// MessageBuilder constructs a Message. Content set on the builder goes
// through the same checks as the direct constructors.
type MessageBuilder struct {
	role    Role
	content Content
	err     error
}

// NewMessageBuilder creates a builder for a message from role
func NewMessageBuilder(role Role) *MessageBuilder {
	return &MessageBuilder{role: role, content: DefaultContent()}
}

// Content sets the message content
func (b *MessageBuilder) Content(c Content) *MessageBuilder {
	normalized, err := normalizeContent(c)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.content = normalized
	return b
}

// Build returns the message
func (b *MessageBuilder) Build() (Message, error) {
	if b.err != nil {
		return Message{}, b.err
	}
	if !b.role.Valid() {
		return Message{}, mcperrors.InvalidParameters(fmt.Sprintf("unknown role %q", b.role))
	}
	return Message{Role: b.role, Content: b.content}, nil
}
