package resource

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	mcperrors "github.com/ajitpratap0/mcp-core-go/pkg/errors"
)

// Content is the body of a read resource: TextContents or BlobContents.
//
// The wire form carries no type tag. The variant is chosen by which of
// "text" or "blob" is present; "mimeType" is metadata only.
type Content interface {
	// ContentURI returns the URI the contents were read from
	ContentURI() string
	isContent()
}

// TextContents is the textual body of a resource
type TextContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// BlobContents is the binary body of a resource, base64 encoded
type BlobContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Blob     string `json:"blob"`
}

func (c TextContents) ContentURI() string { return c.URI }
func (c BlobContents) ContentURI() string { return c.URI }

func (TextContents) isContent() {}
func (BlobContents) isContent() {}

// NewBlobContents base64 encodes data into a blob body
func NewBlobContents(uri *url.URL, mimeType string, data []byte) (BlobContents, error) {
	if uri == nil {
		return BlobContents{}, mcperrors.InvalidParameters("resource uri is required")
	}
	if mimeType != "" {
		canonical, err := ParseMimeType(mimeType)
		if err != nil {
			return BlobContents{}, err
		}
		mimeType = canonical
	}
	return BlobContents{
		URI:      uri.String(),
		MimeType: mimeType,
		Blob:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Bytes decodes the blob
func (c BlobContents) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(c.Blob)
	if err != nil {
		return nil, mcperrors.InvalidParameters("Blob data must be valid base64")
	}
	return data, nil
}

// contentFields records which members of a contents object are present
type contentFields struct {
	URI      *string `json:"uri"`
	MimeType *string `json:"mimeType"`
	Text     *string `json:"text"`
	Blob     *string `json:"blob"`
}

func decodeFields(data []byte) (contentFields, error) {
	var f contentFields
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("decode resource contents: %w", err)
	}
	if f.URI == nil {
		return f, mcperrors.InvalidParameters("resource contents uri is required")
	}
	return f, nil
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// UnmarshalContent decodes a contents object. Text is tried before blob; an
// object carrying both is rejected as ambiguous and one carrying neither is
// rejected as incomplete.
func UnmarshalContent(data []byte) (Content, error) {
	f, err := decodeFields(data)
	if err != nil {
		return nil, err
	}

	switch {
	case f.Text != nil && f.Blob != nil:
		return nil, mcperrors.InvalidParameters("resource contents must not carry both text and blob")
	case f.Text != nil:
		return TextContents{URI: *f.URI, MimeType: optional(f.MimeType), Text: *f.Text}, nil
	case f.Blob != nil:
		return BlobContents{URI: *f.URI, MimeType: optional(f.MimeType), Blob: *f.Blob}, nil
	}
	return nil, mcperrors.InvalidParameters("resource contents must carry either text or blob")
}

// UnmarshalJSON decodes text contents, requiring the uri and text members
func (c *TextContents) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	if f.Text == nil {
		return mcperrors.InvalidParameters("text resource contents require text")
	}
	*c = TextContents{URI: *f.URI, MimeType: optional(f.MimeType), Text: *f.Text}
	return nil
}

// UnmarshalJSON decodes blob contents, requiring the uri and blob members
func (c *BlobContents) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	if f.Blob == nil {
		return mcperrors.InvalidParameters("blob resource contents require blob")
	}
	*c = BlobContents{URI: *f.URI, MimeType: optional(f.MimeType), Blob: *f.Blob}
	return nil
}

// TextContentsBuilder constructs TextContents
type TextContentsBuilder struct {
	uri      *url.URL
	mimeType string
	text     string
	err      error
}

// NewTextContentsBuilder creates an empty text contents builder
func NewTextContentsBuilder() *TextContentsBuilder {
	return &TextContentsBuilder{}
}

// URI sets the URI the text was read from
func (b *TextContentsBuilder) URI(u *url.URL) *TextContentsBuilder {
	b.uri = u
	return b
}

// MimeType sets the optional MIME type
func (b *TextContentsBuilder) MimeType(mimeType string) *TextContentsBuilder {
	canonical, err := ParseMimeType(mimeType)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.mimeType = canonical
	return b
}

// Text sets the body
func (b *TextContentsBuilder) Text(text string) *TextContentsBuilder {
	b.text = text
	return b
}

// Build returns the text contents
func (b *TextContentsBuilder) Build() (TextContents, error) {
	if b.err != nil {
		return TextContents{}, b.err
	}
	if b.uri == nil {
		return TextContents{}, mcperrors.InvalidParameters("resource contents uri is required")
	}
	return TextContents{URI: b.uri.String(), MimeType: b.mimeType, Text: b.text}, nil
}
