package prompt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	mcperrors "github.com/ajitpratap0/mcp-core-go/pkg/errors"
	"github.com/ajitpratap0/mcp-core-go/pkg/resource"
)

// Validation messages reported for image content
const (
	MsgInvalidImageData = "Image data must be valid base64"
	MsgInvalidImageMime = "MIME type must be a valid image type (e.g. image/jpeg)"
)

// ContentType is the wire tag of a prompt message content
type ContentType string

const (
	ContentTypeText     ContentType = "text"
	ContentTypeImage    ContentType = "image"
	ContentTypeResource ContentType = "resource"
)

// Content is the body of a prompt message: TextContent, ImageContent or
// ResourceContent. It is encoded with a "type" member naming the variant.
type Content interface {
	Type() ContentType
	isContent()
}

// TextContent is plain text
type TextContent struct {
	Text string `json:"text"`
}

// ImageContent is a base64 encoded image
type ImageContent struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

// EmbeddedResource wraps the text contents of a server-side resource
type EmbeddedResource struct {
	Resource resource.TextContents `json:"resource"`
}

// UnmarshalJSON decodes the wrapper, requiring the inner resource member
func (e *EmbeddedResource) UnmarshalJSON(data []byte) error {
	var w struct {
		Resource *resource.TextContents `json:"resource"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Resource == nil {
		return mcperrors.InvalidParameters("embedded resource requires resource")
	}
	e.Resource = *w.Resource
	return nil
}

// ResourceContent embeds a resource in a prompt message
type ResourceContent struct {
	Resource EmbeddedResource `json:"resource"`
}

func (TextContent) Type() ContentType     { return ContentTypeText }
func (ImageContent) Type() ContentType    { return ContentTypeImage }
func (ResourceContent) Type() ContentType { return ContentTypeResource }

func (TextContent) isContent()     {}
func (ImageContent) isContent()    {}
func (ResourceContent) isContent() {}

// DefaultContent is the content a message has before any is set: empty text
func DefaultContent() Content {
	return TextContent{}
}

// ValidateImage checks the image invariants shared by every construction
// path: data is standard base64 and the MIME type starts with "image/".
func ValidateImage(data, mimeType string) error {
	// the decoder skips line breaks; standard base64 has none
	if strings.ContainsAny(data, "\r\n") {
		return mcperrors.InvalidParameters(MsgInvalidImageData)
	}
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return mcperrors.InvalidParameters(MsgInvalidImageData)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return mcperrors.InvalidParameters(MsgInvalidImageMime)
	}
	return nil
}

// NewImageContent creates image content after validating it
func NewImageContent(data, mimeType string) (ImageContent, error) {
	if err := ValidateImage(data, mimeType); err != nil {
		return ImageContent{}, err
	}
	return ImageContent{Data: data, MimeType: mimeType}, nil
}

// Bytes decodes the image data
func (c ImageContent) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(c.Data)
	if err != nil {
		return nil, mcperrors.InvalidParameters(MsgInvalidImageData)
	}
	return data, nil
}

// ImageContentBuilder constructs ImageContent
type ImageContentBuilder struct {
	data     string
	mimeType string
}

// NewImageContentBuilder creates an empty image builder
func NewImageContentBuilder() *ImageContentBuilder {
	return &ImageContentBuilder{}
}

// Data sets the base64 encoded image
func (b *ImageContentBuilder) Data(data string) *ImageContentBuilder {
	b.data = data
	return b
}

// MimeType sets the image MIME type
func (b *ImageContentBuilder) MimeType(mimeType string) *ImageContentBuilder {
	b.mimeType = mimeType
	return b
}

// Build validates and returns the image
func (b *ImageContentBuilder) Build() (ImageContent, error) {
	return NewImageContent(b.data, b.mimeType)
}

// NewResourceContent embeds text resource contents as prompt content.
// The text is taken verbatim.
func NewResourceContent(contents resource.TextContents) ResourceContent {
	return ResourceContent{Resource: EmbeddedResource{Resource: contents}}
}

// normalizeContent returns c as a value variant, the form decoding
// produces, after applying the invariants of its variant
func normalizeContent(c Content) (Content, error) {
	missing := mcperrors.InvalidParameters("content is required")
	switch v := c.(type) {
	case nil:
		return nil, missing
	case *TextContent:
		if v == nil {
			return nil, missing
		}
		return *v, nil
	case *ImageContent:
		if v == nil {
			return nil, missing
		}
		return normalizeContent(*v)
	case *ResourceContent:
		if v == nil {
			return nil, missing
		}
		return *v, nil
	case ImageContent:
		if err := ValidateImage(v.Data, v.MimeType); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MarshalJSON encodes the content with its type tag
func (c TextContent) MarshalJSON() ([]byte, error) {
	type wire TextContent
	return json.Marshal(struct {
		Type ContentType `json:"type"`
		wire
	}{ContentTypeText, wire(c)})
}

// MarshalJSON encodes the content with its type tag. Invalid image data
// or MIME type is an error.
func (c ImageContent) MarshalJSON() ([]byte, error) {
	if err := ValidateImage(c.Data, c.MimeType); err != nil {
		return nil, err
	}
	type wire ImageContent
	return json.Marshal(struct {
		Type ContentType `json:"type"`
		wire
	}{ContentTypeImage, wire(c)})
}

// MarshalJSON encodes the content with its type tag
func (c ResourceContent) MarshalJSON() ([]byte, error) {
	type wire ResourceContent
	return json.Marshal(struct {
		Type ContentType `json:"type"`
		wire
	}{ContentTypeResource, wire(c)})
}

// UnmarshalContent decodes a tagged content object. Image content is
// validated exactly as it is on construction.
func UnmarshalContent(data []byte) (Content, error) {
	var tag struct {
		Type *ContentType `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode prompt content: %w", err)
	}
	if tag.Type == nil {
		return nil, mcperrors.InvalidParameters("prompt content type is required")
	}

	switch *tag.Type {
	case ContentTypeText:
		var w struct {
			Text *string `json:"text"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("decode text content: %w", err)
		}
		if w.Text == nil {
			return nil, mcperrors.InvalidParameters("text content requires text")
		}
		return TextContent{Text: *w.Text}, nil

	case ContentTypeImage:
		var w struct {
			Data     *string `json:"data"`
			MimeType *string `json:"mimeType"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("decode image content: %w", err)
		}
		if w.Data == nil || w.MimeType == nil {
			return nil, mcperrors.InvalidParameters("image content requires data and mimeType")
		}
		return NewImageContent(*w.Data, *w.MimeType)

	case ContentTypeResource:
		var w struct {
			Resource *EmbeddedResource `json:"resource"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("decode resource content: %w", err)
		}
		if w.Resource == nil {
			return nil, mcperrors.InvalidParameters("resource content requires resource")
		}
		return ResourceContent{Resource: *w.Resource}, nil
	}

	return nil, mcperrors.InvalidParametersf("unknown prompt content type %q", *tag.Type)
}
