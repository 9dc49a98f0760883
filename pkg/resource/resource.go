// Package resource models resources a server exposes and the contents it
// returns when one is read.
//
// A Resource is addressed by an absolute URI. Values are only produced by
// Builder or by decoding, both of which validate the URI and fill the
// defaults, so every Resource already has a MIME type and a name.
package resource

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"path/filepath"
	"strings"

	mcperrors "github.com/ajitpratap0/mcp-core-go/pkg/errors"
)

const (
	// DefaultMimeType is used when no MIME type is given
	DefaultMimeType = "text/plain"
	// DefaultName is used when no name is given and none can be derived from the URI
	DefaultName = "unnamed"
)

// Resource describes a resource in the server's catalog
type Resource struct {
	URI         string `json:"uri"`
	MimeType    string `json:"mimeType"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Scheme returns the scheme of the resource URI, e.g. "file" or "str"
func (r Resource) Scheme() (string, error) {
	u, err := ParseURI(r.URI)
	if err != nil {
		return "", err
	}
	return u.Scheme, nil
}

// UnmarshalJSON decodes a resource, validating its URI and filling defaults
// for an absent MIME type or name
func (r *Resource) UnmarshalJSON(data []byte) error {
	type wire Resource
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.URI == "" {
		return mcperrors.InvalidParameters("resource uri is required")
	}
	u, err := ParseURI(w.URI)
	if err != nil {
		return err
	}
	if w.MimeType == "" {
		w.MimeType = DefaultMimeType
	}
	if w.Name == "" {
		w.Name = NameFromURI(u)
	}
	*r = Resource(w)
	return nil
}

// ParseURI parses an absolute URI. Strings without a scheme are rejected.
func ParseURI(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, mcperrors.InvalidURI(raw, err)
	}
	if u.Scheme == "" {
		return nil, mcperrors.InvalidURI(raw, fmt.Errorf("missing scheme"))
	}
	return u, nil
}

// FromFilePath converts an absolute file system path into a file:// URI
func FromFilePath(path string) (*url.URL, error) {
	if path == "" {
		return nil, mcperrors.InvalidFilePath(path, "path is empty")
	}
	if !filepath.IsAbs(path) {
		return nil, mcperrors.InvalidFilePath(path, "path must be absolute")
	}
	p := filepath.ToSlash(filepath.Clean(path))
	if !strings.HasPrefix(p, "/") {
		// volume names such as C:/ need a leading slash in a URI path
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}, nil
}

// NameFromURI returns the last path segment of u, or DefaultName when the
// URI has no non-empty final segment
func NameFromURI(u *url.URL) string {
	if u == nil || u.Opaque != "" {
		return DefaultName
	}
	p := u.Path
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	if p == "" {
		return DefaultName
	}
	return p
}

// ParseMimeType validates a media type and returns it in canonical form
func ParseMimeType(s string) (string, error) {
	mediaType, params, err := mime.ParseMediaType(s)
	if err != nil {
		return "", mcperrors.InvalidParametersf("invalid MIME type %q: %v", s, err)
	}
	if !strings.Contains(mediaType, "/") {
		return "", mcperrors.InvalidParametersf("invalid MIME type %q: missing subtype", s)
	}
	return mime.FormatMediaType(mediaType, params), nil
}

// Builder constructs a Resource. Setter failures are kept and reported by Build.
type Builder struct {
	uri         *url.URL
	mimeType    string
	name        string
	description string
	err         error
}

// NewBuilder creates an empty resource builder
func NewBuilder() *Builder {
	return &Builder{}
}

// URI sets the resource location
func (b *Builder) URI(u *url.URL) *Builder {
	b.uri = u
	return b
}

// MimeType sets the MIME type. Malformed media types fail the build.
func (b *Builder) MimeType(mimeType string) *Builder {
	canonical, err := ParseMimeType(mimeType)
	if err != nil {
		b.setErr(err)
		return b
	}
	b.mimeType = canonical
	return b
}

// Name sets the display name
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// NameFromURI sets the display name to the last path segment of u
func (b *Builder) NameFromURI(u *url.URL) *Builder {
	b.name = NameFromURI(u)
	return b
}

// Description sets the optional description
func (b *Builder) Description(description string) *Builder {
	b.description = description
	return b
}

// Build validates the collected fields and returns the resource
func (b *Builder) Build() (Resource, error) {
	if b.err != nil {
		return Resource{}, b.err
	}
	if b.uri == nil {
		return Resource{}, mcperrors.InvalidParameters("resource uri is required")
	}
	if b.uri.Scheme == "" {
		return Resource{}, mcperrors.InvalidURI(b.uri.String(), fmt.Errorf("missing scheme"))
	}

	r := Resource{
		URI:         b.uri.String(),
		MimeType:    b.mimeType,
		Name:        b.name,
		Description: b.description,
	}
	if r.MimeType == "" {
		r.MimeType = DefaultMimeType
	}
	if r.Name == "" {
		r.Name = NameFromURI(b.uri)
	}
	return r, nil
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}
