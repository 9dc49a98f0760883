package resource

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcperrors "github.com/ajitpratap0/mcp-core-go/pkg/errors"
)

func mustURI(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := ParseURI(raw)
	require.NoError(t, err)
	return u
}

func TestBuilderDefaults(t *testing.T) {
	r, err := NewBuilder().URI(mustURI(t, "file:///a/b/test.txt")).Build()
	require.NoError(t, err)

	assert.Equal(t, "file:///a/b/test.txt", r.URI)
	assert.Equal(t, "text/plain", r.MimeType)
	assert.Equal(t, "test.txt", r.Name)
	assert.Empty(t, r.Description)
}

func TestBuilderNameFallback(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///a/b/test.txt", "test.txt"},
		{"https://example.com", "unnamed"},
		{"https://example.com/", "unnamed"},
		{"https://example.com/docs/", "unnamed"},
		{"str:hello", "unnamed"},
		{"str:///Hello-world", "Hello-world"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			r, err := NewBuilder().URI(mustURI(t, tt.uri)).Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Name)
		})
	}
}

func TestBuilderExplicitFields(t *testing.T) {
	u := mustURI(t, "https://example.com/data.json")
	r, err := NewBuilder().
		URI(u).
		Name("test-json").
		MimeType("application/json").
		Description("Test JSON resource").
		Build()
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"uri": "https://example.com/data.json",
		"mimeType": "application/json",
		"name": "test-json",
		"description": "Test JSON resource"
	}`, string(data))
}

func TestBuilderNameFromURI(t *testing.T) {
	r, err := NewBuilder().
		URI(mustURI(t, "file:///x/y.bin")).
		NameFromURI(mustURI(t, "file:///other/name.md")).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "name.md", r.Name)
}

func TestBuilderErrors(t *testing.T) {
	t.Run("missing uri", func(t *testing.T) {
		_, err := NewBuilder().Name("x").Build()
		require.Error(t, err)
		assert.True(t, mcperrors.IsInvalidParameters(err))
	})

	t.Run("relative uri", func(t *testing.T) {
		_, err := NewBuilder().URI(&url.URL{Path: "relative"}).Build()
		require.Error(t, err)
		assert.True(t, mcperrors.IsInvalidParameters(err))
	})

	t.Run("malformed mime type", func(t *testing.T) {
		_, err := NewBuilder().URI(mustURI(t, "file:///a")).MimeType("text/").Build()
		require.Error(t, err)
		assert.True(t, mcperrors.IsInvalidParameters(err))
	})

	t.Run("mime type without subtype", func(t *testing.T) {
		_, err := NewBuilder().URI(mustURI(t, "file:///a")).MimeType("text").Build()
		assert.Error(t, err)
	})
}

func TestParseMimeTypeCanonical(t *testing.T) {
	got, err := ParseMimeType("Text/Plain; Charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", got)
}

func TestParseURI(t *testing.T) {
	_, err := ParseURI("not-a-uri")
	require.Error(t, err)
	assert.True(t, mcperrors.IsInvalidParameters(err))

	_, err = ParseURI("http://[::1")
	assert.Error(t, err)

	u, err := ParseURI("str:///content")
	require.NoError(t, err)
	assert.Equal(t, "str", u.Scheme)
}

func TestScheme(t *testing.T) {
	r, err := NewBuilder().URI(mustURI(t, "str:///Hello-world")).Name("test.txt").Build()
	require.NoError(t, err)

	scheme, err := r.Scheme()
	require.NoError(t, err)
	assert.Equal(t, "str", scheme)

	_, err = Resource{URI: "nope"}.Scheme()
	assert.Error(t, err)
}

func TestFromFilePath(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "resource-*.txt")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	u, err := FromFilePath(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "file", u.Scheme)

	r, err := NewBuilder().URI(u).Build()
	require.NoError(t, err)
	assert.Contains(t, r.URI, "file:///")
	assert.Equal(t, filepath.Base(f.Name()), r.Name)

	_, err = FromFilePath("relative/path.txt")
	require.Error(t, err)
	assert.True(t, mcperrors.IsInvalidParameters(err))

	_, err = FromFilePath("")
	assert.Error(t, err)
}

func TestResourceRoundTrip(t *testing.T) {
	r, err := NewBuilder().
		URI(mustURI(t, "https://example.com/data.txt")).
		MimeType("text/plain").
		Name("example-text").
		Description("A plain text file").
		Build()
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded Resource
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r, decoded)
}

func TestResourceDecodeFillsDefaults(t *testing.T) {
	var r Resource
	require.NoError(t, json.Unmarshal([]byte(`{"uri":"file:///docs/readme.md"}`), &r))
	assert.Equal(t, Resource{URI: "file:///docs/readme.md", MimeType: "text/plain", Name: "readme.md"}, r)
}

func TestResourceDecodeRejectsBadURI(t *testing.T) {
	var r Resource
	err := json.Unmarshal([]byte(`{"uri":"no-scheme","name":"x"}`), &r)
	require.Error(t, err)
	assert.True(t, mcperrors.IsInvalidParameters(err))

	err = json.Unmarshal([]byte(`{"name":"x"}`), &r)
	assert.Error(t, err)
}
