package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	mcperrors "github.com/ajitpratap0/mcp-core-go/pkg/errors"
)

const (
	// DefaultLimit is the page size used when none is given
	DefaultLimit = 50

	// MaxLimit is the largest page size served
	MaxLimit = 200
)

const cursorPrefix = "offset:"

// Params are the params of a list request
type Params struct {
	Cursor string `json:"cursor,omitempty"`
}

// ClampLimit applies DefaultLimit to non-positive limits and caps at MaxLimit
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// EncodeCursor returns the cursor that resumes a listing at offset
func EncodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// DecodeCursor returns the offset a cursor resumes at. The empty cursor is
// the start of the list.
func DecodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, invalidCursor(cursor)
	}
	s := string(raw)
	if !strings.HasPrefix(s, cursorPrefix) {
		return 0, invalidCursor(cursor)
	}
	offset, err := strconv.Atoi(strings.TrimPrefix(s, cursorPrefix))
	if err != nil || offset < 0 {
		return 0, invalidCursor(cursor)
	}
	return offset, nil
}

func invalidCursor(cursor string) error {
	return mcperrors.InvalidParameters(fmt.Sprintf("Invalid cursor %q", cursor)).
		WithData(map[string]string{"cursor": cursor})
}

// Paginate returns the page of items starting at cursor and the cursor of the
// following page, which is empty on the last page. A cursor past the end of
// items is rejected.
func Paginate[T any](items []T, cursor string, limit int) ([]T, string, error) {
	offset, err := DecodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	if offset > len(items) {
		return nil, "", invalidCursor(cursor)
	}

	end := offset + ClampLimit(limit)
	if end >= len(items) {
		return items[offset:], "", nil
	}
	return items[offset:end], EncodeCursor(end), nil
}

// Collector accumulates the pages of a listing
type Collector[T any] struct {
	items      []T
	nextCursor string
	hasMore    bool
	pages      int
}

// NewCollector creates a collector positioned before the first page
func NewCollector[T any]() *Collector[T] {
	return &Collector[T]{hasMore: true}
}

// Update appends a page and records the cursor of the next one
func (c *Collector[T]) Update(items []T, nextCursor string) {
	c.items = append(c.items, items...)
	c.nextCursor = nextCursor
	c.hasMore = nextCursor != ""
	c.pages++
}

// HasMore reports whether another page should be requested
func (c *Collector[T]) HasMore() bool {
	return c.hasMore
}

// NextParams returns the params for the next list request
func (c *Collector[T]) NextParams() Params {
	return Params{Cursor: c.nextCursor}
}

// Items returns everything collected so far
func (c *Collector[T]) Items() []T {
	return c.items
}

// Pages returns the number of pages collected
func (c *Collector[T]) Pages() int {
	return c.pages
}
