package resource

import (
	"encoding/json"

	"github.com/ajitpratap0/mcp-core-go/pkg/pagination"
)

// ListResult is the result of a resources/list request
type ListResult struct {
	Resources  []Resource `json:"resources"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// NewListResult returns the page of all selected by params, at most limit
// resources long. An invalid cursor is an invalid-parameters error.
func NewListResult(all []Resource, params pagination.Params, limit int) (ListResult, error) {
	page, next, err := pagination.Paginate(all, params.Cursor, limit)
	if err != nil {
		return ListResult{}, err
	}
	if page == nil {
		page = []Resource{}
	}
	return ListResult{Resources: page, NextCursor: next}, nil
}

// ReadResult is the result of a resources/read request
type ReadResult struct {
	Contents []Content `json:"contents"`
}

// ReadParams are the params of a resources/read request
type ReadParams struct {
	URI string `json:"uri"`
}

// MarshalJSON always writes contents as an array
func (r ReadResult) MarshalJSON() ([]byte, error) {
	contents := r.Contents
	if contents == nil {
		contents = []Content{}
	}
	return json.Marshal(struct {
		Contents []Content `json:"contents"`
	}{contents})
}

// UnmarshalJSON decodes each contents item structurally
func (r *ReadResult) UnmarshalJSON(data []byte) error {
	var wire struct {
		Contents []json.RawMessage `json:"contents"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	contents := make([]Content, 0, len(wire.Contents))
	for _, raw := range wire.Contents {
		c, err := UnmarshalContent(raw)
		if err != nil {
			return err
		}
		contents = append(contents, c)
	}
	r.Contents = contents
	return nil
}
