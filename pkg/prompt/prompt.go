// Package prompt models prompt templates a server offers and the messages a
// rendered prompt is made of.
//
// Image content is validated on every path that produces it (constructors,
// builders and JSON decoding) by ValidateImage, so an invalid ImageContent is
// never observable.
package prompt

import (
	"encoding/json"

	mcperrors "github.com/ajitpratap0/mcp-core-go/pkg/errors"
	"github.com/ajitpratap0/mcp-core-go/pkg/pagination"
	"github.com/ajitpratap0/mcp-core-go/pkg/utils"
)

// Prompt is a prompt or prompt template offered by a server.
// Arguments holds one JSON schema per template parameter, in positional order.
type Prompt struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Arguments   []json.RawMessage `json:"arguments,omitempty"`
}

// UnmarshalJSON decodes a prompt, requiring a name
func (p *Prompt) UnmarshalJSON(data []byte) error {
	type wire Prompt
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Name == "" {
		return mcperrors.InvalidParameters("prompt name is required")
	}
	*p = Prompt(w)
	return nil
}

// ValidateArguments checks values positionally against the argument schemas.
// Exactly one value is expected per schema.
func (p Prompt) ValidateArguments(values ...interface{}) error {
	if len(values) != len(p.Arguments) {
		return mcperrors.InvalidParametersf("prompt %q expects %d arguments, got %d", p.Name, len(p.Arguments), len(values))
	}

	for i, raw := range p.Arguments {
		_, schema, err := utils.CompileSchema(raw)
		if err != nil {
			return mcperrors.InvalidParametersf("argument %d of prompt %q has an invalid schema: %v", i, p.Name, err)
		}
		if err := utils.ValidateValue(schema, values[i]); err != nil {
			return mcperrors.InvalidParametersf("argument %d of prompt %q: %v", i, p.Name, err)
		}
	}
	return nil
}

// Builder constructs a Prompt
type Builder struct {
	prompt Prompt
	err    error
}

// NewBuilder creates a builder for a prompt called name
func NewBuilder(name string) *Builder {
	return &Builder{prompt: Prompt{Name: name}}
}

// Description sets the optional description
func (b *Builder) Description(description string) *Builder {
	b.prompt.Description = description
	return b
}

// Argument appends a schema reflected from the type of example
func (b *Builder) Argument(example interface{}) *Builder {
	schema, err := utils.GenerateJSONSchema(example)
	if err != nil {
		b.setErr(mcperrors.Other(err.Error()))
		return b
	}
	b.prompt.Arguments = append(b.prompt.Arguments, schema)
	return b
}

// ArgumentSchema appends a hand-written schema fragment. The fragment must
// compile as a JSON schema.
func (b *Builder) ArgumentSchema(raw json.RawMessage) *Builder {
	compact, _, err := utils.CompileSchema(raw)
	if err != nil {
		b.setErr(mcperrors.InvalidParameters(err.Error()))
		return b
	}
	b.prompt.Arguments = append(b.prompt.Arguments, compact)
	return b
}

// Build returns the prompt
func (b *Builder) Build() (Prompt, error) {
	if b.err != nil {
		return Prompt{}, b.err
	}
	if b.prompt.Name == "" {
		return Prompt{}, mcperrors.InvalidParameters("prompt name is required")
	}
	p := b.prompt
	if p.Arguments != nil {
		p.Arguments = append([]json.RawMessage(nil), p.Arguments...)
	}
	return p, nil
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// ListResult is the result of a prompts/list request
type ListResult struct {
	Prompts    []Prompt `json:"prompts"`
	NextCursor string   `json:"nextCursor,omitempty"`
}

// NewListResult returns the page of all selected by params
func NewListResult(all []Prompt, params pagination.Params, limit int) (ListResult, error) {
	page, next, err := pagination.Paginate(all, params.Cursor, limit)
	if err != nil {
		return ListResult{}, err
	}
	if page == nil {
		page = []Prompt{}
	}
	return ListResult{Prompts: page, NextCursor: next}, nil
}

// ListParams are the params of a prompts/list request
type ListParams = pagination.Params

// GetParams are the params of a prompts/get request
type GetParams struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments,omitempty"`
}

// GetResult is the result of a prompts/get request
type GetResult struct {
	Description string    `json:"description,omitempty"`
	Messages    []Message `json:"messages"`
}
