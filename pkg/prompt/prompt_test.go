package prompt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcperrors "github.com/ajitpratap0/mcp-core-go/pkg/errors"
)

type cityArg struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

func TestBuilderArgumentsKeepOrder(t *testing.T) {
	p, err := NewBuilder("weather").
		Description("Weather report").
		Argument(cityArg{}).
		Argument(0).
		ArgumentSchema(json.RawMessage(`{ "type": "string", "enum": ["c", "f"] }`)).
		Build()
	require.NoError(t, err)

	require.Len(t, p.Arguments, 3)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(p.Arguments[0], &first))
	assert.Equal(t, "object", first["type"])
	assert.Contains(t, first["properties"], "city")

	assert.JSONEq(t, `{"type":"integer"}`, string(p.Arguments[1]))
	assert.Equal(t, `{"type":"string","enum":["c","f"]}`, string(p.Arguments[2]))
}

func TestBuilderWithoutArguments(t *testing.T) {
	p, err := NewBuilder("plain").Build()
	require.NoError(t, err)
	assert.Nil(t, p.Arguments)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"plain"}`, string(data))
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder("").Build()
	assert.True(t, mcperrors.IsInvalidParameters(err))

	_, err = NewBuilder("bad").ArgumentSchema(json.RawMessage(`{"type":"nope"}`)).Build()
	assert.True(t, mcperrors.IsInvalidParameters(err))

	_, err = NewBuilder("bad").Argument(nil).Build()
	require.Error(t, err)
	assert.True(t, mcperrors.IsCategory(err, mcperrors.CategoryInternal))
}

func TestPromptRoundTrip(t *testing.T) {
	prompts := []Prompt{}
	for _, b := range []*Builder{
		NewBuilder("simple"),
		NewBuilder("described").Description("has a description"),
		NewBuilder("templated").Argument(cityArg{}).Argument(""),
	} {
		p, err := b.Build()
		require.NoError(t, err)
		prompts = append(prompts, p)
	}

	for _, p := range prompts {
		data, err := json.Marshal(p)
		require.NoError(t, err)

		var decoded Prompt
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, p, decoded)
	}
}

func TestPromptDecodeRequiresName(t *testing.T) {
	var p Prompt
	err := json.Unmarshal([]byte(`{"description":"x"}`), &p)
	require.Error(t, err)
	assert.True(t, mcperrors.IsInvalidParameters(err))
}

func TestValidateArguments(t *testing.T) {
	p, err := NewBuilder("weather").Argument(cityArg{}).Argument(0).Build()
	require.NoError(t, err)

	assert.NoError(t, p.ValidateArguments(cityArg{City: "Oslo"}, 3))
	assert.NoError(t, p.ValidateArguments(map[string]interface{}{"city": "Oslo", "country": "NO"}, 3))

	tests := []struct {
		name   string
		values []interface{}
	}{
		{"too few", []interface{}{cityArg{City: "Oslo"}}},
		{"too many", []interface{}{cityArg{City: "Oslo"}, 1, 2}},
		{"missing required field", []interface{}{map[string]interface{}{"country": "NO"}, 1}},
		{"wrong type", []interface{}{cityArg{City: "Oslo"}, "three"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.ValidateArguments(tt.values...)
			require.Error(t, err)
			assert.True(t, mcperrors.IsInvalidParameters(err))
		})
	}
}

func TestGetResultRoundTrip(t *testing.T) {
	img, err := NewImageMessage(RoleUser, "YWJj", "image/png")
	require.NoError(t, err)

	result := GetResult{
		Description: "example",
		Messages: []Message{
			NewTextMessage(RoleUser, "What is in this image?"),
			img,
			NewResourceMessage(RoleAssistant, "str:///notes", "text/plain", "notes"),
		},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded GetResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result, decoded)
}

func TestListResult(t *testing.T) {
	p, err := NewBuilder("a").Build()
	require.NoError(t, err)

	data, err := json.Marshal(ListResult{Prompts: []Prompt{p}, NextCursor: "next"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"prompts":[{"name":"a"}],"nextCursor":"next"}`, string(data))
}

func TestNewListResultPages(t *testing.T) {
	var all []Prompt
	for _, name := range []string{"a", "b", "c"} {
		p, err := NewBuilder(name).Build()
		require.NoError(t, err)
		all = append(all, p)
	}

	first, err := NewListResult(all, ListParams{}, 2)
	require.NoError(t, err)
	require.Len(t, first.Prompts, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := NewListResult(all, ListParams{Cursor: first.NextCursor}, 2)
	require.NoError(t, err)
	require.Len(t, second.Prompts, 1)
	assert.Equal(t, "c", second.Prompts[0].Name)
	assert.Empty(t, second.NextCursor)

	_, err = NewListResult(all, ListParams{Cursor: "bogus!"}, 2)
	assert.True(t, mcperrors.IsInvalidParameters(err))
}
