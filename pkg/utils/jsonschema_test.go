package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exampleArgs struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	IsValid bool   `json:"isValid,omitempty"`
}

func TestGenerateJSONSchema(t *testing.T) {
	schema, err := GenerateJSONSchema(exampleArgs{})
	require.NoError(t, err)

	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(schema, &obj))

	assert.Equal(t, "object", obj["type"])
	assert.NotContains(t, obj, "$schema")
	assert.NotContains(t, obj, "$ref")
	assert.NotContains(t, obj, "$defs")

	props, ok := obj["properties"].(map[string]interface{})
	require.True(t, ok, "properties should be an object")
	assert.Contains(t, props, "name")
	assert.Contains(t, props, "age")
	assert.Contains(t, props, "isValid")

	assert.ElementsMatch(t, []interface{}{"name", "age"}, obj["required"])
}

func TestGenerateJSONSchemaScalar(t *testing.T) {
	schema, err := GenerateJSONSchema("example")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"string"}`, string(schema))
}

func TestGenerateJSONSchemaNil(t *testing.T) {
	_, err := GenerateJSONSchema(nil)
	assert.Error(t, err)
}

func TestCompileSchema(t *testing.T) {
	compact, schema, err := CompileSchema(json.RawMessage(`{ "type" : "integer",  "minimum": 1 }`))
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.Equal(t, `{"type":"integer","minimum":1}`, string(compact))

	_, _, err = CompileSchema(json.RawMessage(`{"type":`))
	assert.Error(t, err)

	_, _, err = CompileSchema(json.RawMessage(`{"type":"not-a-type"}`))
	assert.Error(t, err)
}

func TestValidateAgainstSchema(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {"name": {"type": "string"}, "age": {"type": "integer"}},
		"required": ["name"]
	}`)

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"valid", `{"name":"ada","age":36}`, false},
		{"missing required", `{"age":36}`, true},
		{"wrong type", `{"name":"ada","age":"old"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAgainstSchema(json.RawMessage(tt.data), schema)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateValue(t *testing.T) {
	_, schema, err := CompileSchema(json.RawMessage(`{"type":"string","minLength":2}`))
	require.NoError(t, err)

	assert.NoError(t, ValidateValue(schema, "ok"))
	assert.Error(t, ValidateValue(schema, "x"))
	assert.Error(t, ValidateValue(schema, 42))
}

func TestMergeJSONObjects(t *testing.T) {
	merged, err := MergeJSONObjects(
		json.RawMessage(`{"a":1,"b":2}`),
		json.RawMessage(`{"b":3,"c":4}`),
	)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":3,"c":4}`, string(merged))

	empty, err := MergeJSONObjects()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(empty))

	_, err = MergeJSONObjects(json.RawMessage(`[1]`))
	assert.Error(t, err)
}
