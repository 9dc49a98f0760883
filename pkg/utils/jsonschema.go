// Package utils holds JSON Schema helpers shared by the content packages and
// a goroutine leak check used by concurrent tests.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// GenerateJSONSchema reflects a JSON Schema from an example Go value.
// The schema is inlined (no $defs references) and carries no $schema member,
// so it can be embedded as a fragment inside another document.
func GenerateJSONSchema(v interface{}) (json.RawMessage, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot generate schema for nil value")
	}

	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	schema := r.Reflect(v)
	schema.Version = ""

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// CompileSchema checks that raw is a well-formed JSON Schema and returns it compacted
func CompileSchema(raw json.RawMessage) (json.RawMessage, *gojsonschema.Schema, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, nil, fmt.Errorf("invalid schema JSON: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(buf.Bytes()))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid schema: %w", err)
	}
	return buf.Bytes(), schema, nil
}

// ValidateAgainstSchema validates a JSON document against a JSON schema.
// All violations are joined into a single error.
func ValidateAgainstSchema(data json.RawMessage, schema json.RawMessage) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return resultError(result)
}

// ValidateValue marshals v and validates it against a compiled schema
func ValidateValue(schema *gojsonschema.Schema, v interface{}) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(v))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return resultError(result)
}

func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// MergeJSONObjects merges multiple JSON objects, with later objects taking precedence
func MergeJSONObjects(objects ...json.RawMessage) (json.RawMessage, error) {
	if len(objects) == 0 {
		return json.RawMessage("{}"), nil
	}

	result := make(map[string]interface{})
	for _, obj := range objects {
		var current map[string]interface{}
		if err := json.Unmarshal(obj, &current); err != nil {
			return nil, fmt.Errorf("failed to unmarshal object: %w", err)
		}
		for k, v := range current {
			result[k] = v
		}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal merged object: %w", err)
	}
	return data, nil
}
