package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildRecordJSONSchema returns a JSON-Schema (draft 2020-12 subset) for
// the extraction record, as a generic map. Parsed records are validated
// against it before being cached.
func BuildRecordJSONSchema() map[string]any {
	row := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"ordinal":       map[string]any{"type": "integer", "minimum": 1},
			"property_name": map[string]any{"type": "string", "minLength": 1},
			"test_method":   map[string]any{"type": "string"},
			"value":         map[string]any{"type": "string"},
		},
		"required": []string{"ordinal", "property_name", "value"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"document_id":  map[string]any{"type": "string", "minLength": 1},
			"product_name": map[string]any{"type": "string"},
			"version":      map[string]any{"type": "string"},
			"approvals":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"properties":   map[string]any{"type": "array", "items": row},
		},
		"required": []string{"document_id", "approvals", "properties"},
	}
}

// ValidateRecordJSON validates encoded record data against the record
// schema.
func ValidateRecordJSON(data []byte) error {
	b, err := json.Marshal(BuildRecordJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
