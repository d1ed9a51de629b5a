package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	bridgeWorkOnce   sync.Once
	bridgeWorkSchema *jsonschema.Schema
	bridgeWorkErr    error
)

// CompileSchema compiles a schema map with the jsonschema compiler.
func CompileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	schema, err := CompileSchema(schemaMap)
	if err != nil {
		return err
	}
	return validateWith(schema, data)
}

// ValidateBridgeWork validates data against the bridge-work schema, compiled once per process.
func ValidateBridgeWork(data []byte) error {
	bridgeWorkOnce.Do(func() {
		bridgeWorkSchema, bridgeWorkErr = CompileSchema(BuildBridgeWorkJSONSchema())
	})
	if bridgeWorkErr != nil {
		return bridgeWorkErr
	}
	return validateWith(bridgeWorkSchema, data)
}

func validateWith(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
