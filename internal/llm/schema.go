package llm

// SchemaName is the name sent with the structured-output constraint.
const SchemaName = "bridge_work"

// BuildBridgeWorkJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// We pass this to OpenAI as a structured output constraint and also use it locally to validate.
// Strict structured outputs require every property to be listed in "required".
func BuildBridgeWorkJSONSchema() map[string]any {
	props := map[string]any{
		"job_number": map[string]any{"type": "string"},
		"proposed_work": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"date": map[string]any{"type": "string"},
	}
	required := []string{"job_number", "proposed_work", "date"}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}
