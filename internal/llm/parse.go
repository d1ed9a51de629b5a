package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/joseph-ayodele/bridgeplans/internal/common"
)

// ParseBridgeWork turns the model's answer into BridgeWorkFields. The answer
// must be a JSON object matching BuildBridgeWorkJSONSchema; an accidental
// markdown fence or text around the object is tolerated. Every failure wraps
// common.ErrSchemaParse.
func ParseBridgeWork(content string) (BridgeWorkFields, []byte, error) {
	raw, err := parseStructuredJSON(content)
	if err != nil {
		return BridgeWorkFields{}, []byte(content), common.SchemaError(err)
	}
	if err := ValidateBridgeWork(raw); err != nil {
		return BridgeWorkFields{}, raw, common.SchemaError(err)
	}

	var out BridgeWorkFields
	if err := json.Unmarshal(raw, &out); err != nil {
		return BridgeWorkFields{}, raw, common.SchemaError(fmt.Errorf("unmarshal fields: %w", err))
	}
	return out, raw, nil
}

// parseStructuredJSON returns the first candidate (as-is, fence-stripped,
// outermost object) that decodes as JSON.
func parseStructuredJSON(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("empty model output")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONObject(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	var lastErr error
	for _, candidate := range candidates {
		var parsed any
		if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
			lastErr = err
			continue
		}
		return json.RawMessage(candidate), nil
	}
	return nil, fmt.Errorf("model output is not valid JSON: %w", lastErr)
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}
	// drop the opening fence (``` or ```json) and a trailing fence if present
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func extractJSONObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}
