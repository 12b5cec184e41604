package settings

import (
	"encoding/json"
	"fmt"
)

// Merge overlays a stored settings document onto the defaults. The merge is
// leaf-level: wherever the stored file has a value it wins, and every leaf
// it lacks keeps the default. Objects recurse; anything else (including
// null) is a leaf.
func Merge(defaults Settings, stored []byte) (Settings, error) {
	base, err := json.Marshal(defaults)
	if err != nil {
		return defaults, fmt.Errorf("failed to marshal defaults: %w", err)
	}

	merged := mergeValues(base, stored)

	var out Settings
	if err := json.Unmarshal(merged, &out); err != nil {
		return defaults, fmt.Errorf("failed to parse merged settings: %w", err)
	}

	return out, nil
}

// mergeValues merges two raw JSON values. Both must be objects for the
// merge to recurse; in every other case the override value replaces the
// base wholesale.
func mergeValues(base, override json.RawMessage) json.RawMessage {
	if !isJSONObject(base) || !isJSONObject(override) {
		return override
	}

	var baseObj, overObj map[string]json.RawMessage
	if err := json.Unmarshal(base, &baseObj); err != nil {
		return override
	}
	if err := json.Unmarshal(override, &overObj); err != nil {
		return base
	}

	merged := make(map[string]json.RawMessage, len(baseObj)+len(overObj))
	for k, v := range baseObj {
		merged[k] = v
	}
	for k, v := range overObj {
		if prev, ok := merged[k]; ok {
			merged[k] = mergeValues(prev, v)
		} else {
			merged[k] = v
		}
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return override
	}
	return out
}

// isJSONObject reports whether a raw value starts with '{'
func isJSONObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '{'
		}
	}
	return false
}
