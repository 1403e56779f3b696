package profile

// buildProfileJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Vendor profiles are hand-edited files, so validation failures
// should point at the offending field before the pipeline touches any image.
func buildProfileJSONSchema() map[string]any {
	props := map[string]any{
		"vendor":         map[string]any{"type": "string", "minLength": 1},
		"room":           map[string]any{"type": "string", "minLength": 1},
		"cost_basis":     decimalProp(),
		"markup":         decimalProp(),
		"catalog_column": map[string]any{"type": "string", "minLength": 1},
		"ocr_language":   map[string]any{"type": "string", "minLength": 2, "maxLength": 7},
	}
	required := []string{"vendor"}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func decimalProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^\d+(\.\d{1,4})?$`, // pricing constants are never negative
	}
}
