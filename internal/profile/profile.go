package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"
)

// Profile is a per-vendor override of the pipeline defaults. All fields but
// Vendor are optional; zero values mean "keep the configured default".
type Profile struct {
	Vendor        string `json:"vendor"`
	Room          string `json:"room,omitempty"`
	CostBasis     string `json:"cost_basis,omitempty"`
	Markup        string `json:"markup,omitempty"`
	CatalogColumn string `json:"catalog_column,omitempty"`
	OCRLanguage   string `json:"ocr_language,omitempty"`
}

// Load reads and validates a vendor profile file. The document must satisfy
// the profile schema; unknown fields are rejected so typos surface early.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if err := validateAgainstSchema(buildProfileJSONSchema(), data); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// CostBasisDecimal parses the cost_basis override; ok=false when unset.
func (p *Profile) CostBasisDecimal() (decimal.Decimal, bool) {
	return parseOptionalDecimal(p.CostBasis)
}

// MarkupDecimal parses the markup override; ok=false when unset.
func (p *Profile) MarkupDecimal() (decimal.Decimal, bool) {
	return parseOptionalDecimal(p.Markup)
}

func parseOptionalDecimal(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsZero() {
		// schema already rejects malformed values; zero would divide by zero
		return decimal.Decimal{}, false
	}
	return d, true
}

// validateAgainstSchema validates "data" against "schemaMap".
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("profile.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("profile.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("profile does not match schema: %w", err)
	}
	return nil
}
