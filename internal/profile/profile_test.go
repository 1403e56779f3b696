package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vendor.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFullProfile(t *testing.T) {
	p, err := Load(writeProfile(t, `{
		"vendor": "Acme Gardens",
		"room": "Intake Bay 2",
		"cost_basis": "0.75",
		"markup": "2.2",
		"catalog_column": "ProductName",
		"ocr_language": "eng"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Acme Gardens", p.Vendor)
	assert.Equal(t, "Intake Bay 2", p.Room)
	assert.Equal(t, "ProductName", p.CatalogColumn)

	cb, ok := p.CostBasisDecimal()
	require.True(t, ok)
	assert.Equal(t, "0.75", cb.String())

	mk, ok := p.MarkupDecimal()
	require.True(t, ok)
	assert.Equal(t, "2.2", mk.String())
}

func TestLoadMinimalProfile(t *testing.T) {
	p, err := Load(writeProfile(t, `{"vendor": "Acme Gardens"}`))
	require.NoError(t, err)

	assert.Equal(t, "Acme Gardens", p.Vendor)
	_, ok := p.CostBasisDecimal()
	assert.False(t, ok, "unset overrides keep the configured default")
	_, ok = p.MarkupDecimal()
	assert.False(t, ok)
}

func TestLoadRejectsInvalidProfiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing vendor", content: `{"room": "Intake Bay 2"}`},
		{name: "empty vendor", content: `{"vendor": ""}`},
		{name: "negative cost basis", content: `{"vendor": "A", "cost_basis": "-0.8"}`},
		{name: "non-numeric markup", content: `{"vendor": "A", "markup": "two"}`},
		{name: "unknown field", content: `{"vendor": "A", "markupp": "2"}`},
		{name: "not json", content: `vendor: A`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeProfile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
