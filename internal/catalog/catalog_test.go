package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/receiving-normalizer/internal/common"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vendor_catalog.csv",
		"SKU,Product,Price\n"+
			"101,Black Mamba Distillate 1G,24.00\n"+
			"102,Sunset OG Flower 1oz,264.00\n"+
			"103,,0.00\n")

	cat, err := Load(dir, "Product", nil)
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len(), "blank product cells are skipped")

	entries := cat.Entries()
	assert.Equal(t, "Black Mamba Distillate 1G", entries[0].Name)
	assert.Equal(t, "black mamba distillate 1g", entries[0].NormalizedKey)
	assert.Equal(t, "Sunset OG Flower 1oz", entries[1].Name)
}

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetCellValue(sheet, "A1", "Product"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Gelato 33 Cart 0.5G"))
	require.NoError(t, f.SaveAs(filepath.Join(dir, "catalog.xlsx")))

	cat, err := Load(dir, "Product", nil)
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())
	assert.Equal(t, "Gelato 33 Cart 0.5G", cat.Entries()[0].Name)
}

func TestLoadErrors(t *testing.T) {
	t.Run("no source", func(t *testing.T) {
		_, err := Load(t.TempDir(), "Product", nil)
		assert.ErrorIs(t, err, common.ErrNoCatalog)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope"), "Product", nil)
		assert.ErrorIs(t, err, common.ErrNoCatalog)
	})

	t.Run("multiple sources", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "one.csv", "Product\nA\n")
		writeFile(t, dir, "two.csv", "Product\nB\n")
		_, err := Load(dir, "Product", nil)
		assert.ErrorIs(t, err, common.ErrMultipleCatalogs)
	})

	t.Run("missing product column", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "catalog.csv", "SKU,Name\n101,Widget\n")
		_, err := Load(dir, "Product", nil)
		assert.ErrorIs(t, err, common.ErrMissingColumn)
	})

	t.Run("header only", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "catalog.csv", "Product\n")
		_, err := Load(dir, "Product", nil)
		assert.ErrorIs(t, err, common.ErrEmptyCatalog)
	})

	t.Run("non-tabular files ignored", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "readme.txt", "not a catalog")
		_, err := Load(dir, "Product", nil)
		assert.ErrorIs(t, err, common.ErrNoCatalog)
	})
}
