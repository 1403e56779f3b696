package catalog

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/receiving-normalizer/constants"
	"github.com/joseph-ayodele/receiving-normalizer/internal/common"
	"github.com/joseph-ayodele/receiving-normalizer/internal/entity"
)

// Catalog is the vendor reference catalog, loaded once per run and read-only
// for the duration of reconciliation. Entry order follows source row order;
// the matcher's first-match tie-break depends on it.
type Catalog struct {
	entries []entity.CatalogEntry
}

func (c *Catalog) Len() int                       { return len(c.entries) }
func (c *Catalog) Entries() []entity.CatalogEntry { return c.entries }

// New builds a catalog from canonical names in the given order. Load is the
// normal path; New serves callers that assemble entries programmatically.
func New(names []string) *Catalog {
	entries := make([]entity.CatalogEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, entity.CatalogEntry{
			Name:          n,
			NormalizedKey: entity.NormalizeName(n),
		})
	}
	return &Catalog{entries: entries}
}

// Load reads the single vendor catalog from dir. Exactly one tabular source
// (.csv or .xlsx) must be present and it must carry the canonical product
// column; anything else is a load-time error, fatal before any output.
func Load(dir, column string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if column == "" {
		column = "Product"
	}

	sources, err := listSources(dir)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, common.NewAppError("CATALOG_ERROR", fmt.Sprintf("no catalog source in %s", dir), common.ErrNoCatalog)
	}
	if len(sources) > 1 {
		return nil, common.NewAppError("CATALOG_ERROR", fmt.Sprintf("%d catalog sources in %s", len(sources), dir), common.ErrMultipleCatalogs)
	}

	path := sources[0]
	var rows [][]string
	switch constants.NormalizeExt(filepath.Ext(path)) {
	case "csv":
		rows, err = readCSV(path)
	case "xlsx":
		rows, err = readXLSX(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	entries, err := buildEntries(rows, column)
	if err != nil {
		return nil, err
	}

	logger.Info("catalog.loaded", "path", path, "entries", len(entries))
	return &Catalog{entries: entries}, nil
}

func listSources(dir string) ([]string, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var sources []string
	for _, e := range dirents {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		switch constants.NormalizeExt(filepath.Ext(e.Name())) {
		case "csv", "xlsx":
			sources = append(sources, filepath.Join(dir, e.Name()))
		}
	}
	return sources, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// buildEntries locates the canonical product column in the header row and
// materializes one entry per non-empty data cell, preserving row order.
func buildEntries(rows [][]string, column string) ([]entity.CatalogEntry, error) {
	if len(rows) == 0 {
		return nil, common.NewAppError("CATALOG_ERROR", "catalog source is empty", common.ErrEmptyCatalog)
	}

	col := -1
	for i, h := range rows[0] {
		if strings.TrimSpace(h) == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, common.NewAppError("CATALOG_ERROR", fmt.Sprintf("catalog must have a %q column", column), common.ErrMissingColumn)
	}

	var entries []entity.CatalogEntry
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[col])
		if name == "" {
			continue
		}
		entries = append(entries, entity.CatalogEntry{
			Name:          name,
			NormalizedKey: entity.NormalizeName(name),
		})
	}
	if len(entries) == 0 {
		return nil, common.NewAppError("CATALOG_ERROR", "catalog has no product rows", common.ErrEmptyCatalog)
	}
	return entries, nil
}
