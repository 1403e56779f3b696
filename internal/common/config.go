package common

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Dirs     DirConfig
	Database DatabaseConfig
	OCR      OCRConfig
	Pipeline PipelineConfig
}

// DirConfig holds the per-vendor folder convention rooted at BaseDir.
type DirConfig struct {
	BaseDir     string
	InvoiceDir  string
	ManifestDir string
	CatalogDir  string
	OutputDir   string
}

// DatabaseConfig holds run-ledger database configuration
type DatabaseConfig struct {
	Path  string
	InMem bool
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract     string
	TesseractLang string
	TessdataDir   string
}

// PipelineConfig holds reconciliation defaults; a vendor profile may
// override these per run.
type PipelineConfig struct {
	Room          string
	CostBasis     string // divisor in the price transform, e.g. "0.8"
	Markup        string // multiplier in the price transform, e.g. "2"
	CatalogColumn string
	Workers       int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	base := getEnv("RECEIVING_BASE_DIR", "./receiving_workdir")
	return &Config{
		Dirs: DirConfig{
			BaseDir:     base,
			InvoiceDir:  getEnv("RECEIVING_INVOICE_DIR", filepath.Join(base, "invoices")),
			ManifestDir: getEnv("RECEIVING_MANIFEST_DIR", filepath.Join(base, "manifests")),
			CatalogDir:  getEnv("RECEIVING_CATALOG_DIR", filepath.Join(base, "catalog")),
			OutputDir:   getEnv("RECEIVING_OUTPUT_DIR", filepath.Join(base, "output")),
		},
		Database: DatabaseConfig{
			Path:  getEnv("RECEIVING_DB_PATH", filepath.Join(base, "receiving.db")),
			InMem: getEnvAsBool("RECEIVING_DB_INMEM", false),
		},
		OCR: OCRConfig{
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
		},
		Pipeline: PipelineConfig{
			Room:          getEnv("RECEIVING_ROOM", "Receiving Room"),
			CostBasis:     getEnv("RECEIVING_COST_BASIS", "0.8"),
			Markup:        getEnv("RECEIVING_MARKUP", "2"),
			CatalogColumn: getEnv("RECEIVING_CATALOG_COLUMN", "Product"),
			Workers:       getEnvAsInt("RECEIVING_WORKERS", 4),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Dirs.BaseDir == "" {
		return NewAppError("CONFIG_ERROR", "RECEIVING_BASE_DIR is required", ErrInvalidInput)
	}
	if c.Pipeline.Room == "" {
		return NewAppError("CONFIG_ERROR", "RECEIVING_ROOM must not be empty", ErrInvalidInput)
	}
	if c.Pipeline.Workers < 1 {
		return NewAppError("CONFIG_ERROR", "RECEIVING_WORKERS must be >= 1", ErrInvalidInput)
	}
	if d, err := decimal.NewFromString(c.Pipeline.CostBasis); err != nil || !d.IsPositive() {
		return NewAppError("CONFIG_ERROR", "RECEIVING_COST_BASIS must be a positive decimal", ErrInvalidInput)
	}
	if d, err := decimal.NewFromString(c.Pipeline.Markup); err != nil || !d.IsPositive() {
		return NewAppError("CONFIG_ERROR", "RECEIVING_MARKUP must be a positive decimal", ErrInvalidInput)
	}
	return nil
}
