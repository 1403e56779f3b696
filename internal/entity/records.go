package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceLine is one parsed line item from a recognized invoice image.
// Immutable after extraction.
type InvoiceLine struct {
	SourceID    string // invoice image file name
	LineID      uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// ManifestLine is one parsed package row from a recognized manifest image.
// ExpDate keeps the raw recognized token (M/D/YY or MM/DD/YYYY); it may be
// empty since many manifests omit it.
type ManifestLine struct {
	SourceID  string // manifest image file name
	PackageID string // regulatory tracking code, "1A" prefix
	ItemName  string
	Quantity  int
	ExpDate   string
}

// CatalogEntry is one canonical product from the vendor catalog.
// NormalizedKey is the lowercased, trimmed Name used for matching.
type CatalogEntry struct {
	Name          string
	NormalizedKey string
}

// ReceivingRecord is the final normalized output unit, one per joined row.
// PackageID, CatalogProduct and ExpDate may be empty when the corresponding
// match degraded; that is a valid record, not an error.
type ReceivingRecord struct {
	PackageID      string
	CatalogProduct string
	Room           string
	PricePerUnit   decimal.Decimal
	CostPerUnit    decimal.Decimal
	Quantity       int
	ExpDate        string
}
