package reconcile

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receiving-normalizer/internal/batch"
	"github.com/joseph-ayodele/receiving-normalizer/internal/catalog"
	"github.com/joseph-ayodele/receiving-normalizer/internal/common"
	"github.com/joseph-ayodele/receiving-normalizer/internal/entity"
)

// Config carries the per-run pipeline constants. These were module-level
// globals in earlier tooling; passing them in keeps multi-vendor runs free
// of process-wide state.
type Config struct {
	// Room is the fixed receiving location stamped on every output row.
	Room string
	// CostBasis and Markup define the retail price transform
	// PricePerUnit = (UnitPrice / CostBasis) * Markup.
	CostBasis decimal.Decimal
	Markup    decimal.Decimal
}

// DefaultConfig returns the standard receiving workflow constants.
func DefaultConfig() Config {
	return Config{
		Room:      "Receiving Room",
		CostBasis: decimal.RequireFromString("0.8"),
		Markup:    decimal.NewFromInt(2),
	}
}

// Engine joins invoice records to manifest records by normalized name,
// enriches them against the catalog, and assembles the normalized record
// set. Three sequential stages, no branching back: extraction, join,
// enrichment/assembly.
type Engine struct {
	loader *batch.Loader
	cat    *catalog.Catalog
	cfg    Config
	logger *slog.Logger
}

// Result is one completed reconciliation, plus per-stage counts for the run
// ledger and operator logs.
type Result struct {
	Rows          []entity.ReceivingRecord
	InvoiceLines  int
	ManifestLines int
	MatchedRows   int // output rows that found a manifest package
	CatalogHits   int // output rows that found a canonical catalog name
}

func NewEngine(loader *batch.Loader, cat *catalog.Catalog, cfg Config, logger *slog.Logger) *Engine {
	if cfg.Room == "" {
		cfg.Room = DefaultConfig().Room
	}
	if cfg.CostBasis.IsZero() {
		cfg.CostBasis = DefaultConfig().CostBasis
	}
	if cfg.Markup.IsZero() {
		cfg.Markup = DefaultConfig().Markup
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{loader: loader, cat: cat, cfg: cfg, logger: logger}
}

// joinedRow is one invoice line paired with at most one manifest match.
type joinedRow struct {
	inv       entity.InvoiceLine
	packageID string
	expDate   string
}

// Run executes the full pipeline over the given image sets. Zero invoice
// lines aborts the run; zero manifest lines degrades gracefully, leaving
// package and expiration fields empty on every row.
func (e *Engine) Run(ctx context.Context, invoiceFiles, manifestFiles []string) (*Result, error) {
	// Stage 1: extraction. The two categories are independent.
	invoices, err := e.loader.LoadInvoices(ctx, invoiceFiles)
	if err != nil {
		return nil, common.WrapError(err, "load invoices")
	}
	manifests, err := e.loader.LoadManifests(ctx, manifestFiles)
	if err != nil {
		return nil, common.WrapError(err, "load manifests")
	}
	if len(invoices) == 0 {
		return nil, common.NewAppError("EXTRACTION_ERROR",
			"no invoice line items extracted; check that invoice images exist and OCR text matches the line grammar",
			common.ErrNoInvoiceLines)
	}
	e.logger.Info("engine.extract.ok",
		"invoice_lines", len(invoices),
		"manifest_lines", len(manifests),
	)

	// Stage 2: left outer join on normalized names. Every invoice line is
	// retained; an invoice line with several matching manifest rows fans
	// out into one joined row per match.
	joined := joinByName(invoices, manifests)

	// Stage 3: enrichment and assembly, in join order.
	res := &Result{
		InvoiceLines:  len(invoices),
		ManifestLines: len(manifests),
		Rows:          make([]entity.ReceivingRecord, 0, len(joined)),
	}
	for _, row := range joined {
		catalogName := e.cat.Match(row.inv.ProductName)
		if catalogName != "" {
			res.CatalogHits++
		}
		if row.packageID != "" {
			res.MatchedRows++
		}
		res.Rows = append(res.Rows, entity.ReceivingRecord{
			PackageID:      row.packageID,
			CatalogProduct: catalogName,
			Room:           e.cfg.Room,
			PricePerUnit:   e.pricePerUnit(row.inv.UnitPrice),
			CostPerUnit:    row.inv.UnitPrice,
			Quantity:       row.inv.Quantity,
			ExpDate:        row.expDate,
		})
	}

	e.logger.Info("engine.assemble.ok",
		"rows", len(res.Rows),
		"matched_rows", res.MatchedRows,
		"catalog_hits", res.CatalogHits,
	)
	return res, nil
}

// pricePerUnit applies the fixed retail transform. Decimal arithmetic keeps
// it exact: 24.00 -> 60.00, never 59.999....
func (e *Engine) pricePerUnit(unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Div(e.cfg.CostBasis).Mul(e.cfg.Markup)
}

// joinByName indexes manifest rows by normalized item name in first-seen
// order, then walks invoices in extraction order emitting one joined row
// per matching manifest record, or a single unmatched row when the name has
// no manifest counterpart.
func joinByName(invoices []entity.InvoiceLine, manifests []entity.ManifestLine) []joinedRow {
	index := make(map[string][]entity.ManifestLine, len(manifests))
	for _, m := range manifests {
		key := entity.NormalizeName(m.ItemName)
		index[key] = append(index[key], m)
	}

	var joined []joinedRow
	for _, inv := range invoices {
		matches := index[entity.NormalizeName(inv.ProductName)]
		if len(matches) == 0 {
			joined = append(joined, joinedRow{inv: inv})
			continue
		}
		for _, m := range matches {
			joined = append(joined, joinedRow{inv: inv, packageID: m.PackageID, expDate: m.ExpDate})
		}
	}
	return joined
}
