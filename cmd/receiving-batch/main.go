package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receiving-normalizer/internal/batch"
	"github.com/joseph-ayodele/receiving-normalizer/internal/catalog"
	"github.com/joseph-ayodele/receiving-normalizer/internal/common"
	"github.com/joseph-ayodele/receiving-normalizer/internal/export"
	"github.com/joseph-ayodele/receiving-normalizer/internal/extract"
	"github.com/joseph-ayodele/receiving-normalizer/internal/ingest"
	"github.com/joseph-ayodele/receiving-normalizer/internal/ocr"
	"github.com/joseph-ayodele/receiving-normalizer/internal/profile"
	"github.com/joseph-ayodele/receiving-normalizer/internal/reconcile"
	repo "github.com/joseph-ayodele/receiving-normalizer/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir         = flag.String("dir", "", "vendor base directory with invoices/, manifests/, catalog/ (overrides env)")
		out         = flag.String("out", "", "output file path (optional, defaults to <base>/output/receiving_normalized.csv)")
		xlsx        = flag.Bool("xlsx", false, "write an XLSX workbook instead of CSV")
		profilePath = flag.String("profile", "", "vendor profile JSON file (optional)")
		workers     = flag.Int("workers", 0, "parallel recognition workers (0 = config default)")
		inmem       = flag.Bool("inmem", false, "use in-memory run ledger instead of the on-disk database")
	)
	flag.Parse()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load configuration; -dir rebuilds the folder convention around it
	cfg := common.LoadConfig()
	if *dir != "" {
		cfg.Dirs = common.DirConfig{
			BaseDir:     *dir,
			InvoiceDir:  filepath.Join(*dir, "invoices"),
			ManifestDir: filepath.Join(*dir, "manifests"),
			CatalogDir:  filepath.Join(*dir, "catalog"),
			OutputDir:   filepath.Join(*dir, "output"),
		}
		cfg.Database.Path = filepath.Join(*dir, "receiving.db")
	}
	if *workers > 0 {
		cfg.Pipeline.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Vendor profile overrides (room, pricing, catalog column, OCR language)
	vendor := filepath.Base(cfg.Dirs.BaseDir)
	engineCfg := reconcile.DefaultConfig()
	engineCfg.Room = cfg.Pipeline.Room
	// Validate already checked these parse to positive decimals
	engineCfg.CostBasis = decimal.RequireFromString(cfg.Pipeline.CostBasis)
	engineCfg.Markup = decimal.RequireFromString(cfg.Pipeline.Markup)
	catalogColumn := cfg.Pipeline.CatalogColumn
	if *profilePath != "" {
		p, err := profile.Load(*profilePath)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		vendor = p.Vendor
		if p.Room != "" {
			engineCfg.Room = p.Room
		}
		if d, ok := p.CostBasisDecimal(); ok {
			engineCfg.CostBasis = d
		}
		if d, ok := p.MarkupDecimal(); ok {
			engineCfg.Markup = d
		}
		if p.CatalogColumn != "" {
			catalogColumn = p.CatalogColumn
		}
		if p.OCRLanguage != "" {
			cfg.OCR.TesseractLang = p.OCRLanguage
		}
		logger.Info("profile loaded", "vendor", vendor, "path", *profilePath)
	}

	// Open the run ledger
	dbPath := cfg.Database.Path
	if *inmem || cfg.Database.InMem {
		dbPath = ""
	}
	db, err := repo.Open(ctx, dbPath)
	if err != nil {
		logger.Error("failed to open run ledger", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("close run ledger", "error", cerr)
		}
	}()
	runs := repo.NewRunRepository(db, logger)

	runID, err := runs.Start(ctx, vendor)
	if err != nil {
		logger.Error("failed to record run start", "error", err)
		os.Exit(1)
	}

	fail := func(msg string, err error) {
		logger.Error(msg, "error", err)
		if ferr := runs.FinishFailure(ctx, runID, err.Error()); ferr != nil {
			logger.Error("failed to record run failure", "error", ferr)
		}
		os.Exit(1)
	}

	// Enumerate source images per category
	invoiceFiles, invStats, err := ingest.ListImages(cfg.Dirs.InvoiceDir)
	if err != nil {
		fail("failed to list invoice images", err)
	}
	manifestFiles, manStats, err := ingest.ListImages(cfg.Dirs.ManifestDir)
	if err != nil {
		fail("failed to list manifest images", err)
	}
	logger.Info("images enumerated",
		"invoice_files", len(invoiceFiles), "invoice_scanned", invStats.Scanned,
		"manifest_files", len(manifestFiles), "manifest_scanned", manStats.Scanned)

	// Load the vendor catalog (fatal on absence, duplication, missing column)
	cat, err := catalog.Load(cfg.Dirs.CatalogDir, catalogColumn, logger)
	if err != nil {
		fail("failed to load catalog", err)
	}

	// Wire recognition and run the engine
	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, logger)
	loader := batch.NewLoader(extract.NewOCRAdapter(extractor), cfg.Pipeline.Workers, logger)
	engine := reconcile.NewEngine(loader, cat, engineCfg, logger)

	res, err := engine.Run(ctx, invoiceFiles, manifestFiles)
	if err != nil {
		fail("reconciliation failed", err)
	}

	// Serialize fully in memory so a failed run never leaves a partial file
	exporter := export.NewService(logger)
	var payload []byte
	outPath := *out
	if *xlsx {
		if outPath == "" {
			outPath = filepath.Join(cfg.Dirs.OutputDir, "receiving_normalized.xlsx")
		}
		payload, err = exporter.BuildXLSX(res.Rows)
	} else {
		if outPath == "" {
			outPath = filepath.Join(cfg.Dirs.OutputDir, "receiving_normalized.csv")
		}
		var buf bytes.Buffer
		err = exporter.WriteCSV(&buf, res.Rows)
		payload = buf.Bytes()
	}
	if err != nil {
		fail("failed to serialize output", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		fail("failed to create output directory", err)
	}
	if err := os.WriteFile(outPath, payload, 0644); err != nil {
		fail("failed to write output file", err)
	}

	if err := runs.FinishSuccess(ctx, runID, repo.RunCounts{
		InvoiceFiles:  len(invoiceFiles),
		ManifestFiles: len(manifestFiles),
		InvoiceLines:  res.InvoiceLines,
		ManifestLines: res.ManifestLines,
		OutputRows:    len(res.Rows),
	}); err != nil {
		logger.Error("failed to record run success", "error", err)
	}

	logger.Info("receiving batch complete",
		"run_id", runID,
		"rows", len(res.Rows),
		"matched_rows", res.MatchedRows,
		"catalog_hits", res.CatalogHits,
		"output_file", outPath)

	fmt.Printf("Wrote %d rows to %s\n", len(res.Rows), outPath)
}
