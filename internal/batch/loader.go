package batch

import (
	"context"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/receiving-normalizer/internal/entity"
	"github.com/joseph-ayodele/receiving-normalizer/internal/extract"
)

// Loader runs the text-recognition collaborator across a collection of
// images for one source category and concatenates the extracted records.
// Recognition calls are embarrassingly parallel (no shared mutable state
// across images), so they run under a bounded errgroup; record order still
// follows the input file order so results stay deterministic.
type Loader struct {
	rec     extract.TextRecognizer
	workers int
	logger  *slog.Logger
}

func NewLoader(rec extract.TextRecognizer, workers int, logger *slog.Logger) *Loader {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{rec: rec, workers: workers, logger: logger}
}

// LoadInvoices recognizes every invoice image and extracts line items.
// An empty file list yields an empty result set, not an error. A failed
// recognition call drops that image only; whether the run survives with
// zero invoice lines is the engine's call, not the loader's.
func (l *Loader) LoadInvoices(ctx context.Context, files []string) ([]entity.InvoiceLine, error) {
	texts, err := l.recognizeAll(ctx, files)
	if err != nil {
		return nil, err
	}

	var all []entity.InvoiceLine
	for i, text := range texts {
		recs := extract.InvoiceLines(text, filepath.Base(files[i]))
		l.logger.Debug("batch.invoice.extracted", "source", filepath.Base(files[i]), "lines", len(recs))
		all = append(all, recs...)
	}
	return all, nil
}

// LoadManifests recognizes every manifest image and extracts package rows.
func (l *Loader) LoadManifests(ctx context.Context, files []string) ([]entity.ManifestLine, error) {
	texts, err := l.recognizeAll(ctx, files)
	if err != nil {
		return nil, err
	}

	var all []entity.ManifestLine
	for i, text := range texts {
		recs := extract.ManifestLines(text, filepath.Base(files[i]))
		l.logger.Debug("batch.manifest.extracted", "source", filepath.Base(files[i]), "lines", len(recs))
		all = append(all, recs...)
	}
	return all, nil
}

// recognizeAll fans recognition out across the worker pool and collects the
// raw text per file, index-aligned with files. A per-image recognition
// failure leaves that slot empty and is logged; only context cancellation
// aborts the batch.
func (l *Loader) recognizeAll(ctx context.Context, files []string) ([]string, error) {
	texts := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range files {
		g.Go(func() error {
			text, err := l.rec.Recognize(gctx, path)
			if err != nil {
				if cerr := gctx.Err(); cerr != nil {
					return cerr
				}
				l.logger.Warn("batch.recognize.failed", "path", path, "error", err)
				return nil
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}
