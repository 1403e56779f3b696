package extract

import (
	"context"

	"github.com/joseph-ayodele/receiving-normalizer/internal/ocr"
)

// OCRAdapter exposes the tesseract extractor as a TextRecognizer.
type OCRAdapter struct {
	e *ocr.Extractor
}

func NewOCRAdapter(e *ocr.Extractor) *OCRAdapter {
	return &OCRAdapter{e: e}
}

func (a *OCRAdapter) Recognize(ctx context.Context, path string) (string, error) {
	r, err := a.e.Extract(ctx, path)
	return r.Text, err
}
