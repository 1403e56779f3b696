package extract

import (
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/receiving-normalizer/internal/entity"
)

// InvoiceLines extracts structured line items from one block of recognized
// invoice text, tagging each with sourceID (the image file name). A block
// that yields zero records is a valid outcome, not an error.
func InvoiceLines(text, sourceID string) []entity.InvoiceLine {
	var out []entity.InvoiceLine
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		rec, ok := ParseInvoiceLine(line)
		if !ok {
			continue
		}
		rec.SourceID = sourceID
		rec.LineID = uuid.New()
		out = append(out, rec)
	}
	return out
}

// ManifestLines extracts package rows from one block of recognized manifest
// text, tagging each with sourceID.
func ManifestLines(text, sourceID string) []entity.ManifestLine {
	var out []entity.ManifestLine
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		rec, ok := ParseManifestLine(line)
		if !ok {
			continue
		}
		rec.SourceID = sourceID
		out = append(out, rec)
	}
	return out
}
