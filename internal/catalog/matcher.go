package catalog

import (
	"strings"

	"github.com/joseph-ayodele/receiving-normalizer/internal/entity"
)

// matchPrefixLen is how much of the normalized query the containment pass
// uses. OCR garbles the tail of long product names far more often than the
// head, so the first 15 characters are the reliable part.
const matchPrefixLen = 15

// Match maps a free-text product description to its canonical catalog name,
// or "" when nothing corresponds. No-match is a sentinel, not an error.
//
// First match wins, in catalog row order:
//  1. containment pass: the first 15 runes of the normalized query appear
//     as a substring anywhere inside an entry's normalized key;
//  2. exact fallback: the full normalized query equals a normalized key,
//     which recovers short names for which the prefix pass is overly
//     permissive.
func (c *Catalog) Match(query string) string {
	norm := entity.NormalizeName(query)
	if norm == "" {
		return ""
	}

	prefix := norm
	if r := []rune(norm); len(r) > matchPrefixLen {
		prefix = string(r[:matchPrefixLen])
	}

	for _, e := range c.entries {
		if strings.Contains(e.NormalizedKey, prefix) {
			return e.Name
		}
	}
	for _, e := range c.entries {
		if e.NormalizedKey == norm {
			return e.Name
		}
	}
	return ""
}
