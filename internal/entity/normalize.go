package entity

import "strings"

// NormalizeName lowercases and trims a free-text product name. It is the
// single join/match key used across invoice-manifest joining and catalog
// matching; both sides must go through the same function.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
