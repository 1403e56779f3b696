package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPrefixContainment(t *testing.T) {
	cat := New([]string{
		"Black Mamba Distillate 1G",
		"Black Mamba Live Resin 1G",
	})

	// first 15 chars of the normalized query are "black mamba dis",
	// which only the distillate key contains
	got := cat.Match("Black Mamba Distillate 1G - Batch 42")
	assert.Equal(t, "Black Mamba Distillate 1G", got)
}

func TestMatchPrefixAnywhereInKey(t *testing.T) {
	cat := New([]string{"Premium Sunset OG Flower 1oz"})

	// containment is a substring test, not a HasPrefix test: the query
	// prefix may land mid-key when the catalog name carries extra lead-in
	got := cat.Match("Sunset OG Flower 1oz")
	assert.Equal(t, "Premium Sunset OG Flower 1oz", got)
}

func TestMatchFirstHitWinsInRowOrder(t *testing.T) {
	cat := New([]string{
		"Black Mamba Distillate 1G",
		"Black Mamba Distillate 1G (promo)",
	})

	got := cat.Match("Black Mamba Distillate 1G")
	assert.Equal(t, "Black Mamba Distillate 1G", got)
}

func TestMatchShortCanonicalName(t *testing.T) {
	// already-canonical short names resolve after normalization alone
	cat := New([]string{"OG Kush", "OG Kush Premium Reserve Indoor"})

	got := cat.Match("  OG KUSH ")
	assert.Equal(t, "OG Kush", got)
}

func TestMatchNoMatchSentinel(t *testing.T) {
	cat := New([]string{"Black Mamba Distillate 1G"})

	assert.Equal(t, "", cat.Match("Completely Different Product"))
	assert.Equal(t, "", cat.Match(""))
	assert.Equal(t, "", cat.Match("   "))
}

func TestMatchShortQueryUsesWholeQueryAsPrefix(t *testing.T) {
	cat := New([]string{"Gelato 33 Cart 0.5G"})

	// 9-rune query, shorter than the prefix window; containment still applies
	assert.Equal(t, "Gelato 33 Cart 0.5G", cat.Match("Gelato 33"))
}
