package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/receiving-normalizer/internal/entity"
)

// Line grammars for recognized text. These are heuristics tied to a column
// alignment assumption: a run of two or more spaces marks a field boundary,
// because column padding is the only structural signal that survives OCR.
// A line that does not match is skipped, never an error; one garbled line
// must not abort a batch.
var (
	// Recognized invoice line, approximately:
	//   Black Mamba Distillate 1G   20   24.00   480.00
	// name, quantity, unit price, line total.
	reInvoiceLine = regexp.MustCompile(
		`^(?P<name>.+?)\s{2,}(?P<qty>\d+)\s+(?P<price>[0-9.,]+)\s+(?P<total>[0-9.,]+)$`)

	// Recognized manifest line, approximately:
	//   1A1234ABC  Black Mamba Distillate 1G   20   01/27/27
	// package ID ("1A" + alphanumerics), item name, quantity, optional date.
	reManifestLine = regexp.MustCompile(
		`^(?P<package_id>1A[A-Z0-9]+).*?(?P<item_name>.+?)\s{2,}(?P<qty>\d+)\s*(?P<exp_date>\d{1,2}/\d{1,2}/\d{2,4})?`)
)

// ParseInvoiceLine parses one trimmed, non-empty line of recognized invoice
// text. Reports ok=false for lines that do not match the grammar or whose
// numeric fields do not parse to non-negative values.
func ParseInvoiceLine(line string) (entity.InvoiceLine, bool) {
	m := reInvoiceLine.FindStringSubmatch(line)
	if m == nil {
		return entity.InvoiceLine{}, false
	}

	name := strings.TrimSpace(m[reInvoiceLine.SubexpIndex("name")])
	qty, err := strconv.Atoi(m[reInvoiceLine.SubexpIndex("qty")])
	if err != nil {
		return entity.InvoiceLine{}, false
	}
	price, ok := parseAmount(m[reInvoiceLine.SubexpIndex("price")])
	if !ok {
		return entity.InvoiceLine{}, false
	}
	total, ok := parseAmount(m[reInvoiceLine.SubexpIndex("total")])
	if !ok {
		return entity.InvoiceLine{}, false
	}

	return entity.InvoiceLine{
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   price,
		LineTotal:   total,
	}, true
}

// ParseManifestLine parses one trimmed, non-empty line of recognized
// manifest text. The expiration date token is optional; its absence is not
// a rejection.
func ParseManifestLine(line string) (entity.ManifestLine, bool) {
	m := reManifestLine.FindStringSubmatch(line)
	if m == nil {
		return entity.ManifestLine{}, false
	}

	qty, err := strconv.Atoi(m[reManifestLine.SubexpIndex("qty")])
	if err != nil {
		return entity.ManifestLine{}, false
	}

	return entity.ManifestLine{
		PackageID: strings.TrimSpace(m[reManifestLine.SubexpIndex("package_id")]),
		ItemName:  strings.TrimSpace(m[reManifestLine.SubexpIndex("item_name")]),
		Quantity:  qty,
		ExpDate:   strings.TrimSpace(m[reManifestLine.SubexpIndex("exp_date")]),
	}, true
}

// parseAmount converts a recognized numeric token like "2,640.00" to a
// decimal. Comma thousands-separators are tolerated; a blank token is zero.
// Anything that does not parse to a non-negative number is rejected.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}
