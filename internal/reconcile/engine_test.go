package reconcile

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/receiving-normalizer/internal/batch"
	"github.com/joseph-ayodele/receiving-normalizer/internal/catalog"
	"github.com/joseph-ayodele/receiving-normalizer/internal/common"
)

type stubRecognizer struct {
	texts map[string]string
}

func (s *stubRecognizer) Recognize(_ context.Context, path string) (string, error) {
	return s.texts[path], nil
}

func newEngine(texts map[string]string, names []string) *Engine {
	loader := batch.NewLoader(&stubRecognizer{texts: texts}, 2, nil)
	return NewEngine(loader, catalog.New(names), DefaultConfig(), nil)
}

func TestRunEndToEnd(t *testing.T) {
	e := newEngine(map[string]string{
		"inv_001.jpg": "Black Mamba Distillate 1G   20   24.00   480.00",
		"man_001.jpg": "1A1234ABCDEFGH Black Mamba Distillate 1G   20   01/27/27",
	}, []string{"Black Mamba Distillate 1G"})

	res, err := e.Run(context.Background(), []string{"inv_001.jpg"}, []string{"man_001.jpg"})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	row := res.Rows[0]
	assert.Equal(t, "1A1234ABCDEFGH", row.PackageID)
	assert.Equal(t, "Black Mamba Distillate 1G", row.CatalogProduct)
	assert.Equal(t, "Receiving Room", row.Room)
	assert.Equal(t, "60.00", row.PricePerUnit.StringFixed(2))
	assert.Equal(t, "24.00", row.CostPerUnit.StringFixed(2))
	assert.Equal(t, 20, row.Quantity)
	assert.Equal(t, "01/27/27", row.ExpDate)

	assert.Equal(t, 1, res.InvoiceLines)
	assert.Equal(t, 1, res.ManifestLines)
	assert.Equal(t, 1, res.MatchedRows)
	assert.Equal(t, 1, res.CatalogHits)
}

func TestRunPricingTransformIsExact(t *testing.T) {
	tests := []struct {
		unitPrice string
		want      string
	}{
		{"24.00", "60"},
		{"0.00", "0"},
		{"1", "2.5"},
		{"264.00", "660"},
		{"0.01", "0.025"},
	}

	for _, tt := range tests {
		e := newEngine(map[string]string{
			"inv.jpg": "Some Product   1   " + tt.unitPrice + "   " + tt.unitPrice,
		}, []string{"Some Product"})

		res, err := e.Run(context.Background(), []string{"inv.jpg"}, nil)
		require.NoError(t, err)
		require.Len(t, res.Rows, 1)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(res.Rows[0].PricePerUnit),
			"unit price %s: want %s, got %s", tt.unitPrice, tt.want, res.Rows[0].PricePerUnit)
		assert.True(t, decimal.RequireFromString(tt.unitPrice).Equal(res.Rows[0].CostPerUnit),
			"cost per unit is the invoice price unchanged")
	}
}

func TestRunEmptyManifestsDegradesGracefully(t *testing.T) {
	e := newEngine(map[string]string{
		"inv.jpg": "Black Mamba Distillate 1G   20   24.00   480.00\n" +
			"Sunset OG Flower 1oz  10  264.00  2,640.00",
	}, []string{"Black Mamba Distillate 1G"})

	res, err := e.Run(context.Background(), []string{"inv.jpg"}, nil)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2, "output row count equals invoice record count")

	for _, row := range res.Rows {
		assert.Equal(t, "", row.PackageID)
		assert.Equal(t, "", row.ExpDate)
	}
	assert.Equal(t, 0, res.MatchedRows)
}

func TestRunJoinFanOut(t *testing.T) {
	e := newEngine(map[string]string{
		"inv.jpg": "Black Mamba Distillate 1G   20   24.00   480.00",
		"man.jpg": "1A1111AAAA Black Mamba Distillate 1G   10   01/27/27\n" +
			"1A2222BBBB Black Mamba Distillate 1G   10   02/14/27",
	}, []string{"Black Mamba Distillate 1G"})

	res, err := e.Run(context.Background(), []string{"inv.jpg"}, []string{"man.jpg"})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2, "one output row per matching manifest record")

	assert.Equal(t, "1A1111AAAA", res.Rows[0].PackageID)
	assert.Equal(t, "01/27/27", res.Rows[0].ExpDate)
	assert.Equal(t, "1A2222BBBB", res.Rows[1].PackageID)
	assert.Equal(t, "02/14/27", res.Rows[1].ExpDate)

	// invoice-side fields are duplicated onto both rows, not split
	for _, row := range res.Rows {
		assert.Equal(t, 20, row.Quantity)
		assert.Equal(t, "24.00", row.CostPerUnit.StringFixed(2))
	}
}

func TestRunUnmatchedManifestNameLeavesRowEmpty(t *testing.T) {
	e := newEngine(map[string]string{
		"inv.jpg": "Black Mamba Distillate 1G   20   24.00   480.00",
		"man.jpg": "1A9999ZZZZ Some Other Item   4   03/01/27",
	}, []string{"Black Mamba Distillate 1G"})

	res, err := e.Run(context.Background(), []string{"inv.jpg"}, []string{"man.jpg"})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "", res.Rows[0].PackageID)
	assert.Equal(t, "", res.Rows[0].ExpDate)
}

func TestRunNoCatalogMatchIsNotAnError(t *testing.T) {
	e := newEngine(map[string]string{
		"inv.jpg": "Mystery Item Nobody Catalogued   1   5.00   5.00",
	}, []string{"Black Mamba Distillate 1G"})

	res, err := e.Run(context.Background(), []string{"inv.jpg"}, nil)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "", res.Rows[0].CatalogProduct)
	assert.Equal(t, 0, res.CatalogHits)
}

func TestRunFatalWhenNoInvoiceLines(t *testing.T) {
	e := newEngine(map[string]string{
		"inv.jpg": "nothing parseable here",
		"man.jpg": "1A1234ABCD Black Mamba Distillate 1G   20",
	}, []string{"Black Mamba Distillate 1G"})

	res, err := e.Run(context.Background(), []string{"inv.jpg"}, []string{"man.jpg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoInvoiceLines)
	assert.Nil(t, res, "a fatal run produces no partial output")
}

func TestRunFatalWhenNoInvoiceImages(t *testing.T) {
	e := newEngine(nil, []string{"Black Mamba Distillate 1G"})

	_, err := e.Run(context.Background(), nil, nil)
	assert.ErrorIs(t, err, common.ErrNoInvoiceLines)
}

func TestRunCaseInsensitiveJoin(t *testing.T) {
	e := newEngine(map[string]string{
		"inv.jpg": "BLACK MAMBA DISTILLATE 1G   20   24.00   480.00",
		"man.jpg": "1A1234ABCD black mamba distillate 1g   20   01/27/27",
	}, []string{"Black Mamba Distillate 1G"})

	res, err := e.Run(context.Background(), []string{"inv.jpg"}, []string{"man.jpg"})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "1A1234ABCD", res.Rows[0].PackageID)
}
