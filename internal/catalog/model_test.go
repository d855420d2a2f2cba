package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnzmnz10/yeter-sub001/internal/fx"
)

func testTable(t *testing.T, rates map[string]float64) fx.Table {
	t.Helper()
	table, err := fx.NewTable("TRY", rates, time.Now())
	require.NoError(t, err)
	return table
}

func TestRepriceBaseCurrencyPassesThrough(t *testing.T) {
	item := Item{ID: 1, Name: "Montaj seti", ListPrice: 1250.75, Currency: "TRY"}
	item.Reprice(testTable(t, map[string]float64{"USD": 41.5}))

	require.NotNil(t, item.ListPriceBase)
	assert.Equal(t, 1250.75, *item.ListPriceBase)
	assert.Nil(t, item.DiscountedPriceBase)
}

func TestRepriceConvertsForeignCurrency(t *testing.T) {
	disc := 90.0
	item := Item{ID: 2, Name: "Kombi", ListPrice: 100, DiscountedPrice: &disc, Currency: "USD"}
	item.Reprice(testTable(t, map[string]float64{"USD": 41.5}))

	require.NotNil(t, item.ListPriceBase)
	assert.InDelta(t, 4150, *item.ListPriceBase, 1e-9)
	require.NotNil(t, item.DiscountedPriceBase)
	assert.InDelta(t, 3735, *item.DiscountedPriceBase, 1e-9)
}

func TestRepriceUnknownCurrencyFailsClosed(t *testing.T) {
	disc := 90.0
	item := Item{ID: 3, Name: "Radyator", ListPrice: 100, DiscountedPrice: &disc, Currency: "GBP"}

	// Seed stale derived values; a refresh that drops the currency must
	// clear them rather than leave them behind.
	stale := 5200.0
	item.ListPriceBase = &stale
	item.DiscountedPriceBase = &stale

	item.Reprice(testTable(t, map[string]float64{"USD": 41.5}))

	assert.Nil(t, item.ListPriceBase)
	assert.Nil(t, item.DiscountedPriceBase)
	assert.False(t, item.PriceAvailable())
}

func TestRepriceDiscountedBaseOnlyWhenDiscountedPresent(t *testing.T) {
	item := Item{ID: 4, Name: "Vana", ListPrice: 10, Currency: "EUR"}
	item.Reprice(testTable(t, map[string]float64{"EUR": 45}))

	require.NotNil(t, item.ListPriceBase)
	assert.Nil(t, item.DiscountedPriceBase)
}
