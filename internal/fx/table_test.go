package fx

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableForcesBaseToOne(t *testing.T) {
	table, err := NewTable("try", map[string]float64{"TRY": 5, "usd": 40}, time.Now())
	require.NoError(t, err)

	rate, ok := table.Rate("TRY")
	require.True(t, ok)
	assert.Equal(t, 1.0, rate)

	rate, ok = table.Rate("USD")
	require.True(t, ok)
	assert.Equal(t, 40.0, rate)
	assert.Equal(t, "TRY", table.Base())
}

func TestNewTableRejectsBadRates(t *testing.T) {
	cases := map[string]map[string]float64{
		"zero":     {"USD": 0},
		"negative": {"USD": -3},
		"nan":      {"USD": math.NaN()},
		"inf":      {"USD": math.Inf(1)},
	}
	for name, rates := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewTable("TRY", rates, time.Now())
			require.Error(t, err)
		})
	}
}

func TestNewTableRequiresBase(t *testing.T) {
	_, err := NewTable("  ", nil, time.Now())
	require.Error(t, err)
}

func TestTableCurrenciesSorted(t *testing.T) {
	table, err := NewTable("TRY", map[string]float64{"USD": 40, "EUR": 44, "GBP": 50}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"EUR", "GBP", "TRY", "USD"}, table.Currencies())
}

func TestTableRatesReturnsCopy(t *testing.T) {
	table, err := NewTable("TRY", map[string]float64{"USD": 40}, time.Now())
	require.NoError(t, err)

	rates := table.Rates()
	rates["USD"] = 1

	rate, ok := table.Rate("USD")
	require.True(t, ok)
	assert.Equal(t, 40.0, rate)
}

func TestIsKnownCurrency(t *testing.T) {
	assert.True(t, IsKnownCurrency("usd"))
	assert.True(t, IsKnownCurrency(" TRY "))
	assert.False(t, IsKnownCurrency("JPY"))
	assert.False(t, IsKnownCurrency(""))
}
