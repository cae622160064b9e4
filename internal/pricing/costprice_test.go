package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostPricesSellSideConvention(t *testing.T) {
	margins := MarginConfig{USDMargin: 0.02, OtherMargin: 0.03}

	prices, err := CostPrices(1280.50, margins, []Currency{USD, EUR})
	require.NoError(t, err)

	assert.InDelta(t, 1280.50*0.98, prices[USD], 1e-9)
	assert.InDelta(t, 1280.50*0.97, prices[EUR], 1e-9)

	// USD and EUR differ by exactly the margin differential.
	assert.InDelta(t, 1280.50*0.01, prices[USD]-prices[EUR], 1e-9)

	// Both at or below the base market rate.
	for currency, price := range prices {
		assert.LessOrEqual(t, price, 1280.50, "cost price for %s above base rate", currency)
	}
}

func TestCostPricesAllSupportedCurrencies(t *testing.T) {
	margins := MarginConfig{USDMargin: 0.02, OtherMargin: 0.03}

	prices, err := CostPrices(1500, margins, SupportedCurrencies)
	require.NoError(t, err)
	require.Len(t, prices, len(SupportedCurrencies))

	for _, currency := range []Currency{EUR, GBP, CAD} {
		assert.InDelta(t, prices[EUR], prices[currency], 1e-9, "non-USD currencies share one margin")
	}
	assert.Less(t, prices[EUR], prices[USD])
}

func TestCostPricesInvalidMargin(t *testing.T) {
	testCases := []struct {
		name    string
		margins MarginConfig
	}{
		{"negative usd margin", MarginConfig{USDMargin: -0.01, OtherMargin: 0.03}},
		{"negative other margin", MarginConfig{USDMargin: 0.02, OtherMargin: -0.5}},
		{"usd margin at 100%", MarginConfig{USDMargin: 1, OtherMargin: 0.03}},
		{"other margin above 100%", MarginConfig{USDMargin: 0.02, OtherMargin: 1.5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CostPrices(1280.50, tc.margins, SupportedCurrencies)
			assert.True(t, errors.Is(err, ErrInvalidMargin), "expected ErrInvalidMargin, got %v", err)
		})
	}
}

func TestCostPricesZeroMarginIsAllowed(t *testing.T) {
	prices, err := CostPrices(1500, MarginConfig{}, []Currency{USD})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, prices[USD])
}

func TestCostPricesIdempotent(t *testing.T) {
	margins := MarginConfig{USDMargin: 0.025, OtherMargin: 0.031}

	first, err := CostPrices(1333.37, margins, SupportedCurrencies)
	require.NoError(t, err)
	second, err := CostPrices(1333.37, margins, SupportedCurrencies)
	require.NoError(t, err)

	// Bit-identical: pure function, no hidden state.
	assert.Equal(t, first, second)
}
