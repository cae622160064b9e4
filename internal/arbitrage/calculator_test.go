package arbitrage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateKnownValues(t *testing.T) {
	result, err := Calculate(100, 1500, 1480, 1)
	require.NoError(t, err)

	assert.InDelta(t, 100.0/1500.0, result.USDTEquivalent, 1e-9)
	assert.InDelta(t, 100.0, result.TotalReceived, 1e-9)
	assert.InDelta(t, (100.0/1500.0)*1480.0, result.TotalCost, 1e-9)
	assert.InDelta(t, 100.0-(100.0/1500.0)*1480.0, result.Profit, 1e-9)
	assert.InDelta(t, 1.3333333, result.Profit, 1e-6)
}

func TestCalculateZeroAmount(t *testing.T) {
	result, err := Calculate(0, 1500, 1480, 1)
	require.NoError(t, err)
	assert.Equal(t, Result{}, result)
}

func TestCalculateReferenceRateScalesOutputs(t *testing.T) {
	base, err := Calculate(250, 1520, 1490, 1)
	require.NoError(t, err)
	scaled, err := Calculate(250, 1520, 1490, 2)
	require.NoError(t, err)

	assert.InDelta(t, base.USDTEquivalent, scaled.USDTEquivalent, 1e-9)
	assert.InDelta(t, base.TotalReceived*2, scaled.TotalReceived, 1e-9)
	assert.InDelta(t, base.TotalCost*2, scaled.TotalCost, 1e-9)
	assert.InDelta(t, base.Profit*2, scaled.Profit, 1e-9)
}

func TestCalculateInvalidInputs(t *testing.T) {
	testCases := []struct {
		name           string
		customerAmount float64
		rateSold       float64
		wantErr        error
	}{
		{"zero rate sold", 100, 0, ErrInvalidRate},
		{"negative rate sold", 100, -1500, ErrInvalidRate},
		{"negative amount", -100, 1500, ErrInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(tc.customerAmount, tc.rateSold, 1480, 1)
			assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
		})
	}
}

func TestCalculateDeterministic(t *testing.T) {
	first, err := Calculate(987.65, 1512.34, 1498.76, 1.01)
	require.NoError(t, err)
	second, err := Calculate(987.65, 1512.34, 1498.76, 1.01)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
