// Package arbitrage computes the settlement amounts and profit of buying and
// selling the same asset at two different rates within one transaction.
package arbitrage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRate is returned when the sold rate is zero or negative.
	ErrInvalidRate = errors.New("rate sold must be positive")

	// ErrInvalidAmount is returned when the customer amount is negative.
	ErrInvalidAmount = errors.New("customer amount must not be negative")
)

// Result is the derived view over the three calculation inputs. No rounding
// is applied; formatting for display is a presentation concern.
type Result struct {
	USDTEquivalent float64 `json:"usdt_equivalent"`
	TotalReceived  float64 `json:"total_received"`
	TotalCost      float64 `json:"total_cost"`
	Profit         float64 `json:"profit"`
}

// Calculate derives the settlement amounts and profit for a customer-facing
// amount given the rate it was sold at, the rate the cover was bought at,
// and the reference rate the books settle in. Zero customerAmount yields an
// all-zero result.
func Calculate(customerAmount, rateSold, rateBought, referenceRate float64) (Result, error) {
	if rateSold <= 0 {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidRate, rateSold)
	}
	if customerAmount < 0 {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidAmount, customerAmount)
	}

	usdtEquivalent := customerAmount / rateSold
	totalReceived := usdtEquivalent * rateSold * referenceRate
	totalCost := usdtEquivalent * rateBought * referenceRate

	return Result{
		USDTEquivalent: usdtEquivalent,
		TotalReceived:  totalReceived,
		TotalCost:      totalCost,
		Profit:         totalReceived - totalCost,
	}, nil
}
