// Package pricing derives NGN cost prices for the supported foreign
// currencies from an aggregated base rate and the business margin config.
package pricing

import (
	"errors"
	"fmt"
)

// ErrInvalidMargin is returned when a margin is negative or at least 100%.
var ErrInvalidMargin = errors.New("margin must be in [0, 1)")

// Currency is an ISO 4217 currency code from the supported set.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	CAD Currency = "CAD"
)

// SupportedCurrencies is the fixed set the dashboards price.
var SupportedCurrencies = []Currency{USD, EUR, GBP, CAD}

// MarginConfig holds fractional spreads (0.02 = 2%). USDMargin applies to
// USD, OtherMargin to every other supported currency.
type MarginConfig struct {
	USDMargin   float64 `json:"usd_margin"`
	OtherMargin float64 `json:"other_margin"`
}

func (m MarginConfig) validate() error {
	for _, margin := range []float64{m.USDMargin, m.OtherMargin} {
		if margin < 0 || margin >= 1 {
			return fmt.Errorf("%w: got %v", ErrInvalidMargin, margin)
		}
	}
	return nil
}

// CostPrices computes the sell-side cost price per currency:
//
//	cost = baseRate × (1 − margin)
//
// The sell-side convention is fixed here once: the cost price is always at
// or below the base market rate. Pure function; identical inputs always
// yield identical output.
func CostPrices(baseRate float64, margins MarginConfig, currencies []Currency) (map[Currency]float64, error) {
	if err := margins.validate(); err != nil {
		return nil, err
	}

	prices := make(map[Currency]float64, len(currencies))
	for _, currency := range currencies {
		margin := margins.OtherMargin
		if currency == USD {
			margin = margins.USDMargin
		}
		prices[currency] = baseRate * (1 - margin)
	}
	return prices, nil
}
