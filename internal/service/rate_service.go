package service

import (
	"context"
	"time"

	"github.com/sendrail/fxrates/internal/arbitrage"
	"github.com/sendrail/fxrates/internal/pricing"
	"github.com/sendrail/fxrates/internal/rates"
	"github.com/sendrail/fxrates/internal/transactions"
)

// RateService is the application layer the HTTP handlers talk to. It owns the
// aggregator handle and the default margin config; the computation packages
// stay pure underneath it.
type RateService struct {
	aggregator     *rates.Aggregator
	baseInstrument string
	defaultMargins pricing.MarginConfig
}

func NewRateService(aggregator *rates.Aggregator, baseInstrument string, defaultMargins pricing.MarginConfig) *RateService {
	return &RateService{
		aggregator:     aggregator,
		baseInstrument: baseInstrument,
		defaultMargins: defaultMargins,
	}
}

// CurrentRate resolves the rate for one instrument. Never fails; outages
// surface as Stale.
func (s *RateService) CurrentRate(ctx context.Context, instrument string) rates.Result {
	return s.aggregator.CurrentRate(ctx, instrument)
}

// CostPriceView is the cost-price set plus the inputs it was derived from.
type CostPriceView struct {
	BaseRate   float64                      `json:"base_rate"`
	Stale      bool                         `json:"stale"`
	Margins    pricing.MarginConfig         `json:"margins"`
	CostPrices map[pricing.Currency]float64 `json:"cost_prices"`
}

// CostPrices computes cost prices for the supported currencies. A zero
// baseRate means "use the live base instrument rate"; nil margins fall back
// to the configured defaults.
func (s *RateService) CostPrices(ctx context.Context, baseRate float64, margins *pricing.MarginConfig) (CostPriceView, error) {
	stale := false
	if baseRate == 0 {
		result := s.aggregator.CurrentRate(ctx, s.baseInstrument)
		baseRate = result.Rate
		stale = result.Stale
	}

	m := s.defaultMargins
	if margins != nil {
		m = *margins
	}

	prices, err := pricing.CostPrices(baseRate, m, pricing.SupportedCurrencies)
	if err != nil {
		return CostPriceView{}, err
	}

	return CostPriceView{
		BaseRate:   baseRate,
		Stale:      stale,
		Margins:    m,
		CostPrices: prices,
	}, nil
}

// Calculate runs the arbitrage calculation over caller-supplied amounts.
func (s *RateService) Calculate(customerAmount, rateSold, rateBought, referenceRate float64) (arbitrage.Result, error) {
	return arbitrage.Calculate(customerAmount, rateSold, rateBought, referenceRate)
}

// TransactionSummary aggregates a filtered slice of trade-history records.
type TransactionSummary struct {
	Count       int                        `json:"count"`
	TotalProfit float64                    `json:"total_profit"`
	From        time.Time                  `json:"from"`
	To          time.Time                  `json:"to"`
	Items       []transactions.Transaction `json:"items"`
}

// SummarizeTransactions filters the records to the given window and totals
// their profit. Records without a date are rejected, not skipped.
func (s *RateService) SummarizeTransactions(txs []transactions.Transaction, from, to time.Time) (TransactionSummary, error) {
	filtered, err := transactions.FilterByDateRange(txs, from, to)
	if err != nil {
		return TransactionSummary{}, err
	}
	return TransactionSummary{
		Count:       len(filtered),
		TotalProfit: transactions.TotalProfit(filtered),
		From:        from,
		To:          to,
		Items:       filtered,
	}, nil
}
