package rates

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sendrail/fxrates/internal/metrics"
)

// resolver is one tier of the rate resolution chain. It either produces a
// usable result for the instrument or passes.
type resolver interface {
	resolve(ctx context.Context, instrument string) (Result, bool)
}

// Aggregator resolves the current rate for an instrument through an ordered
// chain: live sources first, then the cached last-good quote, then the
// configured fallback constant. CurrentRate never returns an error; provider
// outages only surface through the Stale flag.
type Aggregator struct {
	chain   []resolver
	logger  *logrus.Logger
	metrics *metrics.RateMetrics
}

func NewAggregator(cache *Cache, sources []Source, logger *logrus.Logger, m *metrics.RateMetrics) *Aggregator {
	chain := make([]resolver, 0, len(sources)+2)
	for _, src := range sources {
		chain = append(chain, &sourceResolver{source: src, cache: cache, logger: logger, metrics: m})
	}
	chain = append(chain, &cachedResolver{cache: cache}, &fallbackResolver{cache: cache})

	return &Aggregator{chain: chain, logger: logger, metrics: m}
}

// CurrentRate walks the resolution chain and returns the first hit. The
// fallback tier always resolves, so callers are never blocked by an outage.
func (a *Aggregator) CurrentRate(ctx context.Context, instrument string) Result {
	for _, r := range a.chain {
		result, ok := r.resolve(ctx, instrument)
		if !ok {
			continue
		}
		if result.Stale && a.metrics != nil {
			a.metrics.StaleServes.Inc()
		}
		return result
	}

	// The chain always ends in the fallback resolver; this is unreachable.
	return Result{Instrument: instrument, Stale: true}
}

type sourceResolver struct {
	source  Source
	cache   *Cache
	logger  *logrus.Logger
	metrics *metrics.RateMetrics
}

func (r *sourceResolver) resolve(ctx context.Context, instrument string) (Result, bool) {
	start := time.Now()
	if r.metrics != nil {
		r.metrics.FetchTotal.WithLabelValues(r.source.Name()).Inc()
	}

	quote, err := r.source.Fetch(ctx, instrument)
	if r.metrics != nil {
		r.metrics.FetchDuration.WithLabelValues(r.source.Name()).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if r.metrics != nil {
			r.metrics.FetchFailures.WithLabelValues(r.source.Name()).Inc()
		}
		r.logger.Warnf("Fetch failed for %s from %s: %v", instrument, r.source.Name(), err)
		return Result{}, false
	}

	// A cancelled fetch must not touch the cache.
	if ctx.Err() != nil {
		return Result{}, false
	}

	r.cache.Update(quote)
	return Result{
		Instrument: quote.Instrument,
		Rate:       quote.Rate,
		Stale:      false,
		Provider:   quote.Provider,
		FetchedAt:  quote.FetchedAt,
	}, true
}

type cachedResolver struct {
	cache *Cache
}

func (r *cachedResolver) resolve(_ context.Context, instrument string) (Result, bool) {
	quote, ok := r.cache.LastGood(instrument)
	if !ok {
		return Result{}, false
	}
	return Result{
		Instrument: instrument,
		Rate:       quote.Rate,
		Stale:      true,
		Provider:   quote.Provider,
		FetchedAt:  quote.FetchedAt,
	}, true
}

type fallbackResolver struct {
	cache *Cache
}

func (r *fallbackResolver) resolve(_ context.Context, instrument string) (Result, bool) {
	return Result{
		Instrument: instrument,
		Rate:       r.cache.Fallback(instrument),
		Stale:      true,
	}, true
}
