// Package poller refreshes every configured instrument on a fixed interval.
// It is the single writer of the rate cache: one goroutine per instrument,
// so overlapping fetches for the same instrument are never issued.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sendrail/fxrates/internal/rates"
)

// Publisher forwards refreshed quotes to a broker. Optional.
type Publisher interface {
	PublishQuote(ctx context.Context, quote rates.Quote) error
}

// Store mirrors last-good quotes to shared storage. Optional.
type Store interface {
	SaveQuote(ctx context.Context, quote rates.Quote) error
	LoadQuote(ctx context.Context, instrument string) (*rates.Quote, error)
}

type Poller struct {
	aggregator  *rates.Aggregator
	cache       *rates.Cache
	instruments []string
	interval    time.Duration
	publisher   Publisher
	store       Store
	logger      *logrus.Logger
}

func New(aggregator *rates.Aggregator, cache *rates.Cache, instruments []string, interval time.Duration, logger *logrus.Logger) *Poller {
	return &Poller{
		aggregator:  aggregator,
		cache:       cache,
		instruments: instruments,
		interval:    interval,
		logger:      logger,
	}
}

// WithPublisher attaches a quote publisher.
func (p *Poller) WithPublisher(pub Publisher) *Poller {
	p.publisher = pub
	return p
}

// WithStore attaches a shared quote store.
func (p *Poller) WithStore(store Store) *Poller {
	p.store = store
	return p
}

// Warm seeds the cache from the shared store so a fresh instance starts with
// the last rate any instance fetched instead of the hard-coded fallback.
func (p *Poller) Warm(ctx context.Context) {
	if p.store == nil {
		return
	}
	for _, instrument := range p.instruments {
		quote, err := p.store.LoadQuote(ctx, instrument)
		if err != nil {
			p.logger.Warnf("Warm-start load failed for %s: %v", instrument, err)
			continue
		}
		if quote != nil {
			p.cache.Update(*quote)
			p.logger.Infof("Warm-started %s from store (rate %v)", instrument, quote.Rate)
		}
	}
}

// Start launches one refresh worker per instrument. Workers refresh once
// immediately, then on every interval tick until the context is cancelled.
func (p *Poller) Start(ctx context.Context, wg *sync.WaitGroup) {
	for _, instrument := range p.instruments {
		wg.Add(1)
		go p.runWorker(ctx, instrument, wg)
	}
}

func (p *Poller) runWorker(ctx context.Context, instrument string, wg *sync.WaitGroup) {
	defer wg.Done()

	p.logger.Infof("Starting rate worker for %s", instrument)

	p.refresh(ctx, instrument)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Infof("Stopping rate worker for %s", instrument)
			return
		case <-ticker.C:
			p.refresh(ctx, instrument)
		}
	}
}

func (p *Poller) refresh(ctx context.Context, instrument string) {
	result := p.aggregator.CurrentRate(ctx, instrument)
	if result.Stale {
		p.logger.Warnf("Serving stale rate for %s (%v)", instrument, result.Rate)
		return
	}

	quote := rates.Quote{
		Instrument: result.Instrument,
		Rate:       result.Rate,
		Provider:   result.Provider,
		FetchedAt:  result.FetchedAt,
	}

	if p.store != nil {
		if err := p.store.SaveQuote(ctx, quote); err != nil {
			p.logger.Errorf("Failed to mirror %s to store: %v", instrument, err)
		}
	}

	if p.publisher != nil {
		if err := p.publisher.PublishQuote(ctx, quote); err != nil {
			p.logger.Errorf("Failed to publish %s: %v", instrument, err)
		}
	}
}
