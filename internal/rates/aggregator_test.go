package rates

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type stubSource struct {
	name  string
	rate  float64
	err   error
	calls int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context, instrument string) (Quote, error) {
	s.calls++
	if s.err != nil {
		return Quote{}, s.err
	}
	return Quote{
		Instrument: instrument,
		Rate:       s.rate,
		Provider:   s.name,
		FetchedAt:  time.Now(),
	}, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestAggregatorFreshRateOnSuccess(t *testing.T) {
	cache := NewCache(map[string]float64{"USDT/NGN": 1550})
	src := &stubSource{name: "bybit", rate: 1545.5}
	agg := NewAggregator(cache, []Source{src}, testLogger(), nil)

	result := agg.CurrentRate(context.Background(), "USDT/NGN")

	if result.Stale {
		t.Error("Expected fresh result on successful fetch")
	}
	if result.Rate != 1545.5 {
		t.Errorf("Expected rate 1545.5, got %v", result.Rate)
	}
	if result.Provider != "bybit" {
		t.Errorf("Expected provider bybit, got %q", result.Provider)
	}
	if cache.Get("USDT/NGN") != 1545.5 {
		t.Error("Successful fetch should update the cache")
	}
}

func TestAggregatorFallbackWhenSourceAlwaysFails(t *testing.T) {
	cache := NewCache(map[string]float64{"USDT/NGN": 1550})
	src := &stubSource{name: "bybit", err: fmt.Errorf("%w: connection refused", ErrSourceUnavailable)}
	agg := NewAggregator(cache, []Source{src}, testLogger(), nil)

	// Every call fails; the fallback constant must be served, never an error.
	for i := 0; i < 3; i++ {
		result := agg.CurrentRate(context.Background(), "USDT/NGN")
		if !result.Stale {
			t.Error("Expected stale result when source fails")
		}
		if result.Rate != 1550 {
			t.Errorf("Expected fallback rate 1550, got %v", result.Rate)
		}
	}
}

func TestAggregatorServesCachedRateAfterOutage(t *testing.T) {
	cache := NewCache(map[string]float64{"USDT/NGN": 1550})
	src := &stubSource{name: "bybit", rate: 1545}
	agg := NewAggregator(cache, []Source{src}, testLogger(), nil)

	if result := agg.CurrentRate(context.Background(), "USDT/NGN"); result.Stale {
		t.Fatal("First fetch should be fresh")
	}

	src.err = fmt.Errorf("%w: timeout", ErrSourceUnavailable)
	result := agg.CurrentRate(context.Background(), "USDT/NGN")

	if !result.Stale {
		t.Error("Expected stale result during outage")
	}
	if result.Rate != 1545 {
		t.Errorf("Expected last-good rate 1545, got %v", result.Rate)
	}
	if result.Provider != "bybit" {
		t.Errorf("Cached result should keep its provider, got %q", result.Provider)
	}
}

func TestAggregatorTriesSourcesInOrder(t *testing.T) {
	cache := NewCache(map[string]float64{"USDT/NGN": 1550})
	primary := &stubSource{name: "bybit", err: fmt.Errorf("%w: 503", ErrSourceUnavailable)}
	secondary := &stubSource{name: "quidax", rate: 1548}
	agg := NewAggregator(cache, []Source{primary, secondary}, testLogger(), nil)

	result := agg.CurrentRate(context.Background(), "USDT/NGN")

	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("Expected both sources tried once, got %d and %d", primary.calls, secondary.calls)
	}
	if result.Stale || result.Rate != 1548 {
		t.Errorf("Expected fresh 1548 from secondary, got stale=%v rate=%v", result.Stale, result.Rate)
	}
}

func TestAggregatorCancelledFetchDoesNotUpdateCache(t *testing.T) {
	cache := NewCache(map[string]float64{"USDT/NGN": 1550})
	src := &stubSource{name: "bybit", rate: 1545}
	agg := NewAggregator(cache, []Source{src}, testLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := agg.CurrentRate(ctx, "USDT/NGN")

	if !result.Stale {
		t.Error("Cancelled call should degrade to the stale path")
	}
	if _, ok := cache.LastGood("USDT/NGN"); ok {
		t.Error("Cancelled fetch must not update the cache")
	}
}
