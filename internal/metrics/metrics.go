// Package metrics exposes Prometheus instrumentation for the rate engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RateMetrics holds the counters and histograms tracked per rate fetch.
type RateMetrics struct {
	// Fetch attempts per provider
	FetchTotal *prometheus.CounterVec

	// Failed fetches per provider (transport, status, or parse errors)
	FetchFailures *prometheus.CounterVec

	// Fetch round-trip duration per provider
	FetchDuration *prometheus.HistogramVec

	// Rates served from cache or fallback instead of a live fetch
	StaleServes prometheus.Counter
}

func NewRateMetrics() *RateMetrics {
	return &RateMetrics{
		FetchTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxrates_fetch_total",
				Help: "Total rate fetch attempts per provider",
			},
			[]string{"provider"},
		),
		FetchFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxrates_fetch_failures_total",
				Help: "Failed rate fetches per provider",
			},
			[]string{"provider"},
		),
		FetchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxrates_fetch_duration_seconds",
				Help:    "Rate fetch round-trip duration per provider",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		StaleServes: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fxrates_stale_serves_total",
				Help: "Rates served from cache or fallback instead of a live fetch",
			},
		),
	}
}
