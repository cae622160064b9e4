// Package rates holds the exchange-rate domain: quotes fetched from external
// providers, the per-instrument last-good cache, and the aggregator that
// resolves a usable rate even when every provider is down.
package rates

import (
	"context"
	"errors"
	"time"
)

// ErrSourceUnavailable wraps any transport, status, or parse failure from an
// external provider. The aggregator absorbs it; it never reaches API callers.
var ErrSourceUnavailable = errors.New("rate source unavailable")

// Quote is a single rate fetched from one provider. Immutable once created.
type Quote struct {
	Instrument string    `json:"instrument"`
	Rate       float64   `json:"rate"`
	Provider   string    `json:"provider"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// Result is what the aggregator hands to callers. Stale means the rate came
// from the cache or the configured fallback rather than a live fetch.
type Result struct {
	Instrument string    `json:"instrument"`
	Rate       float64   `json:"rate"`
	Stale      bool      `json:"stale"`
	Provider   string    `json:"provider,omitempty"`
	FetchedAt  time.Time `json:"fetched_at,omitempty"`
}

// Source fetches a quote for one instrument from one external provider.
// Implementations must not retry internally; retry cadence belongs to the
// polling caller.
type Source interface {
	Name() string
	Fetch(ctx context.Context, instrument string) (Quote, error)
}
