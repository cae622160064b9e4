package rates

import (
	"sync"
	"time"
)

// Cache keeps the last successfully fetched quote per instrument plus a fixed
// fallback rate, so a value is always available. Entries are created up front
// with their fallback and live for the whole session; a successful fetch
// replaces the last-good quote, nothing ever clears it.
type Cache struct {
	mu        sync.RWMutex
	lastGood  map[string]Quote
	fallbacks map[string]float64
}

// NewCache creates a cache seeded with a fallback rate per instrument.
func NewCache(fallbacks map[string]float64) *Cache {
	fb := make(map[string]float64, len(fallbacks))
	for instrument, rate := range fallbacks {
		fb[instrument] = rate
	}
	return &Cache{
		lastGood:  make(map[string]Quote),
		fallbacks: fb,
	}
}

// Get returns the last-good rate for the instrument, or its fallback when no
// fetch has succeeded yet. It never fails.
func (c *Cache) Get(instrument string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if q, ok := c.lastGood[instrument]; ok {
		return q.Rate
	}
	return c.fallbacks[instrument]
}

// LastGood returns the most recent successful quote, if any.
func (c *Cache) LastGood(instrument string) (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q, ok := c.lastGood[instrument]
	return q, ok
}

// Fallback returns the configured constant for the instrument.
func (c *Cache) Fallback(instrument string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fallbacks[instrument]
}

// Update replaces the last-good quote unconditionally. Last write wins; the
// poller is the only writer per instrument so no ordering check is needed.
func (c *Cache) Update(quote Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastGood[quote.Instrument] = quote
}

// IsStale reports whether the instrument has no successful fetch yet, or the
// last one is older than maxAge.
func (c *Cache) IsStale(instrument string, maxAge time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q, ok := c.lastGood[instrument]
	if !ok {
		return true
	}
	return time.Since(q.FetchedAt) > maxAge
}
