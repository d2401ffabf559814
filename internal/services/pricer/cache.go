package pricer

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultTTL is how long a fetched price stays fresh.
	DefaultTTL = 60 * time.Second
	// DefaultFetchTimeout bounds a single upstream price fetch.
	DefaultFetchTimeout = 10 * time.Second
)

// CachedPricer keeps the last successfully fetched price in a single slot and
// refetches at most once per TTL window. A failed refetch falls back to the
// stale value, or zero when nothing was ever fetched, so callers never see an
// error and never block beyond the fetch timeout.
//
// Concurrent readers during the same expiry may race into duplicate fetches;
// the last writer wins, which is harmless for a single external price.
type CachedPricer struct {
	source       Pricer
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
	logger       *zap.Logger

	mu        sync.RWMutex
	price     decimal.Decimal
	fetchedAt time.Time
	primed    bool
}

// CacheOption configures a CachedPricer.
type CacheOption func(*CachedPricer)

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CachedPricer) { c.ttl = ttl }
}

// WithFetchTimeout overrides the per-fetch deadline.
func WithFetchTimeout(d time.Duration) CacheOption {
	return func(c *CachedPricer) { c.fetchTimeout = d }
}

// WithClock injects a time source, used by tests to step past the TTL
// without sleeping.
func WithClock(now func() time.Time) CacheOption {
	return func(c *CachedPricer) { c.now = now }
}

func NewCachedPricer(source Pricer, logger *zap.Logger, opts ...CacheOption) *CachedPricer {
	c := &CachedPricer{
		source:       source,
		ttl:          DefaultTTL,
		fetchTimeout: DefaultFetchTimeout,
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Price returns the cached price when fresh, otherwise attempts one fetch.
// A successful fetch is cached even when the reported price is zero; the
// source already degraded unparseable payloads to zero and a legitimately
// zero market price is not distinguishable from that.
func (c *CachedPricer) Price(ctx context.Context) decimal.Decimal {
	c.mu.RLock()
	if c.primed && c.now().Sub(c.fetchedAt) < c.ttl {
		price := c.price
		c.mu.RUnlock()
		return price
	}
	c.mu.RUnlock()

	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	price, err := c.source.GetPrice(fetchCtx)
	if err != nil {
		c.mu.RLock()
		defer c.mu.RUnlock()
		if c.primed {
			c.logger.Warn("price fetch failed, serving stale price",
				zap.String("source", c.source.Name()),
				zap.Time("fetched_at", c.fetchedAt),
				zap.Error(err))
			return c.price
		}
		c.logger.Warn("price fetch failed with no cached price, serving zero",
			zap.String("source", c.source.Name()),
			zap.Error(err))
		return decimal.Zero
	}

	c.mu.Lock()
	c.price = price
	c.fetchedAt = c.now()
	c.primed = true
	c.mu.Unlock()

	return price
}
