// internal/rates/cache.go
package rates

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fxwallet/internal/domain"
)

// CachingProvider decorates another Provider with a short-lived snapshot so
// a burst of operations does not hammer the upstream feed. It is safe for
// concurrent use.
type CachingProvider struct {
	next Provider
	ttl  time.Duration

	// lock synchronizes access to the snapshot
	lock      sync.RWMutex
	snapshot  domain.RateTable
	fetchedAt time.Time

	logger *slog.Logger

	// now is swappable for tests
	now func() time.Time
}

// NewCachingProvider returns a Provider that serves cached rates while they
// are younger than ttl.
func NewCachingProvider(next Provider, ttl time.Duration, logger *slog.Logger) *CachingProvider {
	return &CachingProvider{
		next:   next,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// FetchRates returns the cached snapshot when fresh, otherwise refetches.
// A failed refetch propagates the error; rates are never defaulted. Note
// that concurrent callers hitting a stale cache may refetch more than once,
// which is harmless beyond the duplicate upstream call.
func (p *CachingProvider) FetchRates(ctx context.Context) (domain.RateTable, error) {
	p.lock.RLock()
	snapshot, fetchedAt := p.snapshot, p.fetchedAt
	p.lock.RUnlock()

	if snapshot != nil && p.now().Sub(fetchedAt) < p.ttl {
		return snapshot, nil
	}

	fresh, err := p.next.FetchRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing rate cache: %w", err)
	}

	p.lock.Lock()
	p.snapshot = fresh
	p.fetchedAt = p.now()
	p.lock.Unlock()

	p.logger.Debug("rate cache refreshed", "currencies", len(fresh))
	return fresh, nil
}
