// internal/rates/cache_test.go
package rates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxwallet/internal/domain"
)

// fakeProvider counts calls and serves a canned table or error.
type fakeProvider struct {
	calls int
	table domain.RateTable
	err   error
}

func (f *fakeProvider) FetchRates(ctx context.Context) (domain.RateTable, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func TestCachingProviderServesSnapshotWithinTTL(t *testing.T) {
	upstream := &fakeProvider{table: domain.RateTable{"EUR": decimal.NewFromFloat(0.9)}}
	cache := NewCachingProvider(upstream, time.Minute, testLogger())

	table1, err := cache.FetchRates(context.Background())
	require.NoError(t, err)
	table2, err := cache.FetchRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.calls)
	assert.True(t, table1["EUR"].Equal(table2["EUR"]))
}

func TestCachingProviderRefetchesAfterTTL(t *testing.T) {
	upstream := &fakeProvider{table: domain.RateTable{"EUR": decimal.NewFromFloat(0.9)}}
	cache := NewCachingProvider(upstream, time.Minute, testLogger())

	now := time.Now()
	cache.now = func() time.Time { return now }

	_, err := cache.FetchRates(context.Background())
	require.NoError(t, err)

	cache.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = cache.FetchRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, upstream.calls)
}

func TestCachingProviderPropagatesUpstreamError(t *testing.T) {
	upstreamErr := errors.New("feed is down")
	upstream := &fakeProvider{err: upstreamErr}
	cache := NewCachingProvider(upstream, time.Minute, testLogger())

	_, err := cache.FetchRates(context.Background())
	assert.ErrorIs(t, err, upstreamErr)
}
