package mapbox

import (
	"context"
	"errors"
	"testing"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	reverseCalls int
	result       domain.GeocodingResult
	err          error
}

func (m *countingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.GeocodingResult, error) {
	m.reverseCalls++
	return m.result, m.err
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_ReverseCacheHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{PlaceName: "Riau", FormattedAddress: "Riau, Indonesia"},
	}
	metrics := testMetrics()
	cached := NewCachedGeocoder(inner, 10, metrics)

	r1, err := cached.ReverseGeocode(context.Background(), 0.5071, 101.4478)
	require.NoError(t, err)
	assert.Equal(t, "Riau", r1.PlaceName)

	r2, err := cached.ReverseGeocode(context.Background(), 0.5071, 101.4478)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, 1, inner.reverseCalls, "should only call inner once")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("reverse", "hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("reverse", "miss")), 0)
}

func TestCachedGeocoder_NearbyPointsShareEntry(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{PlaceName: "Riau"}}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ReverseGeocode(context.Background(), 0.50712, 101.44781)
	_, _ = cached.ReverseGeocode(context.Background(), 0.50738, 101.44809)

	assert.Equal(t, 1, inner.reverseCalls)
}

func TestCachedGeocoder_DifferentKeysMiss(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{PlaceName: "Riau"}}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ReverseGeocode(context.Background(), 0.5, 101.4)
	_, _ = cached.ReverseGeocode(context.Background(), -1.6, 103.6)

	assert.Equal(t, 2, inner.reverseCalls)
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ReverseGeocode(context.Background(), -8.5, 120.0)
	_, _ = cached.ReverseGeocode(context.Background(), -8.5, 120.0)

	assert.Equal(t, 2, inner.reverseCalls)
	assert.Zero(t, cached.cache.len())
}

func TestCachedGeocoder_ErrorPassedThrough(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("boom")}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, err := cached.ReverseGeocode(context.Background(), 0.5, 101.4)

	require.Error(t, err)
	assert.Zero(t, cached.cache.len())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "0.507,101.448", cacheKey(0.5071, 101.4478).String())
	assert.Equal(t, "-2.500,118.000", cacheKey(-2.5, 118).String())
	assert.Equal(t, cacheKey(-2.2104, 113.9201), cacheKey(-2.2096, 113.9196))
}

// --- LRU cache unit tests ---

var (
	keyA       = cacheKey(0.5, 101.4)
	keyB       = cacheKey(-1.6, 103.6)
	keyC       = cacheKey(-2.2, 113.9)
	keyMissing = cacheKey(-8.6, 121.1)
)

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put(keyA, domain.GeocodingResult{PlaceName: "A"})
	c.put(keyB, domain.GeocodingResult{PlaceName: "B"})

	result, ok := c.get(keyA)
	assert.True(t, ok)
	assert.Equal(t, "A", result.PlaceName)

	_, ok = c.get(keyMissing)
	assert.False(t, ok)
	assert.Equal(t, 2, c.len())
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put(keyA, domain.GeocodingResult{PlaceName: "A"})
	c.put(keyB, domain.GeocodingResult{PlaceName: "B"})
	c.put(keyC, domain.GeocodingResult{PlaceName: "C"}) // evicts "a"

	_, ok := c.get(keyA)
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get(keyB)
	assert.True(t, ok)
	assert.Equal(t, "B", result.PlaceName)

	result, ok = c.get(keyC)
	assert.True(t, ok)
	assert.Equal(t, "C", result.PlaceName)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put(keyA, domain.GeocodingResult{PlaceName: "A"})
	c.put(keyB, domain.GeocodingResult{PlaceName: "B"})

	c.get(keyA)

	// "b" is now least recently used.
	c.put(keyC, domain.GeocodingResult{PlaceName: "C"})

	_, ok := c.get(keyA)
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get(keyB)
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put(keyA, domain.GeocodingResult{PlaceName: "A1"})
	c.put(keyA, domain.GeocodingResult{PlaceName: "A2"})

	result, ok := c.get(keyA)
	assert.True(t, ok)
	assert.Equal(t, "A2", result.PlaceName)
	assert.Equal(t, 1, c.len())
}
