package mapbox

import (
	"context"
	"fmt"
	"math"

	"github.com/couchcryptid/delivery-quote-service/internal/domain"
	"github.com/couchcryptid/delivery-quote-service/internal/observability"
	lru "github.com/hashicorp/golang-lru/v2"
)

// coordKey is a coordinate in millionths of a degree, the precision sent
// to Mapbox (about 0.1 m at the equator).
type coordKey struct {
	lat, lon int64
}

func keyFor(lat, lon float64) coordKey {
	return coordKey{lat: int64(math.Round(lat * 1e6)), lon: int64(math.Round(lon * 1e6))}
}

// CachedGeocoder puts a bounded LRU cache in front of another Geocoder.
// Only results that resolved a state are cached; empty answers and errors
// go back to the inner geocoder next time.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lru.Cache[coordKey, domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder wraps inner with a cache of at most maxEntries
// results. Sizes below one are raised to one.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) (*CachedGeocoder, error) {
	cache, err := lru.New[coordKey, domain.GeocodingResult](max(maxEntries, 1))
	if err != nil {
		return nil, fmt.Errorf("create geocode cache: %w", err)
	}
	return &CachedGeocoder{inner: inner, cache: cache, metrics: metrics}, nil
}

// ReverseGeocode answers from the cache when the same coordinate was
// resolved before.
func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	key := keyFor(lat, lon)
	if result, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil || result.State == "" {
		return result, err
	}
	if evicted := c.cache.Add(key, result); evicted {
		c.metrics.GeocodeCache.WithLabelValues("evict").Inc()
	}
	return result, nil
}

// Len reports how many coordinates are cached.
func (c *CachedGeocoder) Len() int {
	return c.cache.Len()
}
