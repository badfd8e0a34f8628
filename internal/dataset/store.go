package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/dpup/prefab/logging"
	"golang.org/x/sync/singleflight"

	"github.com/dpup/postmile/server/internal/cache"
	"github.com/dpup/postmile/server/internal/lib/postmile"
	"github.com/dpup/postmile/server/internal/metrics"
)

const catalogCacheKey = "catalog"

// Store serves datasets and the catalog for one data directory, loading each
// from disk at most once per TTL. Concurrent misses for the same key share a
// single load.
type Store struct {
	root  string
	cache *cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewStore creates a Store for the data directory root
func NewStore(root string, c *cache.Cache, ttl time.Duration) *Store {
	return &Store{
		root:  root,
		cache: c,
		ttl:   ttl,
	}
}

// Dataset returns the dataset for key, loading it on a cache miss. Only
// routes listed in the catalog are read from disk.
func (s *Store) Dataset(ctx context.Context, key postmile.RouteKey) (*Dataset, error) {
	ctx = logging.EnsureLogger(ctx)
	if err := key.Validate(); err != nil {
		return nil, err
	}

	cacheKey := "dataset:" + key.String()

	if cached, found := s.cache.Get(cacheKey); found {
		metrics.CacheHits.WithLabelValues("dataset").Inc()
		return cached.(*Dataset), nil
	}
	metrics.CacheMisses.WithLabelValues("dataset").Inc()

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	if !catalog.Contains(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, key)
	}

	v, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		start := time.Now()
		ds, err := Load(s.root, key)
		if err != nil {
			metrics.DatasetLoads.WithLabelValues("error").Inc()
			return nil, err
		}
		metrics.DatasetLoads.WithLabelValues("ok").Inc()

		logging.Infow(ctx, "Loaded route dataset",
			"route", key.String(),
			"fragments", len(ds.Route.Fragments),
			"markers", len(ds.Markers),
			"duration", time.Since(start))

		s.cache.Set(cacheKey, ds, s.ttl, "dataset")
		return ds, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Dataset), nil
}

// Catalog returns the routes available in the data directory
func (s *Store) Catalog(ctx context.Context) (*Catalog, error) {
	ctx = logging.EnsureLogger(ctx)
	if cached, found := s.cache.Get(catalogCacheKey); found {
		metrics.CacheHits.WithLabelValues("catalog").Inc()
		return cached.(*Catalog), nil
	}
	metrics.CacheMisses.WithLabelValues("catalog").Inc()

	v, err, _ := s.group.Do(catalogCacheKey, func() (interface{}, error) {
		catalog, err := Discover(s.root)
		if err != nil {
			return nil, err
		}

		logging.Infow(ctx, "Discovered route datasets", "root", s.root, "routes", len(catalog.Keys))

		s.cache.Set(catalogCacheKey, catalog, s.ttl, "catalog")
		return catalog, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Catalog), nil
}
