package search

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/chaff/internal/cache"
)

// CachedProvider wraps a search provider with result caching. Only
// successful lookups are cached; failures always go back to the network.
type CachedProvider struct {
	inner  Provider
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProvider wraps the given provider with a cache
func NewCachedProvider(inner Provider, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProvider{
		inner:  inner,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// Name returns the wrapped provider's name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// Search consults the cache before the wrapped provider
func (p *CachedProvider) Search(ctx context.Context, query string) ([]Result, error) {
	key := cache.Key("search", p.inner.Name(), query)

	if data, ok := p.cache.Get(key); ok {
		var results []Result
		if err := json.Unmarshal(data, &results); err == nil {
			p.logger.Debug("search cache hit", zap.String("query", query))
			return results, nil
		}
		// Unreadable entries are dropped and refetched
		_ = p.cache.Delete(key)
	}

	results, err := p.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		_ = p.cache.Set(key, data, p.ttl)
	}

	return results, nil
}
