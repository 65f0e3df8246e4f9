package marketdata

import (
	"context"
	"time"

	"github.com/mira-markets/mira-engine/pkg/cache"
	"github.com/mira-markets/mira-engine/pkg/types"
	"go.uber.org/zap"
)

// Cache keys for cycle-level snapshots.
const (
	marketsCacheKey = "marketdata:markets"
	newsCacheKey    = "marketdata:news"
)

// Fetcher is the uncached market/news source wrapped by CachedClient.
type Fetcher interface {
	FetchAllMarkets(ctx context.Context) ([]types.Market, error)
	FetchLatestNews(ctx context.Context) ([]types.NewsItem, error)
}

// CachedClient wraps a Fetcher with a TTL cache. forceRefresh bypasses the
// cache and replaces the cached snapshot with the fresh fetch.
type CachedClient struct {
	source Fetcher
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// CachedClientConfig holds cached client configuration.
type CachedClientConfig struct {
	Source Fetcher
	Cache  cache.Cache
	TTL    time.Duration
	Logger *zap.Logger
}

// NewCachedClient creates a new cached market-data client.
func NewCachedClient(cfg *CachedClientConfig) *CachedClient {
	return &CachedClient{
		source: cfg.Source,
		cache:  cfg.Cache,
		ttl:    cfg.TTL,
		logger: cfg.Logger,
	}
}

// FetchAllMarkets returns the cached market snapshot when fresh, fetching
// from the source on miss or when forceRefresh is set.
func (c *CachedClient) FetchAllMarkets(ctx context.Context, forceRefresh bool) ([]types.Market, error) {
	if !forceRefresh {
		if value, found := c.cache.Get(marketsCacheKey); found {
			if markets, ok := value.([]types.Market); ok {
				return markets, nil
			}
			c.logger.Warn("invalid-markets-type-in-cache")
		}
	}

	markets, err := c.source.FetchAllMarkets(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.Set(marketsCacheKey, markets, c.ttl)

	return markets, nil
}

// FetchLatestNews returns the cached news snapshot when fresh, fetching
// from the source on miss or when forceRefresh is set.
func (c *CachedClient) FetchLatestNews(ctx context.Context, forceRefresh bool) ([]types.NewsItem, error) {
	if !forceRefresh {
		if value, found := c.cache.Get(newsCacheKey); found {
			if news, ok := value.([]types.NewsItem); ok {
				return news, nil
			}
			c.logger.Warn("invalid-news-type-in-cache")
		}
	}

	news, err := c.source.FetchLatestNews(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.Set(newsCacheKey, news, c.ttl)

	return news, nil
}
