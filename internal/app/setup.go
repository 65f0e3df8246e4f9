package app

import (
	"context"
	"fmt"

	"github.com/mira-markets/mira-engine/internal/engine"
	"github.com/mira-markets/mira-engine/internal/generator"
	"github.com/mira-markets/mira-engine/internal/marketdata"
	"github.com/mira-markets/mira-engine/internal/store"
	"github.com/mira-markets/mira-engine/pkg/cache"
	"github.com/mira-markets/mira-engine/pkg/config"
	"github.com/mira-markets/mira-engine/pkg/healthprobe"
	"github.com/mira-markets/mira-engine/pkg/httpserver"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger, opts *Options) (*App, error) {
	if opts == nil {
		opts = &Options{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := healthprobe.New("mira-engine")

	marketCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	st, err := setupStore(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup store: %w", err)
	}

	source := setupMarketSource(cfg, logger, marketCache)
	stream := setupStream(cfg, logger)
	tradeGen := setupGenerator(cfg, logger, st)

	scheduler := setupScheduler(cfg, logger, st, source, stream, tradeGen, opts)

	httpServer := setupHTTPServer(cfg, logger, healthChecker, scheduler, st)

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		stream:        stream,
		scheduler:     scheduler,
		store:         st,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 10000, // 10x expected max items
		MaxCost:     1000,  // Maximum 1000 items in cache
		BufferItems: 64,    // Buffer size for Get operations
		Logger:      logger,
	})
}

func setupStore(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	if cfg.StorageMode == "postgres" {
		pgStore, err := store.NewPostgresStore(&store.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres store: %w", err)
		}
		return pgStore, nil
	}

	return store.NewNoopStore(logger), nil
}

func setupMarketSource(cfg *config.Config, logger *zap.Logger, marketCache cache.Cache) *marketdata.CachedClient {
	client := marketdata.NewClient(&marketdata.ClientConfig{
		MarketsURL: cfg.MarketsAPIURL,
		NewsURL:    cfg.NewsAPIURL,
		Limit:      cfg.MarketFetchLimit,
		Logger:     logger,
	})

	return marketdata.NewCachedClient(&marketdata.CachedClientConfig{
		Source: client,
		Cache:  marketCache,
		TTL:    cfg.MarketCacheTTL,
		Logger: logger,
	})
}

func setupStream(cfg *config.Config, logger *zap.Logger) *marketdata.Stream {
	if !cfg.StreamEnabled {
		return nil
	}

	return marketdata.NewStream(&marketdata.StreamConfig{
		URL:                   cfg.StreamURL,
		DialTimeout:           cfg.StreamDialTimeout,
		ReconnectInitialDelay: cfg.StreamInitialDelay,
		ReconnectMaxDelay:     cfg.StreamMaxDelay,
		ReconnectBackoffMult:  cfg.StreamBackoffMult,
		Logger:                logger,
	})
}

func setupGenerator(cfg *config.Config, logger *zap.Logger, st store.Store) *generator.Generator {
	policy := store.DuplicateCheckFailOpen
	if cfg.DuplicatePolicy == "fail-closed" {
		policy = store.DuplicateCheckFailClosed
	}

	return generator.New(generator.Config{
		Store:             st,
		Policy:            policy,
		MaxTradesPerCycle: cfg.MaxTradesPerCycle,
		Logger:            logger,
	})
}

func setupScheduler(
	cfg *config.Config,
	logger *zap.Logger,
	st store.Store,
	source *marketdata.CachedClient,
	stream *marketdata.Stream,
	tradeGen *generator.Generator,
	opts *Options,
) *engine.Scheduler {
	var overlay engine.PriceOverlay
	if stream != nil {
		overlay = stream
	}

	runner := engine.NewRunner(engine.RunnerConfig{
		Store:     st,
		Source:    source,
		Generator: tradeGen,
		Overlay:   overlay,
		Logger:    logger,
	})

	cycleCfg := engine.CycleConfig{
		Enabled:      cfg.CycleEnabled,
		Interval:     cfg.CycleInterval,
		ForceRefresh: cfg.ForceRefresh || opts.ForceRefresh,
	}

	return engine.NewScheduler(runner, cycleCfg, logger)
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	scheduler *engine.Scheduler,
	st store.Store,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		CycleState:    scheduler,
		Store:         st,
	})
}
