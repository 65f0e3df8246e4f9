package app

import (
	"context"
	"sync"

	"github.com/mira-markets/mira-engine/internal/engine"
	"github.com/mira-markets/mira-engine/internal/marketdata"
	"github.com/mira-markets/mira-engine/internal/store"
	"github.com/mira-markets/mira-engine/pkg/config"
	"github.com/mira-markets/mira-engine/pkg/healthprobe"
	"github.com/mira-markets/mira-engine/pkg/httpserver"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	stream        *marketdata.Stream
	scheduler     *engine.Scheduler
	store         store.Store
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Options holds application options.
type Options struct {
	ForceRefresh bool // bypass the market-data cache on every cycle
}
