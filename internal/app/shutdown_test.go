package app

import (
	"context"
	"testing"
	"time"

	"github.com/mira-markets/mira-engine/internal/engine"
	"github.com/mira-markets/mira-engine/internal/testutil"
	"github.com/mira-markets/mira-engine/pkg/healthprobe"
	"github.com/mira-markets/mira-engine/pkg/httpserver"
	"github.com/mira-markets/mira-engine/pkg/types"
	"go.uber.org/zap"
)

// drainRunner blocks mid-cycle until released and records the context state
// it finished under.
type drainRunner struct {
	started chan struct{}
	release chan struct{}
	ctxErr  error
}

func (d *drainRunner) RunTradingCycle(ctx context.Context, cfg engine.CycleConfig) ([]types.CycleResult, error) {
	close(d.started)
	<-d.release
	d.ctxErr = ctx.Err()
	return nil, nil
}

func TestShutdown_DrainsInFlightCycleBeforeCancel(t *testing.T) {
	logger := zap.NewNop()
	runner := &drainRunner{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	hc := healthprobe.New("mira-engine")
	scheduler := engine.NewScheduler(runner, engine.CycleConfig{Enabled: true, Interval: time.Hour}, logger)

	a := &App{
		logger:        logger,
		healthChecker: hc,
		httpServer: httpserver.New(&httpserver.Config{
			Port:          "0",
			Logger:        logger,
			HealthChecker: hc,
		}),
		scheduler: scheduler,
		store:     testutil.NewMemoryStore(),
		ctx:       ctx,
		cancel:    cancel,
	}

	scheduler.Start(ctx)
	<-runner.started

	// Release the stuck cycle while Shutdown is waiting on it.
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(runner.release)
	}()

	err := a.Shutdown()
	if err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if runner.ctxErr != nil {
		t.Errorf("in-flight cycle ran under a cancelled context during shutdown: %v", runner.ctxErr)
	}
}
