package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mira-markets/mira-engine/pkg/types"
	"go.uber.org/zap"
)

// CycleRunner executes one full trading cycle.
type CycleRunner interface {
	RunTradingCycle(ctx context.Context, cfg CycleConfig) ([]types.CycleResult, error)
}

// Scheduler drives the cycle runner on a fixed interval. The first cycle
// runs immediately on Start; ticks that arrive while a cycle is still in
// flight are skipped rather than queued, so at most one cycle runs at a
// time.
type Scheduler struct {
	runner CycleRunner
	cfg    CycleConfig
	logger *zap.Logger

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu      sync.RWMutex
	results []types.CycleResult
	lastRun time.Time
	lastErr error
}

// NewScheduler creates a scheduler around the given runner.
func NewScheduler(runner CycleRunner, cfg CycleConfig, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		runner: runner,
		cfg:    cfg,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start launches the tick loop. It runs one cycle immediately, then every
// Interval until Stop is called or the context is cancelled. Start returns
// without waiting for the first cycle to complete.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.logger.Info("scheduler-started",
			zap.Duration("interval", s.cfg.Interval),
			zap.Bool("enabled", s.cfg.Enabled))

		s.tick(ctx)

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
}

// tick launches one cycle unless a previous one is still running. The cycle
// runs in its own goroutine so a slow cycle never stalls the tick loop; the
// next tick observes the guard and is skipped instead.
func (s *Scheduler) tick(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		TicksSkippedTotal.Inc()
		s.logger.Warn("cycle-skipped-previous-still-running")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.running.Store(false)

		results, err := s.runner.RunTradingCycle(ctx, s.cfg)

		s.mu.Lock()
		s.lastRun = time.Now().UTC()
		s.lastErr = err
		if err == nil {
			s.results = results
		}
		s.mu.Unlock()

		if err != nil {
			s.logger.Error("trading-cycle-failed", zap.Error(err))
		}
	}()
}

// Stop halts future ticks. A cycle already in flight runs to completion;
// use Wait to block until it settles.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.logger.Info("scheduler-stopped")
	})
}

// Wait blocks until the tick loop and any in-flight cycle have finished.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Results returns a copy of the most recent successful cycle's results.
func (s *Scheduler) Results() []types.CycleResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.CycleResult, len(s.results))
	copy(out, s.results)
	return out
}

// LastRun returns the completion time of the most recent cycle attempt and
// its error, if any. A zero time means no cycle has completed yet.
func (s *Scheduler) LastRun() (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun, s.lastErr
}

// Running reports whether a cycle is currently in flight.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}
