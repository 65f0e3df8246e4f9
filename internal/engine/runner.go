package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mira-markets/mira-engine/internal/agents"
	"github.com/mira-markets/mira-engine/internal/marketdata"
	"github.com/mira-markets/mira-engine/internal/portfolio"
	"github.com/mira-markets/mira-engine/internal/store"
	"github.com/mira-markets/mira-engine/pkg/types"
	"go.uber.org/zap"
)

// MarketSource supplies the cycle's market and news snapshots.
type MarketSource interface {
	FetchAllMarkets(ctx context.Context, forceRefresh bool) ([]types.Market, error)
	FetchLatestNews(ctx context.Context, forceRefresh bool) ([]types.NewsItem, error)
}

// TradeGenerator produces candidate trades for one agent. It is a black box
// to the runner, which only counts the statuses of its output.
type TradeGenerator interface {
	GenerateTrades(ctx context.Context, profile agents.Profile, markets []types.Market, news []types.NewsItem) []*types.TradeRecord
}

// PriceOverlay supplies streamed prices layered onto the REST snapshot.
// Optional; a nil overlay leaves REST prices untouched.
type PriceOverlay interface {
	Prices() map[string]float64
}

// CycleConfig configures one trading cycle.
type CycleConfig struct {
	// Enabled globally gates the loop: a disabled cycle returns no results
	// and performs no fetches.
	Enabled bool

	// Interval is the scheduler cadence.
	Interval time.Duration

	// ForceRefresh bypasses the market-data cache for this cycle.
	ForceRefresh bool
}

// Runner executes trading cycles across the fixed agent roster.
type Runner struct {
	store     store.Store
	source    MarketSource
	generator TradeGenerator
	overlay   PriceOverlay
	roster    []types.AgentID
	logger    *zap.Logger
}

// RunnerConfig holds runner dependencies.
type RunnerConfig struct {
	Store     store.Store
	Source    MarketSource
	Generator TradeGenerator
	Overlay   PriceOverlay // optional
	Roster    []types.AgentID
	Logger    *zap.Logger
}

// NewRunner creates a new cycle runner.
func NewRunner(cfg RunnerConfig) *Runner {
	roster := cfg.Roster
	if roster == nil {
		roster = agents.Roster()
	}

	return &Runner{
		store:     cfg.Store,
		source:    cfg.Source,
		generator: cfg.Generator,
		overlay:   cfg.Overlay,
		roster:    roster,
		logger:    cfg.Logger,
	}
}

// RunTradingCycle executes one refresh-and-trade pass for every agent in the
// roster. Markets and news are fetched exactly once and shared read-only
// across all agents; agents run concurrently and every agent gets a result
// even under partial failure.
//
// A data-source failure aborts the whole cycle with an error: per-agent
// fault isolation deliberately does not extend to the shared fetch step,
// since every agent's pass would be working from the same missing snapshot.
func (r *Runner) RunTradingCycle(ctx context.Context, cfg CycleConfig) ([]types.CycleResult, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	start := time.Now()

	markets, err := r.source.FetchAllMarkets(ctx, cfg.ForceRefresh)
	if err != nil {
		CyclesFailedTotal.Inc()
		return nil, &types.FetchError{Source: "markets", Err: err}
	}

	news, err := r.source.FetchLatestNews(ctx, cfg.ForceRefresh)
	if err != nil {
		CyclesFailedTotal.Inc()
		return nil, &types.FetchError{Source: "news", Err: err}
	}

	if r.overlay != nil {
		marketdata.OverlayPrices(markets, r.overlay.Prices())
	}

	marketsMap := marketdata.BuildMarketsMap(markets)

	results := make([]types.CycleResult, len(r.roster))

	var wg sync.WaitGroup
	for i, agentID := range r.roster {
		wg.Add(1)
		go func(i int, agentID types.AgentID) {
			defer wg.Done()
			results[i] = r.runAgentCycle(ctx, agentID, markets, news, marketsMap)
		}(i, agentID)
	}
	wg.Wait()

	CyclesTotal.Inc()
	CycleDurationSeconds.Observe(time.Since(start).Seconds())

	failed := 0
	for i := range results {
		if !results[i].Success {
			failed++
		}
	}

	r.logger.Info("trading-cycle-complete",
		zap.Int("agents", len(results)),
		zap.Int("failed", failed),
		zap.Int("markets", len(markets)),
		zap.Int("news", len(news)),
		zap.Duration("duration", time.Since(start)))

	return results, nil
}

// runAgentCycle executes one pass for a single agent. It never propagates a
// failure: every internal error, including a panic from a collaborator, is
// converted into a CycleResult with Success false so sibling agents and the
// scheduler always see a complete result set.
func (r *Runner) runAgentCycle(
	ctx context.Context,
	agentID types.AgentID,
	markets []types.Market,
	news []types.NewsItem,
	marketsMap map[string]*types.Market,
) (result types.CycleResult) {
	start := time.Now()
	result = types.CycleResult{AgentID: agentID}

	defer func() {
		if p := recover(); p != nil {
			result.Success = false
			result.Error = fmt.Sprintf("panic: %v", p)
			AgentCycleFailuresTotal.WithLabelValues(string(agentID)).Inc()
			r.logger.Error("agent-cycle-panic",
				zap.String("agent", string(agentID)),
				zap.Any("panic", p))
		}
		result.CycleTime = time.Since(start)
	}()

	profile, ok := agents.GetProfile(agentID)
	if !ok {
		result.Error = fmt.Sprintf("unknown agent: %s", agentID)
		AgentCycleFailuresTotal.WithLabelValues(string(agentID)).Inc()
		return result
	}

	pf, err := r.store.GetPortfolio(ctx, agentID)
	if err != nil {
		// Malformed or unreadable records are treated as "no data".
		r.logger.Warn("portfolio-load-failed-using-initial",
			zap.String("agent", string(agentID)),
			zap.Error(err))
		pf = nil
	}
	if pf == nil {
		pf = portfolio.New(profile)
	}

	pf.UpdateMetrics(marketsMap)

	result.CandidateMarkets = countCandidates(profile, markets)

	trades := r.generator.GenerateTrades(ctx, profile, markets, news)

	// The repriced snapshot is persisted every cycle regardless of trading
	// activity so the equity curve stays continuous. A failed save is
	// logged and the cycle proceeds; durable state lags until the next
	// successful save.
	err = r.store.SavePortfolio(ctx, pf)
	if err != nil {
		r.logger.Warn("portfolio-save-failed",
			zap.String("agent", string(agentID)),
			zap.Error(err))
	}

	for _, trade := range trades {
		switch trade.Status {
		case types.TradeOpen:
			result.NewTrades++
		case types.TradeClosed:
			result.ClosedTrades++
		}
	}
	result.OpenPositions = len(pf.OpenPositions)
	result.Success = true

	AgentCandidateMarkets.WithLabelValues(string(agentID)).Set(float64(result.CandidateMarkets))

	return result
}

// countCandidates counts markets passing the agent's minimum volume and
// liquidity thresholds. A simple conjunctive filter, not a ranking.
func countCandidates(profile agents.Profile, markets []types.Market) int {
	count := 0
	for i := range markets {
		if markets[i].VolumeUSD >= profile.MinVolumeUSD &&
			markets[i].LiquidityUSD >= profile.MinLiquidityUSD {
			count++
		}
	}
	return count
}
