package generator

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mira-markets/mira-engine/internal/agents"
	"github.com/mira-markets/mira-engine/internal/store"
	"github.com/mira-markets/mira-engine/pkg/types"
	"go.uber.org/zap"
)

// Generator produces candidate trade records for an agent from the cycle's
// market and news snapshot. It filters markets by the agent's thresholds,
// skips markets that already carry an open trade, and records each accepted
// candidate through the store. It does not open or close positions and
// applies no risk caps; the cycle runner only counts its output.
type Generator struct {
	store             store.Store
	policy            store.DuplicateCheckPolicy
	maxTradesPerCycle int
	logger            *zap.Logger
}

// Config holds generator configuration.
type Config struct {
	Store             store.Store
	Policy            store.DuplicateCheckPolicy
	MaxTradesPerCycle int
	Logger            *zap.Logger
}

// New creates a new trade generator.
func New(cfg Config) *Generator {
	return &Generator{
		store:             cfg.Store,
		policy:            cfg.Policy,
		maxTradesPerCycle: cfg.MaxTradesPerCycle,
		logger:            cfg.Logger,
	}
}

// GenerateTrades returns the trades generated for one agent this cycle.
func (g *Generator) GenerateTrades(
	ctx context.Context,
	profile agents.Profile,
	markets []types.Market,
	news []types.NewsItem,
) []*types.TradeRecord {
	candidates := g.rankCandidates(profile, markets, news)

	trades := make([]*types.TradeRecord, 0, g.maxTradesPerCycle)

	for i := range candidates {
		if len(trades) >= g.maxTradesPerCycle {
			break
		}

		market := candidates[i]

		if g.hasExistingTrade(ctx, market.ID) {
			DuplicateSkipsTotal.Inc()
			continue
		}

		trade := &types.TradeRecord{
			ID:       uuid.New().String(),
			AgentID:  profile.ID,
			MarketID: market.ID,
			Category: market.Category,
			Side:     pickSide(market),
			Status:   types.TradeOpen,
			OpenedAt: time.Now().UTC(),
		}

		// A failed write never suppresses the trade from this cycle's
		// counts; durable and in-memory state may diverge here.
		err := g.store.SaveTrade(ctx, trade)
		if err != nil {
			TradeWriteFailuresTotal.Inc()
			g.logger.Warn("trade-save-failed",
				zap.String("trade-id", trade.ID),
				zap.String("market-id", market.ID),
				zap.Error(err))
		}

		TradesGeneratedTotal.WithLabelValues(string(profile.ID)).Inc()

		trades = append(trades, trade)
	}

	g.logger.Debug("trades-generated",
		zap.String("agent", string(profile.ID)),
		zap.Int("candidates", len(candidates)),
		zap.Int("trades", len(trades)))

	return trades
}

// rankCandidates filters markets by the agent's thresholds and orders them:
// markets referenced by current news first, then by volume descending.
func (g *Generator) rankCandidates(
	profile agents.Profile,
	markets []types.Market,
	news []types.NewsItem,
) []*types.Market {
	inNews := make(map[string]bool)
	for i := range news {
		for _, marketID := range news[i].MarketIDs {
			inNews[marketID] = true
		}
	}

	var candidates []*types.Market
	for i := range markets {
		m := &markets[i]
		if m.Closed {
			continue
		}
		if m.VolumeUSD < profile.MinVolumeUSD || m.LiquidityUSD < profile.MinLiquidityUSD {
			continue
		}
		candidates = append(candidates, m)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if inNews[candidates[i].ID] != inNews[candidates[j].ID] {
			return inNews[candidates[i].ID]
		}
		return candidates[i].VolumeUSD > candidates[j].VolumeUSD
	})

	return candidates
}

// hasExistingTrade applies the configured duplicate-check policy: under
// fail-open, a lookup failure answers "no trade exists" so a transient
// storage error never blocks trade generation.
func (g *Generator) hasExistingTrade(ctx context.Context, marketID string) bool {
	has, err := g.store.MarketHasTrade(ctx, marketID)
	if err != nil {
		DuplicateCheckFailuresTotal.Inc()
		g.logger.Warn("duplicate-check-failed",
			zap.String("market-id", marketID),
			zap.String("policy", string(g.policy)),
			zap.Error(err))

		return g.policy == store.DuplicateCheckFailClosed
	}
	return has
}

// pickSide buys the cheaper side of the market.
func pickSide(m *types.Market) types.TradeSide {
	if m.YesPrice <= 0.5 {
		return types.SideYes
	}
	return types.SideNo
}
