package portfolio

import (
	"time"

	"github.com/mira-markets/mira-engine/internal/agents"
	"github.com/mira-markets/mira-engine/pkg/types"
)

// Position is one open position in an agent's portfolio. EntryPrice is the
// price of the position's own side at entry (the NO price for NO positions).
type Position struct {
	MarketID   string          `json:"marketId"`
	Side       types.TradeSide `json:"side"`
	Quantity   float64         `json:"quantity"`
	EntryPrice float64         `json:"entryPrice"`
	OpenedAt   time.Time       `json:"openedAt"`
}

// UnrealizedPnl computes the position's unrealized P&L contribution given
// the market's current YES price.
func (p *Position) UnrealizedPnl(yesPrice float64) float64 {
	current := yesPrice
	if p.Side == types.SideNo {
		current = 1.0 - yesPrice
	}
	return (current - p.EntryPrice) * p.Quantity
}

// Portfolio is the mutable per-agent financial state owned by the engine.
// It is created fresh when no persisted record exists, loaded from the
// persistence adapter otherwise, mutated once per cycle by UpdateMetrics,
// and persisted at the end of every cycle. There is no deletion path.
type Portfolio struct {
	AgentID            types.AgentID        `json:"agentId"`
	StartingCapitalUSD float64              `json:"startingCapitalUsd"`
	CurrentCapitalUSD  float64              `json:"currentCapitalUsd"`
	RealizedPnlUSD     float64              `json:"realizedPnlUsd"`
	UnrealizedPnlUSD   float64              `json:"unrealizedPnlUsd"`
	MaxEquityUSD       float64              `json:"maxEquityUsd"`
	MaxDrawdownPct     float64              `json:"maxDrawdownPct"`
	OpenPositions      map[string]*Position `json:"openPositions"`
	LastUpdated        time.Time            `json:"lastUpdated"`
}

// New creates a freshly initialized portfolio for an agent: zeroed P&L,
// starting capital from the agent's profile.
func New(profile agents.Profile) *Portfolio {
	return &Portfolio{
		AgentID:            profile.ID,
		StartingCapitalUSD: profile.StartingCapitalUSD,
		CurrentCapitalUSD:  profile.StartingCapitalUSD,
		MaxEquityUSD:       profile.StartingCapitalUSD,
		OpenPositions:      make(map[string]*Position),
		LastUpdated:        time.Now().UTC(),
	}
}

// UpdateMetrics reprices the portfolio against the current market map,
// recomputing unrealized P&L, current capital, the running equity peak and
// the max drawdown. Positions whose market is absent from the map are
// treated as stale and skipped, not as an error.
//
// The capital identity current = starting + realized + unrealized is
// enforced here rather than assumed.
func (p *Portfolio) UpdateMetrics(markets map[string]*types.Market) {
	var unrealized float64
	for marketID, pos := range p.OpenPositions {
		m, ok := markets[marketID]
		if !ok {
			continue
		}
		unrealized += pos.UnrealizedPnl(m.YesPrice)
	}

	p.UnrealizedPnlUSD = unrealized
	p.CurrentCapitalUSD = p.StartingCapitalUSD + p.RealizedPnlUSD + p.UnrealizedPnlUSD

	equity := p.CurrentCapitalUSD
	if equity > p.MaxEquityUSD {
		p.MaxEquityUSD = equity
	}

	// Drawdown is a non-positive percentage off the running peak;
	// most-negative-wins once a new trough is reached.
	if p.MaxEquityUSD > 0 {
		drawdown := (equity - p.MaxEquityUSD) / p.MaxEquityUSD * 100
		if drawdown < p.MaxDrawdownPct {
			p.MaxDrawdownPct = drawdown
		}
	}

	p.LastUpdated = time.Now().UTC()

	observePortfolio(p)
}
