package portfolio

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EquityUSD tracks each agent's current capital.
	EquityUSD = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mira_agent_equity_usd",
			Help: "Current capital per agent in USD",
		},
		[]string{"agent"},
	)

	// UnrealizedPnlUSD tracks each agent's unrealized P&L.
	UnrealizedPnlUSD = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mira_agent_unrealized_pnl_usd",
			Help: "Unrealized P&L per agent in USD",
		},
		[]string{"agent"},
	)

	// MaxDrawdownPct tracks each agent's max drawdown percentage.
	MaxDrawdownPct = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mira_agent_max_drawdown_pct",
			Help: "Max drawdown per agent as a non-positive percentage",
		},
		[]string{"agent"},
	)

	// OpenPositionsCount tracks each agent's open position count.
	OpenPositionsCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mira_agent_open_positions",
			Help: "Number of open positions per agent",
		},
		[]string{"agent"},
	)
)

func observePortfolio(p *Portfolio) {
	agent := string(p.AgentID)
	EquityUSD.WithLabelValues(agent).Set(p.CurrentCapitalUSD)
	UnrealizedPnlUSD.WithLabelValues(agent).Set(p.UnrealizedPnlUSD)
	MaxDrawdownPct.WithLabelValues(agent).Set(p.MaxDrawdownPct)
	OpenPositionsCount.WithLabelValues(agent).Set(float64(len(p.OpenPositions)))
}
