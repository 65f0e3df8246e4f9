package types

import "time"

// AgentID identifies one of the fixed set of trading agents.
type AgentID string

// TradeSide is the side of a prediction-market position.
type TradeSide string

// Trade sides.
const (
	SideYes TradeSide = "YES"
	SideNo  TradeSide = "NO"
)

// TradeStatus is the lifecycle status of a trade record.
type TradeStatus string

// Trade statuses.
const (
	TradeOpen    TradeStatus = "OPEN"
	TradeClosed  TradeStatus = "CLOSED"
	TradePending TradeStatus = "PENDING"
)

// TradeRecord is the persistence-facing record of a single trade attempt.
// Written once per generated trade; keyed by ID in durable storage with a
// secondary market-scoped index for duplicate checks.
type TradeRecord struct {
	ID       string      `json:"id"`
	AgentID  AgentID     `json:"agentId"`
	MarketID string      `json:"marketId"`
	Category string      `json:"category"`
	Side     TradeSide   `json:"side"`
	Status   TradeStatus `json:"status"`
	OpenedAt time.Time   `json:"openedAt"`
	ClosedAt *time.Time  `json:"closedAt,omitempty"`
	PnlUSD   float64     `json:"pnlUsd"`
}

// MarketTradeRef is the market-scoped index record pointing at the most
// recent trade for a market. It exists solely so MarketHasTrade can answer
// without scanning all trades.
type MarketTradeRef struct {
	TradeID string      `json:"tradeId"`
	AgentID AgentID     `json:"agentId"`
	Status  TradeStatus `json:"status"`
}
