package store

import (
	"context"

	"github.com/mira-markets/mira-engine/internal/portfolio"
	"github.com/mira-markets/mira-engine/pkg/types"
	"go.uber.org/zap"
)

// NoopStore implements Store without durable state. It is the stand-in used
// when no database is configured: every load reports absence, every write
// succeeds silently. Agents run with fresh portfolios each cycle.
type NoopStore struct {
	logger *zap.Logger
}

// NewNoopStore creates a new no-op store.
func NewNoopStore(logger *zap.Logger) *NoopStore {
	logger.Info("noop-store-initialized")
	return &NoopStore{logger: logger}
}

// GetPortfolio always reports no persisted record.
func (n *NoopStore) GetPortfolio(ctx context.Context, agentID types.AgentID) (*portfolio.Portfolio, error) {
	return nil, nil
}

// SavePortfolio discards the portfolio.
func (n *NoopStore) SavePortfolio(ctx context.Context, p *portfolio.Portfolio) error {
	n.logger.Debug("noop-save-portfolio",
		zap.String("agent", string(p.AgentID)),
		zap.Float64("equity", p.CurrentCapitalUSD))
	return nil
}

// SaveTrade discards the trade record.
func (n *NoopStore) SaveTrade(ctx context.Context, trade *types.TradeRecord) error {
	n.logger.Debug("noop-save-trade",
		zap.String("trade-id", trade.ID),
		zap.String("market-id", trade.MarketID))
	return nil
}

// MarketHasTrade always reports no existing trade.
func (n *NoopStore) MarketHasTrade(ctx context.Context, marketID string) (bool, error) {
	return false, nil
}

// Close is a no-op.
func (n *NoopStore) Close() error {
	n.logger.Info("closing-noop-store")
	return nil
}
