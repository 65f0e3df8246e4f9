package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/mira-markets/mira-engine/internal/portfolio"
	"github.com/mira-markets/mira-engine/pkg/types"
)

// ErrStoreDown is the error injected by FailingStore.
var ErrStoreDown = errors.New("store unavailable")

// MemoryStore is an in-memory Store implementation for tests.
type MemoryStore struct {
	mu         sync.Mutex
	Portfolios map[types.AgentID]*portfolio.Portfolio
	Trades     []*types.TradeRecord
	Index      map[string]types.TradeStatus
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Portfolios: make(map[types.AgentID]*portfolio.Portfolio),
		Index:      make(map[string]types.TradeStatus),
	}
}

// GetPortfolio returns the stored portfolio or (nil, nil) when absent.
func (m *MemoryStore) GetPortfolio(ctx context.Context, agentID types.AgentID) (*portfolio.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Portfolios[agentID], nil
}

// SavePortfolio stores the portfolio keyed by agent id.
func (m *MemoryStore) SavePortfolio(ctx context.Context, p *portfolio.Portfolio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Portfolios[p.AgentID] = p
	return nil
}

// SaveTrade appends the trade and updates the market index.
func (m *MemoryStore) SaveTrade(ctx context.Context, trade *types.TradeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Trades = append(m.Trades, trade)
	m.Index[trade.MarketID] = trade.Status
	return nil
}

// MarketHasTrade reports an open or pending indexed trade.
func (m *MemoryStore) MarketHasTrade(ctx context.Context, marketID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status, ok := m.Index[marketID]
	if !ok {
		return false, nil
	}
	return status == types.TradeOpen || status == types.TradePending, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// SavedTrades returns a copy of the recorded trades.
func (m *MemoryStore) SavedTrades() []*types.TradeRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*types.TradeRecord, len(m.Trades))
	copy(out, m.Trades)
	return out
}

// FailingStore fails every operation with ErrStoreDown. Loads report the
// failure, writes fail, and MarketHasTrade returns an error so callers can
// exercise their duplicate-check policy.
type FailingStore struct{}

// GetPortfolio fails.
func (f *FailingStore) GetPortfolio(ctx context.Context, agentID types.AgentID) (*portfolio.Portfolio, error) {
	return nil, ErrStoreDown
}

// SavePortfolio fails.
func (f *FailingStore) SavePortfolio(ctx context.Context, p *portfolio.Portfolio) error {
	return ErrStoreDown
}

// SaveTrade fails.
func (f *FailingStore) SaveTrade(ctx context.Context, trade *types.TradeRecord) error {
	return ErrStoreDown
}

// MarketHasTrade fails.
func (f *FailingStore) MarketHasTrade(ctx context.Context, marketID string) (bool, error) {
	return false, ErrStoreDown
}

// Close is a no-op.
func (f *FailingStore) Close() error {
	return nil
}
