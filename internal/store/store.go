package store

import (
	"context"

	"github.com/mira-markets/mira-engine/internal/portfolio"
	"github.com/mira-markets/mira-engine/pkg/types"
)

// Store is the pluggable boundary through which portfolios and trades are
// durably stored. The cycle runner depends only on this interface; the
// concrete implementation (postgres or noop) is injected at setup.
type Store interface {
	// GetPortfolio returns the latest durable snapshot for an agent, or
	// (nil, nil) when none exists. Absence is a normal outcome, not an
	// error. A non-nil error means the record could not be loaded or
	// normalized; callers fall back to a freshly initialized portfolio.
	GetPortfolio(ctx context.Context, agentID types.AgentID) (*portfolio.Portfolio, error)

	// SavePortfolio upserts the complete portfolio keyed by agent id.
	// There are no merge semantics; callers pass the whole object.
	SavePortfolio(ctx context.Context, p *portfolio.Portfolio) error

	// SaveTrade records a new trade attempt under a trade-scoped key and
	// updates the market-scoped latest-trade index.
	SaveTrade(ctx context.Context, trade *types.TradeRecord) error

	// MarketHasTrade reports whether the market's latest trade is still
	// open or pending. Lookup failures are returned to the caller, which
	// applies its duplicate-check policy.
	MarketHasTrade(ctx context.Context, marketID string) (bool, error)

	// Close closes the storage connection.
	Close() error
}

// DuplicateCheckPolicy names how a failed MarketHasTrade lookup is
// interpreted by trade generation.
type DuplicateCheckPolicy string

const (
	// DuplicateCheckFailOpen treats a failed lookup as "no trade exists",
	// favoring availability over strict dedup: a transient storage error
	// never blocks trade generation.
	DuplicateCheckFailOpen DuplicateCheckPolicy = "fail-open"

	// DuplicateCheckFailClosed treats a failed lookup as "trade exists",
	// suppressing generation for that market until the store recovers.
	DuplicateCheckFailClosed DuplicateCheckPolicy = "fail-closed"
)
