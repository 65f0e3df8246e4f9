package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/mira-markets/mira-engine/internal/portfolio"
	"github.com/mira-markets/mira-engine/pkg/types"
	"go.uber.org/zap"
)

// PostgresStore implements Store using PostgreSQL. Portfolios are stored as
// one jsonb record per agent; trades get one row each plus a market-scoped
// index row answering MarketHasTrade without scanning all trades.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStore creates a new PostgreSQL store.
func NewPostgresStore(cfg *PostgresConfig) (*PostgresStore, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Test connection
	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-store-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStore{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// GetPortfolio loads and normalizes the persisted portfolio for an agent.
// Returns (nil, nil) when no record exists.
func (p *PostgresStore) GetPortfolio(ctx context.Context, agentID types.AgentID) (*portfolio.Portfolio, error) {
	query := `SELECT record FROM agent_portfolios WHERE agent_id = $1`

	var raw []byte
	err := p.db.QueryRowContext(ctx, query, string(agentID)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		StoreErrorsTotal.WithLabelValues("get_portfolio").Inc()
		return nil, fmt.Errorf("query portfolio: %w", err)
	}

	var rec portfolio.Record
	err = json.Unmarshal(raw, &rec)
	if err != nil {
		StoreErrorsTotal.WithLabelValues("get_portfolio").Inc()
		return nil, fmt.Errorf("decode portfolio record: %w", err)
	}

	pf, err := rec.Normalize()
	if err != nil {
		StoreErrorsTotal.WithLabelValues("get_portfolio").Inc()
		return nil, fmt.Errorf("normalize portfolio record: %w", err)
	}

	PortfolioLoadsTotal.Inc()

	return pf, nil
}

// SavePortfolio upserts the complete portfolio record keyed by agent id.
func (p *PostgresStore) SavePortfolio(ctx context.Context, pf *portfolio.Portfolio) error {
	raw, err := json.Marshal(portfolio.NewRecord(pf))
	if err != nil {
		return fmt.Errorf("encode portfolio record: %w", err)
	}

	query := `
		INSERT INTO agent_portfolios (agent_id, record, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (agent_id) DO UPDATE SET record = $2, updated_at = NOW()
	`

	_, err = p.db.ExecContext(ctx, query, string(pf.AgentID), raw)
	if err != nil {
		StoreErrorsTotal.WithLabelValues("save_portfolio").Inc()
		return fmt.Errorf("upsert portfolio: %w", err)
	}

	PortfolioSavesTotal.Inc()

	p.logger.Debug("portfolio-saved",
		zap.String("agent", string(pf.AgentID)),
		zap.Float64("equity", pf.CurrentCapitalUSD),
		zap.Int("open-positions", len(pf.OpenPositions)))

	return nil
}

// SaveTrade inserts the trade row and upserts the market-scoped index in a
// single transaction so the index never points at a missing trade.
func (p *PostgresStore) SaveTrade(ctx context.Context, trade *types.TradeRecord) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		StoreErrorsTotal.WithLabelValues("save_trade").Inc()
		return fmt.Errorf("begin tx: %w", err)
	}

	insertTrade := `
		INSERT INTO agent_trades (
			id, agent_id, market_id, category, side, status, opened_at, closed_at, pnl_usd
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.ExecContext(ctx, insertTrade,
		trade.ID,
		string(trade.AgentID),
		trade.MarketID,
		trade.Category,
		string(trade.Side),
		string(trade.Status),
		trade.OpenedAt,
		trade.ClosedAt,
		trade.PnlUSD,
	)
	if err != nil {
		_ = tx.Rollback()
		StoreErrorsTotal.WithLabelValues("save_trade").Inc()
		return fmt.Errorf("insert trade: %w", err)
	}

	upsertIndex := `
		INSERT INTO market_trades (market_id, trade_id, agent_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (market_id) DO UPDATE SET trade_id = $2, agent_id = $3, status = $4
	`

	_, err = tx.ExecContext(ctx, upsertIndex,
		trade.MarketID,
		trade.ID,
		string(trade.AgentID),
		string(trade.Status),
	)
	if err != nil {
		_ = tx.Rollback()
		StoreErrorsTotal.WithLabelValues("save_trade").Inc()
		return fmt.Errorf("upsert market trade index: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		StoreErrorsTotal.WithLabelValues("save_trade").Inc()
		return fmt.Errorf("commit tx: %w", err)
	}

	TradeSavesTotal.Inc()

	p.logger.Debug("trade-saved",
		zap.String("trade-id", trade.ID),
		zap.String("agent", string(trade.AgentID)),
		zap.String("market-id", trade.MarketID),
		zap.String("status", string(trade.Status)))

	return nil
}

// MarketHasTrade reports whether the market's latest trade is OPEN or
// PENDING. No index row means no trade.
func (p *PostgresStore) MarketHasTrade(ctx context.Context, marketID string) (bool, error) {
	query := `SELECT status FROM market_trades WHERE market_id = $1`

	var status string
	err := p.db.QueryRowContext(ctx, query, marketID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		StoreErrorsTotal.WithLabelValues("market_has_trade").Inc()
		return false, fmt.Errorf("query market trade index: %w", err)
	}

	switch types.TradeStatus(status) {
	case types.TradeOpen, types.TradePending:
		return true, nil
	default:
		return false, nil
	}
}

// Close closes the database connection.
func (p *PostgresStore) Close() error {
	p.logger.Info("closing-postgres-store")
	return p.db.Close()
}
