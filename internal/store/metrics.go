package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PortfolioLoadsTotal tracks successful portfolio loads.
	PortfolioLoadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_store_portfolio_loads_total",
		Help: "Total number of portfolio records loaded",
	})

	// PortfolioSavesTotal tracks successful portfolio upserts.
	PortfolioSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_store_portfolio_saves_total",
		Help: "Total number of portfolio records saved",
	})

	// TradeSavesTotal tracks successful trade writes.
	TradeSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_store_trade_saves_total",
		Help: "Total number of trade records saved",
	})

	// StoreErrorsTotal tracks storage-layer errors by operation.
	StoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mira_store_errors_total",
			Help: "Total number of storage errors",
		},
		[]string{"operation"},
	)
)
