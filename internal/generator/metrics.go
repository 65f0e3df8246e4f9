package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TradesGeneratedTotal tracks generated trades per agent.
	TradesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mira_generator_trades_total",
			Help: "Total number of trades generated",
		},
		[]string{"agent"},
	)

	// DuplicateSkipsTotal tracks markets skipped for an existing trade.
	DuplicateSkipsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_generator_duplicate_skips_total",
		Help: "Total number of markets skipped due to an existing trade",
	})

	// DuplicateCheckFailuresTotal tracks failed duplicate-check lookups.
	DuplicateCheckFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_generator_duplicate_check_failures_total",
		Help: "Total number of failed duplicate-check lookups",
	})

	// TradeWriteFailuresTotal tracks trade writes that failed.
	TradeWriteFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_generator_trade_write_failures_total",
		Help: "Total number of failed trade writes",
	})
)
