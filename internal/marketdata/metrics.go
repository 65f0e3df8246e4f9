package marketdata

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchDurationSeconds tracks market/news fetch latency by source.
	FetchDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mira_marketdata_fetch_duration_seconds",
			Help:    "Duration of market-data fetches",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// FetchErrorsTotal tracks fetch failures by source.
	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mira_marketdata_fetch_errors_total",
			Help: "Total number of failed market-data fetches",
		},
		[]string{"source"},
	)

	// MarketsFetchedTotal tracks markets returned across all fetches.
	MarketsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_marketdata_markets_fetched_total",
		Help: "Total number of markets returned by the markets API",
	})

	// StreamUpdatesTotal tracks price updates received on the stream.
	StreamUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_marketdata_stream_updates_total",
		Help: "Total number of streamed price updates",
	})

	// StreamReconnectsTotal tracks websocket reconnect attempts.
	StreamReconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_marketdata_stream_reconnects_total",
		Help: "Total number of price-stream reconnect attempts",
	})
)
