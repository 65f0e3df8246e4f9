package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HitsTotal tracks cache hits.
	HitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_cache_hits_total",
		Help: "Total number of cache hits",
	})

	// MissesTotal tracks cache misses.
	MissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_cache_misses_total",
		Help: "Total number of cache misses",
	})

	// SetsTotal tracks accepted cache writes.
	SetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_cache_sets_total",
		Help: "Total number of cache sets",
	})
)
