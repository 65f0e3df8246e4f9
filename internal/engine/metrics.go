package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CyclesTotal tracks completed trading cycles.
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_engine_cycles_total",
		Help: "Total number of completed trading cycles",
	})

	// CyclesFailedTotal tracks cycles aborted by a data-source failure.
	CyclesFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_engine_cycles_failed_total",
		Help: "Total number of trading cycles aborted before agents ran",
	})

	// CycleDurationSeconds tracks wall-clock duration of full cycles.
	CycleDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mira_engine_cycle_duration_seconds",
		Help:    "Duration of full trading cycles",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	// AgentCycleFailuresTotal tracks per-agent cycle failures.
	AgentCycleFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mira_engine_agent_cycle_failures_total",
			Help: "Total number of failed per-agent cycle passes",
		},
		[]string{"agent"},
	)

	// AgentCandidateMarkets tracks the latest candidate count per agent.
	AgentCandidateMarkets = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mira_engine_agent_candidate_markets",
			Help: "Candidate markets passing the agent's thresholds in the latest cycle",
		},
		[]string{"agent"},
	)

	// TicksSkippedTotal tracks scheduler ticks skipped due to an in-flight cycle.
	TicksSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mira_engine_ticks_skipped_total",
		Help: "Total number of scheduler ticks skipped because a cycle was still running",
	})
)
