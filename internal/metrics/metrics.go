// Package metrics holds the process-wide prometheus collectors for the
// chain. There is no exposition endpoint; callers read the registry
// directly (the seed command logs a summary, tests use testutil).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BlocksAppended counts blocks appended across all chains in the process.
	BlocksAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hashchain_blocks_appended_total",
		Help: "Total number of blocks appended.",
	})

	// ChainHeight tracks the index of the most recently appended block.
	ChainHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hashchain_chain_height",
		Help: "Index of the most recently appended block.",
	})

	// PayloadBytes observes the raw payload size of each appended block.
	PayloadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hashchain_append_payload_bytes",
		Help:    "Raw payload size of appended blocks.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})
)
