// Package metrics holds the Prometheus collectors for lifecycle and transfer
// operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeOK         = "ok"
	OutcomeFailed     = "failed"
	OutcomeIncomplete = "incomplete"
	OutcomeLocked     = "locked"
	OutcomeDegraded   = "degraded"
)

var (
	// LifecycleOperations counts matter/document/revision transitions.
	LifecycleOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docket_lifecycle_operations_total",
		Help: "Lifecycle transitions by operation and outcome",
	}, []string{"operation", "outcome"})

	// Transfers counts move/copy requests.
	Transfers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docket_transfers_total",
		Help: "Cross-matter transfers by operation and outcome",
	}, []string{"operation", "outcome"})

	// TransferDuration tracks end-to-end transfer latency.
	TransferDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docket_transfer_duration_seconds",
		Help:    "Transfer duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"operation"})

	// ReconciledMarkers counts markers processed by the reconciler.
	ReconciledMarkers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docket_reconciled_markers_total",
		Help: "Transfer markers processed by reconciliation, by outcome",
	}, []string{"outcome"})
)

// ObserveLifecycle records one lifecycle transition.
func ObserveLifecycle(operation string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	LifecycleOperations.WithLabelValues(operation, outcome).Inc()
}

// ObserveTransfer records one transfer and its duration.
func ObserveTransfer(operation, outcome string, started time.Time) {
	Transfers.WithLabelValues(operation, outcome).Inc()
	TransferDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
