// Package metrics provides Prometheus metrics for depot repository operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Repository operation metrics
	RepositoryOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "depot_repository_ops_total",
			Help: "Total number of repository operations",
		},
		[]string{"operation", "status"}, // status: "success", "failure"
	)

	RepositoryOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "depot_repository_op_duration_seconds",
			Help:    "Repository operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Transfer metrics
	TransferBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "depot_transfer_bytes_total",
			Help: "Total number of bytes moved through transfer streams",
		},
		[]string{"direction"}, // "inbound", "outbound"
	)
)
