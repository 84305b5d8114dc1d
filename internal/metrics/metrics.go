package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 业务监控指标
type BusinessMetrics struct {
	CommitmentsCreatedTotal   prometheus.Counter
	CommitmentsCancelledTotal prometheus.Counter
	SeasonsCompletedTotal     prometheus.Counter
	ReconcileSweepDuration    prometheus.Histogram
}

// Business 全局指标实例
var Business *BusinessMetrics

func init() {
	Business = &BusinessMetrics{
		CommitmentsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eon_commitments_created_total",
			Help: "The total number of season commitments created",
		}),
		CommitmentsCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eon_commitments_cancelled_total",
			Help: "The total number of season commitments cancelled",
		}),
		SeasonsCompletedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eon_seasons_completed_total",
			Help: "The total number of seasons that reached their goal",
		}),
		ReconcileSweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "eon_reconcile_sweep_duration_seconds",
			Help:    "Duration of season completion reconcile sweeps",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
