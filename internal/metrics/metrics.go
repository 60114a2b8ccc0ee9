// Package metrics Prometheus collectors for the appraisal service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "profitlogic"

var (
	// Appraisals priced vehicles by path (lookup, batch) and priority
	Appraisals = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pricing",
		Name:      "appraisals_total",
		Help:      "Total number of vehicles priced",
	}, []string{"path", "priority"})

	// BatchDuration wall time of a batch run
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "pricing",
		Name:      "batch_duration_seconds",
		Help:      "Duration of batch appraisal runs",
		Buckets:   prometheus.DefBuckets,
	})

	// HistoryUploads sales log uploads by outcome (ok, empty, rejected, error)
	HistoryUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "history",
		Name:      "uploads_total",
		Help:      "Total number of dealer sales log uploads by outcome",
	}, []string{"outcome"})

	// VINDecodes VIN decode attempts by strategy and outcome
	VINDecodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "vin",
		Name:      "decodes_total",
		Help:      "Total number of VIN decode attempts by strategy and outcome",
	}, []string{"strategy", "outcome"})
)

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
