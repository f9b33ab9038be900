package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run-level Prometheus metrics. promauto registers them on the default
// registry; batch runs that expose no scrape endpoint simply carry the
// bookkeeping for free.
var (
	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "coexpressnet_stage_duration_seconds",
			Help: "Wall-clock duration of each pipeline stage",
			// Stages range from sub-second correlation on toy inputs to
			// hour-scale TOM products on full transcriptomes.
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		},
		[]string{"stage"},
	)

	genesProcessed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coexpressnet_genes",
		Help: "Gene count of the most recent pipeline run",
	})

	modulesDetected = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coexpressnet_modules",
			Help: "Modules detected in the most recent run, per deepSplit level",
		},
		[]string{"deep_split"},
	)

	degeneratePairs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coexpressnet_degenerate_pairs_total",
		Help: "Gene pairs flagged numerically degenerate by the correlation stage",
	})
)

// observeStage records a stage duration given its start time.
func observeStage(stage string, start time.Time) {
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
