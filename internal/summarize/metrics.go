package summarize

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ingestOutcomes counts finished ingestions by terminal status.
	ingestOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkbrief_ingest_total",
		Help: "Finished URL ingestions by terminal processing status.",
	}, []string{"status"})
	// fetchFailures counts content downloads that fell back to URL-only summarization.
	fetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkbrief_fetch_failures_total",
		Help: "Content fetches that failed and were recovered by the pipeline.",
	})
	// ingestDuration observes the wall time of the full pipeline run.
	ingestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "linkbrief_ingest_duration_seconds",
		Help:    "Duration of the fetch-summarize-store pipeline.",
		Buckets: prometheus.DefBuckets,
	})
)
