package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// TEMPDROP decode pipeline.
type Metrics struct {
	MessagesProcessed prometheus.Counter
	MessagesFailed    prometheus.Counter
	DecodeErrors      prometheus.Counter
	LocationWarnings  prometheus.Counter
	DriftCorrected    prometheus.Counter
	ProfilesPublished prometheus.Counter
	PipelineRunning   prometheus.Gauge

	LevelsPerMessage   prometheus.Histogram
	ProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tempdrop_etl",
			Name:      "messages_processed_total",
			Help:      "Total TEMPDROP messages decoded and written.",
		}),
		MessagesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tempdrop_etl",
			Name:      "messages_failed_total",
			Help:      "Total TEMPDROP messages that failed the pipeline.",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tempdrop_etl",
			Name:      "decode_errors_total",
			Help:      "Total failures of the external decode routine.",
		}),
		LocationWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tempdrop_etl",
			Name:      "location_warnings_total",
			Help:      "Total REL/SPG/SPL markers that could not be parsed.",
		}),
		DriftCorrected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tempdrop_etl",
			Name:      "drift_corrected_total",
			Help:      "Total messages with drift-corrected positions.",
		}),
		ProfilesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tempdrop_etl",
			Name:      "profiles_published_total",
			Help:      "Total decoded profiles published to the sink topic.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tempdrop_etl",
			Name:      "pipeline_running",
			Help:      "1 when the watcher is active, 0 when shut down.",
		}),
		LevelsPerMessage: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tempdrop_etl",
			Name:      "levels_per_message",
			Help:      "Number of retained vertical levels per decoded message.",
			Buckets:   []float64{1, 5, 10, 20, 30, 50, 75, 100},
		}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tempdrop_etl",
			Name:      "processing_duration_seconds",
			Help:      "Duration of a complete decode-interpolate-write run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	prometheus.MustRegister(
		m.MessagesProcessed,
		m.MessagesFailed,
		m.DecodeErrors,
		m.LocationWarnings,
		m.DriftCorrected,
		m.ProfilesPublished,
		m.PipelineRunning,
		m.LevelsPerMessage,
		m.ProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesProcessed:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tempdrop_etl", Name: "messages_processed_total"}),
		MessagesFailed:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tempdrop_etl", Name: "messages_failed_total"}),
		DecodeErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tempdrop_etl", Name: "decode_errors_total"}),
		LocationWarnings:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tempdrop_etl", Name: "location_warnings_total"}),
		DriftCorrected:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tempdrop_etl", Name: "drift_corrected_total"}),
		ProfilesPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tempdrop_etl", Name: "profiles_published_total"}),
		PipelineRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "tempdrop_etl", Name: "pipeline_running"}),
		LevelsPerMessage:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "tempdrop_etl", Name: "levels_per_message"}),
		ProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "tempdrop_etl", Name: "processing_duration_seconds"}),
	}
}
