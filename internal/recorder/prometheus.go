package recorder

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder exports analysis events as Prometheus metrics on its own registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec   // labels: source, outcome
	AnalysisDuration *prometheus.HistogramVec // labels: source
	SeriesRows       prometheus.Histogram
	TrendsTotal      *prometheus.CounterVec // labels: trend
}

// NewPrometheusRecorder registers and returns all analysis metrics.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trendscope_analyses_total",
			Help: "Analysis requests by series source and outcome",
		}, []string{"source", "outcome"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trendscope_analysis_duration_seconds",
			Help:    "End-to-end analysis latency including the fetch",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		SeriesRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trendscope_series_rows",
			Help:    "Rows per fetched price series",
			Buckets: []float64{20, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		TrendsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trendscope_trends_total",
			Help: "Last-row trend labels of successful analyses",
		}, []string{"trend"}),
	}
	r.registry.MustRegister(
		r.AnalysesTotal,
		r.AnalysisDuration,
		r.SeriesRows,
		r.TrendsTotal,
	)
	return r
}

func (r *PrometheusRecorder) RecordAnalysis(evt *AnalysisEvent) error {
	r.AnalysesTotal.WithLabelValues(evt.Source, evt.Outcome).Inc()
	r.AnalysisDuration.WithLabelValues(evt.Source).Observe(evt.Duration.Seconds())
	if evt.Rows > 0 {
		r.SeriesRows.Observe(float64(evt.Rows))
	}
	if evt.Trend != "" {
		r.TrendsTotal.WithLabelValues(string(evt.Trend)).Inc()
	}
	return nil
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *PrometheusRecorder) Close() error { return nil }
