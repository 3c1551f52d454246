// Package metrics exposes Prometheus counters for the analyzer's
// operational surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the analyzer
type Metrics struct {
	UploadsTotal      prometheus.Counter
	UploadErrorsTotal *prometheus.CounterVec
	RowsParsedTotal   prometheus.Counter
	RowsDroppedTotal  prometheus.Counter

	FilterAppliesTotal prometheus.Counter
	ExportsTotal       *prometheus.CounterVec
	SessionsActive     prometheus.Gauge

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		UploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campaign_uploads_total",
			Help: "Total number of successfully processed CSV uploads",
		}),
		UploadErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_upload_errors_total",
			Help: "Total number of rejected uploads by failure kind",
		}, []string{"kind"}),
		RowsParsedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campaign_rows_parsed_total",
			Help: "Total number of CSV data rows parsed into records",
		}),
		RowsDroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campaign_rows_dropped_total",
			Help: "Total number of malformed CSV rows dropped",
		}),
		FilterAppliesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campaign_filter_applies_total",
			Help: "Total number of filter criteria applications",
		}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_exports_total",
			Help: "Total number of export artifacts produced by format",
		}, []string{"format"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "campaign_sessions_active",
			Help: "Number of datasets currently held in memory",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_http_requests_total",
			Help: "Total HTTP requests by method, path, and status",
		}, []string{"method", "path", "status"}),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "campaign_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		registry: reg,
	}

	reg.MustRegister(
		m.UploadsTotal,
		m.UploadErrorsTotal,
		m.RowsParsedTotal,
		m.RowsDroppedTotal,
		m.FilterAppliesTotal,
		m.ExportsTotal,
		m.SessionsActive,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
	)

	return m
}

// Handler returns the HTTP handler serving the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
