// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Analysis
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "truthlens_analyses_total",
			Help: "Total number of analyzed contents by verdict",
		},
		[]string{"risk_level", "content_type", "source_app"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "truthlens_analysis_duration_seconds",
			Help:    "Time spent scoring one content",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		},
		[]string{"risk_level"},
	)

	AnalysisConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "truthlens_analysis_confidence",
			Help:    "Confidence of returned verdicts",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	PatternDetections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "truthlens_pattern_detections_total",
			Help: "Total number of detections per scam pattern",
		},
		[]string{"pattern"},
	)

	URLsFlagged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "truthlens_urls_flagged_total",
			Help: "Total number of suspicious URLs by category",
		},
		[]string{"category"},
	)

	RejectedInputs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "truthlens_rejected_inputs_total",
			Help: "Total number of contents rejected as invalid input",
		},
	)

	// Bulk
	BulkSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "truthlens_bulk_size",
			Help:    "Number of items per bulk request",
			Buckets: []float64{1, 2, 5, 10},
		},
	)

	// Cache
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "truthlens_cache_requests_total",
			Help: "Verdict cache lookups by result",
		},
		[]string{"result"},
	)

	// Feedback
	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "truthlens_feedback_total",
			Help: "Total number of feedback submissions",
		},
		[]string{"accurate"},
	)

	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "truthlens_reports_total",
			Help: "Total number of content reports by category",
		},
		[]string{"category"},
	)

	// Infrastructure
	ComponentErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "truthlens_component_errors_total",
			Help: "Errors from supporting components that did not fail the request",
		},
		[]string{"error_type", "component"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "truthlens_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "truthlens_stream_clients",
			Help: "Connected websocket clients",
		},
	)
)

// RecordAnalysis records one completed analysis
func RecordAnalysis(riskLevel, contentType, sourceApp string, confidence float64, patterns []string, duration time.Duration) {
	AnalysesTotal.WithLabelValues(riskLevel, contentType, sourceApp).Inc()
	AnalysisDuration.WithLabelValues(riskLevel).Observe(duration.Seconds())
	AnalysisConfidence.Observe(confidence)
	for _, p := range patterns {
		PatternDetections.WithLabelValues(p).Inc()
	}
}

// RecordFlaggedURL records a suspicious URL
func RecordFlaggedURL(category string) {
	URLsFlagged.WithLabelValues(category).Inc()
}

// RecordRejectedInput records content rejected before scoring
func RecordRejectedInput() {
	RejectedInputs.Inc()
}

// RecordBulk records the size of a bulk request
func RecordBulk(size int) {
	BulkSize.Observe(float64(size))
}

// RecordCacheHit records a verdict cache hit
func RecordCacheHit() {
	CacheRequests.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a verdict cache miss
func RecordCacheMiss() {
	CacheRequests.WithLabelValues("miss").Inc()
}

// RecordFeedback records a feedback submission
func RecordFeedback(accurate bool) {
	FeedbackTotal.WithLabelValues(strconv.FormatBool(accurate)).Inc()
}

// RecordReport records a content report
func RecordReport(category string) {
	ReportsTotal.WithLabelValues(category).Inc()
}

// RecordError records a non-fatal component error
func RecordError(errorType, component string) {
	ComponentErrors.WithLabelValues(errorType, component).Inc()
}

// RecordHTTPRequest records one served HTTP request
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if status == 0 {
		status = http.StatusOK
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// SetStreamClients sets the number of connected websocket clients
func SetStreamClients(n int) {
	StreamClients.Set(float64(n))
}
