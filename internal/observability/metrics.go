package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	requestsTotal          *prometheus.CounterVec
	requestLatencySeconds  *prometheus.HistogramVec
	requestErrorsTotal     *prometheus.CounterVec
	notificationsPublished *prometheus.CounterVec
	streamClientsActive    prometheus.Gauge
	uploadLatencySeconds   prometheus.Histogram
	uploadRejectedTotal    *prometheus.CounterVec
	reportsGeneratedTotal  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "madrasah_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		requestLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "madrasah_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		requestErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "madrasah_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		notificationsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "madrasah_notifications_published_total",
			Help: "Total number of notifications published, by type.",
		}, []string{"type"})

		streamClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "madrasah_stream_clients_active",
			Help: "Number of currently connected notification stream clients.",
		})

		uploadLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "madrasah_upload_latency_seconds",
			Help:    "Latency distribution for attachment uploads.",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		uploadRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "madrasah_upload_rejected_total",
			Help: "Total number of rejected attachment uploads, by reason.",
		}, []string{"reason"})

		reportsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "madrasah_reports_generated_total",
			Help: "Total number of AI narrative reports, by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(
			requestsTotal,
			requestLatencySeconds,
			requestErrorsTotal,
			notificationsPublished,
			streamClientsActive,
			uploadLatencySeconds,
			uploadRejectedTotal,
			reportsGeneratedTotal,
		)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return requestLatencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return requestErrorsTotal
}

// NotificationsPublishedTotal exposes the published-notification counter.
func NotificationsPublishedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsPublished
}

// StreamClientsActive exposes the connected stream client gauge.
func StreamClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return streamClientsActive
}

// UploadLatency exposes the upload latency histogram.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatencySeconds
}

// UploadRejected exposes the rejected-upload counter.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejectedTotal
}

// ReportsGenerated exposes the AI report outcome counter.
func ReportsGenerated() *prometheus.CounterVec {
	RegisterMetrics()
	return reportsGeneratedTotal
}
