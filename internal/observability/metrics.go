package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	httpRequestsTotal   *prometheus.CounterVec
	httpLatencySeconds  *prometheus.HistogramVec
	postsCreatedTotal   *prometheus.CounterVec
	likesToggledTotal   prometheus.Counter
	messagesSentTotal   *prometheus.CounterVec
	captionsTotal       *prometheus.CounterVec
	demoModeActiveGauge prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nexio_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nexio_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		postsCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nexio_posts_created_total",
			Help: "Posts added to the feed, labelled by post type.",
		}, []string{"type"})

		likesToggledTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nexio_likes_toggled_total",
			Help: "Like toggles applied to the local feed.",
		})

		messagesSentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nexio_messages_sent_total",
			Help: "Chat messages appended locally, labelled by message type.",
		}, []string{"type"})

		captionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nexio_captions_generated_total",
			Help: "Caption generation attempts, labelled by outcome.",
		}, []string{"outcome"})

		demoModeActiveGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nexio_demo_mode_active",
			Help: "1 when the store serves the built-in demo dataset, 0 when live.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			postsCreatedTotal,
			likesToggledTotal,
			messagesSentTotal,
			captionsTotal,
			demoModeActiveGauge,
		)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// PostsCreated exposes the counter for feed additions.
func PostsCreated() *prometheus.CounterVec {
	RegisterMetrics()
	return postsCreatedTotal
}

// LikesToggled exposes the counter for like toggles.
func LikesToggled() prometheus.Counter {
	RegisterMetrics()
	return likesToggledTotal
}

// MessagesSent exposes the counter for appended chat messages.
func MessagesSent() *prometheus.CounterVec {
	RegisterMetrics()
	return messagesSentTotal
}

// CaptionsGenerated exposes the counter for caption generation outcomes.
func CaptionsGenerated() *prometheus.CounterVec {
	RegisterMetrics()
	return captionsTotal
}

// DemoModeActive exposes the demo-dataset gauge.
func DemoModeActive() prometheus.Gauge {
	RegisterMetrics()
	return demoModeActiveGauge
}
