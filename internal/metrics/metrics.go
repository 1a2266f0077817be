// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ericfisherdev/academia/internal/application"
	"github.com/ericfisherdev/academia/internal/domain/model"
)

// Compile-time interface satisfaction check.
var _ application.Recorder = (*Collector)(nil)

// Collector is the Prometheus implementation of application.Recorder. It also
// counts HTTP responses by status code.
type Collector struct {
	providerCalls   *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
	dispatches      *prometheus.CounterVec
	translations    *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academia_provider_calls_total",
			Help: "Provider calls by provider and result.",
		}, []string{"provider", "result"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "academia_provider_latency_seconds",
			Help:    "Provider call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academia_dispatches_total",
			Help: "Completed query dispatches by outcome.",
		}, []string{"outcome"}),
		translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academia_translations_total",
			Help: "Completed translations by target language.",
		}, []string{"language"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academia_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.providerCalls,
		c.providerLatency,
		c.dispatches,
		c.translations,
		c.httpStatus,
	)

	return c
}

// RecordProviderCall records one provider call and its latency.
func (c *Collector) RecordProviderCall(provider model.Provider, failed bool, latency time.Duration) {
	result := "success"
	if failed {
		result = "error"
	}
	c.providerCalls.WithLabelValues(string(provider), result).Inc()
	c.providerLatency.WithLabelValues(string(provider)).Observe(latency.Seconds())
}

// RecordDispatch records a completed dispatch.
func (c *Collector) RecordDispatch(outcome model.OutcomeKind) {
	c.dispatches.WithLabelValues(string(outcome)).Inc()
}

// RecordTranslation records a completed translation.
func (c *Collector) RecordTranslation(languageCode string) {
	c.translations.WithLabelValues(languageCode).Inc()
}

// RecordHTTPStatus records an HTTP response status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
