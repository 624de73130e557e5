// Package metrics exposes Prometheus collectors for request outcomes and
// classifier behaviour.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sentiment"

// Metrics groups the collectors used by the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	requests       *prometheus.CounterVec
	classification *prometheus.HistogramVec
	unmapped       prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Handled requests by endpoint and response code.",
		}, []string{"endpoint", "code"}),
		classification: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_duration_seconds",
			Help:      "Time spent in a single classifier call.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"outcome"}),
		unmapped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unmapped_labels_total",
			Help:      "Classifier labels passed through without a canonical mapping.",
		}),
	}
}

// Request counts one handled request.
func (m *Metrics) Request(endpoint, code string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, code).Inc()
}

// ObserveClassification records the duration of a classifier call.
func (m *Metrics) ObserveClassification(d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.classification.WithLabelValues(outcome).Observe(d.Seconds())
}

// UnmappedLabel counts a label that had no canonical mapping. The label
// itself is not recorded; backends such as chat models can return any string.
func (m *Metrics) UnmappedLabel() {
	if m == nil {
		return
	}
	m.unmapped.Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
