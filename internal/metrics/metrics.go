// internal/metrics/metrics.go
//
// Prometheus collectors for the HTTP service, registered on a private
// Registry so tests can build as many as they like.

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "globetrotter"

// Share render results.
const (
	ResultOK          = "ok"
	ResultError       = "error"
	ResultRateLimited = "rate_limited"
)

// Metrics groups the service's collectors.
type Metrics struct {
	Registry *prometheus.Registry

	RoundsDealt   prometheus.Counter
	RoundFailures prometheus.Counter
	ShareRenders  *prometheus.CounterVec
	ShareDuration prometheus.Histogram
}

// New creates and registers every collector, plus the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RoundsDealt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_dealt_total",
			Help:      "Rounds served by GET /api/destination.",
		}),
		RoundFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "round_failures_total",
			Help:      "Round requests that could not be served.",
		}),
		ShareRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "share_renders_total",
			Help:      "Share card requests by result.",
		}, []string{"result"}),
		ShareDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "share_render_seconds",
			Help:      "Time spent rendering a share card.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}),
	}
	m.Registry.MustRegister(
		m.RoundsDealt,
		m.RoundFailures,
		m.ShareRenders,
		m.ShareDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveShare records one share render and how long it took.
func (m *Metrics) ObserveShare(result string, took time.Duration) {
	m.ShareRenders.WithLabelValues(result).Inc()
	if result != ResultRateLimited {
		m.ShareDuration.Observe(took.Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
