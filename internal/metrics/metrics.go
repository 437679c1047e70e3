// Package metrics exposes render and static-asset counters for Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	RendersTotal          *prometheus.CounterVec
	RenderDurationSeconds prometheus.Histogram
	StaticRequestsTotal   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ssrkit_renders_total",
			Help: "Server-side renders by result.",
		}, []string{"result"}),
		RenderDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ssrkit_render_duration_seconds",
			Help:    "Time spent in the bundle renderer per request.",
			Buckets: prometheus.DefBuckets,
		}),
		StaticRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ssrkit_static_requests_total",
			Help: "Static files served by mount.",
		}, []string{"mount"}),
	}

	reg.MustRegister(
		m.RendersTotal,
		m.RenderDurationSeconds,
		m.StaticRequestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveRender(result string, d time.Duration) {
	m.RendersTotal.WithLabelValues(result).Inc()
	m.RenderDurationSeconds.Observe(d.Seconds())
}

func (m *Metrics) ObserveStatic(mount string) {
	m.StaticRequestsTotal.WithLabelValues(mount).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
