// Package metrics exposes bridge and invocation metrics for the Map
// Console Container via Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics wraps the prometheus collectors for the console bridge.
type Metrics struct {
	registry *prometheus.Registry

	invocationsTotal *prometheus.CounterVec
	intentsTotal     *prometheus.CounterVec
	activeSessions   prometheus.Gauge
	sessionsTotal    prometheus.Counter
}

// New creates a metrics set on its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,

		invocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mcc",
				Name:      "invocations_total",
				Help:      "Browser function invocation attempts by outcome",
			},
			[]string{"function", "outcome"},
		),

		intentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mcc",
				Name:      "intents_total",
				Help:      "Northbound console intents by action and outcome",
			},
			[]string{"action", "outcome"},
		),

		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mcc",
				Name:      "active_sessions",
				Help:      "Currently attached browser sessions",
			},
		),

		sessionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mcc",
				Name:      "sessions_total",
				Help:      "Browser sessions attached since start",
			},
		),
	}

	registry.MustRegister(m.invocationsTotal, m.intentsTotal, m.activeSessions, m.sessionsTotal)
	return m
}

// RecordInvocation counts one invocation attempt for a function.
// Outcome is one of ok, not_ready, cancelled, timeout, error.
func (m *Metrics) RecordInvocation(function, outcome string) {
	m.invocationsTotal.WithLabelValues(function, outcome).Inc()
}

// RecordIntent counts one northbound intent.
func (m *Metrics) RecordIntent(action, outcome string) {
	m.intentsTotal.WithLabelValues(action, outcome).Inc()
}

// SessionAttached tracks a new browser session.
func (m *Metrics) SessionAttached() {
	m.sessionsTotal.Inc()
	m.activeSessions.Inc()
}

// SessionDetached tracks a closed browser session.
func (m *Metrics) SessionDetached() {
	m.activeSessions.Dec()
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
