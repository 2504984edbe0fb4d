package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the adapter's counters on a private registry, so multiple
// handlers (typical in tests) never fight over the global one.
type metrics struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	restarts    prometheus.Counter
	badRequests *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parcours_transitions_total",
				Help: "Wizard transitions applied, by event and resulting state.",
			},
			[]string{"event", "state"},
		),
		restarts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "parcours_flow_restarts_total",
				Help: "Flows restarted because the tab id had no snapshot.",
			},
		),
		badRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parcours_bad_requests_total",
				Help: "Rejected flow requests, by reason.",
			},
			[]string{"reason"},
		),
	}
	m.registry.MustRegister(m.transitions, m.restarts, m.badRequests)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
