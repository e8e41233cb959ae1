// Package metrics holds the Prometheus collectors for the lending service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OpCheckout = "checkout"
	OpReturn   = "return"

	ResultOK       = "ok"
	ResultConflict = "conflict"
	ResultError    = "error"
)

type Metrics struct {
	// RPCRequests counts finished RPCs by method and gRPC code
	RPCRequests *prometheus.CounterVec

	RPCDuration *prometheus.HistogramVec

	// LendingTransitions counts checkout/return outcomes; conflict covers
	// both the availability pre-check and a lost conditional write
	LendingTransitions *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RPCRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_rpc_requests_total",
				Help: "Finished RPCs by method and status code.",
			},
			[]string{"method", "code"},
		),
		RPCDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "library_rpc_duration_seconds",
				Help:    "RPC latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method"},
		),
		LendingTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_lending_transitions_total",
				Help: "Checkout and return attempts by outcome.",
			},
			[]string{"op", "result"},
		),
	}
}

func (m *Metrics) ObserveTransition(op, result string) {
	m.LendingTransitions.WithLabelValues(op, result).Inc()
}
