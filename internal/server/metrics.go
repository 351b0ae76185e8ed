package server

import "github.com/prometheus/client_golang/prometheus"

// serverMetrics counts requests handled by operation kind.
type serverMetrics struct {
	requests *prometheus.CounterVec
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	m := &serverMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ignite", Subsystem: "server", Name: "requests_total",
			Help: "Total number of requests handled, by operation.",
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests)
	}
	return m
}
