package bitcask

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the prometheus collectors exposed by a Store. Modeled on
// the counter/gauge split used for WAL instrumentation: a monotonic
// counter per operation kind, plus gauges for the state a reader would
// otherwise have to infer from log files.
type metrics struct {
	sets        prometheus.Counter
	gets        prometheus.Counter
	removes     prometheus.Counter
	rotations   prometheus.Counter
	compactions prometheus.Counter
	activeBytes prometheus.Gauge
	oldLogBytes prometheus.Gauge
	liveKeys    prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		sets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite", Subsystem: "bitcask", Name: "set_total",
			Help: "Total number of successful set operations.",
		}),
		gets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite", Subsystem: "bitcask", Name: "get_total",
			Help: "Total number of get operations, regardless of hit/miss.",
		}),
		removes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite", Subsystem: "bitcask", Name: "remove_total",
			Help: "Total number of successful remove operations.",
		}),
		rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite", Subsystem: "bitcask", Name: "rotations_total",
			Help: "Total number of active-segment rotations.",
		}),
		compactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ignite", Subsystem: "bitcask", Name: "compactions_total",
			Help: "Total number of compaction passes.",
		}),
		activeBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ignite", Subsystem: "bitcask", Name: "active_segment_bytes",
			Help: "Current byte length of the active segment.",
		}),
		oldLogBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ignite", Subsystem: "bitcask", Name: "old_log_bytes",
			Help: "Cumulative byte length of sealed segments since the last compaction.",
		}),
		liveKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ignite", Subsystem: "bitcask", Name: "live_keys",
			Help: "Number of keys currently tracked by the index.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.sets, m.gets, m.removes, m.rotations,
			m.compactions, m.activeBytes, m.oldLogBytes, m.liveKeys,
		)
	}

	return m
}
