package session

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics records tick loop activity on a registry private to the session,
// so tests and embedded sessions never collide on the global registerer.
type metrics struct {
	registry       *prometheus.Registry
	ticks          prometheus.Counter
	tickDuration   prometheus.Histogram
	systemDuration *prometheus.HistogramVec
	systemErrors   *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "burstworld",
			Name:      "ticks_total",
			Help:      "Number of completed ticks.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "burstworld",
			Name:      "tick_duration_seconds",
			Help:      "Wall time of a completed tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		systemDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "burstworld",
			Name:      "system_duration_seconds",
			Help:      "Wall time of a single system run.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"system", "plugin"}),
		systemErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "burstworld",
			Name:      "system_errors_total",
			Help:      "Number of system runs that returned an error.",
		}, []string{"system", "plugin"}),
	}
	m.registry.MustRegister(m.ticks, m.tickDuration, m.systemDuration, m.systemErrors)
	return m
}

// SystemRan implements app.Observer.
func (m *metrics) SystemRan(system, plugin string, d time.Duration, err error) {
	m.systemDuration.WithLabelValues(system, plugin).Observe(d.Seconds())
	if err != nil {
		m.systemErrors.WithLabelValues(system, plugin).Inc()
	}
}

// TickDone implements app.Observer.
func (m *metrics) TickDone(_ uint64, d time.Duration) {
	m.ticks.Inc()
	m.tickDuration.Observe(d.Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
