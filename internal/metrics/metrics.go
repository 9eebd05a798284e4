package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "healthpoller"

// statuses is the fixed set of values the status gauge is labelled with.
var statuses = []string{"unknown", "healthy", "unhealthy"}

// Collector records probe outcomes.
type Collector struct {
	registry *prometheus.Registry

	probesTotal   *prometheus.CounterVec
	probeDuration prometheus.Histogram
	status        *prometheus.GaugeVec
}

// NewCollector creates a Collector and registers its metrics with registry.
// If registry is nil a fresh one is created. The status gauge starts at
// "unknown".
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,

		probesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "probes_total",
				Help:      "Total number of completed health probes",
			},
			[]string{"outcome"},
		),

		probeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "probe_duration_seconds",
				Help:      "Duration of health probes in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),

		status: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "status",
				Help:      "Current health status (1 for the active status, 0 otherwise)",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(c.probesTotal, c.probeDuration, c.status)
	c.setStatus("unknown")

	return c
}

// ObserveProbe records one completed probe that resolved to status.
func (c *Collector) ObserveProbe(status string, latency time.Duration) {
	c.probesTotal.WithLabelValues(status).Inc()
	c.probeDuration.Observe(latency.Seconds())
	c.setStatus(status)
}

func (c *Collector) setStatus(current string) {
	for _, s := range statuses {
		v := 0.0
		if s == current {
			v = 1
		}
		c.status.WithLabelValues(s).Set(v)
	}
}

// Handler returns an HTTP handler serving the collector's registry in the
// Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
