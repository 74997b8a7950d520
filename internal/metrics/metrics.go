package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus collectors for the site.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter      *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
	GalleryUploads      *prometheus.CounterVec
	CompressionDuration prometheus.Histogram
	OrphansRemoved      prometheus.Counter
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "isha",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "isha",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		GalleryUploads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "isha",
				Subsystem: "gallery",
				Name:      "uploads_total",
				Help:      "Gallery files processed, by outcome",
			},
			[]string{"outcome"},
		),
		CompressionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "isha",
				Subsystem: "gallery",
				Name:      "compression_seconds",
				Help:      "Time spent compressing one image",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),
		OrphansRemoved: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "isha",
				Subsystem: "storage",
				Name:      "orphans_removed_total",
				Help:      "Stored objects removed because no row referenced them",
			},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestCounter.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveUpload counts one gallery file by outcome.
func (m *Metrics) ObserveUpload(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.GalleryUploads.WithLabelValues(outcome).Add(float64(n))
}

// ObserveCompression records how long one compression took.
func (m *Metrics) ObserveCompression(d time.Duration) {
	if m == nil {
		return
	}
	m.CompressionDuration.Observe(d.Seconds())
}

// ObserveOrphansRemoved counts objects deleted by the sweeper.
func (m *Metrics) ObserveOrphansRemoved(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.OrphansRemoved.Add(float64(n))
}
