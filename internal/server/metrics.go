package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adya/memwatch/internal/memstat"
)

// Metrics exports the watcher's state in Prometheus format. Each
// Metrics value carries its own registry, so instances are independent.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	resident     prometheus.Gauge
	peakResident prometheus.Gauge
	virtual      prometheus.Gauge
	used         prometheus.Gauge
	total        prometheus.Gauge
	usedFraction prometheus.Gauge

	samplesTotal   prometheus.Counter
	requestsTotal  prometheus.Counter
	activeRequests prometheus.Gauge
}

// NewMetrics creates a metrics set with its own registry, including
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		resident: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memwatch_resident_bytes",
			Help: "Resident set size of the watched process in bytes.",
		}),
		peakResident: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memwatch_peak_resident_bytes",
			Help: "Lifetime peak resident set size in bytes.",
		}),
		virtual: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memwatch_virtual_bytes",
			Help: "Virtual address space size in bytes.",
		}),
		used: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memwatch_used_bytes",
			Help: "Memory footprint (internal plus compressed) in bytes.",
		}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memwatch_total_bytes",
			Help: "Total physical memory of the host in bytes.",
		}),
		usedFraction: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memwatch_used_fraction",
			Help: "Memory footprint as a fraction of total physical memory.",
		}),
		samplesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memwatch_samples_total",
			Help: "Number of snapshots observed since startup.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memwatch_http_requests_total",
			Help: "Number of HTTP requests received.",
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memwatch_http_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.resident,
		m.peakResident,
		m.virtual,
		m.used,
		m.total,
		m.usedFraction,
		m.samplesTotal,
		m.requestsTotal,
		m.activeRequests,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Observe records one published snapshot in the exported gauges.
func (m *Metrics) Observe(snap memstat.Snapshot) {
	m.resident.Set(float64(snap.Resident))
	m.peakResident.Set(float64(snap.PeakResident))
	m.virtual.Set(float64(snap.Virtual))
	m.used.Set(float64(snap.Used))
	m.total.Set(float64(snap.Total))
	m.usedFraction.Set(snap.UsedFraction())
	m.samplesTotal.Inc()
}

// CountRequest increments the HTTP request counter.
func (m *Metrics) CountRequest() {
	m.requestsTotal.Inc()
}

// IncrementActiveRequests tracks the start of an in-flight request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests tracks the end of an in-flight request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// WritePrometheus serves the metrics in Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
