package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Canvas metrics
	Submissions       *prometheus.CounterVec
	SignatureVerdicts *prometheus.CounterVec

	// Forwarder metrics
	Forwards        *prometheus.CounterVec
	ForwardDuration prometheus.Histogram

	// Store metrics
	StoreWrites *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time
}

// NewMetrics creates a metrics collector backed by its own registry, so
// several instances can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relay_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_canvas_submissions_total",
				Help: "Canvas submissions by clicked component and resulting screen",
			},
			[]string{"trigger", "screen"},
		),
		SignatureVerdicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_signature_verdicts_total",
				Help: "Signature checks by verdict and whether the request was served",
			},
			[]string{"verdict", "allowed"},
		),

		Forwards: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_webhook_forwards_total",
				Help: "Outbound webhook attempts by outcome",
			},
			[]string{"outcome"},
		),
		ForwardDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "relay_webhook_forward_duration_seconds",
				Help:    "Outbound webhook call duration in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),

		StoreWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_store_writes_total",
				Help: "Message store writes by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "relay_uptime_seconds",
			Help: "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordSubmission records which screen a clicked component led to
func (m *Metrics) RecordSubmission(trigger, screen string) {
	if m == nil {
		return
	}
	if trigger == "" {
		trigger = "none"
	}
	m.Submissions.WithLabelValues(trigger, screen).Inc()
}

// RecordSignature records a signature verdict
func (m *Metrics) RecordSignature(verdict string, allowed bool) {
	if m == nil {
		return
	}
	a := "false"
	if allowed {
		a = "true"
	}
	m.SignatureVerdicts.WithLabelValues(verdict, a).Inc()
}

// RecordForward records an outbound webhook attempt
func (m *Metrics) RecordForward(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Forwards.WithLabelValues(outcome).Inc()
	m.ForwardDuration.Observe(duration.Seconds())
}

// RecordStoreWrite records a message store write
func (m *Metrics) RecordStoreWrite(outcome string) {
	if m == nil {
		return
	}
	m.StoreWrites.WithLabelValues(outcome).Inc()
}
