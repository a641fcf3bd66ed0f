package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"verification-platform/internal/domain/verification"
)

// Metrics holds Prometheus collectors for the verification flow. Each
// instance owns its registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	Verdicts           *prometheus.CounterVec
	Discrepancies      *prometheus.CounterVec
	ExtractionFailures *prometheus.CounterVec
	SessionsStarted    prometheus.Counter
	SessionsClosed     prometheus.Counter
	VerifyLatency      prometheus.Histogram
}

// New registers and returns the collectors, plus the Go and process
// collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Verdicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_verdicts_total",
			Help: "Reconciliations performed, labeled by verdict",
		}, []string{"verdict"}),
		Discrepancies: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_discrepancies_total",
			Help: "Discrepancies found, labeled by code",
		}, []string{"code"}),
		ExtractionFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_extraction_failures_total",
			Help: "Documents that could not be turned into a record, labeled by reason",
		}, []string{"reason"}),
		SessionsStarted: f.NewCounter(prometheus.CounterOpts{
			Name: "verification_sessions_started_total",
			Help: "Successful logins",
		}),
		SessionsClosed: f.NewCounter(prometheus.CounterOpts{
			Name: "verification_sessions_closed_total",
			Help: "Sessions ended by the user",
		}),
		VerifyLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "verification_document_latency_seconds",
			Help:    "Time to extract and reconcile an uploaded document",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

func (m *Metrics) ObserveResult(r verification.Result) {
	m.Verdicts.WithLabelValues(string(r.Verdict)).Inc()
	for _, d := range r.Discrepancies {
		m.Discrepancies.WithLabelValues(string(d)).Inc()
	}
}

func (m *Metrics) IncrementExtractionFailures(reason string) {
	m.ExtractionFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementSessionsStarted() { m.SessionsStarted.Inc() }

func (m *Metrics) IncrementSessionsClosed() { m.SessionsClosed.Inc() }

func (m *Metrics) ObserveVerifyLatency(d time.Duration) { m.VerifyLatency.Observe(d.Seconds()) }

// Handler serves the exposition format for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
