// Package metrics defines the Prometheus collectors exported by palabra.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector registered by New.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	AnswersTotal         *prometheus.CounterVec
	DictionaryLoadsTotal *prometheus.CounterVec
	DictionaryEntries    *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
// Passing prometheus.NewRegistry() keeps tests isolated from the default registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "palabra_http_requests_total",
				Help: "Total HTTP requests by method, path, and status code.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "palabra_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "palabra_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served.",
			},
		),
		AnswersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "palabra_answers_total",
				Help: "Answers checked by lesson and result.",
			},
			[]string{"lesson", "result"},
		),
		DictionaryLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "palabra_dictionary_loads_total",
				Help: "Dictionary loads by lesson and result (ok, fallback, error).",
			},
			[]string{"lesson", "result"},
		),
		DictionaryEntries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "palabra_dictionary_entries",
				Help: "Number of entries in the most recently loaded dictionary of a lesson.",
			},
			[]string{"lesson"},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.AnswersTotal,
		m.DictionaryLoadsTotal,
		m.DictionaryEntries,
	)
	return m
}

// ObserveAnswer counts one checked answer. Nil-safe.
func (m *Metrics) ObserveAnswer(lessonID string, correct bool) {
	if m == nil {
		return
	}
	result := "incorrect"
	if correct {
		result = "correct"
	}
	m.AnswersTotal.WithLabelValues(lessonID, result).Inc()
}

// ObserveDictionaryLoad records one dictionary load. Nil-safe.
func (m *Metrics) ObserveDictionaryLoad(lessonID, result string, entries int) {
	if m == nil {
		return
	}
	m.DictionaryLoadsTotal.WithLabelValues(lessonID, result).Inc()
	if result != "error" {
		m.DictionaryEntries.WithLabelValues(lessonID).Set(float64(entries))
	}
}

// Handler returns the scrape handler for the registry passed to New.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request count, latency, and the in-flight gauge.
// pathOf maps a request to its label; nil uses the raw URL path.
func (m *Metrics) Middleware(pathOf func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			m.HTTPRequestsInFlight.Inc()
			defer m.HTTPRequestsInFlight.Dec()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			path := r.URL.Path
			if pathOf != nil {
				path = pathOf(r)
			}
			m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	sw.wroteHeader = true
	return sw.ResponseWriter.Write(b)
}
