package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/classroom-seating-api/pkg/ai"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	aiCallDuration  *prometheus.HistogramVec
	seatingTotal    *prometheus.CounterVec
	storeOperations *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	aiCallDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ai_call_duration_seconds",
		Help:    "Duration of generative AI calls",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 90},
	}, []string{"mode", "outcome"})

	seatingTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seating_requests_total",
		Help: "Seating requests by mode and outcome",
	}, []string{"mode", "outcome"})

	storeOperations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "classroom_store_operations_total",
		Help: "Saved classroom store operations",
	}, []string{"backend", "op", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, aiCallDuration, seatingTotal, storeOperations, goroutines)

	return &MetricsService{
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		aiCallDuration:  aiCallDuration,
		seatingTotal:    seatingTotal,
		storeOperations: storeOperations,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// OnCallComplete implements ai.Observer.
func (m *MetricsService) OnCallComplete(event ai.CallEvent) {
	if m == nil {
		return
	}
	m.aiCallDuration.WithLabelValues(event.Label, event.Outcome).Observe(event.Latency.Seconds())
}

// RecordSeatingOutcome counts seating requests including those rejected before any AI call.
func (m *MetricsService) RecordSeatingOutcome(mode, outcome string) {
	if m == nil {
		return
	}
	m.seatingTotal.WithLabelValues(mode, outcome).Inc()
}

// RecordStoreOperation counts saved classroom store reads and writes.
func (m *MetricsService) RecordStoreOperation(backend, op, outcome string) {
	if m == nil {
		return
	}
	m.storeOperations.WithLabelValues(backend, op, outcome).Inc()
}
