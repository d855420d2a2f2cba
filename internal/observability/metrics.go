package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the Prometheus metrics for the application.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	fxRefreshes     *prometheus.CounterVec
	quotesSaved     *prometheus.CounterVec
}

// NewMetrics initialises the registry and the base metrics. Label values
// with a fixed domain are pre-seeded so the series exist from startup.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "yeter_http_requests_total",
		Help: "Number of HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yeter_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	fxRefreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "yeter_fx_refreshes_total",
		Help: "Exchange rate refresh attempts by outcome.",
	}, []string{"outcome"})
	quotesSaved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "yeter_quotes_saved_total",
		Help: "Quotes persisted by save action.",
	}, []string{"action"})
	registry.MustRegister(requests, duration, fxRefreshes, quotesSaved)

	for _, outcome := range []string{"success", "failure"} {
		fxRefreshes.WithLabelValues(outcome)
	}
	for _, action := range []string{"create", "update"} {
		quotesSaved.WithLabelValues(action)
	}

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		fxRefreshes:     fxRefreshes,
		quotesSaved:     quotesSaved,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and duration for every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveFxRefresh counts one exchange rate refresh attempt.
func (m *Metrics) ObserveFxRefresh(err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.fxRefreshes.WithLabelValues(outcome).Inc()
}

// ObserveQuoteSaved counts one persisted quote.
func (m *Metrics) ObserveQuoteSaved(updated bool) {
	if m == nil {
		return
	}
	action := "create"
	if updated {
		action = "update"
	}
	m.quotesSaved.WithLabelValues(action).Inc()
}

// RegisterWorkspaceGauge exposes the number of live operator workspaces.
func (m *Metrics) RegisterWorkspaceGauge(count func() int) {
	if m == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "yeter_active_workspaces",
		Help: "Workspaces currently held by operator sessions.",
	}, func() float64 {
		return float64(count())
	}))
}

// Registerer exposes the registry for custom metric registration.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
