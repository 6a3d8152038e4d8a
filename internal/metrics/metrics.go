package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	workOrdersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "work_orders_created_total",
			Help: "Total number of work orders created",
		},
	)

	statusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "work_order_status_transitions_total",
			Help: "Total number of work-order status transitions",
		},
		[]string{"to_status"},
	)

	postponementsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "work_order_postponements_total",
			Help: "Total number of work-order due-date postponements",
		},
	)

	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(workOrdersCreatedTotal)
	prometheus.MustRegister(statusTransitionsTotal)
	prometheus.MustRegister(postponementsTotal)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)

	// The default registry preloads these; Register tolerates the dup.
	_ = prometheus.Register(prometheus.NewGoCollector())
	_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest records one handled HTTP request.
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordWorkOrderCreated counts one created work order.
func RecordWorkOrderCreated() {
	workOrdersCreatedTotal.Inc()
}

// RecordStatusTransition counts one accepted status transition.
func RecordStatusTransition(toStatus string) {
	statusTransitionsTotal.WithLabelValues(toStatus).Inc()
}

// RecordPostponement counts one accepted due-date postponement.
func RecordPostponement() {
	postponementsTotal.Inc()
}

// SetDatabaseConnections publishes current pool gauges.
func SetDatabaseConnections(active, idle int) {
	databaseConnectionsActive.Set(float64(active))
	databaseConnectionsIdle.Set(float64(idle))
}
