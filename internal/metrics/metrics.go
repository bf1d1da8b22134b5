package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Translation store Metrics
	StoreOperationsTotal   *prometheus.CounterVec
	StoreOperationDuration *prometheus.HistogramVec

	// Application Metrics
	CountryListsTotal *prometheus.CounterVec
	CountryListSize   *prometheus.HistogramVec
	LookupsTotal      *prometheus.CounterVec
}

// New creates all metrics and registers them with the default Prometheus registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all metrics on the given registerer
// Tests pass a fresh prometheus.NewRegistry() so metrics can be created more than once
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "endpoint", "status"},
		),

		StoreOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "translation_store_operations_total",
				Help: "Total number of translation store operations",
			},
			[]string{"operation", "status"},
		),

		StoreOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "translation_store_operation_duration_seconds",
				Help:    "Translation store latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		CountryListsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "country_lists_total",
				Help: "Total number of country lists built",
			},
			[]string{"kind", "result"},
		),

		CountryListSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "country_list_size",
				Help:    "Number of options in built country lists",
				Buckets: []float64{1, 10, 50, 100, 200, 250, 300},
			},
			[]string{"kind"},
		),

		LookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "country_lookups_total",
				Help: "Total number of single country lookups",
			},
			[]string{"result"},
		),
	}
}
