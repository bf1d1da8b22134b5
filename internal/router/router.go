package router

import (
	"net/http"

	"github.com/evyataryagoni/countryselect/internal/handler"
	"github.com/evyataryagoni/countryselect/internal/limiter"
	"github.com/evyataryagoni/countryselect/internal/logger"
	"github.com/evyataryagoni/countryselect/internal/metrics"
	custommiddleware "github.com/evyataryagoni/countryselect/internal/middleware"
	v1 "github.com/evyataryagoni/countryselect/internal/router/v1"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps holds everything the router needs
type Deps struct {
	CountryHandler *handler.CountryHandler
	Limiter        limiter.Limiter
	Metrics        *metrics.Metrics
	Logger         *logger.Logger

	// Gatherer serves /metrics; nil means the default Prometheus registry
	Gatherer prometheus.Gatherer
}

// SetupRouter creates the chi router with all middleware and routes
func SetupRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	// Order matters: request ID first so every log line carries it,
	// Recoverer inside logging so panics are logged as 500s
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.LoggingMiddleware(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.RateLimitMiddleware(deps.Limiter))
	r.Use(custommiddleware.MetricsMiddleware(deps.Metrics))

	// Versioned API
	r.Mount("/v1", v1.SetupRoutes(deps.CountryHandler))

	// Health check endpoint - used by load balancers and monitoring
	r.Get("/health", healthCheckHandler)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
