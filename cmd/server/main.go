package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evyataryagoni/countryselect/internal/config"
	"github.com/evyataryagoni/countryselect/internal/country"
	"github.com/evyataryagoni/countryselect/internal/handler"
	"github.com/evyataryagoni/countryselect/internal/limiter"
	"github.com/evyataryagoni/countryselect/internal/locales"
	"github.com/evyataryagoni/countryselect/internal/logger"
	"github.com/evyataryagoni/countryselect/internal/metrics"
	"github.com/evyataryagoni/countryselect/internal/router"
	"github.com/evyataryagoni/countryselect/internal/service"
	"github.com/evyataryagoni/countryselect/internal/store"
)

func main() {
	appConfig := config.Load()

	// Initialize components
	appLogger := setupLogger(appConfig)
	metricsCollector := metrics.New()

	dataStore := setupDataStore(appConfig, metricsCollector, appLogger)

	rateLimiter := setupRateLimiter(appConfig, appLogger)
	defer rateLimiter.Close()

	collation, err := country.ParseCollation(appConfig.Collation)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Invalid COLLATION")
	}

	// Build application layers
	countryService := service.NewCountryService(dataStore, metricsCollector, appLogger, country.WithCollation(collation))
	defer countryService.Close()

	countryHandler := handler.NewCountryHandler(countryService, appConfig.DefaultLocale)
	appRouter := router.SetupRouter(router.Deps{
		CountryHandler: countryHandler,
		Limiter:        rateLimiter,
		Metrics:        metricsCollector,
		Logger:         appLogger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// SIGHUP re-reads locale files and drops cached snapshots, e.g. after `countryctl load`
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go watchRefresh(ctx, hup, dataStore, appLogger)

	startServer(ctx, appConfig, appRouter, appLogger)
}

// watchRefresh refreshes the store chain each time a signal arrives, until ctx is done
func watchRefresh(ctx context.Context, signals <-chan os.Signal, dataStore store.Store, log *logger.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-signals:
			if err := store.Refresh(dataStore); err != nil {
				log.Error().Err(err).Msg("Data store refresh failed")
				continue
			}
			log.Info().Msg("Data store refreshed")
		}
	}
}

// setupLogger initializes the structured logger
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:  appConfig.LogLevel,
		Pretty: appConfig.LogPretty,
	})

	appLogger.Info().
		Str("port", appConfig.Port).
		Str("rate_limiter_type", appConfig.RateLimitType).
		Int("rate_limit", appConfig.RateLimit).
		Int("rate_limit_window", appConfig.RateLimitWindow).
		Str("datastore_type", appConfig.DatastoreType).
		Str("default_locale", appConfig.DefaultLocale).
		Str("collation", appConfig.Collation).
		Dur("cache_ttl", appConfig.CacheTTL).
		Msg("Configuration loaded")

	return appLogger
}

// setupDataStore builds the store chain:
// backend -> metrics -> snapshot cache (remote backends only) -> locale fallback
func setupDataStore(appConfig *config.Config, m *metrics.Metrics, log *logger.Logger) store.Store {
	var (
		backend store.Store
		remote  bool
		err     error
	)

	switch appConfig.DatastoreType {
	case "embedded", "":
		backend, err = store.NewEmbeddedStore()

	case "file":
		backend, err = store.NewFileStore(appConfig.LocalesDir)

	case "redis":
		var redisStore *store.RedisStore
		redisStore, err = store.NewRedisStore(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
		if err == nil {
			seedIfEmpty(redisStore, appConfig.LocalesDir, log)
			backend, remote = redisStore, true
		}

	case "mysql", "sqlite":
		var sqlStore *store.SQLStore
		if appConfig.DatastoreType == "mysql" {
			sqlStore, err = store.NewMySQLStore(appConfig.MySQLDSN)
		} else {
			sqlStore, err = store.NewSQLiteStore(appConfig.SQLitePath)
		}
		if err == nil {
			err = sqlStore.Migrate()
		}
		if err == nil {
			seedIfEmpty(sqlStore, appConfig.LocalesDir, log)
			backend, remote = sqlStore, true
		}

	default:
		log.Fatal().Str("type", appConfig.DatastoreType).Msg("Unknown datastore type")
	}

	if err != nil {
		log.Fatal().Err(err).Str("type", appConfig.DatastoreType).Msg("Failed to initialize data store")
	}
	log.Info().Str("type", appConfig.DatastoreType).Msg("Data store initialized")

	chain := store.Store(store.NewInstrumentedStore(backend, m))
	if remote && appConfig.CacheTTL > 0 {
		chain = store.NewCachedStore(chain, appConfig.CacheTTL)
	}
	return store.NewFallbackStore(chain, appConfig.DefaultLocale)
}

// seedIfEmpty fills a fresh Redis or SQL store from locale files or the bundled data
func seedIfEmpty(loader store.Loader, dir string, log *logger.Logger) {
	table, source, err := locales.LoadDirOrBundled(dir)
	if err != nil {
		log.Warn().Err(err).Str("source", source).Msg("Failed to read locale data for seeding")
		return
	}

	count, err := store.SeedIfEmpty(loader, table)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to seed data store")
		return
	}
	if count > 0 {
		log.Info().Int("translations", count).Str("source", source).Msg("Seeded empty data store")
	}
}

// setupRateLimiter initializes the rate limiter
func setupRateLimiter(appConfig *config.Config, log *logger.Logger) limiter.Limiter {
	rateLimiter, err := limiter.NewLimiter(limiter.LimiterConfig{
		Type:          appConfig.RateLimitType,
		Limit:         appConfig.RateLimit,
		Window:        time.Duration(appConfig.RateLimitWindow) * time.Second,
		RedisAddr:     appConfig.RedisAddr,
		RedisPassword: appConfig.RedisPassword,
		RedisDB:       appConfig.RedisDB,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize rate limiter")
	}

	log.Info().
		Str("type", appConfig.RateLimitType).
		Int("limit", appConfig.RateLimit).
		Int("window_seconds", appConfig.RateLimitWindow).
		Msg("Rate limiter initialized")

	return rateLimiter
}

// startServer serves until ctx is done, then drains in-flight requests
func startServer(ctx context.Context, appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	server := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           appRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", appConfig.Port).
			Str("api_endpoint", "http://localhost:"+appConfig.Port+"/v1/countries?locale=<locale>").
			Str("health_check", "http://localhost:"+appConfig.Port+"/health").
			Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
			Msg("Server is running")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
