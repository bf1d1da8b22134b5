package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Logging
	LogLevel  string // debug, info, warn, error
	LogPretty bool   // human readable console output

	// Rate limiting
	RateLimitType   string // "memory" or "redis"
	RateLimit       int    // number of requests allowed
	RateLimitWindow int    // time window in seconds (default: 1)

	// Datastore configuration
	DatastoreType string // "embedded", "file", "redis", "mysql" or "sqlite"
	LocalesDir    string // directory of locale files (file store, and seeding other stores)

	// MySQL configuration
	MySQLDSN string // Data Source Name

	// SQLite configuration
	SQLitePath string

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Country lists
	DefaultLocale string        // used when a request names no locale, and as the last fallback
	Collation     string        // "ordinal" or "locale"
	CacheTTL      time.Duration // per-locale snapshot cache in front of remote stores, 0 disables
}

// Load reads configuration from environment variables
// with sensible defaults
func Load() *Config {
	// Load .env file if it exists (for local development)
	// In production/Docker, environment variables are set directly
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port: getEnv("PORT", "3000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),

		// Rate limiting (default: memory, 10 requests per 1 second)
		RateLimitType:   getEnv("RATE_LIMITER_TYPE", "memory"),
		RateLimit:       getEnvAsInt("RATE_LIMIT", 10),
		RateLimitWindow: getEnvAsInt("RATE_LIMIT_WINDOW", 1),

		DatastoreType: getEnv("DATASTORE_TYPE", "embedded"),
		LocalesDir:    getEnv("LOCALES_DIR", "./locale"),

		MySQLDSN:   getEnv("MYSQL_DSN", ""),
		SQLitePath: getEnv("SQLITE_PATH", "./data/countries.db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		DefaultLocale: getEnv("DEFAULT_LOCALE", "en-US"),
		Collation:     getEnv("COLLATION", "ordinal"),
		CacheTTL:      time.Duration(getEnvAsInt("CACHE_TTL", 300)) * time.Second,
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer
// Returns default if not set or invalid
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBool reads an environment variable as a boolean ("true", "1", "false", "0", ...)
// Returns default if not set or invalid
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
