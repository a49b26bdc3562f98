package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Filter   FilterConfig
	Cache    CacheConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// UpstreamConfig describes the registration provider.
type UpstreamConfig struct {
	BaseURL          string
	Token            string
	TimeoutSeconds   int
	MaxRetries       int
	BackoffBaseMs    int
	BackoffMaxMs     int
	FollowPagination bool
	MaxPages         int
}

// FilterConfig controls status token parsing.
type FilterConfig struct {
	Strict bool
}

// CacheConfig controls the last-known-good attendee cache.
type CacheConfig struct {
	TTLMinutes    int
	StaleFallback bool
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "checkin-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Upstream: UpstreamConfig{
			BaseURL:          getEnv("UPSTREAM_BASE_URL", "https://www.eventbriteapi.com"),
			Token:            os.Getenv("UPSTREAM_TOKEN"),
			TimeoutSeconds:   getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 10),
			MaxRetries:       getEnvAsInt("UPSTREAM_MAX_RETRIES", 3),
			BackoffBaseMs:    getEnvAsInt("UPSTREAM_BACKOFF_BASE_MS", 200),
			BackoffMaxMs:     getEnvAsInt("UPSTREAM_BACKOFF_MAX_MS", 2000),
			FollowPagination: getEnvAsBool("UPSTREAM_FOLLOW_PAGINATION", true),
			MaxPages:         getEnvAsInt("UPSTREAM_MAX_PAGES", 50),
		},
		Filter: FilterConfig{
			Strict: getEnvAsBool("FILTER_STRICT", false),
		},
		Cache: CacheConfig{
			TTLMinutes:    getEnvAsInt("CACHE_TTL_MINUTES", 1440),
			StaleFallback: getEnvAsBool("CACHE_STALE_FALLBACK", true),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Upstream.Token == "" {
		return nil, fmt.Errorf("UPSTREAM_TOKEN is required")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout bounds a single upstream request.
func (u UpstreamConfig) Timeout() time.Duration {
	if u.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// BackoffBase is the delay before the first retry.
func (u UpstreamConfig) BackoffBase() time.Duration {
	return time.Duration(u.BackoffBaseMs) * time.Millisecond
}

// BackoffMax caps the retry delay.
func (u UpstreamConfig) BackoffMax() time.Duration {
	return time.Duration(u.BackoffMaxMs) * time.Millisecond
}

// TTL returns how long cached attendee lists are kept.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.TTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
