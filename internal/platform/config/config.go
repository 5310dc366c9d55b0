package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	RegulatedMode bool
	LogLevel      string
	// AdminToken guards operator endpoints. Empty leaves them open, which
	// only makes sense for local development.
	AdminToken string
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	Redis RedisConfig
	CPF   CPFConfig
}

// RedisConfig configures the optional Redis validation cache.
// An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CPFConfig tunes the validation service.
type CPFConfig struct {
	// CacheTTL applies to Redis entries; in-memory entries never expire
	// because a CPF's validity never changes.
	CacheTTL        time.Duration
	CacheMaxEntries int
	// CacheKey keys the hash that turns CPFs into Redis keys so raw
	// identifiers never leave the process.
	CacheKey         string
	BatchMax         int
	BatchConcurrency int
	GenerateMax      int
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Unparseable values fall back to their defaults.
func FromEnv() Server {
	addr := os.Getenv("CREDITO_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	cacheKey := os.Getenv("CPF_CACHE_KEY")
	if cacheKey == "" {
		// Use a default for development - should be overridden in production
		cacheKey = "dev-cache-key-change-in-production"
	}

	return Server{
		Addr:            addr,
		RegulatedMode:   os.Getenv("REGULATED_MODE") == "true",
		LogLevel:        envString("LOG_LEVEL", "info"),
		AdminToken:      os.Getenv("ADMIN_API_TOKEN"),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 500*time.Millisecond),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 500*time.Millisecond),
		},
		CPF: CPFConfig{
			CacheTTL:         envDuration("CPF_CACHE_TTL", 24*time.Hour),
			CacheMaxEntries:  envInt("CPF_CACHE_MAX_ENTRIES", 100_000),
			CacheKey:         cacheKey,
			BatchMax:         envInt("CPF_BATCH_MAX", 50),
			BatchConcurrency: envInt("CPF_BATCH_CONCURRENCY", 8),
			GenerateMax:      envInt("CPF_GENERATE_MAX", 100),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
