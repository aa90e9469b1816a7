package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	MaxBodyBytes      int64

	// Redis connection. An empty addr selects the in-memory session store
	// (dev mode only; sessions do not survive a restart).
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTimeout  time.Duration

	// If true, /readyz returns 503 unless Redis is configured and reachable.
	ReadinessRequireRedis bool
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("SPECTER_HTTP_ADDR", "0.0.0.0:3000"),
		LogLevel:  EnvString("SPECTER_LOG_LEVEL", "info"),
		LogFormat: EnvString("SPECTER_LOG_FORMAT", "json"),

		ReadHeaderTimeout: EnvDuration("SPECTER_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("SPECTER_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("SPECTER_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("SPECTER_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("SPECTER_HTTP_MAX_HEADER_BYTES", 1<<20),
		MaxBodyBytes:   EnvInt64("SPECTER_HTTP_MAX_BODY_BYTES", 1<<20),

		RedisAddr:     EnvString("SPECTER_REDIS_ADDR", ""),
		RedisPassword: EnvString("SPECTER_REDIS_PASSWORD", ""),
		RedisDB:       EnvIntAllowZero("SPECTER_REDIS_DB", 0),
		RedisTimeout:  EnvDuration("SPECTER_REDIS_TIMEOUT", 5*time.Second),

		ReadinessRequireRedis: EnvBool("SPECTER_READINESS_REQUIRE_REDIS", false),
	}
}
