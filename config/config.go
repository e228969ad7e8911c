package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all environment-driven settings, loaded once at startup and
// passed to the components that need them.
type Config struct {
	Port        string
	DBPath      string
	Environment string
	FrontOrigin string

	WriteToken string
	JWTSecret  string
	JWTTTL     time.Duration

	RateLimitWindow time.Duration
	RateLimitMax    int

	CleanupInterval time.Duration
	RetentionDays   int
}

// Load reads configuration from the environment, applying defaults that match
// the deployed service.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "4010"),
		DBPath:      getEnv("DB_PATH", "logbook.db"),
		Environment: getEnv("APP_ENV", "production"),
		FrontOrigin: getEnv("FRONT_ORIGIN", "http://localhost:3000"),

		WriteToken: os.Getenv("WRITE_TOKEN"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTTTL:     time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,

		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MS", 60_000)) * time.Millisecond,
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 5),

		CleanupInterval: time.Duration(getEnvInt("CLEANUP_INTERVAL_MS", 3_600_000)) * time.Millisecond,
		RetentionDays:   getEnvInt("CLEANUP_RETENTION_DAYS", 30),
	}
}

// IsDevelopment reports whether the service runs in development mode, which
// bypasses rate limiting.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
