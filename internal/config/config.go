package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingSecret = errors.New("JWT_SECRET must be set outside debug mode")

type Config struct {
	Port    string
	GinMode string

	DatabaseDriver string
	DatabaseURL    string
	RedisURL       string

	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool
	CORSOrigin   string

	UploadDir     string
	PublicBaseURL string

	RateLimitPerMinute int
	RateLimitBurst     int

	LogLevel  slog.Level
	LogFormat string
}

// Load reads .env.local, then .env, then the process environment. Values
// already present in the environment win over the files.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv fails when a typed variable is set but cannot be parsed.
func FromEnv() (*Config, error) {
	var p parser
	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "memory"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		SessionTTL:   p.duration("SESSION_TTL", 7*24*time.Hour),
		CookieSecure: p.bool("COOKIE_SECURE", false),
		CORSOrigin:   getEnv("CORS_ORIGIN", "http://localhost:5173"),

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),

		RateLimitPerMinute: p.int("RATE_LIMIT_PER_MINUTE", 300),
		RateLimitBurst:     p.int("RATE_LIMIT_BURST", 60),

		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode != "debug" {
			return nil, ErrMissingSecret
		}
		cfg.JWTSecret = "memorylane-dev-secret"
	}
	if cfg.DatabaseDriver != "memory" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for driver %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

// NewLogger builds the process logger described by the config.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parser reads typed variables, keeping every malformed value it meets.
type parser struct {
	err error
}

func (p *parser) fail(key, value string, err error) {
	p.err = errors.Join(p.err, fmt.Errorf("%s=%q: %w", key, value, err))
}

func (p *parser) int(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return value
}

func (p *parser) bool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return value
}

func (p *parser) duration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return value
}
