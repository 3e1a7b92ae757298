package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	AppURL      string
	Port        string
	ContentPath string
	Timezone    string

	// Record storage
	StoreBackend string // file, memory, redis, s3 or sql
	StorePath    string
	StoreKey     string

	// Database (used by STORE_BACKEND=sql and for signed-in users)
	DBDriver     string
	DBConnection string

	// Redis
	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int

	// S3-compatible object storage
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string

	// Security
	JWTSecret        string
	JWTExpiry        time.Duration
	RateLimitBackend string // memory or redis
	TrustProxy       bool   // honour X-Forwarded-For and X-Real-IP

	// OAuth (optional: sign-in is hidden when unset)
	GoogleClientID     string
	GoogleClientSecret string

	// Observability (optional)
	SentryDSN string
}

// Load reads the server configuration. APP_ENV, APP_URL and JWT_SECRET are required.
func Load() *Config {
	loadDotEnv()

	cfg := load()
	cfg.AppEnv = envRequired("APP_ENV") // Required: 'development' or 'production'
	cfg.AppURL = envRequired("APP_URL") // Required: base URL for OAuth redirects
	cfg.JWTSecret = envRequired("JWT_SECRET")

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// LoadCLI reads the configuration for command line use, where nothing web-facing is required.
func LoadCLI() *Config {
	loadDotEnv()

	cfg := load()
	cfg.AppEnv = envString("APP_ENV", "development")
	return cfg
}

func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
}

func load() *Config {
	return &Config{
		AppName:     envString("APP_NAME", "Namaz Tracker"),
		Port:        envString("PORT", "8090"),
		ContentPath: envString("CONTENT_PATH", "content"),
		Timezone:    envString("TZ_NAME", "UTC"),

		StoreBackend: envString("STORE_BACKEND", "file"),
		StorePath:    envString("STORE_PATH", "./data"),
		StoreKey:     envString("STORE_KEY", "namaz-tracker-data"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/namaz.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		RedisAddr:     envString("REDIS_ADDR", "localhost:6379"),
		RedisUsername: envString("REDIS_USERNAME", ""),
		RedisPassword: envString("REDIS_PASSWORD", ""),
		RedisDB:       envInt("REDIS_DB", 0),

		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", "namaz"),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),

		JWTExpiry:        envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days
		RateLimitBackend: envString("RATE_LIMIT_BACKEND", "memory"),
		TrustProxy:       envBool("TRUST_PROXY", false),

		GoogleClientID:     envString("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: envString("GOOGLE_CLIENT_SECRET", ""),

		SentryDSN: envString("SENTRY_DSN", ""),
	}
}

// validateProduction ensures the sessions of a production deployment are not signed with a dev secret.
func validateProduction(cfg *Config) {
	if len(cfg.JWTSecret) < 32 {
		slog.Error("production deployment requires a JWT_SECRET of at least 32 bytes")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// OAuthEnabled reports whether Google sign-in is configured.
func (c *Config) OAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// Location resolves TZ_NAME, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("config invalid timezone, using UTC", "timezone", c.Timezone)
		return time.UTC
	}
	return loc
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx, templates and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:        c.AppName,
		AppEnv:         c.AppEnv,
		AppURL:         c.AppURL,
		Port:           c.Port,
		Timezone:       c.Timezone,
		StoreBackend:   c.StoreBackend,
		GoogleClientID: c.GoogleClientID,
		TrustProxy:     c.TrustProxy,
	}
}
