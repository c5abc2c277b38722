// Package config loads the service configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	pkgconfig "github.com/Zubair-hussain/xovato-tech/pkg/config"
)

// Config holds all configuration for the review service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"showcase"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"showcase_secret"`
	PostgresDB   string `env:"REVIEWS_DB_NAME" envDefault:"showcase_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	DBMaxConns int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns int32 `env:"DB_MIN_CONNS" envDefault:"5"`

	// Redis (one-time login tokens)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Admin access gate
	AdminEmailAllowlist []string `env:"ADMIN_EMAIL_ALLOWLIST" envDefault:"" envSeparator:","`
	OTPTTL              string   `env:"ADMIN_OTP_TTL" envDefault:"10m"`
	AdminBaseURL        string   `env:"ADMIN_BASE_URL" envDefault:"http://localhost:3000"`

	// JWT admin sessions
	JWTSecret        string `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	JWTSessionExpiry string `env:"JWT_SESSION_EXPIRY" envDefault:"12h"`

	// EmailJS notification side-channel; all four values must be present or
	// sending is skipped entirely.
	EmailJSServiceID  string `env:"EMAILJS_SERVICE_ID" envDefault:""`
	EmailJSTemplateID string `env:"EMAILJS_TEMPLATE_ID" envDefault:""`
	EmailJSPublicKey  string `env:"EMAILJS_PUBLIC_KEY" envDefault:""`
	ReviewNotifyEmail string `env:"REVIEW_NOTIFY_EMAIL" envDefault:""`

	// Geo resolver
	GeoFallbackCountry string `env:"GEO_FALLBACK_COUNTRY" envDefault:"PK"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load review service config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}

	// In non-development environments, require an explicitly set, strong JWT secret.
	if cfg.Environment != "development" {
		if cfg.JWTSecret == "change-this-to-a-secure-secret" {
			return nil, fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.JWTSecret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(cfg.JWTSecret))
		}
	}

	// Normalize the allowlist once at load so comparisons stay trivial.
	cleaned := make([]string, 0, len(cfg.AdminEmailAllowlist))
	for _, e := range cfg.AdminEmailAllowlist {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			cleaned = append(cleaned, e)
		}
	}
	cfg.AdminEmailAllowlist = cleaned

	return cfg, nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}

// EmailJSConfigured reports whether all four EmailJS values are present.
func (c *Config) EmailJSConfigured() bool {
	return c.EmailJSServiceID != "" && c.EmailJSTemplateID != "" &&
		c.EmailJSPublicKey != "" && c.ReviewNotifyEmail != ""
}
