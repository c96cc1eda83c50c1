// Package config loads and validates application config from the environment using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
// It is built once at startup and passed by value into constructors.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// Env is the application environment ("development", "production").
	Env      string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// DatabaseURL is the Postgres DSN. When empty, SQLitePath is used instead.
	DatabaseURL      string        `mapstructure:"DATABASE_URL"`
	SQLitePath       string        `mapstructure:"SQLITE_PATH"`
	DBConnectTimeout time.Duration `mapstructure:"DB_CONNECT_TIMEOUT"`
	RunMigrations    bool          `mapstructure:"RUN_MIGRATIONS"`

	// RedisHost enables the Redis session store and user cache when set.
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// RabbitMQURL enables the broker-backed notification queue when set.
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`
	NotifyQueue string `mapstructure:"NOTIFY_QUEUE"`
	// NotifyRateLimit is the number of notifications sent per second; 0 disables pacing.
	NotifyRateLimit int `mapstructure:"NOTIFY_RATE_LIMIT"`

	// SMTP settings. Without SMTPServer mail is only logged.
	SMTPServer   string `mapstructure:"SMTP_SERVER"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	FromEmail    string `mapstructure:"FROM_EMAIL"`
	AdminEmail   string `mapstructure:"ADMIN_EMAIL"`

	// SMS gateway settings. Without SMSAPIKey text messages are only logged.
	SMSAPIKey        string `mapstructure:"SMS_API_KEY"`
	SMSBaseURL       string `mapstructure:"SMS_BASE_URL"`
	SMSSender        string `mapstructure:"SMS_SENDER"`
	SMSDefaultRegion string `mapstructure:"SMS_DEFAULT_REGION"`

	OTPTTL           time.Duration `mapstructure:"OTP_TTL"`
	PendingCookieTTL time.Duration `mapstructure:"PENDING_COOKIE_TTL"`
	SessionTTL       time.Duration `mapstructure:"SESSION_TTL"`
	BcryptCost       int           `mapstructure:"BCRYPT_COST"`
	CookieSecure     bool          `mapstructure:"COOKIE_SECURE"`

	// FrontendOrigins is a comma-separated list of origins allowed by CORS.
	FrontendOrigins string `mapstructure:"FRONTEND_ORIGINS"`

	// Optional admin account seeded at startup when no user has this email.
	AdminBootstrapName     string `mapstructure:"ADMIN_BOOTSTRAP_NAME"`
	AdminBootstrapEmail    string `mapstructure:"ADMIN_BOOTSTRAP_EMAIL"`
	AdminBootstrapPhone    string `mapstructure:"ADMIN_BOOTSTRAP_PHONE"`
	AdminBootstrapPassword string `mapstructure:"ADMIN_BOOTSTRAP_PASSWORD"`
}

// Load builds and validates Config from the environment via Viper.
// Callers load .env beforehand (godotenv); env vars always win.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Every key needs a default so that AutomaticEnv picks it up on Unmarshal.
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "./auth.db")
	v.SetDefault("DB_CONNECT_TIMEOUT", "30s")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("NOTIFY_QUEUE", "auth.notifications")
	v.SetDefault("NOTIFY_RATE_LIMIT", 5)
	v.SetDefault("SMTP_SERVER", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("FROM_EMAIL", "")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("SMS_API_KEY", "")
	v.SetDefault("SMS_BASE_URL", "")
	v.SetDefault("SMS_SENDER", "")
	v.SetDefault("SMS_DEFAULT_REGION", "VN")
	v.SetDefault("OTP_TTL", "5m")
	v.SetDefault("PENDING_COOKIE_TTL", "5m")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("FRONTEND_ORIGINS", "http://localhost:3000")
	v.SetDefault("ADMIN_BOOTSTRAP_NAME", "Administrator")
	v.SetDefault("ADMIN_BOOTSTRAP_EMAIL", "")
	v.SetDefault("ADMIN_BOOTSTRAP_PHONE", "")
	v.SetDefault("ADMIN_BOOTSTRAP_PASSWORD", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.HTTPAddr == "" {
		return errors.New("config: HTTP_ADDR must be set")
	}
	if c.DatabaseURL == "" && c.SQLitePath == "" {
		return errors.New("config: DATABASE_URL or SQLITE_PATH must be set")
	}
	if c.OTPTTL <= 0 {
		return errors.New("config: OTP_TTL must be positive")
	}
	if c.PendingCookieTTL <= 0 {
		return errors.New("config: PENDING_COOKIE_TTL must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if c.NotifyRateLimit < 0 {
		return errors.New("config: NOTIFY_RATE_LIMIT must not be negative")
	}
	if c.IsProduction() && c.SMTPServer == "" {
		return errors.New("config: SMTP_SERVER must be set when APP_ENV=production")
	}
	if c.AdminBootstrapEmail != "" && (c.AdminBootstrapPhone == "" || len(c.AdminBootstrapPassword) < 6) {
		return errors.New("config: ADMIN_BOOTSTRAP_EMAIL requires ADMIN_BOOTSTRAP_PHONE and a password of at least 6 characters")
	}
	return nil
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Origins returns the CORS origins from the comma-separated FRONTEND_ORIGINS.
func (c Config) Origins() []string {
	parts := strings.Split(c.FrontendOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// BootstrapAdminEnabled reports whether an admin account should be seeded.
func (c Config) BootstrapAdminEnabled() bool {
	return c.AdminBootstrapEmail != ""
}
