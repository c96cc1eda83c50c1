package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "./auth.db", cfg.SQLitePath)
	assert.Equal(t, 30*time.Second, cfg.DBConnectTimeout)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 5*time.Minute, cfg.PendingCookieTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "auth.notifications", cfg.NotifyQueue)
	assert.False(t, cfg.CookieSecure)
	assert.False(t, cfg.BootstrapAdminEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/auth")
	t.Setenv("OTP_TTL", "2m")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("FRONTEND_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("SMTP_SERVER", "smtp.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "postgres://u:p@localhost:5432/auth", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Minute, cfg.OTPTTL)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "redis", cfg.RedisHost)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bcrypt cost too low", map[string]string{"BCRYPT_COST": "3"}},
		{"bcrypt cost too high", map[string]string{"BCRYPT_COST": "32"}},
		{"zero otp ttl", map[string]string{"OTP_TTL": "0s"}},
		{"negative session ttl", map[string]string{"SESSION_TTL": "-1h"}},
		{"production without smtp", map[string]string{"APP_ENV": "production"}},
		{"negative rate limit", map[string]string{"NOTIFY_RATE_LIMIT": "-1"}},
		{"bootstrap admin without phone", map[string]string{"ADMIN_BOOTSTRAP_EMAIL": "root@x.com", "ADMIN_BOOTSTRAP_PASSWORD": "secret1"}},
		{"bootstrap admin with short password", map[string]string{
			"ADMIN_BOOTSTRAP_EMAIL":    "root@x.com",
			"ADMIN_BOOTSTRAP_PHONE":    "0123456789",
			"ADMIN_BOOTSTRAP_PASSWORD": "123",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
