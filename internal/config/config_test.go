package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	// 環境変数をクリア（t.Setenv で空にすると getEnv はデフォルトを使う）
	for _, env := range []string{
		"APP_ENV", "LOG_LEVEL", "STORAGE_DRIVER",
		"PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"REDIS_ENABLED", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET", "JWT_TTL",
		"BOOKING_EARLIEST_DATE", "BOOKING_TX_MAX_RETRIES", "BOOKING_LOCK_TTL",
	} {
		t.Setenv(env, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.App.Storage)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "hotel_reservation", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "migrations", cfg.Database.MigrationsPath)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)

	assert.Equal(t, 3, cfg.Booking.TxMaxRetries)
	assert.Equal(t, 10*time.Second, cfg.Booking.LockTTL)
	assert.True(t, cfg.Booking.EarliestBookingDate().IsZero())

	require.NoError(t, cfg.Validate())
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "60s")
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "1")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("BOOKING_EARLIEST_DATE", "2026-01-01")
	t.Setenv("BOOKING_TX_MAX_RETRIES", "5")
	t.Setenv("BOOKING_TX_RETRY_BASE_DELAY", "5ms")

	cfg := Load()

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "memory", cfg.App.Storage)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "prod-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.Booking.TxMaxRetries)
	assert.Equal(t, 5*time.Millisecond, cfg.Booking.TxRetryBaseDelay)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Booking.EarliestBookingDate())

	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("REDIS_DB", "invalid")
	t.Setenv("REDIS_ENABLED", "maybe")
	t.Setenv("SERVER_READ_TIMEOUT", "invalid")

	cfg := Load()

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_NAME=from_dotenv\nPORT=7070\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	// 既に設定されている環境変数は .env で上書きしない
	t.Setenv("PORT", "9999")
	t.Setenv("DB_NAME", "")
	os.Unsetenv("DB_NAME")

	cfg := Load()
	assert.Equal(t, "from_dotenv", cfg.Database.DBName)
	assert.Equal(t, "9999", cfg.Server.Port)
	os.Unsetenv("DB_NAME")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"デフォルト", func(c *Config) {}, false},
		{"不正なストレージ", func(c *Config) { c.App.Storage = "mysql" }, true},
		{"本番でデフォルトの秘密鍵", func(c *Config) { c.App.Env = "production" }, true},
		{"不正な受付開始日", func(c *Config) { c.Booking.EarliestDate = "2026/01/01" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				App:     AppConfig{Env: "development", Storage: "postgres"},
				Auth:    AuthConfig{JWTSecret: "dev-secret-change-me"},
				Booking: BookingConfig{},
			}
			tt.mutate(c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable", cfg.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := &RedisConfig{Host: "localhost", Port: "6379"}
	assert.Equal(t, "localhost:6379", cfg.Addr())
}

func TestMetricsConfig_IsAuthEnabled(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		password string
		want     bool
	}{
		{"両方設定あり", "user", "pass", true},
		{"ユーザーのみ", "user", "", false},
		{"パスワードのみ", "", "pass", false},
		{"両方なし", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := MetricsConfig{User: tt.user, Password: tt.password}
			assert.Equal(t, tt.want, cfg.IsAuthEnabled())
		})
	}
}
