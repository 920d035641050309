package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション設定を表す
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Booking  BookingConfig
	Metrics  MetricsConfig
}

// AppConfig は実行環境の設定
type AppConfig struct {
	Env      string
	LogLevel string
	// Storage は "postgres" または "memory"
	Storage string
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig はデータベース設定
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
	MaxOpenConns   int
	MaxIdleConns   int
}

// RedisConfig はRedis設定
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	RoomTTL  time.Duration
}

// AuthConfig はアクセストークンの設定
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// BookingConfig は予約処理の設定
type BookingConfig struct {
	// EarliestDate が空でなければ、この日（YYYY-MM-DD）より前のチェックインは受け付けない
	EarliestDate     string
	LockTTL          time.Duration
	LockRetries      int
	LockRetryDelay   time.Duration
	TxMaxRetries     int
	TxRetryBaseDelay time.Duration
	TxRetryMaxDelay  time.Duration
	StatsInterval    time.Duration
}

// MetricsConfig は /metrics の Basic 認証設定
type MetricsConfig struct {
	User     string
	Password string
}

// IsAuthEnabled はユーザーとパスワードの両方が設定されているかを返す
func (c MetricsConfig) IsAuthEnabled() bool {
	return c.User != "" && c.Password != ""
}

// Load は環境変数から設定を読み込む
// カレントディレクトリに .env があれば先に読み込む（既存の環境変数は上書きしない）
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Env:      getEnv("APP_ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", ""),
			Storage:  strings.ToLower(getEnv("STORAGE_DRIVER", "postgres")),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "hotel_reservation"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "migrations"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			RoomTTL:  getDurationEnv("REDIS_ROOM_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTL:  getDurationEnv("JWT_TTL", 24*time.Hour),
		},
		Booking: BookingConfig{
			EarliestDate:     getEnv("BOOKING_EARLIEST_DATE", ""),
			LockTTL:          getDurationEnv("BOOKING_LOCK_TTL", 10*time.Second),
			LockRetries:      getIntEnv("BOOKING_LOCK_RETRIES", 50),
			LockRetryDelay:   getDurationEnv("BOOKING_LOCK_RETRY_DELAY", 20*time.Millisecond),
			TxMaxRetries:     getIntEnv("BOOKING_TX_MAX_RETRIES", 3),
			TxRetryBaseDelay: getDurationEnv("BOOKING_TX_RETRY_BASE_DELAY", 20*time.Millisecond),
			TxRetryMaxDelay:  getDurationEnv("BOOKING_TX_RETRY_MAX_DELAY", 500*time.Millisecond),
			StatsInterval:    getDurationEnv("BOOKING_STATS_INTERVAL", 30*time.Second),
		},
		Metrics: MetricsConfig{
			User:     getEnv("METRICS_USER", ""),
			Password: getEnv("METRICS_PASSWORD", ""),
		},
	}
}

// Validate は起動できない設定を検出する
func (c *Config) Validate() error {
	switch c.App.Storage {
	case "postgres", "memory":
	default:
		return fmt.Errorf("STORAGE_DRIVER が不正です: %q", c.App.Storage)
	}
	if c.App.Env == "production" && c.Auth.JWTSecret == "dev-secret-change-me" {
		return fmt.Errorf("本番環境では JWT_SECRET の設定が必要です")
	}
	if c.Booking.EarliestDate != "" {
		if _, err := time.Parse("2006-01-02", c.Booking.EarliestDate); err != nil {
			return fmt.Errorf("BOOKING_EARLIEST_DATE が不正です: %w", err)
		}
	}
	return nil
}

// EarliestBookingDate は予約受付開始日を返す（未設定ならゼロ値）
func (c *BookingConfig) EarliestBookingDate() time.Time {
	if c.EarliestDate == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", c.EarliestDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DSN はPostgreSQL接続文字列を返す
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
