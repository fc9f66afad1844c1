package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
const EnvPrefix = "STUDIO"

var (
	// ErrReadConfig возвращается при ошибке чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация приложения
type Config struct {
	Server    ServerConfig    `toml:"server" split_words:"true"`
	Database  DatabaseConfig  `toml:"database" split_words:"true"`
	Redis     RedisConfig     `toml:"redis" split_words:"true"`
	Logs      LogsConfig      `toml:"logs" split_words:"true"`
	Metrics   MetricsConfig   `toml:"metrics" split_words:"true"`
	Studio    StudioConfig    `toml:"studio" split_words:"true"`
	Booking   BookingConfig   `toml:"booking" split_words:"true"`
	Admin     AdminConfig     `toml:"admin" split_words:"true"`
	CORS      CORSConfig      `toml:"cors" split_words:"true"`
	RateLimit RateLimitConfig `toml:"rate_limit" split_words:"true"`
	Checkout  CheckoutConfig  `toml:"checkout" split_words:"true"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`     // секунды
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`    // секунды
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL возвращает строку подключения в формате URL (для golang-migrate)
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// RedisConfig настройки кэша каталога. Пустой URL отключает кэш
type RedisConfig struct {
	URL                string `toml:"url" split_words:"true"`
	CatalogTTLSecs     int    `toml:"catalog_ttl_seconds" split_words:"true"`
	OperationTimeoutMs int    `toml:"operation_timeout_ms" split_words:"true"`
}

// Enabled возвращает true, если кэш настроен
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// CatalogTTL время жизни кэша каталога
func (c RedisConfig) CatalogTTL() time.Duration {
	return time.Duration(c.CatalogTTLSecs) * time.Second
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level       string `toml:"level" split_words:"true"`
	File        string `toml:"file" split_words:"true"`
	Environment string `toml:"environment" split_words:"true"` // development | production
}

// IsDevelopment возвращает true для локального окружения
func (c LogsConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// StudioConfig значения настроек студии по умолчанию (если в БД нет строки studio_settings)
type StudioConfig struct {
	Timezone                string `toml:"timezone" split_words:"true"`
	OpenHour                int    `toml:"open_hour" split_words:"true"`
	CloseHour               int    `toml:"close_hour" split_words:"true"`
	MinBookingNoticeMinutes int    `toml:"min_booking_notice_minutes" split_words:"true"`
	AdvanceBookingDays      int    `toml:"advance_booking_days" split_words:"true"`
	ReleaseCancelledSlots   bool   `toml:"release_cancelled_slots" split_words:"true"`
}

// Location загружает часовой пояс студии
func (c StudioConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// BookingConfig настройки фиксации бронирования
type BookingConfig struct {
	CommitAttempts  int `toml:"commit_attempts" split_words:"true"`
	CommitBackoffMs int `toml:"commit_backoff_ms" split_words:"true"`
}

// CommitBackoff базовая пауза между попытками
func (c BookingConfig) CommitBackoff() time.Duration {
	return time.Duration(c.CommitBackoffMs) * time.Millisecond
}

// AdminConfig доступ к административным эндпоинтам
type AdminConfig struct {
	Token string `toml:"token" split_words:"true"`
}

// CORSConfig настройки CORS для публичного сайта
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" split_words:"true"`
}

// RateLimitConfig ограничение частоты запросов с одного клиента
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled" split_words:"true"`
	RPS     float64 `toml:"rps" split_words:"true"`
	Burst   int     `toml:"burst" split_words:"true"`
}

// CheckoutConfig настройки оплаты через Stripe Checkout. Пустой ключ отключает оплату
type CheckoutConfig struct {
	StripeSecretKey string `toml:"stripe_secret_key" split_words:"true"`
	Currency        string `toml:"currency" split_words:"true"`
	SuccessURL      string `toml:"success_url" split_words:"true"`
	CancelURL       string `toml:"cancel_url" split_words:"true"`
}

// Enabled возвращает true, если оплата настроена
func (c CheckoutConfig) Enabled() bool {
	return c.StripeSecretKey != ""
}

// OperationTimeout таймаут одной операции с Redis
func (c RedisConfig) OperationTimeout() time.Duration {
	return time.Duration(c.OperationTimeoutMs) * time.Millisecond
}

// Load загружает конфигурацию из TOML файла, затем применяет переменные окружения
// (в том числе из .env, если он есть)
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrReadConfig, path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: stat %s: %v", ErrReadConfig, path, err)
	}

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: load .env: %v", ErrReadConfig, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrReadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "postgres",
			DBName:          "studio_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			CatalogTTLSecs:     300,
			OperationTimeoutMs: 200,
		},
		Logs: LogsConfig{
			Level:       "info",
			Environment: "production",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "studio-booking",
		},
		Studio: StudioConfig{
			Timezone:                "UTC",
			OpenHour:                8,
			CloseHour:               20,
			MinBookingNoticeMinutes: 60,
		},
		Booking: BookingConfig{
			CommitAttempts:  3,
			CommitBackoffMs: 20,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     2,
			Burst:   10,
		},
		Checkout: CheckoutConfig{
			Currency: "pln",
		},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Studio.OpenHour < 0 || c.Studio.CloseHour > 24 || c.Studio.OpenHour >= c.Studio.CloseHour {
		return fmt.Errorf("%w: studio hours %d-%d", ErrInvalidConfig, c.Studio.OpenHour, c.Studio.CloseHour)
	}
	if c.Studio.MinBookingNoticeMinutes < 0 || c.Studio.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: studio notice and advance days must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Studio.Location(); err != nil {
		return fmt.Errorf("%w: studio.timezone=%q: %v", ErrInvalidConfig, c.Studio.Timezone, err)
	}
	if c.Booking.CommitAttempts < 1 {
		return fmt.Errorf("%w: booking.commit_attempts must be at least 1", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("%w: rate_limit requires positive rps and burst", ErrInvalidConfig)
	}
	if c.Checkout.Enabled() && (c.Checkout.SuccessURL == "" || c.Checkout.CancelURL == "") {
		return fmt.Errorf("%w: checkout requires success_url and cancel_url", ErrInvalidConfig)
	}
	return nil
}
