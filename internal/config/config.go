package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "GATEWAY_"

type Config struct {
	Primary   Primary         `koanf:"primary"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Processor ProcessorConfig `koanf:"processor"`
	Token     TokenConfig     `koanf:"token"`
	Retry     RetryConfig     `koanf:"retry"`
	Donation  DonationConfig  `koanf:"donation"`
	Callback  CallbackConfig  `koanf:"callback"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Notifier  NotifierConfig  `koanf:"notifier"`
	Archive   ArchiveConfig   `koanf:"archive"`
	Worker    WorkerConfig    `koanf:"worker"`
	Logger    LoggerConfig    `koanf:"logger"`
	Admin     AdminConfig     `koanf:"admin"`
}

// WorkerConfig drives the stale-pending reconciler. A zero Interval disables it.
type WorkerConfig struct {
	Interval   time.Duration `koanf:"interval"`
	BatchSize  int           `koanf:"batch_size" validate:"min=1"`
	StaleAfter time.Duration `koanf:"stale_after" validate:"required"`

	// MaxAttempts stops background polling of a donation after that many
	// polls left it PENDING. Zero means no limit.
	MaxAttempts int `koanf:"max_attempts" validate:"min=0"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`

	// TrustProxyHeaders lets X-Forwarded-For/X-Real-IP override the socket
	// address for rate limiting and logs.
	TrustProxyHeaders bool `koanf:"trust_proxy_headers"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

type ProcessorConfig struct {
	BaseURL    string        `koanf:"base_url" validate:"required,url"`
	Username   string        `koanf:"username" validate:"required"`
	Password   string        `koanf:"password" validate:"required"`
	MerchantID string        `koanf:"merchant_id" validate:"required"`
	Timeout    time.Duration `koanf:"timeout" validate:"required"`
}

type TokenConfig struct {
	SafetyMargin time.Duration `koanf:"safety_margin"`
	DefaultTTL   time.Duration `koanf:"default_ttl" validate:"required"`
}

type RetryConfig struct {
	BaseDelay  int32 `koanf:"base_delay"`
	MaxRetries int32 `koanf:"max_retries"`
}

type DonationConfig struct {
	// MaxAmount caps a single donation. Empty means no cap.
	MaxAmount string `koanf:"max_amount"`
}

type CallbackConfig struct {
	// URL is where the processor posts the payment outcome.
	URL string `koanf:"url" validate:"required,url"`
	// ResultURL is where donors are redirected after a callback. Empty answers with JSON.
	ResultURL    string `koanf:"result_url" validate:"omitempty,url"`
	MaxBodyBytes int64  `koanf:"max_body_bytes" validate:"min=1"`
}

type RateLimitConfig struct {
	InitiateRequests int           `koanf:"initiate_requests" validate:"min=1"`
	StatusRequests   int           `koanf:"status_requests" validate:"min=1"`
	Window           time.Duration `koanf:"window" validate:"required"`
}

// NotifierConfig selects SMTP receipts when Host is set.
type NotifierConfig struct {
	Host     string        `koanf:"host"`
	Port     int           `koanf:"port"`
	Username string        `koanf:"username"`
	Password string        `koanf:"password"`
	From     string        `koanf:"from" validate:"omitempty,email"`
	Timeout  time.Duration `koanf:"timeout" validate:"required"`
}

// ArchiveConfig enables the S3 callback archive when Bucket is set.
type ArchiveConfig struct {
	Bucket string `koanf:"bucket"`
	Prefix string `koanf:"prefix"`
	Region string `koanf:"region"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=json text"`
}

type AdminConfig struct {
	// APIKey guards the verify endpoint when set.
	APIKey string `koanf:"api_key"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                  "development",
		"server.port":                  "8080",
		"server.read_timeout":          "15s",
		"server.write_timeout":         "45s",
		"server.idle_timeout":          "60s",
		"server.request_timeout":       "40s",
		"server.trust_proxy_headers":   false,
		"database.ssl_mode":            "disable",
		"database.max_open_conns":      25,
		"database.max_idle_conns":      5,
		"database.conn_max_lifetime":   "1h",
		"database.conn_max_idle_time":  "30m",
		"processor.timeout":            "30s",
		"token.safety_margin":          "1h",
		"token.default_ttl":            "24h",
		"retry.base_delay":             1,
		"retry.max_retries":            3,
		"callback.max_body_bytes":      64 << 10,
		"rate_limit.initiate_requests": 5,
		"rate_limit.status_requests":   30,
		"rate_limit.window":            "15m",
		"notifier.port":                587,
		"notifier.timeout":             "30s",
		"archive.prefix":               "callbacks",
		"worker.interval":              "0s",
		"worker.batch_size":            50,
		"worker.stale_after":           "15m",
		"worker.max_attempts":          10,
		"logger.level":                 "info",
		"logger.format":                "json",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load config defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
