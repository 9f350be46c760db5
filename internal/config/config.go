// Package config loads service settings from the environment and game tuning
// from a JSON file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/minigame"
)

// Config holds the application configuration
type Config struct {
	// --- HTTP ---
	Port            int           `envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"65536" validate:"min=1024"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s" validate:"min=1s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"20s" validate:"min=1s"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS"`
	TrustedProxies  []string      `envconfig:"TRUSTED_PROXIES"`
	RateLimit       int           `envconfig:"RATE_LIMIT" default:"1000" validate:"min=1"`
	RateWindow      time.Duration `envconfig:"RATE_WINDOW" default:"5m" validate:"min=1s"`

	// --- Logging ---
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
	LogSource   bool   `envconfig:"LOG_ADD_SOURCE" default:"false"`
	LogDir      string `envconfig:"LOG_DIR"`
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
	Version     string `envconfig:"VERSION" default:"dev"`

	// --- Storage; empty URLs select in-memory implementations ---
	DatabaseURL   string        `envconfig:"DATABASE_URL"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNS" default:"20" validate:"min=1"`
	DBMaxIdle     time.Duration `envconfig:"DB_MAX_IDLE" default:"5m"`
	DBMaxLifetime time.Duration `envconfig:"DB_MAX_LIFETIME" default:"1h"`
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0" validate:"min=0"`

	// --- Events ---
	NATSURL           string        `envconfig:"NATS_URL"`
	NATSSubjectPrefix string        `envconfig:"NATS_SUBJECT_PREFIX" default:"chibox"`
	DeadLetterPath    string        `envconfig:"EVENT_DEAD_LETTER_PATH" default:"logs/event_deadletter.jsonl"`
	EventMaxRetries   int           `envconfig:"EVENT_MAX_RETRIES" default:"5" validate:"min=1"`
	EventRetryDelay   time.Duration `envconfig:"EVENT_RETRY_DELAY" default:"2s" validate:"min=10ms"`

	// --- Background jobs ---
	WorkerCount   int           `envconfig:"WORKER_COUNT" default:"2" validate:"min=1"`
	WorkerQueue   int           `envconfig:"WORKER_QUEUE" default:"16" validate:"min=1"`
	WorkerTimeout time.Duration `envconfig:"WORKER_TIMEOUT" default:"1m" validate:"min=1s"`

	// --- Activity log ---
	EventLogRetentionDays   int           `envconfig:"EVENT_LOG_RETENTION_DAYS" default:"30" validate:"min=1"`
	EventLogCleanupInterval time.Duration `envconfig:"EVENT_LOG_CLEANUP_INTERVAL" default:"24h" validate:"min=1m"`

	// --- Game ---
	GameConfigPath   string        `envconfig:"GAME_CONFIG_PATH" default:"configs/games.json"`
	CatalogTTL       time.Duration `envconfig:"CATALOG_TTL" default:"5m" validate:"min=1s"`
	CatalogSize      int           `envconfig:"CATALOG_CACHE_SIZE" default:"1024" validate:"min=1"`
	ProtectionWindow int           `envconfig:"PROTECTION_WINDOW" default:"3" validate:"min=0"`
	ResetTimezone    string        `envconfig:"RESET_TIMEZONE" default:"Europe/Moscow"`
	ResetHour        int           `envconfig:"RESET_HOUR" default:"16" validate:"min=0,max=23"`
	StartingBalance  string        `envconfig:"STARTING_BALANCE" default:"0"`
	SeedCatalog      bool          `envconfig:"SEED_CATALOG" default:"true"`

	// --- Sessions ---
	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true" validate:"min=16"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h" validate:"min=1m"`
}

// Load reads .env if present and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(LogMsgEnvFileMissing, "error", err)
	}
	return FromEnv()
}

// FromEnv fills Config from the environment without touching .env
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgProcessEnv, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and values that need parsing
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf(ErrMsgInvalidConfig, err)
	}
	if _, err := c.StartingBalanceDecimal(); err != nil {
		return err
	}
	if c.ResetTimezone != "" {
		if _, err := time.LoadLocation(c.ResetTimezone); err != nil {
			// minigame.NewResetClock falls back to a fixed UTC+3 zone
			slog.Warn(ErrMsgResetZone, "error", err)
		}
	}
	return nil
}

// StartingBalanceDecimal parses STARTING_BALANCE
func (c *Config) StartingBalanceDecimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.StartingBalance)
	if err != nil {
		return decimal.Zero, fmt.Errorf(ErrMsgStartingBalance, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf(ErrMsgStartingBalance, errors.New("must not be negative"))
	}
	return d, nil
}

// Logger returns the logger settings
func (c *Config) Logger() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, logger.DefaultServiceName, c.Version, c.Environment, c.LogSource)
}

// ResetClock returns the daily reset schedule
func (c *Config) ResetClock() minigame.ResetClock {
	return minigame.NewResetClock(c.ResetTimezone, c.ResetHour)
}

// UsesPostgres reports whether DATABASE_URL is set
func (c *Config) UsesPostgres() bool { return c.DatabaseURL != "" }

// UsesRedis reports whether REDIS_ADDR is set
func (c *Config) UsesRedis() bool { return c.RedisAddr != "" }

// UsesNATS reports whether NATS_URL is set
func (c *Config) UsesNATS() bool { return c.NATSURL != "" }
