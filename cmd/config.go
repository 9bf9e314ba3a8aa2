package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"courier/internal/adapters/out/postgres"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV" env-default:"local" env-description:"Environment: local, dev or prod"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	HTTPPort int    `env:"HTTP_PORT" env-default:"8080"`

	DB       DBConfig
	Auth     AuthConfig
	Admin    AdminConfig
	Delivery DeliveryConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Minio    MinioConfig
}

type DBConfig struct {
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     int    `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER" env-default:"postgres"`
	Password string `env:"DB_PASSWORD" env-default:"postgres"`
	Name     string `env:"DB_NAME" env-default:"courier"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
}

type AuthConfig struct {
	JWTSecret            string        `env:"JWT_SECRET" env-required:"true" env-description:"HS256 signing secret"`
	SessionIdleTTL       time.Duration `env:"SESSION_IDLE_TTL" env-default:"30m"`
	SessionSweepSchedule string        `env:"SESSION_SWEEP_SCHEDULE" env-default:"0 * * * * *"`
}

type AdminConfig struct {
	Password string `env:"ADMIN_PASSWORD" env-required:"true" env-description:"Password of the bootstrap administrator"`
	Name     string `env:"ADMIN_NAME" env-default:"Administrator1"`
	Phone    string `env:"ADMIN_PHONE" env-default:"88888888"`
	Address  string `env:"ADMIN_ADDRESS"`
}

type DeliveryConfig struct {
	TransitDays int `env:"TRANSIT_DAYS" env-default:"1" env-description:"Days after sending before an item can be received"`
}

// RedisConfig enables the Redis session store when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// RabbitMQConfig enables publishing item events when URL is set.
type RabbitMQConfig struct {
	URL string `env:"RABBITMQ_URL"`
}

// MinioConfig enables the object storage waybill archive when Endpoint is set.
type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" env-default:"courier-waybills"`
	UseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Env {
	case "local", "dev", "prod":
	default:
		return fmt.Errorf("ENV must be local, dev or prod, got %q", c.Env)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT %d is out of range", c.HTTPPort)
	}
	if c.Delivery.TransitDays < 0 {
		return fmt.Errorf("TRANSIT_DAYS must not be negative, got %d", c.Delivery.TransitDays)
	}
	if c.Auth.SessionIdleTTL <= 0 {
		return fmt.Errorf("SESSION_IDLE_TTL must be positive, got %s", c.Auth.SessionIdleTTL)
	}
	if _, err := c.logLevel(); err != nil {
		return err
	}
	return nil
}

// LoadDBConfig reads only the database settings, for commands that do not
// start the service.
func LoadDBConfig() (DBConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return DBConfig{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg DBConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return DBConfig{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

func (c Config) Postgres() postgres.ConnectionConfig {
	return c.DB.Connection()
}

func (d DBConfig) Connection() postgres.ConnectionConfig {
	return postgres.ConnectionConfig{
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		DBName:   d.Name,
		SSLMode:  d.SSLMode,
	}
}

// NewLogger returns a text logger for local runs and a JSON logger otherwise.
func (c Config) NewLogger() *slog.Logger {
	level, _ := c.logLevel()
	opts := &slog.HandlerOptions{Level: level}

	if c.Env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func (c Config) logLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
