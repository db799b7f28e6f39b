// Package config loads service settings from the environment.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,          default=8080"`
	Env       string        `env:"ENV,           default=development"`
	LogLevel  string        `env:"LOG_LEVEL,     default=info"`
	LogPretty bool          `env:"LOG_PRETTY,    default=false"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,     default=24h"`

	// PasswordMode is "plaintext" (demo) or "bcrypt".
	PasswordMode string `env:"PASSWORD_MODE, default=plaintext"`
	SeedDemo     bool   `env:"SEED_DEMO,     default=true"`

	NotifyWorkers  int      `env:"NOTIFY_WORKERS,  default=4"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Tracing TracingConfig
}

// MongoConfig enables the reporting mirror when URI is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB,  default=ats"`
}

// RedisConfig enables the Redis notification sink when Addr is set.
type RedisConfig struct {
	Addr            string `env:"REDIS_ADDR"`
	Password        string `env:"REDIS_PASSWORD"`
	DB              int    `env:"REDIS_DB,         default=0"`
	NotificationKey string `env:"NOTIFY_REDIS_KEY, default=ats:notifications"`
}

type TracingConfig struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME, default=ats"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("config: JWT_SECRET is required in production")
		}
		c.JWTSecret = "dev-secret-change-me"
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive")
	}
	return nil
}

// Load reads a .env file when present, then the environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load for process start-up; it panics on error.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return cfg
}
