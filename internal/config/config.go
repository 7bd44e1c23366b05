// Package config loads application configuration from environment variables
// (optionally seeded from a .env file) and validates it before startup.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. All fields come from env vars.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development" validate:"oneof=development production"`
	Port   int    `env:"PORT" envDefault:"8080" validate:"gt=0,lte=65535"`

	// Empty DSN selects the in-memory storage adapters (dev/handoff mode).
	DatabaseDSN   string `env:"DATABASE_DSN"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me" validate:"min=8"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h" validate:"gt=0"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10" validate:"gte=4,lte=31"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// IsDevelopment reports whether the app runs in development mode.
// Error responses include the underlying error detail only in this mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads .env (if present), parses the environment and validates the result.
func Load() (*Config, error) {
	// .env is a dev convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
