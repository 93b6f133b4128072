package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// minSecretLength is the minimum accepted size of the token signing secret.
const minSecretLength = 16

// Config holds the application configuration.
type Config struct {
	ServerPort    int           `env:"PORT" envDefault:"8080"`
	DatabasePath  string        `env:"DATABASE_PATH" envDefault:"./gameslibrary.db"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret     string        `env:"JWT_SECRET"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	AllowedOrigin string        `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`

	// Optional bootstrap account created at startup when absent.
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load parses configuration from environment variables and validates it.
// Validation failures here are fatal at startup, never per-request.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be set and at least %d characters long", minSecretLength)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be a positive duration")
	}
	if cfg.AdminUsername != "" && cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required when ADMIN_USERNAME is set")
	}
	return cfg, nil
}
