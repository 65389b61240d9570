package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration sourced from env vars. It is loaded
// once at startup and passed around by value; nothing reads the environment
// after Load returns.
type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	DatabaseURL string        `env:"DATABASE_URL"`
	RedisAddr   string        `env:"REDIS_ADDR"`
	JWTSecret   string        `env:"JWT_SECRET"`
	JWTIssuer   string        `env:"JWT_ISSUER" envDefault:"canopy-auth"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`
	PasswordMin int           `env:"PASSWORD_MIN_LENGTH" envDefault:"8"`
	CORSOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// Load parses configuration from the environment and validates it. An empty
// DATABASE_URL selects the in-memory store; an empty REDIS_ADDR selects the
// in-memory denylist. The signing secret has no usable default and must be
// set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.JWTTTL <= 0 {
		return Config{}, errors.New("JWT_TTL must be positive")
	}
	if cfg.PasswordMin < 1 {
		return Config{}, errors.New("PASSWORD_MIN_LENGTH must be positive")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}
