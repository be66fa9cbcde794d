package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is loaded from the environment once at startup and passed to
// every component that needs it. Nothing reads environment variables
// during request handling.
type Config struct {
	Env      string `envconfig:"APP_ENV" default:"dev"`
	BindAddr string `envconfig:"BIND_ADDR" default:"0.0.0.0:8080"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`

	RedisURL string `envconfig:"REDIS_URL"`

	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	SMTP      SMTPConfig      `envconfig:"SMTP"`
	Maps      MapsConfig      `envconfig:"MAPS"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"RPS" default:"20"`
	Burst             int     `envconfig:"BURST" default:"40"`
}

type SMTPConfig struct {
	Host     string `envconfig:"HOST"`
	Port     int    `envconfig:"PORT" default:"587"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	From     string `envconfig:"FROM" default:"no-reply@clinicore.dev"`
}

// Enabled reports whether outbound mail is configured; when false the
// notifier degrades to a no-op.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type MapsConfig struct {
	APIKey  string        `envconfig:"API_KEY"`
	BaseURL string        `envconfig:"BASE_URL" default:"https://maps.geoapify.com/v1"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"5s"`
}

func (c MapsConfig) Enabled() bool {
	return c.APIKey != ""
}

// Load reads the process configuration from the environment. A missing
// JWT_SECRET or DATABASE_URL fails startup.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}
