package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything needed to run the service, loaded from the
// environment.
type Config struct {
	Port          string        `env:"AMBA_PORT" envDefault:"8080"`
	DBPath        string        `env:"AMBA_DB_PATH" envDefault:"amba.db"`
	AdminPassword string        `env:"AMBA_ADMIN_PASS" envDefault:"admin123"`
	SessionTTL    time.Duration `env:"AMBA_SESSION_TTL" envDefault:"12h"`
	LogLevel      string        `env:"AMBA_LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
