// internal/config/config.go
//
// Process configuration read from the environment (after main has loaded any
// .env file).

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DatasetPath is a JSON or YAML destinations file; empty uses the
	// embedded dataset. DatasetDB, when set, wins over DatasetPath.
	DatasetPath string `env:"DATASET_PATH"`
	DatasetDB   string `env:"DATASET_DB"`
	FontPath    string `env:"FONT_PATH"`

	ClientOrigin  string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:3000"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`

	ShareRatePerSec float64       `env:"SHARE_RATE_PER_SEC" envDefault:"2"`
	ShareBurst      int           `env:"SHARE_BURST" envDefault:"5"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.ShareRatePerSec <= 0 || c.ShareBurst <= 0 {
		return errors.New("SHARE_RATE_PER_SEC and SHARE_BURST must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// Level is the parsed LOG_LEVEL.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
