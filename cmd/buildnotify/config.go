package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "BUILDNOTIFY_"

// Config is read from BUILDNOTIFY_* variables and provides the defaults of
// the matching command line flags.
type Config struct {
	// Application
	LogLevel string        `env:"LOG_LEVEL" envDefault:"info"`
	Strict   bool          `env:"STRICT"    envDefault:"false"`
	Timeout  time.Duration `env:"TIMEOUT"   envDefault:"30s"`

	// Nabaztag
	NabaztagSerial  string `env:"NABAZTAG_SERIAL"`
	NabaztagToken   string `env:"NABAZTAG_TOKEN"`
	NabaztagBaseURL string `env:"NABAZTAG_BASE_URL"`

	// Twitter
	TwitterUsername string `env:"TWITTER_USERNAME"`
	TwitterPassword string `env:"TWITTER_PASSWORD"`
	TwitterBaseURL  string `env:"TWITTER_BASE_URL"`

	// Unfuddle
	UnfuddleSubdomain string `env:"UNFUDDLE_SUBDOMAIN"`
	UnfuddleProjectID int    `env:"UNFUDDLE_PROJECT_ID"`
	UnfuddleUsername  string `env:"UNFUDDLE_USERNAME"`
	UnfuddlePassword  string `env:"UNFUDDLE_PASSWORD"`
	UnfuddleBaseURL   string `env:"UNFUDDLE_BASE_URL"`
}

func loadConfig() (*Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil { //nolint:exhaustruct
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
