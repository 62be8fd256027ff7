package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

const devSecret = "local_dev_secret"

func Load() (App, error) {
	var cfg App
	if err := env.Parse(&cfg); err != nil {
		return App{}, fmt.Errorf("parse env: %w", err)
	}

	// PORT is set by most PaaS runtimes and wins over APP_PORT.
	if p := os.Getenv("PORT"); p != "" {
		cfg.Port = p
	}

	if cfg.IsProd() && (cfg.AuthSecret == "" || cfg.AuthSecret == devSecret) {
		return App{}, errors.New("AUTH_SECRET must be set in prod")
	}
	if cfg.SessionTTLHours <= 0 {
		return App{}, fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", cfg.SessionTTLHours)
	}
	if cfg.CacheEntries <= 0 {
		return App{}, fmt.Errorf("CACHE_ENTRIES must be positive, got %d", cfg.CacheEntries)
	}
	return cfg, nil
}
