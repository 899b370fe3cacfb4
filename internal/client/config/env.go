package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment parsing.
type envConfig struct {
	ServerBaseURL  string        `env:"PARLEY_SERVER_URL"`
	APIToken       string        `env:"PARLEY_API_TOKEN"`
	RequestTimeout time.Duration `env:"PARLEY_REQUEST_TIMEOUT"`
}

// parseEnv overlays cfg with values from PARLEY_* environment variables.
// Unset variables leave the running config untouched.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.ServerBaseURL != "" {
		cfg.ServerBaseURL = ec.ServerBaseURL
	}
	if ec.APIToken != "" {
		cfg.APIToken = ec.APIToken
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
}
