// Package config loads the reflow CLI's runtime configuration from the
// environment, falling back to defaults when a .env file is absent.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the environment-tunable settings shared by every reflow
// subcommand.
type Config struct {
	LogLevel         string `env:"REFLOW_LOG_LEVEL" envDefault:"info"`
	LogJSON          bool   `env:"REFLOW_LOG_JSON" envDefault:"false"`
	ScenariosDir     string `env:"REFLOW_SCENARIOS_DIR" envDefault:"testdata/scenarios"`
	GoldenUpdateMode bool   `env:"REFLOW_UPDATE_GOLDEN" envDefault:"false"`
}

// Load reads an optional .env file (missing is not an error) and then
// environment variables into a Config, applying envDefault tags for
// anything unset.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: loading env file %s: %w", envFile, err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	return &cfg, nil
}
