// Package config holds environment-backed defaults for the pepmass CLI.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries defaults that command-line flags may override.
type Config struct {
	Threads           int      `env:"PEPMASS_THREADS"            envDefault:"1"`
	IonTypes          string   `env:"PEPMASS_ION_TYPES"          envDefault:"b,y"`
	SpectraExtensions []string `env:"PEPMASS_SPECTRA_EXTENSIONS" envDefault:".raw,.mzML,.mgf" envSeparator:","`
	Delimiter         string   `env:"PEPMASS_DELIMITER"`
	ModDatabase       string   `env:"PEPMASS_MOD_DATABASE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the CLI configuration with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	// empty or a literal backslash-t means tab
	if cfg.Delimiter == "" || cfg.Delimiter == `\t` {
		cfg.Delimiter = "\t"
	}
	return cfg, nil
}
