package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/etnz/backtest"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the bt application.
type Config struct {
	Store    Store    `yaml:"store"`
	EODHD    EODHD    `yaml:"eodhd"`
	Strategy Strategy `yaml:"strategy"`
}

// Store holds paths for price persistence.
type Store struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// EODHD holds credentials for the eodhd.com API.
type EODHD struct {
	APIKey string `yaml:"api_key"`
}

// Strategy holds the default simulation parameters. Every field can be
// overridden per run with a command-line flag.
type Strategy struct {
	Short          int     `yaml:"short"`
	Long           int     `yaml:"long"`
	CostBps        float64 `yaml:"cost_bps"`
	InitialCapital float64 `yaml:"initial_capital"`
	Currency       string  `yaml:"currency"`
	PeriodsPerYear int     `yaml:"periods_per_year"`
	RatesFile      string  `yaml:"rates_file"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Store: Store{SQLitePath: "bt.db"},
		Strategy: Strategy{
			Short:          50,
			Long:           200,
			CostBps:        5,
			InitialCapital: 10_000,
			Currency:       "USD",
			PeriodsPerYear: backtest.DefaultPeriodsPerYear,
		},
	}
}

// LoadConfig reads the YAML configuration file at the given path, parses it
// on top of the defaults, and then applies environment variable overrides.
// A missing file is not an error: the defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BT_SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("EODHD_API_KEY"); v != "" {
		cfg.EODHD.APIKey = v
	}
}
