package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bt.yaml")
	content := `
store:
  sqlite_path: /var/lib/bt/prices.db
eodhd:
  api_key: demo
strategy:
  short: 20
  long: 100
  cost_bps: 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if got, want := cfg.Store.SQLitePath, "/var/lib/bt/prices.db"; got != want {
		t.Errorf("SQLitePath = %q, want %q", got, want)
	}
	if got, want := cfg.EODHD.APIKey, "demo"; got != want {
		t.Errorf("APIKey = %q, want %q", got, want)
	}
	if got, want := cfg.Strategy.Short, 20; got != want {
		t.Errorf("Short = %d, want %d", got, want)
	}
	if got, want := cfg.Strategy.CostBps, 10.0; got != want {
		t.Errorf("CostBps = %v, want %v", got, want)
	}
	// Fields absent from the file keep their defaults.
	if got, want := cfg.Strategy.Currency, "USD"; got != want {
		t.Errorf("Currency = %q, want %q", got, want)
	}
	if got, want := cfg.Strategy.PeriodsPerYear, 252; got != want {
		t.Errorf("PeriodsPerYear = %d, want %d", got, want)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.yaml"))
	if err != nil {
		t.Fatalf("a missing config file should not be an error, got: %v", err)
	}
	if got, want := cfg.Strategy.Long, 200; got != want {
		t.Errorf("Long = %d, want default %d", got, want)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("EODHD_API_KEY", "from-env")
	t.Setenv("BT_SQLITE_PATH", "/tmp/env.db")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.EODHD.APIKey, "from-env"; got != want {
		t.Errorf("APIKey = %q, want %q", got, want)
	}
	if got, want := cfg.Store.SQLitePath, "/tmp/env.db"; got != want {
		t.Errorf("SQLitePath = %q, want %q", got, want)
	}
}
