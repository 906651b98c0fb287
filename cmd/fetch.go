package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/backtest/eodhd"
	"github.com/etnz/backtest/series"
	"github.com/etnz/backtest/store"
	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	ticker  string
	from    string
	to      string
	apiFlag string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch daily prices from EODHD into the local store" }
func (*fetchCmd) Usage() string {
	return `bt fetch -t <ticker> [-s <date>] [-e <date>]

  Downloads daily adjusted close prices from eodhd.com and saves them into
  the local price store, so 'bt run' works offline afterwards.

  Requires the EODHD_API_KEY environment variable to be set, or the key to
  be passed as a flag or configured in the config file.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker to fetch, in EODHD notation (e.g. AAPL.US)")
	f.StringVar(&c.from, "s", "2000-01-01", "Start date of the range to fetch")
	f.StringVar(&c.to, "e", series.Today().String(), "End date of the range to fetch")
	f.StringVar(&c.apiFlag, "eodhd-api-key", "", "EODHD API key. This flag takes precedence over the EODHD_API_KEY environment variable and the config file. You can get one at https://eodhd.com/")
}

// apiKey resolves the EODHD API key from the flag, the environment, or the
// config file, in that order.
func apiKey(flagValue string, cfg *Config) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("EODHD_API_KEY"); v != "" {
		return v
	}
	return cfg.EODHD.APIKey
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintf(os.Stderr, "Error: -t <ticker> is required\n")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		return subcommands.ExitFailure
	}

	key := apiKey(c.apiFlag, cfg)
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: EODHD API key is not set. Use -eodhd-api-key flag or EODHD_API_KEY environment variable\n")
		return subcommands.ExitFailure
	}

	from, err := series.ParseDate(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := series.ParseDate(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	prices, err := eodhd.New(key).FetchPrices(c.ticker, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch from eodhd.com: %v\n", err)
		return subcommands.ExitFailure
	}
	if prices.Len() == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no prices returned for %q in %s..%s\n", c.ticker, from, to)
		return subcommands.ExitSuccess
	}

	db, err := store.NewSQLiteStore(cfg.Store.SQLitePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening price store %q: %v\n", cfg.Store.SQLitePath, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	if err := db.SavePrices(c.ticker, prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving prices: %v\n", err)
		return subcommands.ExitFailure
	}

	first, _ := prices.First()
	last, _ := prices.Last()
	fmt.Fprintf(os.Stderr, "✅ Saved %d prices for %s (%s to %s).\n", prices.Len(), c.ticker, first, last)
	return subcommands.ExitSuccess
}
