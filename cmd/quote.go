package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/backtest"
	"github.com/etnz/backtest/eodhd"
	"github.com/google/subcommands"
)

// quoteCmd holds the flags for the 'quote' subcommand.
type quoteCmd struct {
	ticker  string
	apiFlag string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "display the latest available price for a ticker" }
func (*quoteCmd) Usage() string {
	return `bt quote -t <ticker>

  Fetches and displays the latest real-time price from eodhd.com.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker to quote, in EODHD notation (e.g. AAPL.US)")
	f.StringVar(&c.apiFlag, "eodhd-api-key", "", "EODHD API key. Takes precedence over the EODHD_API_KEY environment variable and the config file.")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	price, err := eodhd.New(key).Latest(c.ticker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch quote for %q: %v\n", c.ticker, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s %s\n", c.ticker, backtest.M(price, cfg.Strategy.Currency))
	return subcommands.ExitSuccess
}
