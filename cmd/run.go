package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/backtest"
	"github.com/etnz/backtest/renderer"
	"github.com/etnz/backtest/series"
	"github.com/etnz/backtest/store"
	"github.com/google/subcommands"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	ticker  string
	from    string
	to      string
	short   int
	long    int
	costBps float64
	capital float64
	rates   string
	charts  bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "backtest the crossover strategy on stored prices" }
func (*runCmd) Usage() string {
	return `bt run -t <ticker> [-short <n>] [-long <n>] [-s <date>] [-e <date>]

  Generates the SMA crossover position schedule on the stored daily prices,
  simulates it net of transaction costs, and prints a performance report.

  Prices must have been downloaded first with 'bt fetch'.

Usage Examples:
# Backtest the classic golden cross on Apple.
$ bt run -t AAPL.US -short 50 -long 200

`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker to backtest, in EODHD notation (e.g. AAPL.US)")
	f.StringVar(&c.from, "s", "", "Start date of the simulation range. Defaults to the first stored price.")
	f.StringVar(&c.to, "e", "", "End date of the simulation range. Defaults to the last stored price.")
	f.IntVar(&c.short, "short", 0, "Short SMA window in trading days. Defaults to the configured value.")
	f.IntVar(&c.long, "long", 0, "Long SMA window in trading days. Defaults to the configured value.")
	f.Float64Var(&c.costBps, "cost", -1, "Transaction cost in basis points per unit traded. Defaults to the configured value.")
	f.Float64Var(&c.capital, "capital", 0, "Initial capital. Defaults to the configured value.")
	f.StringVar(&c.rates, "rates", "", "Risk-free rates CSV file (date, annualized percent). Defaults to the configured value.")
	f.BoolVar(&c.charts, "charts", true, "Include equity and drawdown charts in the report")
}

// resolve fills unset flags from the configuration defaults.
func (c *runCmd) resolve(cfg *Config) {
	if c.short == 0 {
		c.short = cfg.Strategy.Short
	}
	if c.long == 0 {
		c.long = cfg.Strategy.Long
	}
	if c.costBps < 0 {
		c.costBps = cfg.Strategy.CostBps
	}
	if c.capital == 0 {
		c.capital = cfg.Strategy.InitialCapital
	}
	if c.rates == "" {
		c.rates = cfg.Strategy.RatesFile
	}
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintf(os.Stderr, "Error: -t <ticker> is required\n")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		return subcommands.ExitFailure
	}
	c.resolve(cfg)

	db, err := store.NewSQLiteStore(cfg.Store.SQLitePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening price store %q: %v\n", cfg.Store.SQLitePath, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	prices, err := db.LoadPrices(c.ticker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices for %q: %v\n", c.ticker, err)
		return subcommands.ExitFailure
	}
	if prices.Len() == 0 {
		fmt.Fprintf(os.Stderr, "Error: no prices stored for %q. Run 'bt fetch -t %s' first.\n", c.ticker, c.ticker)
		return subcommands.ExitFailure
	}

	prices, err = c.clip(prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	positions, err := backtest.Crossover(prices, c.short, c.long)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing crossover signal: %v\n", err)
		return subcommands.ExitFailure
	}

	var riskFree *series.Series[float64]
	if c.rates != "" {
		rates, err := backtest.LoadRiskFree(c.rates, cfg.Strategy.PeriodsPerYear)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading risk-free rates %q: %v\n", c.rates, err)
			return subcommands.ExitFailure
		}
		riskFree, err = rates.Select(prices.Index())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: risk-free rates do not cover the price range: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	result, err := backtest.Run(prices, positions, riskFree, c.costBps, c.capital)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
		return subcommands.ExitFailure
	}

	summary, err := backtest.Summarize(result, riskFree, cfg.Strategy.PeriodsPerYear)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing statistics: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	if err := renderer.Summary(&b, c.ticker, summary, cfg.Strategy.Currency); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.charts {
		if err := renderer.Equity(&b, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering equity chart: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := renderer.Drawdown(&b, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering drawdown chart: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}

// clip restricts the price history to the requested simulation range.
func (c *runCmd) clip(prices *series.Series[float64]) (*series.Series[float64], error) {
	from, _ := prices.First()
	to, _ := prices.Last()
	if c.from != "" {
		day, err := series.ParseDate(c.from)
		if err != nil {
			return nil, fmt.Errorf("parsing start date: %w", err)
		}
		from = day
	}
	if c.to != "" {
		day, err := series.ParseDate(c.to)
		if err != nil {
			return nil, fmt.Errorf("parsing end date: %w", err)
		}
		to = day
	}
	clipped := prices.Between(from, to)
	if clipped.Len() == 0 {
		return nil, fmt.Errorf("no prices in range %s..%s", from, to)
	}
	return clipped, nil
}
