// Package cmd implements the CLI application to run backtests.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fetchCmd{}, "market data")
	c.Register(&quoteCmd{}, "market data")

	c.Register(&runCmd{}, "backtest")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "bt.yaml", "Path to the configuration file (YAML)")

// loadConfig reads the app configuration file. A missing file yields the
// built-in defaults.
func loadConfig() (*Config, error) {
	return LoadConfig(*configFile)
}

// printMarkdown renders markdown to the terminal. On any rendering error it
// falls back to printing the raw markdown.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
