package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/backtest/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "documentation")
	commander.Register(commander.FlagsCommand(), "documentation")
	cmd.Register(commander)

	completion()

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion for the bt command. It returns
// immediately unless invoked by the shell completion machinery.
func completion() {
	eodhdFlags := map[string]complete.Predictor{
		"t":             predict.Nothing,
		"eodhd-api-key": predict.Nothing,
	}
	bt := &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
		},
		Sub: map[string]*complete.Command{
			"fetch": {Flags: eodhdFlags},
			"quote": {Flags: eodhdFlags},
			"run": {Flags: map[string]complete.Predictor{
				"t":     predict.Nothing,
				"short": predict.Nothing,
				"long":  predict.Nothing,
				"rates": predict.Files("*.csv"),
			}},
			"topic": {Args: predict.Set{"readme", "strategy", "metrics", "costs", "*"}},
		},
	}
	bt.Complete("bt")
}
