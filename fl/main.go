// Command fl tracks the daily profit of investment fund portfolios.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fundledger/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	portfolio := map[string]complete.Predictor{"p": predict.Something}
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"open":   {Flags: portfolio, Args: predict.Something},
			"update": {Flags: map[string]complete.Predictor{"p": predict.Something, "j": predict.Something}, Args: predict.Nothing},
			"buy":    {Flags: portfolio, Args: predict.Something},
			"sell":   {Flags: portfolio, Args: predict.Something},
			"show":   {Flags: map[string]complete.Predictor{"p": predict.Something, "raw": predict.Nothing, "tail": predict.Something}, Args: predict.Something},
			"quote":  {Args: predict.Something},
			"track":  {Args: predict.Something},
		},
		Flags: map[string]complete.Predictor{"dir": predict.Dirs("*"), "v": predict.Nothing},
	}
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.Setup()
	os.Exit(int(commander.Execute(context.Background())))
}
