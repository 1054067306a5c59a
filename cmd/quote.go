package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundledger"
	"github.com/etnz/fundledger/renderer"
	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "display today's market data of funds" }
func (*quoteCmd) Usage() string {
	return `fl quote CODE...

  Fetches and displays the price and returns of each fund, without
  recording anything.
`
}

func (*quoteCmd) SetFlags(f *flag.FlagSet) {}

func (*quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	funds := codes(f.Args())
	if len(funds) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one fund code is required.")
		return subcommands.ExitUsageError
	}

	src := newSource()
	status := subcommands.ExitSuccess
	for _, code := range funds {
		s, err := fundledger.Quote(ctx, src, code)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = subcommands.ExitFailure
			continue
		}
		printMarkdown(renderer.Quote(code, s))
	}
	return status
}
