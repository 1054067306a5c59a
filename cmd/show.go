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

type showCmd struct {
	portfolio string
	raw       bool
	tail      int
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display a portfolio or the ledger of one of its funds" }
func (*showCmd) Usage() string {
	return `fl show -p <portfolio> [-raw] [-tail <n>] [CODE]

  Displays the portfolio report, or the ledger of a fund if a code is given.
  With -raw, the stored JSON record is printed instead.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to display.")
	f.BoolVar(&c.raw, "raw", false, "Print the JSON record.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N ledger entries.")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one fund code expected.")
		return subcommands.ExitUsageError
	}

	p, err := LoadPortfolio(c.portfolio, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if f.NArg() == 0 {
		if c.raw {
			err = fundledger.EncodePortfolio(stdout, p)
		} else {
			printMarkdown(renderer.Portfolio(p, today()))
		}
	} else {
		pos := p.Position(f.Arg(0))
		if pos == nil {
			fmt.Fprintf(os.Stderr, "%v: %s in %q\n", fundledger.ErrUnknownPosition, f.Arg(0), p.Name())
			return subcommands.ExitFailure
		}
		if c.raw {
			err = fundledger.EncodePosition(stdout, pos)
		} else {
			printMarkdown(renderer.Position(pos, c.tail))
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
