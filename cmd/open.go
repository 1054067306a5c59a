package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type openCmd struct {
	portfolio string
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "open positions on funds in a portfolio" }
func (*openCmd) Usage() string {
	return `fl open -p <portfolio> CODE...

  Opens a position on each fund, at today's price, and adds it to the
  portfolio. The portfolio is created if it does not exist.

Usage Examples:
$ fl open -p main YKT AFT
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to open the positions in.")
}

func (c *openCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	funds := codes(f.Args())
	if len(funds) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one fund code is required.")
		return subcommands.ExitUsageError
	}

	p, err := LoadPortfolio(c.portfolio, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	src := newSource()
	on := today()
	var opened []string
	for _, code := range funds {
		if _, err := p.AddPosition(ctx, src, code, on); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", code, err)
			continue
		}
		opened = append(opened, code)
	}
	if len(opened) == 0 {
		return subcommands.ExitFailure
	}

	if err := OpenStore().SavePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Opened %s in %q\n", joinCodes(opened), p.Name())
	if len(opened) < len(funds) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
