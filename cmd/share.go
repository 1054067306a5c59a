package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/fundledger"
	"github.com/google/subcommands"
)

// shareCmd records a share purchase or sale.
type shareCmd struct {
	name      string
	sell      bool
	portfolio string
}

func (c *shareCmd) Name() string { return c.name }
func (c *shareCmd) Synopsis() string {
	if c.sell {
		return "record a sale of fund shares"
	}
	return "record a purchase of fund shares"
}
func (c *shareCmd) Usage() string {
	return fmt.Sprintf(`fl %s -p <portfolio> CODE SHARES

  Records today's trade of a whole number of shares on a fund of the
  portfolio. The fund price is updated first if needed.
`, c.name)
}

func (c *shareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio holding the fund.")
}

func (c *shareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expecting a fund code and a number of shares.")
		return subcommands.ExitUsageError
	}
	code := fundledger.NormalizeCode(f.Arg(0))
	shares, err := strconv.ParseInt(f.Arg(1), 10, 64)
	if err != nil || shares <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid number of shares %q, must be a positive integer.\n", f.Arg(1))
		return subcommands.ExitUsageError
	}
	if c.sell {
		shares = -shares
	}

	p, err := LoadPortfolio(c.portfolio, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := p.RecordShareChange(ctx, newSource(), code, today(), shares); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := OpenStore().SavePortfolio(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s: %d shares held\n", code, p.Position(code).TotalShares())
	return subcommands.ExitSuccess
}
