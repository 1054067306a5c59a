package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type updateCmd struct {
	portfolio string
	jobs      int
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "record today's prices in portfolio ledgers" }
func (*updateCmd) Usage() string {
	return `fl update [-p <portfolio>] [-j <n>]

  Fetches today's price of every fund and appends it to the position ledgers.
  A fund already updated today is left untouched. All portfolios are updated
  unless -p is given. Positions that could be updated are saved even if
  others failed.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to update. Updates all by default.")
	f.IntVar(&c.jobs, "j", 4, "Maximum number of funds fetched concurrently.")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	store := OpenStore()
	names := []string{c.portfolio}
	if c.portfolio == "" {
		var err error
		if names, err = store.Portfolios(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	src := newSource()
	on := today()
	status := subcommands.ExitSuccess
	for _, name := range names {
		p, err := store.LoadPortfolio(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = subcommands.ExitFailure
			continue
		}
		p.SetParallelism(c.jobs)
		if err := p.DailyUpdate(ctx, src, on); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating %q:\n%v\n", name, err)
			status = subcommands.ExitFailure
		}
		if err := store.SavePortfolio(p); err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Fprintf(stdout, "Updated %q on %s\n", name, on)
	}
	return status
}
