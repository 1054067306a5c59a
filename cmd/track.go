package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundledger"
	"github.com/google/subcommands"
)

type trackCmd struct{}

func (*trackCmd) Name() string     { return "track" }
func (*trackCmd) Synopsis() string { return "track funds outside of any portfolio" }
func (*trackCmd) Usage() string {
	return `fl track CODE...

  Records today's price of each fund in its own position file <CODE>.json,
  opening the position the first time. No shares are held.
`
}

func (*trackCmd) SetFlags(f *flag.FlagSet) {}

func (*trackCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	funds := codes(f.Args())
	if len(funds) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one fund code is required.")
		return subcommands.ExitUsageError
	}

	store := OpenStore()
	src := newSource()
	on := today()
	status := subcommands.ExitSuccess
	for _, code := range funds {
		if err := track(ctx, store, src, code, on); err != nil {
			fmt.Fprintf(os.Stderr, "Error tracking %s: %v\n", code, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Fprintf(stdout, "Tracked %s on %s\n", code, on)
	}
	return status
}

// track opens or updates the standalone position of a fund.
func track(ctx context.Context, store *fundledger.Store, src fundledger.Source, code string, on fundledger.Date) error {
	pos, err := store.LoadPosition(code)
	if errors.Is(err, fundledger.ErrMissingRecord) {
		pos, err = fundledger.Open(ctx, src, code, on)
	}
	if err != nil {
		return err
	}
	if _, err := pos.DailyUpdate(ctx, src, on); err != nil {
		return err
	}
	return store.SavePosition(pos)
}
