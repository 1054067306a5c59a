// Package cmd implements the CLI application to track fund portfolios.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fundledger"
	"github.com/etnz/fundledger/tefas"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&openCmd{}, "portfolios")
	c.Register(&updateCmd{}, "portfolios")
	c.Register(&shareCmd{name: "buy"}, "portfolios")
	c.Register(&shareCmd{name: "sell", sell: true}, "portfolios")
	c.Register(&showCmd{}, "portfolios")

	c.Register(&quoteCmd{}, "funds")
	c.Register(&trackCmd{}, "funds")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeDir = flag.String("dir", envOr("FL_DIR", "json"), "Path to the folder holding portfolio and position files (env FL_DIR)")
var verbose = flag.Bool("v", false, "Log every ledger change to stderr")

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// newSource returns the market data source used by the commands.
var newSource = func() fundledger.Source { return tefas.New() }

// today returns the tracking date.
var today = fundledger.Today

func envOr(key, value string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return value
}

// Setup configures the application from the parsed global flags.
func Setup() {
	log.SetFlags(0)
	log.SetOutput(io.Discard)
	if *verbose {
		log.SetOutput(os.Stderr)
	}
}

// OpenStore returns the store in the app folder.
func OpenStore() *fundledger.Store { return fundledger.NewStore(*storeDir) }

// LoadPortfolio loads a portfolio from the app store, or creates an empty one if it does not exist and create is true.
func LoadPortfolio(name string, create bool) (*fundledger.Portfolio, error) {
	if name == "" {
		return nil, errors.New("missing portfolio name, use -p")
	}
	p, err := OpenStore().LoadPortfolio(name)
	if create && errors.Is(err, fundledger.ErrMissingRecord) {
		log.Printf("portfolio %q does not exist, creating an empty one", name)
		return fundledger.NewPortfolio(name), nil
	}
	return p, err
}

// printMarkdown renders markdown for the terminal, or prints it raw if rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// codes normalizes fund codes from the command line.
func codes(args []string) []string {
	res := make([]string, 0, len(args))
	for _, a := range args {
		if c := fundledger.NormalizeCode(a); c != "" {
			res = append(res, c)
		}
	}
	return res
}

// joinCodes is used in messages.
func joinCodes(codes []string) string { return strings.Join(codes, ", ") }
