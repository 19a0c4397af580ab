package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// resetCmd holds the flags for the 'reset' subcommand.
type resetCmd struct {
	funds string
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "delete the persistent bar histories and start fresh" }
func (*resetCmd) Usage() string {
	return `bw reset [-funds <keys>]

  Deletes the vault history databases. The next verify or delta run will
  treat its snapshot as the first one.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.funds, "funds", "invesco,wisdomtree", "Comma-separated fund keys to reset")
}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db := historyDB()
	for _, fund := range splitFunds(c.funds) {
		if err := db.Reset(fund); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting history for %q: %v\n", fund, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Reset bar history for %s\n", fund)
	}
	return subcommands.ExitSuccess
}
