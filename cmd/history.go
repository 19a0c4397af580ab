package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etcsilver/barwatch"
	"github.com/etcsilver/barwatch/renderer"
	"github.com/google/subcommands"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	fund string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the lifetime bar history for a fund" }
func (*historyCmd) Usage() string {
	return `bw history -fund <key>

  Displays the persistent bar history: snapshots merged, bars tracked,
  and every bar that has left and re-entered the vault.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "fund", "", "Fund key (e.g. invesco, wisdomtree)")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.fund == "" {
		fmt.Fprintln(os.Stderr, "Error: -fund is required")
		return subcommands.ExitUsageError
	}

	h, err := historyDB().Load(c.fund)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading vault history: %v\n", err)
		return subcommands.ExitFailure
	}

	fund := barwatch.LookupFund(c.fund)
	printMarkdown(renderer.RenderHistoryStats(renderer.NewHistoryStats(fund.DisplayName, h)))
	return subcommands.ExitSuccess
}
