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

// deltaCmd holds the flags for the 'delta' subcommand.
type deltaCmd struct {
	fund    string
	barlist string
	date    string
}

func (*deltaCmd) Name() string     { return "delta" }
func (*deltaCmd) Synopsis() string { return "track bar adds, removes and re-entries between snapshots" }
func (*deltaCmd) Usage() string {
	return `bw delta -fund <key> [-barlist <file>] [-d <date>]

  Parses a fund's bar-list document, merges the snapshot into the
  persistent vault history, and prints the movement report: bars added,
  removed, returned after removal, and vault transfers.
`
}

func (c *deltaCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "fund", "", "Fund key (e.g. invesco, wisdomtree)")
	f.StringVar(&c.barlist, "barlist", "", "Bar-list document to analyse (defaults to the data folder)")
	f.StringVar(&c.date, "d", "", "Snapshot date tag override (defaults to the header as-of date)")
}

func (c *deltaCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.fund == "" {
		fmt.Fprintln(os.Stderr, "Error: -fund is required")
		return subcommands.ExitUsageError
	}

	path := c.barlist
	if path == "" {
		path = barlistPath(c.fund)
	}
	doc, err := barwatch.LoadDocument(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bar list: %v\n", err)
		return subcommands.ExitFailure
	}

	bars, stats := barwatch.ParseDocument(doc)
	if len(bars) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no bars parsed from %q\n", path)
		return subcommands.ExitFailure
	}

	dateTag := c.date
	if dateTag == "" && stats.HeaderMetadata.AsOfDate != "" {
		dateTag = barwatch.NormalizeDateTag(stats.HeaderMetadata.AsOfDate)
	}
	if dateTag == "" {
		dateTag = barwatch.Today().Tag()
	}

	delta, err := historyDB().Update(c.fund, bars, dateTag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error updating vault history: %v\n", err)
		return subcommands.ExitFailure
	}

	fund := barwatch.LookupFund(c.fund)
	printMarkdown(renderer.RenderVaultDelta(renderer.NewVaultDelta(fund.DisplayName, delta)))
	return subcommands.ExitSuccess
}
