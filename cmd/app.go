// Package cmd implements the CLI application to verify silver ETC bar
// lists and track vault movements.
package cmd

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/etcsilver/barwatch"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&verifyCmd{}, "verification")

	c.Register(&deltaCmd{}, "vault history")
	c.Register(&historyCmd{}, "vault history")
	c.Register(&resetCmd{}, "vault history")

	c.Register(&metricsCmd{}, "fund metrics")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", ".barwatch", "Path to the folder holding bar lists, fund metrics and bar histories")

// historyDB opens the bar-history repository under the app data folder.
func historyDB() barwatch.HistoryDB {
	return barwatch.NewHistoryDB(*dataDir)
}

// metricsPath returns the flat metrics file for a fund.
func metricsPath(fund string) string {
	return filepath.Join(*dataDir, fmt.Sprintf("etc_fund_metrics_%s.json", fund))
}

// barlistPath returns the default bar-list document for a fund.
func barlistPath(fund string) string {
	return filepath.Join(*dataDir, fmt.Sprintf("%s_silver_barlist.txt", fund))
}
