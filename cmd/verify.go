package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etcsilver/barwatch"
	"github.com/etcsilver/barwatch/renderer"
	"github.com/google/subcommands"
)

// verifyCmd holds the flags for the 'verify' subcommand.
type verifyCmd struct {
	funds      string
	metricsDir string
	invesco    string
	wisdomtree string
	output     string
	jsonOut    bool
	skipDelta  bool
}

func (*verifyCmd) Name() string { return "verify" }
func (*verifyCmd) Synopsis() string {
	return "verify bar lists against fund metrics and update vault history"
}
func (*verifyCmd) Usage() string {
	return `bw verify [-funds <keys>] [-invesco <file>] [-wisdomtree <file>] [-o <file>] [-json] [-no-delta]

  Parses each fund's bar-list document, aggregates the bars, verifies the
  physical inventory against the fund's expected holdings, and merges the
  snapshot into the vault history. Writes the full JSON report to the data
  folder and prints a markdown summary.
`
}

func (c *verifyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.funds, "funds", "invesco,wisdomtree", "Comma-separated fund keys to process")
	f.StringVar(&c.metricsDir, "metrics-dir", "", "Directory containing etc_fund_metrics_<fund>.json files (defaults to the data folder)")
	f.StringVar(&c.invesco, "invesco", "", "Override path for the Invesco bar-list document")
	f.StringVar(&c.wisdomtree, "wisdomtree", "", "Override path for the WisdomTree bar-list document")
	f.StringVar(&c.output, "o", "", "Output JSON report path (defaults to the data folder)")
	f.BoolVar(&c.jsonOut, "json", false, "Print the JSON report instead of markdown")
	f.BoolVar(&c.skipDelta, "no-delta", false, "Do not merge the snapshots into the vault history")
}

func (c *verifyCmd) barlist(fund string) string {
	switch fund {
	case "invesco":
		if c.invesco != "" {
			return c.invesco
		}
	case "wisdomtree":
		if c.wisdomtree != "" {
			return c.wisdomtree
		}
	}
	return barlistPath(fund)
}

func (c *verifyCmd) metricsFile(fund string) string {
	if c.metricsDir != "" {
		return filepath.Join(c.metricsDir, fmt.Sprintf("etc_fund_metrics_%s.json", fund))
	}
	return metricsPath(fund)
}

func (c *verifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	funds := splitFunds(c.funds)
	if len(funds) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no funds requested")
		return subcommands.ExitUsageError
	}

	report := barwatch.NewReport(funds)
	db := historyDB()

	for _, fund := range funds {
		metrics, err := barwatch.LoadFundMetrics(c.metricsFile(fund))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading metrics for %q: %v\n", fund, err)
			return subcommands.ExitFailure
		}

		result := barwatch.AnalyzeFile(barwatch.LookupFund(fund), c.barlist(fund), metrics)

		if !c.skipDelta && len(result.Bars) > 0 {
			delta, err := db.Update(fund, result.Bars, result.DateTag())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error updating vault history for %q: %v\n", fund, err)
				return subcommands.ExitFailure
			}
			result.Delta = &delta
		}
		report.Add(result)
	}

	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		return subcommands.ExitFailure
	}

	output := c.output
	if output == "" {
		output = filepath.Join(*dataDir, "etc_silver_inventory_verification_latest.json")
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating report folder: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(output, raw, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}

	// Date-stamped copy for historical comparison.
	dated := filepath.Join(filepath.Dir(output),
		fmt.Sprintf("etc_silver_inventory_verification_%s.json", barwatch.Today().Tag()))
	if err := os.WriteFile(dated, raw, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing dated report: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.jsonOut {
		fmt.Println(string(raw))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderVerification(renderer.NewVerification(report)))
	for _, result := range report.Results {
		if result.Delta != nil {
			printMarkdown(renderer.RenderVaultDelta(
				renderer.NewVaultDelta(result.Fund.DisplayName, *result.Delta)))
		}
	}
	fmt.Printf("Saved: %s\n", output)
	return subcommands.ExitSuccess
}

// splitFunds parses a comma-separated fund list, dropping empty items.
func splitFunds(s string) []string {
	var funds []string
	for _, fund := range strings.Split(s, ",") {
		if fund = strings.TrimSpace(fund); fund != "" {
			funds = append(funds, fund)
		}
	}
	return funds
}
