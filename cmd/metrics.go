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
	"github.com/google/subcommands"
)

// metricsCmd holds the flags for the 'metrics' subcommand.
type metricsCmd struct {
	fund string
	asOf string
}

func (*metricsCmd) Name() string { return "metrics" }
func (*metricsCmd) Synopsis() string {
	return "import fund metrics from a provider JSON payload"
}
func (*metricsCmd) Usage() string {
	return `bw metrics -fund <key> <payload.json> [<metric>=<jsonpath> ...]

  Extracts fund metrics from a raw provider payload and writes the flat
  etc_fund_metrics_<fund>.json file that 'verify' reads. Each mapping
  argument pairs a metric key with a jsonpath into the payload, e.g.

    bw metrics -fund wisdomtree payload.json \
      silver_price_usd='$.quote.silver.usd' \
      total_assets_usd='$.fund.aum'

  Without mappings the payload is assumed to already be flat.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "fund", "", "Fund key (e.g. invesco, wisdomtree)")
	f.StringVar(&c.asOf, "as-of", "", "Data date of the metrics (defaults to today)")
}

func (c *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.fund == "" {
		fmt.Fprintln(os.Stderr, "Error: -fund is required")
		return subcommands.ExitUsageError
	}
	args := f.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: payload file is required")
		return subcommands.ExitUsageError
	}

	payload, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading payload: %v\n", err)
		return subcommands.ExitFailure
	}

	var metrics barwatch.FundMetrics
	if len(args) > 1 {
		paths := make(barwatch.MetricPaths)
		for _, arg := range args[1:] {
			key, path, ok := strings.Cut(arg, "=")
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: invalid mapping %q, want <metric>=<jsonpath>\n", arg)
				return subcommands.ExitUsageError
			}
			paths[key] = path
		}
		metrics, err = barwatch.ExtractMetrics(payload, paths)
	} else {
		metrics, err = barwatch.ParseFundMetrics(payload)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting metrics: %v\n", err)
		return subcommands.ExitFailure
	}
	if metrics.IsEmpty() {
		fmt.Fprintln(os.Stderr, "Error: no recognized metrics in payload")
		return subcommands.ExitFailure
	}

	metrics.AsOf = c.asOf
	if metrics.AsOf == "" {
		metrics.AsOf = barwatch.Today().String()
	}

	out := metricsPath(c.fund)
	raw, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding metrics: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data folder: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(out, raw, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing metrics: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Saved metrics for %s to %s\n", c.fund, out)
	return subcommands.ExitSuccess
}
