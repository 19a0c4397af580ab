package barwatch

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"
)

// Fund identifies a silver ETC whose bar list can be verified.
type Fund struct {
	Key         string `json:"fund"`
	DisplayName string `json:"display_name"`
	ISIN        string `json:"isin,omitempty"`
	Ticker      string `json:"ticker,omitempty"`
}

// DefaultFunds is the built-in fund registry.
var DefaultFunds = []Fund{
	{
		Key:         "invesco",
		DisplayName: "Invesco Physical Silver ETC",
		ISIN:        "IE00B43VDT70",
		Ticker:      "SSLV.L",
	},
	{
		Key:         "wisdomtree",
		DisplayName: "WisdomTree Physical Silver ETC",
		ISIN:        "JE00B1VS3333",
		Ticker:      "PHAG.L",
	},
}

// LookupFund resolves a fund key against the registry. Unknown keys get
// a bare fund whose display name is the key itself, so ad-hoc bar lists
// remain analyzable.
func LookupFund(key string) Fund {
	for _, f := range DefaultFunds {
		if f.Key == key {
			return f
		}
	}
	return Fund{Key: key, DisplayName: key}
}

// FundReport is the complete per-fund analysis: parse statistics,
// aggregates, verification, the normalized bars, and any errors that
// prevented part of the pipeline from running. A failed fund still
// carries a verification block so its status is machine readable.
type FundReport struct {
	Fund         Fund
	BarlistFile  string
	Parse        *ParseStats
	Aggregates   *AggregateSummary
	Verification VerificationResult
	Bars         []BarRecord
	Delta        *Delta
	Errors       []string

	// Metrics the verification was computed from. Kept for rendering,
	// not serialized with the report.
	Metrics FundMetrics
}

// DateTag derives the snapshot tag for history merging: the header
// as-of date when the parse found one, else today.
func (r FundReport) DateTag() string {
	if r.Parse != nil && r.Parse.HeaderMetadata.AsOfDate != "" {
		return NormalizeDateTag(r.Parse.HeaderMetadata.AsOfDate)
	}
	return Today().Tag()
}

// MarshalJSON renders the report with a stable field order.
func (r FundReport) MarshalJSON() ([]byte, error) {
	bars := r.Bars
	if bars == nil {
		bars = []BarRecord{}
	}
	errors := r.Errors
	if errors == nil {
		errors = []string{}
	}
	var w jsonObjectWriter
	w.EmbedFrom(r.Fund).
		Optional("barlist_file", r.BarlistFile).
		Append("parse", r.Parse).
		Append("aggregates", r.Aggregates).
		Append("verification", r.Verification).
		Append("bars", bars)
	if r.Delta != nil {
		w.Append("vault_delta", r.Delta)
	}
	w.Append("errors", errors)
	return w.MarshalJSON()
}

// AnalyzeDocument runs the full pipeline for one fund: parse the
// document, aggregate the bars, derive the expected holdings from the
// metrics, and verify one against the other.
func AnalyzeDocument(fund Fund, file string, doc Document, metrics FundMetrics) FundReport {
	bars, stats := ParseDocument(doc)
	agg := Aggregate(bars)
	expected, method, ok := ExpectedOunces(metrics)

	return FundReport{
		Fund:         fund,
		BarlistFile:  filepath.Base(file),
		Parse:        &stats,
		Aggregates:   &agg,
		Verification: Verify(agg, expected, method, ok, stats.HeaderMetadata, metrics),
		Bars:         bars,
		Metrics:      metrics,
	}
}

// AnalyzeFile loads a bar-list document and analyzes it. A document
// that cannot be read does not abort a multi-fund run: the report
// carries the error and an insufficient verification instead.
func AnalyzeFile(fund Fund, path string, metrics FundMetrics) FundReport {
	doc, err := LoadDocument(path)
	if err != nil {
		expected, method, ok := ExpectedOunces(metrics)
		return FundReport{
			Fund:         fund,
			Verification: Verify(AggregateSummary{}, expected, method, ok, HeaderMetadata{}, metrics),
			Errors:       []string{fmt.Sprintf("bar_list_not_available: %v", err)},
			Metrics:      metrics,
		}
	}
	return AnalyzeDocument(fund, path, doc, metrics)
}

// SummaryRow is the one-line digest of a fund report.
type SummaryRow struct {
	Fund          string   `json:"fund"`
	DisplayName   string   `json:"display_name"`
	BarCount      int      `json:"bar_count"`
	PhysicalOz    Ounces   `json:"physical_oz"`
	ExpectedOz    *Ounces  `json:"expected_oz"`
	DifferencePct *Percent `json:"difference_pct"`
	Status        Status   `json:"status"`
	Errors        []string `json:"errors"`
}

// Report is the run-level verification report over one or more funds.
// Results keep the order the funds were requested in.
type Report struct {
	GeneratedUTC   time.Time
	FundsRequested []string
	Results        []FundReport
}

// NewReport starts a report for the given fund keys.
func NewReport(funds []string) *Report {
	return &Report{GeneratedUTC: time.Now().UTC(), FundsRequested: funds}
}

// Add appends a fund's analysis to the report.
func (r *Report) Add(report FundReport) { r.Results = append(r.Results, report) }

// Summary digests every result into one row per fund.
func (r *Report) Summary() []SummaryRow {
	rows := make([]SummaryRow, 0, len(r.Results))
	for _, result := range r.Results {
		row := SummaryRow{
			Fund:          result.Fund.Key,
			DisplayName:   result.Fund.DisplayName,
			PhysicalOz:    result.Verification.PhysicalOz,
			ExpectedOz:    result.Verification.ExpectedOz,
			DifferencePct: result.Verification.DifferencePct,
			Status:        result.Verification.Status,
			Errors:        result.Errors,
		}
		if row.Errors == nil {
			row.Errors = []string{}
		}
		if result.Aggregates != nil {
			row.BarCount = result.Aggregates.BarCount
		}
		rows = append(rows, row)
	}
	return rows
}

// MarshalJSON renders the run report with a stable field order; the
// results object keeps the fund request order.
func (r *Report) MarshalJSON() ([]byte, error) {
	var results jsonObjectWriter
	for _, result := range r.Results {
		results.Append(result.Fund.Key, result)
	}
	rawResults, err := results.MarshalJSON()
	if err != nil {
		return nil, err
	}

	rows := r.Summary()
	var summary jsonObjectWriter
	summary.Append("funds_processed", len(rows)).
		Append("rows", rows)
	rawSummary, err := summary.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var w jsonObjectWriter
	w.Append("generated_utc", r.GeneratedUTC.Format(time.RFC3339)).
		Append("funds_requested", r.FundsRequested).
		Append("results", json.RawMessage(rawResults)).
		Append("summary", json.RawMessage(rawSummary))
	return w.MarshalJSON()
}
