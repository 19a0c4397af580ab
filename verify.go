package barwatch

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Status classifies how the parsed physical inventory compares against the
// expected holdings. The band boundaries are inclusive (≤, not <) and must
// stay that way to preserve comparability of historical reports.
type Status string

const (
	StatusMatch               Status = "match_within_0.25pct"
	StatusWarning             Status = "warning_within_1pct"
	StatusOvercollateralized  Status = "overcollateralized_gt_1pct"
	StatusUndercollateralized Status = "undercollateralized_gt_1pct"
	StatusInsufficientMetrics Status = "insufficient_fund_metrics"
)

var (
	matchBand   = decimal.RequireFromString("0.25")
	warningBand = decimal.RequireFromString("1.0")

	// consistencyTolerance is the absolute ounce slack allowed between a
	// parsed total and a header-declared total before they mismatch.
	consistencyTolerance = decimal.RequireFromString("0.01")
)

// classify maps a signed percentage difference onto the status taxonomy.
func classify(pct decimal.Decimal) Status {
	abs := pct.Abs()
	switch {
	case abs.LessThanOrEqual(matchBand):
		return StatusMatch
	case abs.LessThanOrEqual(warningBand):
		return StatusWarning
	case pct.IsPositive():
		return StatusOvercollateralized
	default:
		return StatusUndercollateralized
	}
}

// Percent is a percentage difference, carried as a plain number in reports.
type Percent float64

func (p Percent) String() string { return fmt.Sprintf("%+.4f%%", float64(p)) }

// InternalConsistency cross-checks the parsed aggregate against the totals
// the document header declared about itself. Fields appear only when the
// header declared the corresponding total; mismatches are reported, never
// fatal.
type InternalConsistency struct {
	DeclaredBarCount *int  `json:"declared_bar_count,omitempty"`
	ParsedBarCount   *int  `json:"parsed_bar_count,omitempty"`
	BarCountMatch    *bool `json:"bar_count_match,omitempty"`

	DeclaredGrossOz *Ounces `json:"declared_total_gross_oz,omitempty"`
	ParsedGrossOz   *Ounces `json:"parsed_total_gross_oz,omitempty"`
	GrossDiffOz     *Ounces `json:"gross_diff_oz,omitempty"`
	GrossMatch      *bool   `json:"gross_match,omitempty"`

	DeclaredFineOz *Ounces `json:"declared_total_fine_oz,omitempty"`
	ParsedFineOz   *Ounces `json:"parsed_total_fine_oz,omitempty"`
	FineDiffOz     *Ounces `json:"fine_diff_oz,omitempty"`
	FineMatch      *bool   `json:"fine_match,omitempty"`
}

// VerificationResult is the outcome of comparing a parsed bar list against
// expected holdings.
type VerificationResult struct {
	ExpectedOz      *Ounces `json:"expected_oz"`
	ExpectedMethod  Method  `json:"expected_method,omitempty"`
	PhysicalOz      Ounces  `json:"physical_oz_from_bar_list"`
	PhysicalGrossOz Ounces  `json:"physical_gross_oz"`
	PhysicalFineOz  Ounces  `json:"physical_fine_oz"`

	DifferenceOz  *Ounces  `json:"difference_oz"`
	DifferencePct *Percent `json:"difference_pct"`
	Status        Status   `json:"status"`

	InternalConsistency *InternalConsistency `json:"internal_consistency,omitempty"`

	// Secondary, independent cross-check against the issuer's own
	// published ounce figure. Never overrides Status.
	IssuerReportedOz    *Ounces  `json:"issuer_reported_oz,omitempty"`
	IssuerDifferenceOz  *Ounces  `json:"issuer_difference_oz,omitempty"`
	IssuerDifferencePct *Percent `json:"issuer_difference_pct,omitempty"`
}

// Verify compares the aggregated physical holdings against the expected
// figure. hasExpected=false (or an expected figure of zero) yields
// StatusInsufficientMetrics with no numeric comparison.
//
// physical_oz is the fine-ounce total when positive, else the gross total:
// a list that only declares gross weight is still verifiable, just coarser.
func Verify(agg AggregateSummary, expectedOz Ounces, method Method, hasExpected bool, header HeaderMetadata, metrics FundMetrics) VerificationResult {
	physical := agg.TotalFineOz
	if !physical.IsPositive() {
		physical = agg.TotalGrossOz
	}

	result := VerificationResult{
		ExpectedMethod:  method,
		PhysicalOz:      physical,
		PhysicalGrossOz: agg.TotalGrossOz,
		PhysicalFineOz:  agg.TotalFineOz,
		Status:          StatusInsufficientMetrics,
	}
	if hasExpected {
		result.ExpectedOz = &expectedOz
	}

	if ic := crossCheckHeader(agg, header); ic != nil {
		result.InternalConsistency = ic
	}

	if !hasExpected || expectedOz.IsZero() {
		return result
	}

	diff := physical.Sub(expectedOz)
	pctDec := diff.PercentOf(expectedOz)
	pct := Percent(pctDec.InexactFloat64())
	result.DifferenceOz = &diff
	result.DifferencePct = &pct
	result.Status = classify(pctDec)

	if metrics.WisdomTreeReportedOz != nil && *metrics.WisdomTreeReportedOz > 0 {
		issuer := Oz(*metrics.WisdomTreeReportedOz)
		issuerDiff := physical.Sub(issuer)
		issuerPct := Percent(issuerDiff.PercentOf(issuer).InexactFloat64())
		result.IssuerReportedOz = &issuer
		result.IssuerDifferenceOz = &issuerDiff
		result.IssuerDifferencePct = &issuerPct
	}

	return result
}

// crossCheckHeader compares parsed totals against header-declared totals.
// Count must match exactly; weight totals tolerate |Δ| < 0.01 oz.
func crossCheckHeader(agg AggregateSummary, header HeaderMetadata) *InternalConsistency {
	if header.IsEmpty() {
		return nil
	}
	var ic InternalConsistency
	found := false

	if header.DeclaredBarCount != nil {
		declared := *header.DeclaredBarCount
		parsed := agg.BarCount
		match := declared == parsed
		ic.DeclaredBarCount, ic.ParsedBarCount, ic.BarCountMatch = &declared, &parsed, &match
		found = true
	}
	if header.DeclaredGrossOz != nil {
		declared := *header.DeclaredGrossOz
		parsed := agg.TotalGrossOz
		diff := parsed.Sub(declared)
		match := diff.Abs().Decimal().LessThan(consistencyTolerance)
		ic.DeclaredGrossOz, ic.ParsedGrossOz, ic.GrossDiffOz, ic.GrossMatch = &declared, &parsed, &diff, &match
		found = true
	}
	if header.DeclaredFineOz != nil {
		declared := *header.DeclaredFineOz
		parsed := agg.TotalFineOz
		diff := parsed.Sub(declared)
		match := diff.Abs().Decimal().LessThan(consistencyTolerance)
		ic.DeclaredFineOz, ic.ParsedFineOz, ic.FineDiffOz, ic.FineMatch = &declared, &parsed, &diff, &match
		found = true
	}

	if !found {
		return nil
	}
	return &ic
}
