package renderer

import (
	"fmt"
	"sort"

	"github.com/etcsilver/barwatch"
)

// Verification is the view model for a run-level verification report.
// Numbers keep their exact library types so the templates render them
// through their own String methods.
type Verification struct {
	Generated string
	Funds     []VerificationFund
}

// VerificationFund is the per-fund section of a verification report.
type VerificationFund struct {
	Fund        barwatch.Fund
	BarlistFile string
	AsOfDate    string
	Format      string

	BarCount       int
	UniqueVaults   int
	UniqueRefiners int

	PhysicalOz  barwatch.Ounces
	GrossOz     barwatch.Ounces
	FineOz      barwatch.Ounces
	FineDerived bool

	ExpectedOz     *barwatch.Ounces
	ExpectedMethod barwatch.Method
	DifferenceOz   *barwatch.Ounces
	DifferencePct  *barwatch.Percent
	Status         barwatch.Status

	// Metrics the expectation was derived from, formatted as money.
	TotalAssets string
	SilverPrice string

	Consistency []ConsistencyRow
	Vaults      []VaultRow
	Errors      []string
}

// ConsistencyRow is one line of the header cross-check table.
type ConsistencyRow struct {
	Label    string
	Declared string
	Parsed   string
	Match    bool
}

// VaultRow is one line of the vault breakdown table.
type VaultRow struct {
	Name    string
	Bars    int
	GrossOz barwatch.Ounces
}

// NewVerification builds the report view from a run report.
func NewVerification(r *barwatch.Report) *Verification {
	v := &Verification{Generated: r.GeneratedUTC.Format("2 January 2006")}
	for _, result := range r.Results {
		v.Funds = append(v.Funds, newVerificationFund(result))
	}
	return v
}

func newVerificationFund(r barwatch.FundReport) VerificationFund {
	ver := r.Verification
	f := VerificationFund{
		Fund:           r.Fund,
		BarlistFile:    r.BarlistFile,
		PhysicalOz:     ver.PhysicalOz,
		GrossOz:        ver.PhysicalGrossOz,
		FineOz:         ver.PhysicalFineOz,
		ExpectedOz:     ver.ExpectedOz,
		ExpectedMethod: ver.ExpectedMethod,
		DifferenceOz:   ver.DifferenceOz,
		DifferencePct:  ver.DifferencePct,
		Status:         ver.Status,
		Consistency:    consistencyRows(ver.InternalConsistency),
		Errors:         r.Errors,
	}
	if r.Parse != nil {
		f.AsOfDate = r.Parse.HeaderMetadata.AsOfDate
		f.Format = r.Parse.Format.String()
	}
	if r.Metrics.TotalAssetsUSD != nil {
		f.TotalAssets = barwatch.USD(*r.Metrics.TotalAssetsUSD).String()
	}
	if r.Metrics.SilverPriceUSD != nil {
		f.SilverPrice = barwatch.USD(*r.Metrics.SilverPriceUSD).String()
	}
	if r.Aggregates != nil {
		agg := r.Aggregates
		f.BarCount = agg.BarCount
		f.UniqueVaults = agg.UniqueVaults
		f.UniqueRefiners = agg.UniqueRefiners
		f.FineDerived = agg.FineOzComputedFromFineness

		names := make([]string, 0, len(agg.Vaults))
		for name := range agg.Vaults {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			vs := agg.Vaults[name]
			f.Vaults = append(f.Vaults, VaultRow{Name: name, Bars: vs.Bars, GrossOz: vs.GrossOz})
		}
	}
	return f
}

// consistencyRows flattens the header cross-check into table rows.
func consistencyRows(ic *barwatch.InternalConsistency) []ConsistencyRow {
	if ic == nil {
		return nil
	}
	var rows []ConsistencyRow
	if ic.DeclaredBarCount != nil {
		rows = append(rows, ConsistencyRow{
			Label:    "Bar count",
			Declared: fmt.Sprintf("%d", *ic.DeclaredBarCount),
			Parsed:   fmt.Sprintf("%d", *ic.ParsedBarCount),
			Match:    *ic.BarCountMatch,
		})
	}
	if ic.DeclaredGrossOz != nil {
		rows = append(rows, ConsistencyRow{
			Label:    "Gross oz",
			Declared: ic.DeclaredGrossOz.String(),
			Parsed:   ic.ParsedGrossOz.String(),
			Match:    *ic.GrossMatch,
		})
	}
	if ic.DeclaredFineOz != nil {
		rows = append(rows, ConsistencyRow{
			Label:    "Fine oz",
			Declared: ic.DeclaredFineOz.String(),
			Parsed:   ic.ParsedFineOz.String(),
			Match:    *ic.FineMatch,
		})
	}
	return rows
}

const verificationMarkdownTemplate = `# Silver ETC Bar List Verification on {{ .Generated }}

{{ range .Funds }}
## {{ .Fund.DisplayName }}{{ if .Fund.Ticker }} ({{ .Fund.Ticker }}){{ end }}

{{ if .BarlistFile }}Bar list: {{ .BarlistFile }}{{ if .AsOfDate }}, as of {{ .AsOfDate }}{{ end }}, format {{ .Format }}.
{{ end }}
| Metric | Value |
|:---|---:|
| Bars parsed | {{ .BarCount }} |
| Unique vaults | {{ .UniqueVaults }} |
| Unique refiners | {{ .UniqueRefiners }} |
| Gross weight (oz) | {{ .GrossOz }} |
| Fine weight (oz) | {{ .FineOz }}{{ if .FineDerived }} (from fineness){{ end }} |
| Physical oz | **{{ .PhysicalOz }}** |
{{- if .ExpectedOz }}
| Expected oz | **{{ .ExpectedOz }}** ({{ .ExpectedMethod }}) |
| Difference | {{ .DifferenceOz }} oz ({{ .DifferencePct }}) |
{{- end }}
| Status | **{{ .Status }}** |
{{- if .TotalAssets }}

Fund assets {{ .TotalAssets }} at silver price {{ .SilverPrice }} per oz.
{{- end }}
{{- if .Consistency }}

### Header cross-check

| | Declared | Parsed | Match |
|:---|---:|---:|---:|
{{- range .Consistency }}
| {{ .Label }} | {{ .Declared }} | {{ .Parsed }} | {{ .Match }} |
{{- end }}
{{- end }}
{{- if .Vaults }}

### Vaults

| Vault | Bars | Gross oz |
|:---|---:|---:|
{{- range .Vaults }}
| {{ .Name }} | {{ .Bars }} | {{ .GrossOz }} |
{{- end }}
{{- end }}
{{- if .Errors }}

### Errors
{{ range .Errors }}
- {{ . }}
{{- end }}
{{- end }}
{{ end }}`

// RenderVerification renders the verification report to markdown.
func RenderVerification(v *Verification) string {
	return renderTemplate("verification", verificationMarkdownTemplate, v)
}
