package barwatch

// unknownLabel buckets bars that declare no vault or refiner.
const unknownLabel = "UNKNOWN"

// VaultSummary is the per-vault slice of an AggregateSummary.
type VaultSummary struct {
	Bars    int    `json:"bars"`
	GrossOz Ounces `json:"gross_oz"`
}

// AggregateSummary is the reduction of a bar set into summary statistics.
// It is derived, never persisted on its own.
type AggregateSummary struct {
	BarCount      int    `json:"bar_count"`
	BarsWithGross int    `json:"bars_with_gross"`
	BarsWithFine  int    `json:"bars_with_fine"`
	TotalGrossOz  Ounces `json:"total_gross_oz"`
	TotalFineOz   Ounces `json:"total_fine_oz"`

	// FineOzComputedFromFineness is set when no bar declared a positive
	// fine weight and the fine total was derived as Σ gross × fineness
	// instead, so downstream verification can attribute precision loss.
	FineOzComputedFromFineness bool `json:"fine_oz_computed_from_fineness"`

	Vaults         map[string]VaultSummary `json:"vaults"`
	Refiners       map[string]int          `json:"refiners"`
	UniqueVaults   int                     `json:"unique_vaults"`
	UniqueRefiners int                     `json:"unique_refiners"`
}

// Aggregate reduces a list of bar records into an AggregateSummary.
//
// The fine-ounce total prefers declared fine weights. When no bar declares
// a positive fine weight (WisdomTree lists print fine as 0.000), it falls
// back to Σ gross × fineness, with fineness defaulting to 1.0 for bars
// missing an assay value.
func Aggregate(bars []BarRecord) AggregateSummary {
	summary := AggregateSummary{
		Vaults:   make(map[string]VaultSummary),
		Refiners: make(map[string]int),
	}
	summary.BarCount = len(bars)

	for _, bar := range bars {
		if bar.GrossOz.IsPositive() {
			summary.BarsWithGross++
			summary.TotalGrossOz = summary.TotalGrossOz.Add(bar.GrossOz)
		}
		if bar.FineOz.IsPositive() {
			summary.BarsWithFine++
			summary.TotalFineOz = summary.TotalFineOz.Add(bar.FineOz)
		}
	}

	if summary.TotalFineOz.IsZero() {
		computed := Oz(0)
		computedCount := 0
		for _, bar := range bars {
			if !bar.GrossOz.IsPositive() {
				continue
			}
			fineness := bar.Fineness
			if !fineness.IsPositive() {
				fineness = R(1)
			}
			computed = computed.Add(bar.GrossOz.Mul(fineness))
			computedCount++
		}
		if computedCount > 0 {
			summary.TotalFineOz = computed
			summary.FineOzComputedFromFineness = true
		}
	}

	for _, bar := range bars {
		vault := bar.Vault
		if vault == "" {
			vault = unknownLabel
		}
		vs := summary.Vaults[vault]
		vs.Bars++
		vs.GrossOz = vs.GrossOz.Add(bar.GrossOz)
		summary.Vaults[vault] = vs

		refiner := bar.Refiner
		if refiner == "" {
			refiner = unknownLabel
		}
		summary.Refiners[refiner]++
	}

	summary.UniqueVaults = len(summary.Vaults)
	summary.UniqueRefiners = len(summary.Refiners)
	return summary
}
