package barwatch

import (
	"sort"
)

// BarRecord is one physical bar as declared in a bar-list document.
// Only the serial number is guaranteed: a line whose identity prefix cannot
// be resolved is discarded during parsing, never emitted partially.
type BarRecord struct {
	SerialNumber string `json:"serial_number"`
	Refiner      string `json:"refiner,omitempty"`
	GrossOz      Ounces `json:"gross_oz"`
	FineOz       Ounces `json:"fine_oz"`
	Fineness     Ratio  `json:"fineness"`
	Vault        string `json:"vault,omitempty"`
	Year         int    `json:"year,omitempty"`
	SourcePage   int    `json:"source_page"`
	RawLine      string `json:"raw_line"`
}

// Key returns the canonical identity of the bar across snapshots:
// "serial|refiner". The serial number alone is not globally unique; two
// refiners can issue the same serial.
func (b BarRecord) Key() string {
	return b.SerialNumber + "|" + b.Refiner
}

// sortBars orders bars canonically by serial, refiner, then year, so that
// reports and stores are stable across runs.
func sortBars(bars []BarRecord) {
	sort.Slice(bars, func(i, j int) bool {
		a, b := bars[i], bars[j]
		if a.SerialNumber != b.SerialNumber {
			return a.SerialNumber < b.SerialNumber
		}
		if a.Refiner != b.Refiner {
			return a.Refiner < b.Refiner
		}
		return a.Year < b.Year
	})
}
