package barwatch

// HeaderMetadata holds the aggregate totals a bar-list document declares
// about itself on its first page. Every field is optional: providers
// declare different subsets, and an absent total must stay distinguishable
// from a declared zero.
type HeaderMetadata struct {
	AsOfDate         string  `json:"as_of_date,omitempty"`
	DeclaredBarCount *int    `json:"declared_bar_count,omitempty"`
	DeclaredGrossOz  *Ounces `json:"declared_total_gross_oz,omitempty"`
	DeclaredFineOz   *Ounces `json:"declared_total_fine_oz,omitempty"`
}

// IsEmpty reports whether the header declared nothing usable.
func (h HeaderMetadata) IsEmpty() bool {
	return h.AsOfDate == "" && h.DeclaredBarCount == nil &&
		h.DeclaredGrossOz == nil && h.DeclaredFineOz == nil
}

// DateTag returns the YYYYMMDD snapshot tag for the header's as-of date,
// falling back to today when the document declared none.
func (h HeaderMetadata) DateTag() string {
	return NormalizeDateTag(h.AsOfDate)
}
