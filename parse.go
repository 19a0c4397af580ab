package barwatch

import (
	"strings"
)

// ParseStats records how a document parse went: how many lines were seen,
// how many became records, and how many were duplicates. Line rejection is
// expected and high-frequency; it is counted here, never raised as an
// error.
type ParseStats struct {
	Format            Format         `json:"format"`
	Pages             int            `json:"pages"`
	CandidateLines    int            `json:"candidate_lines"`
	AcceptedRows      int            `json:"accepted_rows"`
	DuplicatesSkipped int            `json:"duplicates_skipped"`
	HeaderMetadata    HeaderMetadata `json:"header_metadata"`
}

// ParseDocument detects the document's provider format, extracts the
// declared header totals from page one, and converts every data row into
// a BarRecord. Duplicate rows (the same raw line repeated across a page
// break, or for the generic format the same bar identity) are counted and
// discarded, not merged. The returned bars are canonically sorted.
func ParseDocument(doc Document) ([]BarRecord, ParseStats) {
	format := DetectFormat(doc.FirstPage())
	stats := ParseStats{
		Format:         format,
		Pages:          len(doc.Pages),
		HeaderMetadata: format.ParseHeader(doc.FirstPage()),
	}

	var bars []BarRecord
	seen := make(map[string]bool)

	for pageIndex, pageText := range doc.Pages {
		page := pageIndex + 1 // 1-based provenance
		for _, line := range strings.Split(pageText, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			stats.CandidateLines++

			record, ok := format.parseLine(line, page)
			if !ok {
				continue
			}
			key := format.dedupKey(line, record)
			if seen[key] {
				stats.DuplicatesSkipped++
				continue
			}
			seen[key] = true
			bars = append(bars, record)
			stats.AcceptedRows++
		}
	}

	sortBars(bars)
	return bars, stats
}
