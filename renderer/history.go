package renderer

import (
	"sort"

	"github.com/etcsilver/barwatch"
)

// HistoryStats is the view model for a fund's bar-history summary.
type HistoryStats struct {
	DisplayName string
	LastUpdated string
	Snapshots   []string
	BarsTracked int
	Present     int
	Removed     int
	ReEntry     int

	// Bars with the most recorded re-entries, most volatile first.
	TopReEntries []ReEntryRow
}

// ReEntryRow is one line of the re-entry leaderboard.
type ReEntryRow struct {
	Serial    string
	Refiner   string
	ReEntries int
	FirstSeen string
	LastSeen  string
	Status    string
}

// NewHistoryStats summarizes a fund's bar-history database.
func NewHistoryStats(displayName string, h *barwatch.History) *HistoryStats {
	s := &HistoryStats{
		DisplayName: displayName,
		LastUpdated: h.LastUpdated,
		Snapshots:   h.Snapshots,
		BarsTracked: len(h.Bars),
	}
	for _, entry := range h.Bars {
		switch entry.Status {
		case barwatch.BarPresent:
			s.Present++
		case barwatch.BarRemoved:
			s.Removed++
		}
		if entry.ReEntries > 0 {
			s.ReEntry++
			s.TopReEntries = append(s.TopReEntries, ReEntryRow{
				Serial:    entry.SerialNumber,
				Refiner:   entry.Refiner,
				ReEntries: entry.ReEntries,
				FirstSeen: entry.FirstSeen,
				LastSeen:  entry.LastSeen,
				Status:    entry.Status,
			})
		}
	}
	sort.Slice(s.TopReEntries, func(i, j int) bool {
		a, b := s.TopReEntries[i], s.TopReEntries[j]
		if a.ReEntries != b.ReEntries {
			return a.ReEntries > b.ReEntries
		}
		return a.Serial < b.Serial
	})
	return s
}

const historyStatsMarkdownTemplate = `# Bar History: {{ .DisplayName }}

{{ if .LastUpdated }}Last updated {{ .LastUpdated }}.
{{ end }}
| | |
|:---|---:|
| Snapshots merged | {{ len .Snapshots }} |
| Bars tracked | {{ .BarsTracked }} |
| Currently present | {{ .Present }} |
| Removed | {{ .Removed }} |
| With re-entry history | {{ .ReEntry }} |
{{- if .Snapshots }}

Snapshots: {{ range $i, $tag := .Snapshots }}{{ if $i }}, {{ end }}{{ $tag }}{{ end }}.
{{- end }}
{{- if .TopReEntries }}

## Bars With Re-entry History

| Serial | Refiner | Re-entries | First seen | Last seen | Status |
|:---|:---|---:|:---|:---|:---|
{{- range .TopReEntries }}
| {{ .Serial }} | {{ .Refiner }} | {{ .ReEntries }} | {{ .FirstSeen }} | {{ .LastSeen }} | {{ .Status }} |
{{- end }}
{{- end }}
`

// RenderHistoryStats renders the bar-history summary to markdown.
func RenderHistoryStats(s *HistoryStats) string {
	return renderTemplate("historyStats", historyStatsMarkdownTemplate, s)
}
