package renderer

import (
	"github.com/etcsilver/barwatch"
)

// maxMovementRows caps the added/removed tables so a full vault
// turnover does not produce an unreadable report.
const maxMovementRows = 200

// VaultDelta is the view model for a single fund's movement report.
type VaultDelta struct {
	DisplayName string
	Delta       barwatch.Delta

	// Truncated table views of the movement lists.
	Added        []barwatch.AddedBar
	AddedMore    int
	Removed      []barwatch.RemovedBar
	RemovedMore  int
	Returned     []barwatch.ReturnedBar
	ReEntered    []barwatch.ReEntryBar
	VaultChanges []barwatch.VaultChange
}

// NewVaultDelta builds the movement report view for one fund.
func NewVaultDelta(displayName string, d barwatch.Delta) *VaultDelta {
	v := &VaultDelta{
		DisplayName:  displayName,
		Delta:        d,
		Added:        d.Added,
		Removed:      d.Removed,
		Returned:     d.Returned,
		ReEntered:    d.ReEntered,
		VaultChanges: d.VaultChanges,
	}
	if len(v.Added) > maxMovementRows {
		v.AddedMore = len(v.Added) - maxMovementRows
		v.Added = v.Added[:maxMovementRows]
	}
	if len(v.Removed) > maxMovementRows {
		v.RemovedMore = len(v.Removed) - maxMovementRows
		v.Removed = v.Removed[:maxMovementRows]
	}
	return v
}

const vaultDeltaMarkdownTemplate = `# Vault Delta Analysis: {{ .DisplayName }}

Snapshot {{ .Delta.DateTag }}{{ if .Delta.PrevDate }} vs {{ .Delta.PrevDate }}{{ end }}.
Bars now: {{ .Delta.TotalCurrent }}, lifetime tracked: {{ .Delta.TotalEverSeen }}.

{{ if .Delta.IsFirstSnapshot -}}
This is the first snapshot, all {{ len .Delta.Added }} bars are new.
{{ else if .Delta.IsRepeat -}}
This snapshot date was already recorded, no delta to compute.
{{ else -}}
| Movement | Bars |
|:---|---:|
| Added (new) | {{ len .Delta.Added }} |
| Removed | {{ len .Delta.Removed }} |
| Returned (re-entry) | {{ len .Delta.Returned }} |
| Vault transfers | {{ len .Delta.VaultChanges }} |
| Unchanged | {{ .Delta.Unchanged }} |
| Re-entry flags | {{ len .Delta.ReEntered }} |
{{- if .Added }}

## Bars Added ({{ len .Delta.Added }})

| Serial | Refiner | Gross oz | Vault |
|:---|:---|---:|:---|
{{- range .Added }}
| {{ .Serial }} | {{ .Refiner }} | {{ .GrossOz }} | {{ .Vault }} |
{{- end }}
{{- if .AddedMore }}

... and {{ .AddedMore }} more.
{{- end }}
{{- end }}
{{- if .Removed }}

## Bars Removed ({{ len .Delta.Removed }})

| Serial | Refiner | Gross oz | Vault | First seen | Last seen |
|:---|:---|---:|:---|:---|:---|
{{- range .Removed }}
| {{ .Serial }} | {{ .Refiner }} | {{ .GrossOz }} | {{ .Vault }} | {{ .FirstSeen }} | {{ .LastSeen }} |
{{- end }}
{{- if .RemovedMore }}

... and {{ .RemovedMore }} more.
{{- end }}
{{- end }}
{{- if .Returned }}

## Bars Returned to Vault ({{ len .Returned }})

These bars were previously removed and have re-entered.

| Serial | Refiner | Re-entries | First seen | Last seen before |
|:---|:---|---:|:---|:---|
{{- range .Returned }}
| {{ .Serial }} | {{ .Refiner }} | {{ .ReEntries }} | {{ .FirstSeen }} | {{ .LastSeenBefore }} |
{{- end }}
{{- end }}
{{- if .ReEntered }}

## All Bars With Re-entry History ({{ len .ReEntered }})

| Serial | Refiner | Re-entries | First seen |
|:---|:---|---:|:---|
{{- range .ReEntered }}
| {{ .Serial }} | {{ .Refiner }} | {{ .ReEntries }} | {{ .FirstSeen }} |
{{- end }}
{{- end }}
{{- if .VaultChanges }}

## Vault Transfers ({{ len .VaultChanges }})

| Serial | Refiner | From | To |
|:---|:---|:---|:---|
{{- range .VaultChanges }}
| {{ .Serial }} | {{ .Refiner }} | {{ .OldVault }} | {{ .NewVault }} |
{{- end }}
{{- end }}
{{- if not .Delta.HasChanges }}

No changes detected between snapshots.
{{- end }}
{{ end }}`

// RenderVaultDelta renders the movement report to markdown.
func RenderVaultDelta(v *VaultDelta) string {
	return renderTemplate("vaultDelta", vaultDeltaMarkdownTemplate, v)
}
