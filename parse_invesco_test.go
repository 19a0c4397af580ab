package barwatch

import (
	"testing"
)

func TestSplitBrandSerial(t *testing.T) {
	tests := []struct {
		prefix string
		brand  string
		serial string
	}{
		{"Henan Yuguang Gold and Lead Company 20090117K7", "Henan Yuguang Gold and Lead Company", "20090117K7"},
		{"Russian State Refineries 11752", "Russian State Refineries", "11752"},
		{"Norddeutsche Affinerie AG N 60131 A", "Norddeutsche Affinerie AG", "N 60131 A"},
		{"KPR 3841 .", "KPR", "3841 ."},
		{"11752", "", "11752"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			brand, serial := splitBrandSerial(tt.prefix)
			if brand != tt.brand || serial != tt.serial {
				t.Errorf("splitBrandSerial(%q) = (%q, %q), want (%q, %q)",
					tt.prefix, brand, serial, tt.brand, tt.serial)
			}
		})
	}
}

func TestParseInvescoLine(t *testing.T) {
	line := "Henan Yuguang Gold and Lead Company 20090117K7 1000 oz 9990 962.200 962.200 JPM London B (VLTB)"
	bar, ok := parseInvescoLine(line, 2)
	if !ok {
		t.Fatalf("line not parsed: %q", line)
	}

	if bar.SerialNumber != "20090117K7" {
		t.Errorf("serial = %q, want 20090117K7", bar.SerialNumber)
	}
	if bar.Refiner != "Henan Yuguang Gold and Lead Company" {
		t.Errorf("refiner = %q", bar.Refiner)
	}
	if !bar.GrossOz.Equal(Oz(962.2)) {
		t.Errorf("gross = %s, want 962.2", bar.GrossOz)
	}
	if !bar.FineOz.Equal(Oz(962.2)) {
		t.Errorf("fine = %s, want 962.2", bar.FineOz)
	}
	if !bar.Fineness.Equal(R(0.999)) {
		t.Errorf("fineness = %s, want 0.999", bar.Fineness)
	}
	if bar.Vault != "JPM London B (VLTB)" {
		t.Errorf("vault = %q", bar.Vault)
	}
}

func TestParseInvescoLineMultiTokenSerial(t *testing.T) {
	line := "Norddeutsche Affinerie AG N 60131 A 1000 oz 9990 862.600 862.600 JPM London B (VLTB)"
	bar, ok := parseInvescoLine(line, 1)
	if !ok {
		t.Fatalf("line not parsed: %q", line)
	}
	if bar.SerialNumber != "N 60131 A" {
		t.Errorf("serial = %q, want N 60131 A", bar.SerialNumber)
	}
	if bar.Refiner != "Norddeutsche Affinerie AG" {
		t.Errorf("refiner = %q, want Norddeutsche Affinerie AG", bar.Refiner)
	}
}

func TestParseInvescoLineRejects(t *testing.T) {
	lines := []string{
		"Brand Bar No Size Assay Gross oz Fine oz Vault",
		"Running Total: 1000 oz 9990 962.200 962.200",
		"Total Bars : 84,632",
		"JPMorgan Chase Bank N.A. 25 Bank Street",
		"Russian State Refineries 11752 9990 942.100 942.100 JPM London", // missing shape anchor
	}
	for _, line := range lines {
		if _, ok := parseInvescoLine(line, 1); ok {
			t.Errorf("line should be rejected: %q", line)
		}
	}
}

func TestParseInvescoHeader(t *testing.T) {
	firstPage := `Bullion Weightlist value date 2026-02-16
Total Bars : 84,632
Total FTO : 83,046,163.479`

	meta := parseInvescoHeader(firstPage)
	if meta.AsOfDate != "2026-02-16" {
		t.Errorf("as-of = %q, want 2026-02-16", meta.AsOfDate)
	}
	if meta.DeclaredBarCount == nil || *meta.DeclaredBarCount != 84632 {
		t.Errorf("declared bar count = %v, want 84632", meta.DeclaredBarCount)
	}
	if meta.DeclaredFineOz == nil || !meta.DeclaredFineOz.Equal(Oz(83046163.479)) {
		t.Errorf("declared fine = %v, want 83046163.479", meta.DeclaredFineOz)
	}
}
