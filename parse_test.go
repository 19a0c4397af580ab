package barwatch

import (
	"strings"
	"testing"
)

// wisdomTreeDocument builds a two-page document in the WisdomTree layout.
func wisdomTreeDocument(t *testing.T) Document {
	t.Helper()
	page1 := `Client Silver Stock Holdings as at C.O.B : 13 February 2026
Total Allocated Bar Count: 3
Total Allocated Gross Weight: 2,981.250
Bar Number Refiner Long Name Gross Weight Fine Weight Bar Assay Vault Name
306-2 ASAHI REFINING 960.050 0.000 0.9997 2016 Brinks London
9380 KGHM POLSKA MIEDZ 1,060.100 0.000 0.9990 Malca Amit London`
	page2 := `Bar Number Refiner Long Name Gross Weight Fine Weight Bar Assay Vault Name
9380 KGHM POLSKA MIEDZ 1,060.100 0.000 0.9990 Malca Amit London
1E 452-11 STATE REFINERIES 961.100 0.000 0.9995 2019 Brinks London
End of Silver weight list`
	return Document{Pages: []string{page1, page2}}
}

func TestParseDocument(t *testing.T) {
	bars, stats := ParseDocument(wisdomTreeDocument(t))

	if stats.Format != FormatWisdomTree {
		t.Errorf("format = %s, want wisdomtree", stats.Format)
	}
	if stats.Pages != 2 {
		t.Errorf("pages = %d, want 2", stats.Pages)
	}
	if len(bars) != 3 {
		t.Fatalf("bars = %d, want 3", len(bars))
	}
	if stats.AcceptedRows != 3 {
		t.Errorf("accepted = %d, want 3", stats.AcceptedRows)
	}

	// The 9380 row repeats across the page break and must be counted,
	// not merged into a double-weight bar.
	if stats.DuplicatesSkipped != 1 {
		t.Errorf("duplicates = %d, want 1", stats.DuplicatesSkipped)
	}

	// Canonical order: by serial.
	serials := make([]string, len(bars))
	for i, bar := range bars {
		serials[i] = bar.SerialNumber
	}
	want := []string{"1E 452-11", "306-2", "9380"}
	for i := range want {
		if serials[i] != want[i] {
			t.Fatalf("order = %v, want %v", serials, want)
		}
	}

	if stats.HeaderMetadata.DeclaredBarCount == nil || *stats.HeaderMetadata.DeclaredBarCount != 3 {
		t.Errorf("declared bar count = %v, want 3", stats.HeaderMetadata.DeclaredBarCount)
	}
}

func TestParseDocumentProvenance(t *testing.T) {
	bars, _ := ParseDocument(wisdomTreeDocument(t))
	for _, bar := range bars {
		if bar.SourcePage < 1 || bar.SourcePage > 2 {
			t.Errorf("bar %s: source page = %d, want 1 or 2", bar.SerialNumber, bar.SourcePage)
		}
		if bar.RawLine == "" {
			t.Errorf("bar %s: missing raw line", bar.SerialNumber)
		}
	}
}

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader("page one\ftwo\fthree"))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(doc.Pages))
	}
	if doc.FirstPage() != "page one" {
		t.Errorf("first page = %q", doc.FirstPage())
	}

	one, err := ReadDocument(strings.NewReader("single page, no form feed"))
	if err != nil {
		t.Fatal(err)
	}
	if len(one.Pages) != 1 {
		t.Errorf("pages = %d, want 1", len(one.Pages))
	}
}
