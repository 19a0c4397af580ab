package barwatch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHistoryLoadMissing(t *testing.T) {
	db := NewHistoryDB(t.TempDir())
	h, err := db.Load("invesco")
	if err != nil {
		t.Fatal(err)
	}
	if h.Fund != "invesco" {
		t.Errorf("fund = %q", h.Fund)
	}
	if h.Bars == nil || h.Snapshots == nil {
		t.Error("fresh history must have non-nil maps and slices")
	}
	if len(h.Snapshots) != 0 || len(h.Bars) != 0 {
		t.Errorf("fresh history is not empty: %+v", h)
	}
}

func TestHistorySaveLoadRoundTrip(t *testing.T) {
	db := NewHistoryDB(filepath.Join(t.TempDir(), "nested", "dir"))

	h := &History{
		Fund:      "wisdomtree",
		Snapshots: []string{"20260213"},
		Bars: map[string]*HistoryEntry{
			"306-2|ASAHI REFINING": {
				SerialNumber: "306-2",
				Refiner:      "ASAHI REFINING",
				FirstSeen:    "20260213",
				LastSeen:     "20260213",
				Appearances:  []string{"20260213"},
				GrossOz:      Oz(960.05),
				Status:       BarPresent,
			},
		},
	}
	if err := db.Save(h); err != nil {
		t.Fatal(err)
	}
	if h.LastUpdated == "" {
		t.Error("save must stamp last_updated")
	}

	loaded, err := db.Load("wisdomtree")
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.HasSnapshot("20260213") {
		t.Error("snapshot tag lost")
	}
	entry, ok := loaded.Bars["306-2|ASAHI REFINING"]
	if !ok {
		t.Fatal("bar entry lost")
	}
	if entry.Status != BarPresent || !entry.GrossOz.Equal(Oz(960.05)) {
		t.Errorf("entry = %+v", entry)
	}
}

func TestHistoryLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	db := NewHistoryDB(dir)
	path := filepath.Join(dir, "bar_history_invesco.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	// A corrupt file must surface as an error, never as a silent reset
	// that would forget every bar ever tracked.
	if _, err := db.Load("invesco"); err == nil {
		t.Fatal("corrupt history should not load")
	}
}

func TestHistoryReset(t *testing.T) {
	dir := t.TempDir()
	db := NewHistoryDB(dir)

	if err := db.Reset("invesco"); err != nil {
		t.Fatalf("resetting a missing history: %v", err)
	}

	if err := db.Save(&History{Fund: "invesco", Snapshots: []string{"20260213"}}); err != nil {
		t.Fatal(err)
	}
	if err := db.Reset("invesco"); err != nil {
		t.Fatal(err)
	}
	h, err := db.Load("invesco")
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Snapshots) != 0 {
		t.Error("reset should drop all snapshots")
	}
}

func TestHistoryReEntryCount(t *testing.T) {
	h := &History{Bars: map[string]*HistoryEntry{
		"a|X": {ReEntries: 2},
		"b|X": {ReEntries: 0},
		"c|X": {ReEntries: 1},
	}}
	if n := h.ReEntryCount(); n != 2 {
		t.Errorf("re-entry count = %d, want 2", n)
	}
}
