package barwatch

import (
	"testing"
)

func bar(serial, refiner, vault string, gross float64) BarRecord {
	return BarRecord{SerialNumber: serial, Refiner: refiner, Vault: vault, GrossOz: Oz(gross)}
}

func TestUpdateFirstSnapshot(t *testing.T) {
	db := NewHistoryDB(t.TempDir())
	bars := []BarRecord{
		bar("A1", "ASAHI", "Brinks London", 1000),
		bar("B1", "KGHM", "Malca Amit London", 1060.1),
	}

	delta, err := db.Update("wisdomtree", bars, "20260213")
	if err != nil {
		t.Fatal(err)
	}
	if !delta.IsFirstSnapshot || delta.IsRepeat {
		t.Errorf("first/repeat = %v/%v", delta.IsFirstSnapshot, delta.IsRepeat)
	}
	if delta.PrevDate != "" {
		t.Errorf("prev date = %q, want empty", delta.PrevDate)
	}
	if len(delta.Added) != 2 || len(delta.Removed) != 0 || delta.Unchanged != 0 {
		t.Errorf("added/removed/unchanged = %d/%d/%d, want 2/0/0",
			len(delta.Added), len(delta.Removed), delta.Unchanged)
	}
	if delta.TotalCurrent != 2 || delta.TotalEverSeen != 2 {
		t.Errorf("current/ever = %d/%d, want 2/2", delta.TotalCurrent, delta.TotalEverSeen)
	}

	h, err := db.Load("wisdomtree")
	if err != nil {
		t.Fatal(err)
	}
	if !h.HasSnapshot("20260213") || len(h.Bars) != 2 {
		t.Errorf("history after merge: snapshots=%v bars=%d", h.Snapshots, len(h.Bars))
	}
	if entry := h.Bars["A1|ASAHI"]; entry == nil || entry.Status != BarPresent || entry.FirstSeen != "20260213" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestUpdateRepeatTagIsNoOp(t *testing.T) {
	db := NewHistoryDB(t.TempDir())
	bars := []BarRecord{bar("A1", "ASAHI", "Brinks London", 1000)}

	if _, err := db.Update("wisdomtree", bars, "20260213"); err != nil {
		t.Fatal(err)
	}
	delta, err := db.Update("wisdomtree", bars, "20260213")
	if err != nil {
		t.Fatal(err)
	}
	if !delta.IsRepeat || delta.IsFirstSnapshot {
		t.Errorf("first/repeat = %v/%v", delta.IsFirstSnapshot, delta.IsRepeat)
	}
	if len(delta.Added) != 0 || delta.Unchanged != 1 {
		t.Errorf("added/unchanged = %d/%d, want 0/1", len(delta.Added), delta.Unchanged)
	}
	if delta.HasChanges() {
		t.Error("repeat delta has no changes")
	}

	// Nothing was merged a second time.
	h, err := db.Load("wisdomtree")
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Snapshots) != 1 {
		t.Errorf("snapshots = %v, want one tag", h.Snapshots)
	}
}

func TestUpdateAddAndRemove(t *testing.T) {
	db := NewHistoryDB(t.TempDir())

	first := []BarRecord{
		bar("A1", "ASAHI", "Brinks London", 1000),
		bar("B1", "KGHM", "Malca Amit London", 1060.1),
	}
	if _, err := db.Update("wisdomtree", first, "20260213"); err != nil {
		t.Fatal(err)
	}

	second := []BarRecord{
		bar("A1", "ASAHI", "Brinks London", 1000),
		bar("C1", "UMICORE", "Brinks London", 955.3),
	}
	delta, err := db.Update("wisdomtree", second, "20260214")
	if err != nil {
		t.Fatal(err)
	}

	if delta.IsFirstSnapshot || delta.PrevDate != "20260213" {
		t.Errorf("first=%v prev=%q", delta.IsFirstSnapshot, delta.PrevDate)
	}
	if len(delta.Added) != 1 || delta.Added[0].Key != "C1|UMICORE" {
		t.Errorf("added = %+v", delta.Added)
	}
	if len(delta.Removed) != 1 || delta.Removed[0].Key != "B1|KGHM" {
		t.Errorf("removed = %+v", delta.Removed)
	}
	if delta.Removed[0].FirstSeen != "20260213" || delta.Removed[0].LastSeen != "20260213" {
		t.Errorf("removed lifetime = %+v", delta.Removed[0])
	}
	if delta.Unchanged != 1 || delta.TotalCurrent != 2 || delta.TotalEverSeen != 3 {
		t.Errorf("unchanged/current/ever = %d/%d/%d, want 1/2/3",
			delta.Unchanged, delta.TotalCurrent, delta.TotalEverSeen)
	}

	h, err := db.Load("wisdomtree")
	if err != nil {
		t.Fatal(err)
	}
	if h.Bars["B1|KGHM"].Status != BarRemoved {
		t.Error("departed bar should be marked removed")
	}
	if h.Bars["C1|UMICORE"].Status != BarPresent {
		t.Error("new bar should be marked present")
	}
}

func TestUpdateReturnIncrementsReEntries(t *testing.T) {
	db := NewHistoryDB(t.TempDir())

	if _, err := db.Update("invesco", []BarRecord{bar("A1", "KPR", "JPM London A", 962.2)}, "20260210"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Update("invesco", []BarRecord{bar("B1", "KPR", "JPM London A", 950)}, "20260211"); err != nil {
		t.Fatal(err)
	}

	// A1 left on the 11th and returns on the 12th.
	delta, err := db.Update("invesco", []BarRecord{
		bar("A1", "KPR", "JPM London A", 962.2),
		bar("B1", "KPR", "JPM London A", 950),
	}, "20260212")
	if err != nil {
		t.Fatal(err)
	}

	if len(delta.Returned) != 1 {
		t.Fatalf("returned = %+v", delta.Returned)
	}
	ret := delta.Returned[0]
	if ret.Key != "A1|KPR" || ret.ReEntries != 1 {
		t.Errorf("returned = %+v", ret)
	}
	if ret.FirstSeen != "20260210" || ret.LastSeenBefore != "20260210" {
		t.Errorf("returned lifetime = %+v", ret)
	}
	// A returning bar is also flagged in the re-entry list.
	if len(delta.ReEntered) != 1 || delta.ReEntered[0].Key != "A1|KPR" {
		t.Errorf("re-entered = %+v", delta.ReEntered)
	}
	if delta.TotalReEntryBars != 1 {
		t.Errorf("total re-entry bars = %d, want 1", delta.TotalReEntryBars)
	}

	h, err := db.Load("invesco")
	if err != nil {
		t.Fatal(err)
	}
	entry := h.Bars["A1|KPR"]
	if entry.ReEntries != 1 || entry.Status != BarPresent || entry.LastSeen != "20260212" {
		t.Errorf("entry = %+v", entry)
	}
	if len(entry.Appearances) != 2 {
		t.Errorf("appearances = %v", entry.Appearances)
	}
}

func TestUpdateVaultChange(t *testing.T) {
	db := NewHistoryDB(t.TempDir())

	if _, err := db.Update("invesco", []BarRecord{
		bar("A1", "KPR", "JPM London A", 962.2),
		bar("B1", "KPR", "", 950),
	}, "20260210"); err != nil {
		t.Fatal(err)
	}

	delta, err := db.Update("invesco", []BarRecord{
		bar("A1", "KPR", "JPM London B", 962.2),
		bar("B1", "KPR", "JPM London A", 950),
	}, "20260211")
	if err != nil {
		t.Fatal(err)
	}

	if len(delta.VaultChanges) != 1 {
		t.Fatalf("vault changes = %+v", delta.VaultChanges)
	}
	vc := delta.VaultChanges[0]
	if vc.Key != "A1|KPR" || vc.OldVault != "JPM London A" || vc.NewVault != "JPM London B" {
		t.Errorf("vault change = %+v", vc)
	}
	// B1 had no recorded vault before: unknown provenance, not a transfer.
	if delta.Unchanged != 1 {
		t.Errorf("unchanged = %d, want 1", delta.Unchanged)
	}

	h, err := db.Load("invesco")
	if err != nil {
		t.Fatal(err)
	}
	if h.Bars["A1|KPR"].Vault != "JPM London B" {
		t.Error("history should record the new vault")
	}
}

func TestNewSnapshotFirstOccurrenceWins(t *testing.T) {
	snap := newSnapshot([]BarRecord{
		bar("A1", "KPR", "JPM London A", 962.2),
		bar("A1", "KPR", "JPM London B", 900),
		bar("B1", "KPR", "JPM London A", 950),
	})
	if len(snap.keys) != 2 {
		t.Fatalf("keys = %d, want 2", len(snap.keys))
	}
	if kept := snap.keys["A1|KPR"]; kept.Vault != "JPM London A" {
		t.Errorf("first occurrence should win, kept %+v", kept)
	}
	if snap.keep[0] != "A1|KPR" || snap.keep[1] != "B1|KPR" {
		t.Errorf("order = %v", snap.keep)
	}
}

func TestUpdateDistinctIdentitiesSameSerial(t *testing.T) {
	// The same serial from two refiners is two bar identities.
	db := NewHistoryDB(t.TempDir())
	delta, err := db.Update("invesco", []BarRecord{
		bar("11752", "Russian State Refineries", "JPM London A", 942.1),
		bar("11752", "KPR", "JPM London A", 955),
	}, "20260210")
	if err != nil {
		t.Fatal(err)
	}
	if len(delta.Added) != 2 || delta.TotalCurrent != 2 {
		t.Errorf("added/current = %d/%d, want 2/2", len(delta.Added), delta.TotalCurrent)
	}
}
