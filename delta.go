package barwatch

import "sort"

// AddedBar is a bar identity never seen in any previous snapshot.
type AddedBar struct {
	Key     string `json:"key"`
	Serial  string `json:"serial"`
	Refiner string `json:"refiner,omitempty"`
	GrossOz Ounces `json:"gross_oz"`
	Vault   string `json:"vault,omitempty"`
}

// RemovedBar is a bar identity present in the previous snapshot and
// absent from the current one.
type RemovedBar struct {
	Key       string `json:"key"`
	Serial    string `json:"serial"`
	Refiner   string `json:"refiner,omitempty"`
	GrossOz   Ounces `json:"gross_oz"`
	Vault     string `json:"vault,omitempty"`
	FirstSeen string `json:"first_seen"`
	LastSeen  string `json:"last_seen"`
}

// ReturnedBar is a bar identity that was removed in some earlier
// snapshot and reappears in the current one.
type ReturnedBar struct {
	Key            string `json:"key"`
	Serial         string `json:"serial"`
	Refiner        string `json:"refiner,omitempty"`
	GrossOz        Ounces `json:"gross_oz"`
	Vault          string `json:"vault,omitempty"`
	ReEntries      int    `json:"re_entries"`
	FirstSeen      string `json:"first_seen"`
	LastSeenBefore string `json:"last_seen_before"`
}

// ReEntryBar flags a currently present bar whose lifetime record shows
// at least one vault exit and return.
type ReEntryBar struct {
	Key       string `json:"key"`
	Serial    string `json:"serial"`
	Refiner   string `json:"refiner,omitempty"`
	ReEntries int    `json:"re_entries"`
	FirstSeen string `json:"first_seen"`
}

// VaultChange is the same bar identity reported under a different vault
// than in the previous snapshot. Both vault names must be non-empty: a
// missing vault on either side is unknown provenance, not a transfer.
type VaultChange struct {
	Key      string `json:"key"`
	Serial   string `json:"serial"`
	Refiner  string `json:"refiner,omitempty"`
	GrossOz  Ounces `json:"gross_oz"`
	OldVault string `json:"old_vault"`
	NewVault string `json:"new_vault"`
}

// Delta is the movement report between the previous snapshot and the
// current one.
type Delta struct {
	DateTag         string `json:"date_tag"`
	PrevDate        string `json:"prev_date,omitempty"`
	IsFirstSnapshot bool   `json:"is_first_snapshot"`
	IsRepeat        bool   `json:"is_repeat"`

	Added        []AddedBar    `json:"added"`
	Removed      []RemovedBar  `json:"removed"`
	Returned     []ReturnedBar `json:"returned"`
	ReEntered    []ReEntryBar  `json:"re_entered"`
	VaultChanges []VaultChange `json:"vault_changes"`
	Unchanged    int           `json:"unchanged"`

	TotalCurrent     int `json:"total_current"`
	TotalEverSeen    int `json:"total_ever_seen"`
	TotalReEntryBars int `json:"total_re_entry_bars"`
}

// HasChanges reports whether the delta recorded any movement at all.
func (d Delta) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 ||
		len(d.Returned) > 0 || len(d.VaultChanges) > 0
}

// snapshot is a current bar set keyed by identity, with the original
// insertion order preserved so delta reports stay deterministic.
type snapshot struct {
	keys map[string]BarRecord
	keep []string
}

// newSnapshot indexes bars by identity key. The first occurrence of an
// identity wins; later duplicates within the same snapshot are ignored.
func newSnapshot(bars []BarRecord) snapshot {
	snap := snapshot{keys: make(map[string]BarRecord, len(bars))}
	for _, bar := range bars {
		key := bar.Key()
		if _, dup := snap.keys[key]; dup {
			continue
		}
		snap.keys[key] = bar
		snap.keep = append(snap.keep, key)
	}
	return snap
}

func (s snapshot) has(key string) bool { _, ok := s.keys[key]; return ok }

// Update merges a dated snapshot into the fund's bar history and
// returns the movement delta relative to the previous snapshot.
//
// The delta is computed against the history as it stood BEFORE this
// snapshot was merged. A date tag already present in the history makes
// the call a no-op: the repeat delta is returned and nothing is saved.
func (db HistoryDB) Update(fund string, bars []BarRecord, dateTag string) (Delta, error) {
	h, err := db.Load(fund)
	if err != nil {
		return Delta{}, err
	}

	snap := newSnapshot(bars)

	if h.HasSnapshot(dateTag) {
		return computeDelta(h, snap, dateTag, true), nil
	}
	delta := computeDelta(h, snap, dateTag, false)

	for _, key := range snap.keep {
		bar := snap.keys[key]
		if entry, ok := h.Bars[key]; ok {
			wasAbsent := entry.Status == BarRemoved
			entry.LastSeen = dateTag
			if !containsTag(entry.Appearances, dateTag) {
				entry.Appearances = append(entry.Appearances, dateTag)
			}
			if wasAbsent {
				entry.ReEntries++
			}
			entry.Status = BarPresent
			entry.GrossOz = bar.GrossOz
			entry.FineOz = bar.FineOz
			entry.Vault = bar.Vault
		} else {
			h.Bars[key] = &HistoryEntry{
				SerialNumber: bar.SerialNumber,
				Refiner:      bar.Refiner,
				FirstSeen:    dateTag,
				LastSeen:     dateTag,
				Appearances:  []string{dateTag},
				GrossOz:      bar.GrossOz,
				FineOz:       bar.FineOz,
				Vault:        bar.Vault,
				Status:       BarPresent,
			}
		}
	}

	for key, entry := range h.Bars {
		if !snap.has(key) && entry.Status == BarPresent {
			entry.Status = BarRemoved
		}
	}

	h.Snapshots = append(h.Snapshots, dateTag)
	if err := db.Save(h); err != nil {
		return Delta{}, err
	}
	return delta, nil
}

// computeDelta diffs a current snapshot against the history as it stood
// before the snapshot was merged.
func computeDelta(h *History, snap snapshot, dateTag string, isRepeat bool) Delta {
	prevDate := ""
	if len(h.Snapshots) > 0 {
		prevDate = h.Snapshots[len(h.Snapshots)-1]
	}

	delta := Delta{
		DateTag:         dateTag,
		PrevDate:        prevDate,
		IsFirstSnapshot: prevDate == "" && !isRepeat,
		IsRepeat:        isRepeat,
		Added:           []AddedBar{},
		Removed:         []RemovedBar{},
		Returned:        []ReturnedBar{},
		ReEntered:       []ReEntryBar{},
		VaultChanges:    []VaultChange{},
		TotalCurrent:    len(snap.keys),
	}

	if isRepeat || prevDate == "" {
		if prevDate == "" {
			for _, key := range snap.keep {
				bar := snap.keys[key]
				delta.Added = append(delta.Added, AddedBar{
					Key: key, Serial: bar.SerialNumber, Refiner: bar.Refiner,
					GrossOz: bar.GrossOz, Vault: bar.Vault,
				})
			}
			delta.TotalEverSeen = len(h.Bars) + len(snap.keys)
		} else {
			delta.Unchanged = len(snap.keys)
			delta.TotalEverSeen = len(h.Bars)
		}
		delta.TotalReEntryBars = h.ReEntryCount()
		return delta
	}

	// Previous snapshot = every identity still marked present.
	prev := make(map[string]bool, len(h.Bars))
	for key, entry := range h.Bars {
		if entry.Status == BarPresent {
			prev[key] = true
		}
	}

	for _, key := range snap.keep {
		bar := snap.keys[key]
		entry, known := h.Bars[key]
		switch {
		case !known:
			delta.Added = append(delta.Added, AddedBar{
				Key: key, Serial: bar.SerialNumber, Refiner: bar.Refiner,
				GrossOz: bar.GrossOz, Vault: bar.Vault,
			})
		case prev[key]:
			if entry.Vault != "" && bar.Vault != "" && entry.Vault != bar.Vault {
				delta.VaultChanges = append(delta.VaultChanges, VaultChange{
					Key: key, Serial: bar.SerialNumber, Refiner: bar.Refiner,
					GrossOz: bar.GrossOz, OldVault: entry.Vault, NewVault: bar.Vault,
				})
			} else {
				delta.Unchanged++
			}
		default:
			delta.Returned = append(delta.Returned, ReturnedBar{
				Key: key, Serial: bar.SerialNumber, Refiner: bar.Refiner,
				GrossOz: bar.GrossOz, Vault: bar.Vault,
				ReEntries:      entry.ReEntries + 1,
				FirstSeen:      entry.FirstSeen,
				LastSeenBefore: entry.LastSeen,
			})
		}
	}

	removedKeys := make([]string, 0)
	for key := range prev {
		if !snap.has(key) {
			removedKeys = append(removedKeys, key)
		}
	}
	sort.Strings(removedKeys)
	for _, key := range removedKeys {
		entry := h.Bars[key]
		delta.Removed = append(delta.Removed, RemovedBar{
			Key: key, Serial: entry.SerialNumber, Refiner: entry.Refiner,
			GrossOz: entry.GrossOz, Vault: entry.Vault,
			FirstSeen: entry.FirstSeen, LastSeen: entry.LastSeen,
		})
	}

	// Currently present bars whose lifetime already records a re-entry,
	// plus the bars returning in this very snapshot (their history entry
	// is not updated yet).
	for _, key := range snap.keep {
		if entry, ok := h.Bars[key]; ok && entry.ReEntries > 0 {
			delta.ReEntered = append(delta.ReEntered, ReEntryBar{
				Key: key, Serial: entry.SerialNumber, Refiner: entry.Refiner,
				ReEntries: entry.ReEntries, FirstSeen: entry.FirstSeen,
			})
		}
	}
	for _, r := range delta.Returned {
		delta.ReEntered = append(delta.ReEntered, ReEntryBar{
			Key: r.Key, Serial: r.Serial, Refiner: r.Refiner,
			ReEntries: r.ReEntries, FirstSeen: r.FirstSeen,
		})
	}

	delta.TotalEverSeen = len(h.Bars) + len(delta.Added)
	delta.TotalReEntryBars = h.ReEntryCount() + len(delta.Returned)
	return delta
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
