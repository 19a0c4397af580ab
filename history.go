package barwatch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Bar lifecycle status inside the history database.
const (
	BarPresent = "present"
	BarRemoved = "removed"
)

// HistoryEntry is the lifetime record of a single bar identity: when it
// was first and last seen, every snapshot it appeared in, and its latest
// known attributes.
type HistoryEntry struct {
	SerialNumber string   `json:"serial_number"`
	Refiner      string   `json:"refiner,omitempty"`
	FirstSeen    string   `json:"first_seen"`
	LastSeen     string   `json:"last_seen"`
	Appearances  []string `json:"appearances"`
	GrossOz      Ounces   `json:"gross_oz"`
	FineOz       Ounces   `json:"fine_oz"`
	Vault        string   `json:"vault,omitempty"`
	ReEntries    int      `json:"re_entries"`
	Status       string   `json:"status"`
}

// History is the per-fund bar-history database: every bar identity ever
// seen, keyed by BarRecord.Key, plus the ordered list of snapshot date
// tags already merged.
type History struct {
	Fund        string                   `json:"fund"`
	LastUpdated string                   `json:"last_updated,omitempty"`
	Snapshots   []string                 `json:"snapshots"`
	Bars        map[string]*HistoryEntry `json:"bars"`
}

// HasSnapshot reports whether a snapshot with this date tag was already
// merged.
func (h *History) HasSnapshot(dateTag string) bool {
	for _, tag := range h.Snapshots {
		if tag == dateTag {
			return true
		}
	}
	return false
}

// ReEntryCount counts bar identities that have left and re-entered the
// vault at least once.
func (h *History) ReEntryCount() int {
	n := 0
	for _, entry := range h.Bars {
		if entry.ReEntries > 0 {
			n++
		}
	}
	return n
}

// HistoryDB is the on-disk repository of per-fund bar histories, one
// JSON file per fund under a root directory.
type HistoryDB struct {
	root string
}

// NewHistoryDB returns a repository rooted at the given directory. The
// directory is created on first save, not here.
func NewHistoryDB(root string) HistoryDB {
	return HistoryDB{root: root}
}

func (db HistoryDB) path(fund string) string {
	return filepath.Join(db.root, fmt.Sprintf("bar_history_%s.json", fund))
}

// Load reads the history database for a fund. A missing file yields a
// fresh empty history; an unreadable or corrupt file is an error, never
// a silent reset.
func (db HistoryDB) Load(fund string) (*History, error) {
	raw, err := os.ReadFile(db.path(fund))
	if os.IsNotExist(err) {
		return &History{
			Fund:      fund,
			Snapshots: []string{},
			Bars:      make(map[string]*HistoryEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read bar history for %q: %w", fund, err)
	}

	var h History
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("could not decode bar history %q: %w", db.path(fund), err)
	}
	if h.Bars == nil {
		h.Bars = make(map[string]*HistoryEntry)
	}
	return &h, nil
}

// Save persists a fund's history database, refreshing its last-updated
// stamp.
func (db HistoryDB) Save(h *History) error {
	h.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	path := db.path(h.Fund)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create history directory: %w", err)
	}
	raw, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode bar history for %q: %w", h.Fund, err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("could not write bar history %q: %w", path, err)
	}
	return nil
}

// Reset deletes a fund's history database. Deleting a history that does
// not exist is not an error.
func (db HistoryDB) Reset(fund string) error {
	err := os.Remove(db.path(fund))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not reset bar history for %q: %w", fund, err)
	}
	return nil
}
