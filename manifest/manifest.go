package manifest

import (
	"cmp"
	"slices"
	"time"

	"github.com/hupe1980/gxhash/hashlib"
)

// CurrentVersion is the version of the JSON manifest format.
const CurrentVersion = 1

// Entry is the recorded digest of one named input.
type Entry struct {
	Name      string `json:"name"`
	Algorithm string `json:"algorithm"`
	Seed      int64  `json:"seed"`
	Digest    string `json:"digest"`
	Size      int64  `json:"size,omitempty"`
}

// Manifest is an ordered list of entries.
type Manifest struct {
	Version   int       `json:"version"`
	ID        uint64    `json:"id,omitempty"`
	Codec     string    `json:"codec,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Entries   []Entry   `json:"entries"`
}

// New creates an empty manifest.
func New() *Manifest {
	return &Manifest{Version: CurrentVersion, CreatedAt: time.Now().UTC()}
}

// Add appends an entry.
func (m *Manifest) Add(e Entry) {
	m.Entries = append(m.Entries, e)
}

// AddDigest appends an entry for a finished digest.
func (m *Manifest) AddDigest(name string, h hashlib.Hash) {
	m.Add(Entry{Name: name, Algorithm: h.Name(), Seed: h.Seed(), Digest: h.HexDigest()})
}

// Lookup returns the first entry named name.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Sort orders the entries by name. Entries with equal names keep their
// relative order.
func (m *Manifest) Sort() {
	slices.SortStableFunc(m.Entries, func(a, b Entry) int {
		return cmp.Compare(a.Name, b.Name)
	})
}

// Len returns the number of entries.
func (m *Manifest) Len() int { return len(m.Entries) }
