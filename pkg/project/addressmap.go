package project

import (
	"fmt"
	"sort"
)

// LenFloating marks an address map entry whose extent is unspecified; it
// runs until the next entry or the end of the file.
const LenFloating = -1

// AddressMapEntry maps a file offset to a target address.
type AddressMapEntry struct {
	Offset int64
	Addr   int64

	// Length in bytes, or LenFloating.
	Length int64

	// PreLabel is an optional label placed just before the mapped region.
	PreLabel string

	// IsRelative indicates the address is relative to the owning region
	// rather than absolute.
	IsRelative bool
}

// AddressMap is an offset-ordered, non-overlapping set of map entries.
type AddressMap struct {
	entries []AddressMapEntry
}

// Add inserts an entry, keeping offset order. It fails if the entry shares
// an offset with an existing entry or starts inside a fixed-length region.
func (m *AddressMap) Add(e AddressMapEntry) error {
	idx := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Offset >= e.Offset
	})
	if idx < len(m.entries) && m.entries[idx].Offset == e.Offset {
		return fmt.Errorf("address map entry at offset %d already exists", e.Offset)
	}
	if idx > 0 {
		prev := m.entries[idx-1]
		if prev.Length != LenFloating && prev.Offset+prev.Length > e.Offset {
			return fmt.Errorf("address map entry at offset %d overlaps region at %d (+%d)",
				e.Offset, prev.Offset, prev.Length)
		}
	}

	m.entries = append(m.entries, AddressMapEntry{})
	copy(m.entries[idx+1:], m.entries[idx:])
	m.entries[idx] = e
	return nil
}

// Entries returns the entries in offset order. The slice is shared; callers
// must not modify it.
func (m *AddressMap) Entries() []AddressMapEntry {
	return m.entries
}

// Len returns the number of entries.
func (m *AddressMap) Len() int {
	return len(m.entries)
}
