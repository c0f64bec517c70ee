package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressMapOrdering(t *testing.T) {
	var m AddressMap
	require.NoError(t, m.Add(AddressMapEntry{Offset: 256, Addr: 0x9000, Length: LenFloating}))
	require.NoError(t, m.Add(AddressMapEntry{Offset: 0, Addr: 0x8000, Length: 256}))

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(0), entries[0].Offset)
	assert.Equal(t, int64(256), entries[1].Offset)
}

func TestAddressMapRejectsOverlap(t *testing.T) {
	var m AddressMap
	require.NoError(t, m.Add(AddressMapEntry{Offset: 0, Addr: 0x8000, Length: 256}))

	// Same offset.
	assert.Error(t, m.Add(AddressMapEntry{Offset: 0, Addr: 0xc000, Length: 16}))
	// Starts inside the fixed-length region.
	assert.Error(t, m.Add(AddressMapEntry{Offset: 128, Addr: 0xc000, Length: 16}))
	// Starts exactly at the region end.
	assert.NoError(t, m.Add(AddressMapEntry{Offset: 256, Addr: 0xc000, Length: 16}))
}

func TestAddressMapFloatingDoesNotBlockFollowers(t *testing.T) {
	var m AddressMap
	require.NoError(t, m.Add(AddressMapEntry{Offset: 0, Addr: 0x8000, Length: LenFloating}))
	assert.NoError(t, m.Add(AddressMapEntry{Offset: 1, Addr: 0x9000, Length: LenFloating}))
}
