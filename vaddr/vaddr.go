// Package vaddr decomposes a 48-bit virtual address into its four-level
// translation-table indices and page offset, assuming 4 KiB pages
// (spec §4.1). The page size is a hard-coded constant rather than a
// parameter: a principled implementation would take the granule as
// configuration, but that generalisation is out of scope (spec §9).
package vaddr

// VirtualAddress is a strongly typed 48-bit virtual address, grounded on
// the teacher's typed-address convention (address_types.go's VirtualAddr)
// that keeps raw uint64 offsets from different address spaces from being
// mixed by accident.
type VirtualAddress uint64

const (
	// pageBits is the page offset width for a 4 KiB granule.
	pageBits = 12
	// indexBits is the width of each of the four table indices.
	indexBits = 9
	// NumLevels is the number of translation-table levels this walk
	// supports (levels 0..3).
	NumLevels = 4
)

// FromUint64 constructs a VirtualAddress from a raw 64-bit value. Bits
// above bit 47 are not masked off here; callers that need a canonical
// 48-bit address should mask explicitly, matching the source, which never
// validates the top bits either.
func FromUint64(v uint64) VirtualAddress { return VirtualAddress(v) }

// Uint64 returns the address as a raw 64-bit value.
func (va VirtualAddress) Uint64() uint64 { return uint64(va) }

// LevelIndex returns the translation-table index for the given level
// (0..3), each in [0, 511]. Level 3 is nearest the page offset: bits
// 12..20 for level 3, 21..29 for level 2, 30..38 for level 1, 39..47 for
// level 0.
func (va VirtualAddress) LevelIndex(level uint) uint64 {
	shift := pageBits + (NumLevels-1-level)*indexBits
	return (uint64(va) >> shift) & ((1 << indexBits) - 1)
}

// PageOffset returns the low 12 bits of the address.
func (va VirtualAddress) PageOffset() uint64 {
	return uint64(va) & ((1 << pageBits) - 1)
}
