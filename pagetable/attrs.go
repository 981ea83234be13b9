// Package pagetable implements the stage-1 page-attribute algebra and the
// four-level translation-table walk primitive (spec §4.2–4.3) over a
// concrete initial memory image. Nothing here is cached: every call
// re-reads descriptors, matching the source's "no caching" invariant
// (spec §4.2).
package pagetable

import "github.com/openisla/litmuscore/bitvector"

// S1Attrs is the default stage-1 attribute mask that mkdesc1/mkdesc2 (oa
// form) and mkdesc3 OR into block/page (non-table) descriptors: AF (access
// flag, bit 10), inner-shareable (bits 9:8 = 0b11), and a normal-memory,
// inner/outer write-back cacheable MAIR index (bits 4:2 = 0b001 for the conventional
// "index 1 = normal memory" attr table entry this litmus dialect assumes).
//
// Descriptor bit layout (AArch64 VMSAv8-64, stage 1, 4 KiB granule):
//
//	bit 10       AF      access flag
//	bits 9:8     SH      shareability (0b11 = inner shareable)
//	bits 4:2     AttrIdx MAIR index
const S1Attrs uint64 = (1 << 10) | (0b11 << 8) | (0b001 << 2)

// DefaultS1Attrs returns the fixed default stage-1 attribute bits as a
// 64-bit concrete BitVector, ready to be ORed into a descriptor.
func DefaultS1Attrs() bitvector.BitVector {
	return bitvector.New(S1Attrs, 64)
}
