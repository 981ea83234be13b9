// Package collab defines the three external collaborators the litmus core
// consumes (spec §6): the initial-memory image, the SMT solver, and the
// disassembly text scanner. The parsers, the symbolic executor, the real
// SMT backend, the HTTP/worker front end, and the cache directories that
// produce or drive these collaborators are all out of scope for this
// repository (spec §1) — only the narrow interfaces below are specified,
// plus small non-production implementations used by tests and by
// cmd/litmuseval.
package collab

import "github.com/openisla/litmuscore/bitvector"

// Memory is the initial-memory collaborator. ReadInitial must answer
// synchronously (spec §5) and return a concrete bit-vector for descriptor
// reads; a symbolic result is reported by returning ok=false, which the
// translation-table walk turns into ErrBadRead.
type Memory interface {
	// ReadInitial reads bytes bytes from addr in the initial memory
	// image. ok is false if the location holds symbolic (not yet
	// concrete) data.
	ReadInitial(addr uint64, bytes uint32) (value bitvector.BitVector, ok bool)
}

// Solver is the SMT-solver collaborator. Every method is pure with
// respect to the term graph it returns, but may register new symbolic
// names in the solver's namespace (spec §6).
type Solver interface {
	AndBits(a, b bitvector.BitVector) bitvector.BitVector
	OrBits(a, b bitvector.BitVector) bitvector.BitVector
	XorBits(a, b bitvector.BitVector) bitvector.BitVector
	ShiftLeft(a, b bitvector.BitVector) bitvector.BitVector
	ShiftRight(a, b bitvector.BitVector) bitvector.BitVector
	ZeroExtend(a bitvector.BitVector, n uint32) bitvector.BitVector
	SignExtend(a bitvector.BitVector, n uint32) bitvector.BitVector
	SetSlice(base bitvector.BitVector, offset uint32, value bitvector.BitVector) bitvector.BitVector
	Subrange(bits bitvector.BitVector, high, low uint32) bitvector.BitVector
}

// Disassembler is the disassembly-text collaborator: it resolves an
// assembly label to the address it names by scanning already-disassembled
// text (spec §6). It never decodes instructions itself — that is the
// symbolic executor's job, out of scope here.
type Disassembler interface {
	// LabelFromObjdump scans text for label and reports its address.
	// ok is false if the label was not found.
	LabelFromObjdump(label, text string) (addr uint64, ok bool)
}
