// Package bitvector implements the fixed-width bit-vector value algebra
// that the litmus expression evaluator and primitive table build on.
//
// A BitVector is either concrete (its bits are known) or symbolic (it is a
// handle into a solver's term graph). Only concrete bit-vectors can be read
// by the translation-table walk or folded by the partial evaluator; a
// symbolic operand makes a primitive call residualise or, for reads of
// page-table descriptors, fail with ErrBadRead.
package bitvector

import (
	"fmt"
	"math/big"
)

// MinWidth and MaxWidth bound the width of any BitVector.
const (
	MinWidth = 1
	MaxWidth = 128
)

// BitVector is a value of width Width bits, either Concrete (an integer
// payload already masked to Width) or symbolic (a named handle registered
// in a solver's namespace).
type BitVector struct {
	width   uint32
	value   *big.Int // nil when symbolic
	symbol  string   // solver-assigned name, set when value == nil
}

// New constructs a concrete bit-vector of the given width from an unsigned
// integer, masking off any bits above width. It panics if width is outside
// [MinWidth, MaxWidth]; callers that accept widths from litmus source text
// must validate first (see litmus.Error for that path).
func New(val uint64, width uint32) BitVector {
	return NewBig(new(big.Int).SetUint64(val), width)
}

// NewBig is like New but accepts an arbitrary-precision payload, needed for
// widths above 64 bits.
func NewBig(val *big.Int, width uint32) BitVector {
	if width < MinWidth || width > MaxWidth {
		panic(fmt.Sprintf("bitvector: width %d out of range [%d, %d]", width, MinWidth, MaxWidth))
	}
	masked := new(big.Int).And(val, mask(width))
	return BitVector{width: width, value: masked}
}

// Symbolic constructs a symbolic bit-vector of the given width, identified
// by a solver-assigned name. Two symbolic BitVectors are equal only if they
// carry the same name; the algebra never compares symbolic payloads.
func Symbolic(name string, width uint32) BitVector {
	if width < MinWidth || width > MaxWidth {
		panic(fmt.Sprintf("bitvector: width %d out of range [%d, %d]", width, MinWidth, MaxWidth))
	}
	return BitVector{width: width, symbol: name}
}

func mask(width uint32) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return m.Sub(m, big.NewInt(1))
}

// Width reports the bit-vector's width in bits.
func (b BitVector) Width() uint32 { return b.width }

// IsConcrete reports whether the bit-vector's bits are known.
func (b BitVector) IsConcrete() bool { return b.value != nil }

// Symbol returns the solver-assigned name of a symbolic bit-vector, or ""
// for a concrete one.
func (b BitVector) Symbol() string { return b.symbol }

// Big returns the concrete payload as an arbitrary-precision integer. It
// panics if the bit-vector is symbolic; callers must check IsConcrete
// first, exactly as the primitive table does before any walk- or
// address-derived operation (spec §3).
func (b BitVector) Big() *big.Int {
	if b.value == nil {
		panic("bitvector: Big() called on a symbolic value")
	}
	return new(big.Int).Set(b.value)
}

// Uint64 returns the concrete payload truncated to 64 bits. It panics on a
// symbolic bit-vector, and silently keeps only the low 64 bits of a wider
// one; it does not check the width itself.
func (b BitVector) Uint64() uint64 {
	return b.Big().Uint64()
}

func (b BitVector) String() string {
	if b.value == nil {
		return fmt.Sprintf("sym:%s/%d", b.symbol, b.width)
	}
	return fmt.Sprintf("0x%x/%d", b.value, b.width)
}

// Equal reports structural equality: same width, and either the same
// concrete payload or the same symbolic name.
func (b BitVector) Equal(other BitVector) bool {
	if b.width != other.width {
		return false
	}
	if b.IsConcrete() != other.IsConcrete() {
		return false
	}
	if b.IsConcrete() {
		return b.value.Cmp(other.value) == 0
	}
	return b.symbol == other.symbol
}

// Mask returns the width-bit all-ones mask, exposed for callers (the walk
// primitive, mkdesc) that need to build descriptor masks inline.
func Mask(width uint32) *big.Int {
	return mask(width)
}
