package collab

import (
	"errors"
	"math/big"
	"regexp"

	"github.com/openisla/litmuscore/bitvector"
)

// FlatMemory is a map-backed Memory for tests and the demonstration CLI.
// It never answers with symbolic data, so ReadInitial's ok return is
// always true once the requested bytes are present; a short read (fewer
// bytes populated than requested) reports ok=false the same way a
// symbolic descriptor would, since neither is a value the walk primitive
// can use.
type FlatMemory struct {
	bytes map[uint64]byte
}

// NewFlatMemory creates an empty FlatMemory.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{bytes: make(map[uint64]byte)}
}

// WriteU64 stores a little-endian 64-bit descriptor at addr, the layout
// page-table descriptors use.
func (m *FlatMemory) WriteU64(addr uint64, val uint64) {
	for i := 0; i < 8; i++ {
		m.bytes[addr+uint64(i)] = byte(val >> (8 * i))
	}
}

// ReadInitial implements Memory.
func (m *FlatMemory) ReadInitial(addr uint64, bytes uint32) (bitvector.BitVector, bool) {
	if bytes == 0 || bytes > 16 {
		return bitvector.BitVector{}, false
	}
	val := new(big.Int)
	for i := int(bytes) - 1; i >= 0; i-- {
		b, present := m.bytes[addr+uint64(i)]
		if !present {
			return bitvector.BitVector{}, false
		}
		val.Lsh(val, 8)
		val.Or(val, big.NewInt(int64(b)))
	}
	return bitvector.NewBig(val, bytes*8), true
}

// ConcreteSolver implements Solver with plain big.Int arithmetic. The real
// system delegates these operations to an actual SMT solver so that
// symbolic operands are supported; ConcreteSolver only ever receives
// concrete operands in this repository's tests and demonstration CLI, so
// it panics on a symbolic input rather than silently producing a wrong
// answer.
type ConcreteSolver struct{}

func (ConcreteSolver) requireConcrete(vs ...bitvector.BitVector) {
	for _, v := range vs {
		if !v.IsConcrete() {
			panic("collab.ConcreteSolver: symbolic operand has no real solver backing it")
		}
	}
}

func (s ConcreteSolver) AndBits(a, b bitvector.BitVector) bitvector.BitVector {
	s.requireConcrete(a, b)
	return bitvector.NewBig(new(big.Int).And(a.Big(), b.Big()), a.Width())
}

func (s ConcreteSolver) OrBits(a, b bitvector.BitVector) bitvector.BitVector {
	s.requireConcrete(a, b)
	return bitvector.NewBig(new(big.Int).Or(a.Big(), b.Big()), a.Width())
}

func (s ConcreteSolver) XorBits(a, b bitvector.BitVector) bitvector.BitVector {
	s.requireConcrete(a, b)
	return bitvector.NewBig(new(big.Int).Xor(a.Big(), b.Big()), a.Width())
}

func (s ConcreteSolver) ShiftLeft(a, b bitvector.BitVector) bitvector.BitVector {
	s.requireConcrete(a, b)
	return bitvector.NewBig(new(big.Int).Lsh(a.Big(), uint(b.Uint64())), a.Width())
}

func (s ConcreteSolver) ShiftRight(a, b bitvector.BitVector) bitvector.BitVector {
	s.requireConcrete(a, b)
	return bitvector.NewBig(new(big.Int).Rsh(a.Big(), uint(b.Uint64())), a.Width())
}

func (s ConcreteSolver) ZeroExtend(a bitvector.BitVector, n uint32) bitvector.BitVector {
	s.requireConcrete(a)
	return bitvector.NewBig(a.Big(), n)
}

func (s ConcreteSolver) SignExtend(a bitvector.BitVector, n uint32) bitvector.BitVector {
	s.requireConcrete(a)
	val := a.Big()
	signBit := uint(a.Width() - 1)
	if val.Bit(int(signBit)) == 1 {
		ext := new(big.Int).Lsh(big.NewInt(1), uint(n))
		ones := new(big.Int).Sub(ext, big.NewInt(1))
		highMask := new(big.Int).Xor(ones, bitvector.Mask(a.Width()))
		val.Or(val, highMask)
	}
	return bitvector.NewBig(val, n)
}

func (s ConcreteSolver) SetSlice(base bitvector.BitVector, offset uint32, value bitvector.BitVector) bitvector.BitVector {
	s.requireConcrete(base, value)
	cleared := new(big.Int).AndNot(base.Big(), new(big.Int).Lsh(bitvector.Mask(value.Width()), uint(offset)))
	shifted := new(big.Int).Lsh(value.Big(), uint(offset))
	return bitvector.NewBig(new(big.Int).Or(cleared, shifted), base.Width())
}

func (s ConcreteSolver) Subrange(bits bitvector.BitVector, high, low uint32) bitvector.BitVector {
	s.requireConcrete(bits)
	width := high - low + 1
	shifted := new(big.Int).Rsh(bits.Big(), uint(low))
	return bitvector.NewBig(shifted, width)
}

// TextDisassembler resolves labels by scanning objdump-style text for
// "<label>:" lines immediately preceded by a hexadecimal address, grounded
// on the teacher's branch-target scanning pass (Disassemble's first pass
// over the program in bbcdisasm.go) simplified to the one thing this core
// needs: a name-to-address lookup, not a full instruction decode.
type TextDisassembler struct{}

var labelLine = regexp.MustCompile(`(?m)^\s*([0-9a-fA-F]+)\s*<([^>]+)>:`)

// LabelFromObjdump implements Disassembler.
func (TextDisassembler) LabelFromObjdump(label, text string) (uint64, bool) {
	for _, m := range labelLine.FindAllStringSubmatch(text, -1) {
		if m[2] == label {
			addr, err := parseHex(m[1])
			if err != nil {
				return 0, false
			}
			return addr, true
		}
	}
	return 0, false
}

func parseHex(s string) (uint64, error) {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return 0, errors.New("collab: not a hexadecimal address")
	}
	return v.Uint64(), nil
}
