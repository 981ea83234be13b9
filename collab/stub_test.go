package collab

import (
	"testing"

	"github.com/openisla/litmuscore/bitvector"
)

func TestFlatMemoryRoundTrip(t *testing.T) {
	mem := NewFlatMemory()
	mem.WriteU64(0x1000, 0x2003)
	bv, ok := mem.ReadInitial(0x1000, 8)
	if !ok {
		t.Fatalf("ReadInitial reported not ok")
	}
	if bv.Uint64() != 0x2003 {
		t.Errorf("ReadInitial = 0x%x, want 0x2003", bv.Uint64())
	}
}

func TestFlatMemoryShortReadNotOk(t *testing.T) {
	mem := NewFlatMemory()
	mem.WriteU64(0x1000, 0x2003)
	if _, ok := mem.ReadInitial(0x2000, 8); ok {
		t.Errorf("ReadInitial of unwritten address reported ok")
	}
}

func TestConcreteSolverBitwise(t *testing.T) {
	s := ConcreteSolver{}
	a := bitvector.New(0x0F, 8)
	b := bitvector.New(0xF0, 8)
	if got := s.OrBits(a, b).Uint64(); got != 0xFF {
		t.Errorf("OrBits = 0x%x, want 0xFF", got)
	}
	c := bitvector.New(0xAA, 8)
	if got := s.AndBits(s.OrBits(a, b), c).Uint64(); got != 0xAA {
		t.Errorf("bvand(bvor(0x0F,0xF0),0xAA) = 0x%x, want 0xAA", got)
	}
}

func TestConcreteSolverSignExtend(t *testing.T) {
	s := ConcreteSolver{}
	neg := bitvector.New(0x80, 8) // -128 as int8
	ext := s.SignExtend(neg, 16)
	if ext.Uint64() != 0xFF80 {
		t.Errorf("SignExtend(0x80/8, 16) = 0x%x, want 0xFF80", ext.Uint64())
	}
	pos := bitvector.New(0x7F, 8)
	ext2 := s.SignExtend(pos, 16)
	if ext2.Uint64() != 0x7F {
		t.Errorf("SignExtend(0x7F/8, 16) = 0x%x, want 0x7F", ext2.Uint64())
	}
}

func TestConcreteSolverSetSlice(t *testing.T) {
	s := ConcreteSolver{}
	base := bitvector.New(0, 64)
	asid := bitvector.New(0x42, 16)
	out := s.SetSlice(base, 48, asid)
	if out.Uint64() != 0x0042000000000000 {
		t.Errorf("SetSlice = 0x%x, want 0x0042000000000000", out.Uint64())
	}
}

func TestConcreteSolverSubrangePage(t *testing.T) {
	s := ConcreteSolver{}
	bits := bitvector.New(0x5000_0000_0000_0040, 64)
	page := s.Subrange(bits, 47, 12)
	if page.Width() != 36 {
		t.Errorf("page width = %d, want 36", page.Width())
	}
}

func TestTextDisassemblerFindsLabel(t *testing.T) {
	text := "0000000000400080 <main>:\n  400080:\t...\n0000000000400090 <loop>:\n"
	d := TextDisassembler{}
	addr, ok := d.LabelFromObjdump("loop", text)
	if !ok {
		t.Fatalf("label not found")
	}
	if addr != 0x400090 {
		t.Errorf("addr = 0x%x, want 0x400090", addr)
	}
}

func TestTextDisassemblerMissingLabel(t *testing.T) {
	d := TextDisassembler{}
	if _, ok := d.LabelFromObjdump("absent", "0000000000400080 <main>:\n"); ok {
		t.Errorf("expected missing label to report not found")
	}
}
