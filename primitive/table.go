// Package primitive implements the named-primitive table that cat-file
// authors call from litmus expressions (spec §4.3): pte{0..3}, desc{0..3},
// pa, page, extz, exts, ttbr, asid, vmid, mkdesc1/2/3, bv{and,or,xor,lshr,
// shl}, index, offset. The set is fixed and small, so a static dispatch
// table keyed by name is used rather than reflection (spec §9, "Primitive
// dispatch").
package primitive

import (
	"github.com/openisla/litmuscore/bitvector"
	"github.com/openisla/litmuscore/collab"
	"github.com/openisla/litmuscore/litmus"
	"github.com/openisla/litmuscore/pagetable"
	"github.com/openisla/litmuscore/vaddr"
)

// Func is the shape every primitive has: positional arguments, keyword
// arguments (destructively consumed), the memory and solver collaborators,
// and a Value or error result (spec §4.3).
type Func func(pos []bitvector.Value, kw *litmus.KeywordArgs, mem collab.Memory, solver collab.Solver) (bitvector.Value, error)

// Table returns the stable, named-primitive dispatch table (spec §6,
// "Exposed — primitives"). It is a package-level read-only map built once
// at init, not reconstructed per call: the spec permits either ("the
// primitive-function table is constructed fresh per partial-evaluation
// call (or held immutably and shared)" — spec §5), and a map that is never
// written after init needs no fresh copy to stay safe under the
// surrounding system's per-candidate parallelism.
func Table() map[string]Func {
	return table
}

var table = map[string]Func{
	"pte0": walkField(func(w pagetable.Walk) uint64 { return w.L0PTE }),
	"pte1": walkField(func(w pagetable.Walk) uint64 { return w.L1PTE }),
	"pte2": walkField(func(w pagetable.Walk) uint64 { return w.L2PTE }),
	"pte3": walkField(func(w pagetable.Walk) uint64 { return w.L3PTE }),

	"desc0": walkField(func(w pagetable.Walk) uint64 { return w.L0Desc }),
	"desc1": walkField(func(w pagetable.Walk) uint64 { return w.L1Desc }),
	"desc2": walkField(func(w pagetable.Walk) uint64 { return w.L2Desc }),
	"desc3": walkField(func(w pagetable.Walk) uint64 { return w.L3Desc }),

	"pa": walkField(func(w pagetable.Walk) uint64 { return w.PA }),

	"page":  fnPage,
	"extz":  fnExtz,
	"exts":  fnExts,
	"ttbr":  fnTTBR,
	"asid":  fnAsidVmid,
	"vmid":  fnAsidVmid,

	"mkdesc1": fnMkdescTableOrOA,
	"mkdesc2": fnMkdescTableOrOA,
	"mkdesc3": fnMkdesc3,

	"bvand":  bvBinOp(collab.Solver.AndBits),
	"bvor":   bvBinOp(collab.Solver.OrBits),
	"bvxor":  bvBinOp(collab.Solver.XorBits),
	"bvlshr": bvBinOp(collab.Solver.ShiftRight),
	"bvshl":  bvBinOp(collab.Solver.ShiftLeft),

	"index":  fnIndex,
	"offset": fnOffset,
}

// requireTwoPositional checks the positional argument count for the
// two-argument primitives (translate-backed and bv* ops), which all fail
// with the same "N must have two arguments (M provided)" shape in the
// source.
func requireTwoPositional(caller string, pos []bitvector.Value) (bitvector.Value, bitvector.Value, error) {
	if len(pos) != 2 {
		return bitvector.Value{}, bitvector.Value{}, litmus.TypeErrorf(caller, "must have two arguments (%d provided)", len(pos))
	}
	return pos[0], pos[1], nil
}

func requireConcreteBits(caller, label string, v bitvector.Value) (bitvector.BitVector, error) {
	if v.Kind != bitvector.KindBits || !v.Bits.IsConcrete() {
		return bitvector.BitVector{}, litmus.TypeErrorf(caller, "%s is not a concrete bitvector", label)
	}
	return v.Bits, nil
}

// walkField builds a pte{k}/desc{k}/pa primitive from the field it
// extracts out of a full TranslationTableWalk (spec §4.3: all of these
// share the (va, ttbr) -> u64 shape and differ only in which walk field
// they return).
func walkField(field func(pagetable.Walk) uint64) Func {
	return func(pos []bitvector.Value, _ *litmus.KeywordArgs, mem collab.Memory, _ collab.Solver) (bitvector.Value, error) {
		vaVal, rootVal, err := requireTwoPositional("translate", pos)
		if err != nil {
			return bitvector.Value{}, err
		}
		va, err := requireConcreteBits("translate", "virtual address", vaVal)
		if err != nil {
			return bitvector.Value{}, err
		}
		root, err := requireConcreteBits("translate", "table address", rootVal)
		if err != nil {
			return bitvector.Value{}, err
		}
		w, err := pagetable.TranslationTableWalk(va, root, mem)
		if err != nil {
			return bitvector.Value{}, err
		}
		return bitvector.FromBits(bitvector.New(field(w), 64)), nil
	}
}

func fnPage(pos []bitvector.Value, _ *litmus.KeywordArgs, _ collab.Memory, solver collab.Solver) (bitvector.Value, error) {
	if len(pos) != 1 {
		return bitvector.Value{}, litmus.TypeErrorf("page", "must have 1 argument")
	}
	bits, err := requireConcreteBits("page", "argument", pos[0])
	if err != nil {
		return bitvector.Value{}, err
	}
	return bitvector.FromBits(solver.Subrange(bits, 47, 12)), nil
}

func fnExtz(pos []bitvector.Value, _ *litmus.KeywordArgs, _ collab.Memory, solver collab.Solver) (bitvector.Value, error) {
	bits, n, err := requireExtArgs("extz", pos)
	if err != nil {
		return bitvector.Value{}, err
	}
	return bitvector.FromBits(solver.ZeroExtend(bits, n)), nil
}

func fnExts(pos []bitvector.Value, _ *litmus.KeywordArgs, _ collab.Memory, solver collab.Solver) (bitvector.Value, error) {
	bits, n, err := requireExtArgs("exts", pos)
	if err != nil {
		return bitvector.Value{}, err
	}
	return bitvector.FromBits(solver.SignExtend(bits, n)), nil
}

func requireExtArgs(caller string, pos []bitvector.Value) (bitvector.BitVector, uint32, error) {
	if len(pos) != 2 {
		return bitvector.BitVector{}, 0, litmus.TypeErrorf(caller, "must have 2 arguments")
	}
	bits, err := requireConcreteBits(caller, "first argument", pos[0])
	if err != nil {
		return bitvector.BitVector{}, 0, err
	}
	if pos[1].Kind != bitvector.KindInt128 {
		return bitvector.BitVector{}, 0, litmus.TypeErrorf(caller, "length argument must be an integer")
	}
	return bits, uint32(pos[1].Int.Uint64()), nil
}

func fnTTBR(_ []bitvector.Value, kw *litmus.KeywordArgs, _ collab.Memory, solver collab.Solver) (bitvector.Value, error) {
	baseVal, err := kw.Remove("ttbr", "base")
	if err != nil {
		return bitvector.Value{}, err
	}
	base, err := requireConcreteBits("ttbr", "base", baseVal)
	if err != nil {
		return bitvector.Value{}, err
	}

	zero16 := bitvector.FromBits(bitvector.New(0, 16))
	haveASID, asidVal := kw.RemoveOr("asid", zero16)
	haveVMID, vmidVal := kw.RemoveOr("vmid", zero16)
	if haveASID == haveVMID {
		return bitvector.Value{}, litmus.TypeErrorf("ttbr", "must have either a vmid or an asid argument")
	}
	slice := asidVal
	if haveVMID {
		slice = vmidVal
	}
	sliceBits, err := requireConcreteBits("ttbr", "asid/vmid", slice)
	if err != nil {
		return bitvector.Value{}, err
	}

	_, cnpVal := kw.RemoveOr("CnP", bitvector.FromBits(bitvector.New(0, 1)))
	cnpBits, err := requireConcreteBits("ttbr", "CnP", cnpVal)
	if err != nil {
		return bitvector.Value{}, err
	}

	withSlice := solver.SetSlice(base, 48, sliceBits)
	withCnP := solver.SetSlice(withSlice, 0, cnpBits)
	return bitvector.FromBits(withCnP), nil
}

// fnAsidVmid implements both asid(v) and vmid(v): the 16-bit positional
// argument is placed at bit 48 of a 64-bit zero field (spec §4.3).
func fnAsidVmid(pos []bitvector.Value, _ *litmus.KeywordArgs, _ collab.Memory, solver collab.Solver) (bitvector.Value, error) {
	if len(pos) != 1 {
		return bitvector.Value{}, litmus.TypeErrorf("asid", "takes 1 argument")
	}
	v, err := requireConcreteBits("asid", "argument", pos[0])
	if err != nil {
		return bitvector.Value{}, err
	}
	zero64 := bitvector.New(0, 64)
	placed := solver.SetSlice(zero64, 48, v)
	return bitvector.FromBits(placed), nil
}

func fnMkdescTableOrOA(_ []bitvector.Value, kw *litmus.KeywordArgs, _ collab.Memory, solver collab.Solver) (bitvector.Value, error) {
	zero64 := bitvector.FromBits(bitvector.New(0, 64))
	zero16 := bitvector.FromBits(bitvector.New(0, 16))
	haveTable, tableVal := kw.RemoveOr("table", zero64)
	haveOA, oaVal := kw.RemoveOr("oa", zero16)
	if haveTable == haveOA {
		return bitvector.Value{}, litmus.TypeErrorf("mkdesc", "must have either a table or an oa argument")
	}
	if haveTable {
		table, err := requireConcreteBits("mkdesc", "table", tableVal)
		if err != nil {
			return bitvector.Value{}, err
		}
		return bitvector.FromBits(solver.OrBits(table, bitvector.New(0b11, table.Width()))), nil
	}
	oa, err := requireConcreteBits("mkdesc", "oa", oaVal)
	if err != nil {
		return bitvector.Value{}, err
	}
	withTag := solver.OrBits(oa, bitvector.New(0b01, oa.Width()))
	return bitvector.FromBits(solver.OrBits(withTag, resizeAttrs(oa.Width()))), nil
}

func fnMkdesc3(_ []bitvector.Value, kw *litmus.KeywordArgs, _ collab.Memory, solver collab.Solver) (bitvector.Value, error) {
	oaVal, err := kw.Remove("mkdesc3", "oa")
	if err != nil {
		return bitvector.Value{}, err
	}
	oa, err := requireConcreteBits("mkdesc3", "oa", oaVal)
	if err != nil {
		return bitvector.Value{}, err
	}
	withTag := solver.OrBits(oa, bitvector.New(0b11, oa.Width()))
	return bitvector.FromBits(solver.OrBits(withTag, resizeAttrs(oa.Width()))), nil
}

// resizeAttrs returns the default stage-1 attribute mask truncated or
// widened to width, so it can be ORed with an oa operand of any width the
// caller chose.
func resizeAttrs(width uint32) bitvector.BitVector {
	attrs := pagetable.DefaultS1Attrs()
	return bitvector.NewBig(attrs.Big(), width)
}

func bvBinOp(op func(collab.Solver, bitvector.BitVector, bitvector.BitVector) bitvector.BitVector) Func {
	return func(pos []bitvector.Value, _ *litmus.KeywordArgs, _ collab.Memory, solver collab.Solver) (bitvector.Value, error) {
		lhsVal, rhsVal, err := requireTwoPositional("bv-op", pos)
		if err != nil {
			return bitvector.Value{}, err
		}
		lhs, err := requireConcreteBits("bv-op", "left operand", lhsVal)
		if err != nil {
			return bitvector.Value{}, err
		}
		rhs, err := requireConcreteBits("bv-op", "right operand", rhsVal)
		if err != nil {
			return bitvector.Value{}, err
		}
		return bitvector.FromBits(op(solver, lhs, rhs)), nil
	}
}

func fnIndex(_ []bitvector.Value, kw *litmus.KeywordArgs, _ collab.Memory, _ collab.Solver) (bitvector.Value, error) {
	level, addr, err := levelAndAddress("index", kw)
	if err != nil {
		return bitvector.Value{}, err
	}
	idx := vaddr.FromUint64(addr).LevelIndex(level)
	return bitvector.FromInt(int64(idx)), nil
}

func fnOffset(_ []bitvector.Value, kw *litmus.KeywordArgs, _ collab.Memory, _ collab.Solver) (bitvector.Value, error) {
	level, addr, err := levelAndAddress("offset", kw)
	if err != nil {
		return bitvector.Value{}, err
	}
	idx := vaddr.FromUint64(addr).LevelIndex(level)
	return bitvector.FromBits(bitvector.New(idx*8, 64)), nil
}

// levelAndAddress implements the shared "level keyword, exactly one of
// va/ipa" argument contract used by both index and offset (spec §4.3).
func levelAndAddress(caller string, kw *litmus.KeywordArgs) (uint, uint64, error) {
	levelVal, err := kw.Remove(caller, "level")
	if err != nil {
		return 0, 0, err
	}
	if levelVal.Kind != bitvector.KindInt128 {
		return 0, 0, litmus.TypeErrorf(caller, "level must be an integer")
	}
	level := levelVal.Int.Int64()
	if level < 0 || level > 3 {
		return 0, 0, litmus.TypeErrorf(caller, "level must be between 0 and 3")
	}

	zero64 := bitvector.FromBits(bitvector.New(0, 64))
	haveVA, vaVal := kw.RemoveOr("va", zero64)
	haveIPA, ipaVal := kw.RemoveOr("ipa", zero64)
	if haveVA == haveIPA {
		return 0, 0, litmus.TypeErrorf(caller, "must have either a va or an ipa argument")
	}
	addrVal := vaVal
	if haveIPA {
		addrVal = ipaVal
	}
	addr, err := requireConcreteBits(caller, "va/ipa", addrVal)
	if err != nil {
		return 0, 0, err
	}
	return uint(level), addr.Uint64(), nil
}
