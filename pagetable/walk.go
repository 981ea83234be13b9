package pagetable

import (
	"github.com/openisla/litmuscore/bitvector"
	"github.com/openisla/litmuscore/collab"
	"github.com/openisla/litmuscore/litmus"
	"github.com/openisla/litmuscore/vaddr"
)

// Walk is the result of a four-level translation-table walk: the address
// and value of each level's descriptor, plus the final physical address.
// It is produced fresh on every call and never cached (spec §4.2).
type Walk struct {
	L0PTE, L0Desc uint64
	L1PTE, L1Desc uint64
	L2PTE, L2Desc uint64
	L3PTE, L3Desc uint64
	PA            uint64
}

// TranslationTableWalk performs a four-level walk of va against tableRoot
// over mem, the concrete initial memory image. Both va and tableRoot must
// be concrete bit-vectors (spec §4.2); a symbolic operand fails with
// litmus.ErrType naming "translate" as the offending primitive (matching
// the source, which reports both argument checks under the "translate"
// caller), and a symbolic or short descriptor read fails with
// litmus.ErrBadRead, whose message names the descriptor address.
func TranslationTableWalk(va, tableRoot bitvector.BitVector, mem collab.Memory) (Walk, error) {
	if !va.IsConcrete() || !tableRoot.IsConcrete() {
		return Walk{}, litmus.TypeErrorf("translate", "virtual address and table root must be concrete bit-vectors")
	}

	v := vaddr.FromUint64(va.Uint64())
	root := tableRoot.Uint64()

	l0pte := root + v.LevelIndex(0)*8
	l0desc, err := readDescriptor(mem, l0pte)
	if err != nil {
		return Walk{}, err
	}

	l1pte := (l0desc &^ 0b11) + v.LevelIndex(1)*8
	l1desc, err := readDescriptor(mem, l1pte)
	if err != nil {
		return Walk{}, err
	}

	l2pte := (l1desc &^ 0b11) + v.LevelIndex(2)*8
	l2desc, err := readDescriptor(mem, l2pte)
	if err != nil {
		return Walk{}, err
	}

	l3pte := (l2desc &^ 0b11) + v.LevelIndex(3)*8
	l3desc, err := readDescriptor(mem, l3pte)
	if err != nil {
		return Walk{}, err
	}

	// Only the low 12 bits are cleared before ORing in the page offset;
	// bits 48 and above of the descriptor are preserved as-is, matching
	// the worked example in spec §8 scenario 3 where descriptor bits
	// above bit 47 survive into the final physical address untouched.
	pa := (l3desc &^ uint64(0xFFF)) + v.PageOffset()

	return Walk{
		L0PTE: l0pte, L0Desc: l0desc,
		L1PTE: l1pte, L1Desc: l1desc,
		L2PTE: l2pte, L2Desc: l2desc,
		L3PTE: l3pte, L3Desc: l3desc,
		PA: pa,
	}, nil
}

func readDescriptor(mem collab.Memory, addr uint64) (uint64, error) {
	bv, ok := mem.ReadInitial(addr, 8)
	if !ok || !bv.IsConcrete() {
		return 0, litmus.BadReadErrorf("descriptor read at 0x%x is not concrete", addr)
	}
	return bv.Uint64(), nil
}
