package main

import (
	"github.com/openisla/litmuscore/collab"
	"github.com/openisla/litmuscore/eval"
	"github.com/openisla/litmuscore/litmus"
)

// sampleObjdump is the tiny embedded disassembly text the demo's
// Disassembler scans; "loop" is the one label the demo expressions can
// resolve via the Label node.
const sampleObjdump = "0000000000400000 <_start>:\n0000000000400010 <loop>:\n"

// demoExpressions is the small builtin set of named demo expressions
// cmd/litmuseval's --expr flag selects from, since no cat/litmus-file
// parser is in scope for this repository (spec §1). Each matches a
// concrete scenario from spec §8.
var demoExpressions = map[string]litmus.Expr[string]{
	// walk: pa(0, 0x1000) over the scenario-3 page table below.
	"walk": litmus.AppExpr[string]("pa", []litmus.Expr[string]{
		litmus.Bits64Expr[string](0, 64),
		litmus.Bits64Expr[string](0x1000, 64),
	}, nil),

	// mkdesc3: mkdesc3(oa=0x4000), spec §8 scenario 4.
	"mkdesc3": litmus.AppExpr[string]("mkdesc3", nil, map[string]litmus.Expr[string]{
		"oa": litmus.Bits64Expr[string](0x4000, 64),
	}),

	// ttbr: ttbr(base=0, asid=0x42, CnP=1), spec §8 scenario 5.
	"ttbr": litmus.AppExpr[string]("ttbr", nil, map[string]litmus.Expr[string]{
		"base": litmus.Bits64Expr[string](0, 64),
		"asid": litmus.Bits64Expr[string](0x42, 16),
		"CnP":  litmus.Bits64Expr[string](1, 1),
	}),

	// bvand-bvor: bvand(bvor(0x0F, 0xF0), 0xAA), spec §8 scenario 6.
	"bvand-bvor": litmus.AppExpr[string]("bvand", []litmus.Expr[string]{
		litmus.AppExpr[string]("bvor", []litmus.Expr[string]{
			litmus.Bits64Expr[string](0x0F, 8),
			litmus.Bits64Expr[string](0xF0, 8),
		}, nil),
		litmus.Bits64Expr[string](0xAA, 8),
	}, nil),

	// postcondition: Implies(True, EqLoc(Register{X0,0}, bvand(0xF0,
	// 0xAA))) — residualises rather than folding to a value, spec §8
	// scenario 6's second half.
	"postcondition": litmus.ImpliesExpr[string](
		litmus.TrueExpr[string](),
		litmus.EqLocExpr(
			litmus.Register[string]("X0", 0),
			litmus.AppExpr[string]("bvand", []litmus.Expr[string]{
				litmus.Bits64Expr[string](0xF0, 8),
				litmus.Bits64Expr[string](0xAA, 8),
			}, nil),
		),
	),

	// label: Label("loop"), resolved via the TextDisassembler collaborator.
	"label": litmus.LabelExpr[string]("loop"),
}

// sampleMemory builds the concrete four-level page table from spec §8
// scenario 3: table root 0x1000 walks through 0x2000, 0x3000, 0x4000 to a
// final physical address of 0x5000_0000_0000_0000.
func sampleMemory() *collab.FlatMemory {
	mem := collab.NewFlatMemory()
	mem.WriteU64(0x1000, 0x2003)
	mem.WriteU64(0x2000, 0x3003)
	mem.WriteU64(0x3000, 0x4003)
	mem.WriteU64(0x4000, 0x5000_0000_0000_0040)
	return mem
}

func sampleEnv(objdump string) *eval.Env {
	if objdump == "" {
		objdump = sampleObjdump
	}
	return &eval.Env{
		Addrs:   eval.Addresses{},
		Mem:     sampleMemory(),
		Solver:  collab.ConcreteSolver{},
		Disasm:  collab.TextDisassembler{},
		Objdump: objdump,
	}
}
