package eval

import (
	"github.com/openisla/litmuscore/bitvector"
	"github.com/openisla/litmuscore/collab"
	"github.com/openisla/litmuscore/litmus"
)

// Reset is the deferred, shareable binding the symbolic executor calls
// once per register reset to get that register's initial value (spec
// §4.5). It captures the expression, the virtual-address table, and the
// disassembly text by value so it outlives the evaluation that created it
// (spec §9, "Ownership of the address tables": "the reset closure must
// capture them by value"). A Reset is immutable after construction, so
// calling it concurrently with different memories/solvers is safe (spec
// §5).
type Reset struct {
	exp     litmus.Expr[string]
	addrs   Addresses
	objdump string
}

// ResetEval captures exp, addrs, and objdump into a reusable Reset (spec
// §4.5, "reset_eval"). addrs is copied so a caller mutating its own map
// afterwards cannot change what the closure sees.
func ResetEval(exp litmus.Expr[string], addrs Addresses, objdump string) Reset {
	owned := make(Addresses, len(addrs))
	for k, v := range addrs {
		owned[k] = v
	}
	return Reset{exp: exp, addrs: owned, objdump: objdump}
}

// Eval invokes the captured expression against a fresh memory, solver, and
// disassembler, fully evaluating it (spec §4.5: "the symbolic executor
// invokes it with a fresh memory and solver for every register reset").
// Physical addresses are never known at reset time, so this always goes
// through Eval's empty-physical-address path; a Reset over an expression
// that cannot fully reduce fails Unimplemented exactly like a direct Eval
// call would.
func (r Reset) Eval(mem collab.Memory, solver collab.Solver, disasm collab.Disassembler) (bitvector.Value, error) {
	env := &Env{
		Addrs:   r.addrs,
		Objdump: r.objdump,
		Mem:     mem,
		Solver:  solver,
		Disasm:  disasm,
	}
	return Eval(r.exp, env)
}
