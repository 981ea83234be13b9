// Package eval implements the litmus-condition partial evaluator (spec
// §4.4): it turns a litmus.Expr[string] — parsed straight out of a
// post-condition, with addresses still symbolic names — into a
// litmus.Partial[uint64] by consulting the address tables, the initial
// memory image, and the solver collaborator. Leaves that depend only on
// initial state fold to a solver Value; leaves that depend on
// thread-visible state (registers, last-write addresses) survive as a
// residual expression over concrete physical addresses, to be finished off
// once the symbolic executor has run (spec §9, "Residual vs. evaluated").
package eval

import (
	"github.com/openisla/litmuscore/bitvector"
	"github.com/openisla/litmuscore/collab"
	"github.com/openisla/litmuscore/litmus"
	"github.com/openisla/litmuscore/primitive"
)

// Addresses maps a litmus-shared-location name to the virtual address it
// names (spec §3, "Symbol tables").
type Addresses map[string]uint64

// PhysAddresses maps a litmus-shared-location name to the physical address
// an initial translation-table walk resolved it to. Populated by the
// caller after the first walk pass (spec §3); may be nil or incomplete —
// see BindLocation for what happens to a name absent from it.
type PhysAddresses map[string]uint64

// Env bundles everything PartialEval needs at every recursive step: the
// two read-only address tables, the disassembly text, and the memory and
// solver collaborators (spec §4.4, §9 "Ownership of the address tables" —
// passed by shared reference, never cloned per node).
type Env struct {
	Addrs     Addresses
	PhysAddrs PhysAddresses
	Objdump   string
	Mem       collab.Memory
	Solver    collab.Solver
	Disasm    collab.Disassembler
}

// PartialEval partially evaluates e against env, returning either an
// Evaluated solver value or an Unevaluated residual expression over
// concrete physical addresses (spec §4.4).
func PartialEval(e litmus.Expr[string], env *Env) (litmus.Partial[uint64], error) {
	switch e.Kind {
	case litmus.KindTrue:
		return litmus.Evaluated[uint64](bitvector.FromBool(true)), nil
	case litmus.KindFalse:
		return litmus.Evaluated[uint64](bitvector.FromBool(false)), nil
	case litmus.KindBits64:
		if e.Width > 64 {
			return litmus.Partial[uint64]{}, litmus.UnimplementedErrorf("Bits64 literal width %d is wider than 64 bits", e.Width)
		}
		return litmus.Evaluated[uint64](bitvector.FromBits(bitvector.New(e.BitsVal, e.Width))), nil
	case litmus.KindNat:
		return litmus.Evaluated[uint64](bitvector.FromInt(int64(e.Nat))), nil
	case litmus.KindBin:
		return evalBin(e.Text)
	case litmus.KindHex:
		return evalHex(e.Text)
	case litmus.KindLoc:
		return evalLoc(e.Addr, env)
	case litmus.KindLabel:
		return evalLabel(e.Label, env)
	case litmus.KindApp:
		return evalApp(e, env)
	case litmus.KindEqLoc:
		return evalEqLoc(e, env)
	case litmus.KindAnd:
		return residualiseList(e.List, env, litmus.AndExpr[uint64])
	case litmus.KindOr:
		return residualiseList(e.List, env, litmus.OrExpr[uint64])
	case litmus.KindNot:
		return residualiseNot(e, env)
	case litmus.KindImplies:
		return residualiseImplies(e, env)
	default:
		return litmus.Partial[uint64]{}, litmus.TypeErrorf("", "unrecognised expression kind %d", e.Kind)
	}
}

// Eval fully evaluates e, wrapping PartialEval with an empty physical
// address map (spec §4.4, "Fully-concrete evaluation"). It fails
// Unimplemented if the expression does not fully reduce — reserved for
// expressions mentioning EqLoc/And/Or/Not/Implies or any non-concrete
// sub-expression, none of which this function ever folds (they always
// residualise, spec §8 "Residualisation").
func Eval(e litmus.Expr[string], env *Env) (bitvector.Value, error) {
	concreteEnv := *env
	concreteEnv.PhysAddrs = nil
	p, err := PartialEval(e, &concreteEnv)
	if err != nil {
		return bitvector.Value{}, err
	}
	if !p.IsEvaluated() {
		return bitvector.Value{}, litmus.UnimplementedErrorf("expression did not fully evaluate")
	}
	return p.Value(), nil
}

func evalLoc(name string, env *Env) (litmus.Partial[uint64], error) {
	addr, ok := env.Addrs[name]
	if !ok {
		return litmus.Partial[uint64]{}, litmus.TypeErrorf(name, "unknown address")
	}
	return litmus.Evaluated[uint64](bitvector.FromBits(bitvector.New(addr, 64))), nil
}

func evalLabel(name string, env *Env) (litmus.Partial[uint64], error) {
	addr, ok := env.Disasm.LabelFromObjdump(name, env.Objdump)
	if !ok {
		return litmus.Partial[uint64]{}, litmus.TypeErrorf(name, "unknown label")
	}
	return litmus.Evaluated[uint64](bitvector.FromBits(bitvector.New(addr, 64))), nil
}

// evalApp partially evaluates every argument; if all of them folded to a
// value, the named primitive is invoked immediately, otherwise the residual
// rebuilds App with the same function name over into_exp'd children (spec
// §4.4, "App(f, pos, kw)").
func evalApp(e litmus.Expr[string], env *Env) (litmus.Partial[uint64], error) {
	posResults := make([]litmus.Partial[uint64], len(e.Positional))
	allEvaluated := true
	for i, sub := range e.Positional {
		p, err := PartialEval(sub, env)
		if err != nil {
			return litmus.Partial[uint64]{}, err
		}
		posResults[i] = p
		allEvaluated = allEvaluated && p.IsEvaluated()
	}

	kwNames := make([]string, 0, len(e.Keyword))
	kwResults := make(map[string]litmus.Partial[uint64], len(e.Keyword))
	for name, sub := range e.Keyword {
		p, err := PartialEval(sub, env)
		if err != nil {
			return litmus.Partial[uint64]{}, err
		}
		kwNames = append(kwNames, name)
		kwResults[name] = p
		allEvaluated = allEvaluated && p.IsEvaluated()
	}

	if allEvaluated {
		fn, ok := primitive.Table()[e.Fn]
		if !ok {
			return litmus.Partial[uint64]{}, litmus.TypeErrorf(e.Fn, "unknown primitive")
		}
		pos := make([]bitvector.Value, len(posResults))
		for i, p := range posResults {
			pos[i] = p.Value()
		}
		kwVals := make(map[string]bitvector.Value, len(kwResults))
		for name, p := range kwResults {
			kwVals[name] = p.Value()
		}
		kw := litmus.NewKeywordArgs(kwVals)
		v, err := fn(pos, &kw, env.Mem, env.Solver)
		if err != nil {
			return litmus.Partial[uint64]{}, err
		}
		return litmus.Evaluated[uint64](v), nil
	}

	newPos := make([]litmus.Expr[uint64], len(posResults))
	for i, p := range posResults {
		ex, err := p.IntoExpr()
		if err != nil {
			return litmus.Partial[uint64]{}, err
		}
		newPos[i] = ex
	}
	var newKw map[string]litmus.Expr[uint64]
	if len(kwNames) > 0 {
		newKw = make(map[string]litmus.Expr[uint64], len(kwNames))
		for _, name := range kwNames {
			ex, err := kwResults[name].IntoExpr()
			if err != nil {
				return litmus.Partial[uint64]{}, err
			}
			newKw[name] = ex
		}
	}
	return litmus.Unevaluated(litmus.AppExpr(e.Fn, newPos, newKw)), nil
}

// evalEqLoc always residualises (spec §4.4): it rewrites the location's
// address via the physical-address table and stores the into_exp form of
// the sub-expression, never invoking a primitive itself.
func evalEqLoc(e litmus.Expr[string], env *Env) (litmus.Partial[uint64], error) {
	bound := BindLocation(*e.Loc, env.PhysAddrs)
	sub, err := PartialEval(*e.Sub, env)
	if err != nil {
		return litmus.Partial[uint64]{}, err
	}
	subExpr, err := sub.IntoExpr()
	if err != nil {
		return litmus.Partial[uint64]{}, err
	}
	return litmus.Unevaluated(litmus.EqLocExpr(bound, subExpr)), nil
}

func residualiseNot(e litmus.Expr[string], env *Env) (litmus.Partial[uint64], error) {
	sub, err := PartialEval(*e.Sub, env)
	if err != nil {
		return litmus.Partial[uint64]{}, err
	}
	subExpr, err := sub.IntoExpr()
	if err != nil {
		return litmus.Partial[uint64]{}, err
	}
	return litmus.Unevaluated(litmus.NotExpr(subExpr)), nil
}

func residualiseImplies(e litmus.Expr[string], env *Env) (litmus.Partial[uint64], error) {
	lhs, err := PartialEval(*e.Lhs, env)
	if err != nil {
		return litmus.Partial[uint64]{}, err
	}
	lhsExpr, err := lhs.IntoExpr()
	if err != nil {
		return litmus.Partial[uint64]{}, err
	}
	rhs, err := PartialEval(*e.Rhs, env)
	if err != nil {
		return litmus.Partial[uint64]{}, err
	}
	rhsExpr, err := rhs.IntoExpr()
	if err != nil {
		return litmus.Partial[uint64]{}, err
	}
	return litmus.Unevaluated(litmus.ImpliesExpr(lhsExpr, rhsExpr)), nil
}

// residualiseList implements the shared And/Or residualisation rule: both
// connectives always residualise, recursing over every child and
// reassembling with build (spec §4.4, "And, Or, Implies, Not always
// residualise").
func residualiseList(list []litmus.Expr[string], env *Env, build func([]litmus.Expr[uint64]) litmus.Expr[uint64]) (litmus.Partial[uint64], error) {
	out := make([]litmus.Expr[uint64], len(list))
	for i, sub := range list {
		p, err := PartialEval(sub, env)
		if err != nil {
			return litmus.Partial[uint64]{}, err
		}
		ex, err := p.IntoExpr()
		if err != nil {
			return litmus.Partial[uint64]{}, err
		}
		out[i] = ex
	}
	return litmus.Unevaluated(build(out)), nil
}
