package litmus

import "github.com/openisla/litmuscore/bitvector"

// Partial is the result of partially evaluating an Expr[A]: either a fully
// Evaluated solver value, or an Unevaluated residual expression whose free
// leaves depend on thread-visible state that is not yet known (spec §3,
// "Partial"). Implemented as the tagged sum the design notes ask for
// (§9: "represent Partial as a tagged sum, not two optionals"), not two
// *Value/*Expr pointers.
type Partial[A any] struct {
	evaluated bool
	value     bitvector.Value
	expr      Expr[A]
}

// Evaluated wraps a fully reduced Value.
func Evaluated[A any](v bitvector.Value) Partial[A] {
	return Partial[A]{evaluated: true, value: v}
}

// Unevaluated wraps a residual expression.
func Unevaluated[A any](e Expr[A]) Partial[A] {
	return Partial[A]{evaluated: false, expr: e}
}

// IsEvaluated reports whether p folded to a value.
func (p Partial[A]) IsEvaluated() bool { return p.evaluated }

// Value returns the evaluated value. It panics if p is unevaluated;
// callers must check IsEvaluated first, the same discipline the App
// evaluation rule applies before invoking a primitive (spec §4.4).
func (p Partial[A]) Value() bitvector.Value {
	if !p.evaluated {
		panic("litmus: Value() called on an unevaluated Partial")
	}
	return p.value
}

// IntoExpr converts p into an expression: an Unevaluated Partial returns
// its residual as-is; an Evaluated Partial residualises its value into a
// literal node. Residualisation is total for bit-vectors, booleans, and
// 128-bit integers; any other evaluated kind fails with ErrType (spec §3,
// §4.4 "Residualisation contract").
func (p Partial[A]) IntoExpr() (Expr[A], error) {
	if !p.evaluated {
		return p.expr, nil
	}
	switch p.value.Kind {
	case bitvector.KindBits:
		return Bits64Expr[A](p.value.Bits.Uint64(), p.value.Bits.Width()), nil
	case bitvector.KindBool:
		if p.value.Bool {
			return TrueExpr[A](), nil
		}
		return FalseExpr[A](), nil
	case bitvector.KindInt128:
		return NatExpr[A](p.value.Int.Uint64()), nil
	default:
		return Expr[A]{}, TypeErrorf("", "cannot residualise a %s value", p.value.Kind)
	}
}
