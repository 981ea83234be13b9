package litmus

import (
	"math/big"
	"testing"

	"github.com/openisla/litmuscore/bitvector"
)

func exprEqual(a, b Expr[string]) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindBits64:
		return a.BitsVal == b.BitsVal && a.Width == b.Width
	case KindTrue, KindFalse:
		return true
	case KindNat:
		return a.Nat == b.Nat
	default:
		return false
	}
}

func TestRoundTripLiterals(t *testing.T) {
	tests := []struct {
		name string
		in   Expr[string]
		val  bitvector.Value
	}{
		{"bits64", Bits64Expr[string](0xAA, 8), bitvector.FromBits(bitvector.New(0xAA, 8))},
		{"true", TrueExpr[string](), bitvector.FromBool(true)},
		{"false", FalseExpr[string](), bitvector.FromBool(false)},
		{"nat", NatExpr[string](42), bitvector.FromInt128(big.NewInt(42))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Evaluated[string](tt.val)
			out, err := p.IntoExpr()
			if err != nil {
				t.Fatalf("IntoExpr: %v", err)
			}
			if !exprEqual(out, tt.in) {
				t.Errorf("round trip mismatch: got %+v, want %+v", out, tt.in)
			}
		})
	}
}

func TestIntoExprUnevaluatedPassesThrough(t *testing.T) {
	e := AppExpr[string]("bvand", []Expr[string]{Bits64Expr[string](1, 8)}, nil)
	p := Unevaluated[string](e)
	out, err := p.IntoExpr()
	if err != nil {
		t.Fatalf("IntoExpr: %v", err)
	}
	if out.Kind != KindApp || out.Fn != "bvand" {
		t.Errorf("expected residual App node to pass through unchanged, got %+v", out)
	}
}

func TestIntoExprUnsupportedKindFails(t *testing.T) {
	p := Evaluated[string](bitvector.Unit())
	_, err := p.IntoExpr()
	if err == nil {
		t.Fatal("expected an error residualising Unit")
	}
	le, ok := err.(*Error)
	if !ok || le.Kind != ErrType {
		t.Errorf("expected ErrType, got %v", err)
	}
}

func TestValuePanicsOnUnevaluated(t *testing.T) {
	p := Unevaluated[string](TrueExpr[string]())
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Value() on unevaluated Partial")
		}
	}()
	p.Value()
}

func TestKeywordArgsExclusivity(t *testing.T) {
	kw := NewKeywordArgs(map[string]bitvector.Value{
		"va": bitvector.FromBits(bitvector.New(0, 64)),
	})
	haveVA, _ := kw.RemoveOr("va", bitvector.Value{})
	haveIPA, _ := kw.RemoveOr("ipa", bitvector.Value{})
	if haveVA == haveIPA {
		t.Fatalf("expected exactly one of va/ipa to be present")
	}
}

func TestKeywordArgsRemoveMissing(t *testing.T) {
	kw := NewKeywordArgs(nil)
	_, err := kw.Remove("ttbr", "base")
	if err == nil {
		t.Fatal("expected missing-keyword error")
	}
	le, ok := err.(*Error)
	if !ok || le.Kind != ErrType || le.Subject != "ttbr" {
		t.Errorf("got %v", err)
	}
}
