package eval

import (
	"testing"

	"github.com/openisla/litmuscore/bitvector"
	"github.com/openisla/litmuscore/collab"
	"github.com/openisla/litmuscore/litmus"
)

func buildWalkMemory() *collab.FlatMemory {
	mem := collab.NewFlatMemory()
	mem.WriteU64(0x1000, 0x2003)
	mem.WriteU64(0x2000, 0x3003)
	mem.WriteU64(0x3000, 0x4003)
	mem.WriteU64(0x4000, 0x5000_0000_0000_0040)
	return mem
}

func testEnv() *Env {
	return &Env{
		Addrs:   Addresses{"x": 0x42},
		Mem:     buildWalkMemory(),
		Solver:  collab.ConcreteSolver{},
		Disasm:  collab.TextDisassembler{},
		Objdump: "0000000000400000 <foo>:\n",
	}
}

func TestEvalLiterals(t *testing.T) {
	env := testEnv()
	tests := []struct {
		name string
		in   litmus.Expr[string]
		want bitvector.Value
	}{
		{"true", litmus.TrueExpr[string](), bitvector.FromBool(true)},
		{"false", litmus.FalseExpr[string](), bitvector.FromBool(false)},
		{"bits64", litmus.Bits64Expr[string](0xAA, 8), bitvector.FromBits(bitvector.New(0xAA, 8))},
		{"nat", litmus.NatExpr[string](7), bitvector.FromInt(7)},
		{"bin", litmus.BinExpr[string]("1010"), bitvector.FromBits(bitvector.New(0b1010, 4))},
		{"hex", litmus.HexExpr[string]("FF"), bitvector.FromBits(bitvector.New(0xFF, 8))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.in, env)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got.String() != tt.want.String() {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalWideLiteralsUnimplemented(t *testing.T) {
	env := testEnv()
	tests := []litmus.Expr[string]{
		litmus.BinExpr[string](make65Bits()),
		litmus.HexExpr[string]("0123456789ABCDEF0"),
	}
	for _, e := range tests {
		_, err := Eval(e, env)
		le, ok := err.(*litmus.Error)
		if !ok || le.Kind != litmus.ErrUnimplemented {
			t.Errorf("expected ErrUnimplemented, got %v", err)
		}
	}
}

func make65Bits() string {
	b := make([]byte, 65)
	for i := range b {
		b[i] = '1'
	}
	return string(b)
}

func TestEvalLocUnknownNameFails(t *testing.T) {
	env := testEnv()
	_, err := Eval(litmus.LocExpr[string]("absent"), env)
	le, ok := err.(*litmus.Error)
	if !ok || le.Kind != litmus.ErrType {
		t.Fatalf("expected ErrType, got %v", err)
	}
}

func TestEvalLabelUnknownNameFails(t *testing.T) {
	env := testEnv()
	_, err := Eval(litmus.LabelExpr[string]("absent"), env)
	le, ok := err.(*litmus.Error)
	if !ok || le.Kind != litmus.ErrType {
		t.Fatalf("expected ErrType, got %v", err)
	}
}

func TestEvalLabelResolves(t *testing.T) {
	env := testEnv()
	got, err := Eval(litmus.LabelExpr[string]("foo"), env)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got.Bits.Uint64() != 0x400000 {
		t.Errorf("label foo = 0x%x, want 0x400000", got.Bits.Uint64())
	}
}

// TestBvAndOrScenario covers spec §8 scenario 6's first half.
func TestBvAndOrScenario(t *testing.T) {
	env := testEnv()
	e := litmus.AppExpr[string]("bvand", []litmus.Expr[string]{
		litmus.AppExpr[string]("bvor", []litmus.Expr[string]{
			litmus.Bits64Expr[string](0x0F, 8),
			litmus.Bits64Expr[string](0xF0, 8),
		}, nil),
		litmus.Bits64Expr[string](0xAA, 8),
	}, nil)
	got, err := Eval(e, env)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got.Bits.Uint64() != 0xAA {
		t.Errorf("bvand(bvor(0x0F,0xF0),0xAA) = 0x%x, want 0xAA", got.Bits.Uint64())
	}
}

// TestImpliesEqLocResidualises covers spec §8 scenario 6's second half:
// Implies(True, EqLoc(Register{X0,0}, bvand(0xF0, 0xAA))) partially
// evaluates to Implies(True, EqLoc(Register{X0,0}, 0xA0)).
func TestImpliesEqLocResidualises(t *testing.T) {
	env := testEnv()
	loc := litmus.Register[string]("X0", 0)
	e := litmus.ImpliesExpr[string](
		litmus.TrueExpr[string](),
		litmus.EqLocExpr(loc, litmus.AppExpr[string]("bvand", []litmus.Expr[string]{
			litmus.Bits64Expr[string](0xF0, 8),
			litmus.Bits64Expr[string](0xAA, 8),
		}, nil)),
	)
	p, err := PartialEval(e, env)
	if err != nil {
		t.Fatalf("PartialEval: %v", err)
	}
	if p.IsEvaluated() {
		t.Fatal("expected Implies to residualise")
	}
	out, err := p.IntoExpr()
	if err != nil {
		t.Fatalf("IntoExpr: %v", err)
	}
	if out.Kind != litmus.KindImplies {
		t.Fatalf("expected top-level Implies, got kind %d", out.Kind)
	}
	if out.Lhs.Kind != litmus.KindTrue {
		t.Errorf("expected lhs True, got kind %d", out.Lhs.Kind)
	}
	rhs := out.Rhs
	if rhs.Kind != litmus.KindEqLoc {
		t.Fatalf("expected rhs EqLoc, got kind %d", rhs.Kind)
	}
	if rhs.Sub.Kind != litmus.KindBits64 || rhs.Sub.BitsVal != 0xA0 {
		t.Errorf("expected EqLoc sub to residualise to 0xA0, got %+v", rhs.Sub)
	}
}

func TestResidualisationAlwaysUnevaluated(t *testing.T) {
	env := testEnv()
	loc := litmus.Register[string]("X0", 0)
	cases := map[string]litmus.Expr[string]{
		"EqLoc":    litmus.EqLocExpr(loc, litmus.TrueExpr[string]()),
		"And":      litmus.AndExpr([]litmus.Expr[string]{litmus.TrueExpr[string](), litmus.FalseExpr[string]()}),
		"Or":       litmus.OrExpr([]litmus.Expr[string]{litmus.TrueExpr[string](), litmus.FalseExpr[string]()}),
		"Not":      litmus.NotExpr(litmus.TrueExpr[string]()),
		"Implies":  litmus.ImpliesExpr(litmus.TrueExpr[string](), litmus.FalseExpr[string]()),
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := PartialEval(e, env)
			if err != nil {
				t.Fatalf("PartialEval: %v", err)
			}
			if p.IsEvaluated() {
				t.Errorf("%s: expected Unevaluated even with literal subterms", name)
			}
		})
	}
}

func TestEvalUnreducedResidualIsUnimplemented(t *testing.T) {
	env := testEnv()
	loc := litmus.Register[string]("X0", 0)
	e := litmus.EqLocExpr(loc, litmus.TrueExpr[string]())
	_, err := Eval(e, env)
	le, ok := err.(*litmus.Error)
	if !ok || le.Kind != litmus.ErrUnimplemented {
		t.Fatalf("expected ErrUnimplemented, got %v", err)
	}
}

// TestWalkPAScenario covers spec §8 scenario 3 through the full App /
// primitive-table path rather than calling the primitive directly.
func TestWalkPAScenario(t *testing.T) {
	env := testEnv()
	e := litmus.AppExpr[string]("pa", []litmus.Expr[string]{
		litmus.Bits64Expr[string](0, 64),
		litmus.Bits64Expr[string](0x1000, 64),
	}, nil)
	got, err := Eval(e, env)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got.Bits.Uint64() != 0x5000_0000_0000_0000 {
		t.Errorf("pa = 0x%x, want 0x5000000000000000", got.Bits.Uint64())
	}
}

func TestBindLocationMissingAddressIsZero(t *testing.T) {
	loc := litmus.LastWriteTo[string]("absent", 8)
	bound := BindLocation(loc, nil)
	if bound.Address != 0 {
		t.Errorf("expected missing physical address to bind to 0, got %d", bound.Address)
	}
}

func TestBindLocationKnownAddress(t *testing.T) {
	loc := litmus.LastWriteTo[string]("x", 8)
	bound := BindLocation(loc, PhysAddresses{"x": 0x8000})
	if bound.Address != 0x8000 {
		t.Errorf("got %d, want 0x8000", bound.Address)
	}
}

func TestBindLocationRegisterPassesThrough(t *testing.T) {
	loc := litmus.Register[string]("X0", 1)
	bound := BindLocation(loc, nil)
	if bound.Kind != litmus.LocRegister || bound.Reg != "X0" || bound.ThreadID != 1 {
		t.Errorf("register location mutated: %+v", bound)
	}
}

func TestResetEvalReentrant(t *testing.T) {
	e := litmus.Bits64Expr[string](0x7, 8)
	r := ResetEval(e, Addresses{}, "")
	for i := 0; i < 3; i++ {
		got, err := r.Eval(buildWalkMemory(), collab.ConcreteSolver{}, collab.TextDisassembler{})
		if err != nil {
			t.Fatalf("Reset.Eval: %v", err)
		}
		if got.Bits.Uint64() != 0x7 {
			t.Errorf("call %d: got 0x%x, want 0x7", i, got.Bits.Uint64())
		}
	}
}

func TestResetEvalOwnsAddressCopy(t *testing.T) {
	addrs := Addresses{"x": 1}
	r := ResetEval(litmus.LocExpr[string]("x"), addrs, "")
	addrs["x"] = 2
	got, err := r.Eval(buildWalkMemory(), collab.ConcreteSolver{}, collab.TextDisassembler{})
	if err != nil {
		t.Fatalf("Reset.Eval: %v", err)
	}
	if got.Bits.Uint64() != 1 {
		t.Errorf("mutating caller's map after ResetEval changed the captured value: got 0x%x, want 1", got.Bits.Uint64())
	}
}
