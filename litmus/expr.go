package litmus

// ExprKind tags the variant of an Expr node (spec §3, "Expression").
type ExprKind int

const (
	KindEqLoc ExprKind = iota
	KindLoc
	KindLabel
	KindTrue
	KindFalse
	KindBin
	KindHex
	KindBits64
	KindNat
	KindAnd
	KindOr
	KindNot
	KindImplies
	KindApp
)

// Expr is a node in the litmus-condition expression tree, parameterised by
// the address representation A exactly like Location (spec §3). Only the
// fields relevant to Kind are meaningful, the way the teacher's
// CompilerError and Vibe67Type group kind-specific fields into one struct
// rather than one Go type per AST node — appropriate here too, since the
// partial evaluator needs to switch on Kind at every recursive step, and a
// generic sum type keeps that a single type switch instead of an interface
// with fourteen implementations.
type Expr[A any] struct {
	Kind ExprKind

	// EqLoc: the location and the sub-expression it must equal.
	Loc *Location[A]
	Sub *Expr[A]

	// Loc(a): the address name itself.
	Addr A

	// Label(s).
	Label string

	// Bin(text) / Hex(text): literal source text.
	Text string

	// Bits64(val, width).
	BitsVal uint64
	Width   uint32

	// Nat(n).
	Nat uint64

	// And(list) / Or(list).
	List []Expr[A]

	// Implies(lhs, rhs).
	Lhs *Expr[A]
	Rhs *Expr[A]

	// App(fn, positional, keyword).
	Fn         string
	Positional []Expr[A]
	Keyword    map[string]Expr[A]
}

// EqLocExpr builds an EqLoc node.
func EqLocExpr[A any](loc Location[A], sub Expr[A]) Expr[A] {
	return Expr[A]{Kind: KindEqLoc, Loc: &loc, Sub: &sub}
}

// LocExpr builds a Loc node.
func LocExpr[A any](addr A) Expr[A] {
	return Expr[A]{Kind: KindLoc, Addr: addr}
}

// LabelExpr builds a Label node.
func LabelExpr[A any](s string) Expr[A] {
	return Expr[A]{Kind: KindLabel, Label: s}
}

// TrueExpr and FalseExpr build the two Boolean literal nodes.
func TrueExpr[A any]() Expr[A]  { return Expr[A]{Kind: KindTrue} }
func FalseExpr[A any]() Expr[A] { return Expr[A]{Kind: KindFalse} }

// BinExpr and HexExpr build the binary/hexadecimal literal nodes. width is
// implied by len(text) at evaluation time (spec §3 invariant ii), not
// stored here.
func BinExpr[A any](text string) Expr[A] { return Expr[A]{Kind: KindBin, Text: text} }
func HexExpr[A any](text string) Expr[A] { return Expr[A]{Kind: KindHex, Text: text} }

// Bits64Expr builds a Bits64 literal node. width must be <= 64 (spec §3
// invariant i); this constructor does not itself validate that, since the
// value only becomes an error once evaluated (spec §7 names literal-width
// violations as Unimplemented, raised by the evaluator, not the AST).
func Bits64Expr[A any](val uint64, width uint32) Expr[A] {
	return Expr[A]{Kind: KindBits64, BitsVal: val, Width: width}
}

// NatExpr builds a Nat literal node.
func NatExpr[A any](n uint64) Expr[A] { return Expr[A]{Kind: KindNat, Nat: n} }

// AndExpr and OrExpr build n-ary propositional connectives.
func AndExpr[A any](list []Expr[A]) Expr[A] { return Expr[A]{Kind: KindAnd, List: list} }
func OrExpr[A any](list []Expr[A]) Expr[A]  { return Expr[A]{Kind: KindOr, List: list} }

// NotExpr builds a Not node.
func NotExpr[A any](sub Expr[A]) Expr[A] {
	return Expr[A]{Kind: KindNot, Sub: &sub}
}

// ImpliesExpr builds an Implies node.
func ImpliesExpr[A any](lhs, rhs Expr[A]) Expr[A] {
	return Expr[A]{Kind: KindImplies, Lhs: &lhs, Rhs: &rhs}
}

// AppExpr builds a function-application node.
func AppExpr[A any](fn string, positional []Expr[A], keyword map[string]Expr[A]) Expr[A] {
	return Expr[A]{Kind: KindApp, Fn: fn, Positional: positional, Keyword: keyword}
}
