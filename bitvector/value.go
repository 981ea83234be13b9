package bitvector

import (
	"fmt"
	"math/big"
)

// ValueKind is the tag of a Value, mirroring the teacher's TypeKind switch
// pattern (types.go) rather than a Go type-switch over an empty interface:
// the set of kinds is small, fixed, and every primitive in this repository
// needs to dispatch on it.
type ValueKind int

const (
	// KindUnit is the result of operations with no meaningful value
	// (none currently produce it, but the spec's data model names it).
	KindUnit ValueKind = iota
	KindBits
	KindBool
	KindInt128
)

func (k ValueKind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBits:
		return "bits"
	case KindBool:
		return "bool"
	case KindInt128:
		return "int128"
	default:
		return "unknown"
	}
}

// Value is the tagged union the partial evaluator and primitive table
// operate on: a bit-vector, a boolean, a 128-bit signed integer, or unit.
type Value struct {
	Kind ValueKind
	Bits BitVector
	Bool bool
	Int  *big.Int // 128-bit signed integer payload for KindInt128
}

// Unit is the single unit value.
func Unit() Value { return Value{Kind: KindUnit} }

// FromBits wraps a BitVector as a Value.
func FromBits(b BitVector) Value { return Value{Kind: KindBits, Bits: b} }

// FromBool wraps a boolean as a Value.
func FromBool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// FromInt128 wraps a signed 128-bit integer (represented with a big.Int,
// since Go has no native int128) as a Value.
func FromInt128(n *big.Int) Value { return Value{Kind: KindInt128, Int: new(big.Int).Set(n)} }

// FromInt wraps a plain int64-range natural number as a Value of kind
// KindInt128, matching the source's use of i128 for both `Nat` literals
// and the `index` primitive's level number.
func FromInt(n int64) Value { return FromInt128(big.NewInt(n)) }

func (v Value) String() string {
	switch v.Kind {
	case KindBits:
		return v.Bits.String()
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindInt128:
		return v.Int.String()
	default:
		return "unit"
	}
}
