package eval

import (
	"math/big"

	"github.com/openisla/litmuscore/bitvector"
	"github.com/openisla/litmuscore/litmus"
)

// maxBinDigits and maxHexDigits are the widest Bin/Hex literals the fast
// path folds directly to a Bits64-shaped value; anything longer fails
// Unimplemented rather than silently truncating (spec §3 invariant ii,
// §9 "Wide literals" — the decision to preserve this limitation as
// specified rather than extend the algebra is recorded there).
const (
	maxBinDigits = 64
	maxHexDigits = 16
)

// evalBin folds a Bin(text) literal: width is the digit count, each
// character must be '0' or '1' (spec §3, "Bin(str)").
func evalBin(text string) (litmus.Partial[uint64], error) {
	if len(text) > maxBinDigits {
		return litmus.Partial[uint64]{}, litmus.UnimplementedErrorf("binary literal %q is wider than %d bits", text, maxBinDigits)
	}
	val := new(big.Int)
	for _, c := range text {
		val.Lsh(val, 1)
		switch c {
		case '0':
		case '1':
			val.Or(val, big.NewInt(1))
		default:
			return litmus.Partial[uint64]{}, litmus.TypeErrorf(text, "not a valid binary literal")
		}
	}
	width := uint32(len(text))
	if width == 0 {
		width = 1
	}
	return litmus.Evaluated[uint64](bitvector.FromBits(bitvector.NewBig(val, width))), nil
}

// evalHex folds a Hex(text) literal: width is 4 times the hex-digit count
// (spec §3, "Hex(str)").
func evalHex(text string) (litmus.Partial[uint64], error) {
	if len(text) > maxHexDigits {
		return litmus.Partial[uint64]{}, litmus.UnimplementedErrorf("hexadecimal literal %q is wider than %d digits", text, maxHexDigits)
	}
	val, ok := new(big.Int).SetString(text, 16)
	if !ok {
		return litmus.Partial[uint64]{}, litmus.TypeErrorf(text, "not a valid hexadecimal literal")
	}
	width := uint32(len(text)) * 4
	if width == 0 {
		width = 4
	}
	return litmus.Evaluated[uint64](bitvector.FromBits(bitvector.NewBig(val, width))), nil
}
