package eval

import "github.com/openisla/litmuscore/litmus"

// BindLocation is the location binder (spec §2 item 8): it rewrites a
// Location[string] parsed out of a litmus post-condition into a
// Location[uint64] over concrete physical addresses, ready for the
// symbolic executor.
//
// A Register location carries no address and passes through unchanged.
// A LastWriteTo location's name is looked up in phys; a name absent from
// the table is bound to physical address 0 rather than rejected. This is
// a deliberate bug-compatible choice, not an oversight: the source this
// repository is grounded on (isla-axiomatic's exp.rs::eval_loc) silently
// substitutes zero here, and reimplementers are told to decide between
// bug-compatibility and surfacing ErrType (spec §9, "Missing physical
// address"). This repository keeps bug-compatibility; see
// TestBindLocationMissingAddressIsZero.
func BindLocation(loc litmus.Location[string], phys PhysAddresses) litmus.Location[uint64] {
	switch loc.Kind {
	case litmus.LocRegister:
		return litmus.Register[uint64](loc.Reg, loc.ThreadID)
	case litmus.LocLastWriteTo:
		addr := phys[loc.Address]
		return litmus.LastWriteTo[uint64](addr, loc.Bytes)
	default:
		panic("eval: unrecognised Location kind")
	}
}
