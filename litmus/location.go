package litmus

// LocationKind tags a Location's two variants.
type LocationKind int

const (
	// LocRegister names an architectural register on a specific thread.
	LocRegister LocationKind = iota
	// LocLastWriteTo names the last value written to an address.
	LocLastWriteTo
)

// Location is parameterised by the address representation A: a litmus
// post-condition is parsed with A = string (a symbolic address name) and
// rebound to A = uint64 (a concrete physical address) before being handed
// to the symbolic executor (spec §3, "Location").
type Location[A any] struct {
	Kind LocationKind

	// Register fields, valid when Kind == LocRegister.
	Reg      string
	ThreadID int

	// LastWriteTo fields, valid when Kind == LocLastWriteTo.
	Address A
	Bytes   uint32
}

// Register constructs a Register location.
func Register[A any](reg string, threadID int) Location[A] {
	return Location[A]{Kind: LocRegister, Reg: reg, ThreadID: threadID}
}

// LastWriteTo constructs a LastWriteTo location.
func LastWriteTo[A any](address A, bytes uint32) Location[A] {
	return Location[A]{Kind: LocLastWriteTo, Address: address, Bytes: bytes}
}
