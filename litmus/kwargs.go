package litmus

import "github.com/openisla/litmuscore/bitvector"

// KeywordArgs is the mapping from option name to evaluated value that a
// primitive call consumes. Options are removed destructively as the
// primitive reads them (spec §3, §9 "Keyword arguments"); any keys left
// over after a primitive returns are silently tolerated. Remove reports a
// missing required keyword as ErrType; RemoveOr never fails, leaving the
// primitive to decide what an absent optional keyword means.
type KeywordArgs struct {
	m map[string]bitvector.Value
}

// NewKeywordArgs builds a KeywordArgs from a plain map. The map is not
// copied defensively; callers should treat ownership as transferred, the
// way the App evaluation rule hands a freshly built map to a primitive.
func NewKeywordArgs(m map[string]bitvector.Value) KeywordArgs {
	if m == nil {
		m = map[string]bitvector.Value{}
	}
	return KeywordArgs{m: m}
}

// Remove takes kw out of the map and requires it to have been present;
// caller names the primitive for the error message. This is the "missing
// required keyword" path (spec §7).
func (k *KeywordArgs) Remove(caller, kw string) (bitvector.Value, error) {
	v, ok := k.m[kw]
	if !ok {
		return bitvector.Value{}, TypeErrorf(caller, "must have a %q keyword argument", kw)
	}
	delete(k.m, kw)
	return v, nil
}

// RemoveOr takes kw out of the map if present, returning (true, value);
// otherwise returns (false, or). Used for the "exactly one of" keyword
// pairs (va/ipa, asid/vmid, table/oa) and optional keywords (CnP).
func (k *KeywordArgs) RemoveOr(kw string, or bitvector.Value) (bool, bitvector.Value) {
	if v, ok := k.m[kw]; ok {
		delete(k.m, kw)
		return true, v
	}
	return false, or
}

// Len reports how many keys remain, mostly useful for tests asserting
// that a primitive consumed everything it should have.
func (k *KeywordArgs) Len() int { return len(k.m) }
