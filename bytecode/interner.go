package bytecode

import "github.com/josharian/intern"

// StringInterner deduplicates string objects by content, handing out a
// stable, dense index for each distinct content seen. An index is never
// reused or reassigned once handed out, and the *LoxObject behind it never
// moves for the lifetime of the interner, so Values produced earlier stay
// valid for as long as the interner they were produced from is alive.
type StringInterner struct {
	indices map[string]int
	values  []*LoxObject
}

// NewStringInterner returns an empty interner.
func NewStringInterner() *StringInterner {
	return &StringInterner{indices: make(map[string]int)}
}

// Intern returns the dense index for s, interning it if this is the first
// time this content has been seen. The canonical copy of s is produced via
// intern.String, which folds repeated equal-content strings onto a single
// backing array before they ever reach the index map, so the interner's own
// map never accumulates duplicate byte storage for strings that already
// appeared elsewhere in the process.
func (si *StringInterner) Intern(s string) int {
	canonical := intern.String(s)
	if idx, ok := si.indices[canonical]; ok {
		return idx
	}
	idx := len(si.values)
	si.values = append(si.values, &LoxObject{Kind: ObjString, Str: canonical})
	si.indices[canonical] = idx
	return idx
}

// Get returns the object at idx. idx must have been returned by a previous
// call to Intern on this interner.
func (si *StringInterner) Get(idx int) *LoxObject {
	return si.values[idx]
}

// InternValue is a convenience wrapper producing a ready-to-push Value for
// an interned string.
func (si *StringInterner) InternValue(s string) Value {
	return NewObj(si.values[si.Intern(s)])
}
