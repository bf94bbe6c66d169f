package bytecode

import (
	"fmt"
	"math"
)

// ValueKind discriminates the variants of Value.
type ValueKind int

const (
	ValNil ValueKind = iota
	ValBool
	ValNumber
	ValObj
)

// Value is a tagged union of the scalar and heap-object values a Lox
// program can produce. Values are cheap to copy: the Obj variant carries a
// shared handle into the interner's storage rather than an owned copy, so
// popping a string value off the stack never frees it.
type Value struct {
	Kind ValueKind
	Num  float64
	Bool bool
	Obj  *LoxObject
}

// Nil is the singleton nil value.
var Nil = Value{Kind: ValNil}

// NewBool wraps b as a Value.
func NewBool(b bool) Value { return Value{Kind: ValBool, Bool: b} }

// NewNumber wraps n as a Value.
func NewNumber(n float64) Value { return Value{Kind: ValNumber, Num: n} }

// NewObj wraps obj as a Value.
func NewObj(obj *LoxObject) Value { return Value{Kind: ValObj, Obj: obj} }

// IsFalsey reports whether v is falsey: Nil or Bool(false). Every other
// value, including Number(0), is truthy.
func (v Value) IsFalsey() bool {
	return v.Kind == ValNil || (v.Kind == ValBool && !v.Bool)
}

// Equal compares two values for equality. Different variants are never
// equal; numbers use IEEE-754 bitwise equality, so NaN != NaN.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValNil:
		return true
	case ValBool:
		return a.Bool == b.Bool
	case ValNumber:
		return a.Num == b.Num
	case ValObj:
		return objectsEqual(a.Obj, b.Obj)
	default:
		return false
	}
}

// String renders v the way the VM and disassembler print values.
func (v Value) String() string {
	switch v.Kind {
	case ValNil:
		return "Nil"
	case ValBool:
		return fmt.Sprintf("Bool(%t)", v.Bool)
	case ValNumber:
		if math.IsNaN(v.Num) {
			return "Number(NaN)"
		}
		return fmt.Sprintf("Number(%v)", v.Num)
	case ValObj:
		return v.Obj.String()
	default:
		return "<invalid value>"
	}
}

// IsNumber reports whether v holds a Number.
func (v Value) IsNumber() bool { return v.Kind == ValNumber }
