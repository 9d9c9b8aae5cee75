// Package types implements Yang's static type system (spec.md §4.5):
// void, int, world, and fixed-width vectors of either, plus function
// types for exported symbols.
package types

import "fmt"

// Base is a primitive scalar kind.
type Base int

const (
	Void Base = iota
	Int
	World
)

func (b Base) String() string {
	switch b {
	case Void:
		return "void"
	case Int:
		return "int"
	case World:
		return "world"
	default:
		return "invalid"
	}
}

// Invalid is the error type (⟂ in spec.md §4.5), returned by the
// checker for any expression whose type could not be determined so
// that error recovery can continue without triggering a cascade of
//"both operands must match" diagnostics against it.
var Invalid = Type{Base: Void, Count: -1}

// Type is int/world/void with a vector count; Count == 1 is scalar,
// Count > 1 is intN/worldN. Function values carry Func instead.
type Type struct {
	Base  Base
	Count int
	Func  *FuncType
}

// FuncType is the type of a function value: T(T1, ..., Tn).
type FuncType struct {
	Params []Type
	Ret    Type
}

func Scalar(b Base) Type { return Type{Base: b, Count: 1} }
func Vector(b Base, n int) Type { return Type{Base: b, Count: n} }
func VoidType() Type { return Type{Base: Void, Count: 1} }

func (t Type) IsInvalid() bool  { return t.Count < 0 && t.Func == nil }
func (t Type) IsVoid() bool     { return t.Func == nil && t.Base == Void && t.Count == 1 }
func (t Type) IsVector() bool   { return t.Func == nil && t.Count > 1 }
func (t Type) IsScalar() bool   { return t.Func == nil && t.Count == 1 }
func (t Type) IsFunction() bool { return t.Func != nil }

func (t Type) Equal(o Type) bool {
	if t.Func != nil || o.Func != nil {
		return t.Func != nil && o.Func != nil && t.Func.equal(*o.Func)
	}
	return t.Base == o.Base && t.Count == o.Count
}

func (f FuncType) equal(o FuncType) bool {
	if !f.Ret.Equal(o.Ret) || len(f.Params) != len(o.Params) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	return true
}

func (t Type) String() string {
	if t.Func != nil {
		s := t.Func.Ret.String() + "("
		for i, p := range t.Func.Params {
			if i > 0 {
				s += ", "
			}
			s += p.String()
		}
		return s + ")"
	}
	if t.IsInvalid() {
		return "<invalid>"
	}
	if t.Count == 1 {
		return t.Base.String()
	}
	return fmt.Sprintf("%s%d", t.Base, t.Count)
}

// Broadcast implements spec.md §4.5's vector broadcast rule for binary
// arithmetic/comparison operators: both operands must share a base
// type, and either share a vector count or one must be scalar. The
// result count is max(n, m); ok is false if the rule is violated.
func Broadcast(a, b Type) (result Type, ok bool) {
	if a.Func != nil || b.Func != nil || a.Base != b.Base {
		return Invalid, false
	}
	switch {
	case a.Count == b.Count:
		return Type{Base: a.Base, Count: a.Count}, true
	case a.Count == 1:
		return Type{Base: a.Base, Count: b.Count}, true
	case b.Count == 1:
		return Type{Base: a.Base, Count: a.Count}, true
	default:
		return Invalid, false
	}
}
