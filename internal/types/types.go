// Package types implements the KC type lattice: a small closed variant used
// by the checker to decorate expressions and by the IR emitter to lower them.
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the variants of Type.
type Kind int

const (
	Bool Kind = iota
	IntN
	Unit
	Function
	Slice
	TyVar
)

// Type is the common interface implemented by every type variant. Equal
// performs the structural equality defined in the language spec: same kind,
// equal payload component-wise.
type Type interface {
	Kind() Kind
	Equal(Type) bool
	String() string
}

// BoolType is the single boolean type.
type BoolType struct{}

func (BoolType) Kind() Kind        { return Bool }
func (BoolType) String() string    { return "Bool" }
func (BoolType) Equal(o Type) bool { _, ok := o.(BoolType); return ok }

// IntNType is a signed integer of a fixed bit width.
type IntNType struct {
	Width int
}

func (IntNType) Kind() Kind     { return IntN }
func (t IntNType) String() string { return fmt.Sprintf("i%d", t.Width) }
func (t IntNType) Equal(o Type) bool {
	other, ok := o.(IntNType)
	return ok && other.Width == t.Width
}

// UnitType is the zero-value "no result" type, e.g. the type of Let and Decl.
type UnitType struct{}

func (UnitType) Kind() Kind        { return Unit }
func (UnitType) String() string    { return "Unit" }
func (UnitType) Equal(o Type) bool { _, ok := o.(UnitType); return ok }

// FunctionType is the type of a DefFn or a Decl extern declaration. Equality
// requires equal arity, an equal return type, and pointwise equal parameters.
type FunctionType struct {
	Ret    Type
	Params []Type
}

func (FunctionType) Kind() Kind { return Function }

func (t FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("Fr(%s) -> %s", strings.Join(parts, ", "), t.Ret.String())
}

func (t FunctionType) Equal(o Type) bool {
	other, ok := o.(FunctionType)
	if !ok {
		return false
	}
	if len(t.Params) != len(other.Params) {
		return false
	}
	if !t.Ret.Equal(other.Ret) {
		return false
	}
	for i, p := range t.Params {
		if !p.Equal(other.Params[i]) {
			return false
		}
	}
	return true
}

// SliceType is the type of an octet-sequence literal: a pointer+length view
// over a fixed element type.
type SliceType struct {
	Elem Type
}

func (SliceType) Kind() Kind     { return Slice }
func (t SliceType) String() string { return "[" + t.Elem.String() + "]" }
func (t SliceType) Equal(o Type) bool {
	other, ok := o.(SliceType)
	return ok && t.Elem.Equal(other.Elem)
}

// TyVarType is reserved for future type inference. It is never constructed by
// the parser or checker at this language level; if encountered it is opaque
// and equal only to a TyVar sharing its id.
type TyVarType struct {
	ID uint64
}

func (TyVarType) Kind() Kind     { return TyVar }
func (t TyVarType) String() string { return fmt.Sprintf("?%d", t.ID) }
func (t TyVarType) Equal(o Type) bool {
	other, ok := o.(TyVarType)
	return ok && other.ID == t.ID
}

// I32 is the width-32 integer type produced by integer literals and
// arithmetic operators; it is the only integer width this language level
// constructs.
var I32 = IntNType{Width: 32}
