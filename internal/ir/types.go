// Package ir defines the target-independent intermediate representation
// that the type-checked AST is lowered into, and the abstract builder
// interface a concrete code generator must satisfy to consume it.
package ir

import (
	"fmt"
	"strings"

	"github.com/1995hnagamin/spacec/internal/diag"
	"github.com/1995hnagamin/spacec/internal/token"
	"github.com/1995hnagamin/spacec/internal/types"
)

// Type is the lowered, backend-facing counterpart of types.Type. Unlike the
// checker's type lattice it has no notion of type variables: by the time a
// program reaches the emitter every type has already been resolved.
type Type interface {
	String() string
	irType()
}

// IntType is an N-bit two's-complement integer, e.g. i32.
type IntType struct {
	Width int
}

func (t IntType) String() string { return fmt.Sprintf("i%d", t.Width) }
func (IntType) irType()          {}

// BoolType lowers to a 1-bit integer.
type BoolType struct{}

func (BoolType) String() string { return "i1" }
func (BoolType) irType()        {}

// VoidType is the lowering of Unit.
type VoidType struct{}

func (VoidType) String() string { return "void" }
func (VoidType) irType()        {}

// FunctionType is a non-variadic function signature.
type FunctionType struct {
	Ret    Type
	Params []Type
}

func (t FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s (%s)", t.Ret, strings.Join(parts, ", "))
}
func (FunctionType) irType() {}

// PointerType is a pointer to Elem.
type PointerType struct {
	Elem Type
}

func (t PointerType) String() string { return t.Elem.String() + "*" }
func (PointerType) irType()          {}

// StructType is an anonymous, ordered aggregate of Members, used for the
// `{i8*, i32}` octet-sequence representation.
type StructType struct {
	Members []Type
}

func (t StructType) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (StructType) irType() {}

// OctetSeqType is the `{i8*, i32}` pointer+length pair every OctetSeqLiteral
// lowers to.
var OctetSeqType = StructType{Members: []Type{PointerType{Elem: IntType{Width: 8}}, IntType{Width: 32}}}

// LowerType maps a checked types.Type onto its IR counterpart.
func LowerType(t types.Type) (Type, error) {
	switch ty := t.(type) {
	case types.BoolType:
		return BoolType{}, nil
	case types.IntNType:
		return IntType{Width: ty.Width}, nil
	case types.UnitType:
		return VoidType{}, nil
	case types.FunctionType:
		ret, err := LowerType(ty.Ret)
		if err != nil {
			return nil, err
		}
		params := make([]Type, len(ty.Params))
		for i, p := range ty.Params {
			pt, err := LowerType(p)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		return FunctionType{Ret: ret, Params: params}, nil
	case types.SliceType:
		if ty.Elem.Kind() == types.IntN && ty.Elem.(types.IntNType).Width == 8 {
			return OctetSeqType, nil
		}
		return nil, diag.NewIREmitError(token.Position{}, "unsupported slice element type %s", ty.Elem)
	default:
		return nil, diag.NewIREmitError(token.Position{}, "unsupported type %s", t)
	}
}
