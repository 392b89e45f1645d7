// Package ast defines the closed AST variant produced by the parser and
// consumed by the type checker and IR emitter. Every node is created once
// through an Arena, which assigns its NodeID; the tree links nodes by
// pointer and is never mutated once parsing completes.
package ast

import "github.com/1995hnagamin/spacec/internal/token"

// NodeID identifies a node within its owning Arena. The zero value never
// names a real node.
type NodeID uint32

// Node is implemented by every AST variant. Pos reports the token position
// the node was parsed from, for diagnostics.
type Node interface {
	ID() NodeID
	Pos() token.Position
}

// Decl is the subset of Node that may appear at the top level of a
// TranslationUnit.
type Decl interface {
	Node
	declNode()
}

// Expr is the subset of Node usable anywhere an expression is expected.
type Expr interface {
	Node
	exprNode()
}

type base struct {
	id  NodeID
	pos token.Position
}

func (b base) ID() NodeID         { return b.id }
func (b base) Pos() token.Position { return b.pos }

// Arena numbers every node created during one compilation: each New*
// constructor gives its node the next NodeID. The nodes themselves are
// ordinary Go heap values; the Arena does not hold or free them.
type Arena struct {
	next NodeID
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{next: 1}
}

func (a *Arena) alloc() NodeID {
	id := a.next
	a.next++
	return id
}

// Param is one formal parameter of a DefFn: a name paired with its declared
// type. Type is the parsed type expression, resolved by the checker.
type Param struct {
	Name string
	Type TypeExpr
}

// TranslationUnit is the root of a compiled file: an ordered list of
// top-level declarations.
type TranslationUnit struct {
	base
	Funcs []Decl
}

func (a *Arena) NewTranslationUnit(pos token.Position, funcs []Decl) *TranslationUnit {
	return &TranslationUnit{base: base{a.alloc(), pos}, Funcs: funcs}
}

func (*TranslationUnit) declNode() {}

// DefFn is a function definition: name, parameter list, declared return
// type, and a body expression (always a BlockExpr in practice, but the
// grammar admits any Expr in this field's static type).
type DefFn struct {
	base
	Name   string
	Params []Param
	Ret    TypeExpr
	Body   Expr
}

func (a *Arena) NewDefFn(pos token.Position, name string, params []Param, ret TypeExpr, body Expr) *DefFn {
	return &DefFn{base: base{a.alloc(), pos}, Name: name, Params: params, Ret: ret, Body: body}
}

func (*DefFn) declNode() {}

// DeclStmt is an extern function declaration: a name bound to a function
// type, with no body supplied by this translation unit.
type DeclStmt struct {
	base
	Name string
	Type TypeExpr
}

func (a *Arena) NewDeclStmt(pos token.Position, name string, ty TypeExpr) *DeclStmt {
	return &DeclStmt{base: base{a.alloc(), pos}, Name: name, Type: ty}
}

func (*DeclStmt) declNode() {}
func (*DeclStmt) exprNode() {}

// BinaryExpr applies op to lhs and rhs.
type BinaryExpr struct {
	base
	Op  BO
	Lhs Expr
	Rhs Expr
}

func (a *Arena) NewBinaryExpr(pos token.Position, op BO, lhs, rhs Expr) *BinaryExpr {
	return &BinaryExpr{base: base{a.alloc(), pos}, Op: op, Lhs: lhs, Rhs: rhs}
}

func (*BinaryExpr) exprNode() {}

// BlockExpr is a brace-delimited statement sequence. Its value is the value
// of its final statement, or Unit if empty.
type BlockExpr struct {
	base
	Stmts []Expr
}

func (a *Arena) NewBlockExpr(pos token.Position, stmts []Expr) *BlockExpr {
	return &BlockExpr{base: base{a.alloc(), pos}, Stmts: stmts}
}

func (*BlockExpr) exprNode() {}

// BoolLiteral is a literal True/False token.
type BoolLiteral struct {
	base
	Value bool
}

func (a *Arena) NewBoolLiteral(pos token.Position, v bool) *BoolLiteral {
	return &BoolLiteral{base: base{a.alloc(), pos}, Value: v}
}

func (*BoolLiteral) exprNode() {}

// CallExpr invokes Callee (itself an Expr, typically a VarRefExpr) with Args.
type CallExpr struct {
	base
	Callee Expr
	Args   []Expr
}

func (a *Arena) NewCallExpr(pos token.Position, callee Expr, args []Expr) *CallExpr {
	return &CallExpr{base: base{a.alloc(), pos}, Callee: callee, Args: args}
}

func (*CallExpr) exprNode() {}

// IfExpr is the only branching construct; Then and Else must check to the
// same type, which becomes the IfExpr's own type.
type IfExpr struct {
	base
	Cond Expr
	Then Expr
	Else Expr
}

func (a *Arena) NewIfExpr(pos token.Position, cond, then, els Expr) *IfExpr {
	return &IfExpr{base: base{a.alloc(), pos}, Cond: cond, Then: then, Else: els}
}

func (*IfExpr) exprNode() {}

// IntegerLiteral is a signed 32-bit decimal literal.
type IntegerLiteral struct {
	base
	Value int32
}

func (a *Arena) NewIntegerLiteral(pos token.Position, v int32) *IntegerLiteral {
	return &IntegerLiteral{base: base{a.alloc(), pos}, Value: v}
}

func (*IntegerLiteral) exprNode() {}

// OctetSeqLiteral is an `Oc "..."` literal; Bytes holds the unescaped
// payload with the surrounding quotes already stripped.
type OctetSeqLiteral struct {
	base
	Bytes []byte
}

func (a *Arena) NewOctetSeqLiteral(pos token.Position, bytes []byte) *OctetSeqLiteral {
	return &OctetSeqLiteral{base: base{a.alloc(), pos}, Bytes: bytes}
}

func (*OctetSeqLiteral) exprNode() {}

// LetStmt binds the value of Init to Name in the enclosing scope. Its own
// value is Unit.
type LetStmt struct {
	base
	Name string
	Init Expr
}

func (a *Arena) NewLetStmt(pos token.Position, name string, init Expr) *LetStmt {
	return &LetStmt{base: base{a.alloc(), pos}, Name: name, Init: init}
}

func (*LetStmt) exprNode() {}

// VarRefExpr is a bare name reference, resolved against the scope stack.
type VarRefExpr struct {
	base
	Name string
}

func (a *Arena) NewVarRefExpr(pos token.Position, name string) *VarRefExpr {
	return &VarRefExpr{base: base{a.alloc(), pos}, Name: name}
}

func (*VarRefExpr) exprNode() {}
