// Package sema type-checks a parsed translation unit, decorating every
// expression node with its type in a side-table rather than mutating the
// AST, and reports the first type error it encounters.
package sema

import (
	"github.com/1995hnagamin/spacec/internal/ast"
	"github.com/1995hnagamin/spacec/internal/diag"
	"github.com/1995hnagamin/spacec/internal/types"
)

// Table maps AST nodes to their checked type. It is populated once, during
// Check, and never mutated afterward.
type Table struct {
	byID map[ast.NodeID]types.Type
}

func newTable() *Table {
	return &Table{byID: make(map[ast.NodeID]types.Type)}
}

func (t *Table) set(n ast.Node, ty types.Type) {
	t.byID[n.ID()] = ty
}

// Get returns the type recorded for n, if any.
func (t *Table) Get(n ast.Node) (types.Type, bool) {
	ty, ok := t.byID[n.ID()]
	return ty, ok
}

// scope is one level of the environment: a flat name-to-type map.
type scope map[string]types.Type

// env is the stack of scopes the checker pushes and pops as it enters and
// leaves function bodies and blocks. Lookup proceeds innermost-first.
type env struct {
	scopes []scope
}

func newEnv() *env {
	return &env{scopes: []scope{{}}}
}

func (e *env) push() {
	e.scopes = append(e.scopes, scope{})
}

func (e *env) pop() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

func (e *env) bind(name string, ty types.Type) {
	e.scopes[len(e.scopes)-1][name] = ty
}

func (e *env) lookup(name string) (types.Type, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if ty, ok := e.scopes[i][name]; ok {
			return ty, true
		}
	}
	return nil, false
}

type checker struct {
	table *Table
	env   *env
}

// Check type-checks tu and returns the type side-table, or the first
// TypeError encountered. Functions are checked strictly left to right: a
// function's name becomes visible to its later siblings as soon as it is
// checked, but not to any that precede it, so only direct (self) recursion
// is possible without an explicit forward declaration.
func Check(tu *ast.TranslationUnit) (*Table, error) {
	c := &checker{table: newTable(), env: newEnv()}
	for _, decl := range tu.Funcs {
		if err := c.checkDecl(decl); err != nil {
			return nil, err
		}
	}
	return c.table, nil
}

func (c *checker) checkDecl(decl ast.Decl) error {
	switch d := decl.(type) {
	case *ast.DefFn:
		return c.checkDefFn(d)
	case *ast.DeclStmt:
		ty, err := resolveType(d.Type)
		if err != nil {
			return err
		}
		c.env.bind(d.Name, ty)
		c.table.set(d, types.UnitType{})
		return nil
	default:
		return diag.NewTypeError(decl.Pos(), "unsupported top-level declaration")
	}
}

func (c *checker) checkDefFn(fn *ast.DefFn) error {
	ret, err := resolveType(fn.Ret)
	if err != nil {
		return err
	}
	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		pt, err := resolveType(p.Type)
		if err != nil {
			return err
		}
		params[i] = pt
	}
	fnType := types.FunctionType{Ret: ret, Params: params}
	c.env.bind(fn.Name, fnType)
	c.table.set(fn, fnType)

	block, ok := fn.Body.(*ast.BlockExpr)
	if !ok {
		return diag.NewTypeError(fn.Pos(), "function body of %q must be a block", fn.Name)
	}

	c.env.push()
	for i, p := range fn.Params {
		c.env.bind(p.Name, params[i])
	}
	bodyTy, err := c.checkExpr(block)
	c.env.pop()
	if err != nil {
		return err
	}
	if !bodyTy.Equal(ret) {
		return diag.NewTypeError(fn.Pos(), "function %q: body has type %s, declared return type is %s", fn.Name, bodyTy, ret)
	}
	return nil
}

func (c *checker) checkExpr(e ast.Expr) (types.Type, error) {
	switch node := e.(type) {
	case *ast.IntegerLiteral:
		return c.record(node, types.I32), nil
	case *ast.BoolLiteral:
		return c.record(node, types.BoolType{}), nil
	case *ast.OctetSeqLiteral:
		return c.record(node, types.SliceType{Elem: types.IntNType{Width: 8}}), nil
	case *ast.VarRefExpr:
		ty, ok := c.env.lookup(node.Name)
		if !ok {
			return nil, diag.UnboundName(node.Pos(), node.Name)
		}
		return c.record(node, ty), nil
	case *ast.BinaryExpr:
		return c.checkBinaryExpr(node)
	case *ast.BlockExpr:
		return c.checkBlockExpr(node)
	case *ast.CallExpr:
		return c.checkCallExpr(node)
	case *ast.IfExpr:
		return c.checkIfExpr(node)
	case *ast.LetStmt:
		return c.checkLetStmt(node)
	case *ast.DeclStmt:
		ty, err := resolveType(node.Type)
		if err != nil {
			return nil, err
		}
		c.env.bind(node.Name, ty)
		return c.record(node, types.UnitType{}), nil
	default:
		return nil, diag.NewTypeError(e.Pos(), "unsupported expression node")
	}
}

func (c *checker) record(n ast.Node, ty types.Type) types.Type {
	c.table.set(n, ty)
	return ty
}

func (c *checker) checkBinaryExpr(node *ast.BinaryExpr) (types.Type, error) {
	lhs, err := c.checkExpr(node.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := c.checkExpr(node.Rhs)
	if err != nil {
		return nil, err
	}

	switch node.Op {
	case ast.Plus, ast.Minus, ast.Mult, ast.Div:
		if lhs.Kind() != types.IntN || rhs.Kind() != types.IntN {
			return nil, diag.NewTypeError(node.Pos(), "operands of %s must be integers, got %s and %s", node.Op, lhs, rhs)
		}
		return c.record(node, types.I32), nil
	case ast.Eq, ast.Lt, ast.Gt:
		if lhs.Kind() != types.IntN || rhs.Kind() != types.IntN {
			return nil, diag.NewTypeError(node.Pos(), "operands of %s must be integers, got %s and %s", node.Op, lhs, rhs)
		}
		return c.record(node, types.BoolType{}), nil
	default:
		return nil, diag.NewTypeError(node.Pos(), "unknown operator %s", node.Op)
	}
}

func (c *checker) checkBlockExpr(node *ast.BlockExpr) (types.Type, error) {
	if len(node.Stmts) == 0 {
		return c.record(node, types.UnitType{}), nil
	}

	c.env.push()
	defer c.env.pop()

	var last types.Type
	for i, stmt := range node.Stmts {
		ty, err := c.checkExpr(stmt)
		if err != nil {
			return nil, err
		}
		if i < len(node.Stmts)-1 {
			if _, isUnit := ty.(types.UnitType); !isUnit {
				return nil, diag.NewTypeError(stmt.Pos(), "non-final block statement must have type Unit, got %s", ty)
			}
		}
		last = ty
	}
	return c.record(node, last), nil
}

func (c *checker) checkCallExpr(node *ast.CallExpr) (types.Type, error) {
	calleeTy, err := c.checkExpr(node.Callee)
	if err != nil {
		return nil, err
	}
	fnType, ok := calleeTy.(types.FunctionType)
	if !ok {
		return nil, diag.NewTypeError(node.Pos(), "call target has non-function type %s", calleeTy)
	}
	if len(node.Args) != len(fnType.Params) {
		return nil, diag.NewTypeError(node.Pos(), "expected %d arguments, got %d", len(fnType.Params), len(node.Args))
	}
	for i, arg := range node.Args {
		argTy, err := c.checkExpr(arg)
		if err != nil {
			return nil, err
		}
		if !argTy.Equal(fnType.Params[i]) {
			return nil, diag.NewTypeError(arg.Pos(), "argument %d: expected %s, got %s", i+1, fnType.Params[i], argTy)
		}
	}
	return c.record(node, fnType.Ret), nil
}

func (c *checker) checkIfExpr(node *ast.IfExpr) (types.Type, error) {
	condTy, err := c.checkExpr(node.Cond)
	if err != nil {
		return nil, err
	}
	if _, isBool := condTy.(types.BoolType); !isBool {
		return nil, diag.NewTypeError(node.Cond.Pos(), "If condition must be Bool, got %s", condTy)
	}
	thenTy, err := c.checkExpr(node.Then)
	if err != nil {
		return nil, err
	}
	elseTy, err := c.checkExpr(node.Else)
	if err != nil {
		return nil, err
	}
	if !thenTy.Equal(elseTy) {
		return nil, diag.NewTypeError(node.Pos(), "If branches have differing types %s and %s", thenTy, elseTy)
	}
	return c.record(node, thenTy), nil
}

func (c *checker) checkLetStmt(node *ast.LetStmt) (types.Type, error) {
	initTy, err := c.checkExpr(node.Init)
	if err != nil {
		return nil, err
	}
	c.env.bind(node.Name, initTy)
	return c.record(node, types.UnitType{}), nil
}

func resolveType(te ast.TypeExpr) (types.Type, error) {
	switch t := te.(type) {
	case *ast.NamedTypeExpr:
		switch t.Name {
		case "i32":
			return types.I32, nil
		case "Bool":
			return types.BoolType{}, nil
		default:
			return nil, diag.NewTypeError(t.Pos(), "unknown type name %q", t.Name)
		}
	case *ast.FunctionTypeExpr:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			pt, err := resolveType(p)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		ret, err := resolveType(t.Ret)
		if err != nil {
			return nil, err
		}
		return types.FunctionType{Ret: ret, Params: params}, nil
	default:
		return nil, diag.NewTypeError(te.Pos(), "unsupported type expression")
	}
}
