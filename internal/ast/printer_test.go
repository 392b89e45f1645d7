package ast_test

import (
	"strings"
	"testing"

	"github.com/1995hnagamin/spacec/internal/ast"
	"github.com/1995hnagamin/spacec/internal/token"
)

func TestNewDefFn(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	a := ast.NewArena()

	retType := a.NewNamedTypeExpr(pos, "i32")
	params := []ast.Param{
		{Name: "x", Type: a.NewNamedTypeExpr(pos, "i32")},
		{Name: "y", Type: a.NewNamedTypeExpr(pos, "i32")},
	}
	body := a.NewBlockExpr(pos, nil)

	fn := a.NewDefFn(pos, "add", params, retType, body)

	if fn.Name != "add" {
		t.Errorf("Name = %q, want add", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Errorf("len(Params) = %d, want 2", len(fn.Params))
	}
	if fn.Pos().Line != 1 {
		t.Errorf("Pos().Line = %d, want 1", fn.Pos().Line)
	}
}

func TestNewLetStmt(t *testing.T) {
	pos := token.Position{Line: 2, Col: 3}
	a := ast.NewArena()

	init := a.NewIntegerLiteral(pos, 42)
	stmt := a.NewLetStmt(pos, "n", init)

	if stmt.Name != "n" {
		t.Errorf("Name = %q, want n", stmt.Name)
	}
	if stmt.Init != ast.Expr(init) {
		t.Error("Init did not round-trip")
	}
}

func TestNewBinaryExpr(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	a := ast.NewArena()

	lhs := a.NewIntegerLiteral(pos, 5)
	rhs := a.NewIntegerLiteral(pos, 3)
	expr := a.NewBinaryExpr(pos, ast.Plus, lhs, rhs)

	if expr.Op != ast.Plus {
		t.Errorf("Op = %v, want Plus", expr.Op)
	}
	if expr.Lhs == nil || expr.Rhs == nil {
		t.Error("expected non-nil operands")
	}
}

func TestNewCallExpr(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	a := ast.NewArena()

	callee := a.NewVarRefExpr(pos, "add")
	args := []ast.Expr{a.NewIntegerLiteral(pos, 1), a.NewIntegerLiteral(pos, 2)}
	call := a.NewCallExpr(pos, callee, args)

	if len(call.Args) != 2 {
		t.Errorf("len(Args) = %d, want 2", len(call.Args))
	}
}

func TestArenaAssignsDistinctIDs(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	a := ast.NewArena()

	n1 := a.NewIntegerLiteral(pos, 1)
	n2 := a.NewIntegerLiteral(pos, 2)

	if n1.ID() == n2.ID() {
		t.Errorf("expected distinct NodeIDs, got %d == %d", n1.ID(), n2.ID())
	}
	if n1.ID() == 0 || n2.ID() == 0 {
		t.Error("NodeID 0 should never be assigned to a real node")
	}
}

func TestPrettyPrint(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	a := ast.NewArena()

	body := a.NewBlockExpr(pos, nil)
	fn := a.NewDefFn(pos, "main", nil, a.NewNamedTypeExpr(pos, "i32"), body)
	tu := a.NewTranslationUnit(pos, []ast.Decl{fn})

	output := ast.PrettyPrint(tu)
	if !strings.Contains(output, "main") {
		t.Errorf("expected %q in output, got %q", "main", output)
	}
	if !strings.Contains(output, "TranslationUnit") {
		t.Errorf("expected TranslationUnit in output, got %q", output)
	}
}

func TestPrettyPrintNested(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	a := ast.NewArena()

	inner := a.NewBinaryExpr(pos, ast.Plus, a.NewIntegerLiteral(pos, 1), a.NewIntegerLiteral(pos, 2))
	outer := a.NewBinaryExpr(pos, ast.Mult, inner, a.NewIntegerLiteral(pos, 3))
	body := a.NewBlockExpr(pos, []ast.Expr{outer})
	fn := a.NewDefFn(pos, "calc", nil, a.NewNamedTypeExpr(pos, "i32"), body)
	tu := a.NewTranslationUnit(pos, []ast.Decl{fn})

	output := ast.PrettyPrint(tu)
	if !strings.Contains(output, "BinaryExpr(+)") {
		t.Errorf("expected BinaryExpr(+) in output, got %q", output)
	}
	if !strings.Contains(output, "BinaryExpr(*)") {
		t.Errorf("expected BinaryExpr(*) in output, got %q", output)
	}
}

func TestPrettyPrintIfExpr(t *testing.T) {
	pos := token.Position{Line: 1, Col: 1}
	a := ast.NewArena()

	ifExpr := a.NewIfExpr(pos, a.NewBoolLiteral(pos, true), a.NewIntegerLiteral(pos, 1), a.NewIntegerLiteral(pos, 2))
	body := a.NewBlockExpr(pos, []ast.Expr{ifExpr})
	fn := a.NewDefFn(pos, "choose", nil, a.NewNamedTypeExpr(pos, "i32"), body)
	tu := a.NewTranslationUnit(pos, []ast.Decl{fn})

	output := ast.PrettyPrint(tu)
	if !strings.Contains(output, "IfExpr") {
		t.Error("expected IfExpr in output")
	}
	if !strings.Contains(output, "BoolLiteral(true)") {
		t.Error("expected BoolLiteral(true) in output")
	}
}
