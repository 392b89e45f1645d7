package sema_test

import (
	"testing"

	"github.com/1995hnagamin/spacec/internal/ast"
	"github.com/1995hnagamin/spacec/internal/lexer"
	"github.com/1995hnagamin/spacec/internal/parser"
	"github.com/1995hnagamin/spacec/internal/sema"
	"github.com/1995hnagamin/spacec/internal/types"
)

func parseCode(t *testing.T, code string) *ast.TranslationUnit {
	t.Helper()
	toks := lexer.LexString(code)
	arena := ast.NewArena()
	tu, err := parser.ParseFile(toks, arena)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return tu
}

func TestCheckFunctionDeclaration(t *testing.T) {
	tu := parseCode(t, `
DefFn add(a: i32, b: i32) -> i32 { a + b }
DefFn main() -> i32 { add(5, 3) }
`)
	if _, err := sema.Check(tu); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckRecordsExpressionTypes(t *testing.T) {
	tu := parseCode(t, `DefFn f() -> i32 { 1 + 2 }`)
	table, err := sema.Check(tu)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	fn := tu.Funcs[0].(*ast.DefFn)
	body := fn.Body.(*ast.BlockExpr)
	sum := body.Stmts[0]

	ty, ok := table.Get(sum)
	if !ok {
		t.Fatal("expected a recorded type for the sum expression")
	}
	if !ty.Equal(types.I32) {
		t.Errorf("type = %v, want i32", ty)
	}
}

func TestCheckUnboundNameFails(t *testing.T) {
	tu := parseCode(t, `DefFn f() -> i32 { y }`)
	_, err := sema.Check(tu)
	if err == nil {
		t.Fatal("expected an UnboundName error")
	}
}

func TestCheckReturnTypeMismatch(t *testing.T) {
	tu := parseCode(t, `DefFn f() -> Bool { 1 }`)
	_, err := sema.Check(tu)
	if err == nil {
		t.Fatal("expected a return-type mismatch error")
	}
}

func TestCheckIfBranchTypeMismatch(t *testing.T) {
	tu := parseCode(t, `DefFn f() -> i32 { If True Then 1 Else False }`)
	_, err := sema.Check(tu)
	if err == nil {
		t.Fatal("expected an error for mismatched If branches")
	}
}

func TestCheckCallArityMismatch(t *testing.T) {
	tu := parseCode(t, `
DefFn add(a: i32, b: i32) -> i32 { a + b }
DefFn main() -> i32 { add(1) }
`)
	_, err := sema.Check(tu)
	if err == nil {
		t.Fatal("expected an arity mismatch error")
	}
}

func TestCheckDirectRecursionAllowed(t *testing.T) {
	tu := parseCode(t, `DefFn fact(n: i32) -> i32 { If n < 1 Then 1 Else n * fact(n - 1) }`)
	if _, err := sema.Check(tu); err != nil {
		t.Fatalf("expected direct recursion to check, got %v", err)
	}
}

func TestCheckSiblingNotVisibleBeforeItsOwnDefinition(t *testing.T) {
	tu := parseCode(t, `
DefFn a() -> i32 { b() }
DefFn b() -> i32 { 1 }
`)
	_, err := sema.Check(tu)
	if err == nil {
		t.Fatal("expected UnboundName: a is checked before b is bound")
	}
}

func TestCheckBlockNonFinalStatementMustBeUnit(t *testing.T) {
	tu := parseCode(t, `DefFn f() -> i32 { 1; 2 }`)
	_, err := sema.Check(tu)
	if err == nil {
		t.Fatal("expected an error: non-final statement 1 has type i32, not Unit")
	}
}

func TestCheckLetBindingVisibleInRestOfBlock(t *testing.T) {
	tu := parseCode(t, `DefFn f() -> i32 { Let x = 1; x }`)
	if _, err := sema.Check(tu); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCheckOctetSeqLiteralIsSliceOfInt8(t *testing.T) {
	tu := parseCode(t, `DefFn f() -> i32 { Let s = Oc "ab"; 0 }`)
	table, err := sema.Check(tu)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	fn := tu.Funcs[0].(*ast.DefFn)
	body := fn.Body.(*ast.BlockExpr)
	let := body.Stmts[0].(*ast.LetStmt)
	ty, ok := table.Get(let.Init)
	if !ok {
		t.Fatal("expected a recorded type for the octet-seq literal")
	}
	want := types.SliceType{Elem: types.IntNType{Width: 8}}
	if !ty.Equal(want) {
		t.Errorf("type = %v, want %v", ty, want)
	}
}
