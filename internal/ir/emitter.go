package ir

import (
	"fmt"

	"github.com/1995hnagamin/spacec/internal/ast"
	"github.com/1995hnagamin/spacec/internal/diag"
	"github.com/1995hnagamin/spacec/internal/sema"
)

// valueScope is one level of the value environment: a flat name-to-Value map.
type valueScope map[string]Value

// valueEnv mirrors the type checker's scope stack, but over IR values
// instead of types. It is pushed on entering a function body or a block
// expression and popped on exit, with lookup proceeding innermost-first.
type valueEnv struct {
	scopes []valueScope
}

func newValueEnv() *valueEnv {
	return &valueEnv{scopes: []valueScope{{}}}
}

func (e *valueEnv) push() { e.scopes = append(e.scopes, valueScope{}) }
func (e *valueEnv) pop()  { e.scopes = e.scopes[:len(e.scopes)-1] }

func (e *valueEnv) bind(name string, v Value) {
	e.scopes[len(e.scopes)-1][name] = v
}

func (e *valueEnv) lookup(name string) (Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

type emitter struct {
	b     Builder
	mod   Module
	table *sema.Table
	env   *valueEnv

	blockCounter int
}

// Emit lowers a type-checked translation unit through b, producing a
// Module. table must be the side-table sema.Check returned for tu.
func Emit(tu *ast.TranslationUnit, table *sema.Table, b Builder, moduleName string) (Module, error) {
	e := &emitter{
		b:     b,
		mod:   b.MakeModule(moduleName),
		table: table,
		env:   newValueEnv(),
	}
	for _, decl := range tu.Funcs {
		if err := e.emitDecl(decl); err != nil {
			return nil, err
		}
	}
	return e.mod, nil
}

func (e *emitter) emitDecl(decl ast.Decl) error {
	switch d := decl.(type) {
	case *ast.DefFn:
		return e.emitDefFn(d)
	case *ast.DeclStmt:
		return e.emitExternDecl(d)
	default:
		return diag.NewIREmitError(decl.Pos(), "unsupported top-level declaration")
	}
}

func (e *emitter) emitExternDecl(d *ast.DeclStmt) error {
	ty, err := lowerTypeExpr(d.Type)
	if err != nil {
		return err
	}
	fnType, ok := ty.(FunctionType)
	if !ok {
		return diag.NewIREmitError(d.Pos(), "Decl %q must name a function type", d.Name)
	}
	fn := e.b.DeclareFunction(e.mod, d.Name, fnType, ExternalLinkage)
	e.env.bind(d.Name, fn)
	return nil
}

func (e *emitter) emitDefFn(fn *ast.DefFn) error {
	sig, ok := e.table.Get(fn)
	if !ok {
		return diag.NewIREmitError(fn.Pos(), "function %q has no recorded signature", fn.Name)
	}
	fnType, err := LowerType(sig)
	if err != nil {
		return err
	}
	ft, ok := fnType.(FunctionType)
	if !ok {
		return diag.NewIREmitError(fn.Pos(), "function %q: expected a function type", fn.Name)
	}

	irFn := e.b.DeclareFunction(e.mod, fn.Name, ft, ExternalLinkage)
	e.env.bind(fn.Name, irFn)

	entry := e.b.CreateBlock(irFn, "entry")
	e.b.PositionAt(entry)

	e.env.push()
	params := irFn.Params()
	for i, p := range fn.Params {
		e.env.bind(p.Name, params[i])
	}

	body, ok := fn.Body.(*ast.BlockExpr)
	if !ok {
		e.env.pop()
		return diag.NewIREmitError(fn.Pos(), "function %q: body must be a block", fn.Name)
	}
	result, err := e.emitBlockBody(body, irFn)
	e.env.pop()
	if err != nil {
		return err
	}
	e.b.Ret(result)

	if err := e.b.VerifyFunction(irFn); err != nil {
		return diag.NewIREmitError(fn.Pos(), "%s", err)
	}
	return nil
}

// emitBlockBody lowers body's statements directly into the current
// insertion point without creating a fresh block; used for a function's
// entry block, which is already freshly created by emitDefFn.
func (e *emitter) emitBlockBody(body *ast.BlockExpr, fn Function) (Value, error) {
	if len(body.Stmts) == 0 {
		return unitValue{}, nil
	}
	e.env.push()
	defer e.env.pop()

	var last Value
	for _, stmt := range body.Stmts {
		v, err := e.emitExpr(stmt, fn)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (e *emitter) nextBlockName(base string) string {
	e.blockCounter++
	return fmt.Sprintf("%s%d", base, e.blockCounter)
}

func (e *emitter) emitExpr(expr ast.Expr, fn Function) (Value, error) {
	switch node := expr.(type) {
	case *ast.IntegerLiteral:
		return e.b.ConstInt(IntType{Width: 32}, int64(node.Value)), nil
	case *ast.BoolLiteral:
		return e.b.ConstBool(node.Value), nil
	case *ast.OctetSeqLiteral:
		return e.emitOctetSeqLiteral(node)
	case *ast.VarRefExpr:
		return e.emitVarRef(node)
	case *ast.BinaryExpr:
		return e.emitBinaryExpr(node, fn)
	case *ast.BlockExpr:
		return e.emitBlockExpr(node, fn)
	case *ast.CallExpr:
		return e.emitCallExpr(node, fn)
	case *ast.IfExpr:
		return e.emitIfExpr(node, fn)
	case *ast.LetStmt:
		return e.emitLetStmt(node, fn)
	case *ast.DeclStmt:
		if err := e.emitExternDecl(node); err != nil {
			return nil, err
		}
		return unitValue{}, nil
	default:
		return nil, diag.NewIREmitError(expr.Pos(), "unsupported expression node in IR emitter")
	}
}

func (e *emitter) emitVarRef(node *ast.VarRefExpr) (Value, error) {
	v, ok := e.env.lookup(node.Name)
	if !ok {
		return nil, diag.NewIREmitError(node.Pos(), "unbound name %q reached the IR emitter", node.Name)
	}
	if slot, ok := v.(letSlot); ok {
		return e.b.Load(slot.AllocInst, node.Name), nil
	}
	return v, nil
}

// letSlot marks a value-environment entry bound by Let: the stack slot
// AllocaInEntry returned for it. Only such entries are loaded on reference;
// functions and parameters are used directly.
type letSlot struct{ AllocInst }

func (e *emitter) emitBinaryExpr(node *ast.BinaryExpr, fn Function) (Value, error) {
	lhs, err := e.emitExpr(node.Lhs, fn)
	if err != nil {
		return nil, err
	}
	rhs, err := e.emitExpr(node.Rhs, fn)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case ast.Plus:
		return e.b.Add(lhs, rhs), nil
	case ast.Minus:
		return e.b.Sub(lhs, rhs), nil
	case ast.Mult:
		return e.b.Mul(lhs, rhs), nil
	case ast.Div:
		return e.b.SDiv(lhs, rhs), nil
	case ast.Eq:
		return e.b.ICmpEq(lhs, rhs), nil
	case ast.Lt:
		return e.b.ICmpSlt(lhs, rhs), nil
	case ast.Gt:
		return e.b.ICmpSgt(lhs, rhs), nil
	default:
		return nil, diag.NewIREmitError(node.Pos(), "unknown operator %s", node.Op)
	}
}

// emitBlockExpr lowers a nested BlockExpr. Per the emitter's lowering rule it
// always creates a fresh block and branches into it, even when the block
// immediately follows a block with no other predecessors; eliding the extra
// block in that case is a valid optimization this emitter does not perform.
func (e *emitter) emitBlockExpr(node *ast.BlockExpr, fn Function) (Value, error) {
	fresh := e.b.CreateBlock(fn, e.nextBlockName("block"))
	e.b.Br(fresh)
	e.b.PositionAt(fresh)

	e.env.push()
	defer e.env.pop()

	if len(node.Stmts) == 0 {
		return unitValue{}, nil
	}
	var last Value
	for _, stmt := range node.Stmts {
		v, err := e.emitExpr(stmt, fn)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (e *emitter) emitCallExpr(node *ast.CallExpr, fn Function) (Value, error) {
	calleeVal, err := e.emitExpr(node.Callee, fn)
	if err != nil {
		return nil, err
	}
	callee, ok := calleeVal.(Function)
	if !ok {
		return nil, diag.NewIREmitError(node.Pos(), "call target did not lower to a function")
	}
	args := make([]Value, len(node.Args))
	for i, a := range node.Args {
		v, err := e.emitExpr(a, fn)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return e.b.Call(callee, args, e.nextBlockName("call")), nil
}

func (e *emitter) emitIfExpr(node *ast.IfExpr, fn Function) (Value, error) {
	cond, err := e.emitExpr(node.Cond, fn)
	if err != nil {
		return nil, err
	}

	resultTy, ok := e.table.Get(node)
	if !ok {
		return nil, diag.NewIREmitError(node.Pos(), "If expression has no recorded type")
	}
	irResultTy, err := LowerType(resultTy)
	if err != nil {
		return nil, err
	}

	thenBlock := e.b.CreateBlock(fn, e.nextBlockName("then"))
	elseBlock := e.b.CreateBlock(nil, e.nextBlockName("else"))
	mergeBlock := e.b.CreateBlock(nil, e.nextBlockName("merge"))

	e.b.CondBr(cond, thenBlock, elseBlock)

	e.b.PositionAt(thenBlock)
	thenVal, err := e.emitExpr(node.Then, fn)
	if err != nil {
		return nil, err
	}
	thenEnd := e.b.CurrentBlock()
	e.b.Br(mergeBlock)

	e.b.AttachTo(fn, elseBlock)
	e.b.PositionAt(elseBlock)
	elseVal, err := e.emitExpr(node.Else, fn)
	if err != nil {
		return nil, err
	}
	elseEnd := e.b.CurrentBlock()
	e.b.Br(mergeBlock)

	e.b.AttachTo(fn, mergeBlock)
	e.b.PositionAt(mergeBlock)
	phi := e.b.Phi(irResultTy, e.nextBlockName("phi"))
	phi.AddIncoming(thenVal, thenEnd)
	phi.AddIncoming(elseVal, elseEnd)
	return phi, nil
}

func (e *emitter) emitLetStmt(node *ast.LetStmt, fn Function) (Value, error) {
	initVal, err := e.emitExpr(node.Init, fn)
	if err != nil {
		return nil, err
	}
	ty, ok := e.table.Get(node.Init)
	if !ok {
		return nil, diag.NewIREmitError(node.Pos(), "Let %q: initializer has no recorded type", node.Name)
	}
	irTy, err := LowerType(ty)
	if err != nil {
		return nil, err
	}
	slot := e.b.AllocaInEntry(fn, irTy, node.Name)
	e.b.Store(initVal, slot)
	e.env.bind(node.Name, letSlot{slot})
	return unitValue{}, nil
}

func (e *emitter) emitOctetSeqLiteral(node *ast.OctetSeqLiteral) (Value, error) {
	g := e.b.MakeGlobalPrivateBytes(e.mod, node.Bytes, e.nextBlockName("oc"))
	length := e.b.ConstInt(IntType{Width: 32}, int64(len(node.Bytes)))
	return e.b.MakeConstStruct([]Value{g, length}), nil
}

// unitValue is the IR value of an expression whose checked type is Unit
// (Let, Decl, an empty block). It carries no runtime representation.
type unitValue struct{}

func (unitValue) Type() Type { return VoidType{} }

// lowerTypeExpr mirrors sema's type-expression resolution but produces an
// ir.Type directly, since the emitter needs function signatures for extern
// Decls that the checker only records as Unit (the type of the declaration
// statement itself, not the type it declares).
func lowerTypeExpr(te ast.TypeExpr) (Type, error) {
	switch t := te.(type) {
	case *ast.NamedTypeExpr:
		switch t.Name {
		case "i32":
			return IntType{Width: 32}, nil
		case "Bool":
			return BoolType{}, nil
		default:
			return nil, diag.NewIREmitError(t.Pos(), "unknown type name %q", t.Name)
		}
	case *ast.FunctionTypeExpr:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			pt, err := lowerTypeExpr(p)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		ret, err := lowerTypeExpr(t.Ret)
		if err != nil {
			return nil, err
		}
		return FunctionType{Ret: ret, Params: params}, nil
	default:
		return nil, diag.NewIREmitError(te.Pos(), "unsupported type expression")
	}
}
