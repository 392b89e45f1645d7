// Package llvmtext is a concrete ir.Builder that renders a textual,
// LLVM-flavored assembly listing. It satisfies the IR emitter's abstract
// builder contract entirely with a strings.Builder and a handful of
// counters; nothing here talks to a real LLVM library.
package llvmtext

import (
	"fmt"
	"os"
	"strings"

	"github.com/1995hnagamin/spacec/internal/ir"
)

// Generator accumulates one module's worth of textual IR.
type Generator struct {
	moduleName string
	globals    []string
	functions  []*genFunction

	regCounter   int
	blockCounter int
	current      *genBlock
}

// NewGenerator returns an empty Generator. A single Generator emits exactly
// one module, matching the compiler's one-module-per-compilation model.
func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) nextReg(prefix string) string {
	g.regCounter++
	return fmt.Sprintf("%%%s%d", prefix, g.regCounter)
}

func (g *Generator) nextBlockName(prefix string) string {
	g.blockCounter++
	return fmt.Sprintf("%s%d", prefix, g.blockCounter)
}

// irText is implemented by every concrete value this generator produces; it
// supplies the textual operand form an instruction needs to reference it.
type irText interface {
	ir.Value
	text() string
}

type genConst struct {
	ty  ir.Type
	lit string
}

func (c *genConst) Type() ir.Type { return c.ty }
func (c *genConst) text() string  { return c.lit }

type genReg struct {
	ty   ir.Type
	name string // includes leading '%'
}

func (r *genReg) Type() ir.Type { return r.ty }
func (r *genReg) text() string  { return r.name }

type genAlloc struct {
	ty   ir.Type
	name string
}

func (a *genAlloc) Type() ir.Type { return a.ty }
func (a *genAlloc) text() string  { return a.name }

type genGlobal struct {
	ty       ir.Type
	name     string
	bytesLen int
}

func (gl *genGlobal) Type() ir.Type { return gl.ty }
func (gl *genGlobal) text() string {
	return fmt.Sprintf("getelementptr inbounds ([%d x i8], [%d x i8]* %s, i32 0, i32 0)",
		gl.bytesLen, gl.bytesLen, gl.name)
}

type genStruct struct {
	ty      ir.Type
	members []irText
}

func (s *genStruct) Type() ir.Type { return s.ty }
func (s *genStruct) text() string {
	parts := make([]string, len(s.members))
	for i, m := range s.members {
		parts[i] = fmt.Sprintf("%s %s", m.Type(), m.text())
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

type phiEdge struct {
	val  ir.Value
	from ir.Block
}

type genPhi struct {
	ty       ir.Type
	reg      string
	block    *genBlock
	lineIdx  int
	incoming []phiEdge
}

func (p *genPhi) Type() ir.Type { return p.ty }
func (p *genPhi) text() string  { return p.reg }

func (p *genPhi) AddIncoming(v ir.Value, from ir.Block) {
	p.incoming = append(p.incoming, phiEdge{val: v, from: from})
	parts := make([]string, len(p.incoming))
	for i, e := range p.incoming {
		parts[i] = fmt.Sprintf("[ %s, %%%s ]", operand(e.val), e.from.Name())
	}
	p.block.lines[p.lineIdx] = fmt.Sprintf("  %s = phi %s %s", p.reg, p.ty, strings.Join(parts, ", "))
}

type genBlock struct {
	name       string
	lines      []string
	terminated bool
}

func (b *genBlock) Name() string { return b.name }

type genFunction struct {
	name       string
	ty         ir.FunctionType
	params     []ir.Value
	paramNames []string
	hasBody    bool
	entry      *genBlock
	blocks     []*genBlock
}

func (f *genFunction) Type() ir.Type      { return f.ty }
func (f *genFunction) Name() string       { return f.name }
func (f *genFunction) Params() []ir.Value { return f.params }
func (f *genFunction) text() string       { return "@" + f.name }

type genModule struct{ name string }

func (m *genModule) Name() string { return m.name }

func operand(v ir.Value) string {
	if t, ok := v.(irText); ok {
		return t.text()
	}
	return "<unrepresentable>"
}

// MakeModule records the module name; the generator holds only one module
// at a time, so subsequent calls simply rename it.
func (g *Generator) MakeModule(name string) ir.Module {
	g.moduleName = name
	return &genModule{name: name}
}

func (g *Generator) DeclareFunction(mod ir.Module, name string, fnType ir.FunctionType, linkage ir.Linkage) ir.Function {
	params := make([]ir.Value, len(fnType.Params))
	paramNames := make([]string, len(fnType.Params))
	for i, pty := range fnType.Params {
		n := fmt.Sprintf("%%%s.arg%d", name, i)
		paramNames[i] = n
		params[i] = &genReg{ty: pty, name: n}
	}
	fn := &genFunction{name: name, ty: fnType, params: params, paramNames: paramNames}
	g.functions = append(g.functions, fn)
	return fn
}

func (g *Generator) CreateBlock(parent ir.Function, name string) ir.Block {
	b := &genBlock{name: g.nextBlockName(name)}
	if parent != nil {
		fn := parent.(*genFunction)
		fn.hasBody = true
		if fn.entry == nil {
			fn.entry = b
		}
		fn.blocks = append(fn.blocks, b)
	}
	return b
}

func (g *Generator) AttachTo(fn ir.Function, b ir.Block) {
	f := fn.(*genFunction)
	blk := b.(*genBlock)
	f.blocks = append(f.blocks, blk)
}

func (g *Generator) PositionAt(b ir.Block) { g.current = b.(*genBlock) }

func (g *Generator) CurrentBlock() ir.Block {
	if g.current == nil {
		return nil
	}
	return g.current
}

func (g *Generator) emit(line string) {
	g.current.lines = append(g.current.lines, "  "+line)
}

func (g *Generator) ConstInt(ty ir.Type, value int64) ir.Value {
	return &genConst{ty: ty, lit: fmt.Sprintf("%d", value)}
}

func (g *Generator) ConstBool(value bool) ir.Value {
	lit := "0"
	if value {
		lit = "1"
	}
	return &genConst{ty: ir.BoolType{}, lit: lit}
}

func (g *Generator) binop(op string, lhs, rhs ir.Value) ir.Value {
	reg := g.nextReg("r")
	g.emit(fmt.Sprintf("%s = %s %s %s, %s", reg, op, lhs.Type(), operand(lhs), operand(rhs)))
	return &genReg{ty: lhs.Type(), name: reg}
}

func (g *Generator) Add(lhs, rhs ir.Value) ir.Value  { return g.binop("add", lhs, rhs) }
func (g *Generator) Sub(lhs, rhs ir.Value) ir.Value  { return g.binop("sub", lhs, rhs) }
func (g *Generator) Mul(lhs, rhs ir.Value) ir.Value  { return g.binop("mul", lhs, rhs) }
func (g *Generator) SDiv(lhs, rhs ir.Value) ir.Value { return g.binop("sdiv", lhs, rhs) }

func (g *Generator) icmp(pred string, lhs, rhs ir.Value) ir.Value {
	reg := g.nextReg("r")
	g.emit(fmt.Sprintf("%s = icmp %s %s %s, %s", reg, pred, lhs.Type(), operand(lhs), operand(rhs)))
	return &genReg{ty: ir.BoolType{}, name: reg}
}

func (g *Generator) ICmpEq(lhs, rhs ir.Value) ir.Value  { return g.icmp("eq", lhs, rhs) }
func (g *Generator) ICmpSlt(lhs, rhs ir.Value) ir.Value { return g.icmp("slt", lhs, rhs) }
func (g *Generator) ICmpSgt(lhs, rhs ir.Value) ir.Value { return g.icmp("sgt", lhs, rhs) }

func (g *Generator) Br(target ir.Block) {
	g.emit(fmt.Sprintf("br label %%%s", target.Name()))
	g.current.terminated = true
}

func (g *Generator) CondBr(cond ir.Value, then, els ir.Block) {
	g.emit(fmt.Sprintf("br i1 %s, label %%%s, label %%%s", operand(cond), then.Name(), els.Name()))
	g.current.terminated = true
}

func (g *Generator) Ret(value ir.Value) {
	if _, isVoid := value.Type().(ir.VoidType); isVoid {
		g.emit("ret void")
	} else {
		g.emit(fmt.Sprintf("ret %s %s", value.Type(), operand(value)))
	}
	g.current.terminated = true
}

func (g *Generator) Phi(ty ir.Type, name string) ir.PhiNode {
	reg := g.nextReg("phi")
	idx := len(g.current.lines)
	g.current.lines = append(g.current.lines, "")
	return &genPhi{ty: ty, reg: reg, block: g.current, lineIdx: idx}
}

func (g *Generator) Call(fn ir.Function, args []ir.Value, name string) ir.Value {
	f := fn.(*genFunction)
	argParts := make([]string, len(args))
	for i, a := range args {
		argParts[i] = fmt.Sprintf("%s %s", a.Type(), operand(a))
	}
	retTy := f.ty.Ret
	if _, isVoid := retTy.(ir.VoidType); isVoid {
		g.emit(fmt.Sprintf("call void @%s(%s)", f.name, strings.Join(argParts, ", ")))
		return &genConst{ty: retTy, lit: ""}
	}
	reg := g.nextReg("call")
	g.emit(fmt.Sprintf("%s = call %s @%s(%s)", reg, retTy, f.name, strings.Join(argParts, ", ")))
	return &genReg{ty: retTy, name: reg}
}

func (g *Generator) AllocaInEntry(fn ir.Function, ty ir.Type, name string) ir.AllocInst {
	f := fn.(*genFunction)
	reg := fmt.Sprintf("%%%s.addr", name)
	line := fmt.Sprintf("  %s = alloca %s", reg, ty)
	f.entry.lines = append([]string{line}, f.entry.lines...)
	return &genAlloc{ty: ty, name: reg}
}

func (g *Generator) Load(alloc ir.AllocInst, name string) ir.Value {
	a := alloc.(*genAlloc)
	reg := g.nextReg("r")
	g.emit(fmt.Sprintf("%s = load %s, %s* %s", reg, a.ty, a.ty, a.name))
	return &genReg{ty: a.ty, name: reg}
}

func (g *Generator) Store(value ir.Value, alloc ir.AllocInst) {
	a := alloc.(*genAlloc)
	g.emit(fmt.Sprintf("store %s %s, %s* %s", value.Type(), operand(value), a.ty, a.name))
}

func (g *Generator) MakeGlobalPrivateBytes(mod ir.Module, bytes []byte, name string) ir.GlobalVar {
	globalName := fmt.Sprintf("@.%s", name)
	escaped := make([]byte, 0, len(bytes)*4)
	for _, b := range bytes {
		escaped = append(escaped, []byte(fmt.Sprintf("\\%02X", b))...)
	}
	g.globals = append(g.globals, fmt.Sprintf(
		"%s = private unnamed_addr constant [%d x i8] c\"%s\", align 1",
		globalName, len(bytes), escaped))
	return &genGlobal{ty: ir.PointerType{Elem: ir.IntType{Width: 8}}, name: globalName, bytesLen: len(bytes)}
}

func (g *Generator) MakeConstStruct(members []ir.Value) ir.Constant {
	tys := make([]ir.Type, len(members))
	texts := make([]irText, len(members))
	for i, m := range members {
		tys[i] = m.Type()
		texts[i] = m.(irText)
	}
	return &genStruct{ty: ir.StructType{Members: tys}, members: texts}
}

// VerifyFunction checks that every block of a defined function has had a
// terminator emitted. It does not check that the terminator is the block's
// only one or its last instruction.
func (g *Generator) VerifyFunction(fn ir.Function) error {
	f := fn.(*genFunction)
	if !f.hasBody {
		return nil
	}
	for _, b := range f.blocks {
		if !b.terminated {
			return fmt.Errorf("llvmtext: block %%%s in function %s has no terminator", b.name, f.name)
		}
	}
	return nil
}

// render assembles the accumulated module into its final textual form.
func (g *Generator) render(moduleName string) string {
	var out strings.Builder
	fmt.Fprintf(&out, "; ModuleID = '%s'\n\n", moduleName)
	for _, gl := range g.globals {
		fmt.Fprintln(&out, gl)
	}
	if len(g.globals) > 0 {
		out.WriteString("\n")
	}
	for _, fn := range g.functions {
		if !fn.hasBody {
			fmt.Fprintf(&out, "declare %s @%s(%s)\n", fn.ty.Ret, fn.name, paramList(fn))
			continue
		}
		fmt.Fprintf(&out, "define %s @%s(%s) {\n", fn.ty.Ret, fn.name, paramList(fn))
		for _, b := range fn.blocks {
			fmt.Fprintf(&out, "%s:\n", b.name)
			for _, line := range b.lines {
				fmt.Fprintln(&out, line)
			}
		}
		out.WriteString("}\n\n")
	}
	return out.String()
}

// EmitObject renders the accumulated module as textual IR and writes it to
// path. There is no real object-file backend in scope; this text is the
// compiler's observable output.
func (g *Generator) EmitObject(mod ir.Module, path string) error {
	return os.WriteFile(path, []byte(g.render(mod.Name())), 0o644)
}

func paramList(fn *genFunction) string {
	parts := make([]string, len(fn.ty.Params))
	for i, p := range fn.ty.Params {
		if i < len(fn.paramNames) {
			parts[i] = fmt.Sprintf("%s %s", p, fn.paramNames[i])
		} else {
			parts[i] = p.String()
		}
	}
	return strings.Join(parts, ", ")
}

// Text returns the module rendered so far without writing to disk; the
// CLI's -print-ir flag, the REPL and tests use it to inspect the listing.
func (g *Generator) Text() string {
	return g.render(g.moduleName)
}
