package ir

import (
	"fmt"

	"github.com/lixenwraith/luxengine/yang/ast"
	"github.com/lixenwraith/luxengine/yang/types"
)

// Lower compiles a checked Program (every node already annotated with
// a types.Type by yang/check) into a Module. Lower assumes the
// program passed check.Check with zero diagnostics; callers must not
// invoke it otherwise.
func Lower(prog *ast.Program) *Module {
	m := &Module{}
	for _, g := range prog.Globals {
		m.Globals = append(m.Globals, Global{Name: g.Name, Type: g.Type()})
	}
	globalInitFn := lowerGlobalInit(prog.Globals)
	for i := range m.Globals {
		m.Globals[i].Init = globalInitFn
	}
	for _, f := range prog.Functions {
		m.Functions = append(m.Functions, lowerFunc(f))
	}
	return m
}

// lowerGlobalInit builds the single !global_init function that
// evaluates every global initialiser in declaration order and writes
// it into the global struct (spec.md §4.6's !global_alloc contract).
func lowerGlobalInit(globals []*ast.VarDecl) *Function {
	fn := &Function{Name: "!global_init", Ret: types.VoidType()}
	l := &lowerer{fn: fn, locals: newScopeStack()}
	for _, g := range globals {
		if g.Init == nil {
			continue
		}
		r := l.expr(g.Init)
		l.emit(Instr{Op: OpSetGlobal, A: r, Str: g.Name})
	}
	l.emit(Instr{Op: OpReturnVoid})
	fn.NumRegs = int(l.nextReg)
	return fn
}

func lowerFunc(f *ast.FuncDecl) *Function {
	fn := &Function{Name: f.Name, Export: f.Export, Ret: f.Ret}
	for _, p := range f.Params {
		fn.Params = append(fn.Params, p.Type)
	}
	l := &lowerer{fn: fn, locals: newScopeStack()}
	l.locals.push()
	for _, p := range f.Params {
		r := l.newReg()
		l.locals.declare(p.Name, r)
		fn.ParamReg = append(fn.ParamReg, r)
	}
	l.block(f.Body)
	l.locals.pop()
	if f.Ret.IsVoid() {
		l.emit(Instr{Op: OpReturnVoid})
	}
	fn.NumRegs = int(l.nextReg)
	return fn
}

type scopeStack struct{ frames []map[string]Reg }

func newScopeStack() *scopeStack { return &scopeStack{} }

func (s *scopeStack) push() { s.frames = append(s.frames, map[string]Reg{}) }
func (s *scopeStack) pop()  { s.frames = s.frames[:len(s.frames)-1] }

func (s *scopeStack) declare(name string, r Reg) {
	s.frames[len(s.frames)-1][name] = r
}

func (s *scopeStack) lookup(name string) (Reg, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if r, ok := s.frames[i][name]; ok {
			return r, true
		}
	}
	return 0, false
}

// lowerer holds the per-function state of the lowering walk: the
// instruction buffer, register/label counters, the lexical scope
// stack, and the label pair each enclosing loop exposes to break and
// continue.
type lowerer struct {
	fn      *Function
	locals  *scopeStack
	nextReg Reg
	nextLbl int
	loops   []loopLabels
}

type loopLabels struct{ brk, cont string }

func (l *lowerer) newReg() Reg {
	r := l.nextReg
	l.nextReg++
	return r
}

func (l *lowerer) newLabel(prefix string) string {
	name := fmt.Sprintf("%s%d", prefix, l.nextLbl)
	l.nextLbl++
	return name
}

func (l *lowerer) emit(in Instr) { l.fn.Code = append(l.fn.Code, in) }

func (l *lowerer) block(b *ast.Block) {
	l.locals.push()
	for _, s := range b.Statements {
		l.stmt(s)
	}
	l.locals.pop()
}

// stmtAsBlock lowers a statement that may or may not be a *ast.Block,
// wrapping bare statements in their own scope frame.
func (l *lowerer) stmtAsBlock(n ast.Node) {
	if b, ok := n.(*ast.Block); ok {
		l.block(b)
		return
	}
	l.locals.push()
	l.stmt(n)
	l.locals.pop()
}

func (l *lowerer) stmt(n ast.Node) {
	switch s := n.(type) {
	case *ast.VarDecl:
		r := l.newReg()
		if s.Init != nil {
			v := l.expr(s.Init)
			l.emit(Instr{Op: OpMove, Dst: r, A: v})
		}
		l.locals.declare(s.Name, r)
	case *ast.ExprStmt:
		l.expr(s.Expr)
	case *ast.Block:
		l.block(s)
	case *ast.IfStmt:
		l.lowerIf(s)
	case *ast.ForStmt:
		l.lowerFor(s)
	case *ast.WhileStmt:
		l.lowerWhile(s)
	case *ast.DoWhileStmt:
		l.lowerDoWhile(s)
	case *ast.BreakStmt:
		l.emit(Instr{Op: OpJump, Str: l.loops[len(l.loops)-1].brk})
	case *ast.ContinueStmt:
		l.emit(Instr{Op: OpJump, Str: l.loops[len(l.loops)-1].cont})
	case *ast.ReturnStmt:
		if s.Value == nil {
			l.emit(Instr{Op: OpReturnVoid})
			return
		}
		r := l.expr(s.Value)
		l.emit(Instr{Op: OpReturn, A: r})
	}
}

func (l *lowerer) lowerIf(s *ast.IfStmt) {
	cond := l.expr(s.Cond)
	elseLbl := l.newLabel("if.else")
	endLbl := l.newLabel("if.end")
	l.emit(Instr{Op: OpJumpIfZero, A: cond, Str: elseLbl})
	l.stmtAsBlock(s.Then)
	if s.Else != nil {
		l.emit(Instr{Op: OpJump, Str: endLbl})
		l.emit(Instr{Op: OpLabel, Str: elseLbl})
		l.stmtAsBlock(s.Else)
		l.emit(Instr{Op: OpLabel, Str: endLbl})
	} else {
		l.emit(Instr{Op: OpLabel, Str: elseLbl})
	}
}

func (l *lowerer) lowerFor(s *ast.ForStmt) {
	l.locals.push()
	if s.Init != nil {
		if decl, ok := s.Init.(*ast.VarDecl); ok {
			l.stmt(decl)
		} else {
			l.expr(s.Init)
		}
	}
	condLbl := l.newLabel("for.cond")
	postLbl := l.newLabel("for.post")
	endLbl := l.newLabel("for.end")
	l.emit(Instr{Op: OpLabel, Str: condLbl})
	if s.Cond != nil {
		cond := l.expr(s.Cond)
		l.emit(Instr{Op: OpJumpIfZero, A: cond, Str: endLbl})
	}
	l.loops = append(l.loops, loopLabels{brk: endLbl, cont: postLbl})
	l.stmtAsBlock(s.Body)
	l.loops = l.loops[:len(l.loops)-1]
	l.emit(Instr{Op: OpLabel, Str: postLbl})
	if s.Post != nil {
		l.expr(s.Post)
	}
	l.emit(Instr{Op: OpJump, Str: condLbl})
	l.emit(Instr{Op: OpLabel, Str: endLbl})
	l.locals.pop()
}

func (l *lowerer) lowerWhile(s *ast.WhileStmt) {
	condLbl := l.newLabel("while.cond")
	endLbl := l.newLabel("while.end")
	l.emit(Instr{Op: OpLabel, Str: condLbl})
	cond := l.expr(s.Cond)
	l.emit(Instr{Op: OpJumpIfZero, A: cond, Str: endLbl})
	l.loops = append(l.loops, loopLabels{brk: endLbl, cont: condLbl})
	l.stmtAsBlock(s.Body)
	l.loops = l.loops[:len(l.loops)-1]
	l.emit(Instr{Op: OpJump, Str: condLbl})
	l.emit(Instr{Op: OpLabel, Str: endLbl})
}

func (l *lowerer) lowerDoWhile(s *ast.DoWhileStmt) {
	bodyLbl := l.newLabel("do.body")
	condLbl := l.newLabel("do.cond")
	endLbl := l.newLabel("do.end")
	l.emit(Instr{Op: OpLabel, Str: bodyLbl})
	l.loops = append(l.loops, loopLabels{brk: endLbl, cont: condLbl})
	l.stmtAsBlock(s.Body)
	l.loops = l.loops[:len(l.loops)-1]
	l.emit(Instr{Op: OpLabel, Str: condLbl})
	cond := l.expr(s.Cond)
	l.emit(Instr{Op: OpJumpIfZero, A: cond, Str: endLbl})
	l.emit(Instr{Op: OpJump, Str: bodyLbl})
	l.emit(Instr{Op: OpLabel, Str: endLbl})
}

func (l *lowerer) expr(n ast.Node) Reg {
	switch e := n.(type) {
	case *ast.IntLiteral:
		r := l.newReg()
		l.emit(Instr{Op: OpConstInt, Dst: r, IntVal: e.Value, Type: e.Type()})
		return r
	case *ast.WorldLiteral:
		r := l.newReg()
		l.emit(Instr{Op: OpConstWorld, Dst: r, WorldVal: e.Value, Type: e.Type()})
		return r
	case *ast.Ident:
		if r, ok := l.locals.lookup(e.Name); ok {
			return r
		}
		r := l.newReg()
		l.emit(Instr{Op: OpGetGlobal, Dst: r, Str: e.Name, Type: e.Type()})
		return r
	case *ast.BinaryOp:
		return l.lowerBinary(e)
	case *ast.UnaryOp:
		a := l.expr(e.Operand)
		r := l.newReg()
		l.emit(Instr{Op: OpUnary, Dst: r, A: a, Str: e.Op, Type: e.Type()})
		return r
	case *ast.FoldOp:
		a := l.expr(e.Operand)
		r := l.newReg()
		l.emit(Instr{Op: OpFold, Dst: r, A: a, Str: e.Op, Type: e.Type()})
		return r
	case *ast.Ternary:
		return l.lowerTernary(e)
	case *ast.Cast:
		a := l.expr(e.Operand)
		r := l.newReg()
		if e.ToInt {
			l.emit(Instr{Op: OpCastToInt, Dst: r, A: a, Type: e.Type()})
		} else {
			l.emit(Instr{Op: OpCastToWorld, Dst: r, A: a, Type: e.Type()})
		}
		return r
	case *ast.VectorConstruct:
		elems := make([]Reg, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = l.expr(el)
		}
		r := l.newReg()
		l.emit(Instr{Op: OpVectorConstruct, Dst: r, Args: elems, Type: e.Type()})
		return r
	case *ast.VectorIndex:
		v := l.expr(e.Vector)
		idx := l.expr(e.Index)
		r := l.newReg()
		l.emit(Instr{Op: OpVectorIndex, Dst: r, A: v, B: idx, Type: e.Type()})
		return r
	case *ast.Call:
		name := e.Callee.(*ast.Ident).Name
		args := make([]Reg, len(e.Args))
		for i, a := range e.Args {
			args[i] = l.expr(a)
		}
		r := l.newReg()
		l.emit(Instr{Op: OpCall, Dst: r, Str: name, Args: args, Type: e.Type()})
		return r
	case *ast.Assign:
		return l.lowerAssign(e)
	default:
		panic(fmt.Sprintf("ir: unhandled expression node %T", n))
	}
}

// lowerBinary implements spec.md §4.6's short-circuit rule for &&/||
// (scalar LHS only) and lowers every other binary operator, including
// vector-vs-scalar broadcast and vector &&/||, as a single VM-level
// binary op whose element-wise semantics live in yang/vm.
func (l *lowerer) lowerBinary(e *ast.BinaryOp) Reg {
	if (e.Op == "&&" || e.Op == "||") && e.Left.Type().IsScalar() {
		left := l.expr(e.Left)
		res := l.newReg()
		l.emit(Instr{Op: OpMove, Dst: res, A: left})
		shortLbl := l.newLabel("sc.short")
		endLbl := l.newLabel("sc.end")
		if e.Op == "&&" {
			// && short-circuits on a falsy LHS: res already holds left (0).
			l.emit(Instr{Op: OpJumpIfZero, A: left, Str: shortLbl})
		} else {
			// || short-circuits on a truthy LHS: res already holds left.
			// There is no jump-if-nonzero instruction, so branch on the
			// logical negation of left instead.
			notLeft := l.newReg()
			l.emit(Instr{Op: OpUnary, Dst: notLeft, A: left, Str: "!"})
			l.emit(Instr{Op: OpJumpIfZero, A: notLeft, Str: shortLbl})
		}
		right := l.expr(e.Right)
		l.emit(Instr{Op: OpBinary, Dst: res, A: left, B: right, Str: e.Op, Type: e.Type()})
		l.emit(Instr{Op: OpJump, Str: endLbl})
		l.emit(Instr{Op: OpLabel, Str: shortLbl})
		l.emit(Instr{Op: OpLabel, Str: endLbl})
		return res
	}
	a := l.expr(e.Left)
	b := l.expr(e.Right)
	r := l.newReg()
	l.emit(Instr{Op: OpBinary, Dst: r, A: a, B: b, Str: e.Op, Type: e.Type()})
	return r
}

// lowerTernary implements spec.md §4.6: scalar condition short-
// circuits via branch+phi-as-move; vector condition lowers to an
// unconditional OpSelect evaluated element-wise by the VM.
func (l *lowerer) lowerTernary(e *ast.Ternary) Reg {
	cond := l.expr(e.Cond)
	if e.Cond.Type().IsScalar() {
		res := l.newReg()
		elseLbl := l.newLabel("tern.else")
		endLbl := l.newLabel("tern.end")
		l.emit(Instr{Op: OpJumpIfZero, A: cond, Str: elseLbl})
		thenV := l.expr(e.Then)
		l.emit(Instr{Op: OpMove, Dst: res, A: thenV})
		l.emit(Instr{Op: OpJump, Str: endLbl})
		l.emit(Instr{Op: OpLabel, Str: elseLbl})
		elseV := l.expr(e.Else)
		l.emit(Instr{Op: OpMove, Dst: res, A: elseV})
		l.emit(Instr{Op: OpLabel, Str: endLbl})
		return res
	}
	thenV := l.expr(e.Then)
	elseV := l.expr(e.Else)
	r := l.newReg()
	l.emit(Instr{Op: OpSelect, Dst: r, A: cond, B: thenV, C: elseV, Type: e.Type()})
	return r
}

func (l *lowerer) lowerAssign(e *ast.Assign) Reg {
	id := e.Target.(*ast.Ident)
	v := l.expr(e.Value)
	if r, ok := l.locals.lookup(id.Name); ok {
		l.emit(Instr{Op: OpMove, Dst: r, A: v})
		return r
	}
	l.emit(Instr{Op: OpSetGlobal, A: v, Str: id.Name})
	return v
}
