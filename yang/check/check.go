// Package check implements Yang's static checker (spec.md §4.5, C6):
// a post-order AST walk over scoped symbol tables that annotates every
// node with a types.Type and collects diagnostics.
package check

import (
	"fmt"

	"github.com/lixenwraith/luxengine/yang/ast"
	"github.com/lixenwraith/luxengine/yang/types"
)

// Diagnostic is one static-check error (spec.md §7 kind 2). The
// checker does not abort on the first one; it keeps walking so a
// single compile surfaces every independent mistake.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Result is the outcome of checking one Program.
type Result struct {
	Diagnostics []Diagnostic
	Functions   map[string]types.Type // exported function name -> function type
	Globals     map[string]types.Type // global name -> declared type
}

func (r *Result) Success() bool { return len(r.Diagnostics) == 0 }

type symbolKind int

const (
	symVar symbolKind = iota
	symFunc
)

type symbol struct {
	typ     types.Type
	kind    symbolKind
	isConst bool
}

// scope is one lexical frame; frames nest via parent.
type scope struct {
	parent *scope
	names  map[string]symbol
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]symbol)}
}

func (s *scope) declare(name string, sym symbol) bool {
	if _, exists := s.names[name]; exists {
		return false
	}
	s.names[name] = sym
	return true
}

func (s *scope) lookup(name string) (symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.names[name]; ok {
			return sym, true
		}
	}
	return symbol{}, false
}

// checker holds transient state for one Check call: the current scope
// chain, the loop-nesting depth (for break/continue validation), and
// the return type of the function currently being walked.
type checker struct {
	diags     []Diagnostic
	loopDepth int
	retType   types.Type
	funcs     map[string]types.Type
	globals   map[string]types.Type
}

func (c *checker) errorf(line int, format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{Line: line, Message: fmt.Sprintf(format, args...)})
}

// Check walks prog post-order, annotating every node's type via
// ast.SetType and returning the collected diagnostics plus the
// exported symbol tables (spec.md §4.7's Program.functions/globals).
func Check(prog *ast.Program) *Result {
	c := &checker{funcs: map[string]types.Type{}, globals: map[string]types.Type{}}
	top := newScope(nil)

	// Two passes over top level: first declare every global and
	// function signature so forward references and mutual recursion
	// resolve, then walk bodies.
	for _, g := range prog.Globals {
		c.declareGlobal(top, g)
	}
	for _, f := range prog.Functions {
		ft := funcType(f)
		if !top.declare(f.Name, symbol{typ: ft, kind: symFunc}) {
			c.errorf(f.Line(), "redeclaration of %q", f.Name)
		}
		if f.Export {
			c.funcs[f.Name] = ft
		}
	}

	for _, g := range prog.Globals {
		declT := g.Declare
		if g.Init != nil {
			c.checkExpr(top, g.Init)
			initT := g.Init.Type()
			if declT.IsInvalid() {
				declT = initT
				top.names[g.Name] = symbol{typ: declT, kind: symVar, isConst: g.Const}
			} else if !declT.IsInvalid() && !initT.IsInvalid() && !declT.Equal(initT) {
				c.errorf(g.Line(), "cannot initialise global %q of type %s with %s", g.Name, declT, initT)
			}
		} else if declT.IsInvalid() {
			c.errorf(g.Line(), "%q needs a declared type or an initialiser", g.Name)
		}
		ast.SetType(g, declT)
		c.globals[g.Name] = declT
	}
	for _, f := range prog.Functions {
		c.checkFunc(top, f)
	}

	return &Result{Diagnostics: c.diags, Functions: c.funcs, Globals: c.globals}
}

func funcType(f *ast.FuncDecl) types.Type {
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	return types.Type{Func: &types.FuncType{Params: params, Ret: f.Ret}}
}

// declareGlobal inserts a placeholder symbol for g into the top scope
// so that function bodies (checked afterwards) and other globals can
// reference it regardless of declaration order. If g has no declared
// type, its type stays Invalid here and is back-patched once its
// initialiser is checked, in Check's second globals pass.
func (c *checker) declareGlobal(top *scope, g *ast.VarDecl) {
	declT := g.Declare
	if !top.declare(g.Name, symbol{typ: declT, kind: symVar, isConst: g.Const}) {
		c.errorf(g.Line(), "redeclaration of %q", g.Name)
	}
}

func (c *checker) checkFunc(top *scope, f *ast.FuncDecl) {
	fnScope := newScope(top)
	for _, p := range f.Params {
		if !fnScope.declare(p.Name, symbol{typ: p.Type, kind: symVar}) {
			c.errorf(f.Line(), "duplicate parameter %q", p.Name)
		}
	}
	prevRet := c.retType
	c.retType = f.Ret
	returns := c.checkBlock(fnScope, f.Body)
	c.retType = prevRet
	if !f.Ret.IsVoid() && !returns {
		c.errorf(f.Line(), "function %q does not return on all paths", f.Name)
	}
}

// checkBlock returns whether every path through the block returns.
func (c *checker) checkBlock(parent *scope, b *ast.Block) bool {
	s := newScope(parent)
	returns := false
	for _, stmt := range b.Statements {
		if c.checkStmt(s, stmt) {
			returns = true
		}
	}
	ast.SetType(b, types.VoidType())
	return returns
}

func (c *checker) checkStmt(s *scope, n ast.Node) (returns bool) {
	switch st := n.(type) {
	case *ast.VarDecl:
		c.checkLocalVarDecl(s, st)
	case *ast.ExprStmt:
		c.checkExpr(s, st.Expr)
	case *ast.Block:
		return c.checkBlock(s, st)
	case *ast.IfStmt:
		c.checkCondition(s, st.Cond)
		thenReturns := c.checkStmtAsBlock(s, st.Then)
		if st.Else == nil {
			return false
		}
		elseReturns := c.checkStmtAsBlock(s, st.Else)
		return thenReturns && elseReturns
	case *ast.ForStmt:
		loopScope := newScope(s)
		if st.Init != nil {
			if decl, ok := st.Init.(*ast.VarDecl); ok {
				c.checkLocalVarDecl(loopScope, decl)
			} else {
				c.checkExpr(loopScope, st.Init)
			}
		}
		if st.Cond != nil {
			c.checkCondition(loopScope, st.Cond)
		}
		if st.Post != nil {
			c.checkExpr(loopScope, st.Post)
		}
		c.loopDepth++
		c.checkStmtAsBlock(loopScope, st.Body)
		c.loopDepth--
	case *ast.WhileStmt:
		c.checkCondition(s, st.Cond)
		c.loopDepth++
		c.checkStmtAsBlock(s, st.Body)
		c.loopDepth--
	case *ast.DoWhileStmt:
		c.loopDepth++
		c.checkStmtAsBlock(s, st.Body)
		c.loopDepth--
		c.checkCondition(s, st.Cond)
	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.errorf(st.Line(), "break outside loop")
		}
	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.errorf(st.Line(), "continue outside loop")
		}
	case *ast.ReturnStmt:
		c.checkReturn(s, st)
		return true
	default:
		c.errorf(n.Line(), "internal: unknown statement node")
	}
	return false
}

// checkStmtAsBlock checks a statement that may or may not itself be a
// *ast.Block (if/for/while/do-while bodies need not be braced) and
// reports whether it always returns.
func (c *checker) checkStmtAsBlock(parent *scope, n ast.Node) bool {
	if b, ok := n.(*ast.Block); ok {
		return c.checkBlock(parent, b)
	}
	s := newScope(parent)
	return c.checkStmt(s, n)
}

func (c *checker) checkLocalVarDecl(s *scope, v *ast.VarDecl) {
	var initT types.Type
	if v.Init != nil {
		c.checkExpr(s, v.Init)
		initT = v.Init.Type()
	}
	declT := v.Declare
	if declT.IsInvalid() && v.Init == nil {
		c.errorf(v.Line(), "%q needs a declared type or an initialiser", v.Name)
		declT = types.Invalid
	} else if declT.IsInvalid() {
		declT = initT
	} else if v.Init != nil && !initT.IsInvalid() && !declT.Equal(initT) {
		c.errorf(v.Line(), "cannot initialise %q of type %s with %s", v.Name, declT, initT)
	}
	if !s.declare(v.Name, symbol{typ: declT, kind: symVar, isConst: v.Const}) {
		c.errorf(v.Line(), "redeclaration of %q in the same scope", v.Name)
	}
	ast.SetType(v, declT)
}

// checkCondition checks an expression used as a loop/if condition: it
// must be int, scalar or vector (spec.md §4.5 ternary rule extends
// naturally to if/while/for conditions sharing the same scalar-or-
// vector-int requirement).
func (c *checker) checkCondition(s *scope, n ast.Node) {
	c.checkExpr(s, n)
	t := n.Type()
	if !t.IsInvalid() && t.Base != types.Int {
		c.errorf(n.Line(), "condition must be int, got %s", t)
	}
}

func (c *checker) checkReturn(s *scope, r *ast.ReturnStmt) {
	if r.Value == nil {
		if !c.retType.IsVoid() {
			c.errorf(r.Line(), "missing return value, expected %s", c.retType)
		}
		return
	}
	c.checkExpr(s, r.Value)
	t := r.Value.Type()
	if c.retType.IsVoid() {
		c.errorf(r.Line(), "void function must not return a value")
		return
	}
	if !t.IsInvalid() && !t.Equal(c.retType) {
		c.errorf(r.Line(), "return type %s does not match function return type %s", t, c.retType)
	}
}

func (c *checker) checkExpr(s *scope, n ast.Node) {
	switch e := n.(type) {
	case *ast.IntLiteral:
		ast.SetType(e, types.Scalar(types.Int))
	case *ast.WorldLiteral:
		ast.SetType(e, types.Scalar(types.World))
	case *ast.Ident:
		sym, ok := s.lookup(e.Name)
		if !ok {
			c.errorf(e.Line(), "undefined identifier %q", e.Name)
			ast.SetType(e, types.Invalid)
			return
		}
		ast.SetType(e, sym.typ)
	case *ast.BinaryOp:
		c.checkBinary(s, e)
	case *ast.UnaryOp:
		c.checkUnary(s, e)
	case *ast.FoldOp:
		c.checkFold(s, e)
	case *ast.Ternary:
		c.checkTernary(s, e)
	case *ast.Cast:
		c.checkCast(s, e)
	case *ast.VectorConstruct:
		c.checkVectorConstruct(s, e)
	case *ast.VectorIndex:
		c.checkVectorIndex(s, e)
	case *ast.Call:
		c.checkCall(s, e)
	case *ast.Assign:
		c.checkAssign(s, e)
	default:
		c.errorf(n.Line(), "internal: unknown expression node")
	}
}

var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true, "**": true}
var bitwiseOps = map[string]bool{"&": true, "|": true, "^": true, "<<": true, ">>": true}
var compareOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}
var logicalOps = map[string]bool{"&&": true, "||": true}

func (c *checker) checkBinary(s *scope, e *ast.BinaryOp) {
	c.checkExpr(s, e.Left)
	c.checkExpr(s, e.Right)
	lt, rt := e.Left.Type(), e.Right.Type()
	if lt.IsInvalid() || rt.IsInvalid() {
		ast.SetType(e, types.Invalid)
		return
	}
	switch {
	case arithmeticOps[e.Op]:
		result, ok := types.Broadcast(lt, rt)
		if !ok {
			c.errorf(e.Line(), "operator %s requires matching int/world operands, got %s and %s", e.Op, lt, rt)
			result = types.Invalid
		}
		ast.SetType(e, result)
	case bitwiseOps[e.Op]:
		if lt.Base != types.Int || rt.Base != types.Int {
			c.errorf(e.Line(), "operator %s requires int operands, got %s and %s", e.Op, lt, rt)
			ast.SetType(e, types.Invalid)
			return
		}
		result, ok := types.Broadcast(lt, rt)
		if !ok {
			c.errorf(e.Line(), "operator %s requires matching vector widths, got %s and %s", e.Op, lt, rt)
			result = types.Invalid
		}
		ast.SetType(e, result)
	case compareOps[e.Op]:
		result, ok := types.Broadcast(lt, rt)
		if !ok {
			c.errorf(e.Line(), "comparison %s requires matching int/world operands, got %s and %s", e.Op, lt, rt)
			ast.SetType(e, types.Invalid)
			return
		}
		ast.SetType(e, types.Vector(types.Int, result.Count))
	case logicalOps[e.Op]:
		if lt.Base != types.Int || rt.Base != types.Int {
			c.errorf(e.Line(), "operator %s requires int operands, got %s and %s", e.Op, lt, rt)
			ast.SetType(e, types.Invalid)
			return
		}
		result, ok := types.Broadcast(lt, rt)
		if !ok {
			result = types.Invalid
		}
		ast.SetType(e, result)
	default:
		c.errorf(e.Line(), "internal: unknown binary operator %q", e.Op)
		ast.SetType(e, types.Invalid)
	}
}

func (c *checker) checkUnary(s *scope, e *ast.UnaryOp) {
	c.checkExpr(s, e.Operand)
	t := e.Operand.Type()
	if t.IsInvalid() {
		ast.SetType(e, types.Invalid)
		return
	}
	switch e.Op {
	case "!", "~":
		if t.Base != types.Int {
			c.errorf(e.Line(), "operator %s requires int, got %s", e.Op, t)
			ast.SetType(e, types.Invalid)
			return
		}
	case "-":
		if t.Base != types.Int && t.Base != types.World {
			c.errorf(e.Line(), "unary - requires int or world, got %s", t)
			ast.SetType(e, types.Invalid)
			return
		}
	}
	ast.SetType(e, t)
}

// foldIntOnlyOps mirrors bitwiseOps/logicalOps above: bitwise and
// logical folds are integer-only, same as their binary counterparts
// (spec.md §4.5, "Bitwise and shifts: integer only").
var foldIntOnlyOps = map[string]bool{
	"&/": true, "|/": true, "^/": true, "<</": true, ">>/": true,
	"&&/": true, "||/": true,
}

// foldCompareOps produce a boolean (int), never a world result, same
// as binary comparisons (checkBinary's compareOps case above).
var foldCompareOps = map[string]bool{
	"==/": true, "!=/": true, "</": true, "<=/": true, ">/": true, ">=/": true,
}

func (c *checker) checkFold(s *scope, e *ast.FoldOp) {
	c.checkExpr(s, e.Operand)
	t := e.Operand.Type()
	if t.IsInvalid() {
		ast.SetType(e, types.Invalid)
		return
	}
	if !t.IsVector() {
		c.errorf(e.Line(), "fold operator %s requires a vector operand, got %s", e.Op, t)
		ast.SetType(e, types.Invalid)
		return
	}
	if foldIntOnlyOps[e.Op] && t.Base != types.Int {
		c.errorf(e.Line(), "fold operator %s requires an int vector, got %s", e.Op, t)
		ast.SetType(e, types.Invalid)
		return
	}
	if foldCompareOps[e.Op] {
		ast.SetType(e, types.Scalar(types.Int))
		return
	}
	ast.SetType(e, types.Scalar(t.Base))
}

func (c *checker) checkTernary(s *scope, e *ast.Ternary) {
	c.checkExpr(s, e.Cond)
	c.checkExpr(s, e.Then)
	c.checkExpr(s, e.Else)
	condT, thenT, elseT := e.Cond.Type(), e.Then.Type(), e.Else.Type()
	if !condT.IsInvalid() && condT.Base != types.Int {
		c.errorf(e.Line(), "ternary condition must be int, got %s", condT)
	}
	if thenT.IsInvalid() || elseT.IsInvalid() {
		ast.SetType(e, types.Invalid)
		return
	}
	if !thenT.Equal(elseT) {
		c.errorf(e.Line(), "ternary branches must unify, got %s and %s", thenT, elseT)
		ast.SetType(e, types.Invalid)
		return
	}
	ast.SetType(e, thenT)
}

func (c *checker) checkCast(s *scope, e *ast.Cast) {
	c.checkExpr(s, e.Operand)
	t := e.Operand.Type()
	if t.IsInvalid() {
		ast.SetType(e, types.Invalid)
		return
	}
	if e.ToInt {
		if t.Base != types.World {
			c.errorf(e.Line(), "[x] cast requires a world operand, got %s", t)
			ast.SetType(e, types.Invalid)
			return
		}
		ast.SetType(e, types.Vector(types.Int, t.Count))
		return
	}
	if t.Base != types.Int {
		c.errorf(e.Line(), "x. cast requires an int operand, got %s", t)
		ast.SetType(e, types.Invalid)
		return
	}
	ast.SetType(e, types.Vector(types.World, t.Count))
}

func (c *checker) checkVectorConstruct(s *scope, e *ast.VectorConstruct) {
	var base types.Base
	ok := true
	for i, el := range e.Elements {
		c.checkExpr(s, el)
		t := el.Type()
		if t.IsInvalid() || !t.IsScalar() {
			ok = false
			continue
		}
		if i == 0 {
			base = t.Base
		} else if t.Base != base {
			c.errorf(e.Line(), "vector construct elements must share a primitive base")
			ok = false
		}
	}
	if !ok || len(e.Elements) < 2 {
		ast.SetType(e, types.Invalid)
		return
	}
	ast.SetType(e, types.Vector(base, len(e.Elements)))
}

func (c *checker) checkVectorIndex(s *scope, e *ast.VectorIndex) {
	c.checkExpr(s, e.Vector)
	c.checkExpr(s, e.Index)
	vt, it := e.Vector.Type(), e.Index.Type()
	if vt.IsInvalid() || it.IsInvalid() {
		ast.SetType(e, types.Invalid)
		return
	}
	if !vt.IsVector() {
		c.errorf(e.Line(), "index target must be a vector, got %s", vt)
		ast.SetType(e, types.Invalid)
		return
	}
	if !it.IsScalar() || it.Base != types.Int {
		c.errorf(e.Line(), "index must be a scalar int, got %s", it)
		ast.SetType(e, types.Invalid)
		return
	}
	ast.SetType(e, types.Scalar(vt.Base))
}

func (c *checker) checkCall(s *scope, e *ast.Call) {
	c.checkExpr(s, e.Callee)
	ft := e.Callee.Type()
	for _, a := range e.Args {
		c.checkExpr(s, a)
	}
	if ft.IsInvalid() {
		ast.SetType(e, types.Invalid)
		return
	}
	if !ft.IsFunction() {
		c.errorf(e.Line(), "cannot call non-function type %s", ft)
		ast.SetType(e, types.Invalid)
		return
	}
	if len(ft.Func.Params) != len(e.Args) {
		c.errorf(e.Line(), "expected %d arguments, got %d", len(ft.Func.Params), len(e.Args))
		ast.SetType(e, types.Invalid)
		return
	}
	for i, a := range e.Args {
		at := a.Type()
		if !at.IsInvalid() && !at.Equal(ft.Func.Params[i]) {
			c.errorf(a.Line(), "argument %d: expected %s, got %s", i+1, ft.Func.Params[i], at)
		}
	}
	ast.SetType(e, ft.Func.Ret)
}

func (c *checker) checkAssign(s *scope, e *ast.Assign) {
	id, ok := e.Target.(*ast.Ident)
	if !ok {
		c.errorf(e.Line(), "assignment target must be a name")
		ast.SetType(e, types.Invalid)
		return
	}
	sym, exists := s.lookup(id.Name)
	if !exists {
		c.errorf(e.Line(), "undefined identifier %q", id.Name)
		ast.SetType(e, types.Invalid)
		return
	}
	if sym.isConst {
		c.errorf(e.Line(), "cannot assign to const %q", id.Name)
	}
	c.checkExpr(s, e.Target)
	c.checkExpr(s, e.Value)
	vt := e.Value.Type()
	if !vt.IsInvalid() && !sym.typ.Equal(vt) {
		c.errorf(e.Line(), "cannot assign %s to %q of type %s", vt, id.Name, sym.typ)
	}
	ast.SetType(e, sym.typ)
}
