// Package ast defines the Yang abstract syntax tree (spec.md §4.4):
// every node carries its source line, and the tree can be printed back
// to source text (spec.md §8 "Compile round-trip", SPEC_FULL.md §4.10
// "print_ast/print_ir round trip").
package ast

import "github.com/lixenwraith/luxengine/yang/types"

// Node is the common interface of every AST node. Type is filled in by
// the checker (spec.md §4.5); it is the zero Type before checking.
type Node interface {
	Line() int
	Type() types.Type
	setType(types.Type)
}

type base struct {
	line int
	typ  types.Type
}

func (b *base) Line() int            { return b.line }
func (b *base) Type() types.Type     { return b.typ }
func (b *base) setType(t types.Type) { b.typ = t }

// SetType lets the checker annotate any node without depending on the
// unexported field directly.
func SetType(n Node, t types.Type) { n.setType(t) }

// --- Expressions ---

type IntLiteral struct {
	base
	Value int64
}

type WorldLiteral struct {
	base
	Value float64
}

type Ident struct {
	base
	Name string
}

// BinaryOp covers arithmetic, bitwise, shift, comparison, and logical
// binary operators (spec.md §4.5).
type BinaryOp struct {
	base
	Op          string
	Left, Right Node
}

// UnaryOp covers logical/bitwise/arithmetic negation.
type UnaryOp struct {
	base
	Op      string
	Operand Node
}

// FoldOp is a unary fold operator (+/, &&/, ...) reducing a vector to
// its base type.
type FoldOp struct {
	base
	Op      string
	Operand Node
}

// Ternary is c ? a : b.
type Ternary struct {
	base
	Cond, Then, Else Node
}

// Cast is either `[x]` (world -> int, floor) or `x.` (int -> world).
type Cast struct {
	base
	ToInt   bool
	Operand Node
}

// VectorConstruct is `(e1, ..., en)`.
type VectorConstruct struct {
	base
	Elements []Node
}

// VectorIndex is `v[i]`.
type VectorIndex struct {
	base
	Vector, Index Node
}

// Call is a function call `f(a1, ..., an)`.
type Call struct {
	base
	Callee Node
	Args   []Node
}

// Assign is `target = value` used as an expression (also the basis of
// `var`/`const` initialisers and global assignment).
type Assign struct {
	base
	Target, Value Node
}

// --- Statements ---

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	base
	Expr Node
}

// VarDecl covers both `var` and `const` declarations.
type VarDecl struct {
	base
	Name    string
	Const   bool
	Declare types.Type // declared type, if given; zero value if inferred
	Init    Node
}

type Block struct {
	base
	Statements []Node
}

type IfStmt struct {
	base
	Cond       Node
	Then, Else Node // Else is nil or another *IfStmt/*Block
}

type ForStmt struct {
	base
	Init, Cond, Post Node
	Body             Node
}

type WhileStmt struct {
	base
	Cond Node
	Body Node
}

// DoWhileStmt is `do { ... } while (cond);`.
type DoWhileStmt struct {
	base
	Body Node
	Cond Node
}

type BreakStmt struct{ base }
type ContinueStmt struct{ base }

type ReturnStmt struct {
	base
	Value Node // nil for a bare `return;` in a void function
}

// --- Top level ---

type Param struct {
	Name string
	Type types.Type
}

type FuncDecl struct {
	base
	Name    string
	Export  bool
	Ret     types.Type
	Params  []Param
	Body    *Block
}

// Program is the root node: an ordered list of top-level declarations
// (spec.md §6 grammar: `export? function_definition | global { ... } |
// var|const name = expr`).
type Program struct {
	base
	Globals   []*VarDecl
	Functions []*FuncDecl
}

func NewProgram(line int) *Program { return &Program{base: base{line: line}} }
