package ast

import (
	"strconv"

	"github.com/lixenwraith/luxengine/yang/types"
)

// Constructors used by yang/parser. Each sets the node's source line;
// Type stays the zero Type until the checker annotates it via SetType.

func NewIntLiteral(line int, text string) (*IntLiteral, error) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, err
	}
	return &IntLiteral{base: base{line: line}, Value: v}, nil
}

func NewWorldLiteral(line int, text string) (*WorldLiteral, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, err
	}
	return &WorldLiteral{base: base{line: line}, Value: v}, nil
}

func NewIdent(line int, name string) *Ident {
	return &Ident{base: base{line: line}, Name: name}
}

func NewBinaryOp(line int, op string, left, right Node) *BinaryOp {
	return &BinaryOp{base: base{line: line}, Op: op, Left: left, Right: right}
}

func NewUnaryOp(line int, op string, operand Node) *UnaryOp {
	return &UnaryOp{base: base{line: line}, Op: op, Operand: operand}
}

func NewFoldOp(line int, op string, operand Node) *FoldOp {
	return &FoldOp{base: base{line: line}, Op: op, Operand: operand}
}

func NewTernary(line int, cond, then, els Node) *Ternary {
	return &Ternary{base: base{line: line}, Cond: cond, Then: then, Else: els}
}

func NewCast(line int, toInt bool, operand Node) *Cast {
	return &Cast{base: base{line: line}, ToInt: toInt, Operand: operand}
}

func NewVectorConstruct(line int, elems []Node) *VectorConstruct {
	return &VectorConstruct{base: base{line: line}, Elements: elems}
}

func NewVectorIndex(line int, vec, idx Node) *VectorIndex {
	return &VectorIndex{base: base{line: line}, Vector: vec, Index: idx}
}

func NewCall(line int, callee Node, args []Node) *Call {
	return &Call{base: base{line: line}, Callee: callee, Args: args}
}

func NewAssign(line int, target, value Node) *Assign {
	return &Assign{base: base{line: line}, Target: target, Value: value}
}

func NewExprStmt(line int, expr Node) *ExprStmt {
	return &ExprStmt{base: base{line: line}, Expr: expr}
}

func NewVarDecl(line int, name string, isConst bool, declType types.Type, init Node) *VarDecl {
	return &VarDecl{base: base{line: line}, Name: name, Const: isConst, Declare: declType, Init: init}
}

func NewBlock(line int, stmts []Node) *Block {
	return &Block{base: base{line: line}, Statements: stmts}
}

func NewIf(line int, cond, then, els Node) *IfStmt {
	return &IfStmt{base: base{line: line}, Cond: cond, Then: then, Else: els}
}

func NewFor(line int, init, cond, post, body Node) *ForStmt {
	return &ForStmt{base: base{line: line}, Init: init, Cond: cond, Post: post, Body: body}
}

func NewWhile(line int, cond, body Node) *WhileStmt {
	return &WhileStmt{base: base{line: line}, Cond: cond, Body: body}
}

func NewDoWhile(line int, body, cond Node) *DoWhileStmt {
	return &DoWhileStmt{base: base{line: line}, Body: body, Cond: cond}
}

func NewBreak(line int) *BreakStmt       { return &BreakStmt{base: base{line: line}} }
func NewContinue(line int) *ContinueStmt { return &ContinueStmt{base: base{line: line}} }

func NewReturn(line int, value Node) *ReturnStmt {
	return &ReturnStmt{base: base{line: line}, Value: value}
}

func NewFuncDecl(line int, name string, export bool, ret types.Type, params []Param, body *Block) *FuncDecl {
	return &FuncDecl{base: base{line: line}, Name: name, Export: export, Ret: ret, Params: params, Body: body}
}
