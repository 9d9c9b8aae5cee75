package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print reconstructs Yang source text from a Program, the basis of
// spec.md §8's "compile round-trip" testable property: lexing and
// parsing Print(p) must reproduce an AST equal in meaning to p.
func Print(p *Program) string {
	var b strings.Builder
	for _, g := range p.Globals {
		b.WriteString("global {\n")
		b.WriteString(printVarDecl(g, 1))
		b.WriteString("}\n\n")
	}
	for _, f := range p.Functions {
		b.WriteString(printFunc(f))
		b.WriteString("\n")
	}
	return b.String()
}

func indent(n int) string { return strings.Repeat("    ", n) }

func printFunc(f *FuncDecl) string {
	var b strings.Builder
	if f.Export {
		b.WriteString("export ")
	}
	b.WriteString(f.Ret.String())
	b.WriteString(" ")
	b.WriteString(f.Name)
	b.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type.String())
		b.WriteString(" ")
		b.WriteString(p.Name)
	}
	b.WriteString(") ")
	b.WriteString(printBlock(f.Body, 0))
	return b.String()
}

func printVarDecl(v *VarDecl, depth int) string {
	kw := "var"
	if v.Const {
		kw = "const"
	}
	line := fmt.Sprintf("%s%s %s", indent(depth), kw, v.Name)
	if v.Init != nil {
		line += " = " + printExpr(v.Init)
	}
	return line + ";\n"
}

func printBlock(b *Block, depth int) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString(printStmt(s, depth+1))
	}
	sb.WriteString(indent(depth) + "}\n")
	return sb.String()
}

func printStmt(n Node, depth int) string {
	pad := indent(depth)
	switch s := n.(type) {
	case *VarDecl:
		return printVarDecl(s, depth)
	case *ExprStmt:
		return pad + printExpr(s.Expr) + ";\n"
	case *Block:
		return pad + printBlock(s, depth)
	case *IfStmt:
		out := pad + "if (" + printExpr(s.Cond) + ") " + printStmtInline(s.Then, depth)
		if s.Else != nil {
			out += pad + "else " + printStmtInline(s.Else, depth)
		}
		return out
	case *ForStmt:
		init, cond, post := "", "", ""
		if s.Init != nil {
			if decl, ok := s.Init.(*VarDecl); ok {
				// printVarDecl appends its own trailing ";\n"; for's own
				// "; " separator below must not duplicate it.
				init = strings.TrimSuffix(printVarDecl(decl, 0), ";\n")
			} else {
				init = printExpr(s.Init)
			}
		}
		if s.Cond != nil {
			cond = printExpr(s.Cond)
		}
		if s.Post != nil {
			post = printExpr(s.Post)
		}
		return pad + fmt.Sprintf("for (%s; %s; %s) ", init, cond, post) + printStmtInline(s.Body, depth)
	case *WhileStmt:
		return pad + "while (" + printExpr(s.Cond) + ") " + printStmtInline(s.Body, depth)
	case *DoWhileStmt:
		return pad + "do " + printStmtInline(s.Body, depth) + pad + "while (" + printExpr(s.Cond) + ");\n"
	case *BreakStmt:
		return pad + "break;\n"
	case *ContinueStmt:
		return pad + "continue;\n"
	case *ReturnStmt:
		if s.Value == nil {
			return pad + "return;\n"
		}
		return pad + "return " + printExpr(s.Value) + ";\n"
	default:
		return pad + "/* unknown statement */\n"
	}
}

// printStmtInline renders a statement that follows `if (...)`, `for
// (...)`, etc. on the same line as its opening keyword: blocks print
// in place, single statements print on the next line at depth+1.
func printStmtInline(n Node, depth int) string {
	if b, ok := n.(*Block); ok {
		return printBlock(b, depth)
	}
	return "\n" + printStmt(n, depth+1)
}

func printExpr(n Node) string {
	switch e := n.(type) {
	case *IntLiteral:
		return strconv.FormatInt(e.Value, 10)
	case *WorldLiteral:
		return strconv.FormatFloat(e.Value, 'f', -1, 64)
	case *Ident:
		return e.Name
	case *BinaryOp:
		return "(" + printExpr(e.Left) + " " + e.Op + " " + printExpr(e.Right) + ")"
	case *UnaryOp:
		return e.Op + printExpr(e.Operand)
	case *FoldOp:
		return e.Op + printExpr(e.Operand)
	case *Ternary:
		return "(" + printExpr(e.Cond) + " ? " + printExpr(e.Then) + " : " + printExpr(e.Else) + ")"
	case *Cast:
		if e.ToInt {
			return "[" + printExpr(e.Operand) + "]"
		}
		return printExpr(e.Operand) + "."
	case *VectorConstruct:
		parts := make([]string, len(e.Elements))
		for i, el := range e.Elements {
			parts[i] = printExpr(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *VectorIndex:
		return printExpr(e.Vector) + "[" + printExpr(e.Index) + "]"
	case *Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = printExpr(a)
		}
		return printExpr(e.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *Assign:
		return printExpr(e.Target) + " = " + printExpr(e.Value)
	default:
		return "<?>"
	}
}
