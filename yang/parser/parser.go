// Package parser implements a recursive-descent parser from
// yang/lexer tokens to yang/ast nodes (spec.md §4.4, C5).
package parser

import (
	"fmt"

	"github.com/lixenwraith/luxengine/yang/ast"
	"github.com/lixenwraith/luxengine/yang/lexer"
	"github.com/lixenwraith/luxengine/yang/types"
)

// Error is a parse-time syntax error, reported as "Error at line L,
// near 'TOK': MSG" per spec.md §4.4. The parser aborts on the first
// one; there is no error recovery.
type Error struct {
	Line    int
	Token   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Error at line %d, near '%s': %s", e.Line, e.Token, e.Message)
}

// Parse lexes and parses a full Yang source program.
func Parse(source string) (*ast.Program, error) {
	toks, err := lexer.Lex(source)
	if err != nil {
		le := err.(*lexer.Error)
		return nil, &Error{Line: le.Line, Token: "", Message: le.Message}
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) cur() lexer.Token { return p.toks[p.pos] }

func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	t := p.cur()
	return &Error{Line: t.Line, Token: t.Text, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	if p.cur().Kind != k {
		return lexer.Token{}, p.errorf("expected %s", what)
	}
	return p.advance(), nil
}

// --- Program ---

func (p *parser) parseProgram() (prog *ast.Program, err error) {
	prog = ast.NewProgram(1)
	for p.cur().Kind != lexer.EOF {
		export := false
		if p.cur().Kind == lexer.KwExport {
			export = true
			p.advance()
		}
		switch p.cur().Kind {
		case lexer.KwGlobal:
			p.advance()
			if _, err = p.expect(lexer.LBrace, "'{'"); err != nil {
				return nil, err
			}
			for p.cur().Kind != lexer.RBrace {
				d, err := p.parseVarDecl()
				if err != nil {
					return nil, err
				}
				prog.Globals = append(prog.Globals, d)
			}
			p.advance()
		case lexer.KwVar, lexer.KwConst:
			d, err := p.parseVarDecl()
			if err != nil {
				return nil, err
			}
			prog.Globals = append(prog.Globals, d)
		case lexer.KwVoid, lexer.KwInt, lexer.KwWorld:
			f, err := p.parseFuncDecl(export)
			if err != nil {
				return nil, err
			}
			prog.Functions = append(prog.Functions, f)
		default:
			return nil, p.errorf("expected top-level declaration")
		}
	}
	return prog, nil
}

func (p *parser) parseType() (types.Type, error) {
	var base types.Base
	switch p.cur().Kind {
	case lexer.KwVoid:
		base = types.Void
	case lexer.KwInt:
		base = types.Int
	case lexer.KwWorld:
		base = types.World
	default:
		return types.Invalid, p.errorf("expected type")
	}
	tok := p.advance()
	// intN / worldN: the lexer emits one KwInt/KwWorld token whose Text
	// carries the full "int2"/"world3" spelling, since its identifier
	// scan cannot tell a vector-width suffix from an ordinary digit run
	// without knowing it is scanning a type name.
	suffix := tok.Text[len(baseKeyword(base)):]
	if suffix == "" {
		return types.Scalar(base), nil
	}
	count, err := parseVectorCount(suffix)
	if err != nil {
		return types.Invalid, p.errorf("invalid vector width in %q", tok.Text)
	}
	return types.Vector(base, count), nil
}

func baseKeyword(b types.Base) string {
	switch b {
	case types.Int:
		return "int"
	case types.World:
		return "world"
	default:
		return "void"
	}
}

func parseVectorCount(text string) (int, error) {
	n := 0
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a digit run")
		}
		n = n*10 + int(r-'0')
	}
	if n < 2 {
		return 0, fmt.Errorf("vector width must be >= 2")
	}
	return n, nil
}

func (p *parser) parseFuncDecl(export bool) (*ast.FuncDecl, error) {
	line := p.cur().Line
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.Ident, "function name")
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	var params []ast.Param
	for p.cur().Kind != lexer.RParen {
		if len(params) > 0 {
			if _, err = p.expect(lexer.Comma, "','"); err != nil {
				return nil, err
			}
		}
		pt, err := p.parseType()
		if err != nil {
			return nil, err
		}
		pn, err := p.expect(lexer.Ident, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: pn.Text, Type: pt})
	}
	p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFuncDecl(line, name.Text, export, ret, params, body), nil
}

func (p *parser) parseVarDecl() (*ast.VarDecl, error) {
	line := p.cur().Line
	isConst := p.cur().Kind == lexer.KwConst
	p.advance()
	name, err := p.expect(lexer.Ident, "identifier")
	if err != nil {
		return nil, err
	}
	declType := types.Invalid
	if p.cur().Kind == lexer.KwInt || p.cur().Kind == lexer.KwWorld || p.cur().Kind == lexer.KwVoid {
		declType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	var init ast.Node
	if p.cur().Kind == lexer.Assign {
		p.advance()
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err = p.expect(lexer.Semi, "';'"); err != nil {
		return nil, err
	}
	return ast.NewVarDecl(line, name.Text, isConst, declType, init), nil
}

func (p *parser) parseBlock() (*ast.Block, error) {
	line := p.cur().Line
	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}
	var stmts []ast.Node
	for p.cur().Kind != lexer.RBrace {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.advance()
	return ast.NewBlock(line, stmts), nil
}

func (p *parser) parseStmt() (ast.Node, error) {
	switch p.cur().Kind {
	case lexer.LBrace:
		return p.parseBlock()
	case lexer.KwVar, lexer.KwConst:
		return p.parseVarDecl()
	case lexer.KwIf:
		return p.parseIf()
	case lexer.KwFor:
		return p.parseFor()
	case lexer.KwWhile:
		return p.parseWhile()
	case lexer.KwDo:
		return p.parseDoWhile()
	case lexer.KwBreak:
		line := p.advance().Line
		_, err := p.expect(lexer.Semi, "';'")
		return ast.NewBreak(line), err
	case lexer.KwContinue:
		line := p.advance().Line
		_, err := p.expect(lexer.Semi, "';'")
		return ast.NewContinue(line), err
	case lexer.KwReturn:
		line := p.advance().Line
		if p.cur().Kind == lexer.Semi {
			p.advance()
			return ast.NewReturn(line, nil), nil
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(lexer.Semi, "';'"); err != nil {
			return nil, err
		}
		return ast.NewReturn(line, e), nil
	default:
		line := p.cur().Line
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(lexer.Semi, "';'"); err != nil {
			return nil, err
		}
		return ast.NewExprStmt(line, e), nil
	}
}

func (p *parser) parseIf() (ast.Node, error) {
	line := p.advance().Line
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Node
	if p.cur().Kind == lexer.KwElse {
		p.advance()
		elseStmt, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(line, cond, then, elseStmt), nil
}

func (p *parser) parseFor() (ast.Node, error) {
	line := p.advance().Line
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	var initExpr, condExpr, postExpr ast.Node
	var err error
	switch {
	case p.cur().Kind == lexer.KwVar || p.cur().Kind == lexer.KwConst:
		// parseVarDecl consumes its own trailing ';'.
		initExpr, err = p.parseVarDecl()
		if err != nil {
			return nil, err
		}
	case p.cur().Kind != lexer.Semi:
		initExpr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(lexer.Semi, "';'"); err != nil {
			return nil, err
		}
	default:
		if _, err = p.expect(lexer.Semi, "';'"); err != nil {
			return nil, err
		}
	}
	if p.cur().Kind != lexer.Semi {
		condExpr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err = p.expect(lexer.Semi, "';'"); err != nil {
		return nil, err
	}
	if p.cur().Kind != lexer.RParen {
		postExpr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err = p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(line, initExpr, condExpr, postExpr, body), nil
}

func (p *parser) parseWhile() (ast.Node, error) {
	line := p.advance().Line
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(line, cond, body), nil
}

func (p *parser) parseDoWhile() (ast.Node, error) {
	line := p.advance().Line
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(lexer.KwWhile, "'while'"); err != nil {
		return nil, err
	}
	if _, err = p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}
	if _, err = p.expect(lexer.Semi, "';'"); err != nil {
		return nil, err
	}
	return ast.NewDoWhile(line, body, cond), nil
}

// --- Expressions: precedence climbing ---
//
// Lowest to highest: assignment, ternary, ||, &&, bitwise-or,
// bitwise-xor, bitwise-and, equality, relational, shift, additive,
// multiplicative, power (right-assoc), unary/fold/cast, postfix
// (call/index), primary.

func (p *parser) parseExpr() (ast.Node, error) { return p.parseAssign() }

func (p *parser) parseAssign() (ast.Node, error) {
	line := p.cur().Line
	left, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == lexer.Assign {
		p.advance()
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return ast.NewAssign(line, left, right), nil
	}
	return left, nil
}

func (p *parser) parseTernary() (ast.Node, error) {
	line := p.cur().Line
	cond, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == lexer.Question {
		p.advance()
		then, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(lexer.Colon, "':'"); err != nil {
			return nil, err
		}
		els, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return ast.NewTernary(line, cond, then, els), nil
	}
	return cond, nil
}

// binaryLevels lists operator kinds grouped lowest-to-highest
// precedence; all are left-associative except StarStar (handled
// separately, right-associative).
var binaryLevels = [][]lexer.Kind{
	{lexer.OrOr},
	{lexer.AndAnd},
	{lexer.Pipe},
	{lexer.Caret},
	{lexer.Amp},
	{lexer.Eq, lexer.Neq},
	{lexer.Lt, lexer.Le, lexer.Gt, lexer.Ge},
	{lexer.Shl, lexer.Shr},
	{lexer.Plus, lexer.Minus},
	{lexer.Star, lexer.Slash, lexer.Percent},
}

func (p *parser) parseBinary(level int) (ast.Node, error) {
	if level >= len(binaryLevels) {
		return p.parsePower()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for containsKind(binaryLevels[level], p.cur().Kind) {
		op := p.advance()
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(op.Line, op.Text, left, right)
	}
	return left, nil
}

func containsKind(ks []lexer.Kind, k lexer.Kind) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}

func (p *parser) parsePower() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == lexer.StarStar {
		op := p.advance()
		right, err := p.parsePower() // right-associative
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOp(op.Line, op.Text, left, right), nil
	}
	return left, nil
}

// foldKinds lists every fold operator token (spec.md §9: "POW fold is
// right-associative while other folds are left-associative" implies
// the full arithmetic/bitwise/logical/comparison family folds, not
// just the handful with an obvious single-char base operator).
var foldKinds = map[lexer.Kind]bool{
	lexer.FoldPlus: true, lexer.FoldMinus: true, lexer.FoldStar: true,
	lexer.FoldSlash: true, lexer.FoldPercent: true, lexer.FoldStarStar: true,
	lexer.FoldAndAnd: true, lexer.FoldOrOr: true,
	lexer.FoldAmp: true, lexer.FoldPipe: true, lexer.FoldCaret: true,
	lexer.FoldShl: true, lexer.FoldShr: true,
	lexer.FoldEq: true, lexer.FoldNeq: true,
	lexer.FoldLt: true, lexer.FoldLe: true, lexer.FoldGt: true, lexer.FoldGe: true,
}

func (p *parser) parseUnary() (ast.Node, error) {
	switch p.cur().Kind {
	case lexer.Minus, lexer.Bang, lexer.Tilde:
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(op.Line, op.Text, operand), nil
	default:
		if foldKinds[p.cur().Kind] {
			op := p.advance()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return ast.NewFoldOp(op.Line, op.Text, operand), nil
		}
	}
	return p.parseCast()
}

func (p *parser) parseCast() (ast.Node, error) {
	if p.cur().Kind == lexer.LBracket {
		line := p.advance().Line
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(lexer.RBracket, "']'"); err != nil {
			return nil, err
		}
		return ast.NewCast(line, true, inner), nil
	}
	return p.parsePostfixWithDotCast()
}

// parsePostfixWithDotCast parses a postfix chain and also recognises
// the `x.` int-to-world promotion suffix, which shares the `.` token
// with member-less postfix dot (there is no member access in Yang).
func (p *parser) parsePostfixWithDotCast() (ast.Node, error) {
	n, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.Dot {
		line := p.advance().Line
		n = ast.NewCast(line, false, n)
	}
	return n, nil
}

func (p *parser) parsePostfix() (ast.Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case lexer.LParen:
			line := p.advance().Line
			var args []ast.Node
			for p.cur().Kind != lexer.RParen {
				if len(args) > 0 {
					if _, err = p.expect(lexer.Comma, "','"); err != nil {
						return nil, err
					}
				}
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
			}
			p.advance()
			n = ast.NewCall(line, n, args)
		case lexer.LBracket:
			line := p.advance().Line
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err = p.expect(lexer.RBracket, "']'"); err != nil {
				return nil, err
			}
			n = ast.NewVectorIndex(line, n, idx)
		default:
			return n, nil
		}
	}
}

func (p *parser) parsePrimary() (ast.Node, error) {
	t := p.cur()
	switch t.Kind {
	case lexer.IntLiteral:
		p.advance()
		return ast.NewIntLiteral(t.Line, t.Text)
	case lexer.WorldLiteral:
		p.advance()
		return ast.NewWorldLiteral(t.Line, t.Text)
	case lexer.Ident:
		p.advance()
		return ast.NewIdent(t.Line, t.Text), nil
	case lexer.LParen:
		p.advance()
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().Kind == lexer.Comma {
			elems := []ast.Node{first}
			for p.cur().Kind == lexer.Comma {
				p.advance()
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
			}
			if _, err = p.expect(lexer.RParen, "')'"); err != nil {
				return nil, err
			}
			return ast.NewVectorConstruct(t.Line, elems), nil
		}
		if _, err = p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		return first, nil
	default:
		return nil, p.errorf("expected expression")
	}
}
