// Package lexer tokenizes Yang source text (spec.md §4.4, C5).
package lexer

// Kind classifies a token.
type Kind int

const (
	EOF Kind = iota
	IntLiteral
	WorldLiteral
	Ident

	KwVoid
	KwInt
	KwWorld
	KwIf
	KwElse
	KwFor
	KwDo
	KwWhile
	KwBreak
	KwContinue
	KwReturn
	KwVar
	KwConst
	KwExport
	KwGlobal

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semi
	Dot
	Question
	Colon

	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	StarStar

	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr

	AndAnd
	OrOr
	Bang

	Eq
	Neq
	Lt
	Le
	Gt
	Ge

	FoldPlus
	FoldMinus
	FoldStar
	FoldSlash
	FoldPercent
	FoldStarStar
	FoldAndAnd
	FoldOrOr
	FoldAmp
	FoldPipe
	FoldCaret
	FoldShl
	FoldShr
	FoldEq
	FoldNeq
	FoldLt
	FoldLe
	FoldGt
	FoldGe
)

var keywords = map[string]Kind{
	"void": KwVoid, "int": KwInt, "world": KwWorld,
	"if": KwIf, "else": KwElse, "for": KwFor, "do": KwDo, "while": KwWhile,
	"break": KwBreak, "continue": KwContinue, "return": KwReturn,
	"var": KwVar, "const": KwConst, "export": KwExport, "global": KwGlobal,
}

// Token is one lexical unit, carrying its source line and original text
// so the parser can build AST nodes that round-trip back to source
// (spec.md §4.4, "every node carrying source line and original token
// text").
type Token struct {
	Kind Kind
	Text string
	Line int
}
