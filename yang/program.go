// Package yang is the public compiler API (spec.md §4.7/§6/§7, C8):
// Program compiles Yang source once; Instance binds one independent
// copy of its global data.
package yang

import (
	"strings"

	"github.com/lixenwraith/luxengine/yang/ast"
	"github.com/lixenwraith/luxengine/yang/check"
	"github.com/lixenwraith/luxengine/yang/ir"
	"github.com/lixenwraith/luxengine/yang/parser"
	"github.com/lixenwraith/luxengine/yang/types"
)

// Program is immutable after construction (spec.md §4.7).
type Program struct {
	name   string
	ast    *ast.Program
	module *ir.Module

	parseErr    string
	diagnostics []check.Diagnostic

	functions map[string]types.Type
	globals   map[string]types.Type
}

// NewProgram compiles source under the given name. It never returns an
// error itself: every failure mode (spec.md §7) is recorded on the
// Program and surfaces through Success/Diagnostics.
func NewProgram(name, source string) *Program {
	p := &Program{name: name}
	prog, err := parser.Parse(source)
	if err != nil {
		p.parseErr = err.Error()
		return p
	}
	p.ast = prog
	result := check.Check(prog)
	p.diagnostics = result.Diagnostics
	p.functions = result.Functions
	p.globals = result.Globals
	if !result.Success() {
		return p
	}
	p.module = ir.Lower(prog)
	return p
}

// Success reports whether the program compiled with zero lex/parse or
// static-check errors (spec.md §7 kinds 1-2).
func (p *Program) Success() bool {
	return p.parseErr == "" && len(p.diagnostics) == 0
}

// Diagnostics returns every lex/parse or static-check error, in the
// order encountered. A successful Program returns an empty slice.
func (p *Program) Diagnostics() []string {
	if p.parseErr != "" {
		return []string{p.parseErr}
	}
	out := make([]string, len(p.diagnostics))
	for i, d := range p.diagnostics {
		out[i] = d.String()
	}
	return out
}

// PrintAST reconstructs Yang source from the parsed tree (spec.md
// §4.7's print_ast, the basis of §8's compile round-trip property). It
// returns "" if parsing failed.
func (p *Program) PrintAST() string {
	if p.ast == nil {
		return ""
	}
	return ast.Print(p.ast)
}

// PrintIR renders the lowered module (spec.md §4.7's print_ir). It
// returns "" if the program did not reach IR generation.
func (p *Program) PrintIR() string {
	if p.module == nil {
		return ""
	}
	return p.module.String()
}

// Functions returns the exported function name -> type map.
func (p *Program) Functions() map[string]types.Type {
	return p.functions
}

// Globals returns the global name -> declared type map.
func (p *Program) Globals() map[string]types.Type {
	return p.globals
}

// String renders a short human-readable summary, useful in log lines.
func (p *Program) String() string {
	if !p.Success() {
		return p.name + " (failed: " + strings.Join(p.Diagnostics(), "; ") + ")"
	}
	return p.name
}
