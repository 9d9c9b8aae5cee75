package parser

import (
	"strings"
	"testing"

	"github.com/lixenwraith/luxengine/yang/ast"
)

func TestParse_SimpleFunction(t *testing.T) {
	src := `int add(int a, int b) { return a + b; }`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Functions))
	}
	f := prog.Functions[0]
	if f.Name != "add" || len(f.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", f)
	}
	if len(f.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body")
	}
	ret, ok := f.Body.Statements[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected return statement, got %T", f.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.BinaryOp)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected a+b binary op, got %#v", ret.Value)
	}
}

func TestParse_GlobalBlockAndExport(t *testing.T) {
	src := `
global {
    var counter int = 0;
}
export void bump() {
    counter = counter + 1;
}
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Globals) != 1 || prog.Globals[0].Name != "counter" {
		t.Fatalf("unexpected globals: %+v", prog.Globals)
	}
	if len(prog.Functions) != 1 || !prog.Functions[0].Export {
		t.Fatalf("expected one exported function")
	}
}

func TestParse_Precedence(t *testing.T) {
	src := `int f() { return 1 + 2 * 3; }`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ret := prog.Functions[0].Body.Statements[0].(*ast.ReturnStmt)
	top := ret.Value.(*ast.BinaryOp)
	if top.Op != "+" {
		t.Fatalf("expected + at top of precedence tree, got %s", top.Op)
	}
	if _, ok := top.Right.(*ast.BinaryOp); !ok {
		t.Fatalf("expected 2*3 grouped under the + node")
	}
}

func TestParse_VectorConstructAndIndex(t *testing.T) {
	src := `int f() { return (1, 2, 3)[0]; }`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ret := prog.Functions[0].Body.Statements[0].(*ast.ReturnStmt)
	idx, ok := ret.Value.(*ast.VectorIndex)
	if !ok {
		t.Fatalf("expected vector index, got %T", ret.Value)
	}
	if _, ok := idx.Vector.(*ast.VectorConstruct); !ok {
		t.Fatalf("expected vector construct as index target")
	}
}

func TestParse_Ternary(t *testing.T) {
	src := `int f(int a) { return a ? 1 : 2; }`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ret := prog.Functions[0].Body.Statements[0].(*ast.ReturnStmt)
	if _, ok := ret.Value.(*ast.Ternary); !ok {
		t.Fatalf("expected ternary, got %T", ret.Value)
	}
}

func TestParse_ErrorReportsLineAndToken(t *testing.T) {
	src := "int f() {\n  return )\n}"
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected error to mention line 2, got %q", err.Error())
	}
}

func TestParse_RoundTrip(t *testing.T) {
	src := `export int square(int x) {
    return x * x;
}
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	printed := ast.Print(prog)
	prog2, err := Parse(printed)
	if err != nil {
		t.Fatalf("Parse(Print(prog)): %v", err)
	}
	if ast.Print(prog2) != printed {
		t.Fatalf("round trip not stable:\n%s\nvs\n%s", printed, ast.Print(prog2))
	}
}
