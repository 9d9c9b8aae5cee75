package check

import (
	"testing"

	"github.com/lixenwraith/luxengine/yang/parser"
)

func TestCheck_ValidProgramSucceeds(t *testing.T) {
	src := `
global {
    var total int = 0;
}
export int add(int a, int b) {
    return a + b;
}
`
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := Check(prog)
	if !res.Success() {
		t.Fatalf("expected success, got diagnostics: %v", res.Diagnostics)
	}
	if _, ok := res.Functions["add"]; !ok {
		t.Fatalf("expected add in exported functions")
	}
	if _, ok := res.Globals["total"]; !ok {
		t.Fatalf("expected total in globals")
	}
}

func TestCheck_TypeMismatchInBinary(t *testing.T) {
	src := `int f() { return 1 + 2.5; }`
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := Check(prog)
	if res.Success() {
		t.Fatalf("expected a type error mixing int and world")
	}
}

func TestCheck_UndefinedIdentifier(t *testing.T) {
	src := `int f() { return missing; }`
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := Check(prog)
	if res.Success() {
		t.Fatalf("expected an undefined-identifier error")
	}
}

func TestCheck_BreakOutsideLoop(t *testing.T) {
	src := `void f() { break; }`
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := Check(prog)
	if res.Success() {
		t.Fatalf("expected a break-outside-loop error")
	}
}

func TestCheck_MissingReturnOnSomePath(t *testing.T) {
	src := `int f(int a) { if (a) { return 1; } }`
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := Check(prog)
	if res.Success() {
		t.Fatalf("expected a missing-return error")
	}
}

func TestCheck_VectorBroadcast(t *testing.T) {
	src := `int2 f(int2 v, int s) { return v + s; }`
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := Check(prog)
	if !res.Success() {
		t.Fatalf("expected broadcast success, got %v", res.Diagnostics)
	}
}

func TestCheck_FoldReducesVectorToScalar(t *testing.T) {
	src := `int f(int3 v) { return +/v; }`
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := Check(prog)
	if !res.Success() {
		t.Fatalf("expected fold success, got %v", res.Diagnostics)
	}
}

func TestCheck_Idempotent(t *testing.T) {
	src := `export int add(int a, int b) { return a + b; }`
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res1 := Check(prog)
	res2 := Check(prog)
	if len(res1.Diagnostics) != len(res2.Diagnostics) {
		t.Fatalf("checking twice should yield the same diagnostics count")
	}
}
