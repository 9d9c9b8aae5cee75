package yang

import (
	"testing"

	"github.com/lixenwraith/luxengine/yang/types"
	"github.com/lixenwraith/luxengine/yang/vm"
)

func TestProgram_SimpleFunctionCall(t *testing.T) {
	src := `export int add(int a, int b) { return a + b; }`
	p := NewProgram("add", src)
	if !p.Success() {
		t.Fatalf("expected success, got diagnostics %v", p.Diagnostics())
	}
	inst, err := NewInstance(p)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	result, err := inst.Call("add", types.Scalar(types.Int), vm.IntScalar(2), vm.IntScalar(3))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.Ints[0] != 5 {
		t.Fatalf("expected 5, got %v", result)
	}
}

func TestProgram_GlobalGetSet(t *testing.T) {
	src := `
global {
    var counter int = 10;
}
export void bump() {
    counter = counter + 1;
}
`
	p := NewProgram("counter", src)
	if !p.Success() {
		t.Fatalf("expected success, got diagnostics %v", p.Diagnostics())
	}
	inst, err := NewInstance(p)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	v, err := inst.GetGlobal("counter", types.Scalar(types.Int))
	if err != nil {
		t.Fatalf("GetGlobal: %v", err)
	}
	if v.Ints[0] != 10 {
		t.Fatalf("expected initial value 10, got %v", v)
	}
	if _, err := inst.Call("bump", types.VoidType()); err != nil {
		t.Fatalf("Call(bump): %v", err)
	}
	v, _ = inst.GetGlobal("counter", types.Scalar(types.Int))
	if v.Ints[0] != 11 {
		t.Fatalf("expected 11 after bump, got %v", v)
	}
}

func TestInstance_Isolation(t *testing.T) {
	src := `
global {
    var x int = 0;
}
export void set_one() {
    x = 1;
}
`
	p := NewProgram("iso", src)
	if !p.Success() {
		t.Fatalf("expected success, got %v", p.Diagnostics())
	}
	a, _ := NewInstance(p)
	b, _ := NewInstance(p)
	if _, err := a.Call("set_one", types.VoidType()); err != nil {
		t.Fatalf("Call: %v", err)
	}
	av, _ := a.GetGlobal("x", types.Scalar(types.Int))
	bv, _ := b.GetGlobal("x", types.Scalar(types.Int))
	if av.Ints[0] != 1 || bv.Ints[0] != 0 {
		t.Fatalf("expected isolation, got a=%v b=%v", av, bv)
	}
}

func TestInstance_LookupErrorOnUnknownGlobal(t *testing.T) {
	p := NewProgram("empty", `export int f() { return 0; }`)
	if !p.Success() {
		t.Fatalf("expected success, got %v", p.Diagnostics())
	}
	inst, _ := NewInstance(p)
	v, err := inst.GetGlobal("missing", types.Scalar(types.Int))
	if err == nil {
		t.Fatalf("expected a lookup error")
	}
	if v.Ints[0] != 0 {
		t.Fatalf("expected default-constructed zero value, got %v", v)
	}
}

func TestInstance_TypeMismatchOnCall(t *testing.T) {
	p := NewProgram("m", `export int f(int a) { return a; }`)
	if !p.Success() {
		t.Fatalf("expected success, got %v", p.Diagnostics())
	}
	inst, _ := NewInstance(p)
	_, err := inst.Call("f", types.Scalar(types.World), vm.IntScalar(1))
	if err == nil {
		t.Fatalf("expected a type-mismatch error on the return type")
	}
}

func TestProgram_ParseFailureReportsDiagnostics(t *testing.T) {
	p := NewProgram("broken", `int f( { return 1; }`)
	if p.Success() {
		t.Fatalf("expected parse failure")
	}
	if len(p.Diagnostics()) == 0 {
		t.Fatalf("expected at least one diagnostic")
	}
}

func TestProgram_CheckFailureSkipsIR(t *testing.T) {
	p := NewProgram("badtype", `int f() { return 1 + 2.0; }`)
	if p.Success() {
		t.Fatalf("expected check failure")
	}
	if p.PrintIR() != "" {
		t.Fatalf("expected no IR for a failed program")
	}
}

func TestProgram_LoopsAndVectors(t *testing.T) {
	src := `
export int sum_to(int n) {
    var total int = 0;
    for (var i int = 0; i < n; i = i + 1) {
        total = total + i;
    }
    return total;
}
export int sum_vec(int3 v) {
    return +/v;
}
`
	p := NewProgram("loops", src)
	if !p.Success() {
		t.Fatalf("expected success, got %v", p.Diagnostics())
	}
	inst, err := NewInstance(p)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	r, err := inst.Call("sum_to", types.Scalar(types.Int), vm.IntScalar(5))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if r.Ints[0] != 10 {
		t.Fatalf("expected sum_to(5) == 10, got %v", r)
	}
	vecArg := vm.Value{Base: types.Int, Ints: []int64{1, 2, 3}}
	r, err = inst.Call("sum_vec", types.Scalar(types.Int), vecArg)
	if err != nil {
		t.Fatalf("Call(sum_vec): %v", err)
	}
	if r.Ints[0] != 6 {
		t.Fatalf("expected sum_vec == 6, got %v", r)
	}
}

// TestProgram_PowFoldIsRightAssociative exercises spec.md §9: "POW fold
// is right-associative while other folds are left-associative". For
// (2, 3, 2), left-assoc would give (2**3)**2 == 64; right-assoc gives
// 2**(3**2) == 512.
func TestProgram_PowFoldIsRightAssociative(t *testing.T) {
	src := `export int pow_fold(int3 v) { return **/v; }`
	p := NewProgram("pow_fold", src)
	if !p.Success() {
		t.Fatalf("expected success, got %v", p.Diagnostics())
	}
	inst, err := NewInstance(p)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	vecArg := vm.Value{Base: types.Int, Ints: []int64{2, 3, 2}}
	r, err := inst.Call("pow_fold", types.Scalar(types.Int), vecArg)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if r.Ints[0] != 512 {
		t.Fatalf("expected right-associative 2**(3**2) == 512, got %v", r)
	}
}

// TestProgram_DivFoldAndComparisonFold exercises the `\/` division fold
// (spelled with a backslash since "//" is already a line comment) and a
// chained-adjacent-pair comparison fold, both absent from the original
// narrower fold set.
func TestProgram_DivFoldAndComparisonFold(t *testing.T) {
	src := `
export int div_fold(int3 v) { return \/v; }
export int increasing(int3 v) { return </v; }
`
	p := NewProgram("div_fold", src)
	if !p.Success() {
		t.Fatalf("expected success, got %v", p.Diagnostics())
	}
	inst, err := NewInstance(p)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}

	r, err := inst.Call("div_fold", types.Scalar(types.Int), vm.Value{Base: types.Int, Ints: []int64{100, 5, 2}})
	if err != nil {
		t.Fatalf("Call(div_fold): %v", err)
	}
	if r.Ints[0] != 10 {
		t.Fatalf("expected (100/5)/2 == 10, got %v", r)
	}

	r, err = inst.Call("increasing", types.Scalar(types.Int), vm.Value{Base: types.Int, Ints: []int64{1, 2, 3}})
	if err != nil {
		t.Fatalf("Call(increasing): %v", err)
	}
	if r.Ints[0] != 1 {
		t.Fatalf("expected increasing(1,2,3) == true, got %v", r)
	}

	r, err = inst.Call("increasing", types.Scalar(types.Int), vm.Value{Base: types.Int, Ints: []int64{1, 3, 2}})
	if err != nil {
		t.Fatalf("Call(increasing): %v", err)
	}
	if r.Ints[0] != 0 {
		t.Fatalf("expected increasing(1,3,2) == false, got %v", r)
	}
}

// TestProgram_BitwiseFoldRejectsWorldVector confirms a bitwise/logical
// fold on a non-int vector is a type error rather than the silent
// first-element no-op the untyped fold path used to produce (spec.md
// §4.5, "Bitwise and shifts: integer only").
func TestProgram_BitwiseFoldRejectsWorldVector(t *testing.T) {
	src := `export world bad(world3 v) { return &/v; }`
	p := NewProgram("bad_fold", src)
	if p.Success() {
		t.Fatalf("expected bitwise fold on world3 to fail type check")
	}
}
