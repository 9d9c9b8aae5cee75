// Package vm is the register-based interpreter that executes yang/ir
// modules directly (spec.md §4.6's JIT/trampoline role, substituted
// per DESIGN.md since no LLVM binding exists in the example pack). Its
// opcode dispatch and named-register style are grounded on the
// sentra-language bytecode VM in the example pack's other_examples/.
package vm

import (
	"fmt"
	"math"

	"github.com/lixenwraith/luxengine/yang/types"
)

// Value is a runtime Yang value: a scalar or vector of int or world.
// Ints holds the payload when Base == types.Int, Floats when Base ==
// types.World; exactly one is populated, with len matching Count.
type Value struct {
	Base   types.Base
	Ints   []int64
	Floats []float64
}

func (v Value) Count() int {
	if v.Base == types.Int {
		return len(v.Ints)
	}
	return len(v.Floats)
}

func (v Value) Type() types.Type {
	return types.Type{Base: v.Base, Count: v.Count()}
}

func ZeroValue(t types.Type) Value {
	n := t.Count
	if n < 1 {
		n = 1
	}
	if t.Base == types.World {
		return Value{Base: types.World, Floats: make([]float64, n)}
	}
	return Value{Base: types.Int, Ints: make([]int64, n)}
}

func IntScalar(v int64) Value       { return Value{Base: types.Int, Ints: []int64{v}} }
func WorldScalar(v float64) Value   { return Value{Base: types.World, Floats: []float64{v}} }

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// truthy reports whether a scalar value is non-zero; only meaningful
// as a branch/short-circuit condition, which the checker guarantees is
// always a scalar int at that point.
func (v Value) truthy() bool {
	if v.Base == types.Int {
		return v.Ints[0] != 0
	}
	return v.Floats[0] != 0
}

func (v Value) clone() Value {
	if v.Base == types.World {
		out := make([]float64, len(v.Floats))
		copy(out, v.Floats)
		return Value{Base: types.World, Floats: out}
	}
	out := make([]int64, len(v.Ints))
	copy(out, v.Ints)
	return Value{Base: types.Int, Ints: out}
}

func (v Value) String() string {
	if v.Base == types.World {
		return fmt.Sprintf("%v", v.Floats)
	}
	return fmt.Sprintf("%v", v.Ints)
}

// broadcastLen returns the element count two operands should be
// evaluated at under spec.md §4.5's broadcast rule: the larger of the
// two counts, the smaller assumed scalar.
func broadcastLen(a, b Value) int {
	if a.Count() > b.Count() {
		return a.Count()
	}
	return b.Count()
}

func intAt(v Value, i int) int64 {
	if len(v.Ints) == 1 {
		return v.Ints[0]
	}
	return v.Ints[i]
}

func floatAt(v Value, i int) float64 {
	if len(v.Floats) == 1 {
		return v.Floats[0]
	}
	return v.Floats[i]
}

// euclidMod and euclidDiv implement spec.md §4.6's Euclidean integer
// arithmetic: non-negative remainder, quotient rounds to -infinity.
func euclidMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		if b < 0 {
			m -= b
		} else {
			m += b
		}
	}
	return m
}

func euclidDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func w2i(f float64) int64 { return int64(math.Floor(f)) }
