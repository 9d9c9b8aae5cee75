package vm

import (
	"fmt"

	"github.com/lixenwraith/luxengine/yang/ir"
	"github.com/lixenwraith/luxengine/yang/types"
)

// vectorConstruct implements `(e1, ..., en)`: all elements share a
// primitive base (guaranteed by the checker).
func vectorConstruct(argRegs []ir.Reg, regs []Value) Value {
	if len(argRegs) == 0 {
		return Value{}
	}
	base := regs[argRegs[0]].Base
	if base == types.World {
		out := make([]float64, len(argRegs))
		for i, r := range argRegs {
			out[i] = regs[r].Floats[0]
		}
		return Value{Base: types.World, Floats: out}
	}
	out := make([]int64, len(argRegs))
	for i, r := range argRegs {
		out[i] = regs[r].Ints[0]
	}
	return Value{Base: types.Int, Ints: out}
}

// vectorIndex implements `v[i]`: out-of-range yields the base's zero
// value rather than an error (spec.md §4.5).
func vectorIndex(vec, idx Value) (Value, error) {
	if idx.Base != types.Int {
		return Value{}, fmt.Errorf("vm: vector index must be int")
	}
	i := int(idx.Ints[0])
	if vec.Base == types.World {
		if i < 0 || i >= len(vec.Floats) {
			return Value{Base: types.World, Floats: []float64{0}}, nil
		}
		return Value{Base: types.World, Floats: []float64{vec.Floats[i]}}, nil
	}
	if i < 0 || i >= len(vec.Ints) {
		return Value{Base: types.Int, Ints: []int64{0}}, nil
	}
	return Value{Base: types.Int, Ints: []int64{vec.Ints[i]}}, nil
}
