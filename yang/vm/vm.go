package vm

import (
	"fmt"

	"github.com/lixenwraith/luxengine/yang/ir"
	"github.com/lixenwraith/luxengine/yang/types"
)

// Machine executes a compiled ir.Module against one global-data
// instance (spec.md §5: "each Instance exclusively owns exactly one
// global-data allocation"). Globals is the !global_alloc substitute: a
// plain slice in declaration order rather than a malloc'd struct,
// since the interpreter has no separate host/target memory boundary
// to cross.
type Machine struct {
	Module  *ir.Module
	Globals []Value
}

// NewMachine allocates a Machine with globals default-initialised to
// their declared type's zero value, then runs !global_init over them
// (the !global_alloc contract of spec.md §4.6, minus the malloc step).
func NewMachine(m *ir.Module) (*Machine, error) {
	mach := &Machine{Module: m, Globals: make([]Value, len(m.Globals))}
	for i, g := range m.Globals {
		mach.Globals[i] = ZeroValue(g.Type)
	}
	if len(m.Globals) > 0 && m.Globals[0].Init != nil {
		if _, err := mach.Run(m.Globals[0].Init, nil); err != nil {
			return nil, fmt.Errorf("global initialisation: %w", err)
		}
	}
	return mach, nil
}

// Call runs an exported function by name with the given arguments.
func (m *Machine) Call(name string, args []Value) (Value, error) {
	fn := m.Module.FunctionByName(name)
	if fn == nil {
		return Value{}, fmt.Errorf("unknown function %q", name)
	}
	return m.Run(fn, args)
}

// Run executes one function to completion.
func (m *Machine) Run(fn *ir.Function, args []Value) (Value, error) {
	regs := make([]Value, fn.NumRegs)
	for i, r := range fn.ParamReg {
		regs[r] = args[i]
	}
	labels := map[string]int{}
	for pc, in := range fn.Code {
		if in.Op == ir.OpLabel {
			labels[in.Str] = pc
		}
	}

	pc := 0
	for pc < len(fn.Code) {
		in := fn.Code[pc]
		switch in.Op {
		case ir.OpLabel:
			// no-op marker
		case ir.OpConstInt:
			regs[in.Dst] = IntScalar(in.IntVal)
		case ir.OpConstWorld:
			regs[in.Dst] = WorldScalar(in.WorldVal)
		case ir.OpMove:
			regs[in.Dst] = regs[in.A]
		case ir.OpBinary:
			v, err := m.binary(in.Str, regs[in.A], regs[in.B])
			if err != nil {
				return Value{}, err
			}
			regs[in.Dst] = v
		case ir.OpUnary:
			regs[in.Dst] = unary(in.Str, regs[in.A])
		case ir.OpFold:
			regs[in.Dst] = fold(in.Str, regs[in.A])
		case ir.OpCastToInt:
			regs[in.Dst] = castToInt(regs[in.A])
		case ir.OpCastToWorld:
			regs[in.Dst] = castToWorld(regs[in.A])
		case ir.OpVectorConstruct:
			regs[in.Dst] = vectorConstruct(in.Args, regs)
		case ir.OpVectorIndex:
			v, err := vectorIndex(regs[in.A], regs[in.B])
			if err != nil {
				return Value{}, err
			}
			regs[in.Dst] = v
		case ir.OpSelect:
			if regs[in.A].truthy() {
				regs[in.Dst] = regs[in.B]
			} else {
				regs[in.Dst] = regs[in.C]
			}
		case ir.OpCall:
			callArgs := make([]Value, len(in.Args))
			for i, r := range in.Args {
				callArgs[i] = regs[r]
			}
			callee := m.Module.FunctionByName(in.Str)
			if callee == nil {
				return Value{}, fmt.Errorf("call to unknown function %q", in.Str)
			}
			result, err := m.Run(callee, callArgs)
			if err != nil {
				return Value{}, err
			}
			regs[in.Dst] = result
		case ir.OpGetGlobal:
			idx := m.Module.GlobalIndex(in.Str)
			regs[in.Dst] = m.Globals[idx]
		case ir.OpSetGlobal:
			idx := m.Module.GlobalIndex(in.Str)
			m.Globals[idx] = regs[in.A].clone()
		case ir.OpJump:
			pc = labels[in.Str]
			continue
		case ir.OpJumpIfZero:
			if !regs[in.A].truthy() {
				pc = labels[in.Str]
				continue
			}
		case ir.OpReturn:
			return regs[in.A], nil
		case ir.OpReturnVoid:
			return Value{Base: types.Void}, nil
		default:
			return Value{}, fmt.Errorf("unhandled opcode %v", in.Op)
		}
		pc++
	}
	return Value{Base: types.Void}, nil
}
