package yang

import (
	"fmt"

	"github.com/lixenwraith/luxengine/yang/types"
	"github.com/lixenwraith/luxengine/yang/vm"
)

// Instance is one independent binding of a successful Program's global
// data (spec.md §4.7/§5: "each Instance exclusively owns exactly one
// global-data allocation... Instances of the same Program are
// independent; no shared mutable state").
type Instance struct {
	program *Program
	machine *vm.Machine
}

// NewInstance constructs an Instance from a successful Program. It
// returns an error if the Program failed to compile, matching the
// contract that an Instance must be built on a successful Program.
func NewInstance(p *Program) (*Instance, error) {
	if !p.Success() {
		return nil, fmt.Errorf("cannot instantiate a failed program %q", p.name)
	}
	m, err := vm.NewMachine(p.module)
	if err != nil {
		return nil, err
	}
	return &Instance{program: p, machine: m}, nil
}

// LookupError is spec.md §7 kind 4: an unknown symbol name or a
// requested static type that disagrees with the declared one. It is
// never fatal: getters return the default-constructed T, setters are
// no-ops, describing the mismatch in Error().
type LookupError struct {
	Name     string
	Expected types.Type
	Got      types.Type
	Reason   string // "unknown symbol" or "type mismatch"
}

func (e *LookupError) Error() string {
	if e.Reason == "unknown symbol" {
		return fmt.Sprintf("yang: unknown symbol %q", e.Name)
	}
	return fmt.Sprintf("yang: %q has type %s, requested %s", e.Name, e.Expected, e.Got)
}

// GetGlobal reads a global's current value. On a LookupError the
// returned Value is the zero value of the requested type.
func (inst *Instance) GetGlobal(name string, want types.Type) (vm.Value, error) {
	declared, ok := inst.program.globals[name]
	if !ok {
		return vm.ZeroValue(want), &LookupError{Name: name, Reason: "unknown symbol"}
	}
	if !declared.Equal(want) {
		return vm.ZeroValue(want), &LookupError{Name: name, Expected: declared, Got: want, Reason: "type mismatch"}
	}
	idx := inst.program.module.GlobalIndex(name)
	return inst.machine.Globals[idx], nil
}

// SetGlobal writes a global's value. On a LookupError it is a no-op.
func (inst *Instance) SetGlobal(name string, v vm.Value) error {
	declared, ok := inst.program.globals[name]
	if !ok {
		return &LookupError{Name: name, Reason: "unknown symbol"}
	}
	if !declared.Equal(v.Type()) {
		return &LookupError{Name: name, Expected: declared, Got: v.Type(), Reason: "type mismatch"}
	}
	idx := inst.program.module.GlobalIndex(name)
	inst.machine.Globals[idx] = v
	return nil
}

// Call invokes an exported function by name, type-checking args and
// the expected return type against the program's declared signature.
func (inst *Instance) Call(name string, ret types.Type, args ...vm.Value) (vm.Value, error) {
	sig, ok := inst.program.functions[name]
	if !ok {
		return vm.ZeroValue(ret), &LookupError{Name: name, Reason: "unknown symbol"}
	}
	if !sig.Func.Ret.Equal(ret) {
		return vm.ZeroValue(ret), &LookupError{Name: name, Expected: sig.Func.Ret, Got: ret, Reason: "type mismatch"}
	}
	if len(sig.Func.Params) != len(args) {
		return vm.ZeroValue(ret), fmt.Errorf("yang: %q expects %d arguments, got %d", name, len(sig.Func.Params), len(args))
	}
	for i, a := range args {
		if !sig.Func.Params[i].Equal(a.Type()) {
			return vm.ZeroValue(ret), &LookupError{Name: name, Expected: sig.Func.Params[i], Got: a.Type(), Reason: "type mismatch"}
		}
	}
	return inst.machine.Call(name, args)
}
