// Package ir implements Yang's intermediate representation (spec.md
// §4.6, C7): a linear three-address-code form lowered from a checked
// AST, with a String() printer standing in for print_ir().
//
// The full specification calls for an LLVM-like SSA module with basic
// blocks, a builder, and phi nodes, fed through a named optimisation
// pipeline and JIT trampolines. No LLVM binding exists anywhere in the
// example pack (the only register-based execution model available is
// the sentra-language bytecode VM), so this package instead lowers to
// a simplified register-addressed instruction list executed directly
// by yang/vm — registers are mutable rather than single-assignment,
// and control flow is expressed with labels and conditional jumps
// instead of block arguments/phi. This keeps every operation the spec
// names (global struct, Euclidean division, w2i floor, vector
// broadcast, short-circuit control flow) while dropping only the
// specific LLVM machinery no dependency in the pack can provide; see
// DESIGN.md for the full rationale.
package ir

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/luxengine/yang/types"
)

// Reg identifies a value-holding register within one function.
type Reg int

// Op enumerates instruction opcodes.
type Op int

const (
	OpConstInt Op = iota
	OpConstWorld
	OpMove
	OpBinary
	OpUnary
	OpFold
	OpCastToInt
	OpCastToWorld
	OpVectorConstruct
	OpVectorIndex
	OpSelect
	OpCall
	OpGetGlobal
	OpSetGlobal
	OpLabel
	OpJump
	OpJumpIfZero
	OpReturn
	OpReturnVoid
)

// Instr is one IR instruction. Not every field is meaningful for every
// Op; see the comment on each Op's emitter in lower.go.
type Instr struct {
	Op       Op
	Dst      Reg
	A, B, C  Reg // C is the else-value operand of OpSelect
	Args     []Reg
	IntVal   int64
	WorldVal float64
	Str      string // operator text, global/function/label name
	Type     types.Type
}

func (i Instr) String() string {
	switch i.Op {
	case OpConstInt:
		return fmt.Sprintf("r%d = const.int %d", i.Dst, i.IntVal)
	case OpConstWorld:
		return fmt.Sprintf("r%d = const.world %g", i.Dst, i.WorldVal)
	case OpMove:
		return fmt.Sprintf("r%d = r%d", i.Dst, i.A)
	case OpBinary:
		return fmt.Sprintf("r%d = r%d %s r%d", i.Dst, i.A, i.Str, i.B)
	case OpUnary:
		return fmt.Sprintf("r%d = %sr%d", i.Dst, i.Str, i.A)
	case OpFold:
		return fmt.Sprintf("r%d = %sr%d", i.Dst, i.Str, i.A)
	case OpCastToInt:
		return fmt.Sprintf("r%d = w2i r%d", i.Dst, i.A)
	case OpCastToWorld:
		return fmt.Sprintf("r%d = i2w r%d", i.Dst, i.A)
	case OpVectorConstruct:
		return fmt.Sprintf("r%d = vec%s", i.Dst, regList(i.Args))
	case OpVectorIndex:
		return fmt.Sprintf("r%d = r%d[r%d]", i.Dst, i.A, i.B)
	case OpSelect:
		return fmt.Sprintf("r%d = select r%d ? r%d : r%d", i.Dst, i.A, i.B, i.C)
	case OpCall:
		return fmt.Sprintf("r%d = call %s%s", i.Dst, i.Str, regList(i.Args))
	case OpGetGlobal:
		return fmt.Sprintf("r%d = global_get_%s()", i.Dst, i.Str)
	case OpSetGlobal:
		return fmt.Sprintf("global_set_%s(r%d)", i.Str, i.A)
	case OpLabel:
		return i.Str + ":"
	case OpJump:
		return "jump " + i.Str
	case OpJumpIfZero:
		return fmt.Sprintf("jump_if_zero r%d, %s", i.A, i.Str)
	case OpReturn:
		return fmt.Sprintf("return r%d", i.A)
	case OpReturnVoid:
		return "return"
	default:
		return "<unknown op>"
	}
}

func regList(rs []Reg) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("r%d", r)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Function is one IR function: a flat register machine with an
// implicit global-data parameter (spec.md §4.6's "implicit first
// parameter, a pointer to this struct" — represented here as the
// interpreter's global slice rather than a literal pointer argument,
// since yang/vm has no separate memory model to pass it through).
type Function struct {
	Name     string
	Export   bool
	Params   []types.Type
	ParamReg []Reg // register each parameter is bound to on entry
	Ret      types.Type
	NumRegs  int
	Code     []Instr
}

func (f *Function) String() string {
	var b strings.Builder
	linkage := "internal"
	if f.Export {
		linkage = "external"
	}
	fmt.Fprintf(&b, "function %s %s(%d params) -> %s {\n", linkage, f.Name, len(f.Params), f.Ret)
	for _, in := range f.Code {
		if in.Op == OpLabel {
			fmt.Fprintf(&b, "%s\n", in)
		} else {
			fmt.Fprintf(&b, "    %s\n", in)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// Global is one field of the per-program opaque global struct
// (spec.md §4.6), in declaration order.
type Global struct {
	Name string
	Type types.Type
	Init *Function // the shared !global_init function, void(no args), writing every global in declaration order
}

// Module is a full compiled program: the global struct layout and
// every function, mirroring spec.md §4.6's !global_alloc/!global_free
// and per-global getter/setter exports.
type Module struct {
	Globals   []Global
	Functions []*Function
}

// String reconstructs a textual rendering of the module, standing in
// for print_ir() (spec.md §4.7).
func (m *Module) String() string {
	var b strings.Builder
	b.WriteString("global struct {\n")
	for _, g := range m.Globals {
		fmt.Fprintf(&b, "    %s %s\n", g.Type, g.Name)
	}
	b.WriteString("}\n\n")
	for _, f := range m.Functions {
		b.WriteString(f.String())
		b.WriteString("\n")
	}
	return b.String()
}

// FunctionByName finds a function by source name, or nil.
func (m *Module) FunctionByName(name string) *Function {
	for _, f := range m.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// GlobalIndex finds a global's slot index by name, or -1.
func (m *Module) GlobalIndex(name string) int {
	for i, g := range m.Globals {
		if g.Name == name {
			return i
		}
	}
	return -1
}
