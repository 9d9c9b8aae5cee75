package main

import (
	"github.com/lixenwraith/luxengine/internal/logx"
	"github.com/lixenwraith/luxengine/yang"
	"github.com/lixenwraith/luxengine/yang/types"
	"github.com/lixenwraith/luxengine/yang/vm"
)

// defaultRig is the fallback light-rig script used when config.Yang.ScriptDir
// has no rig.yang file to load. It drives one light in a slow loop: its
// position oscillates along a triangle wave and its tint cycles between two
// colours, exercising globals, locals, casts, vector construction and
// Euclidean modulo all in one small program (spec.md §4.5-§4.6).
const defaultRig = `
global {
    var t int = 0;
    var period int = 240;
    var baseX world = 20.;
    var baseY world = 10.;
    var amplitude world = 9.;
    var tintA world3 = (0.15, 0.85, 1.0);
    var tintB world3 = (1.0, 0.55, 0.15);
}

int triangle(int phase, int length) {
    var half int = length / 2;
    var m int = phase % length;
    if (m < half) {
        return m;
    }
    return length - m;
}

export void tick() {
    t = t + 1;
}

export world lightX() {
    var wave int = triangle(t, period);
    var span world = amplitude * 2.;
    return baseX - amplitude + span * wave. / period.;
}

export world lightY() {
    return baseY;
}

export world3 lightColor() {
    var half int = period / 2;
    var m int = t % period;
    if (m < half) {
        return tintA;
    }
    return tintB;
}

export world lightAngle() {
    return t. * 0.03;
}
`

// rig binds a compiled light-rig program to one running Instance and exposes
// its per-frame outputs as plain Go values, keeping the tcell draw loop free
// of yang/types bookkeeping.
type rig struct {
	program  *yang.Program
	instance *yang.Instance
}

// newRig compiles source under name and binds a fresh Instance. A compile
// failure is reported through log rather than returned, since the caller
// falls back to defaultRig on any error (spec.md §7's "never fatal" policy
// extended to the demo's own script loading).
func newRig(log *logx.Logger, name, source string) (*rig, bool) {
	prog := yang.NewProgram(name, source)
	if !prog.Success() {
		for _, d := range prog.Diagnostics() {
			log.Errorf("rig %s: %s", name, d)
		}
		return nil, false
	}
	inst, err := yang.NewInstance(prog)
	if err != nil {
		log.Errorf("rig %s: %v", name, err)
		return nil, false
	}
	return &rig{program: prog, instance: inst}, true
}

func (r *rig) tick() {
	if _, err := r.instance.Call("tick", types.VoidType()); err != nil {
		return
	}
}

// state is one frame's worth of scripted light parameters.
type state struct {
	X, Y    float64
	R, G, B float64
	Angle   float64
}

func (r *rig) state() state {
	x, _ := r.instance.Call("lightX", types.Scalar(types.World))
	y, _ := r.instance.Call("lightY", types.Scalar(types.World))
	c, _ := r.instance.Call("lightColor", types.Vector(types.World, 3))
	a, _ := r.instance.Call("lightAngle", types.Scalar(types.World))
	return state{
		X:     scalarF(x),
		Y:     scalarF(y),
		R:     componentF(c, 0),
		G:     componentF(c, 1),
		B:     componentF(c, 2),
		Angle: scalarF(a),
	}
}

func scalarF(v vm.Value) float64 {
	if len(v.Floats) == 0 {
		return 0
	}
	return v.Floats[0]
}

func componentF(v vm.Value, i int) float64 {
	if i >= len(v.Floats) {
		return 0
	}
	return v.Floats[i]
}
