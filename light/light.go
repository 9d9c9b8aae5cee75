// Package light implements the 2D visibility tracer of spec.md §4.3
// (C4): given a light source and a world-geometry index, produce the
// ordered polygon/polyline of points describing what the light
// illuminates.
package light

import "github.com/lixenwraith/luxengine/vmath"

// Colour is a light's emitted colour, carried through untouched by the
// tracer itself; consumers (a renderer) interpret it.
type Colour struct{ R, G, B, A float64 }

// Light is the data model of spec.md §4 "Light": everything the tracer
// needs about one light source except its resolved world-space origin,
// which the caller supplies separately (it comes from the light's
// owning script).
type Light struct {
	Offset       vmath.FVec2
	FullRange    float64
	FalloffRange float64
	Colour       Colour
	LayerValue   float64
	Angle        float64
	Aperture     float64
	NormalVec    vmath.FVec2
}

// MaxRange is full_range + falloff_range, the radius (or plane length)
// the tracer searches out to.
func (l Light) MaxRange() float64 { return l.FullRange + l.FalloffRange }

// IsPlanar reports whether the light is a plane light (sweeps along a
// line) rather than an angular point light (sweeps radially).
func (l Light) IsPlanar() bool { return !vmath.F2IsZero(l.NormalVec) }

// IsCone reports whether an angular light's visible range is restricted
// to a wedge narrower than a full circle.
func (l Light) IsCone() bool { return !l.IsPlanar() && l.Aperture < vmath.Pi }

// GetOrigin resolves the light's effective origin: for angular lights
// this is the owning script's origin plus the light's local offset; for
// planar lights the offset instead defines the plane's extent and the
// origin is the script's origin unchanged.
func (l Light) GetOrigin(scriptOrigin vmath.FVec2) vmath.FVec2 {
	if l.IsPlanar() {
		return scriptOrigin
	}
	return vmath.F2Add(scriptOrigin, l.Offset)
}

// GetOffset returns the light's offset, flipped if necessary so it is
// always oriented consistently relative to normal_vec (so a plane
// light's "left" and "right" edges don't swap when offset is negated).
func (l Light) GetOffset() vmath.FVec2 {
	if !l.IsPlanar() {
		return l.Offset
	}
	if vmath.F2Cross(l.Offset, l.NormalVec) >= 0 {
		return l.Offset
	}
	return vmath.F2Neg(l.Offset)
}

// OverlapsRect reports whether the light's illuminated region can
// possibly intersect the axis-aligned rectangle [min, max), so callers
// can cull lights before tracing (tracing itself never needs this —
// the trace is still well-defined, just a waste of work).
func (l Light) OverlapsRect(origin, min, max vmath.FVec2) bool {
	r := l.MaxRange()
	bound := vmath.FVec2{X: r, Y: r}
	if !l.IsPlanar() {
		lo := vmath.F2Sub(origin, bound)
		hi := vmath.F2Add(origin, bound)
		return hi.X >= min.X && hi.Y >= min.Y && lo.X < max.X && lo.Y < max.Y
	}

	off := l.GetOffset()
	a := vmath.F2Sub(origin, off)
	b := vmath.F2Add(origin, off)
	c := vmath.F2Add(a, vmath.F2Scale(l.NormalVec, r))
	d := vmath.F2Add(b, vmath.F2Scale(l.NormalVec, r))

	lightMin := fvMin(fvMin(a, b), fvMin(c, d))
	lightMax := fvMax(fvMax(a, b), fvMax(c, d))
	return lightMax.X > min.X && lightMax.Y > min.Y && lightMin.X < max.X && lightMin.Y < max.Y
}

func fvMin(a, b vmath.FVec2) vmath.FVec2 {
	return vmath.FVec2{X: minF(a.X, b.X), Y: minF(a.Y, b.Y)}
}
func fvMax(a, b vmath.FVec2) vmath.FVec2 {
	return vmath.FVec2{X: maxF(a.X, b.X), Y: maxF(a.Y, b.Y)}
}
func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// TraceKey is the cache key of spec.md §4.3.5. angle is deliberately
// excluded so a rotating cone light reuses its full 360-degree trace;
// offset only participates in equality for planar lights, since
// angular lights don't use it to shape the trace.
type TraceKey struct {
	Origin    vmath.FVec2
	MaxRange  float64
	NormalVec vmath.FVec2
	Offset    vmath.FVec2
}

// NewTraceKey builds the cache key for light at the given resolved
// origin. Offset is left zero for non-planar lights so that two
// angular lights differing only in an offset the angular trace never
// consults still hash and compare equal as map keys — matching
// TraceKey's definition that offset only participates when normal_vec
// is non-zero.
func NewTraceKey(light Light, origin vmath.FVec2) TraceKey {
	key := TraceKey{
		Origin:    origin,
		MaxRange:  light.MaxRange(),
		NormalVec: light.NormalVec,
	}
	if light.IsPlanar() {
		key.Offset = light.GetOffset()
	}
	return key
}
