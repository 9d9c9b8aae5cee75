package light

import "github.com/lixenwraith/luxengine/vmath"

// Trace implements the public contract of spec.md §4.3: trace(light,
// origin, geometry) -> LightTrace. Deterministic and side-effect free.
func Trace(geom GeometryQuery, light Light, origin vmath.FVec2) LightTrace {
	if light.IsPlanar() {
		return TracePlanar(geom, light, origin)
	}
	return TraceAngular(geom, light, origin)
}

// FalloffTrace computes a second trace using full_range in place of
// max_range, against the same geometry index (a second search, bounded
// by full_range), for a renderer to
// blend against the primary trace as a soft falloff edge
// (SPEC_FULL.md §4.10, grounded on lighting.cpp's range/falloff_range
// split consumed by the light shader).
func FalloffTrace(geom GeometryQuery, light Light, origin vmath.FVec2) LightTrace {
	inner := light
	inner.FalloffRange = 0
	return Trace(geom, inner, origin)
}

// Resolve produces the cone-sliced trace a renderer should actually
// draw for light: the full trace for non-cone lights, or MakeConeTrace
// applied to it for a cone light (spec.md §4.3.4).
func Resolve(trace LightTrace, light Light) LightTrace {
	if !light.IsCone() {
		return trace
	}
	return MakeConeTrace(trace, light.Angle, light.Aperture)
}
