package light

import (
	"math"
	"sort"

	"github.com/lixenwraith/luxengine/vmath"
)

// LightTrace is the tracer's output (spec.md §4.3 "LightTrace"): an
// even-length sequence of points relative to the light's origin.
// Consecutive pairs (p[2i], p[2i+1]) are one edge of the visibility
// polygon (angular, cyclic) or polyline (planar, open).
type LightTrace []vmath.FVec2

// angularLess implements spec.md §4.3.2's angular vertex order: sort by
// polar angle starting at 0 (+X) increasing counter-clockwise, points
// in opposite half-planes resolved by the sign of y, ties broken by
// distance from the origin.
func angularLess(a, b vmath.FVec2) bool {
	if a.Y >= 0 && b.Y < 0 {
		return true
	}
	if a.Y < 0 && b.Y >= 0 {
		return false
	}
	if a.Y == 0 && b.Y == 0 {
		if a.X >= 0 && b.X >= 0 {
			return a.X < b.X
		}
		return a.X > b.X
	}
	d := vmath.F2Cross(b, a)
	if d != 0 {
		return d < 0
	}
	return vmath.F2LenSq(a) < vmath.F2LenSq(b)
}

// TraceAngular implements spec.md §4.3 for a non-planar light: produces
// the closed visibility polygon trace.
func TraceAngular(geom GeometryQuery, light Light, origin vmath.FVec2) LightTrace {
	maxRange := light.MaxRange()
	cands := gatherAngular(geom, origin, maxRange)
	sort.Slice(cands.vertices, func(i, j int) bool {
		return angularLess(cands.vertices[i], cands.vertices[j])
	})
	return sweepAngular(cands, maxRange)
}

func sweepAngular(c *candidateSet, maxRange float64) LightTrace {
	stack := make(map[edge]struct{})
	first := c.vertices[0]
	for _, g := range c.edges {
		if vmath.F2Cross(first, g.Start) < 0 && vmath.F2Cross(first, g.End) >= 0 {
			stack[g] = struct{}{}
		}
	}

	var out LightTrace
	prev := closestAngular(maxRange, first, stack)
	addFirst := len(stack) == 0

	for i, v := range c.vertices {
		for _, g := range c.byVertex[v] {
			if v == g.Start {
				stack[g] = struct{}{}
			} else {
				delete(stack, g)
			}
		}

		if i < len(c.vertices)-1 {
			next := c.vertices[i+1]
			if vmath.F2Cross(v, next) == 0 {
				continue
			}
		}

		next := closestAngular(maxRange, v, stack)
		if next == prev && !addFirst {
			continue
		}
		addFirst = false

		out = append(out, pointOnAngularGeometry(v, prev), pointOnAngularGeometry(v, next))
		prev = next
	}
	return out
}

// closestAngular finds the active-set segment whose intersection with
// the ray from the origin through v is nearest the origin, falling back
// to the max-range bounding square when the active set is empty.
func closestAngular(maxRange float64, v vmath.FVec2, stack map[edge]struct{}) edge {
	if len(stack) == 0 {
		return boundingSquareEdge(maxRange, v)
	}

	var closest edge
	first := true
	minDistSq := 0.0
	for g := range stack {
		p := pointOnAngularGeometry(v, g)
		d := vmath.F2LenSq(p)
		if first || d < minDistSq {
			minDistSq = d
			closest = g
			first = false
		}
	}
	return closest
}

// boundingSquareEdge picks the edge of the [-R,R]^2 square that v's
// octant faces, so the sweep sticks to the square's boundary when a
// long angular gap contains no real geometry.
func boundingSquareEdge(r float64, v vmath.FVec2) edge {
	ul := vmath.FVec2{X: -r, Y: -r}
	ur := vmath.FVec2{X: r, Y: -r}
	dl := vmath.FVec2{X: -r, Y: r}
	dr := vmath.FVec2{X: r, Y: r}

	switch {
	case v.X == v.Y:
		if v.X > 0 {
			return edge{Start: dr, End: dl}
		}
		return edge{Start: ul, End: ur}
	case v.X == -v.Y:
		if v.X > 0 {
			return edge{Start: ur, End: dr}
		}
		return edge{Start: dl, End: ul}
	case v.Y > 0 && v.Y >= math.Abs(v.X):
		return edge{Start: dr, End: dl}
	case v.Y < 0 && -v.Y >= math.Abs(v.X):
		return edge{Start: ul, End: ur}
	case v.X > 0 && v.X >= math.Abs(v.Y):
		return edge{Start: ur, End: dr}
	case v.X < 0 && -v.X >= math.Abs(v.Y):
		return edge{Start: dl, End: ul}
	default:
		return edge{}
	}
}
