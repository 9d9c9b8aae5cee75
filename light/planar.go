package light

import (
	"sort"

	"github.com/lixenwraith/luxengine/vmath"
)

// planarLess implements spec.md §4.3.2's planar vertex order: project
// onto plane_vec = (normal_y, -normal_x) and sort along that line, ties
// broken by signed distance along normal_vec.
func planarLess(normalVec vmath.FVec2) func(a, b vmath.FVec2) bool {
	planeVec := vmath.FVec2{X: normalVec.Y, Y: -normalVec.X}
	return func(a, b vmath.FVec2) bool {
		ad, bd := vmath.F2Dot(a, planeVec), vmath.F2Dot(b, planeVec)
		if ad != bd {
			return ad < bd
		}
		return vmath.F2Dot(a, normalVec) < vmath.F2Dot(b, normalVec)
	}
}

// TracePlanar implements spec.md §4.3 for a plane light: produces the
// open visibility polyline along the light's plane.
func TracePlanar(geom GeometryQuery, light Light, origin vmath.FVec2) LightTrace {
	cands := gatherPlanar(geom, light, origin)
	less := planarLess(light.NormalVec)
	sort.Slice(cands.vertices, func(i, j int) bool {
		return less(cands.vertices[i], cands.vertices[j])
	})
	return sweepPlanar(cands, light)
}

func sweepPlanar(c *candidateSet, light Light) LightTrace {
	normalVec := light.NormalVec
	first := c.vertices[0]

	stack := make(map[edge]struct{})
	for _, g := range c.edges {
		if vmath.F2Cross(vmath.F2Sub(g.Start, first), normalVec) < 0 &&
			vmath.F2Cross(vmath.F2Sub(g.End, first), normalVec) >= 0 {
			stack[g] = struct{}{}
		}
	}

	var out LightTrace
	prev := closestPlanar(light, first, stack)
	addFirst := len(stack) == 0
	planeVec := vmath.FVec2{X: normalVec.Y, Y: -normalVec.X}

	for i, v := range c.vertices {
		for _, g := range c.byVertex[v] {
			if v == g.End {
				stack[g] = struct{}{}
			} else {
				delete(stack, g)
			}
		}

		if i < len(c.vertices)-1 {
			next := c.vertices[i+1]
			if vmath.F2Dot(v, planeVec) == vmath.F2Dot(next, planeVec) {
				continue
			}
		}

		next := closestPlanar(light, v, stack)
		addLast := i == len(c.vertices)-1 && len(stack) == 0
		if next == prev && !addFirst && !addLast {
			continue
		}
		addFirst = false

		out = append(out, pointOnPlanarGeometry(normalVec, v, prev), pointOnPlanarGeometry(normalVec, v, next))
		prev = next
	}
	return out
}

// closestPlanar finds the active-set segment whose intersection with
// the line through v (parallel to normal_vec) is nearest the light's
// plane, falling back to the far plane at max_range when the active set
// is empty.
func closestPlanar(light Light, v vmath.FVec2, stack map[edge]struct{}) edge {
	off := light.GetOffset()
	planePoint := pointOnPlanarGeometry(light.NormalVec, v, edge{Start: vmath.F2Neg(off), End: off})

	var closest edge
	first := true
	minDistSq := 0.0
	for g := range stack {
		p := pointOnPlanarGeometry(light.NormalVec, v, g)
		d := vmath.F2LenSq(vmath.F2Sub(p, planePoint))
		if first || d < minDistSq {
			minDistSq = d
			closest = g
			first = false
		}
	}
	if !first {
		return closest
	}

	r := light.MaxRange()
	far := vmath.F2Scale(light.NormalVec, r)
	return edge{Start: vmath.F2Add(far, off), End: vmath.F2Sub(far, off)}
}
