package light

import (
	"math"

	"github.com/lixenwraith/luxengine/spatial"
	"github.com/lixenwraith/luxengine/vmath"
	"github.com/lixenwraith/luxengine/worldgeom"
)

// edge is one candidate world-geometry segment, translated into the
// light's origin-relative coordinate space.
type edge struct{ Start, End vmath.FVec2 }

// GeometryQuery is satisfied by a world geometry index (spatial.Hash of
// worldgeom.Segment) queried for candidate segments. Decoupling this
// package from worldgeom.GeometrySet keeps the tracer testable against
// a bare *spatial.Hash.
type GeometryQuery interface {
	Search(min, max vmath.IVec2) func(yield func(worldgeom.Segment) bool)
}

var _ GeometryQuery = (*spatial.Hash[worldgeom.Segment])(nil)

// candidateSet is the output of extraction: every vertex to sweep
// (sorted separately per light kind), the raw edge list for seeding the
// initial active set, and a vertex -> incident-edges index.
type candidateSet struct {
	vertices []vmath.FVec2
	edges    []edge
	byVertex map[vmath.FVec2][]edge
}

func worldBounds(origin vmath.FVec2, min, max vmath.FVec2) (vmath.IVec2, vmath.IVec2) {
	lo := vmath.F2Add(origin, min)
	hi := vmath.F2Add(origin, max)
	return vmath.IVec2{X: int64(math.Floor(lo.X)), Y: int64(math.Floor(lo.Y))},
		vmath.IVec2{X: int64(math.Ceil(hi.X)), Y: int64(math.Ceil(hi.Y))}
}

func (c *candidateSet) add(s, e vmath.FVec2) {
	g := edge{Start: s, End: e}
	c.edges = append(c.edges, g)
	if _, ok := c.byVertex[s]; !ok {
		c.vertices = append(c.vertices, s)
	}
	if _, ok := c.byVertex[e]; !ok {
		if s != e {
			c.vertices = append(c.vertices, e)
		}
	}
	c.byVertex[s] = append(c.byVertex[s], g)
	c.byVertex[e] = append(c.byVertex[e], g)
}

// gatherAngular implements spec.md §4.3.1 for angular lights: queries
// the [-R,R]^2 square, keeps segments crossing it in the correct
// (counter-clockwise) orientation, and appends the four corners of the
// bounding square as synthetic vertices.
func gatherAngular(geom GeometryQuery, origin vmath.FVec2, maxRange float64) *candidateSet {
	c := &candidateSet{byVertex: make(map[vmath.FVec2][]edge)}
	bound := vmath.FVec2{X: maxRange, Y: maxRange}
	negBound := vmath.F2Neg(bound)

	minW, maxW := worldBounds(origin, negBound, bound)
	for seg := range geom.Search(minW, maxW) {
		if seg.External {
			continue
		}
		gs := vmath.F2Sub(vmath.ToFVec2(seg.Start), origin)
		ge := vmath.F2Sub(vmath.ToFVec2(seg.End), origin)

		if !vmath.LineRectIntersectsF(gs, ge, negBound, bound) {
			continue
		}
		// Exclude geometry oriented clockwise around the origin: only
		// the non-solid half-plane (to the segment's left) should face
		// the light.
		if vmath.F2Cross(ge, gs) >= 0 {
			continue
		}
		c.add(gs, ge)
	}

	c.vertices = append(c.vertices,
		vmath.FVec2{X: -maxRange, Y: -maxRange},
		vmath.FVec2{X: maxRange, Y: -maxRange},
		vmath.FVec2{X: -maxRange, Y: maxRange},
		vmath.FVec2{X: maxRange, Y: maxRange},
	)
	return c
}

// gatherPlanar is gatherAngular's counterpart for plane lights: queries
// the AABB of the parallelogram spanned by ±offset and ±offset +
// R·normal_vec.
func gatherPlanar(geom GeometryQuery, light Light, origin vmath.FVec2) *candidateSet {
	c := &candidateSet{byVertex: make(map[vmath.FVec2][]edge)}
	off := light.GetOffset()
	v := vmath.F2Scale(light.NormalVec, light.MaxRange())

	a, b, cc, d := vmath.F2Neg(off), off, vmath.F2Sub(v, off), vmath.F2Add(v, off)
	minBound := fvMin(fvMin(a, b), fvMin(cc, d))
	maxBound := fvMax(fvMax(a, b), fvMax(cc, d))

	minW, maxW := worldBounds(origin, minBound, maxBound)
	for seg := range geom.Search(minW, maxW) {
		if seg.External {
			continue
		}
		gs := vmath.F2Sub(vmath.ToFVec2(seg.Start), origin)
		ge := vmath.F2Sub(vmath.ToFVec2(seg.End), origin)

		if !vmath.LineRectIntersectsF(gs, ge, minBound, maxBound) {
			continue
		}
		if vmath.F2Cross(vmath.F2Sub(ge, gs), v) >= 0 {
			continue
		}
		c.add(gs, ge)
	}

	c.vertices = append(c.vertices, vmath.F2Sub(v, off), vmath.F2Add(v, off))
	return c
}

// pointOnAngularGeometry finds the point g(t) = g.Start + t*(g.End -
// g.Start) where the ray from the origin through v crosses geometry g
// (spec.md §4.3.3 "get_angular_point_on_geometry").
func pointOnAngularGeometry(v vmath.FVec2, g edge) vmath.FVec2 {
	gVec := vmath.F2Sub(g.End, g.Start)
	d := vmath.F2Cross(v, gVec)
	if d == 0 {
		return vmath.FVec2{}
	}
	t := vmath.F2Cross(g.Start, v) / d
	return vmath.F2Add(g.Start, vmath.F2Scale(gVec, t))
}

// pointOnPlanarGeometry is pointOnAngularGeometry's counterpart for the
// planar sweep: finds where the line through v parallel to normalVec
// crosses g.
func pointOnPlanarGeometry(normalVec, v vmath.FVec2, g edge) vmath.FVec2 {
	gVec := vmath.F2Sub(g.End, g.Start)
	d := vmath.F2Cross(gVec, normalVec)
	if d == 0 {
		return vmath.FVec2{}
	}
	t := vmath.F2Cross(gVec, vmath.F2Sub(g.Start, v)) / d
	return vmath.F2Add(v, vmath.F2Scale(normalVec, t))
}
