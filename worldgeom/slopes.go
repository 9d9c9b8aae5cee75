package worldgeom

import "github.com/lixenwraith/luxengine/vmath"

// tileDelta is a displacement in whole tiles, used only while tracing a
// chain of compatible sloped tiles.
type tileDelta struct{ dx, dy int64 }

// consistentTraversal returns the canonical direction assigned to tag's
// family so that adjacent matching shapes form one continuous polyline
// (spec.md §4.2 rule 2, glossary "Consistent traversal"). positive
// selects the two opposite scan directions used to find both ends of a
// run.
func consistentTraversal(tag Tag, positive bool) tileDelta {
	sign := func(dx, dy int64) tileDelta {
		if positive {
			return tileDelta{dx, dy}
		}
		return tileDelta{-dx, -dy}
	}
	switch tag {
	case TagHalfU, TagHalfD:
		return sign(1, 0)
	case TagHalfL, TagHalfR:
		return sign(0, 1)

	case TagSlope1UL, TagSlope1DR:
		return sign(1, 1)
	case TagSlope1UR, TagSlope1DL:
		return sign(1, -1)

	case TagSlopeHULA, TagSlopeHDRB:
		if positive {
			return tileDelta{1, 1}
		}
		return tileDelta{-1, 0}
	case TagSlopeHULB, TagSlopeHDRA:
		if positive {
			return tileDelta{1, 0}
		}
		return tileDelta{-1, -1}
	case TagSlopeHURA, TagSlopeHDLB:
		if positive {
			return tileDelta{1, 0}
		}
		return tileDelta{-1, 1}
	case TagSlopeHURB, TagSlopeHDLA:
		if positive {
			return tileDelta{1, -1}
		}
		return tileDelta{-1, 0}

	case TagSlope2ULA, TagSlope2DRB:
		if positive {
			return tileDelta{0, 1}
		}
		return tileDelta{-1, -1}
	case TagSlope2ULB, TagSlope2DRA:
		if positive {
			return tileDelta{1, 1}
		}
		return tileDelta{0, -1}
	case TagSlope2URA, TagSlope2DLB:
		if positive {
			return tileDelta{0, 1}
		}
		return tileDelta{1, -1}
	case TagSlope2DLA, TagSlope2URB:
		if positive {
			return tileDelta{-1, 1}
		}
		return tileDelta{0, -1}

	default:
		return tileDelta{}
	}
}

// expectedTraversal returns the sloped tag that must appear next, along
// consistentTraversal's direction, for the run to continue. The slope1
// family and half_* family have no partner (they already span a whole
// tile edge by themselves); only the two-part slope2/slopeh families
// pair up.
func expectedTraversal(tag Tag) Tag {
	switch tag {
	case TagSlope2ULA:
		return TagSlope2ULB
	case TagSlope2ULB:
		return TagSlope2ULA
	case TagSlope2URA:
		return TagSlope2URB
	case TagSlope2URB:
		return TagSlope2URA
	case TagSlope2DLA:
		return TagSlope2DLB
	case TagSlope2DLB:
		return TagSlope2DLA
	case TagSlope2DRA:
		return TagSlope2DRB
	case TagSlope2DRB:
		return TagSlope2DRA
	case TagSlopeHULA:
		return TagSlopeHULB
	case TagSlopeHULB:
		return TagSlopeHULA
	case TagSlopeHURA:
		return TagSlopeHURB
	case TagSlopeHURB:
		return TagSlopeHURA
	case TagSlopeHDLA:
		return TagSlopeHDLB
	case TagSlopeHDLB:
		return TagSlopeHDLA
	case TagSlopeHDRA:
		return TagSlopeHDRB
	case TagSlopeHDRB:
		return TagSlopeHDRA
	default:
		return tag
	}
}

// addTraversalEdge builds the one segment for a traced run of sloped
// tiles from tile coordinate min to tile coordinate max (inclusive),
// whose end tags are minTag and maxTag respectively, using each family's
// configured endpoint offsets within its tile (spec.md §4.2 rule 2,
// "endpoint offsets for the start and end tags").
func addTraversalEdge(d TileDims, min, max vmath.IVec2, minTag, maxTag Tag) (Segment, bool) {
	minOrigin := d.tileOrigin(min.X, min.Y)
	maxOrigin := d.tileOrigin(max.X, max.Y)

	switch minTag {
	case TagHalfU:
		return NewSegment(vmath.V2Add(maxOrigin, d.r()), vmath.V2Add(minOrigin, d.l()), false), true
	case TagHalfD:
		return NewSegment(vmath.V2Add(minOrigin, d.l()), vmath.V2Add(maxOrigin, d.r()), false), true
	case TagHalfL:
		return NewSegment(vmath.V2Add(minOrigin, d.u()), vmath.V2Add(maxOrigin, d.dn()), false), true
	case TagHalfR:
		return NewSegment(vmath.V2Add(maxOrigin, d.dn()), vmath.V2Add(minOrigin, d.u()), false), true

	case TagSlope1UL:
		return NewSegment(vmath.V2Add(minOrigin, d.ul()), vmath.V2Add(maxOrigin, d.dr()), false), true
	case TagSlope1UR:
		return NewSegment(vmath.V2Add(minOrigin, d.dl()), vmath.V2Add(maxOrigin, d.ur()), false), true
	case TagSlope1DL:
		return NewSegment(vmath.V2Add(maxOrigin, d.ur()), vmath.V2Add(minOrigin, d.dl()), false), true
	case TagSlope1DR:
		return NewSegment(vmath.V2Add(maxOrigin, d.dr()), vmath.V2Add(minOrigin, d.ul()), false), true
	}

	pick := func(cond bool, a, b vmath.IVec2) vmath.IVec2 {
		if cond {
			return a
		}
		return b
	}

	switch {
	case minTag == TagSlopeHULA || minTag == TagSlopeHULB:
		start := vmath.V2Add(minOrigin, pick(minTag == TagSlopeHULA, d.l(), d.ul()))
		end := vmath.V2Add(maxOrigin, pick(maxTag == TagSlopeHULB, d.r(), d.dr()))
		return NewSegment(start, end, false), true
	case minTag == TagSlopeHURA || minTag == TagSlopeHURB:
		start := vmath.V2Add(minOrigin, pick(minTag == TagSlopeHURB, d.l(), d.dl()))
		end := vmath.V2Add(maxOrigin, pick(maxTag == TagSlopeHURA, d.r(), d.ur()))
		return NewSegment(start, end, false), true
	case minTag == TagSlopeHDLA || minTag == TagSlopeHDLB:
		start := vmath.V2Add(maxOrigin, pick(maxTag == TagSlopeHDLB, d.r(), d.ur()))
		end := vmath.V2Add(minOrigin, pick(minTag == TagSlopeHDLA, d.l(), d.dl()))
		return NewSegment(start, end, false), true
	case minTag == TagSlopeHDRA || minTag == TagSlopeHDRB:
		start := vmath.V2Add(maxOrigin, pick(maxTag == TagSlopeHDRA, d.r(), d.dr()))
		end := vmath.V2Add(minOrigin, pick(minTag == TagSlopeHDRB, d.l(), d.ul()))
		return NewSegment(start, end, false), true

	case minTag == TagSlope2ULA || minTag == TagSlope2ULB:
		start := vmath.V2Add(minOrigin, pick(minTag == TagSlope2ULB, d.u(), d.ul()))
		end := vmath.V2Add(maxOrigin, pick(maxTag == TagSlope2ULA, d.dn(), d.dr()))
		return NewSegment(start, end, false), true
	case minTag == TagSlope2URA || minTag == TagSlope2URB:
		start := vmath.V2Add(minOrigin, pick(minTag == TagSlope2URA, d.dn(), d.dl()))
		end := vmath.V2Add(maxOrigin, pick(maxTag == TagSlope2URB, d.u(), d.ur()))
		return NewSegment(start, end, false), true
	case minTag == TagSlope2DLA || minTag == TagSlope2DLB:
		start := vmath.V2Add(minOrigin, pick(minTag == TagSlope2DLA, d.u(), d.ur()))
		end := vmath.V2Add(maxOrigin, pick(maxTag == TagSlope2DLB, d.dn(), d.dl()))
		return NewSegment(start, end, false), true
	case minTag == TagSlope2DRA || minTag == TagSlope2DRB:
		start := vmath.V2Add(maxOrigin, pick(maxTag == TagSlope2DRB, d.dn(), d.dr()))
		end := vmath.V2Add(minOrigin, pick(minTag == TagSlope2DRA, d.u(), d.ul()))
		return NewSegment(start, end, false), true
	}
	return Segment{}, false
}

// traceSlopedEdges implements spec.md §4.2 rule 2: for every tile whose
// tag is sloped (has a diagonal or two-part edge), find the maximal run
// of compatible tiles in both consistent-traversal directions and emit
// one segment for the run.
func traceSlopedEdges(c *Cell) []Segment {
	d := c.Dims
	pending := make(map[vmath.IVec2]struct{})
	for ty := int64(0); ty < d.CellHeight; ty++ {
		for tx := int64(0); tx < d.CellWidth; tx++ {
			tag := c.At(tx, ty)
			if tag.IsSloped() || isHalfTag(tag) {
				pending[vmath.IVec2{X: tx, Y: ty}] = struct{}{}
			}
		}
	}

	var out []Segment
	for len(pending) > 0 {
		var v vmath.IVec2
		for k := range pending {
			v = k
			break
		}
		delete(pending, v)
		collision := c.At(v.X, v.Y)

		trace := func(positive bool) (vmath.IVec2, Tag) {
			cur := collision
			u := v
			dir := consistentTraversal(cur, positive)
			for {
				if dir == (tileDelta{}) {
					break
				}
				nx, ny := u.X+dir.dx, u.Y+dir.dy
				next := c.At(nx, ny)
				if next != expectedTraversal(cur) {
					break
				}
				u = vmath.IVec2{X: nx, Y: ny}
				delete(pending, u)
				cur = next
				dir = consistentTraversal(cur, positive)
			}
			return u, cur
		}

		max, maxTag := trace(true)
		min, minTag := trace(false)

		if seg, ok := addTraversalEdge(d, min, max, minTag, maxTag); ok {
			out = append(out, seg)
		}
	}
	return out
}

func isHalfTag(tag Tag) bool {
	switch tag {
	case TagHalfU, TagHalfD, TagHalfL, TagHalfR:
		return true
	default:
		return false
	}
}
