package vmath

// AABB is an axis-aligned bounding box over integer coordinates, the key
// the spatial hash (spatial.Hash) buckets entries by.
type AABB struct {
	Min, Max IVec2
}

func NewAABB(min, max IVec2) AABB { return AABB{Min: min, Max: max} }

// BoundSegment returns the AABB of the segment start-end.
func BoundSegment(start, end IVec2) AABB {
	min := IVec2{X: minI(start.X, end.X), Y: minI(start.Y, end.Y)}
	max := IVec2{X: maxI(start.X, end.X), Y: maxI(start.Y, end.Y)}
	return AABB{Min: min, Max: max}
}

// Overlaps reports whether two AABBs intersect, inclusive of touching
// edges — the spatial hash's search contract allows false positives from
// this approximation; callers refine with an exact test.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y
}

func minI(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxI(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// LineRectIntersectsF is the exact line-segment/rectangle intersection
// test used by the light tracer's candidate extraction (spec.md §4.3.1)
// to discard segments whose line does not cross the query rectangle.
// The rectangle is given by its min/max corners; the segment by its two
// endpoints, all in the same (origin-relative) coordinate frame.
func LineRectIntersectsF(s, e FVec2, min, max FVec2) bool {
	// Trivial accept: either endpoint inside the rect.
	if pointInRectF(s, min, max) || pointInRectF(e, min, max) {
		return true
	}
	// Trivial reject: segment's own AABB misses the rect.
	sMinX, sMaxX := s.X, e.X
	if sMinX > sMaxX {
		sMinX, sMaxX = sMaxX, sMinX
	}
	sMinY, sMaxY := s.Y, e.Y
	if sMinY > sMaxY {
		sMinY, sMaxY = sMaxY, sMinY
	}
	if sMaxX < min.X || sMinX > max.X || sMaxY < min.Y || sMinY > max.Y {
		return false
	}
	// Test against the four rectangle edges.
	corners := [4]FVec2{
		{min.X, min.Y}, {max.X, min.Y}, {max.X, max.Y}, {min.X, max.Y},
	}
	for i := 0; i < 4; i++ {
		a := corners[i]
		b := corners[(i+1)%4]
		if segmentsIntersect(s, e, a, b) {
			return true
		}
	}
	return false
}

func pointInRectF(p, min, max FVec2) bool {
	return p.X >= min.X && p.X <= max.X && p.Y >= min.Y && p.Y <= max.Y
}

func segmentsIntersect(p1, p2, p3, p4 FVec2) bool {
	d1 := F2Cross(F2Sub(p4, p3), F2Sub(p1, p3))
	d2 := F2Cross(F2Sub(p4, p3), F2Sub(p2, p3))
	d3 := F2Cross(F2Sub(p2, p1), F2Sub(p3, p1))
	d4 := F2Cross(F2Sub(p2, p1), F2Sub(p4, p1))
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && pointInRectF(p3, minF(p1, p2), maxF(p1, p2)) {
		return true
	}
	if d2 == 0 && pointInRectF(p4, minF(p1, p2), maxF(p1, p2)) {
		return true
	}
	if d3 == 0 && pointInRectF(p1, minF(p3, p4), maxF(p3, p4)) {
		return true
	}
	if d4 == 0 && pointInRectF(p2, minF(p3, p4), maxF(p3, p4)) {
		return true
	}
	return false
}

func minF(a, b FVec2) FVec2 {
	return FVec2{X: minFloat(a.X, b.X), Y: minFloat(a.Y, b.Y)}
}

func maxF(a, b FVec2) FVec2 {
	return FVec2{X: maxFloat(a.X, b.X), Y: maxFloat(a.Y, b.Y)}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
