package worldgeom

import "github.com/lixenwraith/luxengine/vmath"

// CellCoord identifies a cell within the world's cell grid.
type CellCoord struct{ X, Y int64 }

func (c CellCoord) add(dx, dy int64) CellCoord { return CellCoord{X: c.X + dx, Y: c.Y + dy} }

func (c CellCoord) worldOffset(dims TileDims) vmath.IVec2 {
	size := dims.cellSizeWorld()
	return vmath.IVec2{X: c.X * size.X, Y: c.Y * size.Y}
}

// mergeLoop is a direct translation of the two-pointer zip that resolves
// provisional cell-boundary segments against an actual neighbour: the
// per-cell sweep assumes "out of cell" is solid, so each cell's
// boundary bucket only records where ITS OWN edge differs from that
// assumption. Walking both cells' lists together recovers the true
// boundary and classifies the remainder as external (spec.md §4.2,
// "Merging across cells").
func mergeLoop(
	out *[]Segment,
	aOffset, bOffset vmath.IVec2,
	aMin, aMax, bMin, bMax int64,
	aIdx, bIdx *int, a, b []Segment,
) {
	emit := func(start, end vmath.IVec2) {
		*out = append(*out, NewSegment(start, end, true))
	}

	if aMax < bMin {
		emit(vmath.V2Add(aOffset, a[*aIdx].Start), vmath.V2Add(aOffset, a[*aIdx].End))
		*aIdx++
		return
	}
	if bMax < aMin {
		emit(vmath.V2Add(bOffset, b[*bIdx].Start), vmath.V2Add(bOffset, b[*bIdx].End))
		*bIdx++
		return
	}

	if aMin != bMin {
		emit(vmath.V2Add(aOffset, a[*aIdx].Start), vmath.V2Add(bOffset, b[*bIdx].End))
	}

	switch {
	case aMax < bMax:
		b[*bIdx].End = vmath.V2Add(vmath.V2Sub(a[*aIdx].End, bOffset), aOffset)
		*aIdx++
	case aMax > bMax:
		a[*aIdx].Start = vmath.V2Add(vmath.V2Sub(b[*bIdx].Start, aOffset), bOffset)
		*bIdx++
	default:
		*aIdx++
		*bIdx++
	}
}

// mergeVertical reconciles cell A's Bottom bucket against the cell
// directly below it (B)'s Top bucket.
func mergeVertical(dims TileDims, aOffset, bOffset vmath.IVec2, aBottom, bTop []Segment) []Segment {
	top := append([]Segment(nil), aBottom...)
	bottom := append([]Segment(nil), bTop...)

	var out []Segment
	ti, bi := 0, 0
	for ti < len(top) && bi < len(bottom) {
		topMin, topMax := top[ti].Start.X, top[ti].End.X
		bottomMin, bottomMax := bottom[bi].End.X, bottom[bi].Start.X
		mergeLoop(&out, aOffset, bOffset, topMin, topMax, bottomMin, bottomMax, &ti, &bi, top, bottom)
	}
	for ; ti < len(top); ti++ {
		out = append(out, NewSegment(vmath.V2Add(aOffset, top[ti].Start), vmath.V2Add(aOffset, top[ti].End), true))
	}
	for ; bi < len(bottom); bi++ {
		out = append(out, NewSegment(vmath.V2Add(bOffset, bottom[bi].Start), vmath.V2Add(bOffset, bottom[bi].End), true))
	}
	return out
}

// mergeHorizontal reconciles cell A's Right bucket against the cell
// directly to its right (B)'s Left bucket.
func mergeHorizontal(dims TileDims, aOffset, bOffset vmath.IVec2, aRight, bLeft []Segment) []Segment {
	right := append([]Segment(nil), bLeft...)
	left := append([]Segment(nil), aRight...)

	var out []Segment
	ri, li := 0, 0
	for ri < len(right) && li < len(left) {
		rightMin, rightMax := right[ri].Start.Y, right[ri].End.Y
		leftMin, leftMax := left[li].End.Y, left[li].Start.Y
		mergeLoop(&out, bOffset, aOffset, rightMin, rightMax, leftMin, leftMax, &ri, &li, right, left)
	}
	for ; ri < len(right); ri++ {
		out = append(out, NewSegment(vmath.V2Add(bOffset, right[ri].Start), vmath.V2Add(bOffset, right[ri].End), true))
	}
	for ; li < len(left); li++ {
		out = append(out, NewSegment(vmath.V2Add(aOffset, left[li].Start), vmath.V2Add(aOffset, left[li].End), true))
	}
	return out
}
