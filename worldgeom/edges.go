package worldgeom

import "github.com/lixenwraith/luxengine/vmath"

// edge identifies one of a tile's four cardinal sides for the blocked-edge
// lookup table (spec.md §4.2 rule 1).
type edge int

const (
	edgeUp edge = iota
	edgeDown
	edgeLeft
	edgeRight
)

// blocked reports whether tag presents a solid face on the given edge —
// the half-edge lookup table the spec calls for, keyed by collision tag
// and edge.
func blocked(tag Tag, e edge) bool {
	switch e {
	case edgeUp:
		switch tag {
		case TagFull, TagHalfU,
			TagSlope1DL, TagSlope1DR,
			TagSlope2DLB, TagSlope2DRB,
			TagSlopeHDLA, TagSlopeHDLB, TagSlopeHDRA, TagSlopeHDRB:
			return true
		}
	case edgeDown:
		switch tag {
		case TagFull, TagHalfD,
			TagSlope1UL, TagSlope1UR,
			TagSlope2ULB, TagSlope2URB,
			TagSlopeHULA, TagSlopeHULB, TagSlopeHURA, TagSlopeHURB:
			return true
		}
	case edgeLeft:
		switch tag {
		case TagFull, TagHalfL,
			TagSlope1UL, TagSlope1DL,
			TagSlope2ULA, TagSlope2ULB, TagSlope2DLA, TagSlope2DLB,
			TagSlopeHULB, TagSlopeHDLB:
			return true
		}
	case edgeRight:
		switch tag {
		case TagFull, TagHalfR,
			TagSlope1UR, TagSlope1DR,
			TagSlope2URA, TagSlope2URB, TagSlope2DRA, TagSlope2DRB,
			TagSlopeHURB, TagSlopeHDRB:
			return true
		}
	}
	return false
}

// halfUpLeft etc. are the eight half-edge predicates: the outer cardinal
// edge's blocked state, widened with the tags whose solid region only
// covers that particular half of the tile.
func halfUpLeft(tag Tag) bool {
	return blocked(tag, edgeLeft) || tag == TagHalfU || tag == TagSlopeHDLA || tag == TagSlopeHDRB
}
func halfUpRight(tag Tag) bool {
	return blocked(tag, edgeRight) || tag == TagHalfU || tag == TagSlopeHDLB || tag == TagSlopeHDRA
}
func halfDownLeft(tag Tag) bool {
	return blocked(tag, edgeLeft) || tag == TagHalfD || tag == TagSlopeHULA || tag == TagSlopeHURB
}
func halfDownRight(tag Tag) bool {
	return blocked(tag, edgeRight) || tag == TagHalfD || tag == TagSlopeHULB || tag == TagSlopeHURA
}
func halfLeftUp(tag Tag) bool {
	return blocked(tag, edgeUp) || tag == TagHalfL || tag == TagSlope2DLA || tag == TagSlope2ULB
}
func halfLeftDown(tag Tag) bool {
	return blocked(tag, edgeDown) || tag == TagHalfL || tag == TagSlope2DLB || tag == TagSlope2ULA
}
func halfRightUp(tag Tag) bool {
	return blocked(tag, edgeUp) || tag == TagHalfR || tag == TagSlope2DRA || tag == TagSlope2URB
}
func halfRightDown(tag Tag) bool {
	return blocked(tag, edgeDown) || tag == TagHalfR || tag == TagSlope2DRB || tag == TagSlope2URA
}

// boundarySide distinguishes which side of a blocked/unblocked transition
// the emitted segment belongs to, matching the "left"/"right" boundary
// classification of the axis-aligned sweep.
type boundarySide int

const (
	boundaryNone boundarySide = iota
	boundaryLeft
	boundaryRight
)

// sweepHorizontal scans one horizontal line (a tile row boundary, at
// `row` tiles from the cell top) across the full cell width in half-tile
// steps, emitting a maximal segment for every run of constant boundary
// side. row==0 contributes to Top, row==CellHeight to Bottom, everything
// else to Middle (spec.md §4.2 rule 1).
func sweepHorizontal(c *Cell, row int64) []Segment {
	d := c.Dims
	var out []Segment
	side := boundaryNone
	var start int64

	steps := 2*d.CellWidth + 1
	for t := int64(0); t < steps; t++ {
		var above, below bool
		if t%2 == 0 {
			above = halfLeftDown(c.At(t/2, row-1))
			below = halfLeftUp(c.At(t/2, row))
		} else {
			above = halfRightDown(c.At(t/2, row-1))
			below = halfRightUp(c.At(t/2, row))
		}

		next := boundaryNone
		switch {
		case above && !below:
			next = boundaryLeft
		case below && !above:
			next = boundaryRight
		}
		if next == side {
			continue
		}
		if side != boundaryNone {
			startPt := tileHalfPointX(d, start, row)
			endPt := tileHalfPointX(d, t, row)
			if side == boundaryRight {
				out = append(out, NewSegment(startPt, endPt, false))
			} else {
				out = append(out, NewSegment(endPt, startPt, false))
			}
		}
		if next != boundaryNone {
			start = t
		}
		side = next
	}
	return out
}

// sweepVertical is sweepHorizontal's column-wise counterpart; col==0
// contributes to Left, col==CellWidth to Right.
func sweepVertical(c *Cell, col int64) []Segment {
	d := c.Dims
	var out []Segment
	side := boundaryNone
	var start int64

	steps := 2*d.CellHeight + 1
	for t := int64(0); t < steps; t++ {
		var left, right bool
		if t%2 == 0 {
			left = halfUpRight(c.At(col-1, t/2))
			right = halfUpLeft(c.At(col, t/2))
		} else {
			left = halfDownRight(c.At(col-1, t/2))
			right = halfDownLeft(c.At(col, t/2))
		}

		// Moving downward along the column, a solid tile on the left
		// means the non-solid side (and so the boundary) is on the
		// right, and vice versa.
		next := boundaryNone
		switch {
		case left && !right:
			next = boundaryRight
		case right && !left:
			next = boundaryLeft
		}
		if next == side {
			continue
		}
		if side != boundaryNone {
			startPt := tileHalfPointY(d, col, start)
			endPt := tileHalfPointY(d, col, t)
			if side == boundaryRight {
				out = append(out, NewSegment(startPt, endPt, false))
			} else {
				out = append(out, NewSegment(endPt, startPt, false))
			}
		}
		if next != boundaryNone {
			start = t
		}
		side = next
	}
	return out
}

// tileHalfPointX maps a half-tile step index along a horizontal sweep
// line to a world point: halfX counts half-tile-widths from the cell's
// left edge, row counts whole tiles from the cell's top.
func tileHalfPointX(d TileDims, halfX, row int64) vmath.IVec2 {
	return vmath.IVec2{X: (halfX * d.TileWidth) / 2, Y: row * d.TileHeight}
}

// tileHalfPointY is tileHalfPointX's column-wise counterpart.
func tileHalfPointY(d TileDims, col, halfY int64) vmath.IVec2 {
	return vmath.IVec2{X: col * d.TileWidth, Y: (halfY * d.TileHeight) / 2}
}
