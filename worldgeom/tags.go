// Package worldgeom derives oriented world-geometry segments from a
// tile-collision grid (spec.md §4.2, C3) and exposes a GeometrySet — a
// spatial.Hash of those segments, rebuilt lazily — for the light tracer
// to query.
package worldgeom

// Tag is the fixed tile-collision enumeration from spec.md §6. The exact
// set must be preserved; consumers outside this package (Databank,
// CellMap, CellBlueprint in the outer repository) depend on these exact
// values.
type Tag int

const (
	TagNone Tag = iota
	TagFull

	TagHalfU
	TagHalfD
	TagHalfL
	TagHalfR

	TagSlope1UL
	TagSlope1UR
	TagSlope1DL
	TagSlope1DR

	TagSlope2ULA
	TagSlope2ULB
	TagSlope2URA
	TagSlope2URB
	TagSlope2DLA
	TagSlope2DLB
	TagSlope2DRA
	TagSlope2DRB

	TagSlopeHULA
	TagSlopeHULB
	TagSlopeHURA
	TagSlopeHURB
	TagSlopeHDLA
	TagSlopeHDLB
	TagSlopeHDRA
	TagSlopeHDRB

	tagCount
)

func (t Tag) String() string {
	if int(t) < 0 || int(t) >= len(tagNames) {
		return "invalid"
	}
	return tagNames[t]
}

var tagNames = [tagCount]string{
	TagNone: "none", TagFull: "full",
	TagHalfU: "half_u", TagHalfD: "half_d", TagHalfL: "half_l", TagHalfR: "half_r",
	TagSlope1UL: "slope1_ul", TagSlope1UR: "slope1_ur", TagSlope1DL: "slope1_dl", TagSlope1DR: "slope1_dr",
	TagSlope2ULA: "slope2_ul_a", TagSlope2ULB: "slope2_ul_b",
	TagSlope2URA: "slope2_ur_a", TagSlope2URB: "slope2_ur_b",
	TagSlope2DLA: "slope2_dl_a", TagSlope2DLB: "slope2_dl_b",
	TagSlope2DRA: "slope2_dr_a", TagSlope2DRB: "slope2_dr_b",
	TagSlopeHULA: "slopeh_ul_a", TagSlopeHULB: "slopeh_ul_b",
	TagSlopeHURA: "slopeh_ur_a", TagSlopeHURB: "slopeh_ur_b",
	TagSlopeHDLA: "slopeh_dl_a", TagSlopeHDLB: "slopeh_dl_b",
	TagSlopeHDRA: "slopeh_dr_a", TagSlopeHDRB: "slopeh_dr_b",
}

// IsSloped reports whether tag carries a diagonal edge and is therefore
// handled by the second sweep pass (spec.md §4.2 rule 2). half_{u,d,l,r}
// are rectangular, not diagonal, so — unlike the "neither none nor full"
// tiles the spec names in passing — they are fully resolved by the
// axis-aligned sweep (rule 1) alone and excluded here.
func (t Tag) IsSloped() bool {
	switch t {
	case TagSlope1UL, TagSlope1UR, TagSlope1DL, TagSlope1DR,
		TagSlope2ULA, TagSlope2ULB, TagSlope2URA, TagSlope2URB,
		TagSlope2DLA, TagSlope2DLB, TagSlope2DRA, TagSlope2DRB,
		TagSlopeHULA, TagSlopeHULB, TagSlopeHURA, TagSlopeHURB,
		TagSlopeHDLA, TagSlopeHDLB, TagSlopeHDRA, TagSlopeHDRB:
		return true
	default:
		return false
	}
}

// IsAxisAligned reports whether tag is resolved entirely by the
// axis-aligned sweep: none, full, and the four half-tile shapes.
func (t Tag) IsAxisAligned() bool {
	return !t.IsSloped()
}
