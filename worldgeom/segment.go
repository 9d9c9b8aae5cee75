package worldgeom

import "github.com/lixenwraith/luxengine/vmath"

// Segment is an oriented world line-segment (spec.md §3). Direction is
// significant: the non-solid (illuminated) half-plane lies to the
// segment's left. External marks a segment that lies on a cell boundary
// and may still be merged with a segment from the neighbouring cell.
type Segment struct {
	Start, End vmath.IVec2
	External   bool
}

func NewSegment(start, end vmath.IVec2, external bool) Segment {
	return Segment{Start: start, End: end, External: external}
}

// Equal reports whether two segments match endpoint-for-endpoint in
// order; the External flag does not participate in equality, matching
// the data model's "(start, end) of integer 2D points" identity.
func (s Segment) Equal(o Segment) bool {
	return vmath.V2Equal(s.Start, o.Start) && vmath.V2Equal(s.End, o.End)
}

func (s Segment) bounds() vmath.AABB {
	return vmath.BoundSegment(s.Start, s.End)
}

func (s Segment) offset(by vmath.IVec2) Segment {
	return Segment{Start: vmath.V2Add(s.Start, by), End: vmath.V2Add(s.End, by), External: s.External}
}

func (s Segment) withExternal(external bool) Segment {
	s.External = external
	return s
}
