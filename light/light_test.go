package light

import (
	"testing"

	"github.com/lixenwraith/luxengine/spatial"
	"github.com/lixenwraith/luxengine/vmath"
	"github.com/lixenwraith/luxengine/worldgeom"
)

func hashOf(segs ...worldgeom.Segment) *spatial.Hash[worldgeom.Segment] {
	h := spatial.NewHash[worldgeom.Segment](128)
	for _, s := range segs {
		h.Insert(s, vmath.BoundSegment(s.Start, s.End))
	}
	return h
}

// seg builds a non-external segment oriented counter-clockwise around
// the origin-relative coordinate space the tests work in (light.Trace
// excludes clockwise-oriented geometry, per spec.md §4.3.1).
func seg(sx, sy, ex, ey int64) worldgeom.Segment {
	return worldgeom.NewSegment(vmath.IVec2{X: sx, Y: sy}, vmath.IVec2{X: ex, Y: ey}, false)
}

func TestTraceAngular_OpenSpaceReachesBoundingSquare(t *testing.T) {
	geom := hashOf() // no geometry at all: light should trace the full square.
	l := Light{FullRange: 100}
	tr := Trace(geom, l, vmath.FVec2{})

	if len(tr)%2 != 0 {
		t.Fatalf("trace must have even length, got %d", len(tr))
	}
	if len(tr) == 0 {
		t.Fatalf("expected a non-empty trace in open space")
	}
	for _, p := range tr {
		if p.X < -100.0001 || p.X > 100.0001 || p.Y < -100.0001 || p.Y > 100.0001 {
			t.Fatalf("point %+v outside max-range square", p)
		}
	}
}

// A single wall segment directly to the light's right, oriented so its
// non-solid side (light-facing) points back at the origin, should
// produce a trace whose points on that side sit on the wall rather than
// the outer bounding square.
func TestTraceAngular_WallBlocksBeyondItself(t *testing.T) {
	// Vertical wall at x=10, spanning y in [-50,50], facing the origin
	// (orientation must satisfy ge.cross(gs) < 0 to be kept: a segment
	// running from (10,-50) to (10,50) winds the right way as seen from
	// the origin).
	geom := hashOf(seg(10, -50, 10, 50))
	l := Light{FullRange: 100}
	tr := Trace(geom, l, vmath.FVec2{})

	foundOnWall := false
	for _, p := range tr {
		if p.X > 9.9 && p.X < 10.1 {
			foundOnWall = true
		}
		if p.X > 10.1 {
			t.Fatalf("point %+v beyond the wall the light should not reach", p)
		}
	}
	if !foundOnWall {
		t.Fatalf("expected at least one trace point to land on the wall, got %+v", tr)
	}
}

func TestTraceKey_IgnoresOffsetWhenNotPlanar(t *testing.T) {
	a := NewTraceKey(Light{FullRange: 10, Offset: vmath.FVec2{X: 1}}, vmath.FVec2{})
	b := NewTraceKey(Light{FullRange: 10, Offset: vmath.FVec2{X: 2}}, vmath.FVec2{})
	if a != b {
		t.Fatalf("expected angular trace keys to ignore offset, got %+v vs %+v", a, b)
	}
}

func TestTraceKey_RespectsOffsetWhenPlanar(t *testing.T) {
	normal := vmath.FVec2{X: 0, Y: 1}
	a := NewTraceKey(Light{FullRange: 10, NormalVec: normal, Offset: vmath.FVec2{X: 1}}, vmath.FVec2{})
	b := NewTraceKey(Light{FullRange: 10, NormalVec: normal, Offset: vmath.FVec2{X: 2}}, vmath.FVec2{})
	if a == b {
		t.Fatalf("expected planar trace keys to distinguish offset")
	}
}

func TestCache_RecalculateTracesEvictsStaleEntries(t *testing.T) {
	geom := hashOf()
	cache := NewCache()
	l1 := Source{Light: Light{FullRange: 10}, Origin: vmath.FVec2{X: 0, Y: 0}}
	l2 := Source{Light: Light{FullRange: 10}, Origin: vmath.FVec2{X: 50, Y: 0}}

	cache.RecalculateTraces(geom, []Source{l1, l2})
	if cache.Len() != 2 {
		t.Fatalf("expected 2 cached traces, got %d", cache.Len())
	}

	cache.RecalculateTraces(geom, []Source{l1})
	if cache.Len() != 1 {
		t.Fatalf("expected stale entry evicted, got %d cached", cache.Len())
	}
	if _, ok := cache.Lookup(NewTraceKey(l1.Light, l1.Origin)); !ok {
		t.Fatalf("expected l1's trace to remain cached")
	}
}

func TestMakeConeTrace_BracketsWithApex(t *testing.T) {
	geom := hashOf()
	l := Light{FullRange: 100}
	full := Trace(geom, l, vmath.FVec2{})

	cone := MakeConeTrace(full, 0, vmath.Pi/4)
	if len(cone) < 4 {
		t.Fatalf("expected at least apex + 2 intersections + apex, got %d points", len(cone))
	}
	if cone[0] != (vmath.FVec2{}) || cone[len(cone)-1] != (vmath.FVec2{}) {
		t.Fatalf("expected cone trace bracketed by zero-vector apex points, got %+v", cone)
	}
}
