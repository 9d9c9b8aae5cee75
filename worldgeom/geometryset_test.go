package worldgeom

import (
	"testing"

	"github.com/lixenwraith/luxengine/vmath"
)

func testDims() TileDims {
	return TileDims{TileWidth: 32, TileHeight: 32, CellWidth: 3, CellHeight: 3}
}

func allTiles(dims TileDims, tag Tag) *Cell {
	c := NewCell(dims)
	for i := range c.Tiles {
		c.Tiles[i] = tag
	}
	return c
}

// An open cell (every tile TagNone) is bounded solid on every side by
// the out-of-bounds default, so its whole perimeter is geometry and its
// interior is empty.
func TestBuildCellGeometry_OpenCellHasOnlyBoundary(t *testing.T) {
	c := allTiles(testDims(), TagNone)
	b := BuildCellGeometry(c)

	if len(b.Middle) != 0 {
		t.Fatalf("open cell should have no interior geometry, got %d", len(b.Middle))
	}
	if len(b.Top) == 0 || len(b.Bottom) == 0 || len(b.Left) == 0 || len(b.Right) == 0 {
		t.Fatalf("open cell should have geometry on every boundary bucket, got %+v", b)
	}
}

// A fully solid cell is surrounded by equally solid out-of-bounds tiles
// on every side, so no transition — and so no geometry at all — is
// ever produced.
func TestBuildCellGeometry_SolidCellIsInvisible(t *testing.T) {
	c := allTiles(testDims(), TagFull)
	b := BuildCellGeometry(c)

	total := len(b.Top) + len(b.Bottom) + len(b.Left) + len(b.Right) + len(b.Middle)
	if total != 0 {
		t.Fatalf("fully solid cell should produce no geometry, got %d segments", total)
	}
}

// A single solid tile surrounded by open tiles produces interior
// geometry (a closed loop around the obstacle), not boundary geometry.
func TestBuildCellGeometry_InteriorObstacle(t *testing.T) {
	dims := testDims()
	c := allTiles(dims, TagNone)
	c.Set(1, 1, TagFull)
	b := BuildCellGeometry(c)

	if len(b.Middle) == 0 {
		t.Fatalf("interior obstacle should produce interior geometry")
	}
	for _, s := range b.Middle {
		if s.Start.X == s.End.X && s.Start.Y == s.End.Y {
			t.Fatalf("degenerate segment in interior geometry: %+v", s)
		}
	}
}

// Every emitted segment must be non-degenerate: spec.md §4.2 requires
// start != end for every segment the builder produces.
func TestBuildCellGeometry_NoDegenerateSegments(t *testing.T) {
	dims := testDims()
	c := allTiles(dims, TagNone)
	c.Set(1, 1, TagSlope1UL)
	b := BuildCellGeometry(c)

	all := append(append(append(append(append([]Segment{}, b.Top...), b.Bottom...), b.Left...), b.Right...), b.Middle...)
	for _, s := range all {
		if s.Equal(Segment{Start: s.Start, End: s.Start}) {
			t.Fatalf("degenerate segment: %+v", s)
		}
	}
}

// Two open cells placed side by side should merge away the shared
// internal boundary: light passes freely between them, so the merged
// geometry set has no segment along the seam, while the cells' outer
// edges remain.
func TestGeometrySet_MergeRemovesSharedOpenBoundary(t *testing.T) {
	dims := testDims()
	left := BuildCellGeometry(allTiles(dims, TagNone))
	right := BuildCellGeometry(allTiles(dims, TagNone))

	gs := NewGeometrySet(dims, 128)
	gs.SetCell(CellCoord{X: 0, Y: 0}, left)
	gs.SetCell(CellCoord{X: 1, Y: 0}, right)

	merged := gs.GetGeometry()

	seamX := dims.CellWidth * dims.TileWidth
	count := 0
	for seg := range merged.Search(
		vmath.IVec2{X: seamX - 1, Y: -1000},
		vmath.IVec2{X: seamX + 1, Y: 1000},
	) {
		if seg.Start.X == seamX && seg.End.X == seamX {
			count++
		}
	}
	if count != 0 {
		t.Fatalf("expected no residual segment along the open seam, found %d", count)
	}
}

// Removing a cell marks the set dirty and its geometry disappears from
// subsequent queries.
func TestGeometrySet_RemoveCell(t *testing.T) {
	dims := testDims()
	gs := NewGeometrySet(dims, 128)
	gs.SetCell(CellCoord{X: 0, Y: 0}, BuildCellGeometry(allTiles(dims, TagNone)))

	before := gs.GetGeometry().Len()
	if before == 0 {
		t.Fatalf("expected geometry before removal")
	}

	gs.RemoveCell(CellCoord{X: 0, Y: 0})
	after := gs.GetGeometry().Len()
	if after != 0 {
		t.Fatalf("expected no geometry after removing the only cell, got %d", after)
	}
}

type fixedSource struct {
	dims TileDims
	tag  Tag
}

func (f fixedSource) LoadCell(coord CellCoord) (Bucket, bool) {
	return BuildCellGeometry(allTiles(f.dims, f.tag)), true
}

func TestActiveWindow_ShiftEvictsAndLoads(t *testing.T) {
	dims := testDims()
	src := fixedSource{dims: dims, tag: TagNone}
	w := NewActiveWindow(dims, 1, 128, CellCoord{X: 0, Y: 0}, src)

	if !w.set.HasCell(CellCoord{X: -1, Y: -1}) {
		t.Fatalf("expected window to preload its full (2*1+1)^2 extent")
	}

	w.Shift(5, 0)
	if w.set.HasCell(CellCoord{X: -1, Y: -1}) {
		t.Fatalf("expected far cell to be evicted after shift")
	}
	if !w.set.HasCell(CellCoord{X: 5, Y: 0}) {
		t.Fatalf("expected new center cell to be loaded after shift")
	}
}
