package worldgeom

import (
	"github.com/lixenwraith/luxengine/spatial"
	"github.com/lixenwraith/luxengine/vmath"
)

// GeometrySet is the merged, queryable collision geometry for every cell
// currently loaded (spec.md §3 "World geometry", §4.2 "Merging across
// cells"). It mirrors the original's world geometry hash: per-cell
// buckets are cheap to produce and replace in isolation; the expensive
// cross-cell merge is deferred until GetGeometry is actually called, and
// skipped entirely if nothing changed since the last call.
type GeometrySet struct {
	dims    TileDims
	cells   map[CellCoord]Bucket
	hash    *spatial.Hash[Segment]
	dirty   bool
	hashDim int64
}

// NewGeometrySet creates an empty set. hashCellSize is the spatial.Hash
// bucket size for the resulting merged segments (spec.md suggests
// 64-128 world units; a cell's world size is a reasonable default).
func NewGeometrySet(dims TileDims, hashCellSize int64) *GeometrySet {
	return &GeometrySet{
		dims:    dims,
		cells:   make(map[CellCoord]Bucket),
		hash:    spatial.NewHash[Segment](hashCellSize),
		dirty:   true,
		hashDim: hashCellSize,
	}
}

// SetCell installs (or replaces) the geometry bucket for one cell,
// typically the output of BuildCellGeometry for newly streamed-in tile
// data. Replacing a cell invalidates every merge result that touched it
// or its neighbours, so the whole set is marked dirty rather than
// tracking the fine-grained blast radius.
func (g *GeometrySet) SetCell(coord CellCoord, b Bucket) {
	g.cells[coord] = b
	g.dirty = true
}

// RemoveCell evicts a cell, for example when it scrolls out of the
// active window (spec.md §4.2, "streamed in a window around the
// player").
func (g *GeometrySet) RemoveCell(coord CellCoord) {
	if _, ok := g.cells[coord]; !ok {
		return
	}
	delete(g.cells, coord)
	g.dirty = true
}

// SwapGeometry exchanges the buckets stored at two coordinates without
// recomputing either, matching the original's swap_geometry used when
// the active window shifts and a cell slot is reused for a different
// world position whose geometry was already computed once.
func (g *GeometrySet) SwapGeometry(a, b CellCoord) {
	ba, oka := g.cells[a]
	bb, okb := g.cells[b]
	if oka {
		g.cells[b] = ba
	} else {
		delete(g.cells, b)
	}
	if okb {
		g.cells[a] = bb
	} else {
		delete(g.cells, a)
	}
	g.dirty = true
}

// HasCell reports whether coord currently has geometry installed.
func (g *GeometrySet) HasCell(coord CellCoord) bool {
	_, ok := g.cells[coord]
	return ok
}

// GetGeometry returns the merged spatial index of every segment in the
// set, rebuilding it first if any cell changed since the last call
// (spec.md §4.2, "recomputed lazily on next query").
func (g *GeometrySet) GetGeometry() *spatial.Hash[Segment] {
	if g.dirty {
		g.rebuild()
	}
	return g.hash
}

func (g *GeometrySet) rebuild() {
	h := spatial.NewHash[Segment](g.hashDim)

	insert := func(segs []Segment) {
		for _, s := range segs {
			h.Insert(s, s.bounds())
		}
	}

	for coord, b := range g.cells {
		off := coord.worldOffset(g.dims)

		for _, s := range b.Middle {
			insert([]Segment{s.offset(off)})
		}

		if below, ok := g.cells[coord.add(0, 1)]; ok {
			belowOff := coord.add(0, 1).worldOffset(g.dims)
			insert(mergeVertical(g.dims, off, belowOff, b.Bottom, below.Top))
		} else {
			insert(boundaryExternal(b.Bottom, off))
		}

		if _, ok := g.cells[coord.add(0, -1)]; !ok {
			insert(boundaryExternal(b.Top, off))
		}

		if right, ok := g.cells[coord.add(1, 0)]; ok {
			rightOff := coord.add(1, 0).worldOffset(g.dims)
			insert(mergeHorizontal(g.dims, off, rightOff, b.Right, right.Left))
		} else {
			insert(boundaryExternal(b.Right, off))
		}

		if _, ok := g.cells[coord.add(-1, 0)]; !ok {
			insert(boundaryExternal(b.Left, off))
		}
	}

	g.hash = h
	g.dirty = false
}

// boundaryExternal offsets a cell-boundary bucket into world space and
// marks every segment external, used when there is no neighbour cell to
// merge against (the edge of the currently loaded window, or a genuine
// world edge).
func boundaryExternal(segs []Segment, off vmath.IVec2) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = s.offset(off).withExternal(true)
	}
	return out
}
