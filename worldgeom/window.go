package worldgeom

// CellSource supplies the geometry bucket for a cell coordinate newly
// entering the active window, typically reading tile data from a level
// asset and running it through BuildCellGeometry.
type CellSource interface {
	LoadCell(coord CellCoord) (Bucket, bool)
}

// ActiveWindow streams a (1+2*HalfSize)x(1+2*HalfSize) block of cells
// around a moving center coordinate, backed by a GeometrySet (spec.md
// §4.2, "streamed in a window around the player"). Cells are keyed by
// absolute coordinate rather than window-relative slot, so a shift only
// needs to evict cells that fell outside the new bounds and load the
// ones that newly entered it — cells that stay in view keep their
// existing bucket untouched.
type ActiveWindow struct {
	HalfSize int64
	center   CellCoord
	set      *GeometrySet
	source   CellSource
	loaded   map[CellCoord]bool
}

// NewActiveWindow constructs a window of the given half-size centered at
// center, immediately loading every cell within bounds from source.
func NewActiveWindow(dims TileDims, halfSize int64, hashCellSize int64, center CellCoord, source CellSource) *ActiveWindow {
	w := &ActiveWindow{
		HalfSize: halfSize,
		center:   center,
		set:      NewGeometrySet(dims, hashCellSize),
		source:   source,
		loaded:   make(map[CellCoord]bool),
	}
	w.fill()
	return w
}

// Center returns the window's current center coordinate.
func (w *ActiveWindow) Center() CellCoord { return w.center }

// Geometry returns the underlying GeometrySet, queryable via
// GeometrySet.GetGeometry once the window is stable.
func (w *ActiveWindow) Geometry() *GeometrySet { return w.set }

// Shift recenters the window by (dx, dy) cells, evicting cells that
// fall outside the new bounds and loading cells that newly entered it.
func (w *ActiveWindow) Shift(dx, dy int64) {
	if dx == 0 && dy == 0 {
		return
	}
	w.center = CellCoord{X: w.center.X + dx, Y: w.center.Y + dy}

	for coord := range w.loaded {
		if !w.inBounds(coord) {
			w.set.RemoveCell(coord)
			delete(w.loaded, coord)
		}
	}
	w.fill()
}

// SwapGeometry exchanges the already-loaded buckets at two absolute cell
// coordinates without touching the source, for callers that want to reuse a
// cell's geometry under a different coordinate directly (spec.md §4.2
// swap_geometry).
func (w *ActiveWindow) SwapGeometry(a, b CellCoord) {
	w.set.SwapGeometry(a, b)
}

func (w *ActiveWindow) inBounds(coord CellCoord) bool {
	dx := coord.X - w.center.X
	dy := coord.Y - w.center.Y
	return dx >= -w.HalfSize && dx <= w.HalfSize && dy >= -w.HalfSize && dy <= w.HalfSize
}

func (w *ActiveWindow) fill() {
	for dy := -w.HalfSize; dy <= w.HalfSize; dy++ {
		for dx := -w.HalfSize; dx <= w.HalfSize; dx++ {
			coord := CellCoord{X: w.center.X + dx, Y: w.center.Y + dy}
			if w.loaded[coord] {
				continue
			}
			b, ok := w.source.LoadCell(coord)
			if !ok {
				continue
			}
			w.set.SetCell(coord, b)
			w.loaded[coord] = true
		}
	}
}
