package worldgeom

// Cell holds one cell's tile-collision grid (collision layer only;
// sprite/visual layers are Databank's concern and out of scope here).
type Cell struct {
	Dims  TileDims
	Tiles []Tag // row-major, length Dims.CellWidth*Dims.CellHeight
}

func NewCell(dims TileDims) *Cell {
	return &Cell{Dims: dims, Tiles: make([]Tag, dims.CellWidth*dims.CellHeight)}
}

// At returns the tile tag at (tx,ty), or TagFull if out of bounds — tiles
// outside the cell are treated as solid so that the axis-aligned sweep
// never emits geometry purely because it ran off the edge of the known
// grid; the actual cell-boundary decision is made later, during merge,
// once the neighbour cell (if any) is available.
func (c *Cell) At(tx, ty int64) Tag {
	if tx < 0 || ty < 0 || tx >= c.Dims.CellWidth || ty >= c.Dims.CellHeight {
		return TagFull
	}
	return c.Tiles[ty*c.Dims.CellWidth+tx]
}

func (c *Cell) Set(tx, ty int64, tag Tag) {
	if tx < 0 || ty < 0 || tx >= c.Dims.CellWidth || ty >= c.Dims.CellHeight {
		return
	}
	c.Tiles[ty*c.Dims.CellWidth+tx] = tag
}

// Bucket partitions one cell's segments as spec.md §4.2: Top/Bottom/Left/
// Right are the cell-boundary segments eligible for cross-cell merging;
// Middle is everything interior.
type Bucket struct {
	Top, Bottom, Left, Right, Middle []Segment
}
