package worldgeom

import "github.com/lixenwraith/luxengine/vmath"

// TileDims is the cell-grid contract of spec.md §6: cells are fixed-size
// grids of tiles, tiles are fixed-size in world units, and the geometry
// builder is parametric over both. TileWidth and TileHeight must be even
// so that half-tile edges (half_* tags, and the half-edge sweep's
// half-tile step) land on integer world coordinates.
type TileDims struct {
	TileWidth, TileHeight int64
	CellWidth, CellHeight int64 // in tiles
}

func (d TileDims) cellSizeWorld() vmath.IVec2 {
	return vmath.IVec2{X: d.CellWidth * d.TileWidth, Y: d.CellHeight * d.TileHeight}
}

// Corner and edge-midpoint offsets within a single tile, in world units,
// used to anchor the endpoints of half-tile and sloped segments.
func (d TileDims) ul() vmath.IVec2 { return vmath.IVec2{X: 0, Y: 0} }
func (d TileDims) ur() vmath.IVec2 { return vmath.IVec2{X: d.TileWidth, Y: 0} }
func (d TileDims) dl() vmath.IVec2 { return vmath.IVec2{X: 0, Y: d.TileHeight} }
func (d TileDims) dr() vmath.IVec2 { return vmath.IVec2{X: d.TileWidth, Y: d.TileHeight} }
func (d TileDims) u() vmath.IVec2  { return vmath.IVec2{X: d.TileWidth / 2, Y: 0} }
func (d TileDims) dn() vmath.IVec2 { return vmath.IVec2{X: d.TileWidth / 2, Y: d.TileHeight} }
func (d TileDims) l() vmath.IVec2  { return vmath.IVec2{X: 0, Y: d.TileHeight / 2} }
func (d TileDims) r() vmath.IVec2  { return vmath.IVec2{X: d.TileWidth, Y: d.TileHeight / 2} }

// tileOrigin returns the world-space offset of tile (tx,ty) within its
// cell, tx/ty counted from the cell's own origin.
func (d TileDims) tileOrigin(tx, ty int64) vmath.IVec2 {
	return vmath.IVec2{X: tx * d.TileWidth, Y: ty * d.TileHeight}
}
