package main

import (
	"math"

	"github.com/lixenwraith/luxengine/config"
	"github.com/lixenwraith/luxengine/light"
	"github.com/lixenwraith/luxengine/spatial"
	"github.com/lixenwraith/luxengine/vmath"
	"github.com/lixenwraith/luxengine/worldgeom"
)

// roomSource is the demo's entire "level": a single loaded cell carrying a
// hollow room with one interior pillar, satisfying worldgeom.CellSource.
// A real game would back this with an asset/streaming layer (out of scope
// per spec.md §1 Non-goals); here the bucket is built once and handed back
// for the origin cell only; every other coordinate the active window asks
// for reports no cell.
type roomSource struct {
	origin worldgeom.CellCoord
	cell   *worldgeom.Cell
	bucket worldgeom.Bucket
}

func newRoomSource(dims worldgeom.TileDims) *roomSource {
	cell := worldgeom.NewCell(dims)
	for tx := int64(0); tx < dims.CellWidth; tx++ {
		cell.Set(tx, 0, worldgeom.TagFull)
		cell.Set(tx, dims.CellHeight-1, worldgeom.TagFull)
	}
	for ty := int64(0); ty < dims.CellHeight; ty++ {
		cell.Set(0, ty, worldgeom.TagFull)
		cell.Set(dims.CellWidth-1, ty, worldgeom.TagFull)
	}
	// A short interior pillar so the traced light casts a real shadow.
	midX, midY := dims.CellWidth/2, dims.CellHeight/2
	cell.Set(midX, midY, worldgeom.TagFull)
	cell.Set(midX, midY+1, worldgeom.TagFull)

	return &roomSource{
		origin: worldgeom.CellCoord{X: 0, Y: 0},
		cell:   cell,
		bucket: worldgeom.BuildCellGeometry(cell),
	}
}

func (s *roomSource) LoadCell(coord worldgeom.CellCoord) (worldgeom.Bucket, bool) {
	if coord != s.origin {
		return worldgeom.Bucket{}, false
	}
	return s.bucket, true
}

// scene wires worldgeom's active window over the one-room level (spec.md
// §4.2, C3) and traces a single scripted light against it every frame
// (spec.md §4.3, C4).
type scene struct {
	dims   worldgeom.TileDims
	window *worldgeom.ActiveWindow
	room   *roomSource

	fullRange    float64
	falloffRange float64
	aperture     float64
}

func newScene(cfg *config.Config) *scene {
	dims := worldgeom.TileDims{
		TileWidth:  1,
		TileHeight: 1,
		CellWidth:  cfg.World.CellWidth * 4,
		CellHeight: cfg.World.CellHeight * 2,
	}
	source := newRoomSource(dims)
	window := worldgeom.NewActiveWindow(dims, cfg.World.HalfSize, cfg.World.HashCellSize, worldgeom.CellCoord{X: 0, Y: 0}, source)
	return &scene{
		dims:         dims,
		window:       window,
		room:         source,
		fullRange:    float64(dims.CellWidth) * 0.35,
		falloffRange: float64(dims.CellWidth) * 0.2,
		aperture:     math.Pi * 0.6,
	}
}

// wallAt reports whether (tx, ty) is solid, for the renderer's static
// backdrop; it reads the same tile grid BuildCellGeometry was run against.
func (s *scene) wallAt(tx, ty int64) bool {
	return s.room.cell.At(tx, ty) == worldgeom.TagFull
}

func (s *scene) geometry() *spatial.Hash[worldgeom.Segment] {
	return s.window.Geometry().GetGeometry()
}

// traced is one frame's resolved light geometry, ready to render: outer is
// the soft falloff edge out to max_range, inner the full-brightness core out
// to full_range (SPEC_FULL.md §4.10's renderer-side falloff blend).
type traced struct {
	origin vmath.FVec2
	colour light.Colour
	outer  light.LightTrace
	inner  light.LightTrace
}

func (s *scene) trace(st state) traced {
	l := light.Light{
		FullRange:    s.fullRange,
		FalloffRange: s.falloffRange,
		Colour:       light.Colour{R: st.R, G: st.G, B: st.B, A: 1},
		Angle:        st.Angle,
		Aperture:     s.aperture,
	}
	origin := vmath.FVec2{X: st.X, Y: st.Y}
	geom := s.geometry()

	outer := light.Resolve(light.Trace(geom, l, origin), l)
	inner := light.Resolve(light.FalloffTrace(geom, l, origin), l)

	return traced{origin: origin, colour: l.Colour, outer: outer, inner: inner}
}
