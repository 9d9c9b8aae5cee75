package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/luxengine/light"
	"github.com/lixenwraith/luxengine/vmath"
)

var background = colorful.Color{R: 0.04, G: 0.04, B: 0.06}

// paintLight fan-fills a traced light's polygon onto the screen. A light's
// LightTrace is star-shaped around its origin (spec.md §4.3.1's sweep
// visits candidate points in angular order), so triangulating origin with
// each consecutive pair of trace points covers the lit area exactly without
// a general polygon-fill routine.
func paintLight(screen tcell.Screen, t traced, maxRange float64) {
	base := colorful.Color{R: t.colour.R, G: t.colour.G, B: t.colour.B}

	paintFan := func(poly light.LightTrace, brightness float64) {
		n := len(poly)
		if n < 2 {
			return
		}
		for i := 0; i < n; i++ {
			a := vmath.F2Add(t.origin, poly[i])
			b := vmath.F2Add(t.origin, poly[(i+1)%n])
			fillTriangle(screen, t.origin, a, b, func(p vmath.FVec2) (tcell.Style, bool) {
				d := vmath.F2Len(vmath.F2Sub(p, t.origin))
				atten := 1 - clamp01(d/maxRange)
				return litStyle(base, atten*brightness), true
			})
		}
	}

	paintFan(t.outer, 0.45)
	paintFan(t.inner, 1.0)
}

func litStyle(base colorful.Color, brightness float64) tcell.Style {
	blended := background.BlendRgb(base, clamp01(brightness)).Clamped()
	r, g, b := blended.RGB255()
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fillTriangle rasterises the integer terminal cells inside triangle
// (origin, a, b) via a barycentric test over its bounding box, calling
// styleAt for every cell that lands inside.
func fillTriangle(screen tcell.Screen, origin, a, b vmath.FVec2, styleAt func(vmath.FVec2) (tcell.Style, bool)) {
	minX := int(math.Floor(minOf3(origin.X, a.X, b.X)))
	maxX := int(math.Ceil(maxOf3(origin.X, a.X, b.X)))
	minY := int(math.Floor(minOf3(origin.Y, a.Y, b.Y)))
	maxY := int(math.Ceil(maxOf3(origin.Y, a.Y, b.Y)))

	w, h := screen.Size()
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := vmath.FVec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if !pointInTriangle(p, origin, a, b) {
				continue
			}
			style, ok := styleAt(p)
			if !ok {
				continue
			}
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func pointInTriangle(p, a, b, c vmath.FVec2) bool {
	d1 := vmath.F2Cross(vmath.F2Sub(b, a), vmath.F2Sub(p, a))
	d2 := vmath.F2Cross(vmath.F2Sub(c, b), vmath.F2Sub(p, b))
	d3 := vmath.F2Cross(vmath.F2Sub(a, c), vmath.F2Sub(p, c))

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func minOf3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func maxOf3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

// paintWalls draws the room's solid tiles as a static backdrop beneath the
// light, reading the same tile grid the scene built its geometry from.
func paintWalls(screen tcell.Screen, sc *scene) {
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	w, h := screen.Size()
	for ty := int64(0); ty < sc.dims.CellHeight && int(ty) < h; ty++ {
		for tx := int64(0); tx < sc.dims.CellWidth && int(tx) < w; tx++ {
			if !sc.wallAt(tx, ty) {
				continue
			}
			screen.SetContent(int(tx), int(ty), '#', nil, style)
		}
	}
}

// paintStatus draws a one-line footer below the room.
func paintStatus(screen tcell.Screen, y int, text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range text {
		screen.SetContent(i, y, r, nil, style)
	}
}
