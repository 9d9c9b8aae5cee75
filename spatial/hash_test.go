package spatial

import (
	"testing"

	"github.com/lixenwraith/luxengine/vmath"
)

func box(minX, minY, maxX, maxY int64) vmath.AABB {
	return vmath.AABB{Min: vmath.IVec2{X: minX, Y: minY}, Max: vmath.IVec2{X: maxX, Y: maxY}}
}

func collect(h *Hash[int], min, max vmath.IVec2) map[int]bool {
	out := make(map[int]bool)
	for k := range h.Search(min, max) {
		out[k] = true
	}
	return out
}

func TestHashInsertSearch(t *testing.T) {
	h := NewHash[int](64)
	h.Insert(1, box(0, 0, 10, 10))
	h.Insert(2, box(200, 200, 210, 210))

	got := collect(h, vmath.IVec2{X: -5, Y: -5}, vmath.IVec2{X: 20, Y: 20})
	if !got[1] || got[2] {
		t.Fatalf("expected only entry 1 in range, got %v", got)
	}
}

func TestHashUpdateMovesEntry(t *testing.T) {
	h := NewHash[int](64)
	h.Insert(1, box(0, 0, 10, 10))
	h.Update(1, box(500, 500, 510, 510))

	if got := collect(h, vmath.IVec2{X: -5, Y: -5}, vmath.IVec2{X: 20, Y: 20}); got[1] {
		t.Fatal("entry should no longer be at its old position")
	}
	if got := collect(h, vmath.IVec2{X: 495, Y: 495}, vmath.IVec2{X: 515, Y: 515}); !got[1] {
		t.Fatal("entry should be found at its new position")
	}
}

func TestHashRemove(t *testing.T) {
	h := NewHash[int](64)
	h.Insert(1, box(0, 0, 10, 10))
	h.Remove(1)
	if h.Len() != 0 {
		t.Fatalf("expected 0 entries after remove, got %d", h.Len())
	}
	if got := collect(h, vmath.IVec2{X: -5, Y: -5}, vmath.IVec2{X: 20, Y: 20}); got[1] {
		t.Fatal("removed entry should not be found")
	}
}

func TestHashSpanningMultipleCells(t *testing.T) {
	h := NewHash[int](10)
	h.Insert(1, box(5, 5, 25, 25)) // spans 3x3 cells at cellSize=10
	for _, q := range []struct{ min, max vmath.IVec2 }{
		{vmath.IVec2{X: 5, Y: 5}, vmath.IVec2{X: 6, Y: 6}},
		{vmath.IVec2{X: 20, Y: 20}, vmath.IVec2{X: 21, Y: 21}},
	} {
		if got := collect(h, q.min, q.max); !got[1] {
			t.Fatalf("expected entry spanning cells to be found at %v-%v", q.min, q.max)
		}
	}
}
