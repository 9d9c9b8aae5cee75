// Package spatial implements the uniform grid spatial hash described in
// spec.md §4.1 (C2): a grid mapping cell index to a bucket of entries,
// supporting region queries over each entry's current axis-aligned
// bounding box. Unlike the teacher's engine.SpatialGrid (a dense,
// fixed-capacity-per-cell grid sized for a bounded tile map), Hash's
// buckets are unbounded maps keyed by cell coordinate, since geometry
// entries can span an open, dynamically streamed world.
package spatial

import "github.com/lixenwraith/luxengine/vmath"

type cellCoord struct{ X, Y int64 }

// Hash is a uniform grid over entries of any comparable key type K. Cell size is a
// construction parameter (spec.md suggests 64-128 world units).
type Hash[K comparable] struct {
	cellSize int64
	buckets  map[cellCoord][]K
	bounds   map[K]vmath.AABB
}

func NewHash[K comparable](cellSize int64) *Hash[K] {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &Hash[K]{
		cellSize: cellSize,
		buckets:  make(map[cellCoord][]K),
		bounds:   make(map[K]vmath.AABB),
	}
}

func (h *Hash[K]) cellOf(x, y int64) cellCoord {
	return cellCoord{X: floorDiv(x, h.cellSize), Y: floorDiv(y, h.cellSize)}
}

func floorDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 && (n < 0) != (d < 0) {
		q--
	}
	return q
}

func (h *Hash[K]) cellsOf(box vmath.AABB) (minC, maxC cellCoord) {
	minC = h.cellOf(box.Min.X, box.Min.Y)
	maxC = h.cellOf(box.Max.X, box.Max.Y)
	return
}

// Insert adds an entry present in exactly the set of cells overlapping
// its current AABB.
func (h *Hash[K]) Insert(key K, box vmath.AABB) {
	h.bounds[key] = box
	minC, maxC := h.cellsOf(box)
	for cy := minC.Y; cy <= maxC.Y; cy++ {
		for cx := minC.X; cx <= maxC.X; cx++ {
			c := cellCoord{X: cx, Y: cy}
			h.buckets[c] = append(h.buckets[c], key)
		}
	}
}

// Remove deletes an entry from every cell bucket it was filed under.
func (h *Hash[K]) Remove(key K) {
	box, ok := h.bounds[key]
	if !ok {
		return
	}
	delete(h.bounds, key)
	minC, maxC := h.cellsOf(box)
	for cy := minC.Y; cy <= maxC.Y; cy++ {
		for cx := minC.X; cx <= maxC.X; cx++ {
			c := cellCoord{X: cx, Y: cy}
			h.buckets[c] = removeFromBucket(h.buckets[c], key)
			if len(h.buckets[c]) == 0 {
				delete(h.buckets, c)
			}
		}
	}
}

func removeFromBucket[K comparable](bucket []K, key K) []K {
	for i, k := range bucket {
		if k == key {
			bucket[i] = bucket[len(bucket)-1]
			return bucket[:len(bucket)-1]
		}
	}
	return bucket
}

// Update is a logical remove + re-insert under the entry's new AABB,
// O(|cells covered|) as spec.md requires.
func (h *Hash[K]) Update(key K, box vmath.AABB) {
	h.Remove(key)
	h.Insert(key, box)
}

// Search yields every entry whose recorded AABB overlaps the query
// rectangle. No ordering is guaranteed, and duplicates are suppressed
// even though an entry may span several cells covering the query.
func (h *Hash[K]) Search(min, max vmath.IVec2) func(yield func(K) bool) {
	query := vmath.AABB{Min: min, Max: max}
	return func(yield func(K) bool) {
		minC, maxC := h.cellsOf(query)
		seen := make(map[K]struct{})
		for cy := minC.Y; cy <= maxC.Y; cy++ {
			for cx := minC.X; cx <= maxC.X; cx++ {
				c := cellCoord{X: cx, Y: cy}
				for _, key := range h.buckets[c] {
					if _, dup := seen[key]; dup {
						continue
					}
					box := h.bounds[key]
					if !box.Overlaps(query) {
						continue
					}
					seen[key] = struct{}{}
					if !yield(key) {
						return
					}
				}
			}
		}
	}
}

// Len reports the number of distinct entries currently indexed.
func (h *Hash[K]) Len() int { return len(h.bounds) }
