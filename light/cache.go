package light

import "github.com/lixenwraith/luxengine/vmath"

// Cache is the trace_results cache of spec.md §4.3.5: keyed by
// TraceKey, recomputed only on a miss, and pruned each frame to the set
// of keys the caller says are still visible.
type Cache struct {
	results map[TraceKey]LightTrace
}

func NewCache() *Cache {
	return &Cache{results: make(map[TraceKey]LightTrace)}
}

// Lookup returns a cached trace and whether it was found.
func (c *Cache) Lookup(key TraceKey) (LightTrace, bool) {
	t, ok := c.results[key]
	return t, ok
}

// Source is one light and its resolved origin, as supplied by the
// caller each frame (spec.md §4.3.5's "sources").
type Source struct {
	Light  Light
	Origin vmath.FVec2
}

// RecalculateTraces implements spec.md §4.3.5's per-frame cache
// maintenance: for every source, compute its TraceKey; if the key is
// already cached, skip recomputation; otherwise trace it against geom
// and cache the result. Afterward, evict every cached entry whose key
// wasn't touched this call.
func (c *Cache) RecalculateTraces(geom GeometryQuery, sources []Source) {
	preserve := make(map[TraceKey]struct{}, len(sources))
	for _, s := range sources {
		key := NewTraceKey(s.Light, s.Origin)
		preserve[key] = struct{}{}
		if _, ok := c.results[key]; ok {
			continue
		}
		c.results[key] = Trace(geom, s.Light, s.Origin)
	}
	for key := range c.results {
		if _, ok := preserve[key]; !ok {
			delete(c.results, key)
		}
	}
}

// Clear drops every cached trace (spec.md §4.3.5, used when geometry
// changes wholesale rather than incrementally).
func (c *Cache) Clear() {
	c.results = make(map[TraceKey]LightTrace)
}

// Len reports how many traces are currently cached.
func (c *Cache) Len() int { return len(c.results) }
