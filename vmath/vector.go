// Package vmath provides the fixed-length vector and geometry primitives
// shared by the world-geometry builder and the light tracer.
package vmath

// IVec2 is an integer 2D point or displacement. Segment endpoints and tile
// coordinates are IVec2.
type IVec2 struct {
	X, Y int64
}

func NewIVec2(x, y int64) IVec2 { return IVec2{X: x, Y: y} }

func V2Add(a, b IVec2) IVec2 { return IVec2{a.X + b.X, a.Y + b.Y} }
func V2Sub(a, b IVec2) IVec2 { return IVec2{a.X - b.X, a.Y - b.Y} }
func V2Neg(a IVec2) IVec2    { return IVec2{-a.X, -a.Y} }
func V2Scale(a IVec2, s int64) IVec2 {
	return IVec2{a.X * s, a.Y * s}
}

func V2Dot(a, b IVec2) int64 { return a.X*b.X + a.Y*b.Y }

// V2Cross is the scalar (Z-component) cross product for N=2, per the
// data-model invariant that cross is defined for N=2 (scalar) and N=3
// (vector).
func V2Cross(a, b IVec2) int64 { return a.X*b.Y - a.Y*b.X }

func V2Equal(a, b IVec2) bool { return a.X == b.X && a.Y == b.Y }

// EuclideanDiv and EuclideanMod form a Euclidean pair: the remainder is
// always in [0, |d|) and EuclideanDiv(n, d)*d + EuclideanMod(n, d) == n.
// For a positive divisor the quotient rounds toward negative infinity, as
// yang/vm's integer `/` does; for a negative divisor it rounds toward
// positive infinity, where yang/vm's `/` still rounds toward negative
// infinity.
func EuclideanDiv(n, d int64) int64 {
	q := n / d
	if n%d < 0 {
		if d > 0 {
			q--
		} else {
			q++
		}
	}
	return q
}

func EuclideanMod(n, d int64) int64 {
	m := n % d
	if m < 0 {
		if d < 0 {
			m -= d
		} else {
			m += d
		}
	}
	return m
}
