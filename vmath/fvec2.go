package vmath

import "math"

const Pi = math.Pi

// FVec2 is a double-precision 2D point, used for origin-relative geometry
// inside the light tracer where spec.md §4.3.6 requires exact `==`
// comparisons on the scalar type rather than fixed-point approximations.
type FVec2 struct {
	X, Y float64
}

func NewFVec2(x, y float64) FVec2 { return FVec2{X: x, Y: y} }

func ToFVec2(v IVec2) FVec2 { return FVec2{X: float64(v.X), Y: float64(v.Y)} }

func F2Add(a, b FVec2) FVec2         { return FVec2{a.X + b.X, a.Y + b.Y} }
func F2Sub(a, b FVec2) FVec2         { return FVec2{a.X - b.X, a.Y - b.Y} }
func F2Neg(a FVec2) FVec2            { return FVec2{-a.X, -a.Y} }
func F2Scale(a FVec2, s float64) FVec2 { return FVec2{a.X * s, a.Y * s} }

func F2Dot(a, b FVec2) float64   { return a.X*b.X + a.Y*b.Y }
func F2Cross(a, b FVec2) float64 { return a.X*b.Y - a.Y*b.X }

func F2LenSq(a FVec2) float64 { return a.X*a.X + a.Y*a.Y }
func F2Len(a FVec2) float64   { return math.Sqrt(F2LenSq(a)) }

// F2Rotate rotates a by angle radians counter-clockwise.
func F2Rotate(a FVec2, angle float64) FVec2 {
	s, c := math.Sincos(angle)
	return FVec2{a.X*c - a.Y*s, a.X*s + a.Y*c}
}

// F2FromAngle returns the unit vector at the given angle (radians, 0 = +X,
// increasing counter-clockwise), matching the polar-angle convention the
// tracer's vertex ordering uses (spec.md §4.3.2).
func F2FromAngle(angle float64) FVec2 {
	s, c := math.Sincos(angle)
	return FVec2{c, s}
}

// Angle returns the polar angle of a in [0, 2π), with 0 at +X increasing
// counter-clockwise — the exact convention spec.md §4.3.2 sorts by.
func (a FVec2) Angle() float64 {
	t := math.Atan2(a.Y, a.X)
	if t < 0 {
		t += 2 * math.Pi
	}
	return t
}

func F2Zero() FVec2 { return FVec2{} }
func F2IsZero(a FVec2) bool { return a.X == 0 && a.Y == 0 }
