package shape

import (
	"fmt"
	"math"
)

// Point is a position in the kernel's integer internal unit.
//
// All stored geometry uses Point. Floating point is only used transiently,
// for arc math, via [Vec2].
type Point struct {
	X int64
	Y int64
}

// Pt returns the point (x, y).
func Pt(x, y int64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%d, %d)", pt.X, pt.Y)
}

// Add returns pt+o, treating o as an offset.
func (pt Point) Add(o Point) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

// Sub computes pt−o.
func (pt Point) Sub(o Point) Point {
	return Point{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Vec returns the point as a floating point vector.
func (pt Point) Vec() Vec2 {
	return Vec2{
		X: float64(pt.X),
		Y: float64(pt.Y),
	}
}

// Lerp linearly interpolates between two points, rounding to the nearest
// integer position.
func (pt Point) Lerp(o Point, t float64) Point {
	return pt.Vec().Lerp(o.Vec(), t).Round()
}

// Midpoint returns the midpoint of two points, rounded to the nearest integer
// position.
func (pt Point) Midpoint(o Point) Point {
	return pt.Lerp(o, 0.5)
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	x := float64(pt.X - o.X)
	y := float64(pt.Y - o.Y)
	return math.Hypot(x, y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	x := float64(pt.X - o.X)
	y := float64(pt.Y - o.Y)
	return x*x + y*y
}

// Cross returns the z component of the cross product of pt and o, both
// interpreted as vectors.
func (pt Point) Cross(o Point) float64 {
	return float64(pt.X)*float64(o.Y) - float64(pt.Y)*float64(o.X)
}

// Dot returns the dot product of pt and o, both interpreted as vectors.
func (pt Point) Dot(o Point) float64 {
	return float64(pt.X)*float64(o.X) + float64(pt.Y)*float64(o.Y)
}

// EuclideanNorm returns the length of pt interpreted as a vector.
func (pt Point) EuclideanNorm() float64 {
	return math.Hypot(float64(pt.X), float64(pt.Y))
}
