package shape

import "math"

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// The idea is that (A * B) * v == A * (B * v). Transformed points are
// rounded back to the integer grid.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x and y
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate creates an affine transform representing rotation.
//
// The convention for rotation is that a positive angle rotates a
// positive X direction into positive Y.
//
// The angle th is expressed in radians.
func Rotate(th float64) Affine {
	sin, cos := sincosExact(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout creates an affine transform representing a rotation of th radians
// about center.
func RotateAbout(th float64, center Point) Affine {
	c := center.Vec()
	return Translate(c.Negate()).ThenRotate(th).ThenTranslate(c)
}

// Reflect creates an affine transform that represents reflection about the line
// point + direction * t, t ∈ [-∞, ∞]
func Reflect(pt Point, direction Vec2) Affine {
	n := Vec2{
		X: direction.Y,
		Y: -direction.X,
	}.Normalize()

	// Householder reflection matrix
	x2 := n.X * n.X
	xy := n.X * n.Y
	y2 := n.Y * n.Y
	// The post translation is added in here, because it doesn't require any further calc.
	aff := Affine{
		1.0 - 2.0*x2,
		-2.0 * xy,
		-2.0 * xy,
		1.0 - 2.0*y2,
		float64(pt.X),
		float64(pt.Y),
	}
	return aff.PreTranslate(pt.Vec().Negate())
}

func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenRotate creates aff followed by a rotation of th.
//
// Equivalent to "Rotate(th) * aff"
func (aff Affine) ThenRotate(th float64) Affine {
	return Rotate(th).Mul(aff)
}

// PreTranslate creates a translation of v followed by aff.
//
// Equivalent to "aff * Translate(v)"
func (aff Affine) PreTranslate(v Vec2) Affine {
	return aff.Mul(Translate(v))
}

// ThenTranslate creates aff followed by a translation of v.
//
// Equivalent to "Translate(v) * aff"
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// ApplyVec transforms v without rounding.
func (aff Affine) ApplyVec(v Vec2) Vec2 {
	return Vec2{
		X: aff.N0*v.X + aff.N2*v.Y + aff.N4,
		Y: aff.N1*v.X + aff.N3*v.Y + aff.N5,
	}
}

// Apply transforms pt and rounds the result to the grid.
func (aff Affine) Apply(pt Point) Point {
	return aff.ApplyVec(pt.Vec()).Round()
}

// sincosExact is math.Sincos with exact results at multiples of a quarter
// turn, so that rotating by 90° keeps grid points on the grid.
func sincosExact(th float64) (sin, cos float64) {
	q := th / (math.Pi / 2)
	if r := math.Round(q); math.Abs(q-r) < 1e-12 {
		switch ((int64(r) % 4) + 4) % 4 {
		case 0:
			return 0, 1
		case 1:
			return 1, 0
		case 2:
			return 0, -1
		case 3:
			return -1, 0
		}
	}
	return math.Sincos(th)
}
